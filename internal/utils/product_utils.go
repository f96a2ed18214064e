package utils

import (
	"regexp"
	"strings"
)

type StockStatus string

const (
	InStock    StockStatus = "in-stock"
	LowStock   StockStatus = "low-stock"
	OutOfStock StockStatus = "out-of-stock"
)

// LowStockThreshold is the stock level below which a product is "low".
const LowStockThreshold = 10

func GetStockStatus(stock int) StockStatus {
	switch {
	case stock <= 0:
		return OutOfStock
	case stock < LowStockThreshold:
		return LowStock
	}
	return InStock
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug lowercases title and collapses every run of characters
// outside [a-z0-9] into a single dash.
func GenerateSlug(title string) string {
	s := nonSlug.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}
