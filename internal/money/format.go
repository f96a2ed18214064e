// Package money formats amounts for the storefront locales.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// Supported locales, in fallback order.
var supported = []language.Tag{
	language.BrazilianPortuguese,
	language.Spanish,
	language.AmericanEnglish,
}

var matcher = language.NewMatcher(supported)

type numberFormat struct {
	decimal  string
	group    string
	minGroup int // integer digits needed before grouping applies
	symbols  map[string]string
	suffix   bool
	space    bool
}

var formats = []numberFormat{
	{decimal: ",", group: ".", minGroup: 4, symbols: map[string]string{"BRL": "R$", "USD": "US$"}, space: true},
	{decimal: ",", group: ".", minGroup: 5, symbols: map[string]string{"USD": "US$"}, suffix: true, space: true},
	{decimal: ".", group: ",", minGroup: 4, symbols: map[string]string{"BRL": "R$", "USD": "$"}},
}

func match(locale string) int {
	tag, err := language.Parse(locale)
	if err != nil {
		return 0
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return 0
	}
	return idx
}

// Negotiate picks the supported locale that best fits an Accept-Language
// header value.
func Negotiate(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return supported[0].String()
	}
	_, idx, _ := matcher.Match(tags...)
	return supported[idx].String()
}

// Format renders amount (in major units) in cur for locale.
func Format(amount decimal.Decimal, cur currency.Unit, locale string) string {
	f := formats[match(locale)]

	neg := amount.IsNegative()
	digits := amount.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(digits, ".")

	if len(intPart) >= f.minGroup {
		intPart = group(intPart, f.group)
	}
	number := intPart + f.decimal + frac

	symbol, ok := f.symbols[cur.String()]
	if !ok {
		symbol = cur.String()
	}

	sep := ""
	if f.space {
		sep = " "
	}

	var out string
	if f.suffix {
		out = number + sep + symbol
	} else {
		out = symbol + sep + number
	}
	if neg {
		out = "-" + out
	}
	return out
}

func group(digits, sep string) string {
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatCurrency formats a major-unit amount in BRL.
func FormatCurrency(amount float64, locale string) string {
	return Format(decimal.NewFromFloat(amount), currency.BRL, locale)
}

// FormatCents formats minor units: BRL for Portuguese, USD otherwise.
func FormatCents(cents int64, locale string) string {
	cur := currency.USD
	if match(locale) == 0 {
		cur = currency.BRL
	}
	return Format(decimal.New(cents, -2), cur, locale)
}

// FormatCentsIn formats minor units in the ISO currency code, falling back to
// BRL for unknown codes.
func FormatCentsIn(cents int64, code, locale string) string {
	cur, err := currency.ParseISO(code)
	if err != nil {
		cur = currency.BRL
	}
	return Format(decimal.New(cents, -2), cur, locale)
}
