package models

// All lists every table in migration order.
func All() []any {
	return []any{
		&Category{},
		&Product{},
		&User{},
		&Order{},
		&OrderItem{},
		&AccountEntry{},
		&InventoryMovement{},
		&Banner{},
		&WishlistItem{},
	}
}
