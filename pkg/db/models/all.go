package models

// All lists every persisted model, in dependency order, for AutoMigrate in tests.
func All() []any {
	return []any{
		&Product{},
		&ProductTranslation{},
		&ProductVariation{},
		&VariationTranslation{},
		&Tag{},
		&TagTranslation{},
		&EntityTag{},
		&Tip{},
		&TipTranslation{},
		&Cart{},
		&CartItem{},
		&Order{},
		&OrderItem{},
	}
}
