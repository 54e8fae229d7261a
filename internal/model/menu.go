package model

import "math"

const TypeMenu = "menu_info"

// MenuItem holds one dish from a menu photo. It is registered alongside the
// built-in types and shows how a custom record plugs into the registry.
type MenuItem struct {
	DishName    string  `json:"dish_name,omitempty"`
	Price       string  `json:"price,omitempty"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	SpicyLevel  string  `json:"spicy_level,omitempty"`
	Confidence  float64 `json:"confidence"`
}

func (m *MenuItem) ExtractionType() string { return TypeMenu }

func (m *MenuItem) TypeDescription() string {
	return "Menu items (dish, price, description, category)"
}

func (m *MenuItem) New() Record { return &MenuItem{} }

// CalculateConfidence adds a bonus on top of plain completeness when both
// the dish name and the price are present, since those two carry most of
// the value of a menu record.
func (m *MenuItem) CalculateConfidence() float64 {
	c := Completeness(m.DishName, m.Price, m.Description, m.Category, m.SpicyLevel)
	if isFilled(m.DishName) && isFilled(m.Price) {
		c = math.Min(1.0, c+0.2)
	}
	return c
}

func (m *MenuItem) UpdateConfidence() { m.Confidence = m.CalculateConfidence() }
