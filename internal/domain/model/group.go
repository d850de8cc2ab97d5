package model

import "time"

// StackingMode controls how repeated instances of a group grow a package.
type StackingMode string

const (
	// StackingSingle grows one package by the configured increments per extra instance.
	StackingSingle StackingMode = "single"
	// StackingMultiple ships every instance as its own identically sized package.
	StackingMultiple StackingMode = "multiple"
)

// Valid reports whether the mode is one of the known values.
func (m StackingMode) Valid() bool {
	return m == StackingSingle || m == StackingMultiple
}

// GroupDefinition is an admin-authored stacking rule.
//
// Required maps product id to the quantity consumed by one instance.
//
// @Description Stacking group definition
type GroupDefinition struct {
	ID              string        `json:"id" example:"5f1c0a7e-3b9d-4f7b-9a51-0c4b7d1f2e3a"`
	Name            string        `json:"name" validate:"max=120" example:"Caixas empilhadas"`
	Required        map[int64]int `json:"required" validate:"required,min=1,dive,keys,gt=0,endkeys,gt=0"`
	StackingMode    StackingMode  `json:"stacking_mode" validate:"required,oneof=single multiple" example:"single"`
	BaseHeight      float64       `json:"base_height" validate:"gte=0" example:"10"`
	BaseWidth       float64       `json:"base_width" validate:"gte=0" example:"30"`
	BaseLength      float64       `json:"base_length" validate:"gte=0" example:"40"`
	BaseWeight      float64       `json:"base_weight" validate:"gte=0" example:"1.5"`
	HeightIncrement float64       `json:"height_increment" validate:"gte=0" example:"5"`
	WidthIncrement  float64       `json:"width_increment" validate:"gte=0" example:"0"`
	LengthIncrement float64       `json:"length_increment" validate:"gte=0" example:"0"`
	MaxQuantity     int           `json:"max_quantity" validate:"gte=0" example:"5"`
	Position        int           `json:"position" example:"0"`
	CreatedAt       time.Time     `json:"created_at,omitempty"`
	UpdatedAt       time.Time     `json:"updated_at,omitempty"`
}

// Validate checks the structural invariants the matcher relies on.
func (g GroupDefinition) Validate() error {
	if len(g.Required) == 0 {
		return &ConfigurationError{GroupID: g.ID, Field: "required", Reason: "must not be empty"}
	}
	for pid, qty := range g.Required {
		if qty <= 0 {
			return &ConfigurationError{GroupID: g.ID, Field: "required", Reason: "quantity for product " + formatID(pid) + " must be positive"}
		}
	}
	if !g.StackingMode.Valid() {
		return &ConfigurationError{GroupID: g.ID, Field: "stacking_mode", Reason: "must be single or multiple"}
	}
	fields := []struct {
		name  string
		value float64
	}{
		{"base_height", g.BaseHeight},
		{"base_width", g.BaseWidth},
		{"base_length", g.BaseLength},
		{"base_weight", g.BaseWeight},
		{"height_increment", g.HeightIncrement},
		{"width_increment", g.WidthIncrement},
		{"length_increment", g.LengthIncrement},
	}
	for _, f := range fields {
		if f.value < 0 {
			return &ConfigurationError{GroupID: g.ID, Field: f.name, Reason: "must not be negative"}
		}
	}
	if g.MaxQuantity < 0 {
		return &ConfigurationError{GroupID: g.ID, Field: "max_quantity", Reason: "must not be negative"}
	}
	return nil
}

// Cap returns the maximum number of instances allowed in one package,
// or limit when the group is unbounded or the limit is lower.
func (g GroupDefinition) Cap(limit int) int {
	if g.MaxQuantity > 0 && g.MaxQuantity < limit {
		return g.MaxQuantity
	}
	return limit
}

// CopyRequired returns an independent copy of the required map.
func (g GroupDefinition) CopyRequired() map[int64]int {
	out := make(map[int64]int, len(g.Required))
	for k, v := range g.Required {
		out[k] = v
	}
	return out
}
