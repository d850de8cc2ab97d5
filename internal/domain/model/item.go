// Package model defines the core domain entities for the stacking service.
package model

// Default physical data applied to products that arrive without it.
const (
	// DefaultDimensionCM is used for any missing width, height or length.
	DefaultDimensionCM = 10.0
	// DefaultWeightKG is used for any missing unit weight.
	DefaultWeightKG = 1.0
)

// Defaults holds the fallback physical data for products without measurements.
type Defaults struct {
	DimensionCM float64
	WeightKG    float64
}

// StandardDefaults returns the 10cm / 1kg fallback.
func StandardDefaults() Defaults {
	return Defaults{DimensionCM: DefaultDimensionCM, WeightKG: DefaultWeightKG}
}

// Item is a single product line of a cart.
//
// @Description Cart line with per-unit dimensions (cm) and weight (kg)
type Item struct {
	ProductID  int64   `json:"product_id" example:"101"`
	Quantity   int     `json:"quantity" example:"2"`
	UnitWidth  float64 `json:"width" example:"15"`
	UnitHeight float64 `json:"height" example:"8"`
	UnitLength float64 `json:"length" example:"20"`
	UnitWeight float64 `json:"weight" example:"0.5"`
}

// WithDefaults returns a copy of the item where non-positive measurements
// are replaced by the given defaults.
func (i Item) WithDefaults(d Defaults) Item {
	if i.UnitWidth <= 0 {
		i.UnitWidth = d.DimensionCM
	}
	if i.UnitHeight <= 0 {
		i.UnitHeight = d.DimensionCM
	}
	if i.UnitLength <= 0 {
		i.UnitLength = d.DimensionCM
	}
	if i.UnitWeight <= 0 {
		i.UnitWeight = d.WeightKG
	}
	return i
}

// UnitVolume returns the volume of one unit in cm³.
func (i Item) UnitVolume() float64 {
	return i.UnitWidth * i.UnitHeight * i.UnitLength
}
