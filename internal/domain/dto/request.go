// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"strconv"

	"github.com/guttosm/stacking-service/internal/domain/model"
)

// MaxCartUnits bounds the total quantity accepted by one simulation.
const MaxCartUnits = 10000

// CartLine is one product line of a cart. Missing or zero measurements are
// replaced by the service defaults.
//
// @Description Cart line with unit dimensions in cm and unit weight in kg
type CartLine struct {
	ProductID int64   `json:"product_id" binding:"required,gt=0" example:"101"`
	Quantity  int     `json:"quantity" binding:"required,gt=0" example:"3"`
	Width     float64 `json:"width" binding:"gte=0" example:"15"`
	Height    float64 `json:"height" binding:"gte=0" example:"8"`
	Length    float64 `json:"length" binding:"gte=0" example:"20"`
	Weight    float64 `json:"weight" binding:"gte=0" example:"0.5"`
} // @name CartLine

// SimulateRequest is the body of POST /api/shipping/simulate.
//
// @Description Cart to split into stacking-group and loose packages
// @Example {"items": [{"product_id": 101, "quantity": 4, "width": 15, "height": 8, "length": 20, "weight": 0.5}]}
type SimulateRequest struct {
	// Items may be empty; an empty cart yields no packages.
	Items []CartLine `json:"items" binding:"required,dive"`
	// Strategy overrides the configured selection policy.
	Strategy string `json:"strategy,omitempty" binding:"omitempty,oneof=min_volume max_grouped" example:"min_volume" enums:"min_volume,max_grouped"`
} // @name SimulateRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate checks rules that binding tags cannot express.
func (r *SimulateRequest) Validate() error {
	total := 0
	for _, line := range r.Items {
		total += line.Quantity
		if total > MaxCartUnits {
			return &ValidationError{
				Field:   "items",
				Message: "total quantity must not exceed " + strconv.Itoa(MaxCartUnits),
			}
		}
	}
	return nil
}

// ToItems converts the cart lines to domain items.
func (r *SimulateRequest) ToItems() []model.Item {
	items := make([]model.Item, 0, len(r.Items))
	for _, line := range r.Items {
		items = append(items, model.Item{
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			UnitWidth:  line.Width,
			UnitHeight: line.Height,
			UnitLength: line.Length,
			UnitWeight: line.Weight,
		})
	}
	return items
}

// GroupRequest is the body of POST /api/groups and PUT /api/groups/:id.
// Required maps product id to the units consumed per group instance.
//
// @Description Stacking group definition
// @Example {"name": "Shoe boxes", "required": {"101": 1}, "stacking_mode": "single", "base_height": 12, "base_width": 30, "base_length": 40, "base_weight": 0.8, "height_increment": 12, "max_quantity": 4}
type GroupRequest struct {
	Name            string        `json:"name" binding:"max=120" example:"Shoe boxes"`
	Required        map[int64]int `json:"required" binding:"required,min=1"`
	StackingMode    string        `json:"stacking_mode" binding:"required,oneof=single multiple" example:"single" enums:"single,multiple"`
	BaseHeight      float64       `json:"base_height" binding:"gte=0" example:"12"`
	BaseWidth       float64       `json:"base_width" binding:"gte=0" example:"30"`
	BaseLength      float64       `json:"base_length" binding:"gte=0" example:"40"`
	BaseWeight      float64       `json:"base_weight" binding:"gte=0" example:"0.8"`
	HeightIncrement float64       `json:"height_increment" binding:"gte=0" example:"12"`
	WidthIncrement  float64       `json:"width_increment" binding:"gte=0" example:"0"`
	LengthIncrement float64       `json:"length_increment" binding:"gte=0" example:"0"`
	MaxQuantity     int           `json:"max_quantity" binding:"gte=0" example:"4"`
	Position        int           `json:"position" example:"0"`
} // @name GroupRequest

// ToModel converts the request to a group definition without an id.
func (r *GroupRequest) ToModel() model.GroupDefinition {
	required := make(map[int64]int, len(r.Required))
	for pid, qty := range r.Required {
		required[pid] = qty
	}
	return model.GroupDefinition{
		Name:            r.Name,
		Required:        required,
		StackingMode:    model.StackingMode(r.StackingMode),
		BaseHeight:      r.BaseHeight,
		BaseWidth:       r.BaseWidth,
		BaseLength:      r.BaseLength,
		BaseWeight:      r.BaseWeight,
		HeightIncrement: r.HeightIncrement,
		WidthIncrement:  r.WidthIncrement,
		LengthIncrement: r.LengthIncrement,
		MaxQuantity:     r.MaxQuantity,
		Position:        r.Position,
	}
}
