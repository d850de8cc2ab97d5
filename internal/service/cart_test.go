package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/guttosm/stacking-service/internal/domain/model"
	"github.com/guttosm/stacking-service/internal/service"
)

func TestNormalizeCart(t *testing.T) {
	tests := []struct {
		name     string
		items    []model.Item
		defaults model.Defaults
		want     []model.Item
	}{
		{
			name:     "fills missing measurements",
			items:    []model.Item{{ProductID: 1, Quantity: 2, UnitWidth: 15}},
			defaults: model.StandardDefaults(),
			want:     []model.Item{{ProductID: 1, Quantity: 2, UnitWidth: 15, UnitHeight: 10, UnitLength: 10, UnitWeight: 1}},
		},
		{
			name:     "keeps line order and duplicates",
			items:    []model.Item{{ProductID: 2, Quantity: 1}, {ProductID: 1, Quantity: 1}, {ProductID: 2, Quantity: 3}},
			defaults: model.Defaults{DimensionCM: 5, WeightKG: 2},
			want: []model.Item{
				{ProductID: 2, Quantity: 1, UnitWidth: 5, UnitHeight: 5, UnitLength: 5, UnitWeight: 2},
				{ProductID: 1, Quantity: 1, UnitWidth: 5, UnitHeight: 5, UnitLength: 5, UnitWeight: 2},
				{ProductID: 2, Quantity: 3, UnitWidth: 5, UnitHeight: 5, UnitLength: 5, UnitWeight: 2},
			},
		},
		{
			name:     "zero defaults fall back to standard values",
			items:    []model.Item{{ProductID: 3, Quantity: 1, UnitHeight: -4}},
			defaults: model.Defaults{},
			want:     []model.Item{{ProductID: 3, Quantity: 1, UnitWidth: 10, UnitHeight: 10, UnitLength: 10, UnitWeight: 1}},
		},
		{
			name:  "empty cart",
			items: nil,
			want:  []model.Item{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.NormalizeCart(tt.items, tt.defaults))
		})
	}
}
