package service

import "github.com/guttosm/stacking-service/internal/domain/model"

// NormalizeCart applies fallback measurements to every line. Lines keep
// their order and none are dropped; quantity checks happen in the matcher.
func NormalizeCart(items []model.Item, defaults model.Defaults) []model.Item {
	if defaults.DimensionCM <= 0 {
		defaults.DimensionCM = model.DefaultDimensionCM
	}
	if defaults.WeightKG <= 0 {
		defaults.WeightKG = model.DefaultWeightKG
	}

	out := make([]model.Item, len(items))
	for i, item := range items {
		out[i] = item.WithDefaults(defaults)
	}
	return out
}
