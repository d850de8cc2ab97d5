package service

import (
	"errors"
	"strings"
)

// ErrUnknownStrategy is returned when a strategy name is not recognised.
var ErrUnknownStrategy = errors.New("unknown stacking strategy")

const (
	// StrategyMinVolume selects the assignment with the smallest packaging volume.
	StrategyMinVolume = "min_volume"
	// StrategyMaxGrouped selects the assignment that puts the most units into groups.
	StrategyMaxGrouped = "max_grouped"
)

// volumeEpsilon absorbs float noise when comparing volumes in cm³.
const volumeEpsilon = 1e-6

// Score summarises one candidate assignment.
type Score struct {
	Volume       float64
	GroupedUnits int
	Packages     int
}

// Strategy decides which of two candidate assignments is preferable.
type Strategy interface {
	// Name returns the identifier used in configuration and responses.
	Name() string
	// Better reports whether a is strictly preferable to b.
	Better(a, b Score) bool
}

// MinimizeVolume prefers the candidate with the lowest total volume.
type MinimizeVolume struct{}

// Name implements Strategy.
func (MinimizeVolume) Name() string { return StrategyMinVolume }

// Better implements Strategy.
func (MinimizeVolume) Better(a, b Score) bool {
	return a.Volume < b.Volume-volumeEpsilon
}

// MaximizeGrouped prefers the candidate with the most grouped units,
// falling back to the lower volume.
type MaximizeGrouped struct{}

// Name implements Strategy.
func (MaximizeGrouped) Name() string { return StrategyMaxGrouped }

// Better implements Strategy.
func (MaximizeGrouped) Better(a, b Score) bool {
	if a.GroupedUnits != b.GroupedUnits {
		return a.GroupedUnits > b.GroupedUnits
	}
	return a.Volume < b.Volume-volumeEpsilon
}

// ParseStrategy maps a configuration value to a Strategy.
// An empty name yields the default MinimizeVolume.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategyMinVolume:
		return MinimizeVolume{}, nil
	case StrategyMaxGrouped:
		return MaximizeGrouped{}, nil
	default:
		return nil, ErrUnknownStrategy
	}
}

// prefer applies the strategy and the fixed tie-breakers: fewer packages,
// then the incumbent (first found) wins.
func prefer(s Strategy, candidate, incumbent Score) bool {
	if s.Better(candidate, incumbent) {
		return true
	}
	if s.Better(incumbent, candidate) {
		return false
	}
	return candidate.Packages < incumbent.Packages
}
