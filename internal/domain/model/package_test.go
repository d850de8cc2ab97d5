package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackage_VolumeAndUnits(t *testing.T) {
	p := Package{
		Height:   10,
		Width:    20,
		Length:   30,
		Contents: []ContentLine{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 3}},
	}
	assert.Equal(t, 6000.0, p.Volume())
	assert.Equal(t, 5, p.Units())
}

func TestSummarize(t *testing.T) {
	packages := []Package{
		{Source: SourceGroup, GroupID: "g", InstanceCount: 1, Contents: []ContentLine{{ProductID: 1, Quantity: 2}}, Weight: 3, Height: 10, Width: 10, Length: 10},
		{Source: SourceLoose, Contents: []ContentLine{{ProductID: 2, Quantity: 1}}, Weight: 1, Height: 10, Width: 10, Length: 10},
	}

	s := Summarize(packages)

	assert.Equal(t, 2, s.PackageCount)
	assert.Equal(t, 2, s.GroupedUnits)
	assert.Equal(t, 1, s.LooseUnits)
	assert.Equal(t, 4.0, s.TotalWeight)
	assert.Equal(t, 2000.0, s.TotalVolume)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}
