package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validGroup() GroupDefinition {
	return GroupDefinition{
		ID:           "g1",
		Required:     map[int64]int{1: 2},
		StackingMode: StackingMultiple,
		BaseHeight:   20,
		BaseWidth:    20,
		BaseLength:   20,
		BaseWeight:   3,
	}
}

func TestGroupDefinition_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*GroupDefinition)
		wantField string
	}{
		{name: "valid group", mutate: func(*GroupDefinition) {}},
		{name: "empty required", mutate: func(g *GroupDefinition) { g.Required = nil }, wantField: "required"},
		{name: "zero required quantity", mutate: func(g *GroupDefinition) { g.Required = map[int64]int{1: 0} }, wantField: "required"},
		{name: "unknown stacking mode", mutate: func(g *GroupDefinition) { g.StackingMode = "diagonal" }, wantField: "stacking_mode"},
		{name: "negative height", mutate: func(g *GroupDefinition) { g.BaseHeight = -1 }, wantField: "base_height"},
		{name: "negative increment", mutate: func(g *GroupDefinition) { g.LengthIncrement = -0.5 }, wantField: "length_increment"},
		{name: "negative max quantity", mutate: func(g *GroupDefinition) { g.MaxQuantity = -3 }, wantField: "max_quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := validGroup()
			tt.mutate(&g)
			err := g.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration))
			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.wantField, cfgErr.Field)
			assert.Equal(t, "g1", cfgErr.GroupID)
		})
	}
}

func TestGroupDefinition_Cap(t *testing.T) {
	g := validGroup()
	assert.Equal(t, 7, g.Cap(7))

	g.MaxQuantity = 5
	assert.Equal(t, 5, g.Cap(7))
	assert.Equal(t, 3, g.Cap(3))
}

func TestGroupDefinition_CopyRequired(t *testing.T) {
	g := validGroup()
	cp := g.CopyRequired()
	cp[1] = 99
	assert.Equal(t, 2, g.Required[1])
}

func TestConfigurationError_Error(t *testing.T) {
	assert.Equal(t, "group g1: required: must not be empty", (&ConfigurationError{GroupID: "g1", Field: "required", Reason: "must not be empty"}).Error())
	assert.Equal(t, "quantity: must be at least 1", (&ConfigurationError{Field: "quantity", Reason: "must be at least 1"}).Error())
}
