package repository

import "github.com/guttosm/stacking-service/internal/domain/model"

func testGroup(id string, position int) model.GroupDefinition {
	return model.GroupDefinition{
		ID:           id,
		Name:         "group " + id,
		Required:     map[int64]int{1: 2},
		StackingMode: model.StackingMultiple,
		BaseHeight:   20,
		BaseWidth:    20,
		BaseLength:   20,
		BaseWeight:   3,
		Position:     position,
	}
}
