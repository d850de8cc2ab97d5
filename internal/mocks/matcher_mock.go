// Code generated manually. DO NOT EDIT.

package mocks

import (
	"github.com/guttosm/stacking-service/internal/domain/model"
	"github.com/guttosm/stacking-service/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockMatcher struct {
	mock.Mock
}

func (m *MockMatcher) Match(cart []model.Item, groups []model.GroupDefinition) ([]model.Package, error) {
	args := m.Called(cart, groups)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Package), args.Error(1)
}

func (m *MockMatcher) MatchWithStrategy(cart []model.Item, groups []model.GroupDefinition, strategy service.Strategy) (service.MatchResult, error) {
	args := m.Called(cart, groups, strategy)
	return args.Get(0).(service.MatchResult), args.Error(1)
}

func (m *MockMatcher) Strategy() service.Strategy {
	args := m.Called()
	return args.Get(0).(service.Strategy)
}
