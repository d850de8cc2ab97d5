// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/stacking-service/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockGroupCatalogService struct {
	mock.Mock
}

func (m *MockGroupCatalogService) List(ctx context.Context) ([]model.GroupDefinition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GroupDefinition), args.Error(1)
}

func (m *MockGroupCatalogService) Get(ctx context.Context, id string) (*model.GroupDefinition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GroupDefinition), args.Error(1)
}

func (m *MockGroupCatalogService) Create(ctx context.Context, group model.GroupDefinition) (*model.GroupDefinition, error) {
	args := m.Called(ctx, group)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GroupDefinition), args.Error(1)
}

func (m *MockGroupCatalogService) Update(ctx context.Context, id string, group model.GroupDefinition) (*model.GroupDefinition, error) {
	args := m.Called(ctx, id, group)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GroupDefinition), args.Error(1)
}

func (m *MockGroupCatalogService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGroupCatalogService) Validate(group model.GroupDefinition) error {
	args := m.Called(group)
	return args.Error(0)
}
