// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/stacking-service/internal/domain/model"
	"github.com/guttosm/stacking-service/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockShippingService struct {
	mock.Mock
}

func (m *MockShippingService) Simulate(ctx context.Context, req service.SimulationRequest) (*model.Shipment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Shipment), args.Error(1)
}
