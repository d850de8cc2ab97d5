package repository

import (
	"context"
	"errors"

	"github.com/guttosm/stacking-service/internal/circuitbreaker"
	"github.com/guttosm/stacking-service/internal/domain/model"
)

// GroupCatalogWithCircuitBreaker guards a catalog with a circuit breaker.
// While the circuit is open every call fails fast with
// circuitbreaker.ErrCircuitOpen.
type GroupCatalogWithCircuitBreaker struct {
	repo           GroupCatalogRepository
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewGroupCatalogWithCircuitBreaker wraps repo with cb.
func NewGroupCatalogWithCircuitBreaker(repo GroupCatalogRepository, cb *circuitbreaker.CircuitBreaker) *GroupCatalogWithCircuitBreaker {
	return &GroupCatalogWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

// Load implements GroupCatalogRepository.
func (r *GroupCatalogWithCircuitBreaker) Load(ctx context.Context) ([]model.GroupDefinition, error) {
	var result []model.GroupDefinition
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Load(ctx)
		return cbErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Get implements GroupCatalogRepository. A missing group does not count
// as a store failure.
func (r *GroupCatalogWithCircuitBreaker) Get(ctx context.Context, id string) (*model.GroupDefinition, error) {
	var result *model.GroupDefinition
	var notFound bool
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Get(ctx, id)
		if errors.Is(cbErr, ErrGroupNotFound) {
			notFound = true
			return nil
		}
		return cbErr
	})
	if notFound {
		return nil, ErrGroupNotFound
	}
	return result, err
}

// Save implements GroupCatalogRepository.
func (r *GroupCatalogWithCircuitBreaker) Save(ctx context.Context, group model.GroupDefinition) (*model.GroupDefinition, error) {
	var result *model.GroupDefinition
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Save(ctx, group)
		return cbErr
	})
	return result, err
}

// Delete implements GroupCatalogRepository.
func (r *GroupCatalogWithCircuitBreaker) Delete(ctx context.Context, id string) error {
	var notFound bool
	err := r.circuitBreaker.Execute(ctx, func() error {
		cbErr := r.repo.Delete(ctx, id)
		if errors.Is(cbErr, ErrGroupNotFound) {
			notFound = true
			return nil
		}
		return cbErr
	})
	if notFound {
		return ErrGroupNotFound
	}
	return err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *GroupCatalogWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
