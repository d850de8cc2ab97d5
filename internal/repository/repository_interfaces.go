// Package repository provides interfaces for repository operations.
package repository

import (
	"context"
	"errors"

	"github.com/guttosm/stacking-service/internal/domain/model"
)

// ErrGroupNotFound is returned when a stacking group id does not exist.
var ErrGroupNotFound = errors.New("stacking group not found")

// GroupCatalogRepository loads and persists stacking group definitions.
// Load returns groups in catalog order (position, then creation time).
type GroupCatalogRepository interface {
	Load(ctx context.Context) ([]model.GroupDefinition, error)
	Get(ctx context.Context, id string) (*model.GroupDefinition, error)
	Save(ctx context.Context, group model.GroupDefinition) (*model.GroupDefinition, error)
	Delete(ctx context.Context, id string) error
}
