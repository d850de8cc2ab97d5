package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/stacking-service/internal/domain/model"
)

// MemoryGroupCatalog keeps groups in process memory. It is used when
// MongoDB is disabled and in tests.
type MemoryGroupCatalog struct {
	mu     sync.RWMutex
	groups map[string]model.GroupDefinition
	now    func() time.Time
}

// NewMemoryGroupCatalog creates a catalog seeded with the given groups.
func NewMemoryGroupCatalog(seed ...model.GroupDefinition) *MemoryGroupCatalog {
	c := &MemoryGroupCatalog{
		groups: make(map[string]model.GroupDefinition, len(seed)),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for i, g := range seed {
		if g.ID == "" {
			g.ID = uuid.NewString()
		}
		if g.CreatedAt.IsZero() {
			// keep seed order stable when positions tie
			g.CreatedAt = c.now().Add(time.Duration(i) * time.Microsecond)
		}
		g.Required = g.CopyRequired()
		c.groups[g.ID] = g
	}
	return c
}

// Load returns every group sorted by position, creation time and id.
func (c *MemoryGroupCatalog) Load(_ context.Context) ([]model.GroupDefinition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.GroupDefinition, 0, len(c.groups))
	for _, g := range c.groups {
		g.Required = g.CopyRequired()
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Get returns a group or ErrGroupNotFound.
func (c *MemoryGroupCatalog) Get(_ context.Context, id string) (*model.GroupDefinition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	g, ok := c.groups[id]
	if !ok {
		return nil, ErrGroupNotFound
	}
	g.Required = g.CopyRequired()
	return &g, nil
}

// Save inserts or replaces a group.
func (c *MemoryGroupCatalog) Save(_ context.Context, group model.GroupDefinition) (*model.GroupDefinition, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if group.ID == "" {
		group.ID = uuid.NewString()
	}
	if existing, ok := c.groups[group.ID]; ok {
		group.CreatedAt = existing.CreatedAt
	} else if group.CreatedAt.IsZero() {
		group.CreatedAt = now
	}
	group.UpdatedAt = now
	group.Required = group.CopyRequired()
	c.groups[group.ID] = group

	saved := group
	saved.Required = group.CopyRequired()
	return &saved, nil
}

// Delete removes a group or returns ErrGroupNotFound.
func (c *MemoryGroupCatalog) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.groups[id]; !ok {
		return ErrGroupNotFound
	}
	delete(c.groups, id)
	return nil
}
