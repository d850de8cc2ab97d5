package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/guttosm/stacking-service/internal/domain/model"
	"github.com/guttosm/stacking-service/internal/logger"
	"github.com/guttosm/stacking-service/internal/repository"
	"github.com/guttosm/stacking-service/internal/service/cache"
)

// ErrCatalogNotConfigured is returned when no catalog repository is wired.
var ErrCatalogNotConfigured = errors.New("group catalog not configured")

// GroupCatalogService manages stacking group definitions.
type GroupCatalogService interface {
	List(ctx context.Context) ([]model.GroupDefinition, error)
	Get(ctx context.Context, id string) (*model.GroupDefinition, error)
	Create(ctx context.Context, group model.GroupDefinition) (*model.GroupDefinition, error)
	Update(ctx context.Context, id string, group model.GroupDefinition) (*model.GroupDefinition, error)
	Delete(ctx context.Context, id string) error
	// Validate applies the Create checks without storing anything.
	Validate(group model.GroupDefinition) error
}

// GroupCatalogServiceImpl implements GroupCatalogService. Groups are
// validated before they reach the store so the matcher never sees an
// invalid definition.
type GroupCatalogServiceImpl struct {
	repo     repository.GroupCatalogRepository
	cache    cache.Cache
	validate *validator.Validate
	log      zerolog.Logger
}

// NewGroupCatalogService creates a catalog service. resultCache may be nil.
func NewGroupCatalogService(repo repository.GroupCatalogRepository, resultCache cache.Cache) *GroupCatalogServiceImpl {
	return &GroupCatalogServiceImpl{
		repo:     repo,
		cache:    resultCache,
		validate: newValidator(),
		log:      logger.Component("group_catalog"),
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// List returns the catalog in matching order.
func (s *GroupCatalogServiceImpl) List(ctx context.Context) ([]model.GroupDefinition, error) {
	if s.repo == nil {
		return nil, ErrCatalogNotConfigured
	}
	return s.repo.Load(ctx)
}

// Get returns one group.
func (s *GroupCatalogServiceImpl) Get(ctx context.Context, id string) (*model.GroupDefinition, error) {
	if s.repo == nil {
		return nil, ErrCatalogNotConfigured
	}
	return s.repo.Get(ctx, id)
}

// Create validates and stores a new group. Any id on the input is ignored.
func (s *GroupCatalogServiceImpl) Create(ctx context.Context, group model.GroupDefinition) (*model.GroupDefinition, error) {
	if s.repo == nil {
		return nil, ErrCatalogNotConfigured
	}
	group.ID = ""
	if err := s.check(group); err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("save stacking group: %w", err)
	}
	s.invalidate("create", saved.ID)
	return saved, nil
}

// Validate implements GroupCatalogService.
func (s *GroupCatalogServiceImpl) Validate(group model.GroupDefinition) error {
	group.ID = ""
	return s.check(group)
}

// Update replaces an existing group.
func (s *GroupCatalogServiceImpl) Update(ctx context.Context, id string, group model.GroupDefinition) (*model.GroupDefinition, error) {
	if s.repo == nil {
		return nil, ErrCatalogNotConfigured
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	group.ID = id
	group.CreatedAt = existing.CreatedAt
	if err := s.check(group); err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("save stacking group: %w", err)
	}
	s.invalidate("update", id)
	return saved, nil
}

// Delete removes a group.
func (s *GroupCatalogServiceImpl) Delete(ctx context.Context, id string) error {
	if s.repo == nil {
		return ErrCatalogNotConfigured
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate("delete", id)
	return nil
}

// check runs struct tag validation first, then the domain rules.
func (s *GroupCatalogServiceImpl) check(group model.GroupDefinition) error {
	if err := s.validate.Struct(group); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &model.ConfigurationError{
				GroupID: group.ID,
				Field:   fieldName(fe),
				Reason:  "failed " + fe.Tag() + " check",
			}
		}
		return err
	}
	return group.Validate()
}

// fieldName strips the struct prefix and map index from a validator namespace.
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return name
}

func (s *GroupCatalogServiceImpl) invalidate(op, id string) {
	if s.cache != nil {
		s.cache.Clear()
	}
	s.log.Info().
		Str("operation", op).
		Str("group_id", id).
		Msg("Stacking catalog changed")
}
