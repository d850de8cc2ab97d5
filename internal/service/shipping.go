package service

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/guttosm/stacking-service/internal/circuitbreaker"
	"github.com/guttosm/stacking-service/internal/domain/model"
	"github.com/guttosm/stacking-service/internal/logger"
	"github.com/guttosm/stacking-service/internal/metrics"
	"github.com/guttosm/stacking-service/internal/repository"
	"github.com/guttosm/stacking-service/internal/service/cache"
)

// SimulationRequest is a cart plus an optional strategy override.
type SimulationRequest struct {
	Items    []model.Item
	Strategy string
}

// ShippingService turns carts into shippable packages.
type ShippingService interface {
	Simulate(ctx context.Context, req SimulationRequest) (*model.Shipment, error)
}

// ShippingOption configures a ShippingServiceImpl.
type ShippingOption func(*ShippingServiceImpl)

// ShippingServiceImpl loads the catalog, runs the matcher and caches results.
type ShippingServiceImpl struct {
	matcher  Matcher
	catalog  repository.GroupCatalogRepository
	cache    cache.Cache
	defaults model.Defaults
	log      zerolog.Logger
}

// NewShippingService creates a shipping service around matcher and catalog.
func NewShippingService(matcher Matcher, catalog repository.GroupCatalogRepository, opts ...ShippingOption) *ShippingServiceImpl {
	s := &ShippingServiceImpl{
		matcher:  matcher,
		catalog:  catalog,
		defaults: model.StandardDefaults(),
		log:      logger.Component("shipping"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithResultCache enables caching of match results.
func WithResultCache(c cache.Cache) ShippingOption {
	return func(s *ShippingServiceImpl) {
		s.cache = c
	}
}

// WithCartDefaults sets the fallback measurements applied to cart lines.
func WithCartDefaults(d model.Defaults) ShippingOption {
	return func(s *ShippingServiceImpl) {
		if d.DimensionCM > 0 {
			s.defaults.DimensionCM = d.DimensionCM
		}
		if d.WeightKG > 0 {
			s.defaults.WeightKG = d.WeightKG
		}
	}
}

// Simulate derives the packages for a cart. An empty package list means
// there is nothing to ship. While the catalog circuit is open the cart is
// matched against an empty catalog and ships loose.
func (s *ShippingServiceImpl) Simulate(ctx context.Context, req SimulationRequest) (*model.Shipment, error) {
	strategy := s.matcher.Strategy()
	if strings.TrimSpace(req.Strategy) != "" {
		parsed, err := ParseStrategy(req.Strategy)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, req.Strategy)
		}
		strategy = parsed
	}

	items := NormalizeCart(req.Items, s.defaults)
	if len(items) == 0 {
		return newShipment(strategy.Name(), []model.Package{}), nil
	}

	if s.catalog == nil {
		return nil, ErrCatalogNotConfigured
	}
	groups, err := s.catalog.Load(ctx)
	degraded := false
	switch {
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		s.log.Warn().Err(err).Msg("Group catalog unavailable; shipping cart loose")
		groups, degraded = []model.GroupDefinition{}, true
	case err != nil:
		return nil, fmt.Errorf("load stacking catalog: %w", err)
	default:
		metrics.SetCatalogSize(len(groups))
	}

	key := resultKey(strategy.Name(), groups, items)
	if s.cache != nil && !degraded {
		if packages, ok := s.cache.Get(key); ok {
			metrics.RecordMatch(strategy.Name(), 0, 0, "cached")
			return newShipment(strategy.Name(), packages), nil
		}
	}

	start := time.Now()
	result, err := s.matcher.MatchWithStrategy(items, groups, strategy)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordMatch(strategy.Name(), elapsed, 0, "error")
		var cfgErr *model.ConfigurationError
		if errors.As(err, &cfgErr) {
			s.log.Warn().
				Err(err).
				Str("group_id", cfgErr.GroupID).
				Msg("Stacking match rejected")
		}
		return nil, err
	}

	status := "success"
	switch {
	case degraded:
		status = "degraded"
	case result.Truncated:
		status = "truncated"
		s.log.Warn().
			Int("branches", result.Branches).
			Int("groups", len(groups)).
			Msg("Stacking search hit the branch limit; cart shipped loose")
	}
	metrics.RecordMatch(strategy.Name(), elapsed, result.Branches, status)

	s.log.Debug().
		Str("strategy", strategy.Name()).
		Int("packages", len(result.Packages)).
		Int("branches", result.Branches).
		Dur("duration", elapsed).
		Msg("Stacking match completed")

	if s.cache != nil && !degraded && !result.Truncated {
		s.cache.Set(key, result.Packages)
	}
	shipment := newShipment(strategy.Name(), result.Packages)
	shipment.Truncated = result.Truncated
	shipment.CatalogUnavailable = degraded
	return shipment, nil
}

func newShipment(strategy string, packages []model.Package) *model.Shipment {
	summary := model.Summarize(packages)
	summary.TotalWeight = round(summary.TotalWeight)
	summary.TotalVolume = round(summary.TotalVolume)
	metrics.RecordShipment(len(packages))
	return &model.Shipment{
		Strategy: strategy,
		Packages: packages,
		Summary:  summary,
	}
}

// resultKey identifies a match by strategy, catalog content and the
// reduced cart. Catalog content is hashed so edits made by another
// instance never serve stale results.
func resultKey(strategy string, groups []model.GroupDefinition, items []model.Item) string {
	var b strings.Builder
	b.WriteString(strategy)
	b.WriteByte('|')
	b.WriteString(strconv.FormatUint(catalogFingerprint(groups), 16))
	b.WriteByte('|')

	quantities := make(map[int64]int, len(items))
	first := make(map[int64]model.Item, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if _, seen := first[item.ProductID]; !seen {
			first[item.ProductID] = item
			ids = append(ids, item.ProductID)
		}
		quantities[item.ProductID] += item.Quantity
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		u := first[id]
		b.WriteString(strconv.FormatInt(id, 10))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(quantities[id]))
		for _, v := range []float64{u.UnitWidth, u.UnitHeight, u.UnitLength, u.UnitWeight} {
			b.WriteByte(':')
			b.WriteString(decimal.NewFromFloat(v).String())
		}
		b.WriteByte(';')
	}
	return b.String()
}

func catalogFingerprint(groups []model.GroupDefinition) uint64 {
	h := fnv.New64a()
	buf := make([]byte, 0, 64)
	for _, g := range groups {
		buf = buf[:0]
		buf = append(buf, g.ID...)
		buf = append(buf, 0)
		buf = append(buf, string(g.StackingMode)...)
		buf = strconv.AppendInt(buf, int64(g.MaxQuantity), 10)

		pids := make([]int64, 0, len(g.Required))
		for pid := range g.Required {
			pids = append(pids, pid)
		}
		sort.Slice(pids, func(i, j int) bool { return pids[i] < pids[j] })
		for _, pid := range pids {
			buf = append(buf, ',')
			buf = strconv.AppendInt(buf, pid, 10)
			buf = append(buf, 'x')
			buf = strconv.AppendInt(buf, int64(g.Required[pid]), 10)
		}

		for _, v := range []float64{
			g.BaseHeight, g.BaseWidth, g.BaseLength, g.BaseWeight,
			g.HeightIncrement, g.WidthIncrement, g.LengthIncrement,
		} {
			buf = append(buf, '/')
			buf = strconv.AppendUint(buf, math.Float64bits(v), 16)
		}
		buf = append(buf, '\n')
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}
