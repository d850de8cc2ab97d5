package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/stacking-service/internal/domain/model"
	"github.com/guttosm/stacking-service/internal/service"
)

const seedTimeout = 10 * time.Second

// readSeedFile parses a JSON array of group definitions.
func readSeedFile(path string) ([]model.GroupDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var groups []model.GroupDefinition
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return groups, nil
}

// seedCatalog creates groups through the catalog service, so seeds are
// validated like API input. Every group is validated before the first one
// is created; one invalid group rejects the whole file. A catalog that
// already holds groups is left untouched. Returns the number of groups
// created.
func seedCatalog(ctx context.Context, catalog service.GroupCatalogService, groups []model.GroupDefinition) (int, error) {
	if len(groups) == 0 {
		return 0, nil
	}

	existing, err := catalog.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list stacking groups: %w", err)
	}
	if len(existing) > 0 {
		log.Debug().Int("groups", len(existing)).Msg("Group catalog already populated - skipping seed")
		return 0, nil
	}

	seeds := make([]model.GroupDefinition, len(groups))
	var invalid []error
	for i, g := range groups {
		if g.Position == 0 {
			g.Position = i
		}
		if err := catalog.Validate(g); err != nil {
			invalid = append(invalid, fmt.Errorf("seed group %d (%s): %w", i, g.Name, err))
		}
		seeds[i] = g
	}
	if len(invalid) > 0 {
		return 0, errors.Join(invalid...)
	}

	for i, g := range seeds {
		if _, err := catalog.Create(ctx, g); err != nil {
			skipped := make([]string, 0, len(seeds)-i)
			for _, rest := range seeds[i:] {
				skipped = append(skipped, rest.Name)
			}
			log.Error().Err(err).Strs("skipped", skipped).
				Msg("Seed interrupted - catalog is partially seeded and will not be seeded again")
			return i, fmt.Errorf("seed group %d (%s): %w", i, g.Name, err)
		}
	}
	return len(seeds), nil
}

// InitializeSeed loads path into an empty catalog. Failures are logged
// and never stop the service.
func InitializeSeed(catalog service.GroupCatalogService, path string) {
	if path == "" {
		return
	}

	groups, err := readSeedFile(path)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read stacking group seed")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	created, err := seedCatalog(ctx, catalog, groups)
	if err != nil {
		log.Warn().Err(err).Int("created", created).Msg("Failed to seed stacking groups")
		return
	}
	if created > 0 {
		log.Info().Int("groups", created).Str("file", path).Msg("Seeded stacking group catalog")
	}
}
