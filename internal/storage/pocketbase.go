// Package storage persists the domain on an embedded PocketBase instance.
// Collections are ensured at startup; the representatives collection carries a
// unique (name, ocdid) index, which is the correctness backstop for concurrent
// reconciliation.
package storage

import (
	"fmt"
	"strings"

	"github.com/pocketbase/pocketbase"
	pbModels "github.com/pocketbase/pocketbase/models"
	"github.com/pocketbase/pocketbase/models/schema"
	"github.com/pocketbase/pocketbase/tools/types"

	"actionmap/internal/logging"
)

// PocketBaseStore wraps an embedded PocketBase app.
type PocketBaseStore struct {
	app *pocketbase.PocketBase
}

// NewPocketBaseStore bootstraps PocketBase in the given data directory and
// ensures all collections exist.
func NewPocketBaseStore(dataDir string) (*PocketBaseStore, error) {
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: dataDir,
	})

	if err := app.Bootstrap(); err != nil {
		return nil, fmt.Errorf("failed to bootstrap PocketBase: %w", err)
	}

	store := &PocketBaseStore{app: app}
	if err := store.ensureCollections(); err != nil {
		return nil, fmt.Errorf("failed to ensure collections exist: %w", err)
	}

	log := logging.With("storage")
	log.Info().Str("data_dir", dataDir).Msg("storage ready")
	return store, nil
}

// GetPocketBase exposes the underlying app for advanced queries.
func (s *PocketBaseStore) GetPocketBase() *pocketbase.PocketBase {
	return s.app
}

func (s *PocketBaseStore) ensureCollections() error {
	collections := []*pbModels.Collection{
		representativesCollection(),
		issuesCollection(),
		newsItemsCollection(),
		statesCollection(),
		countiesCollection(),
	}
	for _, collection := range collections {
		if _, err := s.app.Dao().FindCollectionByNameOrId(collection.Name); err == nil {
			continue
		}
		if err := s.app.Dao().SaveCollection(collection); err != nil {
			return fmt.Errorf("failed to save collection %s: %w", collection.Name, err)
		}
	}
	return nil
}

func representativesCollection() *pbModels.Collection {
	return &pbModels.Collection{
		Name: "representatives",
		Type: pbModels.CollectionTypeBase,
		Schema: schema.NewSchema(
			&schema.SchemaField{Name: "name", Type: schema.FieldTypeText, Required: true},
			&schema.SchemaField{Name: "ocdid", Type: schema.FieldTypeText},
			&schema.SchemaField{Name: "title", Type: schema.FieldTypeText},
			&schema.SchemaField{Name: "street", Type: schema.FieldTypeText},
			&schema.SchemaField{Name: "city", Type: schema.FieldTypeText},
			&schema.SchemaField{Name: "state", Type: schema.FieldTypeText},
			&schema.SchemaField{Name: "zip", Type: schema.FieldTypeText},
			&schema.SchemaField{Name: "party", Type: schema.FieldTypeText},
			&schema.SchemaField{Name: "photo_url", Type: schema.FieldTypeText},
		),
		Indexes: types.JsonArray[string]{
			"CREATE UNIQUE INDEX idx_representatives_name_ocdid ON representatives (name, ocdid)",
		},
	}
}

func issuesCollection() *pbModels.Collection {
	return &pbModels.Collection{
		Name: "issues",
		Type: pbModels.CollectionTypeBase,
		Schema: schema.NewSchema(
			&schema.SchemaField{Name: "name", Type: schema.FieldTypeText, Required: true},
		),
		Indexes: types.JsonArray[string]{
			"CREATE UNIQUE INDEX idx_issues_name ON issues (name)",
		},
	}
}

func newsItemsCollection() *pbModels.Collection {
	return &pbModels.Collection{
		Name: "news_items",
		Type: pbModels.CollectionTypeBase,
		Schema: schema.NewSchema(
			&schema.SchemaField{Name: "title", Type: schema.FieldTypeText, Required: true},
			&schema.SchemaField{Name: "link", Type: schema.FieldTypeUrl, Required: true},
			&schema.SchemaField{Name: "description", Type: schema.FieldTypeText},
			&schema.SchemaField{Name: "rating", Type: schema.FieldTypeNumber},
			&schema.SchemaField{Name: "representative", Type: schema.FieldTypeText, Required: true},
			&schema.SchemaField{Name: "issue", Type: schema.FieldTypeText, Required: true},
		),
	}
}

func statesCollection() *pbModels.Collection {
	return &pbModels.Collection{
		Name: "states",
		Type: pbModels.CollectionTypeBase,
		Schema: schema.NewSchema(
			&schema.SchemaField{Name: "name", Type: schema.FieldTypeText, Required: true},
			&schema.SchemaField{Name: "symbol", Type: schema.FieldTypeText, Required: true},
			&schema.SchemaField{Name: "fips_code", Type: schema.FieldTypeNumber, Required: true},
			&schema.SchemaField{Name: "is_territory", Type: schema.FieldTypeBool},
			&schema.SchemaField{Name: "lat_min", Type: schema.FieldTypeNumber},
			&schema.SchemaField{Name: "lat_max", Type: schema.FieldTypeNumber},
			&schema.SchemaField{Name: "long_min", Type: schema.FieldTypeNumber},
			&schema.SchemaField{Name: "long_max", Type: schema.FieldTypeNumber},
		),
		Indexes: types.JsonArray[string]{
			"CREATE UNIQUE INDEX idx_states_symbol ON states (symbol)",
		},
	}
}

func countiesCollection() *pbModels.Collection {
	return &pbModels.Collection{
		Name: "counties",
		Type: pbModels.CollectionTypeBase,
		Schema: schema.NewSchema(
			&schema.SchemaField{Name: "state", Type: schema.FieldTypeText, Required: true},
			&schema.SchemaField{Name: "name", Type: schema.FieldTypeText, Required: true},
			&schema.SchemaField{Name: "fips_code", Type: schema.FieldTypeText, Required: true},
			&schema.SchemaField{Name: "fips_class", Type: schema.FieldTypeText},
		),
		Indexes: types.JsonArray[string]{
			"CREATE UNIQUE INDEX idx_counties_state_fips ON counties (state, fips_code)",
		},
	}
}

// isUniqueViolation reports whether err is sqlite telling us a unique index
// was violated.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
