package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/pocketbase/dbx"
	pbModels "github.com/pocketbase/pocketbase/models"

	"actionmap/internal/models"
)

// FindRepresentativeByKey looks up a representative by its (name, ocdid)
// identity key. Returns models.ErrNotFound when no row matches.
func (s *PocketBaseStore) FindRepresentativeByKey(name, ocdid string) (*models.Representative, error) {
	record, err := s.app.Dao().FindFirstRecordByFilter(
		"representatives",
		"name = {:name} && ocdid = {:ocdid}",
		dbx.Params{"name": name, "ocdid": ocdid},
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find representative: %w", err)
	}
	return representativeFromRecord(record), nil
}

// CreateRepresentative inserts a new representative. When a concurrent create
// already claimed the same (name, ocdid) key, models.ErrConflict is returned
// so the caller can retry as an update.
func (s *PocketBaseStore) CreateRepresentative(rep *models.Representative) (*models.Representative, error) {
	collection, err := s.app.Dao().FindCollectionByNameOrId("representatives")
	if err != nil {
		return nil, fmt.Errorf("failed to find collection: %w", err)
	}

	record := pbModels.NewRecord(collection)
	record.Set("name", rep.Name)
	record.Set("ocdid", rep.OCDID)
	setRepresentativeAttrs(record, rep)

	if err := s.app.Dao().SaveRecord(record); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("representative %q/%q: %w", rep.Name, rep.OCDID, models.ErrConflict)
		}
		return nil, fmt.Errorf("failed to save representative: %w", err)
	}
	return representativeFromRecord(record), nil
}

// UpdateRepresentative replaces the mutable attributes of an existing row.
// The identity fields (name, ocdid) are left untouched.
func (s *PocketBaseStore) UpdateRepresentative(rep *models.Representative) (*models.Representative, error) {
	record, err := s.app.Dao().FindRecordById("representatives", rep.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find representative: %w", err)
	}

	setRepresentativeAttrs(record, rep)

	if err := s.app.Dao().SaveRecord(record); err != nil {
		return nil, fmt.Errorf("failed to update representative: %w", err)
	}
	return representativeFromRecord(record), nil
}

// GetRepresentative fetches a representative by record id.
func (s *PocketBaseStore) GetRepresentative(id string) (*models.Representative, error) {
	record, err := s.app.Dao().FindRecordById("representatives", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find representative: %w", err)
	}
	return representativeFromRecord(record), nil
}

// ListRepresentatives returns all stored representatives.
func (s *PocketBaseStore) ListRepresentatives() ([]*models.Representative, error) {
	records, err := s.app.Dao().FindRecordsByExpr("representatives")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch representatives: %w", err)
	}

	reps := make([]*models.Representative, len(records))
	for i, record := range records {
		reps[i] = representativeFromRecord(record)
	}
	return reps, nil
}

func setRepresentativeAttrs(record *pbModels.Record, rep *models.Representative) {
	record.Set("title", rep.Title)
	setOptional(record, "street", rep.Street)
	setOptional(record, "city", rep.City)
	setOptional(record, "state", rep.State)
	setOptional(record, "zip", rep.Zip)
	setOptional(record, "party", rep.Party)
	setOptional(record, "photo_url", rep.PhotoURL)
}

func representativeFromRecord(record *pbModels.Record) *models.Representative {
	return &models.Representative{
		ID:       record.Id,
		Name:     record.GetString("name"),
		OCDID:    record.GetString("ocdid"),
		Title:    record.GetString("title"),
		Street:   getOptional(record, "street"),
		City:     getOptional(record, "city"),
		State:    getOptional(record, "state"),
		Zip:      getOptional(record, "zip"),
		Party:    getOptional(record, "party"),
		PhotoURL: getOptional(record, "photo_url"),
	}
}

// setOptional writes a nullable text field; nil is stored as the empty string.
func setOptional(record *pbModels.Record, field string, v *string) {
	if v == nil {
		record.Set(field, "")
		return
	}
	record.Set(field, *v)
}

// getOptional reads a nullable text field; the empty string comes back as nil.
func getOptional(record *pbModels.Record, field string) *string {
	if s := record.GetString(field); s != "" {
		return &s
	}
	return nil
}
