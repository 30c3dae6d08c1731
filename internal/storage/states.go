package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/pocketbase/dbx"
	pbModels "github.com/pocketbase/pocketbase/models"

	"actionmap/internal/models"
)

// SaveState upserts a state by its symbol, so map data loads are idempotent.
func (s *PocketBaseStore) SaveState(state *models.State) (*models.State, error) {
	record, err := s.app.Dao().FindFirstRecordByFilter(
		"states",
		"symbol = {:symbol}",
		dbx.Params{"symbol": state.Symbol},
	)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("failed to find state: %w", err)
		}
		collection, err := s.app.Dao().FindCollectionByNameOrId("states")
		if err != nil {
			return nil, fmt.Errorf("failed to find collection: %w", err)
		}
		record = pbModels.NewRecord(collection)
		record.Set("symbol", state.Symbol)
	}

	record.Set("name", state.Name)
	record.Set("fips_code", state.FIPSCode)
	record.Set("is_territory", state.IsTerritory)
	record.Set("lat_min", state.LatMin)
	record.Set("lat_max", state.LatMax)
	record.Set("long_min", state.LongMin)
	record.Set("long_max", state.LongMax)

	if err := s.app.Dao().SaveRecord(record); err != nil {
		return nil, fmt.Errorf("failed to save state: %w", err)
	}
	return stateFromRecord(record), nil
}

// ListStates returns all stored states.
func (s *PocketBaseStore) ListStates() ([]*models.State, error) {
	records, err := s.app.Dao().FindRecordsByExpr("states")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch states: %w", err)
	}

	states := make([]*models.State, len(records))
	for i, record := range records {
		states[i] = stateFromRecord(record)
	}
	return states, nil
}

// FindStateBySymbol looks a state up by its two-letter symbol.
func (s *PocketBaseStore) FindStateBySymbol(symbol string) (*models.State, error) {
	record, err := s.app.Dao().FindFirstRecordByFilter(
		"states",
		"symbol = {:symbol}",
		dbx.Params{"symbol": symbol},
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find state: %w", err)
	}
	return stateFromRecord(record), nil
}

// SaveCounty upserts a county by its (state, fips_code) pair.
func (s *PocketBaseStore) SaveCounty(county *models.County) (*models.County, error) {
	record, err := s.app.Dao().FindFirstRecordByFilter(
		"counties",
		"state = {:state} && fips_code = {:fips}",
		dbx.Params{"state": county.StateID, "fips": county.FIPSCode},
	)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("failed to find county: %w", err)
		}
		collection, err := s.app.Dao().FindCollectionByNameOrId("counties")
		if err != nil {
			return nil, fmt.Errorf("failed to find collection: %w", err)
		}
		record = pbModels.NewRecord(collection)
		record.Set("state", county.StateID)
		record.Set("fips_code", county.FIPSCode)
	}

	record.Set("name", county.Name)
	record.Set("fips_class", county.FIPSClass)

	if err := s.app.Dao().SaveRecord(record); err != nil {
		return nil, fmt.Errorf("failed to save county: %w", err)
	}
	return countyFromRecord(record), nil
}

// CountiesForState returns the counties recorded for a state.
func (s *PocketBaseStore) CountiesForState(stateID string) ([]*models.County, error) {
	records, err := s.app.Dao().FindRecordsByExpr("counties",
		dbx.HashExp{"state": stateID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch counties: %w", err)
	}

	counties := make([]*models.County, len(records))
	for i, record := range records {
		counties[i] = countyFromRecord(record)
	}
	return counties, nil
}

// FindCounty looks a county up by state record id and county FIPS code.
func (s *PocketBaseStore) FindCounty(stateID, fipsCode string) (*models.County, error) {
	record, err := s.app.Dao().FindFirstRecordByFilter(
		"counties",
		"state = {:state} && fips_code = {:fips}",
		dbx.Params{"state": stateID, "fips": fipsCode},
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find county: %w", err)
	}
	return countyFromRecord(record), nil
}

func stateFromRecord(record *pbModels.Record) *models.State {
	return &models.State{
		ID:          record.Id,
		Name:        record.GetString("name"),
		Symbol:      record.GetString("symbol"),
		FIPSCode:    record.GetInt("fips_code"),
		IsTerritory: record.GetBool("is_territory"),
		LatMin:      record.GetFloat("lat_min"),
		LatMax:      record.GetFloat("lat_max"),
		LongMin:     record.GetFloat("long_min"),
		LongMax:     record.GetFloat("long_max"),
	}
}

func countyFromRecord(record *pbModels.Record) *models.County {
	return &models.County{
		ID:        record.Id,
		StateID:   record.GetString("state"),
		Name:      record.GetString("name"),
		FIPSCode:  record.GetString("fips_code"),
		FIPSClass: record.GetString("fips_class"),
	}
}
