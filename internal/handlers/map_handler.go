package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"actionmap/internal/models"
)

// MapStore is the consumed slice of the store for map navigation data.
type MapStore interface {
	SaveState(state *models.State) (*models.State, error)
	ListStates() ([]*models.State, error)
	FindStateBySymbol(symbol string) (*models.State, error)
	SaveCounty(county *models.County) (*models.County, error)
	CountiesForState(stateID string) ([]*models.County, error)
	FindCounty(stateID, fipsCode string) (*models.County, error)
}

// MapHandler serves the state/county map data endpoints.
type MapHandler struct {
	store MapStore
}

// NewMapHandler wires the handler.
func NewMapHandler(store MapStore) *MapHandler {
	return &MapHandler{store: store}
}

// HandleListStates returns all states.
func (h *MapHandler) HandleListStates(w http.ResponseWriter, r *http.Request) {
	states, err := h.store.ListStates()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "error fetching states")
		return
	}
	writeJSON(w, http.StatusOK, states)
}

// HandleSaveState upserts a state (map data load).
func (h *MapHandler) HandleSaveState(w http.ResponseWriter, r *http.Request) {
	var state models.State
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := state.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	saved, err := h.store.SaveState(&state)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "error saving state")
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// HandleGetState returns a state and its counties.
func (h *MapHandler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	state, ok := h.findState(w, r)
	if !ok {
		return
	}

	counties, err := h.store.CountiesForState(state.ID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "error fetching counties")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"state":    state,
		"counties": counties,
	})
}

// HandleListCounties returns the counties of a state.
func (h *MapHandler) HandleListCounties(w http.ResponseWriter, r *http.Request) {
	state, ok := h.findState(w, r)
	if !ok {
		return
	}

	counties, err := h.store.CountiesForState(state.ID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "error fetching counties")
		return
	}
	writeJSON(w, http.StatusOK, counties)
}

// HandleSaveCounty upserts a county under a state.
func (h *MapHandler) HandleSaveCounty(w http.ResponseWriter, r *http.Request) {
	state, ok := h.findState(w, r)
	if !ok {
		return
	}

	var county models.County
	if err := json.NewDecoder(r.Body).Decode(&county); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	county.StateID = state.ID

	if err := county.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	saved, err := h.store.SaveCounty(&county)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "error saving county")
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// HandleGetCounty returns one county by state symbol and county FIPS code.
func (h *MapHandler) HandleGetCounty(w http.ResponseWriter, r *http.Request) {
	state, ok := h.findState(w, r)
	if !ok {
		return
	}

	fips := r.PathValue("fips")
	county, err := h.store.FindCounty(state.ID, fips)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "county not found")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "error fetching county")
		return
	}
	writeJSON(w, http.StatusOK, county)
}

func (h *MapHandler) findState(w http.ResponseWriter, r *http.Request) (*models.State, bool) {
	symbol := r.PathValue("symbol")
	if symbol == "" {
		writeMessage(w, http.StatusBadRequest, "state symbol is required")
		return nil, false
	}

	state, err := h.store.FindStateBySymbol(symbol)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "state not found")
			return nil, false
		}
		writeMessage(w, http.StatusInternalServerError, "error fetching state")
		return nil, false
	}
	return state, true
}
