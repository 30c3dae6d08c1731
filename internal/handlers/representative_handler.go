package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"actionmap/internal/civic"
	"actionmap/internal/formatter"
	"actionmap/internal/logging"
	"actionmap/internal/models"
	"actionmap/internal/reconcile"
)

// CivicLookup is the consumed slice of the civic API client.
type CivicLookup interface {
	LookupByAddress(ctx context.Context, address string) (*civic.Response, error)
}

// RepresentativeStore is the consumed slice of the store for read paths.
type RepresentativeStore interface {
	GetRepresentative(id string) (*models.Representative, error)
	ListRepresentatives() ([]*models.Representative, error)
}

// RepresentativeHandler serves representative search and read endpoints.
type RepresentativeHandler struct {
	store  RepresentativeStore
	civic  CivicLookup
	engine *reconcile.Engine
}

// NewRepresentativeHandler wires the handler.
func NewRepresentativeHandler(store RepresentativeStore, lookup CivicLookup, engine *reconcile.Engine) *RepresentativeHandler {
	return &RepresentativeHandler{
		store:  store,
		civic:  lookup,
		engine: engine,
	}
}

// HandleSearch looks up officials for an address, reconciles them into the
// store and returns the resulting representatives in lookup order.
func (h *RepresentativeHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	log := logging.With("handlers")

	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		// Rejected before any upstream call.
		writeMessage(w, http.StatusBadRequest, "address is required")
		return
	}

	resp, err := h.civic.LookupByAddress(r.Context(), address)
	if err != nil {
		log.Error().Err(err).Str("address", address).Msg("civic lookup failed")
		if errors.Is(err, civic.ErrInvalidAddress) {
			writeMessage(w, http.StatusBadRequest, "invalid address")
			return
		}
		writeMessage(w, http.StatusBadGateway, "civic information service unavailable")
		return
	}

	reps, err := h.engine.Reconcile(r.Context(), resp)
	if err != nil {
		// Officials are reconciled independently; partial failures are
		// logged and the successful entries still come back.
		log.Warn().Err(err).Int("resolved", len(reps)).Msg("reconcile finished with errors")
		if len(reps) == 0 {
			writeMessage(w, http.StatusInternalServerError, "failed to reconcile representatives")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":           len(reps),
		"representatives": formatter.Representatives(reps),
	})
}

// HandleList returns all stored representatives.
func (h *RepresentativeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	reps, err := h.store.ListRepresentatives()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "error fetching representatives")
		return
	}
	writeJSON(w, http.StatusOK, formatter.Representatives(reps))
}

// HandleGet returns one representative by record id.
func (h *RepresentativeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeMessage(w, http.StatusBadRequest, "id is required")
		return
	}

	rep, err := h.store.GetRepresentative(id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "representative not found")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "error fetching representative")
		return
	}
	writeJSON(w, http.StatusOK, formatter.Representative(rep))
}
