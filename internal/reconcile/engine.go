// Package reconcile turns raw civic API payloads into stable, de-duplicated
// representative records. Officials and offices arrive as two lists joined
// only by position; the engine pairs them, resolves each official's identity
// key (name, division id) and performs a find-or-create-or-update against the
// store so that repeated lookups converge on the same rows.
package reconcile

import (
	"context"
	"errors"
	"fmt"

	"actionmap/internal/civic"
	"actionmap/internal/logging"
	"actionmap/internal/models"
)

// Store is the persistence boundary the engine drives. Implementations must
// enforce uniqueness on (name, ocdid): FindRepresentativeByKey returns
// models.ErrNotFound for a missing key and CreateRepresentative returns
// models.ErrConflict when a concurrent create won the race for the same key.
type Store interface {
	FindRepresentativeByKey(name, ocdid string) (*models.Representative, error)
	CreateRepresentative(rep *models.Representative) (*models.Representative, error)
	UpdateRepresentative(rep *models.Representative) (*models.Representative, error)
}

// Engine reconciles civic lookup responses against the representative store.
type Engine struct {
	store Store
}

// NewEngine creates an engine backed by the given store.
func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Reconcile upserts one representative per official in the response, in input
// order. Each official is handled independently: a persistence failure on one
// is accumulated into the returned error but does not stop the batch, and the
// successfully reconciled representatives are still returned. There is no
// cross-entry transaction; the unique (name, ocdid) index is the backstop for
// concurrent callers.
func (e *Engine) Reconcile(ctx context.Context, resp *civic.Response) ([]*models.Representative, error) {
	log := logging.With("reconcile")

	reps := make([]*models.Representative, 0, len(resp.Officials))
	var errs []error
	for i := range resp.Officials {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		official := &resp.Officials[i]
		office := ResolveOffice(resp.Offices, i)

		rep, err := e.upsert(official, office)
		if err != nil {
			log.Warn().Err(err).Str("official", official.Name).Msg("reconcile failed for official")
			errs = append(errs, fmt.Errorf("official %q: %w", official.Name, err))
			continue
		}
		reps = append(reps, rep)
	}
	return reps, errors.Join(errs...)
}

// upsert finds or creates the representative for one official/office pairing
// and unconditionally replaces its mutable attributes with the freshly
// resolved values. The identity fields (name, ocdid) never change after
// creation.
func (e *Engine) upsert(official *civic.Official, office OfficeInfo) (*models.Representative, error) {
	rep, err := e.store.FindRepresentativeByKey(official.Name, office.DivisionID)
	switch {
	case err == nil:
		apply(rep, official, office)
		return e.store.UpdateRepresentative(rep)

	case errors.Is(err, models.ErrNotFound):
		candidate := &models.Representative{Name: official.Name, OCDID: office.DivisionID}
		apply(candidate, official, office)

		created, createErr := e.store.CreateRepresentative(candidate)
		if createErr == nil {
			return created, nil
		}
		if !errors.Is(createErr, models.ErrConflict) {
			return nil, createErr
		}
		// Lost a create race; the row exists now, so retry as an update.
		rep, err = e.store.FindRepresentativeByKey(official.Name, office.DivisionID)
		if err != nil {
			return nil, err
		}
		apply(rep, official, office)
		return e.store.UpdateRepresentative(rep)

	default:
		return nil, err
	}
}

// apply overwrites every mutable attribute from the latest payload. Fields the
// payload lacks become nil, erasing previously stored values; full replace is
// the contract, not a merge.
func apply(rep *models.Representative, official *civic.Official, office OfficeInfo) {
	rep.Title = office.Name
	rep.Party = official.Party
	rep.PhotoURL = official.PhotoURL

	if addr := official.FirstAddress(); addr != nil {
		rep.Street = optional(addr.Line1)
		rep.City = optional(addr.City)
		rep.State = optional(addr.State)
		rep.Zip = optional(addr.Zip)
	} else {
		rep.Street = nil
		rep.City = nil
		rep.State = nil
		rep.Zip = nil
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
