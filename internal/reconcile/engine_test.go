package reconcile

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"actionmap/internal/civic"
	"actionmap/internal/models"
)

// fakeStore is an in-memory Store with the same contract as the PocketBase
// store: unique (name, ocdid) keys, ErrNotFound on a miss, ErrConflict on a
// duplicate create.
type fakeStore struct {
	seq  int
	rows map[string]*models.Representative // id -> row

	// conflictNextCreate makes the next create lose a simulated race: the
	// row is inserted as if a concurrent caller won, and ErrConflict is
	// returned.
	conflictNextCreate bool
	createCalls        int
	updateCalls        int
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[string]*models.Representative{}}
}

func (f *fakeStore) FindRepresentativeByKey(name, ocdid string) (*models.Representative, error) {
	for _, row := range f.rows {
		if row.Name == name && row.OCDID == ocdid {
			cp := *row
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeStore) CreateRepresentative(rep *models.Representative) (*models.Representative, error) {
	f.createCalls++
	for _, row := range f.rows {
		if row.Name == rep.Name && row.OCDID == rep.OCDID {
			return nil, models.ErrConflict
		}
	}

	f.seq++
	cp := *rep
	cp.ID = fmt.Sprintf("rep%d", f.seq)
	f.rows[cp.ID] = &cp

	if f.conflictNextCreate {
		f.conflictNextCreate = false
		return nil, models.ErrConflict
	}
	out := cp
	return &out, nil
}

func (f *fakeStore) UpdateRepresentative(rep *models.Representative) (*models.Representative, error) {
	f.updateCalls++
	row, ok := f.rows[rep.ID]
	if !ok {
		return nil, models.ErrNotFound
	}
	row.Title = rep.Title
	row.Street = rep.Street
	row.City = rep.City
	row.State = rep.State
	row.Zip = rep.Zip
	row.Party = rep.Party
	row.PhotoURL = rep.PhotoURL
	cp := *row
	return &cp, nil
}

func (f *fakeStore) countByKey(name, ocdid string) int {
	n := 0
	for _, row := range f.rows {
		if row.Name == name && row.OCDID == ocdid {
			n++
		}
	}
	return n
}

func strptr(s string) *string { return &s }

func twoOfficialResponse() *civic.Response {
	return &civic.Response{
		Officials: []civic.Official{
			{Name: "John Doe"},
			{Name: "Jane Smith"},
		},
		Offices: []civic.Office{
			{Name: "Senator", DivisionID: "ocd-division/country:us/state:ca", OfficialIndices: []int{0}},
			{Name: "Representative", DivisionID: "ocd-division/country:us/state:ca/cd:12", OfficialIndices: []int{1}},
		},
	}
}

func TestReconcileCreatesRepresentatives(t *testing.T) {
	store := newFakeStore()
	engine := NewEngine(store)

	reps, err := engine.Reconcile(context.Background(), twoOfficialResponse())
	require.NoError(t, err)
	require.Len(t, reps, 2)

	assert.Equal(t, "John Doe", reps[0].Name)
	assert.Equal(t, "Senator", reps[0].Title)
	assert.Equal(t, "ocd-division/country:us/state:ca", reps[0].OCDID)
	assert.Equal(t, "Jane Smith", reps[1].Name)
	assert.Equal(t, "Representative", reps[1].Title)

	// Attributes absent in the payload are nil, not empty strings.
	assert.Nil(t, reps[0].Street)
	assert.Nil(t, reps[0].City)
	assert.Nil(t, reps[0].State)
	assert.Nil(t, reps[0].Zip)
	assert.Nil(t, reps[0].Party)
	assert.Nil(t, reps[0].PhotoURL)
}

func TestReconcileSingleOfficialScenario(t *testing.T) {
	store := newFakeStore()
	engine := NewEngine(store)

	resp := &civic.Response{
		Officials: []civic.Official{{Name: "Jane Smith"}},
		Offices: []civic.Office{
			{Name: "Representative", DivisionID: "ocd-division/country:us/state:tx", OfficialIndices: []int{0}},
		},
	}

	reps, err := engine.Reconcile(context.Background(), resp)
	require.NoError(t, err)
	require.Len(t, reps, 1)

	rep := reps[0]
	assert.Equal(t, "Jane Smith", rep.Name)
	assert.Equal(t, "Representative", rep.Title)
	assert.Equal(t, "ocd-division/country:us/state:tx", rep.OCDID)
	assert.Nil(t, rep.Street)
	assert.Nil(t, rep.City)
	assert.Nil(t, rep.State)
	assert.Nil(t, rep.Zip)
	assert.Nil(t, rep.Party)
	assert.Nil(t, rep.PhotoURL)
}

func TestReconcileIdempotent(t *testing.T) {
	store := newFakeStore()
	engine := NewEngine(store)
	resp := twoOfficialResponse()

	first, err := engine.Reconcile(context.Background(), resp)
	require.NoError(t, err)
	second, err := engine.Reconcile(context.Background(), resp)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	assert.Len(t, store.rows, 2)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[1].ID, second[1].ID)
	assert.Equal(t, 1, store.countByKey("John Doe", "ocd-division/country:us/state:ca"))
}

func TestReconcileUpsertConvergence(t *testing.T) {
	store := newFakeStore()
	existing, err := store.CreateRepresentative(&models.Representative{
		Name:  "John Doe",
		OCDID: "ocd-division/country:us/state:ca",
		Title: "Old Title",
	})
	require.NoError(t, err)

	engine := NewEngine(store)
	reps, err := engine.Reconcile(context.Background(), twoOfficialResponse())
	require.NoError(t, err)
	require.Len(t, reps, 2)

	// The existing row is reused and updated in place, never duplicated.
	assert.Equal(t, existing.ID, reps[0].ID)
	assert.Equal(t, "Senator", reps[0].Title)
	assert.Equal(t, 1, store.countByKey("John Doe", "ocd-division/country:us/state:ca"))
	assert.Len(t, store.rows, 2)
}

func TestReconcileFullReplaceNullsStaleFields(t *testing.T) {
	store := newFakeStore()
	engine := NewEngine(store)

	withAddress := &civic.Response{
		Officials: []civic.Official{{
			Name:     "John Doe",
			Address:  []civic.Address{{Line1: "123 Main St", City: "Sacramento", State: "CA", Zip: "95814"}},
			Party:    strptr("Independent"),
			PhotoURL: strptr("https://example.com/photo.jpg"),
		}},
		Offices: []civic.Office{
			{Name: "Senator", DivisionID: "ocd-1", OfficialIndices: []int{0}},
		},
	}

	reps, err := engine.Reconcile(context.Background(), withAddress)
	require.NoError(t, err)
	require.NotNil(t, reps[0].Street)
	assert.Equal(t, "123 Main St", *reps[0].Street)

	// Second pass from a degraded payload: the address, party and photo are
	// gone, so the stored values must be erased rather than carried over.
	withoutAddress := &civic.Response{
		Officials: []civic.Official{{Name: "John Doe"}},
		Offices: []civic.Office{
			{Name: "Senator", DivisionID: "ocd-1", OfficialIndices: []int{0}},
		},
	}

	reps, err = engine.Reconcile(context.Background(), withoutAddress)
	require.NoError(t, err)
	require.Len(t, reps, 1)
	assert.Nil(t, reps[0].Street)
	assert.Nil(t, reps[0].City)
	assert.Nil(t, reps[0].State)
	assert.Nil(t, reps[0].Zip)
	assert.Nil(t, reps[0].Party)
	assert.Nil(t, reps[0].PhotoURL)
	assert.Equal(t, 1, store.countByKey("John Doe", "ocd-1"))
}

func TestReconcileOnlyFirstAddressUsed(t *testing.T) {
	store := newFakeStore()
	engine := NewEngine(store)

	resp := &civic.Response{
		Officials: []civic.Official{{
			Name: "John Doe",
			Address: []civic.Address{
				{Line1: "1 First St", City: "Austin", State: "TX", Zip: "73301"},
				{Line1: "2 Second St", City: "Dallas", State: "TX", Zip: "75201"},
			},
		}},
		Offices: []civic.Office{
			{Name: "Senator", DivisionID: "ocd-1", OfficialIndices: []int{0}},
		},
	}

	reps, err := engine.Reconcile(context.Background(), resp)
	require.NoError(t, err)
	require.NotNil(t, reps[0].Street)
	assert.Equal(t, "1 First St", *reps[0].Street)
	assert.Equal(t, "Austin", *reps[0].City)
}

func TestReconcileUnmatchedOfficial(t *testing.T) {
	store := newFakeStore()
	engine := NewEngine(store)

	resp := &civic.Response{
		Officials: []civic.Official{{Name: "John Doe"}},
		Offices:   nil,
	}

	reps, err := engine.Reconcile(context.Background(), resp)
	require.NoError(t, err)
	require.Len(t, reps, 1)
	assert.Equal(t, "", reps[0].Title)
	assert.Equal(t, "", reps[0].OCDID)
}

func TestReconcilePreservesInputOrder(t *testing.T) {
	store := newFakeStore()
	engine := NewEngine(store)

	resp := &civic.Response{
		Officials: []civic.Official{
			{Name: "Unmatched One"},
			{Name: "Jane Smith"},
			{Name: "Unmatched Two"},
		},
		Offices: []civic.Office{
			{Name: "Governor", DivisionID: "ocd-division/country:us/state:ca", OfficialIndices: []int{1}},
		},
	}

	reps, err := engine.Reconcile(context.Background(), resp)
	require.NoError(t, err)
	require.Len(t, reps, 3)
	assert.Equal(t, "Unmatched One", reps[0].Name)
	assert.Equal(t, "Jane Smith", reps[1].Name)
	assert.Equal(t, "Unmatched Two", reps[2].Name)
	assert.Equal(t, "Governor", reps[1].Title)
}

func TestReconcileCreateConflictRetriesAsUpdate(t *testing.T) {
	store := newFakeStore()
	store.conflictNextCreate = true
	engine := NewEngine(store)

	resp := &civic.Response{
		Officials: []civic.Official{{Name: "John Doe"}},
		Offices: []civic.Office{
			{Name: "Senator", DivisionID: "ocd-1", OfficialIndices: []int{0}},
		},
	}

	reps, err := engine.Reconcile(context.Background(), resp)
	require.NoError(t, err)
	require.Len(t, reps, 1)
	assert.Equal(t, "Senator", reps[0].Title)
	assert.Equal(t, 1, store.countByKey("John Doe", "ocd-1"))
	assert.GreaterOrEqual(t, store.updateCalls, 1)
}

func TestReconcileContextCanceled(t *testing.T) {
	store := newFakeStore()
	engine := NewEngine(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reps, err := engine.Reconcile(ctx, twoOfficialResponse())
	assert.Empty(t, reps)
	assert.ErrorIs(t, err, context.Canceled)
}

// failingStore wraps fakeStore and rejects updates for one name, to show
// per-official failures do not abort the batch.
type failingStore struct {
	*fakeStore
	failName string
}

func (f *failingStore) CreateRepresentative(rep *models.Representative) (*models.Representative, error) {
	if rep.Name == f.failName {
		return nil, errors.New("validation failed")
	}
	return f.fakeStore.CreateRepresentative(rep)
}

func TestReconcilePartialFailure(t *testing.T) {
	store := &failingStore{fakeStore: newFakeStore(), failName: "John Doe"}
	engine := NewEngine(store)

	reps, err := engine.Reconcile(context.Background(), twoOfficialResponse())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "John Doe")

	// The other official still went through.
	require.Len(t, reps, 1)
	assert.Equal(t, "Jane Smith", reps[0].Name)
}
