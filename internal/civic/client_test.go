package civic

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupByAddressParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/representatives", r.URL.Path)
		assert.Equal(t, "1600 Pennsylvania Ave", r.URL.Query().Get("address"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"offices": [
				{"name": "Senator", "divisionId": "ocd-division/country:us/state:ca", "officialIndices": [0]}
			],
			"officials": [
				{"name": "John Doe", "party": "Independent", "address": [{"line1": "123 Main St", "city": "Sacramento", "state": "CA", "zip": "95814"}]}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := client.LookupByAddress(context.Background(), "1600 Pennsylvania Ave")
	require.NoError(t, err)

	require.Len(t, resp.Offices, 1)
	require.Len(t, resp.Officials, 1)
	assert.Equal(t, "Senator", resp.Offices[0].Name)
	assert.Equal(t, []int{0}, resp.Offices[0].OfficialIndices)

	official := resp.Officials[0]
	assert.Equal(t, "John Doe", official.Name)
	require.NotNil(t, official.Party)
	assert.Equal(t, "Independent", *official.Party)
	assert.Nil(t, official.PhotoURL)
	require.NotNil(t, official.FirstAddress())
	assert.Equal(t, "123 Main St", official.FirstAddress().Line1)
}

func TestLookupByAddressInvalidAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"code": 400, "message": "Failed to parse address"}}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.LookupByAddress(context.Background(), "not an address")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidAddress)
	assert.NotErrorIs(t, err, ErrServiceUnavailable)

	var lookupErr *LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, http.StatusBadRequest, lookupErr.StatusCode)
	assert.Equal(t, "Failed to parse address", lookupErr.Message)
}

func TestLookupByAddressServiceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"code": 500, "message": "backend error"}}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.LookupByAddress(context.Background(), "1600 Pennsylvania Ave")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
	assert.NotErrorIs(t, err, ErrInvalidAddress)
}

func TestLookupByAddressOtherClientError(t *testing.T) {
	// A 4xx whose message does not mention the address is not the user's
	// fault; it is treated as transient.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"code": 403, "message": "quota exceeded"}}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.LookupByAddress(context.Background(), "1600 Pennsylvania Ave")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestLookupByAddressMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.LookupByAddress(context.Background(), "1600 Pennsylvania Ave")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}
