package authUtils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestGeocoder(t *testing.T, handler http.HandlerFunc) *Geocoder {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	t.Setenv("GEOCODER_BASE_URL", server.URL)
	return NewGeocoder()
}

func TestReverseGeocodeSuccess(t *testing.T) {
	geocoder := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"display_name": "Connaught Place, New Delhi"}`))
	})

	address := geocoder.ReverseGeocode(context.Background(), 28.6139, 77.209)
	assert.Equal(t, "Connaught Place, New Delhi", address)
}

func TestReverseGeocodeFallsBackOnServerError(t *testing.T) {
	geocoder := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	address := geocoder.ReverseGeocode(context.Background(), 28.6139, 77.209)
	assert.Equal(t, "28.6139, 77.2090", address)
}

func TestReverseGeocodeFallsBackOnEmptyResult(t *testing.T) {
	geocoder := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	})

	address := geocoder.ReverseGeocode(context.Background(), 12.9716, 77.5946)
	assert.Equal(t, "12.9716, 77.5946", address)
}

func TestReverseGeocodeFallsBackOnUnreachableHost(t *testing.T) {
	t.Setenv("GEOCODER_BASE_URL", "http://127.0.0.1:1")
	geocoder := NewGeocoder()

	address := geocoder.ReverseGeocode(context.Background(), -33.8688, 151.2093)
	assert.Equal(t, "-33.8688, 151.2093", address)
}
