package geocode_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vibast-solutions/ms-go-bootcamps/app/geocode"
	"github.com/vibast-solutions/ms-go-bootcamps/config"
)

func TestGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "02881" {
			t.Fatalf("unexpected query %q", got)
		}
		if got := r.URL.Query().Get("format"); got != "json" {
			t.Fatalf("unexpected format %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"41.483657","lon":"-71.525909","display_name":"Kingston, RI 02881"}]`))
	}))
	defer server.Close()

	client := geocode.NewClient(config.GeocoderConfig{BaseURL: server.URL})
	location, err := client.Geocode(context.Background(), "02881")
	if err != nil {
		t.Fatalf("geocode failed: %v", err)
	}

	if location.Type != "Point" {
		t.Fatalf("expected Point, got %q", location.Type)
	}
	// GeoJSON order is [longitude, latitude]
	if location.Coordinates[0] != -71.525909 || location.Coordinates[1] != 41.483657 {
		t.Fatalf("unexpected coordinates %v", location.Coordinates)
	}
	if location.FormattedAddress != "Kingston, RI 02881" {
		t.Fatalf("unexpected address %q", location.FormattedAddress)
	}
}

func TestGeocodeNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := geocode.NewClient(config.GeocoderConfig{BaseURL: server.URL})
	if _, err := client.Geocode(context.Background(), "nowhere"); !errors.Is(err, geocode.ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}
}

func TestGeocodeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := geocode.NewClient(config.GeocoderConfig{BaseURL: server.URL})
	if _, err := client.Geocode(context.Background(), "02881"); err == nil {
		t.Fatal("expected error for 502 response")
	}
}
