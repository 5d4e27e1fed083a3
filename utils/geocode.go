package authUtils

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const defaultGeocoderBaseURL = "https://nominatim.openstreetmap.org"

// Geocoder resolves coordinates to a human-readable address via the
// Nominatim reverse endpoint. Lookups are best effort: on any failure or
// timeout the caller gets a fixed-precision coordinate string instead of
// an error, so issue submission never blocks on geocoding.
type Geocoder struct {
	client *resty.Client
}

func NewGeocoder() *Geocoder {
	baseURL := os.Getenv("GEOCODER_BASE_URL")
	if baseURL == "" {
		baseURL = defaultGeocoderBaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(5 * time.Second).
		SetHeader("Accept", "application/json")
	return &Geocoder{client: client}
}

// ReverseGeocode never fails; it degrades to "lat, lng" at 4 decimals
func (g *Geocoder) ReverseGeocode(ctx context.Context, lat, lng float64) string {
	fallback := fmt.Sprintf("%.4f, %.4f", lat, lng)

	var result struct {
		DisplayName string `json:"display_name"`
	}
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"format": "jsonv2",
			"lat":    fmt.Sprintf("%f", lat),
			"lon":    fmt.Sprintf("%f", lng),
		}).
		SetResult(&result).
		Get("/reverse")
	if err != nil {
		logrus.WithError(err).Debug("reverse geocode failed")
		return fallback
	}
	if resp.IsError() || result.DisplayName == "" {
		return fallback
	}
	return result.DisplayName
}
