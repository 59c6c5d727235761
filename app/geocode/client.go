// Package geocode resolves addresses and zipcodes against a Nominatim-style
// search endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/vibast-solutions/ms-go-bootcamps/app/entity"
	"github.com/vibast-solutions/ms-go-bootcamps/config"
)

var ErrNoResults = errors.New("geocoder returned no results")

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(cfg config.GeocoderConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (c *Client) Geocode(ctx context.Context, location string) (entity.Location, error) {
	query := url.Values{}
	query.Set("q", location)
	query.Set("format", "json")
	query.Set("limit", "1")
	if c.apiKey != "" {
		query.Set("key", c.apiKey)
	}

	endpoint := fmt.Sprintf("%s/search?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return entity.Location{}, err
	}
	req.Header.Set("User-Agent", "ms-go-bootcamps")

	resp, err := c.client.Do(req)
	if err != nil {
		return entity.Location{}, fmt.Errorf("geocoder request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entity.Location{}, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return entity.Location{}, fmt.Errorf("decode geocoder response: %w", err)
	}
	if len(results) == 0 {
		return entity.Location{}, fmt.Errorf("%w for %q", ErrNoResults, location)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return entity.Location{}, fmt.Errorf("parse latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return entity.Location{}, fmt.Errorf("parse longitude: %w", err)
	}

	return entity.Location{
		Type:             "Point",
		Coordinates:      []float64{lng, lat},
		FormattedAddress: results[0].DisplayName,
	}, nil
}
