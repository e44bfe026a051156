// Package geo implements the AddressResolver port against an HTTP
// geolocation provider, with an optional redis cache decorator for
// postal-code lookups.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Client resolves postal codes and forward-geocodes addresses through the
// provider's REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a resolver client for the given provider base URL,
// e.g. "https://geo.example.com".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// postalCodeResponse mirrors the provider's postal-code payload.
// Latitude/Longitude are optional; not every postal code carries coordinates.
type postalCodeResponse struct {
	Street       string   `json:"street"`
	Neighborhood string   `json:"neighborhood"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

// geocodeResponse mirrors the provider's forward-geocoding payload.
type geocodeResponse struct {
	Results []struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

// ResolvePostalCode resolves a postal code to its address data.
func (c *Client) ResolvePostalCode(ctx context.Context, code string) (*ports.ResolvedAddress, error) {
	endpoint := fmt.Sprintf("%s/postal-codes/%s", c.baseURL, url.PathEscape(code))

	var payload postalCodeResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	resolved := &ports.ResolvedAddress{
		Street:       payload.Street,
		Neighborhood: payload.Neighborhood,
		City:         payload.City,
		Region:       payload.State,
	}

	if payload.Latitude != nil && payload.Longitude != nil {
		point, err := kernel.NewGeoPoint(*payload.Latitude, *payload.Longitude)
		if err != nil {
			return nil, err
		}
		resolved.Location = &point
	}

	return resolved, nil
}

// GeocodeAddress forward-geocodes a single-line address.
// Returns nil without error when the provider found no match.
func (c *Client) GeocodeAddress(ctx context.Context, fullAddress string) (*kernel.GeoPoint, error) {
	endpoint := fmt.Sprintf("%s/geocode?q=%s", c.baseURL, url.QueryEscape(fullAddress))

	var payload geocodeResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	if len(payload.Results) == 0 {
		return nil, nil
	}

	point, err := kernel.NewGeoPoint(payload.Results[0].Latitude, payload.Results[0].Longitude)
	if err != nil {
		return nil, err
	}

	return &point, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geo provider returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
