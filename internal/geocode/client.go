// Package geocode resolves canonical location names to coordinates through
// the Positionstack forward geocoding API.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobad-insights/internal/domain/jobad"
)

const DefaultBaseURL = "http://api.positionstack.com"

// ErrNoResult is returned when the API knows no place for the query.
var ErrNoResult = errors.New("geocode: no result")

// Forwarder resolves one location.
type Forwarder interface {
	Forward(ctx context.Context, location string) (jobad.GeoRecord, error)
}

// Client calls /v1/forward restricted to one country.
type Client struct {
	baseURL    string
	accessKey  string
	country    string
	httpClient *http.Client
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func WithCountry(code string) Option {
	return func(c *Client) { c.country = code }
}

func NewClient(accessKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		accessKey:  accessKey,
		country:    "DE",
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type forwardResponse struct {
	Data  []json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type place struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Type       string  `json:"type"`
	Name       string  `json:"name"`
	Region     string  `json:"region"`
	Confidence float64 `json:"confidence"`
}

// Forward returns the best match for location.
func (c *Client) Forward(ctx context.Context, location string) (jobad.GeoRecord, error) {
	q := url.Values{}
	q.Set("access_key", c.accessKey)
	q.Set("query", location)
	q.Set("limit", "1")
	if c.country != "" {
		q.Set("country", c.country)
	}
	endpoint := c.baseURL + "/v1/forward?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return jobad.GeoRecord{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return jobad.GeoRecord{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return jobad.GeoRecord{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return jobad.GeoRecord{}, fmt.Errorf("geocode %q: status=%d", location, resp.StatusCode)
	}

	var fr forwardResponse
	if err := json.Unmarshal(body, &fr); err != nil {
		return jobad.GeoRecord{}, fmt.Errorf("geocode %q: decode: %w", location, err)
	}
	if fr.Error != nil {
		return jobad.GeoRecord{}, fmt.Errorf("geocode %q: %s: %s", location, fr.Error.Code, fr.Error.Message)
	}
	if len(fr.Data) == 0 {
		return jobad.GeoRecord{}, ErrNoResult
	}

	// An unknown query yields data: [[]] instead of an object.
	var p place
	if err := json.Unmarshal(fr.Data[0], &p); err != nil {
		return jobad.GeoRecord{}, ErrNoResult
	}
	return jobad.GeoRecord{
		Location:   location,
		Name:       p.Name,
		Latitude:   p.Latitude,
		Longitude:  p.Longitude,
		Region:     p.Region,
		Confidence: p.Confidence,
		Type:       p.Type,
	}, nil
}
