// Package nominatim implements orgsearch.Geocoder using the OpenStreetMap
// Nominatim search API.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fwojciec/orgsearch"
)

// API docs: https://nominatim.org/release-docs/develop/api/Search/
const (
	DefaultBaseURL = "https://nominatim.openstreetmap.org/search"
	ProviderName   = "nominatim"
	DefaultTimeout = 10 * time.Second
)

var _ orgsearch.Geocoder = (*Client)(nil)

// Client queries Nominatim for US postal codes and cities.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the search endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent sets the User-Agent header. Nominatim rejects requests
// without one.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient returns a Nominatim client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    DefaultBaseURL,
		userAgent:  orgsearch.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// GeocodeZip looks up a US postal code.
func (c *Client) GeocodeZip(ctx context.Context, zip string) (orgsearch.Coordinate, error) {
	q := url.Values{}
	q.Set("postalcode", zip)
	return c.search(ctx, q, "zip code "+zip)
}

// GeocodeCity looks up a US city by name and state.
func (c *Client) GeocodeCity(ctx context.Context, city, state string) (orgsearch.Coordinate, error) {
	q := url.Values{}
	q.Set("city", city)
	q.Set("state", state)
	return c.search(ctx, q, orgsearch.CityKey(city, state))
}

// place is one element of a search response. Coordinates are strings.
type place struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (c *Client) search(ctx context.Context, q url.Values, what string) (orgsearch.Coordinate, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return orgsearch.Coordinate{}, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q.Set("country", "US")
	q.Set("format", "json")
	q.Set("limit", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return orgsearch.Coordinate{}, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return orgsearch.Coordinate{}, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return orgsearch.Coordinate{}, fmt.Errorf("nominatim returned status %d: %s", resp.StatusCode, string(body))
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return orgsearch.Coordinate{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(places) == 0 {
		return orgsearch.Coordinate{}, orgsearch.Errorf(orgsearch.ENOTFOUND, "No coordinates found for %s", what)
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return orgsearch.Coordinate{}, fmt.Errorf("invalid latitude %q: %w", places[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return orgsearch.Coordinate{}, fmt.Errorf("invalid longitude %q: %w", places[0].Lon, err)
	}

	return orgsearch.Coordinate{Latitude: lat, Longitude: lon}, nil
}
