package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fwojciec/orgsearch"
)

// DefaultIPLocatorURL is the ip-api.com endpoint queried by IPLocator.
const DefaultIPLocatorURL = "http://ip-api.com/json/?fields=status,message,lat,lon"

var _ orgsearch.Locator = (*IPLocator)(nil)

// IPLocator approximates the current position from the public IP address.
type IPLocator struct {
	client *http.Client
	url    string
	now    func() time.Time
}

// NewIPLocator returns an IPLocator querying url. An empty url uses
// DefaultIPLocatorURL.
func NewIPLocator(url string) *IPLocator {
	if url == "" {
		url = DefaultIPLocatorURL
	}
	return &IPLocator{
		client: &http.Client{},
		url:    url,
		now:    time.Now,
	}
}

type ipAPIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Locate returns the position reported for the caller's IP address.
// A context deadline maps to LocationTimeout; every other failure maps to
// LocationPositionUnavailable.
func (l *IPLocator) Locate(ctx context.Context) (orgsearch.Position, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return orgsearch.Position{}, unavailable(err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return orgsearch.Position{}, &orgsearch.LocationError{Reason: orgsearch.LocationTimeout, Err: err}
		}
		return orgsearch.Position{}, unavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return orgsearch.Position{}, unavailable(fmt.Errorf("HTTP %d from %s", resp.StatusCode, l.url))
	}

	var body ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return orgsearch.Position{}, unavailable(fmt.Errorf("decode location: %w", err))
	}
	if body.Status != "success" {
		return orgsearch.Position{}, unavailable(fmt.Errorf("ip lookup failed: %s", body.Message))
	}

	c := orgsearch.Coordinate{Latitude: body.Lat, Longitude: body.Lon}
	if err := c.Validate(); err != nil {
		return orgsearch.Position{}, unavailable(err)
	}
	return orgsearch.Position{Coordinate: c, Timestamp: l.now()}, nil
}

func unavailable(err error) error {
	return &orgsearch.LocationError{Reason: orgsearch.LocationPositionUnavailable, Err: err}
}
