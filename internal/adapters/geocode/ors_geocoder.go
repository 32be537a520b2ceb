package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
	"time"
)

const defaultORSBaseURL = "https://api.openrouteservice.org"

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// ORSGeocoder resolves addresses through the OpenRouteService
// /geocode/search endpoint. Safe for concurrent use.
type ORSGeocoder struct {
	session     *http.Client
	apiKey      string
	baseURL     string
	country     string
	maxAttempts int
	backoff     time.Duration
}

// ORSOption customizes an ORSGeocoder.
type ORSOption func(*ORSGeocoder)

// WithBaseURL points the geocoder at another host, e.g. a self-hosted ORS
// or a test server.
func WithBaseURL(u string) ORSOption {
	return func(g *ORSGeocoder) { g.baseURL = u }
}

func WithHTTPClient(c *http.Client) ORSOption {
	return func(g *ORSGeocoder) { g.session = c }
}

// WithRetry sets the attempt count and the initial backoff.
func WithRetry(attempts int, backoff time.Duration) ORSOption {
	return func(g *ORSGeocoder) {
		if attempts > 0 {
			g.maxAttempts = attempts
		}
		if backoff > 0 {
			g.backoff = backoff
		}
	}
}

func NewORSGeocoder(apiKey string, opts ...ORSOption) (*ORSGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	g := &ORSGeocoder{
		session:     &http.Client{Timeout: 10 * time.Second},
		apiKey:      apiKey,
		baseURL:     defaultORSBaseURL,
		country:     "US",
		maxAttempts: 4,
		backoff:     200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Resolve geocodes a single address. Lookups that return no feature or a
// malformed geometry yield a *ports.ResolutionError.
func (g *ORSGeocoder) Resolve(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.Resolve")(&err)

	norm := Normalize(address)
	if norm == "" {
		return domain.Coordinates{}, &ports.ResolutionError{Address: address, Err: errors.New("empty address")}
	}

	endpoint := g.baseURL + "/geocode/search"

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := g.newRequest(ctx, http.MethodGet, endpoint)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", norm)
		q.Set("boundary.country", g.country)
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: execute request: %w", norm, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: decode response: %w", norm, err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, &ports.ResolutionError{Address: norm, Err: errors.New("no geocode results")}
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, &ports.ResolutionError{Address: norm, Err: errors.New("invalid coordinate format")}
	}

	return domain.Coordinates{Lon: coords[0], Lat: coords[1]}, nil
}
