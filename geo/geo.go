// Package geo supplies the user's coordinates to the rest of the
// application. Concrete lookups live behind the Provider interface so the
// chat core never touches a specific positioning mechanism; when no provider
// is available the location affordance is simply inert.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Coordinates is an immutable latitude/longitude pair.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.5f,%.5f", c.Latitude, c.Longitude)
}

// ErrUnavailable indicates that no positioning mechanism exists in this
// environment. Callers should treat it as "don't offer the feature", not as
// a failure worth surfacing.
var ErrUnavailable = errors.New("geolocation is not available")

// Provider resolves the user's current coordinates.
type Provider interface {
	Locate(ctx context.Context) (Coordinates, error)
}

// Static always returns a fixed set of coordinates, typically parsed from a
// flag or config file.
type Static struct {
	Coords Coordinates
}

func (s Static) Locate(context.Context) (Coordinates, error) {
	return s.Coords, nil
}

// ParseStatic parses a "lat,lng" pair into a Static provider.
func ParseStatic(s string) (Static, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return Static{}, fmt.Errorf("invalid location %q: want lat,lng", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Static{}, fmt.Errorf("invalid latitude in %q: %w", s, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Static{}, fmt.Errorf("invalid longitude in %q: %w", s, err)
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return Static{}, fmt.Errorf("coordinates out of range: %q", s)
	}
	return Static{Coords: Coordinates{Latitude: lat, Longitude: lng}}, nil
}

// IPLocator estimates coordinates from the machine's public IP address using
// a one-shot JSON endpoint. Accuracy is city-level at best, which is enough
// to anchor a "near me" query.
type IPLocator struct {
	// Endpoint must return a JSON object with "lat" and "lon" numbers.
	// Defaults to ip-api.com when empty.
	Endpoint string
	Client   *http.Client
}

const defaultIPEndpoint = "http://ip-api.com/json/"

func (l IPLocator) Locate(ctx context.Context) (Coordinates, error) {
	endpoint := l.Endpoint
	if endpoint == "" {
		endpoint = defaultIPEndpoint
	}
	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Coordinates{}, fmt.Errorf("build location request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return Coordinates{}, fmt.Errorf("location lookup failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, fmt.Errorf("location lookup failed: %s", resp.Status)
	}

	var body struct {
		Lat *float64 `json:"lat"`
		Lon *float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Coordinates{}, fmt.Errorf("decode location response: %w", err)
	}
	if body.Lat == nil || body.Lon == nil {
		return Coordinates{}, errors.New("location response missing coordinates")
	}
	return Coordinates{Latitude: *body.Lat, Longitude: *body.Lon}, nil
}
