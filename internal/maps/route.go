package maps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"rideshare/internal/domain"
)

// ErrNoRoute is returned when the provider has no driving route for the pair.
var ErrNoRoute = errors.New("no route found")

// RouteService estimates driving routes with the Google Directions API.
type RouteService struct {
	client   *maps.Client
	region   string
	language string
}

// NewRouteService creates a new RouteService with the given API key.
func NewRouteService(apiKey, region, language string) (*RouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client, region: region, language: language}, nil
}

// Estimate returns the driving distance and duration from origin to destination.
func (s *RouteService) Estimate(ctx context.Context, origin, destination string) (domain.RouteEstimate, error) {
	r := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        maps.TravelModeDriving,
		Language:    s.language,
		Region:      s.region,
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return domain.RouteEstimate{}, fmt.Errorf("maps api error: %w", err)
	}

	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return domain.RouteEstimate{}, ErrNoRoute
	}

	return legEstimate(routes[0].Legs[0]), nil
}

func legEstimate(leg *maps.Leg) domain.RouteEstimate {
	distanceText := leg.Distance.HumanReadable
	if distanceText == "" {
		distanceText = fmt.Sprintf("%.1f km", metersToKm(leg.Distance.Meters))
	}
	return domain.RouteEstimate{
		DistanceKm:   metersToKm(leg.Distance.Meters),
		DistanceText: distanceText,
		DurationText: formatDuration(leg.Duration),
	}
}

func metersToKm(meters int) float64 {
	return float64(meters) / 1000
}

// formatDuration renders a duration the way the Directions API text does,
// e.g. "2 hours 35 mins" or "1 min".
func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	hours := int(d / time.Hour)
	mins := int((d % time.Hour) / time.Minute)

	switch {
	case hours == 0:
		return plural(mins, "min")
	case mins == 0:
		return plural(hours, "hour")
	default:
		return plural(hours, "hour") + " " + plural(mins, "min")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
