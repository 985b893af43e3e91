package maps

import (
	"testing"
	"time"

	"googlemaps.github.io/maps"
)

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in   time.Duration
		want string
	}{
		{in: 0, want: "0 mins"},
		{in: 40 * time.Second, want: "1 min"},
		{in: 35 * time.Minute, want: "35 mins"},
		{in: time.Hour, want: "1 hour"},
		{in: 2*time.Hour + 35*time.Minute, want: "2 hours 35 mins"},
		{in: time.Hour + time.Minute, want: "1 hour 1 min"},
	}

	for _, tc := range testCases {
		if got := formatDuration(tc.in); got != tc.want {
			t.Errorf("formatDuration(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLegEstimate(t *testing.T) {
	t.Parallel()

	leg := &maps.Leg{
		Distance: maps.Distance{HumanReadable: "148 km", Meters: 148_000},
		Duration: 2*time.Hour + 55*time.Minute,
	}

	got := legEstimate(leg)

	if got.DistanceKm != 148 {
		t.Errorf("expected 148 km, got %v", got.DistanceKm)
	}
	if got.DistanceText != "148 km" {
		t.Errorf("expected provider text, got %q", got.DistanceText)
	}
	if got.DurationText != "2 hours 55 mins" {
		t.Errorf("expected 2 hours 55 mins, got %q", got.DurationText)
	}
}

func TestLegEstimate_MissingDistanceText(t *testing.T) {
	t.Parallel()

	got := legEstimate(&maps.Leg{Distance: maps.Distance{Meters: 12_345}})

	if got.DistanceText != "12.3 km" {
		t.Errorf("expected generated text, got %q", got.DistanceText)
	}
}
