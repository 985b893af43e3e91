package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"rideshare/internal/domain"
)

type stubRouter struct {
	estimate domain.RouteEstimate
	err      error
	block    bool
	calls    int32
}

func (r *stubRouter) Estimate(ctx context.Context, origin, destination string) (domain.RouteEstimate, error) {
	atomic.AddInt32(&r.calls, 1)
	if r.block {
		<-ctx.Done()
		return domain.RouteEstimate{}, ctx.Err()
	}
	return r.estimate, r.err
}

type stubRouteCache struct {
	routes  map[string]domain.RouteEstimate
	getErr  error
	setHits int32
}

func newStubRouteCache() *stubRouteCache {
	return &stubRouteCache{routes: make(map[string]domain.RouteEstimate)}
}

func (c *stubRouteCache) GetRoute(ctx context.Context, source, destination string) (*domain.RouteEstimate, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	est, ok := c.routes[source+"|"+destination]
	if !ok {
		return nil, nil
	}
	return &est, nil
}

func (c *stubRouteCache) SetRoute(ctx context.Context, source, destination string, estimate domain.RouteEstimate) error {
	atomic.AddInt32(&c.setHits, 1)
	c.routes[source+"|"+destination] = estimate
	return nil
}

// ──────────────────────────────────────────────
// 1. FARE FORMULA
// ──────────────────────────────────────────────

func TestCalculateFare(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		distanceKm float64
		want       int64
	}{
		{name: "zero distance pays base fare", distanceKm: 0, want: 50},
		{name: "sub-kilometre rounds down", distanceKm: 0.1, want: 50},
		{name: "half rupee rounds up", distanceKm: 0.5, want: 52},
		{name: "100 km", distanceKm: 100, want: 350},
		{name: "Mumbai to Pune", distanceKm: 148, want: 494},
		{name: "fractional distance", distanceKm: 148.3, want: 495},
		{name: "just under the cap", distanceKm: 1649, want: 4997},
		{name: "exactly at the cap", distanceKm: 1650, want: 5000},
		{name: "long haul is capped", distanceKm: 2000, want: 5000},
		{name: "negative distance pays base fare", distanceKm: -10, want: 50},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := CalculateFare(tc.distanceKm); got != tc.want {
				t.Errorf("CalculateFare(%v) = %d, want %d", tc.distanceKm, got, tc.want)
			}
		})
	}
}

func TestCalculateFare_StaysWithinBoundsAndIsMonotonic(t *testing.T) {
	t.Parallel()

	prev := CalculateFare(0)
	for d := 0.0; d <= 3000; d += 0.25 {
		fare := CalculateFare(d)
		if fare < domain.BaseFare || fare > domain.MaximumFare {
			t.Fatalf("fare %d for %v km outside [%d, %d]", fare, d, domain.BaseFare, domain.MaximumFare)
		}
		if fare < prev {
			t.Fatalf("fare decreased from %d to %d at %v km", prev, fare, d)
		}
		prev = fare
	}
}

// ──────────────────────────────────────────────
// 2. QUOTE
// ──────────────────────────────────────────────

func TestQuote_ReturnsRouteDetails(t *testing.T) {
	t.Parallel()

	router := &stubRouter{estimate: domain.RouteEstimate{DistanceKm: 148, DistanceText: "148 km", DurationText: "2 hours 55 mins"}}
	svc := NewFareService(router, nil, time.Second, nil)

	quote, err := svc.Quote(context.Background(), QuoteRequest{Source: " Mumbai ", Destination: "Pune"})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if quote.CalculatedFare != 494 {
		t.Errorf("expected fare 494, got %d", quote.CalculatedFare)
	}
	if quote.Source != "Mumbai" {
		t.Errorf("expected trimmed source, got %q", quote.Source)
	}
	if quote.DistanceText != "148 km" || quote.DurationText != "2 hours 55 mins" {
		t.Errorf("expected route texts to be echoed, got %q / %q", quote.DistanceText, quote.DurationText)
	}
	if quote.BaseFare != 50 || quote.RatePerKm != 3 || quote.MaximumFare != 5000 {
		t.Errorf("unexpected fare constants: %+v", quote)
	}
}

func TestQuote_MissingEndpoints(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		req  QuoteRequest
	}{
		{name: "empty source", req: QuoteRequest{Source: "", Destination: "Pune"}},
		{name: "empty destination", req: QuoteRequest{Source: "Mumbai", Destination: ""}},
		{name: "whitespace only", req: QuoteRequest{Source: "   ", Destination: "\t"}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router := &stubRouter{}
			svc := NewFareService(router, nil, time.Second, nil)

			_, err := svc.Quote(context.Background(), tc.req)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected validation error, got: %v", err)
			}
			if !errors.Is(err, ErrMissingEndpoints) {
				t.Errorf("expected ErrMissingEndpoints, got: %v", err)
			}
			if atomic.LoadInt32(&router.calls) != 0 {
				t.Error("expected router not to be called")
			}
		})
	}
}

func TestQuote_RoutingFailure(t *testing.T) {
	t.Parallel()

	cause := errors.New("ZERO_RESULTS")
	svc := NewFareService(&stubRouter{err: cause}, nil, time.Second, nil)

	_, err := svc.Quote(context.Background(), QuoteRequest{Source: "Mumbai", Destination: "Atlantis"})
	if !errors.Is(err, ErrRoutingUnavailable) {
		t.Fatalf("expected ErrRoutingUnavailable, got: %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be preserved, got: %v", err)
	}
	if errors.Is(err, ErrValidation) {
		t.Error("routing failure must not look like a validation error")
	}
}

func TestQuote_RoutingTimeout(t *testing.T) {
	t.Parallel()

	svc := NewFareService(&stubRouter{block: true}, nil, 20*time.Millisecond, nil)

	_, err := svc.Quote(context.Background(), QuoteRequest{Source: "Mumbai", Destination: "Pune"})
	if !errors.Is(err, ErrRoutingUnavailable) {
		t.Fatalf("expected ErrRoutingUnavailable, got: %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded cause, got: %v", err)
	}
}

func TestQuote_InvalidDistanceFromRouter(t *testing.T) {
	t.Parallel()

	svc := NewFareService(&stubRouter{estimate: domain.RouteEstimate{DistanceKm: -1}}, nil, time.Second, nil)

	_, err := svc.Quote(context.Background(), QuoteRequest{Source: "Mumbai", Destination: "Pune"})
	if !errors.Is(err, ErrRoutingUnavailable) {
		t.Fatalf("expected ErrRoutingUnavailable, got: %v", err)
	}
}

func TestQuote_UsesRouteCache(t *testing.T) {
	t.Parallel()

	router := &stubRouter{estimate: domain.RouteEstimate{DistanceKm: 100, DistanceText: "100 km"}}
	cache := newStubRouteCache()
	svc := NewFareService(router, cache, time.Second, nil)

	for i := 0; i < 3; i++ {
		quote, err := svc.Quote(context.Background(), QuoteRequest{Source: "A", Destination: "B"})
		if err != nil {
			t.Fatalf("quote %d: expected no error, got: %v", i, err)
		}
		if quote.CalculatedFare != 350 {
			t.Errorf("quote %d: expected 350, got %d", i, quote.CalculatedFare)
		}
	}

	if calls := atomic.LoadInt32(&router.calls); calls != 1 {
		t.Errorf("expected 1 router call, got %d", calls)
	}
	if hits := atomic.LoadInt32(&cache.setHits); hits != 1 {
		t.Errorf("expected 1 cache write, got %d", hits)
	}
}

func TestQuote_CacheErrorFallsBackToRouter(t *testing.T) {
	t.Parallel()

	router := &stubRouter{estimate: domain.RouteEstimate{DistanceKm: 2000}}
	cache := newStubRouteCache()
	cache.getErr = errors.New("connection refused")
	svc := NewFareService(router, cache, time.Second, nil)

	quote, err := svc.Quote(context.Background(), QuoteRequest{Source: "Delhi", Destination: "Chennai"})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if quote.CalculatedFare != 5000 {
		t.Errorf("expected capped fare 5000, got %d", quote.CalculatedFare)
	}
}
