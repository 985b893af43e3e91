package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"rideshare/internal/domain"
	"rideshare/internal/logger"
	"rideshare/internal/redis"
)

// Router estimates the driving route between two free-text places.
type Router interface {
	Estimate(ctx context.Context, origin, destination string) (domain.RouteEstimate, error)
}

// FareService quotes distance-based fares.
type FareService struct {
	router     Router
	routeCache redis.RouteCacheInterface
	timeout    time.Duration
	log        logger.Logger
}

// NewFareService creates a new FareService. routeCache may be nil.
// A non-positive timeout leaves the caller's context deadline in charge.
func NewFareService(router Router, routeCache redis.RouteCacheInterface, timeout time.Duration, log logger.Logger) *FareService {
	if log == nil {
		log = logger.NewNop()
	}
	return &FareService{
		router:     router,
		routeCache: routeCache,
		timeout:    timeout,
		log:        log,
	}
}

// QuoteRequest contains the parameters for a fare quote.
type QuoteRequest struct {
	Source      string
	Destination string
}

// Quote returns the fare between source and destination.
func (s *FareService) Quote(ctx context.Context, req QuoteRequest) (*domain.FareQuote, error) {
	source := strings.TrimSpace(req.Source)
	destination := strings.TrimSpace(req.Destination)
	if source == "" || destination == "" {
		return nil, ErrMissingEndpoints
	}

	estimate, err := s.estimate(ctx, source, destination)
	if err != nil {
		s.log.Warning("fare quote failed",
			logger.String("source", source),
			logger.String("destination", destination),
			logger.Error(err),
		)
		return nil, err
	}

	return &domain.FareQuote{
		Source:         source,
		Destination:    destination,
		DistanceKm:     estimate.DistanceKm,
		DistanceText:   estimate.DistanceText,
		DurationText:   estimate.DurationText,
		BaseFare:       domain.BaseFare,
		RatePerKm:      domain.RatePerKm,
		MaximumFare:    domain.MaximumFare,
		CalculatedFare: CalculateFare(estimate.DistanceKm),
	}, nil
}

func (s *FareService) estimate(ctx context.Context, source, destination string) (domain.RouteEstimate, error) {
	if s.routeCache != nil {
		cached, err := s.routeCache.GetRoute(ctx, source, destination)
		if err != nil {
			s.log.Warning("route cache read failed", logger.Error(err))
		} else if cached != nil {
			return *cached, nil
		}
	}

	routeCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		routeCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	estimate, err := s.router.Estimate(routeCtx, source, destination)
	if err != nil {
		return domain.RouteEstimate{}, routingError(err)
	}
	if math.IsNaN(estimate.DistanceKm) || math.IsInf(estimate.DistanceKm, 0) || estimate.DistanceKm < 0 {
		return domain.RouteEstimate{}, routingError(fmt.Errorf("invalid distance %v km", estimate.DistanceKm))
	}

	if s.routeCache != nil {
		if err := s.routeCache.SetRoute(ctx, source, destination, estimate); err != nil {
			s.log.Warning("route cache write failed", logger.Error(err))
		}
	}

	return estimate, nil
}

// CalculateFare applies base fare plus per-km rate, clamps the result to
// [BaseFare, MaximumFare] and rounds to a whole rupee.
func CalculateFare(distanceKm float64) int64 {
	if math.IsNaN(distanceKm) || distanceKm < 0 {
		distanceKm = 0
	}

	raw := float64(domain.BaseFare) + distanceKm*float64(domain.RatePerKm)
	clamped := math.Min(math.Max(raw, float64(domain.BaseFare)), float64(domain.MaximumFare))
	return int64(math.Round(clamped))
}
