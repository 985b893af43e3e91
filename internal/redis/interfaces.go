package redis

import (
	"context"

	"rideshare/internal/domain"
)

// RouteCacheInterface caches routing provider answers.
type RouteCacheInterface interface {
	GetRoute(ctx context.Context, source, destination string) (*domain.RouteEstimate, error)
	SetRoute(ctx context.Context, source, destination string, estimate domain.RouteEstimate) error
}

// DriverCacheInterface caches driver records read by ID.
type DriverCacheInterface interface {
	GetDriver(ctx context.Context, driverID string) (*CachedDriver, error)
	SetDriver(ctx context.Context, driver *CachedDriver) error
	SetDriverIfAbsent(ctx context.Context, driver *CachedDriver) (bool, error)
	InvalidateDriver(ctx context.Context, driverID string) error
}

// Ensure concrete types implement interfaces.
var (
	_ RouteCacheInterface  = (*CacheStore)(nil)
	_ DriverCacheInterface = (*CacheStore)(nil)
)
