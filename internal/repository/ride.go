package repository

import (
	"context"
	"time"

	"rideshare/internal/domain"
)

// RideSearch selects active rides departing in [DepartureFrom, DepartureTo).
// Empty text, a zero DepartureTo and a zero MaxPrice match everything.
type RideSearch struct {
	Source        string
	Destination   string
	DepartureFrom time.Time
	DepartureTo   time.Time
	MaxPrice      int64
	Limit         int
}

// RideRepository defines the persistence operations for rides.
type RideRepository interface {
	// Create persists a new ride.
	Create(ctx context.Context, ride *domain.Ride) error

	// GetByID retrieves a ride by ID.
	GetByID(ctx context.Context, id string) (*domain.Ride, error)

	// GetByDriverID retrieves the rides posted by a driver, newest first.
	GetByDriverID(ctx context.Context, driverID string) ([]*domain.Ride, error)

	// Search returns active rides matching the filter, soonest departure first.
	// Source and destination match case-insensitively as substrings.
	Search(ctx context.Context, filter RideSearch) ([]*domain.Ride, error)

	// Update updates an existing ride.
	Update(ctx context.Context, ride *domain.Ride) error
}
