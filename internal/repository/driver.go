package repository

import (
	"context"

	"rideshare/internal/domain"
)

// DriverRepository defines the persistence operations for drivers.
type DriverRepository interface {
	// Create adds a new driver.
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID retrieves a driver by ID.
	GetByID(ctx context.Context, id string) (*domain.Driver, error)

	// GetByPhone retrieves a driver by phone number.
	GetByPhone(ctx context.Context, phone string) (*domain.Driver, error)

	// GetAll retrieves all drivers, newest first.
	GetAll(ctx context.Context) ([]*domain.Driver, error)

	// UpdateVerification overwrites the verification fields of a driver.
	// Concurrent writers are not serialized; the last write wins.
	UpdateVerification(ctx context.Context, id string, record domain.VerificationRecord) error
}
