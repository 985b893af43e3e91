package tests

import (
	"errors"
	"fmt"
	"time"

	"rideshare/internal/domain"
	"rideshare/internal/redis"
)

// ErrUnknownRoute is returned by MockRouter for pairs it was not given.
var ErrUnknownRoute = errors.New("no route found")

func formatKm(km float64) string {
	return fmt.Sprintf("%.0f km", km)
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool { return &b }

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }

// NewPendingDriver returns a driver that has never been reviewed.
func NewPendingDriver(id string) *domain.Driver {
	return &domain.Driver{
		ID:                 id,
		Name:               "Driver " + id,
		Phone:              "+91-" + id,
		LicenseNumber:      "LIC-" + id,
		VehicleModel:       "Maruti Swift",
		VehiclePlateNumber: "MH12AB1234",
		VehicleYear:        2020,
		CreatedAt:          time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// NewVerifiedDriver returns a verified driver.
func NewVerifiedDriver(id string) *domain.Driver {
	d := NewPendingDriver(id)
	d.IsVerified = BoolPtr(true)
	return d
}

// NewRejectedDriver returns a driver rejected with reason.
func NewRejectedDriver(id, reason string) *domain.Driver {
	d := NewPendingDriver(id)
	d.IsVerified = BoolPtr(false)
	d.RejectionReason = StringPtr(reason)
	return d
}

func twoDigits(i int) string {
	return fmt.Sprintf("%02d", i)
}

func cachedDriver(d *domain.Driver) *redis.CachedDriver {
	return redis.NewCachedDriver(d)
}
