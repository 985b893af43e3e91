package domain

import "time"

// RideStatus represents the current status of a posted ride.
type RideStatus string

const (
	RideStatusActive    RideStatus = "ACTIVE"
	RideStatusCancelled RideStatus = "CANCELLED"
	RideStatusCompleted RideStatus = "COMPLETED"
)

// Price bounds for a single seat, in whole rupees.
const (
	MinPricePerSeat int64 = 10
	MaxPricePerSeat int64 = 10000
)

// Ride is a trip offered by a verified driver with seats for sale.
type Ride struct {
	ID             string
	DriverID       string
	Source         string
	Destination    string
	DepartureTime  time.Time
	AvailableSeats int
	PricePerSeat   int64
	Notes          string
	Status         RideStatus
	CreatedAt      time.Time
	CancelledAt    time.Time
}
