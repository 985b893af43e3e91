package domain

import "time"

// Driver represents a driver's onboarding record: identity, documents
// and the verification decision recorded by an administrator.
type Driver struct {
	ID                 string
	Name               string
	Phone              string
	Email              string
	LicenseNumber      string
	LicenseExpiry      string
	VehicleModel       string
	VehiclePlateNumber string
	VehicleYear        int
	VehicleColor       string
	VerificationRecord
	CreatedAt time.Time
	UpdatedAt time.Time
}
