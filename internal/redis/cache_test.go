package redis

import (
	"testing"

	"rideshare/internal/domain"
)

func TestRouteKey(t *testing.T) {
	t.Parallel()

	a := RouteKey("Mumbai", "Pune")
	b := RouteKey("  mumbai ", "PUNE")
	if a != b {
		t.Errorf("expected normalized keys to match, got %q and %q", a, b)
	}
	if RouteKey("Pune", "Mumbai") == a {
		t.Error("expected reversed route to use a different key")
	}
	if RouteKey("New  Delhi", "Agra") != RouteKey("new delhi", "agra") {
		t.Error("expected inner whitespace to be collapsed")
	}
}

func TestCachedDriver_RoundTripKeepsVerification(t *testing.T) {
	t.Parallel()

	verified := false
	reason := "License expired"
	d := &domain.Driver{
		ID:            "driver-1",
		Name:          "Asha",
		Phone:         "+919800000001",
		LicenseNumber: "MH12-2020-0001",
		VehicleYear:   2019,
		VerificationRecord: domain.VerificationRecord{
			IsVerified:      &verified,
			RejectionReason: &reason,
		},
	}

	got := NewCachedDriver(d).ToDomain()

	if got.Status() != domain.VerificationRejected {
		t.Errorf("expected REJECTED after cache round trip, got %s", got.Status())
	}
	if got.VehicleYear != 2019 || got.LicenseNumber != d.LicenseNumber {
		t.Errorf("expected documents to survive, got %+v", got)
	}
}
