package tests

import (
	"context"
	"errors"
	"testing"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
	"rideshare/internal/service"
)

func validRegistration() service.RegisterDriverRequest {
	return service.RegisterDriverRequest{
		Name:               " Asha Patil ",
		Phone:              "+91-9800000001",
		LicenseNumber:      "MH1420110062821",
		VehicleModel:       "Hyundai i20",
		VehiclePlateNumber: "mh12 de 1433",
		VehicleYear:        2021,
	}
}

func TestRegister_CreatesPendingDriver(t *testing.T) {
	t.Parallel()

	repo := NewMockDriverRepository()
	svc := service.NewDriverService(repo, nil, nil)

	driver, err := svc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if driver.ID == "" {
		t.Error("expected an ID to be assigned")
	}
	if driver.Name != "Asha Patil" || driver.VehiclePlateNumber != "MH12 DE 1433" {
		t.Errorf("expected normalized fields, got name=%q plate=%q", driver.Name, driver.VehiclePlateNumber)
	}
	if driver.Status() != domain.VerificationPending {
		t.Errorf("expected PENDING, got %s", driver.Status())
	}
	if repo.GetDriver(driver.ID) == nil {
		t.Error("expected driver to be stored")
	}
}

func TestRegister_Errors(t *testing.T) {
	t.Parallel()

	repo := NewMockDriverRepository()
	svc := service.NewDriverService(repo, nil, nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegistration()); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := svc.Register(ctx, validRegistration()); !errors.Is(err, service.ErrDriverAlreadyRegistered) {
		t.Errorf("expected ErrDriverAlreadyRegistered, got: %v", err)
	}

	req := validRegistration()
	req.LicenseNumber = ""
	if _, err := svc.Register(ctx, req); !errors.Is(err, service.ErrInvalidDriverDetails) {
		t.Errorf("expected ErrInvalidDriverDetails, got: %v", err)
	}

	req = validRegistration()
	req.Phone = "+91-9800000002"
	repo.CreateError = errors.New("disk full")
	if _, err := svc.Register(ctx, req); err == nil || errors.Is(err, service.ErrValidation) {
		t.Errorf("expected storage error, got: %v", err)
	}
}

func TestGetDriver_ReadsThroughCache(t *testing.T) {
	t.Parallel()

	repo := NewMockDriverRepository()
	repo.AddDriver(NewRejectedDriver("d-1", "Plate mismatch"))
	cache := NewMockCache()
	svc := service.NewDriverService(repo, cache, nil)
	ctx := context.Background()

	first, err := svc.GetDriver(ctx, "d-1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !cache.HasDriver("d-1") || cache.SetDriverIfAbsentCallCount != 1 {
		t.Fatalf("expected driver to be cached once, got %d writes", cache.SetDriverIfAbsentCallCount)
	}

	second, err := svc.GetDriver(ctx, "d-1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cache.SetDriverIfAbsentCallCount != 1 {
		t.Errorf("expected cache hit, got %d writes", cache.SetDriverIfAbsentCallCount)
	}
	if first.Status() != second.Status() || second.Reason() != "Plate mismatch" {
		t.Errorf("expected cached copy to keep verification state, got %s %q", second.Status(), second.Reason())
	}

	if _, err := svc.GetDriver(ctx, "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestGetDriver_CacheFailureFallsBackToStore(t *testing.T) {
	t.Parallel()

	repo := NewMockDriverRepository()
	repo.AddDriver(NewVerifiedDriver("d-1"))
	cache := NewMockCache()
	cache.GetError = errors.New("redis down")
	svc := service.NewDriverService(repo, cache, nil)

	driver, err := svc.GetDriver(context.Background(), "d-1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if driver.Status() != domain.VerificationVerified {
		t.Errorf("expected VERIFIED, got %s", driver.Status())
	}
}
