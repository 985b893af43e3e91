package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"rideshare/internal/domain"
	"rideshare/internal/logger"
	"rideshare/internal/redis"
	"rideshare/internal/repository"
)

// DriverService handles driver onboarding and lookups.
type DriverService struct {
	driverRepo  repository.DriverRepository
	driverCache redis.DriverCacheInterface
	log         logger.Logger
}

// NewDriverService creates a new DriverService. driverCache may be nil.
func NewDriverService(driverRepo repository.DriverRepository, driverCache redis.DriverCacheInterface, log logger.Logger) *DriverService {
	if log == nil {
		log = logger.NewNop()
	}
	return &DriverService{
		driverRepo:  driverRepo,
		driverCache: driverCache,
		log:         log,
	}
}

// RegisterDriverRequest contains the documents a driver submits for review.
type RegisterDriverRequest struct {
	Name               string
	Phone              string
	Email              string
	LicenseNumber      string
	LicenseExpiry      string
	VehicleModel       string
	VehiclePlateNumber string
	VehicleYear        int
	VehicleColor       string
}

// Register creates a driver awaiting verification.
func (s *DriverService) Register(ctx context.Context, req RegisterDriverRequest) (*domain.Driver, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	license := strings.TrimSpace(req.LicenseNumber)
	if name == "" || phone == "" || license == "" {
		return nil, ErrInvalidDriverDetails
	}

	existing, err := s.driverRepo.GetByPhone(ctx, phone)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup driver by phone: %w", err)
	}
	if existing != nil {
		return nil, ErrDriverAlreadyRegistered
	}

	now := time.Now()
	driver := &domain.Driver{
		ID:                 uuid.New().String(),
		Name:               name,
		Phone:              phone,
		Email:              strings.TrimSpace(req.Email),
		LicenseNumber:      license,
		LicenseExpiry:      strings.TrimSpace(req.LicenseExpiry),
		VehicleModel:       strings.TrimSpace(req.VehicleModel),
		VehiclePlateNumber: strings.ToUpper(strings.TrimSpace(req.VehiclePlateNumber)),
		VehicleYear:        req.VehicleYear,
		VehicleColor:       strings.TrimSpace(req.VehicleColor),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDriverAlreadyRegistered
		}
		return nil, fmt.Errorf("create driver: %w", err)
	}

	s.log.Info("driver registered", logger.String("driver_id", driver.ID))
	return driver, nil
}

// GetDriver returns a driver, reading through the cache.
func (s *DriverService) GetDriver(ctx context.Context, driverID string) (*domain.Driver, error) {
	if strings.TrimSpace(driverID) == "" {
		return nil, ErrInvalidDriverID
	}

	if s.driverCache != nil {
		cached, err := s.driverCache.GetDriver(ctx, driverID)
		if err != nil {
			s.log.Warning("driver cache read failed", logger.String("driver_id", driverID), logger.Error(err))
		} else if cached != nil {
			return cached.ToDomain(), nil
		}
	}

	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}

	if s.driverCache != nil {
		if _, err := s.driverCache.SetDriverIfAbsent(ctx, redis.NewCachedDriver(driver)); err != nil {
			s.log.Warning("driver cache write failed", logger.String("driver_id", driverID), logger.Error(err))
		}
	}

	return driver, nil
}
