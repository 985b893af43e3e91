package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"rideshare/internal/domain"
	"rideshare/internal/logger"
	"rideshare/internal/repository"
)

// FareQuoter quotes a fare for a route.
type FareQuoter interface {
	Quote(ctx context.Context, req QuoteRequest) (*domain.FareQuote, error)
}

// Ensure FareService implements FareQuoter.
var _ FareQuoter = (*FareService)(nil)

// RideService handles rides posted by drivers.
type RideService struct {
	rideRepo            repository.RideRepository
	driverRepo          repository.DriverRepository
	fareQuoter          FareQuoter
	notificationService *NotificationService
	log                 logger.Logger
}

// NewRideService creates a new RideService. fareQuoter and
// notificationService may be nil.
func NewRideService(
	rideRepo repository.RideRepository,
	driverRepo repository.DriverRepository,
	fareQuoter FareQuoter,
	notificationService *NotificationService,
	log logger.Logger,
) *RideService {
	if log == nil {
		log = logger.NewNop()
	}
	return &RideService{
		rideRepo:            rideRepo,
		driverRepo:          driverRepo,
		fareQuoter:          fareQuoter,
		notificationService: notificationService,
		log:                 log,
	}
}

// PostRideRequest contains the parameters for posting a ride.
// A zero PricePerSeat asks for the price to be filled from a fare quote.
type PostRideRequest struct {
	DriverID       string
	Source         string
	Destination    string
	DepartureTime  time.Time
	AvailableSeats int
	PricePerSeat   int64
	Notes          string
}

// PostRideResult contains the posted ride and the quote used for its price, if any.
type PostRideResult struct {
	Ride  *domain.Ride
	Quote *domain.FareQuote
}

// PostRide publishes a ride for a verified driver.
func (s *RideService) PostRide(ctx context.Context, req PostRideRequest) (*PostRideResult, error) {
	if err := s.validatePostRequest(&req); err != nil {
		return nil, err
	}

	driver, err := s.driverRepo.GetByID(ctx, req.DriverID)
	if err != nil {
		return nil, err
	}
	if driver.Status() != domain.VerificationVerified {
		return nil, ErrDriverNotVerified
	}

	var quote *domain.FareQuote
	price := req.PricePerSeat
	if price == 0 && s.fareQuoter != nil {
		quote, err = s.fareQuoter.Quote(ctx, QuoteRequest{Source: req.Source, Destination: req.Destination})
		if err != nil {
			return nil, err
		}
		price = quote.CalculatedFare
	}
	if price < domain.MinPricePerSeat || price > domain.MaxPricePerSeat {
		return nil, ErrInvalidPrice
	}

	ride := &domain.Ride{
		ID:             uuid.New().String(),
		DriverID:       req.DriverID,
		Source:         req.Source,
		Destination:    req.Destination,
		DepartureTime:  req.DepartureTime,
		AvailableSeats: req.AvailableSeats,
		PricePerSeat:   price,
		Notes:          req.Notes,
		Status:         domain.RideStatusActive,
		CreatedAt:      time.Now(),
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, fmt.Errorf("create ride: %w", err)
	}

	s.log.Info("ride posted",
		logger.String("ride_id", ride.ID),
		logger.String("driver_id", ride.DriverID),
		logger.Int64("price_per_seat", ride.PricePerSeat),
		logger.Bool("price_from_quote", quote != nil),
	)

	if s.notificationService != nil {
		s.notificationService.NotifyRidePosted(ctx, ride)
	}

	return &PostRideResult{Ride: ride, Quote: quote}, nil
}

// GetRide retrieves a ride by ID.
func (s *RideService) GetRide(ctx context.Context, rideID string) (*domain.Ride, error) {
	if strings.TrimSpace(rideID) == "" {
		return nil, ErrInvalidRideID
	}
	return s.rideRepo.GetByID(ctx, rideID)
}

// ListDriverRides retrieves the rides a driver has posted.
func (s *RideService) ListDriverRides(ctx context.Context, driverID string) ([]*domain.Ride, error) {
	if strings.TrimSpace(driverID) == "" {
		return nil, ErrInvalidDriverID
	}
	return s.rideRepo.GetByDriverID(ctx, driverID)
}

// SearchRidesRequest contains the passenger search filters. All fields are optional.
type SearchRidesRequest struct {
	Source      string
	Destination string
	Date        string // YYYY-MM-DD, UTC
	MaxPrice    int64
}

const searchLimit = 100

// SearchRides returns active rides that have not departed yet, soonest first.
func (s *RideService) SearchRides(ctx context.Context, req SearchRidesRequest) ([]*domain.Ride, error) {
	if req.MaxPrice < 0 {
		return nil, ErrInvalidPrice
	}

	filter := repository.RideSearch{
		Source:        strings.TrimSpace(req.Source),
		Destination:   strings.TrimSpace(req.Destination),
		DepartureFrom: time.Now(),
		MaxPrice:      req.MaxPrice,
		Limit:         searchLimit,
	}

	if date := strings.TrimSpace(req.Date); date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, ErrInvalidSearchDate
		}
		filter.DepartureTo = day.Add(24 * time.Hour)
		if !filter.DepartureTo.After(filter.DepartureFrom) {
			return []*domain.Ride{}, nil
		}
		if day.After(filter.DepartureFrom) {
			filter.DepartureFrom = day
		}
	}

	rides, err := s.rideRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search rides: %w", err)
	}
	if rides == nil {
		rides = []*domain.Ride{}
	}
	return rides, nil
}

// CancelRideRequest contains the parameters for cancelling a ride.
type CancelRideRequest struct {
	RideID   string
	DriverID string
}

// CancelRide cancels an active ride owned by the requesting driver.
func (s *RideService) CancelRide(ctx context.Context, req CancelRideRequest) (*domain.Ride, error) {
	ride, err := s.ownedActiveRide(ctx, req.RideID, req.DriverID)
	if err != nil {
		return nil, err
	}

	ride.Status = domain.RideStatusCancelled
	ride.CancelledAt = time.Now()

	if err := s.rideRepo.Update(ctx, ride); err != nil {
		return nil, fmt.Errorf("update ride: %w", err)
	}

	if s.notificationService != nil {
		s.notificationService.NotifyRideCancelled(ctx, ride)
	}

	return ride, nil
}

// CompleteRideRequest contains the parameters for completing a ride.
type CompleteRideRequest struct {
	RideID   string
	DriverID string
}

// CompleteRide marks an active ride owned by the requesting driver as completed.
func (s *RideService) CompleteRide(ctx context.Context, req CompleteRideRequest) (*domain.Ride, error) {
	ride, err := s.ownedActiveRide(ctx, req.RideID, req.DriverID)
	if err != nil {
		return nil, err
	}

	ride.Status = domain.RideStatusCompleted

	if err := s.rideRepo.Update(ctx, ride); err != nil {
		return nil, fmt.Errorf("update ride: %w", err)
	}

	s.log.Info("ride completed", logger.String("ride_id", ride.ID), logger.String("driver_id", ride.DriverID))

	if s.notificationService != nil {
		s.notificationService.NotifyRideCompleted(ctx, ride)
	}

	return ride, nil
}

// ownedActiveRide loads a ride that driverID may still cancel or complete.
func (s *RideService) ownedActiveRide(ctx context.Context, rideID, driverID string) (*domain.Ride, error) {
	if strings.TrimSpace(rideID) == "" {
		return nil, ErrInvalidRideID
	}
	if strings.TrimSpace(driverID) == "" {
		return nil, ErrInvalidDriverID
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride.DriverID != driverID {
		return nil, ErrRideNotOwned
	}
	if ride.Status != domain.RideStatusActive {
		return nil, ErrRideNotActive
	}
	return ride, nil
}

// validatePostRequest validates the request and trims its text fields.
func (s *RideService) validatePostRequest(req *PostRideRequest) error {
	req.DriverID = strings.TrimSpace(req.DriverID)
	req.Source = strings.TrimSpace(req.Source)
	req.Destination = strings.TrimSpace(req.Destination)
	req.Notes = strings.TrimSpace(req.Notes)

	if req.DriverID == "" {
		return ErrInvalidDriverID
	}
	if req.Source == "" || req.Destination == "" {
		return ErrMissingEndpoints
	}
	if req.AvailableSeats < 1 {
		return ErrInvalidSeats
	}
	if !req.DepartureTime.After(time.Now()) {
		return ErrInvalidDepartureTime
	}
	if req.PricePerSeat < 0 {
		return ErrInvalidPrice
	}
	return nil
}
