package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"rideshare/internal/domain"
	"rideshare/internal/logger"
	"rideshare/internal/redis"
	"rideshare/internal/repository"
)

// Page size defaults for the admin driver list.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// VerificationStats counts drivers per verification status.
type VerificationStats struct {
	Pending  int
	Verified int
	Rejected int
	Total    int
}

// DriverPage is one page of a driver list.
type DriverPage struct {
	Items      []*domain.Driver
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}

// Transition applies an administrator decision to a verification record.
// The input record is never modified.
func Transition(record domain.VerificationRecord, action domain.VerificationAction) (domain.VerificationRecord, error) {
	var next domain.VerificationRecord

	switch action.Kind {
	case domain.ActionVerify:
		verified := true
		next = domain.VerificationRecord{IsVerified: &verified}

	case domain.ActionReject:
		reason := strings.TrimSpace(action.Reason)
		if reason == "" {
			return record, ErrRejectionReasonRequired
		}
		if utf8.RuneCountInString(reason) > domain.MaxRejectionReasonLength {
			return record, ErrRejectionReasonTooLong
		}
		verified := false
		next = domain.VerificationRecord{IsVerified: &verified, RejectionReason: &reason}

	case domain.ActionRejectNoReason:
		return record, ErrRejectionReasonRequired

	default:
		return record, ErrInvalidVerificationAction
	}

	if err := CheckVerificationInvariant(next); err != nil {
		return record, err
	}
	return next, nil
}

// CheckVerificationInvariant reports records whose stored fields contradict
// their derived status.
func CheckVerificationInvariant(record domain.VerificationRecord) error {
	switch record.Status() {
	case domain.VerificationRejected:
		if strings.TrimSpace(record.Reason()) == "" {
			return fmt.Errorf("%w: rejected without reason", ErrInvariantViolation)
		}
	case domain.VerificationVerified:
		if record.RejectionReason != nil {
			return fmt.Errorf("%w: verified with rejection reason", ErrInvariantViolation)
		}
	}
	return nil
}

// Aggregate counts records per status. Every record lands in exactly one bucket.
func Aggregate(records []domain.VerificationRecord) VerificationStats {
	stats := VerificationStats{Total: len(records)}
	for _, r := range records {
		switch r.Status() {
		case domain.VerificationVerified:
			stats.Verified++
		case domain.VerificationRejected:
			stats.Rejected++
		default:
			stats.Pending++
		}
	}
	return stats
}

// AggregateDrivers counts drivers per verification status.
func AggregateDrivers(drivers []*domain.Driver) VerificationStats {
	records := make([]domain.VerificationRecord, 0, len(drivers))
	for _, d := range drivers {
		records = append(records, d.VerificationRecord)
	}
	return Aggregate(records)
}

// ParseStatusFilter parses a filter name. Empty means ALL.
func ParseStatusFilter(s string) (domain.StatusFilter, error) {
	switch domain.StatusFilter(strings.ToUpper(strings.TrimSpace(s))) {
	case "", domain.FilterAll:
		return domain.FilterAll, nil
	case domain.FilterPending:
		return domain.FilterPending, nil
	case domain.FilterVerified:
		return domain.FilterVerified, nil
	case domain.FilterRejected:
		return domain.FilterRejected, nil
	default:
		return "", ErrInvalidStatusFilter
	}
}

// FilterDrivers keeps the drivers whose status passes the filter, preserving order.
func FilterDrivers(drivers []*domain.Driver, filter domain.StatusFilter) []*domain.Driver {
	if filter == domain.FilterAll {
		return drivers
	}
	result := make([]*domain.Driver, 0, len(drivers))
	for _, d := range drivers {
		if filter.Matches(d.Status()) {
			result = append(result, d)
		}
	}
	return result
}

// PaginateDrivers slices a 1-based page out of drivers.
func PaginateDrivers(drivers []*domain.Driver, page, pageSize int) DriverPage {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(drivers)
	result := DriverPage{
		Items:      []*domain.Driver{},
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: (total + pageSize - 1) / pageSize,
	}

	start := (page - 1) * pageSize
	if start >= total {
		return result
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	result.Items = drivers[start:end]
	return result
}

// VerificationService handles administrator review of drivers.
type VerificationService struct {
	driverRepo          repository.DriverRepository
	driverCache         redis.DriverCacheInterface
	notificationService *NotificationService
	log                 logger.Logger
}

// NewVerificationService creates a new VerificationService. driverCache and
// notificationService may be nil.
func NewVerificationService(
	driverRepo repository.DriverRepository,
	driverCache redis.DriverCacheInterface,
	notificationService *NotificationService,
	log logger.Logger,
) *VerificationService {
	if log == nil {
		log = logger.NewNop()
	}
	return &VerificationService{
		driverRepo:          driverRepo,
		driverCache:         driverCache,
		notificationService: notificationService,
		log:                 log,
	}
}

// ListDriversRequest contains the parameters for listing drivers.
type ListDriversRequest struct {
	Status   string
	Page     int
	PageSize int
}

// DriverList is a filtered page of drivers plus counts over all drivers.
type DriverList struct {
	Filter domain.StatusFilter
	Page   DriverPage
	Stats  VerificationStats
}

// ListDrivers returns one page of drivers matching the status filter.
func (s *VerificationService) ListDrivers(ctx context.Context, req ListDriversRequest) (*DriverList, error) {
	filter, err := ParseStatusFilter(req.Status)
	if err != nil {
		return nil, err
	}

	drivers, err := s.driverRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}

	return &DriverList{
		Filter: filter,
		Page:   PaginateDrivers(FilterDrivers(drivers, filter), req.Page, req.PageSize),
		Stats:  AggregateDrivers(drivers),
	}, nil
}

// PendingDrivers returns every driver awaiting review.
func (s *VerificationService) PendingDrivers(ctx context.Context) ([]*domain.Driver, error) {
	drivers, err := s.driverRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	return FilterDrivers(drivers, domain.FilterPending), nil
}

// Stats returns verification counts over all drivers.
func (s *VerificationService) Stats(ctx context.Context) (VerificationStats, error) {
	drivers, err := s.driverRepo.GetAll(ctx)
	if err != nil {
		return VerificationStats{}, fmt.Errorf("list drivers: %w", err)
	}
	return AggregateDrivers(drivers), nil
}

// Verify marks a driver as verified and clears any rejection reason.
func (s *VerificationService) Verify(ctx context.Context, driverID string) (*domain.Driver, error) {
	return s.Apply(ctx, driverID, domain.VerificationAction{Kind: domain.ActionVerify})
}

// Reject marks a driver as rejected with the given reason.
func (s *VerificationService) Reject(ctx context.Context, driverID, reason string) (*domain.Driver, error) {
	return s.Apply(ctx, driverID, domain.VerificationAction{Kind: domain.ActionReject, Reason: reason})
}

// Apply loads a driver, applies the action and persists the result.
func (s *VerificationService) Apply(ctx context.Context, driverID string, action domain.VerificationAction) (*domain.Driver, error) {
	if strings.TrimSpace(driverID) == "" {
		return nil, ErrInvalidDriverID
	}

	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}

	next, err := Transition(driver.VerificationRecord, action)
	if err != nil {
		return nil, err
	}

	// Repeating the current decision changes nothing, so nothing is written or sent.
	if next.Equal(driver.VerificationRecord) {
		return driver, nil
	}

	if err := s.driverRepo.UpdateVerification(ctx, driverID, next); err != nil {
		return nil, fmt.Errorf("update verification: %w", err)
	}
	driver.VerificationRecord = next
	driver.UpdatedAt = time.Now()

	s.refreshCache(ctx, driver)

	s.log.Info("driver verification updated",
		logger.String("driver_id", driverID),
		logger.String("action", string(action.Kind)),
		logger.String("status", string(driver.Status())),
	)

	if s.notificationService != nil {
		switch driver.Status() {
		case domain.VerificationVerified:
			s.notificationService.NotifyDriverVerified(ctx, driver)
		case domain.VerificationRejected:
			s.notificationService.NotifyDriverRejected(ctx, driver)
		}
	}

	return driver, nil
}

// refreshCache overwrites the cached driver with the decided record. If the
// write fails the entry is dropped so readers fall back to postgres.
func (s *VerificationService) refreshCache(ctx context.Context, driver *domain.Driver) {
	if s.driverCache == nil {
		return
	}
	err := s.driverCache.SetDriver(ctx, redis.NewCachedDriver(driver))
	if err == nil {
		return
	}
	s.log.Warning("driver cache write failed", logger.String("driver_id", driver.ID), logger.Error(err))
	if err := s.driverCache.InvalidateDriver(ctx, driver.ID); err != nil {
		s.log.Warning("driver cache invalidation failed", logger.String("driver_id", driver.ID), logger.Error(err))
	}
}
