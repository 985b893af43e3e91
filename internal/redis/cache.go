package redis

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"rideshare/internal/domain"
)

// CacheStore handles entity caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Cache TTL constants
const (
	DriverCacheTTL = 30 * time.Second // verification decisions overwrite the entry
	RouteCacheTTL  = time.Hour
)

// Key prefixes
const (
	driverCachePrefix = "cache:driver:"
	routeCachePrefix  = "cache:route:"
)

// CachedDriver represents a cached driver entity.
type CachedDriver struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Phone              string    `json:"phone"`
	Email              string    `json:"email"`
	LicenseNumber      string    `json:"license_number"`
	LicenseExpiry      string    `json:"license_expiry"`
	VehicleModel       string    `json:"vehicle_model"`
	VehiclePlateNumber string    `json:"vehicle_plate_number"`
	VehicleYear        int       `json:"vehicle_year"`
	VehicleColor       string    `json:"vehicle_color"`
	IsVerified         *bool     `json:"is_verified"`
	RejectionReason    *string   `json:"rejection_reason"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewCachedDriver converts a domain driver into its cached form.
func NewCachedDriver(d *domain.Driver) *CachedDriver {
	return &CachedDriver{
		ID:                 d.ID,
		Name:               d.Name,
		Phone:              d.Phone,
		Email:              d.Email,
		LicenseNumber:      d.LicenseNumber,
		LicenseExpiry:      d.LicenseExpiry,
		VehicleModel:       d.VehicleModel,
		VehiclePlateNumber: d.VehiclePlateNumber,
		VehicleYear:        d.VehicleYear,
		VehicleColor:       d.VehicleColor,
		IsVerified:         d.IsVerified,
		RejectionReason:    d.RejectionReason,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

// ToDomain converts the cached form back into a domain driver.
func (c *CachedDriver) ToDomain() *domain.Driver {
	return &domain.Driver{
		ID:                 c.ID,
		Name:               c.Name,
		Phone:              c.Phone,
		Email:              c.Email,
		LicenseNumber:      c.LicenseNumber,
		LicenseExpiry:      c.LicenseExpiry,
		VehicleModel:       c.VehicleModel,
		VehiclePlateNumber: c.VehiclePlateNumber,
		VehicleYear:        c.VehicleYear,
		VehicleColor:       c.VehicleColor,
		VerificationRecord: domain.VerificationRecord{
			IsVerified:      c.IsVerified,
			RejectionReason: c.RejectionReason,
		},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// GetDriver retrieves a driver from cache.
func (s *CacheStore) GetDriver(ctx context.Context, driverID string) (*CachedDriver, error) {
	key := driverCachePrefix + driverID
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var driver CachedDriver
	if err := json.Unmarshal(data, &driver); err != nil {
		return nil, err
	}
	return &driver, nil
}

// SetDriver stores a driver in cache.
func (s *CacheStore) SetDriver(ctx context.Context, driver *CachedDriver) error {
	key := driverCachePrefix + driver.ID
	data, err := json.Marshal(driver)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, DriverCacheTTL).Err()
}

// SetDriverIfAbsent stores a driver only when no entry exists, so a slow
// read-through cannot overwrite a fresher record written by a decision.
func (s *CacheStore) SetDriverIfAbsent(ctx context.Context, driver *CachedDriver) (bool, error) {
	key := driverCachePrefix + driver.ID
	data, err := json.Marshal(driver)
	if err != nil {
		return false, err
	}
	return s.client.SetNX(ctx, key, data, DriverCacheTTL).Result()
}

// InvalidateDriver removes a driver from cache.
func (s *CacheStore) InvalidateDriver(ctx context.Context, driverID string) error {
	key := driverCachePrefix + driverID
	return s.client.Del(ctx, key).Err()
}

// GetRoute retrieves a cached route estimate. Returns nil on a miss.
func (s *CacheStore) GetRoute(ctx context.Context, source, destination string) (*domain.RouteEstimate, error) {
	data, err := s.client.Get(ctx, RouteKey(source, destination)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var estimate domain.RouteEstimate
	if err := json.Unmarshal(data, &estimate); err != nil {
		return nil, err
	}
	return &estimate, nil
}

// SetRoute stores a route estimate.
func (s *CacheStore) SetRoute(ctx context.Context, source, destination string, estimate domain.RouteEstimate) error {
	data, err := json.Marshal(estimate)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, RouteKey(source, destination), data, RouteCacheTTL).Err()
}

// RouteKey builds the cache key for a source/destination pair. Case and
// surrounding whitespace do not change the key; direction does.
func RouteKey(source, destination string) string {
	return routeCachePrefix + normalizePlace(source) + "|" + normalizePlace(destination)
}

func normalizePlace(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
