package tests

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"rideshare/internal/domain"
	"rideshare/internal/redis"
	"rideshare/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK DRIVER REPOSITORY
// ──────────────────────────────────────────────

// MockDriverRepository is a mock implementation of DriverRepository.
type MockDriverRepository struct {
	mu      sync.RWMutex
	drivers map[string]*domain.Driver

	// Counters for verification
	CreateCallCount             int32
	UpdateVerificationCallCount int32

	// Error injection
	CreateError             error
	GetAllError             error
	UpdateVerificationError error

	// UUIDColumns rejects malformed IDs the way the postgres uuid column does.
	UUIDColumns bool
}

// NewMockDriverRepository creates a new mock driver repository.
func NewMockDriverRepository() *MockDriverRepository {
	return &MockDriverRepository{
		drivers: make(map[string]*domain.Driver),
	}
}

// AddDriver adds a driver to the mock repository.
func (m *MockDriverRepository) AddDriver(driver *domain.Driver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.drivers {
		if d.Phone == driver.Phone {
			return repository.ErrDuplicate
		}
	}
	copy := *driver
	m.drivers[driver.ID] = &copy
	return nil
}

func (m *MockDriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	if err := checkUUID(m.UUIDColumns, id); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	driver, ok := m.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *driver
	return &copy, nil
}

func (m *MockDriverRepository) GetByPhone(ctx context.Context, phone string) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.drivers {
		if d.Phone == phone {
			copy := *d
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetAll returns drivers ordered by ID so list tests are deterministic.
func (m *MockDriverRepository) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	if m.GetAllError != nil {
		return nil, m.GetAllError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Driver, 0, len(m.drivers))
	for _, d := range m.drivers {
		copy := *d
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockDriverRepository) UpdateVerification(ctx context.Context, id string, record domain.VerificationRecord) error {
	atomic.AddInt32(&m.UpdateVerificationCallCount, 1)
	if m.UpdateVerificationError != nil {
		return m.UpdateVerificationError
	}
	if err := checkUUID(m.UUIDColumns, id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	driver, ok := m.drivers[id]
	if !ok {
		return repository.ErrNotFound
	}
	driver.VerificationRecord = record
	return nil
}

// GetDriver returns driver for test assertions.
func (m *MockDriverRepository) GetDriver(id string) *domain.Driver {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.drivers[id]
}

// ──────────────────────────────────────────────
// MOCK RIDE REPOSITORY
// ──────────────────────────────────────────────

// MockRideRepository is a mock implementation of RideRepository.
type MockRideRepository struct {
	mu    sync.RWMutex
	rides map[string]*domain.Ride

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
	SearchError error

	// UUIDColumns rejects malformed IDs the way the postgres uuid column does.
	UUIDColumns bool

	// LastSearch is the most recent filter passed to Search.
	LastSearch repository.RideSearch
}

// NewMockRideRepository creates a new mock ride repository.
func NewMockRideRepository() *MockRideRepository {
	return &MockRideRepository{
		rides: make(map[string]*domain.Ride),
	}
}

// AddRide adds a ride to the mock repository.
func (m *MockRideRepository) AddRide(ride *domain.Ride) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides[ride.ID] = ride
}

func (m *MockRideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *ride
	m.rides[ride.ID] = &copy
	return nil
}

func (m *MockRideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	if err := checkUUID(m.UUIDColumns, id); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	ride, ok := m.rides[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *ride
	return &copy, nil
}

func (m *MockRideRepository) GetByDriverID(ctx context.Context, driverID string) ([]*domain.Ride, error) {
	if err := checkUUID(m.UUIDColumns, driverID); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Ride, 0)
	for _, r := range m.rides {
		if r.DriverID == driverID {
			copy := *r
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *MockRideRepository) Search(ctx context.Context, filter repository.RideSearch) ([]*domain.Ride, error) {
	if m.SearchError != nil {
		return nil, m.SearchError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastSearch = filter

	result := make([]*domain.Ride, 0)
	for _, r := range m.rides {
		if r.Status != domain.RideStatusActive || r.DepartureTime.Before(filter.DepartureFrom) {
			continue
		}
		if !filter.DepartureTo.IsZero() && !r.DepartureTime.Before(filter.DepartureTo) {
			continue
		}
		if !containsFold(r.Source, filter.Source) || !containsFold(r.Destination, filter.Destination) {
			continue
		}
		if filter.MaxPrice > 0 && r.PricePerSeat > filter.MaxPrice {
			continue
		}
		copy := *r
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DepartureTime.Before(result[j].DepartureTime) })
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (m *MockRideRepository) Update(ctx context.Context, ride *domain.Ride) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rides[ride.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *ride
	m.rides[ride.ID] = &copy
	return nil
}

// GetRide returns the ride by ID (for test assertions).
func (m *MockRideRepository) GetRide(id string) *domain.Ride {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rides[id]
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func checkUUID(enabled bool, id string) error {
	if !enabled {
		return nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return repository.ErrInvalidID
	}
	return nil
}

// ──────────────────────────────────────────────
// MOCK ROUTER
// ──────────────────────────────────────────────

// MockRouter is a mock implementation of service.Router.
type MockRouter struct {
	mu        sync.RWMutex
	distances map[string]float64

	CallCount int32

	// Error injection
	Err error
}

// NewMockRouter creates a router that knows the given "source|destination" distances.
func NewMockRouter(distances map[string]float64) *MockRouter {
	if distances == nil {
		distances = make(map[string]float64)
	}
	return &MockRouter{distances: distances}
}

func (m *MockRouter) Estimate(ctx context.Context, origin, destination string) (domain.RouteEstimate, error) {
	atomic.AddInt32(&m.CallCount, 1)
	if m.Err != nil {
		return domain.RouteEstimate{}, m.Err
	}
	if err := ctx.Err(); err != nil {
		return domain.RouteEstimate{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	km, ok := m.distances[origin+"|"+destination]
	if !ok {
		return domain.RouteEstimate{}, ErrUnknownRoute
	}
	return domain.RouteEstimate{
		DistanceKm:   km,
		DistanceText: formatKm(km),
		DurationText: "1 hour",
	}, nil
}

// ──────────────────────────────────────────────
// MOCK CACHE
// ──────────────────────────────────────────────

// MockCache is an in-memory implementation of the route and driver caches.
type MockCache struct {
	mu      sync.RWMutex
	drivers map[string]*redis.CachedDriver
	routes  map[string]domain.RouteEstimate

	InvalidateCallCount        int32
	SetDriverCallCount         int32
	SetDriverIfAbsentCallCount int32

	// Error injection
	GetError       error
	SetDriverError error
}

var (
	_ redis.RouteCacheInterface  = (*MockCache)(nil)
	_ redis.DriverCacheInterface = (*MockCache)(nil)
)

// NewMockCache creates a new mock cache.
func NewMockCache() *MockCache {
	return &MockCache{
		drivers: make(map[string]*redis.CachedDriver),
		routes:  make(map[string]domain.RouteEstimate),
	}
}

func (m *MockCache) GetDriver(ctx context.Context, driverID string) (*redis.CachedDriver, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.drivers[driverID]
	if !ok {
		return nil, nil
	}
	copy := *d
	return &copy, nil
}

func (m *MockCache) SetDriver(ctx context.Context, driver *redis.CachedDriver) error {
	atomic.AddInt32(&m.SetDriverCallCount, 1)
	if m.SetDriverError != nil {
		return m.SetDriverError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *driver
	m.drivers[driver.ID] = &copy
	return nil
}

func (m *MockCache) SetDriverIfAbsent(ctx context.Context, driver *redis.CachedDriver) (bool, error) {
	atomic.AddInt32(&m.SetDriverIfAbsentCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drivers[driver.ID]; ok {
		return false, nil
	}
	copy := *driver
	m.drivers[driver.ID] = &copy
	return true, nil
}

func (m *MockCache) InvalidateDriver(ctx context.Context, driverID string) error {
	atomic.AddInt32(&m.InvalidateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drivers, driverID)
	return nil
}

// CachedStatus returns the status of the cached driver, or "" when absent.
func (m *MockCache) CachedStatus(driverID string) domain.VerificationStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.drivers[driverID]
	if !ok {
		return ""
	}
	return d.ToDomain().Status()
}

// HasDriver reports whether a driver is cached (for test assertions).
func (m *MockCache) HasDriver(driverID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.drivers[driverID]
	return ok
}

func (m *MockCache) GetRoute(ctx context.Context, source, destination string) (*domain.RouteEstimate, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	est, ok := m.routes[redis.RouteKey(source, destination)]
	if !ok {
		return nil, nil
	}
	return &est, nil
}

func (m *MockCache) SetRoute(ctx context.Context, source, destination string, estimate domain.RouteEstimate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[redis.RouteKey(source, destination)] = estimate
	return nil
}

// ──────────────────────────────────────────────
// MOCK PUBLISHER
// ──────────────────────────────────────────────

// PublishedEvent is a message captured by MockPublisher.
type PublishedEvent struct {
	Exchange   string
	RoutingKey string
	Message    any
}

// MockPublisher captures published events.
type MockPublisher struct {
	mu     sync.Mutex
	events []PublishedEvent

	// Error injection
	Err error
}

func (m *MockPublisher) PublishJSON(ctx context.Context, exchange, routingKey string, msg any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.events = append(m.events, PublishedEvent{Exchange: exchange, RoutingKey: routingKey, Message: msg})
	return nil
}

// RoutingKeys returns the routing keys published so far.
func (m *MockPublisher) RoutingKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.events))
	for _, e := range m.events {
		keys = append(keys, e.RoutingKey)
	}
	return keys
}
