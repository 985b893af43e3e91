package postgres

import (
	"context"
	"database/sql"
	"strings"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
type RideRepository struct {
	q Querier
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{q: db}
}

var _ repository.RideRepository = (*RideRepository)(nil)

const rideColumns = `id, driver_id, source, destination, departure_time, available_seats, price_per_seat, COALESCE(notes, ''), status, created_at, cancelled_at`

func scanRide(row rowScanner) (*domain.Ride, error) {
	var ride domain.Ride
	var cancelledAt sql.NullTime

	err := row.Scan(
		&ride.ID,
		&ride.DriverID,
		&ride.Source,
		&ride.Destination,
		&ride.DepartureTime,
		&ride.AvailableSeats,
		&ride.PricePerSeat,
		&ride.Notes,
		&ride.Status,
		&ride.CreatedAt,
		&cancelledAt,
	)
	if err != nil {
		return nil, err
	}

	if cancelledAt.Valid {
		ride.CancelledAt = cancelledAt.Time
	}

	return &ride, nil
}

// Create persists a new ride.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	query := `
		INSERT INTO rides (id, driver_id, source, destination, departure_time, available_seats, price_per_seat, notes, status, created_at, cancelled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.q.ExecContext(ctx, query,
		ride.ID,
		ride.DriverID,
		ride.Source,
		ride.Destination,
		ride.DepartureTime,
		ride.AvailableSeats,
		ride.PricePerSeat,
		nullString(ride.Notes),
		ride.Status,
		ride.CreatedAt,
		cancelledAt(ride),
	)
	return translateError(err)
}

// GetByID retrieves a ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`

	ride, err := scanRide(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err)
	}
	return ride, nil
}

// GetByDriverID retrieves the rides posted by a driver, newest first.
func (r *RideRepository) GetByDriverID(ctx context.Context, driverID string) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE driver_id = $1 ORDER BY created_at DESC LIMIT 100`

	rows, err := r.q.QueryContext(ctx, query, driverID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var rides []*domain.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}

// Search returns active rides matching the filter, soonest departure first.
func (r *RideRepository) Search(ctx context.Context, filter repository.RideSearch) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides
		WHERE status = $1
		  AND departure_time >= $2
		  AND ($3::timestamptz IS NULL OR departure_time < $3)
		  AND ($4::text = '' OR source ILIKE $4)
		  AND ($5::text = '' OR destination ILIKE $5)
		  AND ($6::bigint = 0 OR price_per_seat <= $6)
		ORDER BY departure_time ASC, id
		LIMIT $7`

	var departureTo sql.NullTime
	if !filter.DepartureTo.IsZero() {
		departureTo = sql.NullTime{Time: filter.DepartureTo, Valid: true}
	}

	rows, err := r.q.QueryContext(ctx, query,
		domain.RideStatusActive,
		filter.DepartureFrom,
		departureTo,
		containsPattern(filter.Source),
		containsPattern(filter.Destination),
		filter.MaxPrice,
		filter.Limit,
	)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var rides []*domain.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}

// Update updates an existing ride.
func (r *RideRepository) Update(ctx context.Context, ride *domain.Ride) error {
	query := `
		UPDATE rides
		SET source = $1, destination = $2, departure_time = $3, available_seats = $4, price_per_seat = $5, notes = $6, status = $7, cancelled_at = $8
		WHERE id = $9
	`

	result, err := r.q.ExecContext(ctx, query,
		ride.Source,
		ride.Destination,
		ride.DepartureTime,
		ride.AvailableSeats,
		ride.PricePerSeat,
		nullString(ride.Notes),
		ride.Status,
		cancelledAt(ride),
		ride.ID,
	)
	if err != nil {
		return translateError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func cancelledAt(ride *domain.Ride) sql.NullTime {
	if ride.CancelledAt.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: ride.CancelledAt, Valid: true}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns s into an ILIKE substring pattern, or "" for no filter.
func containsPattern(s string) string {
	if s == "" {
		return ""
	}
	return "%" + likeEscaper.Replace(s) + "%"
}
