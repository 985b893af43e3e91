package postgres

import (
	"context"
	"database/sql"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

// DriverRepository is a PostgreSQL implementation of repository.DriverRepository.
type DriverRepository struct {
	q Querier
}

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{q: db}
}

var _ repository.DriverRepository = (*DriverRepository)(nil)

const driverColumns = `id, name, phone, COALESCE(email, ''), license_number, COALESCE(license_expiry, ''),
	COALESCE(vehicle_model, ''), COALESCE(vehicle_plate_number, ''), COALESCE(vehicle_year, 0), COALESCE(vehicle_color, ''),
	is_verified, rejection_reason, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDriver(row rowScanner) (*domain.Driver, error) {
	var driver domain.Driver
	var isVerified sql.NullBool
	var rejectionReason sql.NullString

	err := row.Scan(
		&driver.ID,
		&driver.Name,
		&driver.Phone,
		&driver.Email,
		&driver.LicenseNumber,
		&driver.LicenseExpiry,
		&driver.VehicleModel,
		&driver.VehiclePlateNumber,
		&driver.VehicleYear,
		&driver.VehicleColor,
		&isVerified,
		&rejectionReason,
		&driver.CreatedAt,
		&driver.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if isVerified.Valid {
		v := isVerified.Bool
		driver.IsVerified = &v
	}
	if rejectionReason.Valid {
		r := rejectionReason.String
		driver.RejectionReason = &r
	}

	return &driver, nil
}

// Create adds a new driver.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	query := `
		INSERT INTO drivers (id, name, phone, email, license_number, license_expiry, vehicle_model, vehicle_plate_number, vehicle_year, vehicle_color, is_verified, rejection_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	var vehicleYear sql.NullInt64
	if driver.VehicleYear > 0 {
		vehicleYear = sql.NullInt64{Int64: int64(driver.VehicleYear), Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		driver.ID,
		driver.Name,
		driver.Phone,
		nullString(driver.Email),
		driver.LicenseNumber,
		nullString(driver.LicenseExpiry),
		nullString(driver.VehicleModel),
		nullString(driver.VehiclePlateNumber),
		vehicleYear,
		nullString(driver.VehicleColor),
		nullableBool(driver.IsVerified),
		nullableString(driver.RejectionReason),
		driver.CreatedAt,
		driver.UpdatedAt,
	)
	return translateError(err)
}

// GetByID retrieves a driver by ID.
func (r *DriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`

	driver, err := scanDriver(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err)
	}
	return driver, nil
}

// GetByPhone retrieves a driver by phone number.
func (r *DriverRepository) GetByPhone(ctx context.Context, phone string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE phone = $1`

	driver, err := scanDriver(r.q.QueryRowContext(ctx, query, phone))
	if err != nil {
		return nil, translateError(err)
	}
	return driver, nil
}

// GetAll retrieves all drivers, newest first.
func (r *DriverRepository) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers ORDER BY created_at DESC, id`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []*domain.Driver
	for rows.Next() {
		driver, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, driver)
	}
	return drivers, rows.Err()
}

// UpdateVerification overwrites the verification fields of a driver.
func (r *DriverRepository) UpdateVerification(ctx context.Context, id string, record domain.VerificationRecord) error {
	query := `UPDATE drivers SET is_verified = $1, rejection_reason = $2, updated_at = NOW() WHERE id = $3`

	result, err := r.q.ExecContext(ctx, query, nullableBool(record.IsVerified), nullableString(record.RejectionReason), id)
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

func nullableBool(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}

func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
