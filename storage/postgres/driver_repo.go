package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rideshare/pkg/apperrors"
	"rideshare/pkg/logger"
	"rideshare/pkg/models"
	"rideshare/storage"
)

type driverRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewDriverRepo(db *pgxpool.Pool, log logger.ILogger) storage.IDriverStorage {
	return &driverRepo{db: db, log: log}
}

const driverColumns = `id, first_name, last_name, contact, email, credential,
	license_plate, car_model, car_color,
	pending_trip_ids, in_progress_trip_ids, completed_trip_ids, canceled_trip_ids,
	total_earnings, available_seats, created_at`

func (r *driverRepo) Create(ctx context.Context, d *models.Driver) error {
	query := `
		INSERT INTO drivers (id, first_name, last_name, contact, email, credential,
			license_plate, car_model, car_color, total_earnings, available_seats, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.Exec(ctx, query,
		d.ID, d.FirstName, d.LastName, d.Contact, d.Email, d.Credential,
		d.Vehicle.LicensePlate, d.Vehicle.Model, d.Vehicle.Color,
		d.TotalEarnings, d.AvailableSeats, d.CreatedAt,
	)
	if err != nil {
		r.log.Error("failed to create driver", logger.Error(err))
		return err
	}
	return nil
}

func (r *driverRepo) GetByID(ctx context.Context, id string) (*models.Driver, error) {
	query := fmt.Sprintf(`SELECT %s FROM drivers WHERE id = $1`, driverColumns)
	return scanDriver(r.db.QueryRow(ctx, query, id))
}

func (r *driverRepo) GetByEmail(ctx context.Context, email string) (*models.Driver, error) {
	query := fmt.Sprintf(`SELECT %s FROM drivers WHERE email = $1`, driverColumns)
	return scanDriver(r.db.QueryRow(ctx, query, email))
}

func (r *driverRepo) GetAll(ctx context.Context) ([]*models.Driver, error) {
	query := fmt.Sprintf(`SELECT %s FROM drivers ORDER BY created_at`, driverColumns)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []*models.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

// SyncPending rebuilds the pending set from the trips table in a single
// statement, so the reconciliation cannot race a concurrent booking.
func (r *driverRepo) SyncPending(ctx context.Context, driverID string) (*models.Driver, error) {
	query := fmt.Sprintf(`
		UPDATE drivers
		SET pending_trip_ids = ARRAY(
			SELECT id FROM trips
			WHERE driver_id = $1 AND status = 'pending'
			ORDER BY created_at
		)
		WHERE id = $1
		RETURNING %s
	`, driverColumns)
	d, err := scanDriver(r.db.QueryRow(ctx, query, driverID))
	if err != nil {
		if !errors.Is(err, apperrors.ErrRecordNotFound) {
			r.log.Error("failed to sync pending trips", logger.String("driver_id", driverID), logger.Error(err))
		}
		return nil, err
	}
	return d, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDriver(row rowScanner) (*models.Driver, error) {
	var d models.Driver
	err := row.Scan(
		&d.ID, &d.FirstName, &d.LastName, &d.Contact, &d.Email, &d.Credential,
		&d.Vehicle.LicensePlate, &d.Vehicle.Model, &d.Vehicle.Color,
		&d.PendingTripIDs, &d.InProgressTripIDs, &d.CompletedTripIDs, &d.CanceledTripIDs,
		&d.TotalEarnings, &d.AvailableSeats, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, err
	}
	return &d, nil
}
