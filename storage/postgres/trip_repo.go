package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rideshare/pkg/apperrors"
	"rideshare/pkg/logger"
	"rideshare/pkg/models"
	"rideshare/storage"
)

type tripRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewTripRepo(db *pgxpool.Pool, log logger.ILogger) storage.ITripStorage {
	return &tripRepo{db: db, log: log}
}

const tripColumns = `id, route, distance_km, base_fare, driver_id, passenger_groups,
	available_seats, start_time, status, final_fare, created_at`

const driverForUpdate = `
	SELECT ` + driverColumns + `
	FROM drivers WHERE id = $1 FOR UPDATE`

const updateDriverIndex = `
	UPDATE drivers
	SET pending_trip_ids = $1, in_progress_trip_ids = $2,
		completed_trip_ids = $3, canceled_trip_ids = $4,
		total_earnings = $5, available_seats = $6
	WHERE id = $7`

func (r *tripRepo) Create(ctx context.Context, trip *models.Trip, register func(d *models.Driver) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	d, err := scanDriver(tx.QueryRow(ctx, driverForUpdate, trip.DriverID))
	if err != nil {
		return err
	}

	if err := register(d); err != nil {
		return err
	}

	groups, err := json.Marshal(groupsOrEmpty(trip.PassengerGroups))
	if err != nil {
		return err
	}

	insert := `
		INSERT INTO trips (id, route, distance_km, base_fare, driver_id, passenger_groups,
			available_seats, start_time, status, final_fare, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = tx.Exec(ctx, insert,
		trip.ID, trip.Route, trip.DistanceKm, trip.BaseFare, trip.DriverID, groups,
		trip.AvailableSeats, trip.StartTime, trip.Status, trip.FinalFare, trip.CreatedAt,
	)
	if err != nil {
		r.log.Error("failed to create trip", logger.Error(err))
		return err
	}

	if err := r.writeDriverIndex(ctx, tx, d); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *tripRepo) GetByID(ctx context.Context, id string) (*models.Trip, error) {
	query := fmt.Sprintf(`SELECT %s FROM trips WHERE id = $1`, tripColumns)
	t, err := scanTrip(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if !errors.Is(err, apperrors.ErrRecordNotFound) {
			r.log.Error("failed to get trip by id", logger.String("id", id), logger.Error(err))
		}
		return nil, err
	}
	return t, nil
}

func (r *tripRepo) GetAll(ctx context.Context) ([]*models.Trip, error) {
	query := fmt.Sprintf(`SELECT %s FROM trips ORDER BY created_at`, tripColumns)
	return r.scanTrips(ctx, query)
}

func (r *tripRepo) GetByDriverAndStatus(ctx context.Context, driverID string, status models.TripStatus) ([]*models.Trip, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM trips
		WHERE driver_id = $1 AND status = $2
		ORDER BY created_at
	`, tripColumns)
	return r.scanTrips(ctx, query, driverID, status)
}

func (r *tripRepo) GetByPassenger(ctx context.Context, passengerID string, statuses ...models.TripStatus) ([]*models.Trip, error) {
	member, err := json.Marshal([]map[string]string{{"passenger_id": passengerID}})
	if err != nil {
		return nil, err
	}

	if len(statuses) == 0 {
		query := fmt.Sprintf(`
			SELECT %s FROM trips
			WHERE passenger_groups @> $1::jsonb
			ORDER BY created_at
		`, tripColumns)
		return r.scanTrips(ctx, query, member)
	}

	wanted := make([]string, 0, len(statuses))
	for _, s := range statuses {
		wanted = append(wanted, string(s))
	}
	query := fmt.Sprintf(`
		SELECT %s FROM trips
		WHERE passenger_groups @> $1::jsonb AND status = ANY($2)
		ORDER BY created_at
	`, tripColumns)
	return r.scanTrips(ctx, query, member, wanted)
}

// Mutate serializes all writers to a trip: the trip row and its driver row
// are locked for the duration of fn, always in that order.
func (r *tripRepo) Mutate(ctx context.Context, tripID string, fn func(t *models.Trip, d *models.Driver) error) (*models.Trip, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(`SELECT %s FROM trips WHERE id = $1 FOR UPDATE`, tripColumns)
	t, err := scanTrip(tx.QueryRow(ctx, query, tripID))
	if err != nil {
		return nil, err
	}

	d, err := scanDriver(tx.QueryRow(ctx, driverForUpdate, t.DriverID))
	if err != nil {
		return nil, err
	}

	if err := fn(t, d); err != nil {
		return nil, err
	}

	groups, err := json.Marshal(groupsOrEmpty(t.PassengerGroups))
	if err != nil {
		return nil, err
	}
	update := `
		UPDATE trips
		SET passenger_groups = $1, available_seats = $2, status = $3, final_fare = $4
		WHERE id = $5
	`
	if _, err := tx.Exec(ctx, update, groups, t.AvailableSeats, t.Status, t.FinalFare, t.ID); err != nil {
		r.log.Error("failed to update trip", logger.String("id", t.ID), logger.Error(err))
		return nil, err
	}

	if err := r.writeDriverIndex(ctx, tx, d); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *tripRepo) writeDriverIndex(ctx context.Context, tx pgx.Tx, d *models.Driver) error {
	_, err := tx.Exec(ctx, updateDriverIndex,
		idsOrEmpty(d.PendingTripIDs), idsOrEmpty(d.InProgressTripIDs),
		idsOrEmpty(d.CompletedTripIDs), idsOrEmpty(d.CanceledTripIDs),
		d.TotalEarnings, d.AvailableSeats, d.ID,
	)
	if err != nil {
		r.log.Error("failed to update driver index", logger.String("id", d.ID), logger.Error(err))
	}
	return err
}

// scanTrips skips rows with undecodable passenger groups instead of failing
// the whole listing; the corrupt row stays put for manual inspection.
func (r *tripRepo) scanTrips(ctx context.Context, query string, args ...any) ([]*models.Trip, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*models.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			if errors.Is(err, apperrors.ErrCorruptState) {
				r.log.Warning("skipping corrupt trip row", logger.Error(err))
				continue
			}
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

func scanTrip(row rowScanner) (*models.Trip, error) {
	var (
		t      models.Trip
		groups []byte
	)
	err := row.Scan(
		&t.ID, &t.Route, &t.DistanceKm, &t.BaseFare, &t.DriverID, &groups,
		&t.AvailableSeats, &t.StartTime, &t.Status, &t.FinalFare, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(groups, &t.PassengerGroups); err != nil {
		return nil, fmt.Errorf("%w: trip %s passenger groups: %v", apperrors.ErrCorruptState, t.ID, err)
	}
	return &t, nil
}

func groupsOrEmpty(groups []models.PassengerGroup) []models.PassengerGroup {
	if groups == nil {
		return []models.PassengerGroup{}
	}
	return groups
}

func idsOrEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
