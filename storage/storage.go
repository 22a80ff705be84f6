// Package storage defines the persistence gateway contract for the three
// durable aggregates. Implementations must present every read-modify-write
// as a single atomic unit: concurrent writers to the same trip or driver
// record must serialize, so a booking can never commit against a stale
// seat count.
package storage

import (
	"context"

	"rideshare/pkg/models"
)

type IStorage interface {
	Passenger() IPassengerStorage
	Driver() IDriverStorage
	Trip() ITripStorage
	Close()
}

type IPassengerStorage interface {
	Create(ctx context.Context, p *models.Passenger) error
	GetByID(ctx context.Context, id string) (*models.Passenger, error)
	GetByEmail(ctx context.Context, email string) (*models.Passenger, error)
	GetAll(ctx context.Context) ([]*models.Passenger, error)
}

type IDriverStorage interface {
	Create(ctx context.Context, d *models.Driver) error
	GetByID(ctx context.Context, id string) (*models.Driver, error)
	GetByEmail(ctx context.Context, email string) (*models.Driver, error)
	GetAll(ctx context.Context) ([]*models.Driver, error)

	// SyncPending rebuilds the driver's pending trip-id set from the trip
	// collection in one atomic statement. Safe to call at any time; it is
	// the recovery path when the cached sets drift from the trips table.
	SyncPending(ctx context.Context, driverID string) (*models.Driver, error)
}

type ITripStorage interface {
	// Create inserts the trip and applies register to its driver row, both
	// under one transaction with the driver row locked.
	Create(ctx context.Context, trip *models.Trip, register func(d *models.Driver) error) error

	GetByID(ctx context.Context, id string) (*models.Trip, error)
	GetAll(ctx context.Context) ([]*models.Trip, error)
	GetByDriverAndStatus(ctx context.Context, driverID string, status models.TripStatus) ([]*models.Trip, error)
	GetByPassenger(ctx context.Context, passengerID string, statuses ...models.TripStatus) ([]*models.Trip, error)

	// Mutate loads the trip and its driver under row locks, applies fn, and
	// persists both records, committing only if fn returns nil. Returns
	// apperrors.ErrRecordNotFound when the trip does not exist. Only the
	// trip's lifecycle columns and the driver's index/earnings/seat columns
	// are written back, so untouched fields can never be clobbered.
	Mutate(ctx context.Context, tripID string, fn func(t *models.Trip, d *models.Driver) error) (*models.Trip, error)
}
