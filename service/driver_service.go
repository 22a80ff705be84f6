package service

import (
	"context"

	"rideshare/config"
	"rideshare/pkg/apperrors"
	"rideshare/pkg/identity"
	"rideshare/pkg/logger"
	"rideshare/pkg/models"
	"rideshare/storage"
)

// DriverService covers driver signup, sign-in and the driver's view of the
// trip index.
type DriverService interface {
	Register(ctx context.Context, firstName, lastName, contact string) (*models.Driver, error)
	Authenticate(ctx context.Context, email, credential string) (*models.Driver, error)
	Get(ctx context.Context, driverID string) (*models.Driver, error)

	// SyncPending reconciles the driver's pending set with the trip
	// collection. Safe to call at any time; it is the canonical recovery
	// path after the cached sets drift.
	SyncPending(ctx context.Context, driverID string) (*models.Driver, error)

	PendingTrips(ctx context.Context, driverID string) ([]*models.Trip, error)
	InProgressTrips(ctx context.Context, driverID string) ([]*models.Trip, error)
}

type driverService struct {
	stg storage.IStorage
	cfg config.Config
	log logger.ILogger
}

func NewDriverService(stg storage.IStorage, cfg config.Config, log logger.ILogger) DriverService {
	return &driverService{stg: stg, cfg: cfg, log: log}
}

func (s *driverService) Register(ctx context.Context, firstName, lastName, contact string) (*models.Driver, error) {
	driver := identity.NewDriver(firstName, lastName, contact, identity.RandomVehicle(), s.cfg.DefaultSeatCapacity)
	if err := s.stg.Driver().Create(ctx, driver); err != nil {
		return nil, err
	}
	s.log.Info("driver registered", logger.String("id", driver.ID), logger.String("email", driver.Email))
	return driver, nil
}

func (s *driverService) Authenticate(ctx context.Context, email, credential string) (*models.Driver, error) {
	driver, err := s.stg.Driver().GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if driver.Credential != credential {
		return nil, apperrors.ErrRecordNotFound
	}
	// Re-sync on sign-in so a stale pending set never survives a session.
	return s.stg.Driver().SyncPending(ctx, driver.ID)
}

func (s *driverService) Get(ctx context.Context, driverID string) (*models.Driver, error) {
	return s.stg.Driver().GetByID(ctx, driverID)
}

func (s *driverService) SyncPending(ctx context.Context, driverID string) (*models.Driver, error) {
	return s.stg.Driver().SyncPending(ctx, driverID)
}

func (s *driverService) PendingTrips(ctx context.Context, driverID string) ([]*models.Trip, error) {
	return s.stg.Trip().GetByDriverAndStatus(ctx, driverID, models.StatusPending)
}

func (s *driverService) InProgressTrips(ctx context.Context, driverID string) ([]*models.Trip, error) {
	return s.stg.Trip().GetByDriverAndStatus(ctx, driverID, models.StatusInProgress)
}
