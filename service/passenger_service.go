package service

import (
	"context"

	"rideshare/pkg/apperrors"
	"rideshare/pkg/identity"
	"rideshare/pkg/logger"
	"rideshare/pkg/models"
	"rideshare/storage"
)

// PassengerProfile is the passenger record plus trip counts derived from
// the trip collection.
type PassengerProfile struct {
	Passenger      *models.Passenger
	CompletedTrips int
	PendingTrips   int
}

type PassengerService interface {
	Register(ctx context.Context, firstName, lastName, contact string) (*models.Passenger, error)
	Authenticate(ctx context.Context, email, credential string) (*models.Passenger, error)
	Get(ctx context.Context, passengerID string) (*models.Passenger, error)
	History(ctx context.Context, passengerID string) ([]*models.Trip, error)
	Profile(ctx context.Context, passengerID string) (*PassengerProfile, error)
}

type passengerService struct {
	stg storage.IStorage
	log logger.ILogger
}

func NewPassengerService(stg storage.IStorage, log logger.ILogger) PassengerService {
	return &passengerService{stg: stg, log: log}
}

func (s *passengerService) Register(ctx context.Context, firstName, lastName, contact string) (*models.Passenger, error) {
	passenger := identity.NewPassenger(firstName, lastName, contact)
	if err := s.stg.Passenger().Create(ctx, passenger); err != nil {
		return nil, err
	}
	s.log.Info("passenger registered", logger.String("id", passenger.ID), logger.String("email", passenger.Email))
	return passenger, nil
}

func (s *passengerService) Authenticate(ctx context.Context, email, credential string) (*models.Passenger, error) {
	passenger, err := s.stg.Passenger().GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if passenger.Credential != credential {
		return nil, apperrors.ErrRecordNotFound
	}
	return passenger, nil
}

func (s *passengerService) Get(ctx context.Context, passengerID string) (*models.Passenger, error) {
	return s.stg.Passenger().GetByID(ctx, passengerID)
}

func (s *passengerService) History(ctx context.Context, passengerID string) ([]*models.Trip, error) {
	return s.stg.Trip().GetByPassenger(ctx, passengerID)
}

func (s *passengerService) Profile(ctx context.Context, passengerID string) (*PassengerProfile, error) {
	passenger, err := s.stg.Passenger().GetByID(ctx, passengerID)
	if err != nil {
		return nil, err
	}
	trips, err := s.stg.Trip().GetByPassenger(ctx, passengerID,
		models.StatusPending, models.StatusCompleted)
	if err != nil {
		return nil, err
	}

	profile := &PassengerProfile{Passenger: passenger}
	for _, t := range trips {
		switch t.Status {
		case models.StatusPending:
			profile.PendingTrips++
		case models.StatusCompleted:
			profile.CompletedTrips++
		}
	}
	return profile, nil
}
