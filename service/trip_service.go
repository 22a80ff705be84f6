package service

import (
	"context"
	"errors"
	"fmt"

	"rideshare/config"
	"rideshare/pkg/apperrors"
	"rideshare/pkg/logger"
	"rideshare/pkg/models"
	"rideshare/storage"
)

// BookingResult carries everything the front-end renders after a booking:
// the trip, the settled payment and the fare charged to the group.
type BookingResult struct {
	Trip    *models.Trip
	Payment *models.Payment
	Fare    int64
}

// TripService owns the trip lifecycle: booking, cancellation, start and
// completion. Every mutation runs as one atomic read-modify-write against
// the trip and its driver, so concurrent sessions cannot oversubscribe
// seats or double-count earnings.
type TripService interface {
	Book(ctx context.Context, passengerID, route string, distanceKm float64, groupSize int, paymentMethod string) (*BookingResult, error)
	Join(ctx context.Context, passengerID, tripID string, groupSize int, paymentMethod string) (*BookingResult, error)
	Cancel(ctx context.Context, passengerID, tripID string) (*models.Trip, error)
	Start(ctx context.Context, driverID, tripID string) (*models.Trip, error)
	End(ctx context.Context, driverID, tripID string) (*models.Trip, error)

	FindAvailableDriver(ctx context.Context) (*models.Driver, error)
	PassengerTrips(ctx context.Context, passengerID string, statuses ...models.TripStatus) ([]*models.Trip, error)
}

type tripService struct {
	stg storage.IStorage
	cfg config.Config
	log logger.ILogger
}

func NewTripService(stg storage.IStorage, cfg config.Config, log logger.ILogger) TripService {
	return &tripService{stg: stg, cfg: cfg, log: log}
}

// Book creates a pending trip with an available driver and reserves the
// first group on it. Trip insert and driver index update commit together.
func (s *tripService) Book(ctx context.Context, passengerID, route string, distanceKm float64, groupSize int, paymentMethod string) (*BookingResult, error) {
	if err := s.checkGroupSize(groupSize); err != nil {
		return nil, err
	}
	passenger, err := s.stg.Passenger().GetByID(ctx, passengerID)
	if err != nil {
		return nil, err
	}

	driver, err := s.FindAvailableDriver(ctx)
	if err != nil {
		return nil, err
	}

	trip, err := models.NewTrip(route, distanceKm, driver)
	if err != nil {
		return nil, err
	}
	groupFare, err := trip.Reserve(passenger.ID, groupSize)
	if err != nil {
		return nil, err
	}

	err = s.stg.Trip().Create(ctx, trip, func(d *models.Driver) error {
		d.RegisterPendingTrip(trip.ID)
		d.AvailableSeats = trip.AvailableSeats
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("trip booked",
		logger.String("trip_id", trip.ID),
		logger.String("driver_id", driver.ID),
		logger.Int("group_size", groupSize),
		logger.Int64("fare", groupFare),
	)
	return s.settle(trip, paymentMethod, groupFare), nil
}

// Join reserves seats on an existing pending trip. On ErrCapacityExceeded
// nothing is mutated: the transaction rolls back wholesale.
func (s *tripService) Join(ctx context.Context, passengerID, tripID string, groupSize int, paymentMethod string) (*BookingResult, error) {
	if err := s.checkGroupSize(groupSize); err != nil {
		return nil, err
	}
	if _, err := s.stg.Passenger().GetByID(ctx, passengerID); err != nil {
		return nil, err
	}

	var groupFare int64
	trip, err := s.stg.Trip().Mutate(ctx, tripID, func(t *models.Trip, d *models.Driver) error {
		if t.Status.Terminal() {
			return apperrors.ErrTripAlreadyTerminal
		}
		if t.Status != models.StatusPending {
			return apperrors.ErrInvalidTransition
		}
		f, err := t.Reserve(passengerID, groupSize)
		if err != nil {
			return err
		}
		groupFare = f
		d.AvailableSeats = t.AvailableSeats
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.settle(trip, paymentMethod, groupFare), nil
}

// Cancel releases the passenger's seats. When the last group leaves, the
// trip reaches canceled and the id lands in the driver's canceled set
// exactly once.
func (s *tripService) Cancel(ctx context.Context, passengerID, tripID string) (*models.Trip, error) {
	return s.stg.Trip().Mutate(ctx, tripID, func(t *models.Trip, d *models.Driver) error {
		if _, err := t.Release(passengerID); err != nil {
			return err
		}
		d.AvailableSeats = t.AvailableSeats
		if t.Status == models.StatusCanceled {
			d.CancelTrip(t.ID)
		}
		return nil
	})
}

// Start moves a pending trip to in-progress. An unknown trip id surfaces
// the same way as a wrong-state trip.
func (s *tripService) Start(ctx context.Context, driverID, tripID string) (*models.Trip, error) {
	trip, err := s.stg.Trip().Mutate(ctx, tripID, func(t *models.Trip, d *models.Driver) error {
		if t.DriverID != driverID {
			return apperrors.ErrInvalidTransition
		}
		if err := t.Start(); err != nil {
			return err
		}
		d.StartTrip(t.ID)
		return nil
	})
	if err != nil {
		return nil, foldNotFound(err)
	}
	s.log.Info("trip started", logger.String("trip_id", tripID), logger.String("driver_id", driverID))
	return trip, nil
}

// End completes an in-progress trip, finalizes its fare once and credits
// the driver. Earnings accrual is idempotent per trip id.
func (s *tripService) End(ctx context.Context, driverID, tripID string) (*models.Trip, error) {
	trip, err := s.stg.Trip().Mutate(ctx, tripID, func(t *models.Trip, d *models.Driver) error {
		if t.DriverID != driverID {
			return apperrors.ErrInvalidTransition
		}
		finalFare, err := t.Complete()
		if err != nil {
			return err
		}
		d.CompleteTrip(t.ID, finalFare)
		return nil
	})
	if err != nil {
		return nil, foldNotFound(err)
	}
	s.log.Info("trip completed",
		logger.String("trip_id", tripID),
		logger.Int64("final_fare", *trip.FinalFare),
	)
	return trip, nil
}

// FindAvailableDriver returns a driver none of whose pending trips is fully
// booked. Drivers with no trips at all qualify.
func (s *tripService) FindAvailableDriver(ctx context.Context) (*models.Driver, error) {
	drivers, err := s.stg.Driver().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range drivers {
		pending, err := s.stg.Trip().GetByDriverAndStatus(ctx, d.ID, models.StatusPending)
		if err != nil {
			return nil, err
		}
		hasSpace := true
		for _, t := range pending {
			if t.AvailableSeats <= 0 {
				hasSpace = false
				break
			}
		}
		if hasSpace {
			return d, nil
		}
	}
	return nil, fmt.Errorf("no available driver: %w", apperrors.ErrRecordNotFound)
}

func (s *tripService) PassengerTrips(ctx context.Context, passengerID string, statuses ...models.TripStatus) ([]*models.Trip, error) {
	return s.stg.Trip().GetByPassenger(ctx, passengerID, statuses...)
}

func (s *tripService) checkGroupSize(groupSize int) error {
	if groupSize < s.cfg.MinGroupSize || groupSize > s.cfg.MaxGroupSize {
		return fmt.Errorf("%w: group size must be between %d and %d",
			apperrors.ErrInvalidInput, s.cfg.MinGroupSize, s.cfg.MaxGroupSize)
	}
	return nil
}

func (s *tripService) settle(trip *models.Trip, method string, amount int64) *BookingResult {
	payment := models.NewPayment(trip.ID, method, amount)
	payment.Process()
	return &BookingResult{Trip: trip, Payment: payment, Fare: amount}
}

// foldNotFound keeps "unknown trip" indistinguishable from "wrong state"
// for driver-initiated transitions.
func foldNotFound(err error) error {
	if errors.Is(err, apperrors.ErrRecordNotFound) {
		return apperrors.ErrInvalidTransition
	}
	return err
}
