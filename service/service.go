package service

import (
	"rideshare/config"
	"rideshare/pkg/logger"
	"rideshare/storage"
)

type IServiceManager interface {
	Passenger() PassengerService
	Driver() DriverService
	Trip() TripService
}

type service struct {
	passengerService PassengerService
	driverService    DriverService
	tripService      TripService
}

func New(stg storage.IStorage, cfg config.Config, log logger.ILogger) IServiceManager {
	return &service{
		passengerService: NewPassengerService(stg, log),
		driverService:    NewDriverService(stg, cfg, log),
		tripService:      NewTripService(stg, cfg, log),
	}
}

func (s *service) Passenger() PassengerService {
	return s.passengerService
}

func (s *service) Driver() DriverService {
	return s.driverService
}

func (s *service) Trip() TripService {
	return s.tripService
}
