package service

import (
	"context"
	"sync"

	"rideshare/pkg/apperrors"
	"rideshare/pkg/logger"
	"rideshare/pkg/models"
	"rideshare/storage"
)

// memStore is an in-memory persistence gateway for service tests. Like the
// real gateway, mutations are applied to copies and only stored when the
// domain closure succeeds, so a failed operation leaves no partial state.
type memStore struct {
	mu         sync.Mutex
	passengers map[string]*models.Passenger
	drivers    map[string]*models.Driver
	driverIDs  []string
	trips      map[string]*models.Trip
	tripIDs    []string
}

func newMemStore() *memStore {
	return &memStore{
		passengers: make(map[string]*models.Passenger),
		drivers:    make(map[string]*models.Driver),
		trips:      make(map[string]*models.Trip),
	}
}

func (s *memStore) Passenger() storage.IPassengerStorage { return memPassengers{s} }
func (s *memStore) Driver() storage.IDriverStorage       { return memDrivers{s} }
func (s *memStore) Trip() storage.ITripStorage           { return memTrips{s} }
func (s *memStore) Close()                               {}

func cloneTrip(t *models.Trip) *models.Trip {
	c := *t
	c.PassengerGroups = append([]models.PassengerGroup(nil), t.PassengerGroups...)
	if t.FinalFare != nil {
		f := *t.FinalFare
		c.FinalFare = &f
	}
	return &c
}

func cloneDriver(d *models.Driver) *models.Driver {
	c := *d
	c.PendingTripIDs = append([]string(nil), d.PendingTripIDs...)
	c.InProgressTripIDs = append([]string(nil), d.InProgressTripIDs...)
	c.CompletedTripIDs = append([]string(nil), d.CompletedTripIDs...)
	c.CanceledTripIDs = append([]string(nil), d.CanceledTripIDs...)
	return &c
}

type memPassengers struct{ s *memStore }

func (m memPassengers) Create(_ context.Context, p *models.Passenger) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	cp := *p
	m.s.passengers[p.ID] = &cp
	return nil
}

func (m memPassengers) GetByID(_ context.Context, id string) (*models.Passenger, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	p, ok := m.s.passengers[id]
	if !ok {
		return nil, apperrors.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (m memPassengers) GetByEmail(_ context.Context, email string) (*models.Passenger, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, p := range m.s.passengers {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperrors.ErrRecordNotFound
}

func (m memPassengers) GetAll(_ context.Context) ([]*models.Passenger, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []*models.Passenger
	for _, p := range m.s.passengers {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

type memDrivers struct{ s *memStore }

func (m memDrivers) Create(_ context.Context, d *models.Driver) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.drivers[d.ID] = cloneDriver(d)
	m.s.driverIDs = append(m.s.driverIDs, d.ID)
	return nil
}

func (m memDrivers) GetByID(_ context.Context, id string) (*models.Driver, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	d, ok := m.s.drivers[id]
	if !ok {
		return nil, apperrors.ErrRecordNotFound
	}
	return cloneDriver(d), nil
}

func (m memDrivers) GetByEmail(_ context.Context, email string) (*models.Driver, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, d := range m.s.drivers {
		if d.Email == email {
			return cloneDriver(d), nil
		}
	}
	return nil, apperrors.ErrRecordNotFound
}

func (m memDrivers) GetAll(_ context.Context) ([]*models.Driver, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []*models.Driver
	for _, id := range m.s.driverIDs {
		out = append(out, cloneDriver(m.s.drivers[id]))
	}
	return out, nil
}

func (m memDrivers) SyncPending(_ context.Context, driverID string) (*models.Driver, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	d, ok := m.s.drivers[driverID]
	if !ok {
		return nil, apperrors.ErrRecordNotFound
	}
	pending := []string{}
	for _, id := range m.s.tripIDs {
		t := m.s.trips[id]
		if t.DriverID == driverID && t.Status == models.StatusPending {
			pending = append(pending, t.ID)
		}
	}
	d.PendingTripIDs = pending
	return cloneDriver(d), nil
}

type memTrips struct{ s *memStore }

func (m memTrips) Create(_ context.Context, trip *models.Trip, register func(d *models.Driver) error) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	stored, ok := m.s.drivers[trip.DriverID]
	if !ok {
		return apperrors.ErrRecordNotFound
	}
	d := cloneDriver(stored)
	if err := register(d); err != nil {
		return err
	}
	m.s.trips[trip.ID] = cloneTrip(trip)
	m.s.tripIDs = append(m.s.tripIDs, trip.ID)
	m.s.drivers[d.ID] = d
	return nil
}

func (m memTrips) GetByID(_ context.Context, id string) (*models.Trip, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	t, ok := m.s.trips[id]
	if !ok {
		return nil, apperrors.ErrRecordNotFound
	}
	return cloneTrip(t), nil
}

func (m memTrips) GetAll(_ context.Context) ([]*models.Trip, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []*models.Trip
	for _, id := range m.s.tripIDs {
		out = append(out, cloneTrip(m.s.trips[id]))
	}
	return out, nil
}

func (m memTrips) GetByDriverAndStatus(_ context.Context, driverID string, status models.TripStatus) ([]*models.Trip, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []*models.Trip
	for _, id := range m.s.tripIDs {
		t := m.s.trips[id]
		if t.DriverID == driverID && t.Status == status {
			out = append(out, cloneTrip(t))
		}
	}
	return out, nil
}

func (m memTrips) GetByPassenger(_ context.Context, passengerID string, statuses ...models.TripStatus) ([]*models.Trip, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []*models.Trip
	for _, id := range m.s.tripIDs {
		t := m.s.trips[id]
		if !t.HasPassenger(passengerID) {
			continue
		}
		if len(statuses) > 0 {
			matched := false
			for _, st := range statuses {
				if t.Status == st {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		out = append(out, cloneTrip(t))
	}
	return out, nil
}

func (m memTrips) Mutate(_ context.Context, tripID string, fn func(t *models.Trip, d *models.Driver) error) (*models.Trip, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	stored, ok := m.s.trips[tripID]
	if !ok {
		return nil, apperrors.ErrRecordNotFound
	}
	t := cloneTrip(stored)
	d := cloneDriver(m.s.drivers[t.DriverID])
	if err := fn(t, d); err != nil {
		return nil, err
	}
	m.s.trips[t.ID] = cloneTrip(t)
	m.s.drivers[d.ID] = d
	return t, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...logger.Field)   {}
func (nopLogger) Info(string, ...logger.Field)    {}
func (nopLogger) Error(string, ...logger.Field)   {}
func (nopLogger) Warning(string, ...logger.Field) {}
