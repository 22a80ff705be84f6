package models

import (
	"time"

	"github.com/google/uuid"

	"rideshare/pkg/apperrors"
	"rideshare/pkg/fare"
)

type TripStatus string

const (
	StatusPending    TripStatus = "pending"
	StatusInProgress TripStatus = "in-progress"
	StatusCompleted  TripStatus = "completed"
	StatusCanceled   TripStatus = "canceled"
)

// Terminal reports whether no further transitions are permitted.
func (s TripStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

// PassengerGroup is one passenger's seat reservation, covering a party of
// one or more people.
type PassengerGroup struct {
	PassengerID string `json:"passenger_id"`
	GroupSize   int    `json:"group_size"`
}

// Trip is a single ride from creation to terminal status. It owns its
// passenger-group list and status; driver and passengers are referenced by
// id only. The seat invariant holds at all times:
// AvailableSeats + sum of group sizes == capacity at creation.
type Trip struct {
	ID              string           `json:"trip_id"`
	Route           string           `json:"route"`
	DistanceKm      float64          `json:"distance"`
	BaseFare        int64            `json:"base_fare"`
	DriverID        string           `json:"driver_id"`
	PassengerGroups []PassengerGroup `json:"passenger_groups"`
	AvailableSeats  int              `json:"available_seats"`
	StartTime       time.Time        `json:"start_time"`
	Status          TripStatus       `json:"status"`
	FinalFare       *int64           `json:"final_fare"`
	CreatedAt       time.Time        `json:"created_at"`
}

// NewTrip creates a pending trip assigned to the driver, with the driver's
// current seat capacity and no passengers yet.
func NewTrip(route string, distanceKm float64, driver *Driver) (*Trip, error) {
	base, err := fare.BaseFare(distanceKm)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Trip{
		ID:             uuid.NewString(),
		Route:          route,
		DistanceKm:     distanceKm,
		BaseFare:       base,
		DriverID:       driver.ID,
		AvailableSeats: driver.AvailableSeats,
		StartTime:      now,
		Status:         StatusPending,
		CreatedAt:      now,
	}, nil
}

// Reserve holds groupSize seats for the passenger and returns the group
// fare. It only enforces the running capacity invariant; group size bounds
// are the booking request's concern.
func (t *Trip) Reserve(passengerID string, groupSize int) (int64, error) {
	if groupSize > t.AvailableSeats {
		return 0, apperrors.ErrCapacityExceeded
	}
	t.PassengerGroups = append(t.PassengerGroups, PassengerGroup{
		PassengerID: passengerID,
		GroupSize:   groupSize,
	})
	t.AvailableSeats -= groupSize
	return fare.GroupFare(t.BaseFare, groupSize), nil
}

// Release removes every group held by the passenger and returns the number
// of seats freed. When the last group leaves, the trip is canceled.
func (t *Trip) Release(passengerID string) (int, error) {
	if t.Status.Terminal() {
		return 0, apperrors.ErrTripAlreadyTerminal
	}

	kept := t.PassengerGroups[:0]
	freed := 0
	for _, g := range t.PassengerGroups {
		if g.PassengerID == passengerID {
			freed += g.GroupSize
			continue
		}
		kept = append(kept, g)
	}
	if freed == 0 {
		return 0, apperrors.ErrNotInTrip
	}

	t.PassengerGroups = kept
	t.AvailableSeats += freed
	if len(t.PassengerGroups) == 0 {
		t.Status = StatusCanceled
	}
	return freed, nil
}

// Start moves the trip from pending to in-progress.
func (t *Trip) Start() error {
	if t.Status != StatusPending {
		return apperrors.ErrInvalidTransition
	}
	t.Status = StatusInProgress
	return nil
}

// Complete moves the trip from in-progress to completed and returns the
// final fare. The fare is finalized exactly once: a fare already set is
// never recomputed.
func (t *Trip) Complete() (int64, error) {
	if t.Status != StatusInProgress {
		return 0, apperrors.ErrInvalidTransition
	}
	t.Status = StatusCompleted
	if t.FinalFare == nil {
		f := t.TotalFare()
		t.FinalFare = &f
	}
	return *t.FinalFare, nil
}

// TotalFare sums the group fares of everyone currently on the trip.
func (t *Trip) TotalFare() int64 {
	var total int64
	for _, g := range t.PassengerGroups {
		total += fare.GroupFare(t.BaseFare, g.GroupSize)
	}
	return total
}

// HasPassenger reports whether the passenger holds a group on this trip.
func (t *Trip) HasPassenger(passengerID string) bool {
	for _, g := range t.PassengerGroups {
		if g.PassengerID == passengerID {
			return true
		}
	}
	return false
}
