package models

import "time"

// Driver is a vehicle owner with a four-way index of trip ids by status and
// cumulative earnings. The sets are a derived index; the trip record's
// driver_id is the source of truth, and SyncPending on the storage layer is
// the recovery path when the sets drift.
type Driver struct {
	ID         string  `json:"id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Contact    string  `json:"contact"`
	Email      string  `json:"email"`
	Credential string  `json:"credential"`
	Vehicle    Vehicle `json:"vehicle"`

	PendingTripIDs    []string `json:"pending_trip_ids"`
	InProgressTripIDs []string `json:"in_progress_trip_ids"`
	CompletedTripIDs  []string `json:"completed_trip_ids"`
	CanceledTripIDs   []string `json:"canceled_trip_ids"`

	TotalEarnings  int64     `json:"total_earnings"`
	AvailableSeats int       `json:"available_seats"`
	CreatedAt      time.Time `json:"created_at"`
}

func (d *Driver) FullName() string {
	return d.FirstName + " " + d.LastName
}

// RegisterPendingTrip records a freshly created trip in the pending set.
func (d *Driver) RegisterPendingTrip(tripID string) {
	d.PendingTripIDs = appendUnique(d.PendingTripIDs, tripID)
}

// StartTrip moves the trip id from the pending set to the in-progress set.
func (d *Driver) StartTrip(tripID string) {
	d.PendingTripIDs = remove(d.PendingTripIDs, tripID)
	d.InProgressTripIDs = appendUnique(d.InProgressTripIDs, tripID)
}

// CompleteTrip moves the trip id to the completed set and adds the final
// fare to cumulative earnings. Completion is idempotent per trip id: a trip
// already in the completed set contributes nothing, so ending the same trip
// twice cannot double-count earnings. Reports whether earnings changed.
func (d *Driver) CompleteTrip(tripID string, finalFare int64) bool {
	if d.HasCompleted(tripID) {
		return false
	}
	d.InProgressTripIDs = remove(d.InProgressTripIDs, tripID)
	d.CompletedTripIDs = append(d.CompletedTripIDs, tripID)
	d.TotalEarnings += finalFare
	return true
}

// CancelTrip moves the trip id out of the active sets into the canceled set.
func (d *Driver) CancelTrip(tripID string) {
	d.PendingTripIDs = remove(d.PendingTripIDs, tripID)
	d.InProgressTripIDs = remove(d.InProgressTripIDs, tripID)
	d.CanceledTripIDs = appendUnique(d.CanceledTripIDs, tripID)
}

func (d *Driver) HasCompleted(tripID string) bool {
	return contains(d.CompletedTripIDs, tripID)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func appendUnique(ids []string, id string) []string {
	if contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
