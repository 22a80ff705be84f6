package service

import (
	"context"
	"errors"
	"slices"
	"testing"

	"rideshare/config"
	"rideshare/pkg/apperrors"
	"rideshare/pkg/models"
)

func testConfig() config.Config {
	return config.Config{
		DefaultSeatCapacity: 4,
		MinGroupSize:        1,
		MaxGroupSize:        4,
	}
}

func newTestEnv(t *testing.T) (*memStore, IServiceManager, *models.Passenger, *models.Driver) {
	t.Helper()
	store := newMemStore()
	svc := New(store, testConfig(), nopLogger{})

	ctx := context.Background()
	passenger, err := svc.Passenger().Register(ctx, "Juan", "Dela Cruz", "0917-000-0000")
	if err != nil {
		t.Fatalf("register passenger: %v", err)
	}
	driver, err := svc.Driver().Register(ctx, "Maria", "Santos", "0918-111-1111")
	if err != nil {
		t.Fatalf("register driver: %v", err)
	}
	return store, svc, passenger, driver
}

func TestBook(t *testing.T) {
	_, svc, p, d := newTestEnv(t)
	ctx := context.Background()

	res, err := svc.Trip().Book(ctx, p.ID, "Makati", 10, 2, "GCash")
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if res.Fare != 300 {
		t.Errorf("fare = %d, want 300", res.Fare)
	}
	if res.Trip.Status != models.StatusPending {
		t.Errorf("status = %s, want pending", res.Trip.Status)
	}
	if res.Payment.Status != models.PaymentCompleted {
		t.Errorf("payment status = %s, want Completed", res.Payment.Status)
	}

	got, err := svc.Driver().Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("get driver: %v", err)
	}
	if !slices.Contains(got.PendingTripIDs, res.Trip.ID) {
		t.Error("trip id missing from driver's pending set")
	}
	if got.AvailableSeats != 2 {
		t.Errorf("driver seat mirror = %d, want 2", got.AvailableSeats)
	}
}

func TestBookGroupSizeOutOfBounds(t *testing.T) {
	_, svc, p, _ := newTestEnv(t)
	ctx := context.Background()

	for _, size := range []int{0, 5} {
		if _, err := svc.Trip().Book(ctx, p.ID, "Makati", 10, size, "GCash"); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Errorf("Book(size=%d) error = %v, want ErrInvalidInput", size, err)
		}
	}
}

func TestBookUnknownPassenger(t *testing.T) {
	_, svc, _, _ := newTestEnv(t)

	_, err := svc.Trip().Book(context.Background(), "nobody", "Makati", 10, 2, "GCash")
	if !errors.Is(err, apperrors.ErrRecordNotFound) {
		t.Fatalf("error = %v, want ErrRecordNotFound", err)
	}
}

func TestBookNoAvailableDriver(t *testing.T) {
	_, svc, p, _ := newTestEnv(t)
	ctx := context.Background()

	// Fill the only driver's pending trip completely.
	if _, err := svc.Trip().Book(ctx, p.ID, "Makati", 10, 4, "GCash"); err != nil {
		t.Fatalf("Book: %v", err)
	}

	_, err := svc.Trip().Book(ctx, p.ID, "Pasig", 5, 1, "GCash")
	if !errors.Is(err, apperrors.ErrRecordNotFound) {
		t.Fatalf("error = %v, want ErrRecordNotFound (no available driver)", err)
	}
}

func TestJoinCapacityExceededLeavesNoMutation(t *testing.T) {
	store, svc, p, _ := newTestEnv(t)
	ctx := context.Background()

	p2, _ := svc.Passenger().Register(ctx, "Pedro", "Reyes", "0919-222-2222")
	res, err := svc.Trip().Book(ctx, p.ID, "Makati", 10, 2, "GCash")
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	_, err = svc.Trip().Join(ctx, p2.ID, res.Trip.ID, 3, "PayPal")
	if !errors.Is(err, apperrors.ErrCapacityExceeded) {
		t.Fatalf("error = %v, want ErrCapacityExceeded", err)
	}

	trip, _ := store.Trip().GetByID(ctx, res.Trip.ID)
	if trip.AvailableSeats != 2 {
		t.Errorf("failed join mutated seats: %d, want 2", trip.AvailableSeats)
	}
	if len(trip.PassengerGroups) != 1 {
		t.Errorf("failed join added a group: %v", trip.PassengerGroups)
	}
}

func TestJoin(t *testing.T) {
	store, svc, p, _ := newTestEnv(t)
	ctx := context.Background()

	p2, _ := svc.Passenger().Register(ctx, "Pedro", "Reyes", "0919-222-2222")
	res, _ := svc.Trip().Book(ctx, p.ID, "Makati", 10, 2, "GCash")

	joined, err := svc.Trip().Join(ctx, p2.ID, res.Trip.ID, 2, "PayPal")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if joined.Fare != 300 {
		t.Errorf("fare = %d, want 300", joined.Fare)
	}

	trip, _ := store.Trip().GetByID(ctx, res.Trip.ID)
	if trip.AvailableSeats != 0 {
		t.Errorf("available seats = %d, want 0", trip.AvailableSeats)
	}
	if !trip.HasPassenger(p2.ID) {
		t.Error("second passenger missing from trip")
	}
}

func TestJoinNonPendingTrip(t *testing.T) {
	_, svc, p, d := newTestEnv(t)
	ctx := context.Background()

	p2, _ := svc.Passenger().Register(ctx, "Pedro", "Reyes", "0919-222-2222")
	res, _ := svc.Trip().Book(ctx, p.ID, "Makati", 10, 1, "GCash")

	if _, err := svc.Trip().Start(ctx, d.ID, res.Trip.ID); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := svc.Trip().Join(ctx, p2.ID, res.Trip.ID, 1, "GCash"); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Errorf("join in-progress: error = %v, want ErrInvalidTransition", err)
	}

	if _, err := svc.Trip().End(ctx, d.ID, res.Trip.ID); err != nil {
		t.Fatalf("End: %v", err)
	}
	if _, err := svc.Trip().Join(ctx, p2.ID, res.Trip.ID, 1, "GCash"); !errors.Is(err, apperrors.ErrTripAlreadyTerminal) {
		t.Errorf("join completed: error = %v, want ErrTripAlreadyTerminal", err)
	}
}

func TestCancelLastGroup(t *testing.T) {
	_, svc, p, d := newTestEnv(t)
	ctx := context.Background()

	res, _ := svc.Trip().Book(ctx, p.ID, "Makati", 10, 2, "GCash")

	trip, err := svc.Trip().Cancel(ctx, p.ID, res.Trip.ID)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if trip.Status != models.StatusCanceled {
		t.Errorf("status = %s, want canceled", trip.Status)
	}

	got, _ := svc.Driver().Get(ctx, d.ID)
	canceled := 0
	for _, id := range got.CanceledTripIDs {
		if id == res.Trip.ID {
			canceled++
		}
	}
	if canceled != 1 {
		t.Errorf("trip id appears %d times in canceled set, want exactly 1", canceled)
	}
	if slices.Contains(got.PendingTripIDs, res.Trip.ID) {
		t.Error("canceled trip still in pending set")
	}
	if got.AvailableSeats != 4 {
		t.Errorf("driver seat mirror = %d, want 4", got.AvailableSeats)
	}

	// Canceled is terminal.
	if _, err := svc.Trip().Cancel(ctx, p.ID, res.Trip.ID); !errors.Is(err, apperrors.ErrTripAlreadyTerminal) {
		t.Errorf("second cancel: error = %v, want ErrTripAlreadyTerminal", err)
	}
}

func TestCancelNotInTrip(t *testing.T) {
	_, svc, p, _ := newTestEnv(t)
	ctx := context.Background()

	p2, _ := svc.Passenger().Register(ctx, "Pedro", "Reyes", "0919-222-2222")
	res, _ := svc.Trip().Book(ctx, p.ID, "Makati", 10, 2, "GCash")

	if _, err := svc.Trip().Cancel(ctx, p2.ID, res.Trip.ID); !errors.Is(err, apperrors.ErrNotInTrip) {
		t.Fatalf("error = %v, want ErrNotInTrip", err)
	}
}

func TestStartTransitions(t *testing.T) {
	_, svc, p, d := newTestEnv(t)
	ctx := context.Background()

	res, _ := svc.Trip().Book(ctx, p.ID, "Makati", 10, 2, "GCash")

	trip, err := svc.Trip().Start(ctx, d.ID, res.Trip.ID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if trip.Status != models.StatusInProgress {
		t.Errorf("status = %s, want in-progress", trip.Status)
	}

	got, _ := svc.Driver().Get(ctx, d.ID)
	if slices.Contains(got.PendingTripIDs, res.Trip.ID) {
		t.Error("started trip still in pending set")
	}
	if !slices.Contains(got.InProgressTripIDs, res.Trip.ID) {
		t.Error("started trip missing from in-progress set")
	}

	if _, err := svc.Trip().Start(ctx, d.ID, res.Trip.ID); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Errorf("second start: error = %v, want ErrInvalidTransition", err)
	}
	if _, err := svc.Trip().Start(ctx, d.ID, "no-such-trip"); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Errorf("unknown trip id: error = %v, want ErrInvalidTransition", err)
	}
}

func TestEndOnPendingTrip(t *testing.T) {
	_, svc, p, d := newTestEnv(t)
	ctx := context.Background()

	res, _ := svc.Trip().Book(ctx, p.ID, "Makati", 10, 2, "GCash")
	if _, err := svc.Trip().End(ctx, d.ID, res.Trip.ID); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("error = %v, want ErrInvalidTransition", err)
	}
}

func TestEndIdempotentEarnings(t *testing.T) {
	_, svc, p, d := newTestEnv(t)
	ctx := context.Background()

	res, _ := svc.Trip().Book(ctx, p.ID, "Makati", 10, 2, "GCash")
	svc.Trip().Start(ctx, d.ID, res.Trip.ID)

	trip, err := svc.Trip().End(ctx, d.ID, res.Trip.ID)
	if err != nil {
		t.Fatalf("End: %v", err)
	}
	if trip.FinalFare == nil || *trip.FinalFare != 300 {
		t.Fatalf("final fare = %v, want 300", trip.FinalFare)
	}

	got, _ := svc.Driver().Get(ctx, d.ID)
	if got.TotalEarnings != 300 {
		t.Fatalf("earnings = %d, want 300", got.TotalEarnings)
	}
	if !slices.Contains(got.CompletedTripIDs, res.Trip.ID) {
		t.Error("trip missing from completed set")
	}

	if _, err := svc.Trip().End(ctx, d.ID, res.Trip.ID); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Errorf("second end: error = %v, want ErrInvalidTransition", err)
	}
	got, _ = svc.Driver().Get(ctx, d.ID)
	if got.TotalEarnings != 300 {
		t.Errorf("earnings after second end = %d, want 300 (no double count)", got.TotalEarnings)
	}
}

func TestEndWrongDriver(t *testing.T) {
	_, svc, p, d := newTestEnv(t)
	ctx := context.Background()

	res, _ := svc.Trip().Book(ctx, p.ID, "Makati", 10, 2, "GCash")
	svc.Trip().Start(ctx, d.ID, res.Trip.ID)

	if _, err := svc.Trip().End(ctx, "someone-else", res.Trip.ID); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("error = %v, want ErrInvalidTransition", err)
	}
}
