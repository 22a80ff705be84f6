package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegisterPendingTrip(t *testing.T) {
	d := &Driver{}
	d.RegisterPendingTrip("t1")
	d.RegisterPendingTrip("t1")

	if diff := cmp.Diff([]string{"t1"}, d.PendingTripIDs); diff != "" {
		t.Errorf("pending set mismatch (-want +got):\n%s", diff)
	}
}

func TestStartTripMovesSets(t *testing.T) {
	d := &Driver{PendingTripIDs: []string{"t1", "t2"}}
	d.StartTrip("t1")

	if diff := cmp.Diff([]string{"t2"}, d.PendingTripIDs); diff != "" {
		t.Errorf("pending set mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"t1"}, d.InProgressTripIDs); diff != "" {
		t.Errorf("in-progress set mismatch (-want +got):\n%s", diff)
	}
}

func TestCompleteTripIdempotent(t *testing.T) {
	d := &Driver{InProgressTripIDs: []string{"t1"}}

	if !d.CompleteTrip("t1", 300) {
		t.Fatal("first completion should credit earnings")
	}
	if d.TotalEarnings != 300 {
		t.Fatalf("earnings = %d, want 300", d.TotalEarnings)
	}

	if d.CompleteTrip("t1", 300) {
		t.Fatal("second completion should be a no-op")
	}
	if d.TotalEarnings != 300 {
		t.Errorf("earnings double-counted: %d, want 300", d.TotalEarnings)
	}
	if diff := cmp.Diff([]string{"t1"}, d.CompletedTripIDs); diff != "" {
		t.Errorf("completed set mismatch (-want +got):\n%s", diff)
	}
}

func TestCancelTripExactlyOnce(t *testing.T) {
	d := &Driver{PendingTripIDs: []string{"t1"}}
	d.CancelTrip("t1")
	d.CancelTrip("t1")

	if len(d.PendingTripIDs) != 0 {
		t.Errorf("pending set should be empty, got %v", d.PendingTripIDs)
	}
	if diff := cmp.Diff([]string{"t1"}, d.CanceledTripIDs); diff != "" {
		t.Errorf("canceled set mismatch (-want +got):\n%s", diff)
	}
}
