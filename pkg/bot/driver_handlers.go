package bot

import (
	"context"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v3"

	"rideshare/pkg/models"
)

func (b *Bot) handlePendingTrips(c tele.Context) error {
	s := b.session(c)
	if s.UserID == "" || s.Role != RoleDriver {
		return b.showGuestMenu(c)
	}

	trips, err := b.Svc.Driver().PendingTrips(context.Background(), s.UserID)
	if err != nil {
		return c.Send(errText(err))
	}
	if len(trips) == 0 {
		return c.Send("📭 No pending trips.")
	}
	return c.Send("📋 Pending trips:\n" + formatTrips(trips))
}

func (b *Bot) handleSync(c tele.Context) error {
	s := b.session(c)
	if s.UserID == "" || s.Role != RoleDriver {
		return b.showGuestMenu(c)
	}

	d, err := b.Svc.Driver().SyncPending(context.Background(), s.UserID)
	if err != nil {
		return c.Send(errText(err))
	}
	return c.Send(fmt.Sprintf("🔄 Pending trips re-synced: %d in your queue.", len(d.PendingTripIDs)))
}

func (b *Bot) handleStartTripPick(c tele.Context) error {
	s := b.session(c)
	if s.UserID == "" || s.Role != RoleDriver {
		return b.showGuestMenu(c)
	}

	trips, err := b.Svc.Driver().PendingTrips(context.Background(), s.UserID)
	if err != nil {
		return c.Send(errText(err))
	}
	if len(trips) == 0 {
		return c.Send("📭 No pending trips to start.")
	}

	s.stageChoices(trips)
	s.State = StateStartPick
	return c.Send("Which trip do you want to start?\n" + formatTrips(trips))
}

func (b *Bot) startFinish(c tele.Context, s *Session, text string) error {
	tripID, ok := s.pick(text)
	s.State = StateIdle
	if !ok {
		return c.Send("❌ Invalid choice.")
	}

	trip, err := b.Svc.Trip().Start(context.Background(), s.UserID, tripID)
	if err != nil {
		return c.Send(errText(err))
	}
	return c.Send(fmt.Sprintf("▶ Trip to %s started.", trip.Route))
}

func (b *Bot) handleEndTripPick(c tele.Context) error {
	s := b.session(c)
	if s.UserID == "" || s.Role != RoleDriver {
		return b.showGuestMenu(c)
	}

	trips, err := b.Svc.Driver().InProgressTrips(context.Background(), s.UserID)
	if err != nil {
		return c.Send(errText(err))
	}
	if len(trips) == 0 {
		return c.Send("📭 No trips in progress.")
	}

	s.stageChoices(trips)
	s.State = StateEndPick
	return c.Send("Which trip do you want to end?\n" + formatTrips(trips))
}

func (b *Bot) endFinish(c tele.Context, s *Session, text string) error {
	tripID, ok := s.pick(text)
	s.State = StateIdle
	if !ok {
		return c.Send("❌ Invalid choice.")
	}

	trip, err := b.Svc.Trip().End(context.Background(), s.UserID, tripID)
	if err != nil {
		return c.Send(errText(err))
	}
	return c.Send(fmt.Sprintf("🏁 Trip to %s completed. Final fare: %d PHP.", trip.Route, *trip.FinalFare))
}

func (s *Session) stageChoices(trips []*models.Trip) {
	s.Choices = s.Choices[:0]
	for _, t := range trips {
		s.Choices = append(s.Choices, t.ID)
	}
}

func formatTrips(trips []*models.Trip) string {
	var sb strings.Builder
	for i, t := range trips {
		seats := 0
		for _, g := range t.PassengerGroups {
			seats += g.GroupSize
		}
		fmt.Fprintf(&sb, "%d. %s — %v km, %d seat(s) booked, fare %d PHP\n",
			i+1, t.Route, t.DistanceKm, seats, t.TotalFare())
	}
	return sb.String()
}
