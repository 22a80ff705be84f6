package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"

	"rideshare/pkg/models"
)

func (b *Bot) handleBookStart(c tele.Context) error {
	s := b.session(c)
	if s.UserID == "" || s.Role != RolePassenger {
		return b.showGuestMenu(c)
	}
	s.State = StateBookRoute
	return c.Send("🏁 Where are you going?")
}

func (b *Bot) bookSetRoute(c tele.Context, s *Session, text string) error {
	s.Route = text
	s.State = StateBookDistance
	return c.Send("📏 Enter the distance in km:")
}

func (b *Bot) bookSetDistance(c tele.Context, s *Session, text string) error {
	distance, err := strconv.ParseFloat(text, 64)
	if err != nil || distance < 0 {
		return c.Send("❌ Enter a non-negative number, e.g. 12.5")
	}
	s.DistanceKm = distance
	s.State = StateBookGroup
	return c.Send(fmt.Sprintf("👥 How many passengers (%d-%d)?", b.Cfg.MinGroupSize, b.Cfg.MaxGroupSize))
}

func (b *Bot) bookSetGroup(c tele.Context, s *Session, text string) error {
	size, err := strconv.Atoi(text)
	if err != nil || size < b.Cfg.MinGroupSize || size > b.Cfg.MaxGroupSize {
		return c.Send(fmt.Sprintf("❌ Enter a number between %d and %d.", b.Cfg.MinGroupSize, b.Cfg.MaxGroupSize))
	}
	s.GroupSize = size
	s.State = StateBookPayment
	return c.Send("💳 Payment method (GCash/PayPal/Debit):")
}

func (b *Bot) bookFinish(c tele.Context, s *Session, method string) error {
	ctx := context.Background()
	s.State = StateIdle

	res, err := b.Svc.Trip().Book(ctx, s.UserID, s.Route, s.DistanceKm, s.GroupSize, method)
	if err != nil {
		return c.Send(errText(err))
	}

	driver, err := b.Svc.Driver().Get(ctx, res.Trip.DriverID)
	driverName := res.Trip.DriverID
	if err == nil {
		driverName = driver.FullName()
	}

	return c.Send(fmt.Sprintf(
		"✅ Trip booked!\n"+
			"Route: %s\nDistance: %v km\nGroup size: %d\n"+
			"Estimated fare: %d PHP\nDriver: %s\nPayment: %s (%s)\nStart time: %s",
		res.Trip.Route, res.Trip.DistanceKm, s.GroupSize,
		res.Fare, driverName, res.Payment.Method, res.Payment.Status,
		res.Trip.StartTime.Format("2006-01-02 15:04:05"),
	))
}

func (b *Bot) handleCancelStart(c tele.Context) error {
	s := b.session(c)
	if s.UserID == "" || s.Role != RolePassenger {
		return b.showGuestMenu(c)
	}

	trips, err := b.Svc.Trip().PassengerTrips(context.Background(), s.UserID,
		models.StatusPending, models.StatusInProgress)
	if err != nil {
		return c.Send(errText(err))
	}
	if len(trips) == 0 {
		return c.Send("📭 You have no trips to cancel.")
	}

	s.Choices = s.Choices[:0]
	var sb strings.Builder
	sb.WriteString("Which trip do you want to cancel?\n")
	for i, t := range trips {
		s.Choices = append(s.Choices, t.ID)
		fmt.Fprintf(&sb, "%d. %s — %v km (%s)\n", i+1, t.Route, t.DistanceKm, t.Status)
	}
	s.State = StateCancelPick
	return c.Send(sb.String())
}

func (b *Bot) cancelFinish(c tele.Context, s *Session, text string) error {
	tripID, ok := s.pick(text)
	s.State = StateIdle
	if !ok {
		return c.Send("❌ Invalid choice.")
	}

	trip, err := b.Svc.Trip().Cancel(context.Background(), s.UserID, tripID)
	if err != nil {
		return c.Send(errText(err))
	}
	if trip.Status == models.StatusCanceled {
		return c.Send("✅ Your booking was removed and the trip is canceled (no passengers remain).")
	}
	return c.Send("✅ Your booking was removed from the trip.")
}

func (b *Bot) handleHistory(c tele.Context) error {
	s := b.session(c)
	if s.UserID == "" || s.Role != RolePassenger {
		return b.showGuestMenu(c)
	}

	trips, err := b.Svc.Passenger().History(context.Background(), s.UserID)
	if err != nil {
		return c.Send(errText(err))
	}
	if len(trips) == 0 {
		return c.Send("📭 No trips booked yet.")
	}

	var sb strings.Builder
	sb.WriteString("📜 Your trips:\n")
	for i, t := range trips {
		fare := t.TotalFare()
		if t.FinalFare != nil {
			fare = *t.FinalFare
		}
		fmt.Fprintf(&sb, "%d. %s — %v km, %d PHP, %s\n", i+1, t.Route, t.DistanceKm, fare, t.Status)
	}
	return c.Send(sb.String())
}

// pick resolves a 1-based menu reply against the staged trip ids.
func (s *Session) pick(text string) (string, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 || n > len(s.Choices) {
		return "", false
	}
	return s.Choices[n-1], true
}
