package bot

import (
	"context"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v3"
)

func (b *Bot) handleLoginStart(c tele.Context) error {
	s := b.session(c)
	s.State = StateLoginEmail
	return c.Send("📧 Enter your email:")
}

func (b *Bot) handleSignupStart(role string) tele.HandlerFunc {
	return func(c tele.Context) error {
		s := b.session(c)
		s.Role = role
		s.State = StateSignupFirst
		return c.Send("✍️ Enter your first name:")
	}
}

// handleText routes free-form replies by conversation state.
func (b *Bot) handleText(c tele.Context) error {
	s := b.session(c)
	text := strings.TrimSpace(c.Text())

	switch s.State {
	case StateLoginEmail:
		s.Email = text
		s.State = StateLoginCredential
		return c.Send("🔒 Enter your password:")
	case StateLoginCredential:
		return b.finishLogin(c, s, text)

	case StateSignupFirst:
		s.FirstName = text
		s.State = StateSignupLast
		return c.Send("✍️ Enter your last name:")
	case StateSignupLast:
		s.LastName = text
		s.State = StateSignupContact
		return c.Send("📱 Enter your contact number:")
	case StateSignupContact:
		return b.finishSignup(c, s, text)

	case StateBookRoute:
		return b.bookSetRoute(c, s, text)
	case StateBookDistance:
		return b.bookSetDistance(c, s, text)
	case StateBookGroup:
		return b.bookSetGroup(c, s, text)
	case StateBookPayment:
		return b.bookFinish(c, s, text)

	case StateCancelPick:
		return b.cancelFinish(c, s, text)
	case StateStartPick:
		return b.startFinish(c, s, text)
	case StateEndPick:
		return b.endFinish(c, s, text)
	}

	return b.handleStart(c)
}

func (b *Bot) finishLogin(c tele.Context, s *Session, credential string) error {
	ctx := context.Background()

	if p, err := b.Svc.Passenger().Authenticate(ctx, s.Email, credential); err == nil {
		s.UserID = p.ID
		s.Role = RolePassenger
		s.State = StateIdle
		c.Send(fmt.Sprintf("✅ Welcome back, %s!", p.FullName()))
		return b.showMenu(c, s)
	}

	if d, err := b.Svc.Driver().Authenticate(ctx, s.Email, credential); err == nil {
		s.UserID = d.ID
		s.Role = RoleDriver
		s.State = StateIdle
		c.Send(fmt.Sprintf("✅ Welcome back, %s!", d.FullName()))
		return b.showMenu(c, s)
	}

	s.State = StateIdle
	return c.Send("❌ Invalid email or password.")
}

func (b *Bot) finishSignup(c tele.Context, s *Session, contact string) error {
	ctx := context.Background()
	s.Contact = contact
	s.State = StateIdle

	if s.Role == RoleDriver {
		driver, err := b.Svc.Driver().Register(ctx, s.FirstName, s.LastName, s.Contact)
		if err != nil {
			return c.Send(errText(err))
		}
		s.UserID = driver.ID
		c.Send(fmt.Sprintf(
			"🎉 Driver account created!\n📧 Email: %s\n🔒 Password: %s\n🚗 Vehicle: %s (%s - %s)",
			driver.Email, driver.Credential,
			driver.Vehicle.Model, driver.Vehicle.Color, driver.Vehicle.LicensePlate,
		))
		return b.showMenu(c, s)
	}

	passenger, err := b.Svc.Passenger().Register(ctx, s.FirstName, s.LastName, s.Contact)
	if err != nil {
		return c.Send(errText(err))
	}
	s.UserID = passenger.ID
	s.Role = RolePassenger
	c.Send(fmt.Sprintf(
		"🎉 Passenger account created!\n📧 Email: %s\n🔒 Password: %s",
		passenger.Email, passenger.Credential,
	))
	return b.showMenu(c, s)
}

func (b *Bot) handleProfile(c tele.Context) error {
	s := b.session(c)
	if s.UserID == "" {
		return b.showGuestMenu(c)
	}
	ctx := context.Background()

	if s.Role == RoleDriver {
		d, err := b.Svc.Driver().Get(ctx, s.UserID)
		if err != nil {
			return c.Send(errText(err))
		}
		return c.Send(fmt.Sprintf(
			"🚖 Driver Profile\n"+
				"Name: %s\nContact: %s\nEmail: %s\n"+
				"Vehicle: %s (%s - %s)\n"+
				"Pending: %d | In progress: %d | Completed: %d | Canceled: %d\n"+
				"💰 Total earnings: %d PHP",
			d.FullName(), d.Contact, d.Email,
			d.Vehicle.Model, d.Vehicle.Color, d.Vehicle.LicensePlate,
			len(d.PendingTripIDs), len(d.InProgressTripIDs),
			len(d.CompletedTripIDs), len(d.CanceledTripIDs),
			d.TotalEarnings,
		))
	}

	profile, err := b.Svc.Passenger().Profile(ctx, s.UserID)
	if err != nil {
		return c.Send(errText(err))
	}
	return c.Send(fmt.Sprintf(
		"👤 Passenger Profile\nName: %s\nContact: %s\nEmail: %s\nTrips taken: %d\nPending trips: %d",
		profile.Passenger.FullName(), profile.Passenger.Contact, profile.Passenger.Email,
		profile.CompletedTrips, profile.PendingTrips,
	))
}
