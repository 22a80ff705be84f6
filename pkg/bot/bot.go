package bot

import (
	"errors"
	"time"

	tele "gopkg.in/telebot.v3"

	"rideshare/config"
	"rideshare/pkg/apperrors"
	"rideshare/pkg/logger"
	"rideshare/service"
)

// Session is per-chat conversation state. Staged fields accumulate answers
// until a flow completes.
type Session struct {
	State  string
	Role   string
	UserID string

	Email     string
	FirstName string
	LastName  string
	Contact   string

	Route      string
	DistanceKm float64
	GroupSize  int

	// Choices maps menu positions to trip ids for pick flows.
	Choices []string
}

const (
	RolePassenger = "passenger"
	RoleDriver    = "driver"
)

const (
	StateIdle = "idle"

	StateLoginEmail      = "awaiting_login_email"
	StateLoginCredential = "awaiting_login_credential"

	StateSignupFirst   = "awaiting_signup_first_name"
	StateSignupLast    = "awaiting_signup_last_name"
	StateSignupContact = "awaiting_signup_contact"

	StateBookRoute    = "awaiting_route"
	StateBookDistance = "awaiting_distance"
	StateBookGroup    = "awaiting_group_size"
	StateBookPayment  = "awaiting_payment_method"

	StateCancelPick = "awaiting_cancel_choice"
	StateStartPick  = "awaiting_start_choice"
	StateEndPick    = "awaiting_end_choice"
)

const (
	btnLogin           = "🔑 Login"
	btnSignupPassenger = "📝 Sign Up as Passenger"
	btnSignupDriver    = "📝 Sign Up as Driver"

	btnBook    = "🚕 Book a Trip"
	btnCancel  = "❌ Cancel a Trip"
	btnHistory = "📜 Trip History"

	btnPending = "📋 Pending Trips"
	btnStart   = "▶ Start a Trip"
	btnEnd     = "🏁 End a Trip"
	btnSync    = "🔄 Sync Trips"

	btnProfile = "👤 Profile"
	btnLogout  = "🚪 Logout"
)

type Bot struct {
	Bot      *tele.Bot
	Svc      service.IServiceManager
	Log      logger.ILogger
	Cfg      *config.Config
	Sessions map[int64]*Session
}

func New(cfg *config.Config, svc service.IServiceManager, log logger.ILogger) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.TelegramBotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}
	bot := &Bot{
		Bot:      b,
		Svc:      svc,
		Log:      log,
		Cfg:      cfg,
		Sessions: make(map[int64]*Session),
	}
	bot.registerHandlers()
	return bot, nil
}

func (b *Bot) Start() {
	b.Log.Info("🤖 Bot started...")
	b.Bot.Start()
}

func (b *Bot) registerHandlers() {
	b.Bot.Handle("/start", b.handleStart)

	b.Bot.Handle(btnLogin, b.handleLoginStart)
	b.Bot.Handle(btnSignupPassenger, b.handleSignupStart(RolePassenger))
	b.Bot.Handle(btnSignupDriver, b.handleSignupStart(RoleDriver))
	b.Bot.Handle(btnLogout, b.handleLogout)
	b.Bot.Handle(btnProfile, b.handleProfile)

	b.Bot.Handle(btnBook, b.handleBookStart)
	b.Bot.Handle(btnCancel, b.handleCancelStart)
	b.Bot.Handle(btnHistory, b.handleHistory)

	b.Bot.Handle(btnPending, b.handlePendingTrips)
	b.Bot.Handle(btnStart, b.handleStartTripPick)
	b.Bot.Handle(btnEnd, b.handleEndTripPick)
	b.Bot.Handle(btnSync, b.handleSync)

	b.Bot.Handle(tele.OnText, b.handleText)
}

func (b *Bot) session(c tele.Context) *Session {
	s, ok := b.Sessions[c.Sender().ID]
	if !ok {
		s = &Session{State: StateIdle}
		b.Sessions[c.Sender().ID] = s
	}
	return s
}

func (b *Bot) handleStart(c tele.Context) error {
	s := b.session(c)
	if s.UserID == "" {
		return b.showGuestMenu(c)
	}
	return b.showMenu(c, s)
}

func (b *Bot) handleLogout(c tele.Context) error {
	b.Sessions[c.Sender().ID] = &Session{State: StateIdle}
	return b.showGuestMenu(c)
}

func (b *Bot) showGuestMenu(c tele.Context) error {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(btnLogin)),
		menu.Row(menu.Text(btnSignupPassenger), menu.Text(btnSignupDriver)),
	)
	return c.Send("👋 Welcome to the ride-sharing service!", menu)
}

func (b *Bot) showMenu(c tele.Context, s *Session) error {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	if s.Role == RoleDriver {
		menu.Reply(
			menu.Row(menu.Text(btnPending), menu.Text(btnSync)),
			menu.Row(menu.Text(btnStart), menu.Text(btnEnd)),
			menu.Row(menu.Text(btnProfile), menu.Text(btnLogout)),
		)
		return c.Send("🚖 Driver menu:", menu)
	}

	menu.Reply(
		menu.Row(menu.Text(btnBook), menu.Text(btnCancel)),
		menu.Row(menu.Text(btnHistory), menu.Text(btnProfile)),
		menu.Row(menu.Text(btnLogout)),
	)
	return c.Send("👤 Passenger menu:", menu)
}

// errText translates core failure kinds to user-facing text; the core
// itself never formats messages.
func errText(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrCapacityExceeded):
		return "❌ Not enough seats available for your group."
	case errors.Is(err, apperrors.ErrNotInTrip):
		return "❌ You are not part of this trip."
	case errors.Is(err, apperrors.ErrTripAlreadyTerminal):
		return "❌ This trip is already completed or canceled."
	case errors.Is(err, apperrors.ErrInvalidTransition):
		return "❌ Trip not found or not in the right state."
	case errors.Is(err, apperrors.ErrRecordNotFound):
		return "❌ Nothing found."
	case errors.Is(err, apperrors.ErrInvalidInput):
		return "❌ " + err.Error()
	default:
		return "⚠️ Something went wrong, please try again."
	}
}
