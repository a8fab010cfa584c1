package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/srgjo27/launch_booking/internal/core/domain"
	"github.com/srgjo27/launch_booking/internal/core/services"
	"github.com/srgjo27/launch_booking/internal/platform/logger"
)

// Services is everything the console dispatches to.
type Services struct {
	State         *services.State
	Users         *services.UserService
	Registrations *services.RegistrationService
	Bookings      *services.BookingService
	Payments      *services.PaymentService
	Feedback      *services.FeedbackService
	Monitoring    *services.MonitoringService
}

// Console is the menu-driven front end. It holds the single active session.
type Console struct {
	svc    Services
	p      *Prompter
	userID string
	ctx    context.Context
}

func NewConsole(svc Services, p *Prompter) *Console {
	return &Console{svc: svc, p: p}
}

// Run shows the start menu until the user exits or input ends.
func (c *Console) Run(ctx context.Context) {
	c.ctx = ctx
	for {
		switch c.p.Menu("Product Launch Event Manager", "Log in", "Sign up") {
		case 1:
			c.login()
		case 2:
			c.signUp()
		default:
			c.p.Println("Goodbye.")
			return
		}
		if c.userID != "" {
			c.mainMenu()
		}
	}
}

func (c *Console) mainMenu() {
	for c.userID != "" {
		switch c.p.Menu("Main Menu ("+c.userID+")",
			"Event registration",
			"Venue booking",
			"Payments",
			"Feedback",
			"Monitoring",
			"My profile",
			"Log out",
		) {
		case 1:
			c.registrationMenu()
		case 2:
			c.bookingMenu()
		case 3:
			c.paymentMenu()
		case 4:
			c.feedbackMenu()
		case 5:
			c.monitoringMenu()
		case 6:
			c.profileMenu()
		case 0, 7:
			c.logout()
		}
	}
}

func (c *Console) startSession(userID string) {
	c.userID = userID
	c.ctx = logger.WithUser(c.ctx, userID)
}

// report prints err for the user and tells whether there was one.
// Cancelled prompts print nothing.
func (c *Console) report(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrAborted) {
		c.p.Println("Cancelled.")
		return true
	}
	c.p.Println("Error: " + describe(err))
	return true
}

// warn reports a save failure after the change was kept in memory.
func (c *Console) warn(err error) {
	if err != nil {
		c.p.Println("Warning: the change was applied but could not be saved: " + err.Error())
	}
}

func describe(err error) string {
	var conflict *domain.ConflictError
	var input *domain.InputError

	switch {
	case errors.As(err, &conflict):
		return fmt.Sprintf("%v\n  Held by booking %s: %s (organizer %s) on %s, %s [%s]",
			conflict.Kind, conflict.BookingID, conflict.EventTitle, conflict.Organizer,
			conflict.Date, conflict.Time, conflict.Status)
	case errors.As(err, &input):
		return input.Error()
	case errors.Is(err, domain.ErrNotLoggedIn):
		return "please log in first"
	case errors.Is(err, domain.ErrForbidden):
		return "that record belongs to another user"
	case errors.Is(err, services.ErrPersistence):
		return "the change was applied but could not be saved: " + err.Error()
	}
	return err.Error()
}

// splitList turns "a, b ,c" into its trimmed, non-empty parts.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
