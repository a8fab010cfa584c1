package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/srgjo27/launch_booking/internal/core/domain"
	"github.com/srgjo27/launch_booking/internal/core/ports"
	"github.com/srgjo27/launch_booking/internal/platform/logger"
)

// ErrPersistence marks a save that failed after the in-memory change was
// applied. The in-memory state stays authoritative for the session.
var ErrPersistence = errors.New("changes kept in memory but not saved")

// State is the application state shared by every service: the loaded
// collections plus the repositories that persist them. It is created once,
// loaded once and mutated synchronously by one session at a time.
type State struct {
	Users         []domain.User
	Venues        []domain.Venue
	Registrations []domain.EventRegistration
	Bookings      []domain.EventBooking
	Payments      []domain.Payment
	Feedback      []domain.EventFeedback
	TimeSlots     domain.TimeSlotConfig

	repos ports.Repositories
	now   func() time.Time
}

func NewState(repos ports.Repositories, slots domain.TimeSlotConfig) *State {
	if len(slots.Slots) == 0 {
		slots = domain.DefaultTimeSlots()
	}
	return &State{
		TimeSlots: slots,
		repos:     repos,
		now:       time.Now,
	}
}

// SetClock replaces the source of "today".
func (s *State) SetClock(now func() time.Time) {
	s.now = now
}

func (s *State) Today() domain.Date {
	return domain.DateOf(s.now())
}

// Load reads every collection, seeds the venue catalog when it is empty and
// rebuilds the venue schedules from the loaded bookings.
func (s *State) Load(ctx context.Context) error {
	log := logger.WithContext(ctx)

	var err error
	if s.Venues, err = s.repos.Venues.LoadVenues(ctx); err != nil {
		return fmt.Errorf("load venues: %w", err)
	}
	if s.Users, err = s.repos.Users.LoadUsers(ctx); err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	if s.Registrations, err = s.repos.Registrations.LoadRegistrations(ctx); err != nil {
		return fmt.Errorf("load registrations: %w", err)
	}
	if s.Bookings, err = s.repos.Bookings.LoadBookings(ctx); err != nil {
		return fmt.Errorf("load bookings: %w", err)
	}
	if s.Payments, err = s.repos.Payments.LoadPayments(ctx); err != nil {
		return fmt.Errorf("load payments: %w", err)
	}
	if s.Feedback, err = s.repos.Feedback.LoadFeedback(ctx); err != nil {
		return fmt.Errorf("load feedback: %w", err)
	}

	seeded := false
	if len(s.Venues) == 0 {
		s.Venues = domain.SampleVenues()
		seeded = true
	}

	if drift := s.rebuildSchedules(); drift > 0 {
		log.Warn("venue schedules disagreed with bookings and were rebuilt", "venues", drift)
	}

	if seeded {
		if err := s.SaveVenues(ctx); err != nil {
			return err
		}
	}

	log.Info("system data loaded",
		"venues", len(s.Venues),
		"users", len(s.Users),
		"registrations", len(s.Registrations),
		"bookings", len(s.Bookings),
		"payments", len(s.Payments),
		"feedback", len(s.Feedback))
	return nil
}

// rebuildSchedules derives every venue's schedule from the live bookings and
// returns how many venues had a different schedule before.
func (s *State) rebuildSchedules() int {
	drift := 0
	for i := range s.Venues {
		schedule := s.scheduleFor(s.Venues[i].VenueID)
		if !sameSchedule(s.Venues[i].BookingSchedule, schedule) {
			drift++
		}
		s.Venues[i].BookingSchedule = schedule
	}
	return drift
}

func (s *State) scheduleFor(venueID string) []domain.TimeSlot {
	var schedule []domain.TimeSlot
	for _, b := range s.Bookings {
		if b.IsLive() && b.Venue.VenueID == venueID {
			schedule = append(schedule, domain.TimeSlot{
				Date:     b.EventDate,
				Time:     b.EventTime,
				EventID:  b.BookingID,
				IsBooked: true,
			})
		}
	}
	return schedule
}

func sameSchedule(a, b []domain.TimeSlot) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[domain.TimeSlot]int, len(a))
	for _, slot := range a {
		seen[slot]++
	}
	for _, slot := range b {
		if seen[slot] == 0 {
			return false
		}
		seen[slot]--
	}
	return true
}

func (s *State) SaveUsers(ctx context.Context) error {
	return s.persist(ctx, "users", s.repos.Users.SaveUsers(ctx, s.Users))
}

func (s *State) SaveVenues(ctx context.Context) error {
	return s.persist(ctx, "venues", s.repos.Venues.SaveVenues(ctx, s.Venues))
}

func (s *State) SaveRegistrations(ctx context.Context) error {
	return s.persist(ctx, "registrations", s.repos.Registrations.SaveRegistrations(ctx, s.Registrations))
}

func (s *State) SaveBookings(ctx context.Context) error {
	return s.persist(ctx, "bookings", s.repos.Bookings.SaveBookings(ctx, s.Bookings))
}

func (s *State) SavePayments(ctx context.Context) error {
	return s.persist(ctx, "payments", s.repos.Payments.SavePayments(ctx, s.Payments))
}

func (s *State) SaveFeedback(ctx context.Context) error {
	return s.persist(ctx, "feedback", s.repos.Feedback.SaveFeedback(ctx, s.Feedback))
}

// SaveAll writes every collection and reports all failures together.
func (s *State) SaveAll(ctx context.Context) error {
	return errors.Join(
		s.SaveUsers(ctx),
		s.SaveVenues(ctx),
		s.SaveRegistrations(ctx),
		s.SaveBookings(ctx),
		s.SavePayments(ctx),
		s.SaveFeedback(ctx),
	)
}

func (s *State) persist(ctx context.Context, collection string, err error) error {
	if err == nil {
		return nil
	}
	logger.WithContext(ctx).Error("failed to save collection", "collection", collection, "error", err)
	return fmt.Errorf("%w: save %s: %w", ErrPersistence, collection, err)
}

func (s *State) bookingIndex(bookingID string) int {
	id := domain.NormalizeID(bookingID)
	for i := range s.Bookings {
		if s.Bookings[i].BookingID == id {
			return i
		}
	}
	return -1
}

func (s *State) registrationIndex(eventID string) int {
	id := domain.NormalizeID(eventID)
	for i := range s.Registrations {
		if s.Registrations[i].EventID == id {
			return i
		}
	}
	return -1
}

func (s *State) venueIndex(venueID string) int {
	id := domain.NormalizeID(venueID)
	for i := range s.Venues {
		if s.Venues[i].VenueID == id {
			return i
		}
	}
	return -1
}

func (s *State) userIndex(userID string) int {
	for i := range s.Users {
		if domain.SameUser(s.Users[i].UserID, userID) {
			return i
		}
	}
	return -1
}

func (s *State) paymentIndex(paymentID string) int {
	id := domain.NormalizeID(paymentID)
	for i := range s.Payments {
		if s.Payments[i].PaymentID == id {
			return i
		}
	}
	return -1
}

// ownedBooking finds a booking by ID and checks it belongs to userID.
func (s *State) ownedBooking(userID, bookingID string) (int, error) {
	if domain.NormalizeUserID(userID) == "" {
		return -1, domain.ErrNotLoggedIn
	}
	i := s.bookingIndex(bookingID)
	if i < 0 {
		return -1, fmt.Errorf("booking %s: %w", bookingID, domain.ErrNotFound)
	}
	if !s.Bookings[i].OwnedBy(userID) {
		return -1, fmt.Errorf("booking %s: %w", bookingID, domain.ErrForbidden)
	}
	return i, nil
}

func (s *State) ownedRegistration(userID, eventID string) (int, error) {
	if domain.NormalizeUserID(userID) == "" {
		return -1, domain.ErrNotLoggedIn
	}
	i := s.registrationIndex(eventID)
	if i < 0 {
		return -1, fmt.Errorf("registration %s: %w", eventID, domain.ErrNotFound)
	}
	if !s.Registrations[i].OwnedBy(userID) {
		return -1, fmt.Errorf("registration %s: %w", eventID, domain.ErrForbidden)
	}
	return i, nil
}

func requireUser(userID string) error {
	if domain.NormalizeUserID(userID) == "" {
		return domain.ErrNotLoggedIn
	}
	return nil
}
