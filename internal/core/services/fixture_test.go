package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/srgjo27/launch_booking/internal/core/domain"
	"github.com/srgjo27/launch_booking/internal/core/ports"
	"github.com/srgjo27/launch_booking/internal/core/ports/mocks"
	"github.com/srgjo27/launch_booking/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	fixedNow   = time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	launchDate = domain.NewDate(2025, 10, 1)
)

type seed struct {
	users    []domain.User
	venues   []domain.Venue
	regs     []domain.EventRegistration
	bookings []domain.EventBooking
	payments []domain.Payment
	feedback []domain.EventFeedback
}

type fixtureConfig struct {
	cache           ports.AvailabilityCache
	saveBookingsErr error
}

type option func(*fixtureConfig)

func withCache(c ports.AvailabilityCache) option {
	return func(cfg *fixtureConfig) { cfg.cache = c }
}

func withSaveBookingsErr(err error) option {
	return func(cfg *fixtureConfig) { cfg.saveBookingsErr = err }
}

type fixture struct {
	ctx   context.Context
	state *services.State

	userRepo     *mocks.UserRepository
	venueRepo    *mocks.VenueRepository
	regRepo      *mocks.RegistrationRepository
	bookingRepo  *mocks.BookingRepository
	paymentRepo  *mocks.PaymentRepository
	feedbackRepo *mocks.FeedbackRepository

	availability  *services.AvailabilityService
	bookings      *services.BookingService
	registrations *services.RegistrationService
	payments      *services.PaymentService
	feedback      *services.FeedbackService
	users         *services.UserService
	monitoring    *services.MonitoringService
}

func newFixture(t *testing.T, s seed, opts ...option) *fixture {
	t.Helper()

	var cfg fixtureConfig
	for _, o := range opts {
		o(&cfg)
	}

	f := &fixture{
		ctx:          context.Background(),
		userRepo:     mocks.NewUserRepository(t),
		venueRepo:    mocks.NewVenueRepository(t),
		regRepo:      mocks.NewRegistrationRepository(t),
		bookingRepo:  mocks.NewBookingRepository(t),
		paymentRepo:  mocks.NewPaymentRepository(t),
		feedbackRepo: mocks.NewFeedbackRepository(t),
	}

	f.userRepo.On("LoadUsers", mock.Anything).Return(s.users, nil)
	f.venueRepo.On("LoadVenues", mock.Anything).Return(s.venues, nil)
	f.regRepo.On("LoadRegistrations", mock.Anything).Return(s.regs, nil)
	f.bookingRepo.On("LoadBookings", mock.Anything).Return(s.bookings, nil)
	f.paymentRepo.On("LoadPayments", mock.Anything).Return(s.payments, nil)
	f.feedbackRepo.On("LoadFeedback", mock.Anything).Return(s.feedback, nil)

	f.userRepo.On("SaveUsers", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.venueRepo.On("SaveVenues", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.regRepo.On("SaveRegistrations", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.bookingRepo.On("SaveBookings", mock.Anything, mock.Anything).Return(cfg.saveBookingsErr).Maybe()
	f.paymentRepo.On("SavePayments", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.feedbackRepo.On("SaveFeedback", mock.Anything, mock.Anything).Return(nil).Maybe()

	f.state = services.NewState(ports.Repositories{
		Users:         f.userRepo,
		Venues:        f.venueRepo,
		Registrations: f.regRepo,
		Bookings:      f.bookingRepo,
		Payments:      f.paymentRepo,
		Feedback:      f.feedbackRepo,
	}, domain.DefaultTimeSlots())
	f.state.SetClock(func() time.Time { return fixedNow })
	require.NoError(t, f.state.Load(f.ctx))

	f.availability = services.NewAvailabilityService(f.state, cfg.cache)
	f.bookings = services.NewBookingService(f.state, f.availability)
	f.registrations = services.NewRegistrationService(f.state, f.bookings)
	f.payments = services.NewPaymentService(f.state)
	f.feedback = services.NewFeedbackService(f.state)
	f.users = services.NewUserService(f.state)
	f.monitoring = services.NewMonitoringService(f.state)
	return f
}

func organizer(userID, name string) domain.OrganizerInfo {
	return domain.OrganizerInfo{
		UserID:   userID,
		Name:     name,
		Contact:  "012-3456789",
		Email:    "organizer@launch.com",
		Position: "Marketing Lead",
	}
}

func registration(eventID, userID string, guests int) domain.EventRegistration {
	return domain.EventRegistration{
		EventID:         eventID,
		Organizer:       organizer(userID, "Organizer "+userID),
		EventTitle:      "Launch " + eventID,
		Manufacturer:    "Nova Mobile",
		Description:     "Flagship reveal",
		ExpectedGuests:  guests,
		EstimatedBudget: 12000,
		Products:        []domain.Product{{Name: "Nova X", Model: "NX-1", Price: 3999}},
		Status:          domain.RegistrationUnscheduled,
	}
}

// liveBooking builds a stored booking of reg at the given venue and slot.
func liveBooking(id string, reg domain.EventRegistration, venue domain.Venue, date domain.Date, slot string, status domain.BookingStatus) domain.EventBooking {
	return domain.EventBooking{
		BookingID:    id,
		Registration: reg,
		EventDate:    date,
		EventTime:    slot,
		Venue:        venue.Snapshot(),
		Status:       status,
		FinalCost:    venue.RentalCost,
	}
}

func venueByID(t *testing.T, state *services.State, id string) domain.Venue {
	t.Helper()
	for _, v := range state.Venues {
		if v.VenueID == id {
			return v
		}
	}
	t.Fatalf("venue %s not loaded", id)
	return domain.Venue{}
}

func registrationByID(t *testing.T, state *services.State, id string) domain.EventRegistration {
	t.Helper()
	for _, r := range state.Registrations {
		if r.EventID == id {
			return r
		}
	}
	t.Fatalf("registration %s not loaded", id)
	return domain.EventRegistration{}
}

func bookingByID(state *services.State, id string) (domain.EventBooking, bool) {
	for _, b := range state.Bookings {
		if b.BookingID == id {
			return b, true
		}
	}
	return domain.EventBooking{}, false
}

func (f *fixture) book(t *testing.T, userID, eventID, venueID, slot string) domain.EventBooking {
	t.Helper()
	resp, err := f.bookings.CreateBooking(f.ctx, services.CreateBookingRequest{
		UserID:   userID,
		EventID:  eventID,
		Date:     launchDate,
		TimeSlot: slot,
		VenueID:  venueID,
	})
	require.NoError(t, err)
	return resp.Booking
}
