package ports

import (
	"context"

	"github.com/srgjo27/launch_booking/internal/core/domain"
)

// Each repository loads and rewrites one whole collection. There is no
// per-record update: every save replaces the stored collection.

type UserRepository interface {
	LoadUsers(ctx context.Context) ([]domain.User, error)
	SaveUsers(ctx context.Context, users []domain.User) error
}

type VenueRepository interface {
	LoadVenues(ctx context.Context) ([]domain.Venue, error)
	SaveVenues(ctx context.Context, venues []domain.Venue) error
}

type RegistrationRepository interface {
	LoadRegistrations(ctx context.Context) ([]domain.EventRegistration, error)
	SaveRegistrations(ctx context.Context, regs []domain.EventRegistration) error
}

type BookingRepository interface {
	LoadBookings(ctx context.Context) ([]domain.EventBooking, error)
	SaveBookings(ctx context.Context, bookings []domain.EventBooking) error
}

type PaymentRepository interface {
	LoadPayments(ctx context.Context) ([]domain.Payment, error)
	SavePayments(ctx context.Context, payments []domain.Payment) error
}

type FeedbackRepository interface {
	LoadFeedback(ctx context.Context) ([]domain.EventFeedback, error)
	SaveFeedback(ctx context.Context, feedback []domain.EventFeedback) error
}

// Repositories groups the collection stores of one backend.
type Repositories struct {
	Users         UserRepository
	Venues        VenueRepository
	Registrations RegistrationRepository
	Bookings      BookingRepository
	Payments      PaymentRepository
	Feedback      FeedbackRepository
}
