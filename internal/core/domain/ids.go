package domain

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	UserPrefix     = "USER"
	EventPrefix    = "EVT"
	BookingPrefix  = "BKG"
	PaymentPrefix  = "PAY"
	FeedbackPrefix = "FB"

	eventFloor    = 1000
	bookingFloor  = 2000
	paymentFloor  = 1000
	feedbackFloor = 1000
	userFloor     = 1000
)

// NormalizeID trims whitespace and upper-cases an identifier.
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// NextID returns prefix followed by one more than the largest numeric
// suffix among existing, never lower than floor+1. IDs whose suffix does
// not parse are ignored.
func NextID(prefix string, floor int, existing []string) string {
	highest := floor
	for _, id := range existing {
		id = NormalizeID(id)
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		n, err := strconv.Atoi(id[len(prefix):])
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return prefix + strconv.Itoa(highest+1)
}

func NextUserID(users []User) string {
	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.UserID
	}
	return NextID(UserPrefix, userFloor+len(users), ids)
}

// NextEventID also counts the registration snapshots held by bookings.
func NextEventID(regs []EventRegistration, bookings []EventBooking) string {
	ids := make([]string, 0, len(regs)+len(bookings))
	for _, r := range regs {
		ids = append(ids, r.EventID)
	}
	for _, b := range bookings {
		ids = append(ids, b.Registration.EventID)
	}
	return NextID(EventPrefix, eventFloor, ids)
}

// NextBookingID counts booking IDs still referenced by payments and
// feedback, so a deleted booking's ID is never issued again.
func NextBookingID(bookings []EventBooking, payments []Payment, feedback []EventFeedback) string {
	ids := make([]string, 0, len(bookings)+len(payments)+len(feedback))
	for _, b := range bookings {
		ids = append(ids, b.BookingID)
	}
	for _, p := range payments {
		ids = append(ids, p.BookingID)
	}
	for _, f := range feedback {
		ids = append(ids, f.BookingID)
	}
	return NextID(BookingPrefix, bookingFloor, ids)
}

func NextPaymentID(payments []Payment) string {
	ids := make([]string, len(payments))
	for i, p := range payments {
		ids[i] = p.PaymentID
	}
	return NextID(PaymentPrefix, paymentFloor, ids)
}

func NextFeedbackID(feedback []EventFeedback) string {
	ids := make([]string, len(feedback))
	for i, f := range feedback {
		ids[i] = f.FeedbackID
	}
	return NextID(FeedbackPrefix, feedbackFloor, ids)
}

// NewTransactionReference returns TXN followed by eight random uppercase
// alphanumerics. It is a display reference, not a security token.
func NewTransactionReference() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "TXN" + raw[:8]
}
