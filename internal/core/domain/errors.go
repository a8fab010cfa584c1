package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotLoggedIn        = errors.New("no user logged in")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("record belongs to another user")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidState       = errors.New("operation not allowed in current status")
	ErrNoCandidates       = errors.New("no eligible records")
	ErrVenueConflict      = errors.New("venue is already booked at this date and time")
	ErrDuplicateBooking   = errors.New("event already has a booking at this date and time")
	ErrNoVenueAvailable   = errors.New("no venues available for the selected date and time")
	ErrCapacityExceeded   = errors.New("expected guests exceed venue capacity")
	ErrNoChange           = errors.New("nothing to change")
	ErrAlreadyPaid        = errors.New("booking already has a completed payment")
	ErrDuplicateFeedback  = errors.New("feedback already submitted for this booking")
	ErrInvalidCredentials = errors.New("invalid user id or password")
	ErrUserExists         = errors.New("user already exists")
)

// ConflictError describes the live booking that blocks a requested slot.
type ConflictError struct {
	Kind       error
	BookingID  string
	EventTitle string
	Organizer  string
	Date       Date
	Time       string
	Status     BookingStatus
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: booking %s (%s by %s) on %s %s [%s]",
		e.Kind, e.BookingID, e.EventTitle, e.Organizer, e.Date, e.Time, e.Status)
}

func (e *ConflictError) Unwrap() error {
	return e.Kind
}

func newConflict(kind error, b EventBooking) *ConflictError {
	return &ConflictError{
		Kind:       kind,
		BookingID:  b.BookingID,
		EventTitle: b.Registration.EventTitle,
		Organizer:  b.Registration.Organizer.Name,
		Date:       b.EventDate,
		Time:       b.EventTime,
		Status:     b.Status,
	}
}

// NewVenueConflict reports b as the booking occupying a venue slot.
func NewVenueConflict(b EventBooking) *ConflictError {
	return newConflict(ErrVenueConflict, b)
}

// NewDuplicateBooking reports b as the event's existing booking in a slot.
func NewDuplicateBooking(b EventBooking) *ConflictError {
	return newConflict(ErrDuplicateBooking, b)
}

// InputError names the field that failed a domain check.
type InputError struct {
	Field string
	Value string
}

func (e *InputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}
