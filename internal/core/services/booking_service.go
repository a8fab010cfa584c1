package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/srgjo27/launch_booking/internal/core/domain"
	"github.com/srgjo27/launch_booking/internal/platform/logger"
)

type CreateBookingRequest struct {
	UserID            string      `json:"user_id"`
	EventID           string      `json:"event_id"`
	Date              domain.Date `json:"date"`
	TimeSlot          string      `json:"time_slot"`
	VenueID           string      `json:"venue_id"`
	AllowOverCapacity bool        `json:"allow_over_capacity"`
	Logistics         []string    `json:"logistics"`
}

type CreateBookingResponse struct {
	Booking       domain.EventBooking `json:"booking"`
	VenueRental   float64             `json:"venue_rental"`
	LogisticsCost float64             `json:"logistics_cost"`
}

type UpdateVenueRequest struct {
	UserID            string `json:"user_id"`
	BookingID         string `json:"booking_id"`
	VenueID           string `json:"venue_id"`
	AllowOverCapacity bool   `json:"allow_over_capacity"`
}

type UpdateVenueResponse struct {
	Booking        domain.EventBooking `json:"booking"`
	OldVenueCost   float64             `json:"old_venue_cost"`
	NewVenueCost   float64             `json:"new_venue_cost"`
	CostDifference float64             `json:"cost_difference"`
}

type AddLogisticsResponse struct {
	Booking    domain.EventBooking `json:"booking"`
	AddedItems []string            `json:"added_items"`
	AddedCost  float64             `json:"added_cost"`
}

type CancelBookingResponse struct {
	Booking domain.EventBooking `json:"booking"`
	// Purged is set when the booking was already Cancelled and only its
	// record was removed.
	Purged bool `json:"purged"`
}

type BookingService struct {
	state        *State
	availability *AvailabilityService
}

func NewBookingService(state *State, availability *AvailabilityService) *BookingService {
	return &BookingService{
		state:        state,
		availability: availability,
	}
}

// BookableRegistrations lists the user's registrations that have no live
// booking yet.
func (s *BookingService) BookableRegistrations(userID string) ([]domain.EventRegistration, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	var regs []domain.EventRegistration
	for _, r := range s.state.Registrations {
		if r.OwnedBy(userID) && r.Status == domain.RegistrationUnscheduled {
			regs = append(regs, r)
		}
	}
	if len(regs) == 0 {
		return nil, fmt.Errorf("unscheduled registrations: %w", domain.ErrNoCandidates)
	}
	return regs, nil
}

// CheckSlot validates a date and slot for a registration and returns the
// venues still free there.
func (s *BookingService) CheckSlot(ctx context.Context, userID, eventID string, date domain.Date, slot string) ([]domain.Venue, error) {
	ri, err := s.bookableRegistration(userID, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.validateSlot(date, slot); err != nil {
		return nil, err
	}
	reg := s.state.Registrations[ri]
	if err := CheckEventSlotFree(s.state.Bookings, reg.EventID, date, slot); err != nil {
		return nil, err
	}
	venues := s.availability.AvailableVenues(ctx, date, slot)
	if len(venues) == 0 {
		return nil, fmt.Errorf("%s %s: %w", date, slot, domain.ErrNoVenueAvailable)
	}
	return venues, nil
}

func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreateBookingResponse, error) {
	log := logger.WithContext(ctx).With("event_id", req.EventID)

	ri, err := s.bookableRegistration(req.UserID, req.EventID)
	if err != nil {
		return nil, err
	}
	if err := s.validateSlot(req.Date, req.TimeSlot); err != nil {
		return nil, err
	}

	reg := s.state.Registrations[ri]
	index := NewBookingIndex(s.state.Bookings)
	if err := index.CheckEvent(reg.EventID, req.Date, req.TimeSlot); err != nil {
		log.Info("duplicate booking rejected", "error", err)
		return nil, err
	}

	vi := s.state.venueIndex(req.VenueID)
	if vi < 0 {
		return nil, fmt.Errorf("venue %s: %w", req.VenueID, domain.ErrNotFound)
	}
	venue := s.state.Venues[vi]
	if err := index.CheckVenue(venue.VenueID, req.Date, req.TimeSlot); err != nil {
		log.Info("venue conflict rejected", "venue_id", venue.VenueID, "error", err)
		return nil, err
	}
	if !venue.IsAvailableInSchedule(req.Date, req.TimeSlot) {
		return nil, fmt.Errorf("venue %s on %s %s: %w", venue.VenueID, req.Date, req.TimeSlot, domain.ErrVenueConflict)
	}
	if reg.ExpectedGuests > venue.Capacity && !req.AllowOverCapacity {
		return nil, fmt.Errorf("%d guests for %s (capacity %d): %w",
			reg.ExpectedGuests, venue.Name, venue.Capacity, domain.ErrCapacityExceeded)
	}

	items, logisticsCost, err := domain.PriceLogistics(req.Logistics)
	if err != nil {
		return nil, err
	}

	booking := domain.EventBooking{
		BookingID:      domain.NextBookingID(s.state.Bookings, s.state.Payments, s.state.Feedback),
		Registration:   reg.Snapshot(),
		EventDate:      req.Date,
		EventTime:      req.TimeSlot,
		Venue:          venue.Snapshot(),
		Status:         domain.BookingPending,
		FinalCost:      venue.RentalCost + logisticsCost,
		LogisticsItems: items,
		LogisticsCost:  logisticsCost,
	}

	s.state.Bookings = append(s.state.Bookings, booking)
	s.state.Registrations[ri].Status = domain.RegistrationScheduled
	s.afterMutation(ctx, log, domain.TimeSlot{Date: req.Date, Time: req.TimeSlot})

	log.Info("booking created",
		"booking_id", booking.BookingID,
		"venue_id", venue.VenueID,
		"date", req.Date.String(),
		"slot", req.TimeSlot,
		"final_cost", booking.FinalCost)

	resp := &CreateBookingResponse{
		Booking:       booking,
		VenueRental:   venue.RentalCost,
		LogisticsCost: logisticsCost,
	}
	return resp, saveEach(ctx, s.state.SaveRegistrations, s.state.SaveBookings, s.state.SaveVenues)
}

// GetOwnedBooking returns a copy of a booking owned by userID.
func (s *BookingService) GetOwnedBooking(userID, bookingID string) (domain.EventBooking, error) {
	i, err := s.state.ownedBooking(userID, bookingID)
	if err != nil {
		return domain.EventBooking{}, err
	}
	return s.state.Bookings[i], nil
}

// ListForUser returns every booking owned by userID, cancelled ones
// included.
func (s *BookingService) ListForUser(userID string) ([]domain.EventBooking, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	var out []domain.EventBooking
	for _, b := range s.state.Bookings {
		if b.OwnedBy(userID) {
			out = append(out, b)
		}
	}
	return out, nil
}

// UpdateTimeSlot moves a booking to another slot on the same date and at the
// same venue.
func (s *BookingService) UpdateTimeSlot(ctx context.Context, userID, bookingID, slot string) (*domain.EventBooking, error) {
	i, err := s.updatableBooking(userID, bookingID)
	if err != nil {
		return nil, err
	}
	b := s.state.Bookings[i]
	log := logger.WithContext(ctx).With("booking_id", b.BookingID)

	if !s.state.TimeSlots.Contains(slot) {
		return nil, &domain.InputError{Field: "time slot", Value: slot}
	}
	if slot == b.EventTime {
		return nil, fmt.Errorf("time slot %s: %w", slot, domain.ErrNoChange)
	}

	index := NewBookingIndex(s.state.Bookings)
	if err := index.CheckVenue(b.Venue.VenueID, b.EventDate, slot); err != nil {
		return nil, err
	}
	if err := index.CheckEvent(b.EventID(), b.EventDate, slot); err != nil {
		return nil, err
	}
	if vi := s.state.venueIndex(b.Venue.VenueID); vi >= 0 && !s.state.Venues[vi].IsAvailableInSchedule(b.EventDate, slot) {
		return nil, fmt.Errorf("venue %s on %s %s: %w", b.Venue.VenueID, b.EventDate, slot, domain.ErrVenueConflict)
	}

	old := domain.TimeSlot{Date: b.EventDate, Time: b.EventTime}
	s.state.Bookings[i].EventTime = slot
	s.afterMutation(ctx, log, old, domain.TimeSlot{Date: b.EventDate, Time: slot})

	log.Info("booking time slot updated", "from", old.Time, "to", slot)

	updated := s.state.Bookings[i]
	return &updated, saveEach(ctx, s.state.SaveBookings, s.state.SaveVenues)
}

// AlternativeVenues lists the free venues at the booking's date and slot,
// excluding the one it already holds.
func (s *BookingService) AlternativeVenues(ctx context.Context, userID, bookingID string) ([]domain.Venue, error) {
	i, err := s.updatableBooking(userID, bookingID)
	if err != nil {
		return nil, err
	}
	b := s.state.Bookings[i]
	var out []domain.Venue
	for _, v := range s.availability.AvailableVenues(ctx, b.EventDate, b.EventTime) {
		if v.VenueID != b.Venue.VenueID {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s %s: %w", b.EventDate, b.EventTime, domain.ErrNoVenueAvailable)
	}
	return out, nil
}

// UpdateVenue moves a booking to another venue at the same date and slot and
// applies the rental cost difference to the final cost.
func (s *BookingService) UpdateVenue(ctx context.Context, req UpdateVenueRequest) (*UpdateVenueResponse, error) {
	i, err := s.updatableBooking(req.UserID, req.BookingID)
	if err != nil {
		return nil, err
	}
	b := s.state.Bookings[i]
	log := logger.WithContext(ctx).With("booking_id", b.BookingID)

	vi := s.state.venueIndex(req.VenueID)
	if vi < 0 {
		return nil, fmt.Errorf("venue %s: %w", req.VenueID, domain.ErrNotFound)
	}
	venue := s.state.Venues[vi]
	if venue.VenueID == b.Venue.VenueID {
		return nil, fmt.Errorf("venue %s: %w", venue.VenueID, domain.ErrNoChange)
	}
	if err := CheckVenueAvailable(s.state.Bookings, venue.VenueID, b.EventDate, b.EventTime); err != nil {
		return nil, err
	}
	if !venue.IsAvailableInSchedule(b.EventDate, b.EventTime) {
		return nil, fmt.Errorf("venue %s on %s %s: %w", venue.VenueID, b.EventDate, b.EventTime, domain.ErrVenueConflict)
	}
	if b.Registration.ExpectedGuests > venue.Capacity && !req.AllowOverCapacity {
		return nil, fmt.Errorf("%d guests for %s (capacity %d): %w",
			b.Registration.ExpectedGuests, venue.Name, venue.Capacity, domain.ErrCapacityExceeded)
	}

	oldCost := b.Venue.RentalCost
	diff := venue.RentalCost - oldCost
	s.state.Bookings[i].Venue = venue.Snapshot()
	s.state.Bookings[i].FinalCost += diff
	s.afterMutation(ctx, log, domain.TimeSlot{Date: b.EventDate, Time: b.EventTime})

	log.Info("booking venue updated", "from", b.Venue.VenueID, "to", venue.VenueID, "cost_difference", diff)

	resp := &UpdateVenueResponse{
		Booking:        s.state.Bookings[i],
		OldVenueCost:   oldCost,
		NewVenueCost:   venue.RentalCost,
		CostDifference: diff,
	}
	return resp, saveEach(ctx, s.state.SaveBookings, s.state.SaveVenues)
}

// AddLogistics adds further logistics services to a booking.
func (s *BookingService) AddLogistics(ctx context.Context, userID, bookingID string, names []string) (*AddLogisticsResponse, error) {
	i, err := s.updatableBooking(userID, bookingID)
	if err != nil {
		return nil, err
	}
	items, cost, err := domain.PriceLogistics(names)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("logistics: %w", domain.ErrNoChange)
	}

	b := &s.state.Bookings[i]
	b.LogisticsItems = append(b.LogisticsItems, items...)
	b.LogisticsCost += cost
	b.FinalCost += cost

	logger.WithContext(ctx).Info("booking logistics added",
		"booking_id", b.BookingID, "items", len(items), "added_cost", cost)

	resp := &AddLogisticsResponse{
		Booking:    *b,
		AddedItems: items,
		AddedCost:  cost,
	}
	return resp, saveEach(ctx, s.state.SaveBookings)
}

// CancelBooking removes a booking. A live booking frees its slot and returns
// its registration to UNSCHEDULED before being deleted. A booking that was
// already Cancelled is simply purged.
func (s *BookingService) CancelBooking(ctx context.Context, userID, bookingID string) (*CancelBookingResponse, error) {
	i, err := s.state.ownedBooking(userID, bookingID)
	if err != nil {
		return nil, err
	}
	b := s.state.Bookings[i]
	log := logger.WithContext(ctx).With("booking_id", b.BookingID)

	purged := !b.IsLive()
	if !purged {
		if ri := s.state.registrationIndex(b.EventID()); ri >= 0 {
			reg := &s.state.Registrations[ri]
			if reg.OwnedBy(userID) && reg.Status != domain.RegistrationCancelled {
				reg.Status = domain.RegistrationUnscheduled
			}
		}
	}

	s.state.Bookings = append(s.state.Bookings[:i], s.state.Bookings[i+1:]...)
	s.afterMutation(ctx, log, domain.TimeSlot{Date: b.EventDate, Time: b.EventTime})

	if purged {
		log.Info("cancelled booking purged")
	} else {
		log.Info("booking cancelled", "event_id", b.EventID(), "venue_id", b.Venue.VenueID)
	}

	resp := &CancelBookingResponse{Booking: b, Purged: purged}
	return resp, saveEach(ctx, s.state.SaveRegistrations, s.state.SaveBookings, s.state.SaveVenues)
}

// CompleteBooking marks a confirmed booking as held.
func (s *BookingService) CompleteBooking(ctx context.Context, userID, bookingID string) (*domain.EventBooking, error) {
	i, err := s.state.ownedBooking(userID, bookingID)
	if err != nil {
		return nil, err
	}
	b := &s.state.Bookings[i]
	if b.Status != domain.BookingConfirmed {
		return nil, fmt.Errorf("complete booking in status %s: %w", b.Status, domain.ErrInvalidState)
	}
	b.Status = domain.BookingCompleted

	logger.WithContext(ctx).Info("booking completed", "booking_id", b.BookingID)

	done := *b
	return &done, saveEach(ctx, s.state.SaveBookings)
}

// cancelForEvent flips every live booking of eventID to Cancelled and frees
// their slots. It does not persist; the caller saves.
func (s *BookingService) cancelForEvent(ctx context.Context, eventID string) int {
	log := logger.WithContext(ctx).With("event_id", eventID)

	var freed []domain.TimeSlot
	for i := range s.state.Bookings {
		b := &s.state.Bookings[i]
		if b.IsLive() && b.EventID() == eventID {
			b.Status = domain.BookingCancelled
			freed = append(freed, domain.TimeSlot{Date: b.EventDate, Time: b.EventTime})
			log.Info("booking cancelled with its registration", "booking_id", b.BookingID)
		}
	}
	if len(freed) > 0 {
		s.afterMutation(ctx, log, freed...)
	}
	return len(freed)
}

func (s *BookingService) bookableRegistration(userID, eventID string) (int, error) {
	ri, err := s.state.ownedRegistration(userID, eventID)
	if err != nil {
		return -1, err
	}
	if st := s.state.Registrations[ri].Status; st != domain.RegistrationUnscheduled {
		return -1, fmt.Errorf("book registration in status %s: %w", st, domain.ErrInvalidState)
	}
	return ri, nil
}

func (s *BookingService) updatableBooking(userID, bookingID string) (int, error) {
	i, err := s.state.ownedBooking(userID, bookingID)
	if err != nil {
		return -1, err
	}
	if st := s.state.Bookings[i].Status; st == domain.BookingCompleted || st == domain.BookingCancelled {
		return -1, fmt.Errorf("update booking in status %s: %w", st, domain.ErrInvalidState)
	}
	return i, nil
}

func (s *BookingService) validateSlot(date domain.Date, slot string) error {
	if !date.Valid() {
		return &domain.InputError{Field: "event date", Value: date.String()}
	}
	if !s.state.TimeSlots.Contains(slot) {
		return &domain.InputError{Field: "time slot", Value: slot}
	}
	return nil
}

// afterMutation re-derives venue schedules and drops cached availability
// for the touched slots.
func (s *BookingService) afterMutation(ctx context.Context, log *slog.Logger, touched ...domain.TimeSlot) {
	s.state.rebuildSchedules()
	s.availability.invalidate(ctx, log, touched...)
}

// saveEach runs every save and returns the first failure. Later saves still
// run so that one broken file does not block the others.
func saveEach(ctx context.Context, saves ...func(context.Context) error) error {
	var first error
	for _, save := range saves {
		if err := save(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}
