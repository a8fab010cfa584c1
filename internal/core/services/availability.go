package services

import (
	"context"
	"log/slog"

	"github.com/srgjo27/launch_booking/internal/core/domain"
	"github.com/srgjo27/launch_booking/internal/core/ports"
	"github.com/srgjo27/launch_booking/internal/platform/logger"
)

type slotKey struct {
	id   string
	date domain.Date
	time string
}

// BookingIndex maps every occupied (venue, date, time) and (event, date,
// time) to the live booking holding it.
type BookingIndex struct {
	byVenue map[slotKey]int
	byEvent map[slotKey]int
	list    []domain.EventBooking
}

func NewBookingIndex(bookings []domain.EventBooking) *BookingIndex {
	idx := &BookingIndex{
		byVenue: make(map[slotKey]int),
		byEvent: make(map[slotKey]int),
		list:    bookings,
	}
	for i, b := range bookings {
		if !b.IsLive() {
			continue
		}
		vk := slotKey{b.Venue.VenueID, b.EventDate, b.EventTime}
		if _, ok := idx.byVenue[vk]; !ok {
			idx.byVenue[vk] = i
		}
		ek := slotKey{b.EventID(), b.EventDate, b.EventTime}
		if _, ok := idx.byEvent[ek]; !ok {
			idx.byEvent[ek] = i
		}
	}
	return idx
}

// VenueHolder returns the live booking occupying venueID at date and time.
func (x *BookingIndex) VenueHolder(venueID string, date domain.Date, time string) (domain.EventBooking, bool) {
	i, ok := x.byVenue[slotKey{venueID, date, time}]
	if !ok {
		return domain.EventBooking{}, false
	}
	return x.list[i], true
}

// EventHolder returns the live booking of eventID at date and time.
func (x *BookingIndex) EventHolder(eventID string, date domain.Date, time string) (domain.EventBooking, bool) {
	i, ok := x.byEvent[slotKey{eventID, date, time}]
	if !ok {
		return domain.EventBooking{}, false
	}
	return x.list[i], true
}

// IsVenueAvailable reports whether no live booking holds venueID at date and
// time.
func IsVenueAvailable(bookings []domain.EventBooking, venueID string, date domain.Date, time string) bool {
	return CheckVenueAvailable(bookings, venueID, date, time) == nil
}

// CheckVenueAvailable returns a *domain.ConflictError naming the live booking
// that holds venueID at date and time.
func CheckVenueAvailable(bookings []domain.EventBooking, venueID string, date domain.Date, time string) error {
	return NewBookingIndex(bookings).CheckVenue(venueID, date, time)
}

// CheckEventSlotFree rejects a second live booking of the same event at the
// same date and time.
func CheckEventSlotFree(bookings []domain.EventBooking, eventID string, date domain.Date, time string) error {
	return NewBookingIndex(bookings).CheckEvent(eventID, date, time)
}

func (x *BookingIndex) CheckVenue(venueID string, date domain.Date, time string) error {
	if b, ok := x.VenueHolder(venueID, date, time); ok {
		return domain.NewVenueConflict(b)
	}
	return nil
}

func (x *BookingIndex) CheckEvent(eventID string, date domain.Date, time string) error {
	if b, ok := x.EventHolder(eventID, date, time); ok {
		return domain.NewDuplicateBooking(b)
	}
	return nil
}

type noopCache struct{}

func (noopCache) GetAvailableVenues(context.Context, domain.Date, string) ([]string, bool, error) {
	return nil, false, nil
}

func (noopCache) SetAvailableVenues(context.Context, domain.Date, string, []string) error {
	return nil
}

func (noopCache) Invalidate(context.Context, domain.Date, string) error {
	return nil
}

// AvailabilityService answers "which venues are free" questions. Results may
// come from the cache, but every ID is checked again against the venue
// schedules before it is returned.
type AvailabilityService struct {
	state *State
	cache ports.AvailabilityCache
}

func NewAvailabilityService(state *State, cache ports.AvailabilityCache) *AvailabilityService {
	if cache == nil {
		cache = noopCache{}
	}
	return &AvailabilityService{state: state, cache: cache}
}

// AvailableVenues lists the venues whose schedule is free at date and slot.
func (s *AvailabilityService) AvailableVenues(ctx context.Context, date domain.Date, slot string) []domain.Venue {
	log := logger.WithContext(ctx)

	ids, hit, err := s.cache.GetAvailableVenues(ctx, date, slot)
	if err != nil {
		log.Warn("availability cache read failed", "date", date.String(), "slot", slot, "error", err)
	}
	if err == nil && hit {
		log.Debug("availability cache hit", "date", date.String(), "slot", slot, "venues", len(ids))
		var venues []domain.Venue
		for _, id := range ids {
			i := s.state.venueIndex(id)
			if i >= 0 && s.state.Venues[i].IsAvailableInSchedule(date, slot) {
				venues = append(venues, s.state.Venues[i])
			}
		}
		return venues
	}

	var venues []domain.Venue
	ids = []string{}
	for _, v := range s.state.Venues {
		if v.IsAvailableInSchedule(date, slot) {
			venues = append(venues, v)
			ids = append(ids, v.VenueID)
		}
	}
	if err := s.cache.SetAvailableVenues(ctx, date, slot, ids); err != nil {
		log.Warn("availability cache write failed", "date", date.String(), "slot", slot, "error", err)
	}
	return venues
}

// invalidate drops cached availability for every (date, slot) pair given.
func (s *AvailabilityService) invalidate(ctx context.Context, log *slog.Logger, keys ...domain.TimeSlot) {
	for _, k := range keys {
		if err := s.cache.Invalidate(ctx, k.Date, k.Time); err != nil {
			log.Warn("availability cache invalidate failed", "date", k.Date.String(), "slot", k.Time, "error", err)
		}
	}
}
