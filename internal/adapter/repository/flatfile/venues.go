package flatfile

import (
	"context"
	"errors"
	"strings"

	"github.com/srgjo27/launch_booking/internal/core/domain"
)

// A venue line is followed by its schedule lines and closed by END_VENUE:
//
//	venueID|name|address|capacity|rentalCost|contactPerson|phone
//	SLOT|YYYY-MM-DD|time|bookingID|1
//	END_VENUE

const (
	slotPrefix = "SLOT" + sep
	endVenue   = "END_VENUE"
)

var errOrphanSlot = errors.New("schedule line outside a venue block")

func encodeVenue(v domain.Venue) []string {
	lines := []string{join(
		v.VenueID,
		v.Name,
		v.Address,
		formatInt(v.Capacity),
		formatFloat(v.RentalCost),
		v.ContactPerson,
		v.PhoneNumber,
	)}
	for _, slot := range v.BookingSchedule {
		lines = append(lines, join("SLOT", slot.Date.String(), slot.Time, slot.EventID, formatBool(slot.IsBooked)))
	}
	return append(lines, endVenue)
}

func decodeVenue(line string) (domain.Venue, error) {
	f, err := split(line, 7)
	if err != nil {
		return domain.Venue{}, err
	}
	capacity, err := parseInt("capacity", f[3])
	if err != nil {
		return domain.Venue{}, err
	}
	cost, err := parseFloat("rental cost", f[4])
	if err != nil {
		return domain.Venue{}, err
	}
	return domain.Venue{
		VenueID:       f[0],
		Name:          f[1],
		Address:       f[2],
		Capacity:      capacity,
		RentalCost:    cost,
		ContactPerson: f[5],
		PhoneNumber:   f[6],
	}, nil
}

func decodeSlot(line string) (domain.TimeSlot, error) {
	f, err := split(strings.TrimPrefix(line, slotPrefix), 4)
	if err != nil {
		return domain.TimeSlot{}, err
	}
	date, err := domain.ParseDate(f[0])
	if err != nil {
		return domain.TimeSlot{}, err
	}
	return domain.TimeSlot{
		Date:     date,
		Time:     f[1],
		EventID:  f[2],
		IsBooked: parseBool(f[3]),
	}, nil
}

func (s *Store) LoadVenues(ctx context.Context) ([]domain.Venue, error) {
	var (
		venues []domain.Venue
		open   bool
	)
	err := s.readLines(ctx, venuesFile, func(line string) error {
		switch {
		case line == endVenue:
			open = false
			return nil
		case strings.HasPrefix(line, slotPrefix):
			if !open {
				return errOrphanSlot
			}
			slot, err := decodeSlot(line)
			if err != nil {
				return err
			}
			last := &venues[len(venues)-1]
			last.BookingSchedule = append(last.BookingSchedule, slot)
			return nil
		}

		v, err := decodeVenue(line)
		if err != nil {
			open = false
			return err
		}
		venues = append(venues, v)
		open = true
		return nil
	})
	return venues, err
}

func (s *Store) SaveVenues(ctx context.Context, venues []domain.Venue) error {
	var lines []string
	for _, v := range venues {
		lines = append(lines, encodeVenue(v)...)
	}
	return s.writeLines(ctx, venuesFile, lines)
}
