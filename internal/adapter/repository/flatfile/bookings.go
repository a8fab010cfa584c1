package flatfile

import (
	"context"
	"strings"

	"github.com/srgjo27/launch_booking/internal/core/domain"
)

// bookingID|eventID|title|manufacturer|description|guests|budget|regStatus|
// organizerID|organizerName|contact|email|position|YYYY-MM-DD|time|
// venueID|venueName|address|capacity|rentalCost|contactPerson|phone|
// status|finalCost[|logisticsCost|logisticsItems|products]
//
// The three trailing fields are optional so that older files still load.

const (
	legacyBookingFields = 24
	bookingFields       = 27
)

func encodeBooking(b domain.EventBooking) string {
	r, v := b.Registration, b.Venue
	return join(
		b.BookingID,
		r.EventID,
		r.EventTitle,
		r.Manufacturer,
		r.Description,
		formatInt(r.ExpectedGuests),
		formatFloat(r.EstimatedBudget),
		string(r.Status),
		r.Organizer.UserID,
		r.Organizer.Name,
		r.Organizer.Contact,
		r.Organizer.Email,
		r.Organizer.Position,
		b.EventDate.String(),
		b.EventTime,
		v.VenueID,
		v.Name,
		v.Address,
		formatInt(v.Capacity),
		formatFloat(v.RentalCost),
		v.ContactPerson,
		v.PhoneNumber,
		string(b.Status),
		formatFloat(b.FinalCost),
		formatFloat(b.LogisticsCost),
		strings.Join(b.LogisticsItems, ";"),
		encodeProducts(r.Products),
	)
}

func decodeBooking(line string) (domain.EventBooking, error) {
	f, err := split(line, legacyBookingFields, bookingFields)
	if err != nil {
		return domain.EventBooking{}, err
	}

	guests, err := parseInt("expected guests", f[5])
	if err != nil {
		return domain.EventBooking{}, err
	}
	budget, err := parseFloat("estimated budget", f[6])
	if err != nil {
		return domain.EventBooking{}, err
	}
	date, err := domain.ParseDate(f[13])
	if err != nil {
		return domain.EventBooking{}, err
	}
	capacity, err := parseInt("venue capacity", f[18])
	if err != nil {
		return domain.EventBooking{}, err
	}
	rental, err := parseFloat("rental cost", f[19])
	if err != nil {
		return domain.EventBooking{}, err
	}
	finalCost, err := parseFloat("final cost", f[23])
	if err != nil {
		return domain.EventBooking{}, err
	}

	b := domain.EventBooking{
		BookingID: f[0],
		Registration: domain.EventRegistration{
			EventID:         f[1],
			EventTitle:      f[2],
			Manufacturer:    f[3],
			Description:     f[4],
			ExpectedGuests:  guests,
			EstimatedBudget: budget,
			Status:          domain.RegistrationStatus(f[7]),
			Organizer: domain.OrganizerInfo{
				UserID:   f[8],
				Name:     f[9],
				Contact:  f[10],
				Email:    f[11],
				Position: f[12],
			},
		},
		EventDate: date,
		EventTime: f[14],
		Venue: domain.Venue{
			VenueID:       f[15],
			Name:          f[16],
			Address:       f[17],
			Capacity:      capacity,
			RentalCost:    rental,
			ContactPerson: f[20],
			PhoneNumber:   f[21],
		},
		Status:    domain.BookingStatus(f[22]),
		FinalCost: finalCost,
	}

	if len(f) == legacyBookingFields {
		return b, nil
	}

	if b.LogisticsCost, err = parseFloat("logistics cost", f[24]); err != nil {
		return domain.EventBooking{}, err
	}
	if items := strings.TrimSpace(f[25]); items != "" {
		b.LogisticsItems = strings.Split(items, ";")
	}
	if b.Registration.Products, err = decodeProducts(f[26]); err != nil {
		return domain.EventBooking{}, err
	}
	return b, nil
}

func (s *Store) LoadBookings(ctx context.Context) ([]domain.EventBooking, error) {
	var bookings []domain.EventBooking
	err := s.readLines(ctx, bookingsFile, func(line string) error {
		b, err := decodeBooking(line)
		if err != nil {
			return err
		}
		bookings = append(bookings, b)
		return nil
	})
	return bookings, err
}

func (s *Store) SaveBookings(ctx context.Context, bookings []domain.EventBooking) error {
	lines := make([]string, 0, len(bookings))
	for _, b := range bookings {
		lines = append(lines, encodeBooking(b))
	}
	return s.writeLines(ctx, bookingsFile, lines)
}
