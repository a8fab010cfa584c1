package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/srgjo27/launch_booking/internal/core/domain"
)

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) LoadBookings(ctx context.Context) ([]domain.EventBooking, error) {
	query := `
	SELECT booking_id, event_id, title, manufacturer, description, expected_guests, estimated_budget,
		reg_status, organizer_id, organizer_name, organizer_contact, organizer_email, organizer_position,
		product_names, product_models, product_prices,
		event_date, event_time,
		venue_id, venue_name, venue_address, venue_capacity, venue_rental, venue_contact, venue_phone,
		status, final_cost, logistics_items, logistics_cost
	FROM bookings
	ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var bookings []domain.EventBooking
	for rows.Next() {
		var b domain.EventBooking
		var names, models, items []string
		var prices []float64
		var date time.Time

		reg, v := &b.Registration, &b.Venue
		err := rows.Scan(
			&b.BookingID,
			&reg.EventID,
			&reg.EventTitle,
			&reg.Manufacturer,
			&reg.Description,
			&reg.ExpectedGuests,
			&reg.EstimatedBudget,
			&reg.Status,
			&reg.Organizer.UserID,
			&reg.Organizer.Name,
			&reg.Organizer.Contact,
			&reg.Organizer.Email,
			&reg.Organizer.Position,
			pq.Array(&names),
			pq.Array(&models),
			pq.Array(&prices),
			&date,
			&b.EventTime,
			&v.VenueID,
			&v.Name,
			&v.Address,
			&v.Capacity,
			&v.RentalCost,
			&v.ContactPerson,
			&v.PhoneNumber,
			&b.Status,
			&b.FinalCost,
			pq.Array(&items),
			&b.LogisticsCost,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}

		if reg.Products, err = productsFrom(names, models, prices); err != nil {
			return nil, fmt.Errorf("booking %s: %w", b.BookingID, err)
		}
		b.EventDate = domain.DateOf(date)
		if len(items) > 0 {
			b.LogisticsItems = items
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

func (r *BookingRepository) SaveBookings(ctx context.Context, bookings []domain.EventBooking) error {
	query := `
	INSERT INTO bookings (booking_id, position, event_id, title, manufacturer, description,
		expected_guests, estimated_budget, reg_status, organizer_id, organizer_name, organizer_contact,
		organizer_email, organizer_position, product_names, product_models, product_prices,
		event_date, event_time, venue_id, venue_name, venue_address, venue_capacity, venue_rental,
		venue_contact, venue_phone, status, final_cost, logistics_items, logistics_cost)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
		$21, $22, $23, $24, $25, $26, $27, $28, $29, $30)
	`

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := deleteAll(ctx, tx, "bookings"); err != nil {
			return err
		}
		return insertAll(ctx, tx, "bookings", query, len(bookings), func(i int) []any {
			b := bookings[i]
			reg, v := b.Registration, b.Venue
			names, models, prices := productColumns(reg.Products)
			items := append(make([]string, 0, len(b.LogisticsItems)), b.LogisticsItems...)
			return []any{
				b.BookingID, i, reg.EventID, reg.EventTitle, reg.Manufacturer, reg.Description,
				reg.ExpectedGuests, reg.EstimatedBudget, string(reg.Status), reg.Organizer.UserID,
				reg.Organizer.Name, reg.Organizer.Contact, reg.Organizer.Email, reg.Organizer.Position,
				pq.Array(names), pq.Array(models), pq.Array(prices),
				sqlDate(b.EventDate), b.EventTime, v.VenueID, v.Name, v.Address, v.Capacity, v.RentalCost,
				v.ContactPerson, v.PhoneNumber, string(b.Status), b.FinalCost, pq.Array(items), b.LogisticsCost,
			}
		})
	})
}
