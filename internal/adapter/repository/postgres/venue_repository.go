package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/srgjo27/launch_booking/internal/core/domain"
)

type VenueRepository struct {
	db *sql.DB
}

func NewVenueRepository(db *sql.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

func (r *VenueRepository) LoadVenues(ctx context.Context) ([]domain.Venue, error) {
	query := `
	SELECT venue_id, name, address, capacity, rental_cost, contact_person, phone_number
	FROM venues
	ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var venues []domain.Venue
	index := make(map[string]int)
	for rows.Next() {
		var v domain.Venue
		if err := rows.Scan(&v.VenueID, &v.Name, &v.Address, &v.Capacity, &v.RentalCost, &v.ContactPerson, &v.PhoneNumber); err != nil {
			return nil, fmt.Errorf("failed to scan venue: %w", err)
		}
		index[v.VenueID] = len(venues)
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadSlots(ctx, venues, index); err != nil {
		return nil, err
	}

	return venues, nil
}

func (r *VenueRepository) loadSlots(ctx context.Context, venues []domain.Venue, index map[string]int) error {
	query := `
	SELECT venue_id, slot_date, slot_time, booking_id, is_booked
	FROM venue_slots
	ORDER BY venue_id, position
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}

	defer rows.Close()

	for rows.Next() {
		var venueID string
		var date time.Time
		var slot domain.TimeSlot
		if err := rows.Scan(&venueID, &date, &slot.Time, &slot.EventID, &slot.IsBooked); err != nil {
			return fmt.Errorf("failed to scan venue slot: %w", err)
		}
		i, ok := index[venueID]
		if !ok {
			continue
		}
		slot.Date = domain.DateOf(date)
		venues[i].BookingSchedule = append(venues[i].BookingSchedule, slot)
	}

	return rows.Err()
}

func (r *VenueRepository) SaveVenues(ctx context.Context, venues []domain.Venue) error {
	queryVenue := `
	INSERT INTO venues (venue_id, position, name, address, capacity, rental_cost, contact_person, phone_number)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	querySlot := `
	INSERT INTO venue_slots (venue_id, position, slot_date, slot_time, booking_id, is_booked)
	VALUES ($1, $2, $3, $4, $5, $6)
	`

	type slotRow struct {
		venueID  string
		position int
		slot     domain.TimeSlot
	}
	var slots []slotRow
	for _, v := range venues {
		for i, s := range v.BookingSchedule {
			slots = append(slots, slotRow{venueID: v.VenueID, position: i, slot: s})
		}
	}

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := deleteAll(ctx, tx, "venue_slots", "venues"); err != nil {
			return err
		}

		err := insertAll(ctx, tx, "venues", queryVenue, len(venues), func(i int) []any {
			v := venues[i]
			return []any{v.VenueID, i, v.Name, v.Address, v.Capacity, v.RentalCost, v.ContactPerson, v.PhoneNumber}
		})
		if err != nil {
			return err
		}

		return insertAll(ctx, tx, "venue_slots", querySlot, len(slots), func(i int) []any {
			s := slots[i]
			return []any{s.venueID, s.position, sqlDate(s.slot.Date), s.slot.Time, s.slot.EventID, s.slot.IsBooked}
		})
	})
}
