package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/srgjo27/launch_booking/internal/core/ports"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id      TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		age          INTEGER NOT NULL,
		manufacturer TEXT NOT NULL,
		position     TEXT NOT NULL,
		contact      TEXT NOT NULL,
		email        TEXT NOT NULL,
		credential   TEXT NOT NULL,
		logged_in    BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS venues (
		venue_id       TEXT PRIMARY KEY,
		position       INTEGER NOT NULL,
		name           TEXT NOT NULL,
		address        TEXT NOT NULL,
		capacity       INTEGER NOT NULL,
		rental_cost    DOUBLE PRECISION NOT NULL,
		contact_person TEXT NOT NULL,
		phone_number   TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS venue_slots (
		venue_id   TEXT NOT NULL REFERENCES venues(venue_id) ON DELETE CASCADE,
		position   INTEGER NOT NULL,
		slot_date  DATE NOT NULL,
		slot_time  TEXT NOT NULL,
		booking_id TEXT NOT NULL,
		is_booked  BOOLEAN NOT NULL,
		PRIMARY KEY (venue_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS registrations (
		event_id         TEXT PRIMARY KEY,
		position         INTEGER NOT NULL,
		manufacturer     TEXT NOT NULL,
		title            TEXT NOT NULL,
		description      TEXT NOT NULL,
		expected_guests  INTEGER NOT NULL,
		estimated_budget DOUBLE PRECISION NOT NULL,
		status           TEXT NOT NULL,
		organizer_id     TEXT NOT NULL,
		organizer_name   TEXT NOT NULL,
		organizer_contact  TEXT NOT NULL,
		organizer_email    TEXT NOT NULL,
		organizer_position TEXT NOT NULL,
		product_names    TEXT[] NOT NULL,
		product_models   TEXT[] NOT NULL,
		product_prices   DOUBLE PRECISION[] NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		booking_id       TEXT PRIMARY KEY,
		position         INTEGER NOT NULL,
		event_id         TEXT NOT NULL,
		title            TEXT NOT NULL,
		manufacturer     TEXT NOT NULL,
		description      TEXT NOT NULL,
		expected_guests  INTEGER NOT NULL,
		estimated_budget DOUBLE PRECISION NOT NULL,
		reg_status       TEXT NOT NULL,
		organizer_id     TEXT NOT NULL,
		organizer_name   TEXT NOT NULL,
		organizer_contact  TEXT NOT NULL,
		organizer_email    TEXT NOT NULL,
		organizer_position TEXT NOT NULL,
		product_names    TEXT[] NOT NULL,
		product_models   TEXT[] NOT NULL,
		product_prices   DOUBLE PRECISION[] NOT NULL,
		event_date       DATE NOT NULL,
		event_time       TEXT NOT NULL,
		venue_id         TEXT NOT NULL,
		venue_name       TEXT NOT NULL,
		venue_address    TEXT NOT NULL,
		venue_capacity   INTEGER NOT NULL,
		venue_rental     DOUBLE PRECISION NOT NULL,
		venue_contact    TEXT NOT NULL,
		venue_phone      TEXT NOT NULL,
		status           TEXT NOT NULL,
		final_cost       DOUBLE PRECISION NOT NULL,
		logistics_items  TEXT[] NOT NULL,
		logistics_cost   DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		payment_id  TEXT PRIMARY KEY,
		position    INTEGER NOT NULL,
		booking_id  TEXT NOT NULL,
		amount      DOUBLE PRECISION NOT NULL,
		paid_on     DATE NOT NULL,
		method      TEXT NOT NULL,
		status      TEXT NOT NULL,
		txn_ref     TEXT NOT NULL,
		card_last4  TEXT NOT NULL,
		card_holder TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS feedback (
		feedback_id   TEXT PRIMARY KEY,
		position      INTEGER NOT NULL,
		booking_id    TEXT NOT NULL,
		event_title   TEXT NOT NULL,
		organizer     TEXT NOT NULL,
		event_date    DATE NOT NULL,
		venue_name    TEXT NOT NULL,
		submitted_by  TEXT NOT NULL,
		submitted_on  DATE NOT NULL,
		venue_rating        INTEGER NOT NULL,
		organization_rating INTEGER NOT NULL,
		logistics_rating    INTEGER NOT NULL,
		overall_rating      INTEGER NOT NULL,
		would_recommend     BOOLEAN NOT NULL,
		venue_comments        TEXT NOT NULL,
		organization_comments TEXT NOT NULL,
		logistics_comments    TEXT NOT NULL,
		general_comments      TEXT NOT NULL,
		suggestions           TEXT NOT NULL
	)`,
}

// Migrate creates the tables when they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// NewRepositories wires every collection to db.
func NewRepositories(db *sql.DB) ports.Repositories {
	return ports.Repositories{
		Users:         NewUserRepository(db),
		Venues:        NewVenueRepository(db),
		Registrations: NewRegistrationRepository(db),
		Bookings:      NewBookingRepository(db),
		Payments:      NewPaymentRepository(db),
		Feedback:      NewFeedbackRepository(db),
	}
}
