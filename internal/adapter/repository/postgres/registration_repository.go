package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/srgjo27/launch_booking/internal/core/domain"
)

type RegistrationRepository struct {
	db *sql.DB
}

func NewRegistrationRepository(db *sql.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

func (r *RegistrationRepository) LoadRegistrations(ctx context.Context) ([]domain.EventRegistration, error) {
	query := `
	SELECT event_id, manufacturer, title, description, expected_guests, estimated_budget, status,
		organizer_id, organizer_name, organizer_contact, organizer_email, organizer_position,
		product_names, product_models, product_prices
	FROM registrations
	ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var regs []domain.EventRegistration
	for rows.Next() {
		var reg domain.EventRegistration
		var names, models []string
		var prices []float64
		err := rows.Scan(
			&reg.EventID,
			&reg.Manufacturer,
			&reg.EventTitle,
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
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}

		if reg.Products, err = productsFrom(names, models, prices); err != nil {
			return nil, fmt.Errorf("registration %s: %w", reg.EventID, err)
		}
		regs = append(regs, reg)
	}

	return regs, rows.Err()
}

func (r *RegistrationRepository) SaveRegistrations(ctx context.Context, regs []domain.EventRegistration) error {
	query := `
	INSERT INTO registrations (event_id, position, manufacturer, title, description, expected_guests,
		estimated_budget, status, organizer_id, organizer_name, organizer_contact, organizer_email,
		organizer_position, product_names, product_models, product_prices)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := deleteAll(ctx, tx, "registrations"); err != nil {
			return err
		}
		return insertAll(ctx, tx, "registrations", query, len(regs), func(i int) []any {
			reg := regs[i]
			names, models, prices := productColumns(reg.Products)
			return []any{
				reg.EventID, i, reg.Manufacturer, reg.EventTitle, reg.Description, reg.ExpectedGuests,
				reg.EstimatedBudget, string(reg.Status), reg.Organizer.UserID, reg.Organizer.Name,
				reg.Organizer.Contact, reg.Organizer.Email, reg.Organizer.Position,
				pq.Array(names), pq.Array(models), pq.Array(prices),
			}
		})
	})
}
