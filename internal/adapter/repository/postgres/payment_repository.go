package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/srgjo27/launch_booking/internal/core/domain"
)

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) LoadPayments(ctx context.Context) ([]domain.Payment, error) {
	query := `
	SELECT payment_id, booking_id, amount, paid_on, method, status, txn_ref, card_last4, card_holder
	FROM payments
	ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		var paidOn time.Time
		if err := rows.Scan(&p.PaymentID, &p.BookingID, &p.Amount, &paidOn, &p.Method, &p.Status,
			&p.TransactionReference, &p.CardLast4, &p.CardHolderName); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		p.PaymentDate = domain.DateOf(paidOn)
		payments = append(payments, p)
	}

	return payments, rows.Err()
}

func (r *PaymentRepository) SavePayments(ctx context.Context, payments []domain.Payment) error {
	query := `
	INSERT INTO payments (payment_id, position, booking_id, amount, paid_on, method, status, txn_ref, card_last4, card_holder)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := deleteAll(ctx, tx, "payments"); err != nil {
			return err
		}
		return insertAll(ctx, tx, "payments", query, len(payments), func(i int) []any {
			p := payments[i]
			return []any{p.PaymentID, i, p.BookingID, p.Amount, sqlDate(p.PaymentDate), string(p.Method),
				string(p.Status), p.TransactionReference, p.CardLast4, p.CardHolderName}
		})
	})
}
