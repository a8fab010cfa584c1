package flatfile

import (
	"context"

	"github.com/srgjo27/launch_booking/internal/core/domain"
)

// paymentID|bookingID|amount|D/M/YYYY|method|status|txnRef|cardLast4|cardHolder

func encodePayment(p domain.Payment) string {
	return join(
		p.PaymentID,
		p.BookingID,
		formatFloat(p.Amount),
		p.PaymentDate.DMY(),
		string(p.Method),
		string(p.Status),
		p.TransactionReference,
		p.CardLast4,
		p.CardHolderName,
	)
}

func decodePayment(line string) (domain.Payment, error) {
	f, err := split(line, 9)
	if err != nil {
		return domain.Payment{}, err
	}
	amount, err := parseFloat("amount", f[2])
	if err != nil {
		return domain.Payment{}, err
	}
	date, err := domain.ParseDMY(f[3])
	if err != nil {
		return domain.Payment{}, err
	}
	return domain.Payment{
		PaymentID:            f[0],
		BookingID:            f[1],
		Amount:               amount,
		PaymentDate:          date,
		Method:               domain.PaymentMethod(f[4]),
		Status:               domain.PaymentStatus(f[5]),
		TransactionReference: f[6],
		CardLast4:            lastFour(f[7]),
		CardHolderName:       f[8],
	}, nil
}

// lastFour drops everything but the final four digits. Older files stored
// the full card number in this field.
func lastFour(card string) string {
	digits, _ := domain.CleanDigits(card, 4)
	if len(digits) > 4 {
		return digits[len(digits)-4:]
	}
	return digits
}

func (s *Store) LoadPayments(ctx context.Context) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := s.readLines(ctx, paymentsFile, func(line string) error {
		p, err := decodePayment(line)
		if err != nil {
			return err
		}
		payments = append(payments, p)
		return nil
	})
	return payments, err
}

func (s *Store) SavePayments(ctx context.Context, payments []domain.Payment) error {
	lines := make([]string, 0, len(payments))
	for _, p := range payments {
		lines = append(lines, encodePayment(p))
	}
	return s.writeLines(ctx, paymentsFile, lines)
}
