package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/srgjo27/launch_booking/internal/core/domain"
	"github.com/srgjo27/launch_booking/internal/platform/logger"
)

const (
	cardDigits = 16
	cvvDigits  = 3
)

type MakePaymentRequest struct {
	UserID         string               `json:"user_id"`
	BookingID      string               `json:"booking_id"`
	PromoCode      string               `json:"promo_code,omitempty"`
	Method         domain.PaymentMethod `json:"method"`
	CardNumber     string               `json:"card_number,omitempty"`
	CardHolderName string               `json:"card_holder_name,omitempty"`
	CVV            string               `json:"cvv,omitempty"`
}

type MakePaymentResponse struct {
	Payment domain.Payment      `json:"payment"`
	Booking domain.EventBooking `json:"booking"`
	// PromoApplied and PromoRejected are both false when no code was given.
	PromoApplied  bool    `json:"promo_applied"`
	PromoRejected bool    `json:"promo_rejected"`
	Discount      float64 `json:"discount"`
}

type MethodTotal struct {
	Method domain.PaymentMethod `json:"method"`
	Count  int                  `json:"count"`
	Amount float64              `json:"amount"`
}

type PaymentStatistics struct {
	TotalPayments  int           `json:"total_payments"`
	CompletedCount int           `json:"completed_count"`
	RefundedCount  int           `json:"refunded_count"`
	TotalPaid      float64       `json:"total_paid"`
	TotalRefunded  float64       `json:"total_refunded"`
	NetAmount      float64       `json:"net_amount"`
	ByMethod       []MethodTotal `json:"by_method"`
}

type PaymentService struct {
	state *State
}

func NewPaymentService(state *State) *PaymentService {
	return &PaymentService{state: state}
}

// PayableBookings lists the user's Pending bookings that have no completed
// payment yet.
func (s *PaymentService) PayableBookings(userID string) ([]domain.EventBooking, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	var out []domain.EventBooking
	for _, b := range s.state.Bookings {
		if b.OwnedBy(userID) && b.Status == domain.BookingPending && !s.hasCompletedPayment(b.BookingID) {
			out = append(out, b)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("unpaid bookings: %w", domain.ErrNoCandidates)
	}
	return out, nil
}

// MakePayment records a completed payment for a Pending booking and confirms
// the booking. Only the last four card digits are kept; the CVV is checked
// and dropped.
func (s *PaymentService) MakePayment(ctx context.Context, req MakePaymentRequest) (*MakePaymentResponse, error) {
	bi, err := s.state.ownedBooking(req.UserID, req.BookingID)
	if err != nil {
		return nil, err
	}
	b := &s.state.Bookings[bi]
	if s.hasCompletedPayment(b.BookingID) {
		return nil, fmt.Errorf("booking %s: %w", b.BookingID, domain.ErrAlreadyPaid)
	}
	if b.Status != domain.BookingPending {
		return nil, fmt.Errorf("pay booking in status %s: %w", b.Status, domain.ErrInvalidState)
	}
	if !req.Method.Valid() {
		return nil, &domain.InputError{Field: "payment method", Value: string(req.Method)}
	}

	payment := domain.Payment{
		BookingID:   b.BookingID,
		Amount:      b.FinalCost,
		PaymentDate: s.state.Today(),
		Method:      req.Method,
		Status:      domain.PaymentCompleted,
	}

	if req.Method.IsCard() {
		card, ok := domain.CleanDigits(req.CardNumber, cardDigits)
		if !ok {
			return nil, &domain.InputError{Field: "card number"}
		}
		if _, ok := domain.CleanDigits(req.CVV, cvvDigits); !ok {
			return nil, &domain.InputError{Field: "CVV"}
		}
		holder := strings.TrimSpace(req.CardHolderName)
		if len(holder) < 2 || strings.Contains(holder, "|") {
			return nil, &domain.InputError{Field: "card holder name", Value: holder}
		}
		payment.CardLast4 = card[cardDigits-4:]
		payment.CardHolderName = holder
	}

	resp := &MakePaymentResponse{}
	if code := strings.TrimSpace(req.PromoCode); code != "" {
		if code == domain.PromoCode {
			resp.PromoApplied = true
			resp.Discount = payment.Amount * domain.PromoDiscount
			payment.Amount -= resp.Discount
		} else {
			resp.PromoRejected = true
		}
	}

	payment.PaymentID = domain.NextPaymentID(s.state.Payments)
	payment.TransactionReference = domain.NewTransactionReference()
	s.state.Payments = append(s.state.Payments, payment)
	b.Status = domain.BookingConfirmed

	logger.WithContext(ctx).Info("payment completed",
		"payment_id", payment.PaymentID,
		"booking_id", b.BookingID,
		"amount", payment.Amount,
		"method", string(payment.Method),
		"promo", resp.PromoApplied)

	resp.Payment = payment
	resp.Booking = *b
	return resp, saveEach(ctx, s.state.SavePayments, s.state.SaveBookings)
}

// RefundablePayments lists the user's completed payments whose booking has
// been cancelled.
func (s *PaymentService) RefundablePayments(userID string) ([]domain.Payment, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	var out []domain.Payment
	for _, p := range s.state.Payments {
		if p.Status != domain.PaymentCompleted {
			continue
		}
		if bi := s.state.bookingIndex(p.BookingID); bi >= 0 {
			b := s.state.Bookings[bi]
			if b.OwnedBy(userID) && b.Status == domain.BookingCancelled {
				out = append(out, p)
			}
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("refundable payments: %w", domain.ErrNoCandidates)
	}
	return out, nil
}

// Refund flips a completed payment of a cancelled booking to Refunded. The
// booking is left as it is.
func (s *PaymentService) Refund(ctx context.Context, userID, paymentID string) (*domain.Payment, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	pi := s.state.paymentIndex(paymentID)
	if pi < 0 {
		return nil, fmt.Errorf("payment %s: %w", paymentID, domain.ErrNotFound)
	}
	p := &s.state.Payments[pi]

	bi := s.state.bookingIndex(p.BookingID)
	if bi < 0 {
		return nil, fmt.Errorf("booking %s of payment %s: %w", p.BookingID, p.PaymentID, domain.ErrNotFound)
	}
	b := s.state.Bookings[bi]
	if !b.OwnedBy(userID) {
		return nil, fmt.Errorf("payment %s: %w", p.PaymentID, domain.ErrForbidden)
	}
	if p.Status != domain.PaymentCompleted {
		return nil, fmt.Errorf("refund payment in status %s: %w", p.Status, domain.ErrInvalidState)
	}
	if b.Status != domain.BookingCancelled {
		return nil, fmt.Errorf("refund payment of booking in status %s: %w", b.Status, domain.ErrInvalidState)
	}

	p.Status = domain.PaymentRefunded
	logger.WithContext(ctx).Info("payment refunded", "payment_id", p.PaymentID, "booking_id", p.BookingID, "amount", p.Amount)

	refunded := *p
	return &refunded, s.state.SavePayments(ctx)
}

// History returns the payments made for the user's bookings.
func (s *PaymentService) History(userID string) ([]domain.Payment, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	var out []domain.Payment
	for _, p := range s.state.Payments {
		if bi := s.state.bookingIndex(p.BookingID); bi >= 0 && s.state.Bookings[bi].OwnedBy(userID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *PaymentService) Statistics(userID string) (*PaymentStatistics, error) {
	history, err := s.History(userID)
	if err != nil {
		return nil, err
	}

	stats := &PaymentStatistics{TotalPayments: len(history)}
	byMethod := make(map[domain.PaymentMethod]*MethodTotal)
	for _, p := range history {
		mt, ok := byMethod[p.Method]
		if !ok {
			mt = &MethodTotal{Method: p.Method}
			byMethod[p.Method] = mt
		}
		mt.Count++
		mt.Amount += p.Amount

		switch p.Status {
		case domain.PaymentCompleted:
			stats.CompletedCount++
			stats.TotalPaid += p.Amount
		case domain.PaymentRefunded:
			stats.RefundedCount++
			stats.TotalRefunded += p.Amount
		}
	}
	stats.NetAmount = stats.TotalPaid - stats.TotalRefunded

	for _, mt := range byMethod {
		stats.ByMethod = append(stats.ByMethod, *mt)
	}
	sort.Slice(stats.ByMethod, func(i, j int) bool {
		return stats.ByMethod[i].Method < stats.ByMethod[j].Method
	})
	return stats, nil
}

func (s *PaymentService) hasCompletedPayment(bookingID string) bool {
	for _, p := range s.state.Payments {
		if p.BookingID == bookingID && p.Status == domain.PaymentCompleted {
			return true
		}
	}
	return false
}
