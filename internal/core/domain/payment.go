package domain

import "strings"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
	PaymentRefunded  PaymentStatus = "Refunded"
)

type PaymentMethod string

const (
	MethodCreditCard   PaymentMethod = "Credit Card"
	MethodDebitCard    PaymentMethod = "Debit Card"
	MethodBankTransfer PaymentMethod = "Bank Transfer"
	MethodCash         PaymentMethod = "Cash"
)

var PaymentMethods = []PaymentMethod{MethodCreditCard, MethodDebitCard, MethodBankTransfer, MethodCash}

func (m PaymentMethod) IsCard() bool {
	return m == MethodCreditCard || m == MethodDebitCard
}

func (m PaymentMethod) Valid() bool {
	for _, pm := range PaymentMethods {
		if pm == m {
			return true
		}
	}
	return false
}

const (
	PromoCode     = "PROMO10"
	PromoDiscount = 0.10
)

// Payment records one payment attempt against a booking. CardLast4 is the
// only part of a card number ever kept.
type Payment struct {
	PaymentID            string
	BookingID            string
	Amount               float64
	PaymentDate          Date
	Method               PaymentMethod
	Status               PaymentStatus
	TransactionReference string
	CardLast4            string
	CardHolderName       string
}

// MaskCardNumber renders the last four digits behind a fixed mask.
func MaskCardNumber(last4 string) string {
	if len(last4) < 4 {
		return last4
	}
	return "****-****-****-" + last4[len(last4)-4:]
}

// CleanDigits strips spaces and dashes and reports whether the rest is
// exactly n digits.
func CleanDigits(s string, n int) (string, bool) {
	clean := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, s)
	if len(clean) != n {
		return clean, false
	}
	for _, r := range clean {
		if r < '0' || r > '9' {
			return clean, false
		}
	}
	return clean, true
}
