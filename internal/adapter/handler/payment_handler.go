package handler

import (
	"strings"

	"github.com/srgjo27/launch_booking/internal/core/domain"
	"github.com/srgjo27/launch_booking/internal/core/services"
)

func (c *Console) paymentMenu() {
	for {
		switch c.p.Menu("Payments", "Pay for a booking", "Request a refund", "Payment history", "Payment statistics") {
		case 1:
			c.makePayment()
		case 2:
			c.refund()
		case 3:
			c.paymentHistory()
		case 4:
			c.paymentStatistics()
		default:
			return
		}
	}
}

func (c *Console) makePayment() {
	payable, err := c.svc.Payments.PayableBookings(c.userID)
	if c.report(err) {
		return
	}
	lines := make([]string, 0, len(payable))
	for _, b := range payable {
		lines = append(lines, bookingLine(b))
	}
	i, err := c.p.Pick("Booking to pay", lines)
	if c.report(err) {
		return
	}
	b := payable[i]

	req := services.MakePaymentRequest{UserID: c.userID, BookingID: b.BookingID}

	methods := make([]string, 0, len(domain.PaymentMethods))
	for _, m := range domain.PaymentMethods {
		methods = append(methods, string(m))
	}
	m, err := c.p.Pick("Payment method", methods)
	if c.report(err) {
		return
	}
	req.Method = domain.PaymentMethods[m]

	if req.Method.IsCard() {
		if req.CardNumber, err = c.p.Text("Card number (16 digits)"); c.report(err) {
			return
		}
		if req.CardHolderName, err = c.p.Text("Cardholder name"); c.report(err) {
			return
		}
		// Expiry is read but not stored.
		if _, err = c.p.Text("Expiry (MM/YY)"); c.report(err) {
			return
		}
		if req.CVV, err = c.p.Text("CVV"); c.report(err) {
			return
		}
	}

	code, _, err := c.p.Optional("Promo code")
	if c.report(err) {
		return
	}
	req.PromoCode = strings.TrimSpace(code)

	c.p.Printf("Amount due: %s\n", money(b.FinalCost))
	ok, err := c.p.Confirm("Confirm payment?")
	if c.report(err) || !ok {
		return
	}

	resp, err := c.svc.Payments.MakePayment(c.ctx, req)
	if resp == nil && c.report(err) {
		return
	}
	c.warn(err)

	switch {
	case resp.PromoApplied:
		c.p.Printf("Promo applied: -%s\n", money(resp.Discount))
	case resp.PromoRejected:
		c.p.Println("Promo code not recognised; full amount charged.")
	}
	c.p.Println("Payment successful.")
	c.p.Println("  " + paymentLine(resp.Payment))
	c.p.Printf("Booking %s is now %s.\n", resp.Booking.BookingID, resp.Booking.Status)
}

func (c *Console) refund() {
	refundable, err := c.svc.Payments.RefundablePayments(c.userID)
	if c.report(err) {
		return
	}
	lines := make([]string, 0, len(refundable))
	for _, p := range refundable {
		lines = append(lines, paymentLine(p))
	}
	i, err := c.p.Pick("Payment to refund", lines)
	if c.report(err) {
		return
	}

	p, err := c.svc.Payments.Refund(c.ctx, c.userID, refundable[i].PaymentID)
	if p == nil && c.report(err) {
		return
	}
	c.warn(err)
	c.p.Printf("Payment %s refunded: %s.\n", p.PaymentID, money(p.Amount))
}

func (c *Console) paymentHistory() {
	payments, err := c.svc.Payments.History(c.userID)
	if c.report(err) {
		return
	}
	lines := make([]string, 0, len(payments))
	var paid float64
	for _, p := range payments {
		lines = append(lines, paymentLine(p))
		if p.Status == domain.PaymentCompleted {
			paid += p.Amount
		}
	}
	c.printList("Payment history", lines)
	c.p.Printf("  Total paid: %s\n", money(paid))
}

func (c *Console) paymentStatistics() {
	st, err := c.svc.Payments.Statistics(c.userID)
	if c.report(err) {
		return
	}
	c.p.Println("\nPayment statistics")
	c.p.Printf("  Payments:  %d (%d completed, %d refunded)\n", st.TotalPayments, st.CompletedCount, st.RefundedCount)
	c.p.Printf("  Paid:      %s\n", money(st.TotalPaid))
	c.p.Printf("  Refunded:  %s\n", money(st.TotalRefunded))
	c.p.Printf("  Net:       %s\n", money(st.NetAmount))
	for _, m := range st.ByMethod {
		c.p.Printf("  %-14s %d payment(s), %s\n", m.Method, m.Count, money(m.Amount))
	}
}
