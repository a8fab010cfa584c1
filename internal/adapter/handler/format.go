package handler

import (
	"fmt"
	"strings"

	"github.com/srgjo27/launch_booking/internal/core/domain"
)

func money(v float64) string {
	return fmt.Sprintf("RM %.2f", v)
}

func bookingLine(b domain.EventBooking) string {
	return fmt.Sprintf("%s | %s | %s %s | %s | %s | %s",
		b.BookingID, b.Registration.EventTitle, b.EventDate, b.EventTime,
		b.Venue.Name, b.Status, money(b.FinalCost))
}

func registrationLine(r domain.EventRegistration) string {
	return fmt.Sprintf("%s | %s | %s | %d guests | %s",
		r.EventID, r.EventTitle, r.Manufacturer, r.ExpectedGuests, r.Status)
}

func venueLine(v domain.Venue) string {
	return fmt.Sprintf("%s | %s | capacity %d | %s", v.VenueID, v.Name, v.Capacity, money(v.RentalCost))
}

func paymentLine(p domain.Payment) string {
	line := fmt.Sprintf("%s | %s | %s | %s | %s | %s | %s",
		p.PaymentID, p.BookingID, money(p.Amount), p.PaymentDate.DMY(), p.Method, p.Status, p.TransactionReference)
	if p.CardLast4 != "" {
		line += " | " + domain.MaskCardNumber(p.CardLast4)
	}
	return line
}

func (c *Console) printBooking(b domain.EventBooking) {
	r, v := b.Registration, b.Venue
	c.p.Printf("\nBooking %s [%s]\n", b.BookingID, b.Status)
	c.p.Printf("  Event:     %s (%s) by %s\n", r.EventTitle, r.EventID, r.Organizer.Name)
	c.p.Printf("  Date/time: %s, %s\n", b.EventDate, b.EventTime)
	c.p.Printf("  Venue:     %s, %s (capacity %d)\n", v.Name, v.Address, v.Capacity)
	c.p.Printf("  Contact:   %s %s\n", v.ContactPerson, v.PhoneNumber)
	if len(b.LogisticsItems) > 0 {
		c.p.Printf("  Logistics: %s (%s)\n", strings.Join(b.LogisticsItems, ", "), money(b.LogisticsCost))
	}
	c.p.Printf("  Total:     %s\n", money(b.FinalCost))
}

func (c *Console) printRegistration(r domain.EventRegistration) {
	c.p.Printf("\nEvent %s [%s]\n", r.EventID, r.Status)
	c.p.Printf("  Title:        %s\n", r.EventTitle)
	c.p.Printf("  Manufacturer: %s\n", r.Manufacturer)
	c.p.Printf("  Description:  %s\n", r.Description)
	c.p.Printf("  Guests:       %d\n", r.ExpectedGuests)
	c.p.Printf("  Budget:       %s\n", money(r.EstimatedBudget))
	for i, prod := range r.Products {
		c.p.Printf("  Product %d:    %s %s %s\n", i+1, prod.Name, prod.Model, money(prod.Price))
	}
}

func (c *Console) printList(title string, lines []string) {
	c.p.Printf("\n%s (%d)\n", title, len(lines))
	for _, l := range lines {
		c.p.Println("  " + l)
	}
}
