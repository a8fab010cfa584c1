package handler

import (
	"fmt"
	"strconv"

	"github.com/srgjo27/launch_booking/internal/core/domain"
	"github.com/srgjo27/launch_booking/internal/core/services"
)

func (c *Console) bookingMenu() {
	c.cancelledNotice()
	for {
		switch c.p.Menu("Venue Booking",
			"Book a venue",
			"My bookings",
			"Booking details",
			"Change time slot",
			"Change venue",
			"Add logistics",
			"Cancel booking",
			"Mark booking completed",
		) {
		case 1:
			c.createBooking()
		case 2:
			c.listBookings()
		case 3:
			c.viewBooking()
		case 4:
			c.updateTimeSlot()
		case 5:
			c.updateVenue()
		case 6:
			c.addLogistics()
		case 7:
			c.cancelBooking()
		case 8:
			c.completeBooking()
		default:
			return
		}
	}
}

// cancelledNotice lists bookings that were cancelled, usually by a
// registration cancellation, so the user can purge them.
func (c *Console) cancelledNotice() {
	bookings, err := c.svc.Bookings.ListForUser(c.userID)
	if err != nil {
		return
	}
	var lines []string
	for _, b := range bookings {
		if b.Status == domain.BookingCancelled {
			lines = append(lines, bookingLine(b))
		}
	}
	if len(lines) > 0 {
		c.printList("Notice: cancelled bookings", lines)
		c.p.Println("  Use 'Cancel booking' to remove them.")
	}
}

func (c *Console) pickSlot() (string, error) {
	slots := c.svc.State.TimeSlots
	i, err := c.p.Pick("Time slot", slots.Names)
	if err != nil {
		return "", err
	}
	return slots.Slots[i], nil
}

func (c *Console) pickVenue(venues []domain.Venue) (domain.Venue, error) {
	lines := make([]string, 0, len(venues))
	for _, v := range venues {
		lines = append(lines, venueLine(v))
	}
	i, err := c.p.Pick("Venue", lines)
	if err != nil {
		return domain.Venue{}, err
	}
	return venues[i], nil
}

// pickBooking offers the user's bookings that keep returns true for.
func (c *Console) pickBooking(label string, keep func(domain.EventBooking) bool) (domain.EventBooking, error) {
	all, err := c.svc.Bookings.ListForUser(c.userID)
	if err != nil {
		return domain.EventBooking{}, err
	}
	var (
		bookings []domain.EventBooking
		lines    []string
	)
	for _, b := range all {
		if keep == nil || keep(b) {
			bookings = append(bookings, b)
			lines = append(lines, bookingLine(b))
		}
	}
	if len(bookings) == 0 {
		return domain.EventBooking{}, fmt.Errorf("bookings: %w", domain.ErrNoCandidates)
	}
	i, err := c.p.Pick(label, lines)
	if err != nil {
		return domain.EventBooking{}, err
	}
	return bookings[i], nil
}

func updatable(b domain.EventBooking) bool {
	return b.Status == domain.BookingPending || b.Status == domain.BookingConfirmed
}

// capacityOK asks before booking a venue smaller than the guest list.
func (c *Console) capacityOK(guests int, v domain.Venue) (bool, error) {
	if guests <= v.Capacity {
		return false, nil
	}
	c.p.Printf("Warning: %d expected guests exceed %s capacity of %d.\n", guests, v.Name, v.Capacity)
	return c.p.Confirm("Book it anyway?")
}

func (c *Console) pickLogistics() ([]string, error) {
	want, err := c.p.Confirm("Add logistics services?")
	if err != nil || !want {
		return nil, err
	}
	for i, item := range domain.LogisticsCatalog {
		c.p.Printf("%2d. %-28s %s\n", i+1, item.Name, money(item.Price))
	}
	for {
		s, err := c.p.Line("Items (comma separated numbers)")
		if err != nil {
			return nil, err
		}
		names, ok := logisticsNames(s)
		if ok {
			return names, nil
		}
		c.p.Printf("  Use numbers between 1 and %d.\n", len(domain.LogisticsCatalog))
	}
}

func logisticsNames(s string) ([]string, bool) {
	var names []string
	for _, part := range splitList(s) {
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 || n > len(domain.LogisticsCatalog) {
			return nil, false
		}
		names = append(names, domain.LogisticsCatalog[n-1].Name)
	}
	return names, len(names) > 0
}

func (c *Console) createBooking() {
	regs, err := c.svc.Bookings.BookableRegistrations(c.userID)
	if c.report(err) {
		return
	}
	lines := make([]string, 0, len(regs))
	for _, r := range regs {
		lines = append(lines, registrationLine(r))
	}
	i, err := c.p.Pick("Event", lines)
	if c.report(err) {
		return
	}
	reg := regs[i]

	date, err := c.p.Date("Event date")
	if c.report(err) {
		return
	}
	slot, err := c.pickSlot()
	if c.report(err) {
		return
	}

	venues, err := c.svc.Bookings.CheckSlot(c.ctx, c.userID, reg.EventID, date, slot)
	if c.report(err) {
		return
	}
	venue, err := c.pickVenue(venues)
	if c.report(err) {
		return
	}

	allow, err := c.capacityOK(reg.ExpectedGuests, venue)
	if c.report(err) {
		return
	}
	if reg.ExpectedGuests > venue.Capacity && !allow {
		c.p.Println("Booking not made.")
		return
	}

	items, err := c.pickLogistics()
	if c.report(err) {
		return
	}

	resp, err := c.svc.Bookings.CreateBooking(c.ctx, services.CreateBookingRequest{
		UserID:            c.userID,
		EventID:           reg.EventID,
		Date:              date,
		TimeSlot:          slot,
		VenueID:           venue.VenueID,
		AllowOverCapacity: allow,
		Logistics:         items,
	})
	if resp == nil && c.report(err) {
		return
	}
	c.warn(err)

	c.printBooking(resp.Booking)
	c.p.Printf("  Venue rental %s + logistics %s\n", money(resp.VenueRental), money(resp.LogisticsCost))
	c.p.Println("Booking created with status Pending. Make a payment to confirm it.")
}

func (c *Console) listBookings() {
	bookings, err := c.svc.Bookings.ListForUser(c.userID)
	if c.report(err) {
		return
	}
	lines := make([]string, 0, len(bookings))
	for _, b := range bookings {
		lines = append(lines, bookingLine(b))
	}
	c.printList("My bookings", lines)
}

func (c *Console) viewBooking() {
	b, err := c.pickBooking("Booking", nil)
	if c.report(err) {
		return
	}
	c.printBooking(b)
}

func (c *Console) updateTimeSlot() {
	b, err := c.pickBooking("Booking", updatable)
	if c.report(err) {
		return
	}
	c.p.Printf("Current slot: %s %s\n", b.EventDate, b.EventTime)
	slot, err := c.pickSlot()
	if c.report(err) {
		return
	}

	updated, err := c.svc.Bookings.UpdateTimeSlot(c.ctx, c.userID, b.BookingID, slot)
	if updated == nil && c.report(err) {
		return
	}
	c.warn(err)
	c.p.Printf("Booking %s moved to %s %s.\n", updated.BookingID, updated.EventDate, updated.EventTime)
}

func (c *Console) updateVenue() {
	b, err := c.pickBooking("Booking", updatable)
	if c.report(err) {
		return
	}
	venues, err := c.svc.Bookings.AlternativeVenues(c.ctx, c.userID, b.BookingID)
	if c.report(err) {
		return
	}
	venue, err := c.pickVenue(venues)
	if c.report(err) {
		return
	}
	allow, err := c.capacityOK(b.Registration.ExpectedGuests, venue)
	if c.report(err) {
		return
	}
	if b.Registration.ExpectedGuests > venue.Capacity && !allow {
		c.p.Println("Venue not changed.")
		return
	}

	resp, err := c.svc.Bookings.UpdateVenue(c.ctx, services.UpdateVenueRequest{
		UserID:            c.userID,
		BookingID:         b.BookingID,
		VenueID:           venue.VenueID,
		AllowOverCapacity: allow,
	})
	if resp == nil && c.report(err) {
		return
	}
	c.warn(err)
	c.p.Printf("Venue changed from %s to %s (difference %s). New total %s.\n",
		money(resp.OldVenueCost), money(resp.NewVenueCost), money(resp.CostDifference), money(resp.Booking.FinalCost))
}

func (c *Console) addLogistics() {
	b, err := c.pickBooking("Booking", updatable)
	if c.report(err) {
		return
	}
	items, err := c.pickLogistics()
	if c.report(err) {
		return
	}

	resp, err := c.svc.Bookings.AddLogistics(c.ctx, c.userID, b.BookingID, items)
	if resp == nil && c.report(err) {
		return
	}
	c.warn(err)
	c.p.Printf("Added %d item(s) for %s. New total %s.\n", len(resp.AddedItems), money(resp.AddedCost), money(resp.Booking.FinalCost))
}

func (c *Console) cancelBooking() {
	b, err := c.pickBooking("Booking to cancel", func(b domain.EventBooking) bool {
		return b.Status != domain.BookingCompleted
	})
	if c.report(err) {
		return
	}
	ok, err := c.p.Confirm("Cancel and remove booking " + b.BookingID + "?")
	if c.report(err) || !ok {
		return
	}

	resp, err := c.svc.Bookings.CancelBooking(c.ctx, c.userID, b.BookingID)
	if resp == nil && c.report(err) {
		return
	}
	c.warn(err)
	if resp.Purged {
		c.p.Printf("Cancelled booking %s removed.\n", resp.Booking.BookingID)
		return
	}
	c.p.Printf("Booking %s cancelled; the event can be booked again.\n", resp.Booking.BookingID)
}

func (c *Console) completeBooking() {
	b, err := c.pickBooking("Booking", func(b domain.EventBooking) bool {
		return b.Status == domain.BookingConfirmed
	})
	if c.report(err) {
		return
	}
	done, err := c.svc.Bookings.CompleteBooking(c.ctx, c.userID, b.BookingID)
	if done == nil && c.report(err) {
		return
	}
	c.warn(err)
	c.p.Printf("Booking %s marked completed.\n", done.BookingID)
}
