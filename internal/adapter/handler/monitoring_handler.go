package handler

const upcomingHorizonDays = 30

func (c *Console) monitoringMenu() {
	for {
		switch c.p.Menu("Event Monitoring",
			"Event summary",
			"Venue utilization",
			"Financial report",
			"Upcoming events (next 30 days)",
			"Registration statistics",
			"Search",
		) {
		case 1:
			c.summary()
		case 2:
			c.venueUtilization()
		case 3:
			c.financialReport()
		case 4:
			c.upcoming()
		case 5:
			c.registrationStatistics()
		case 6:
			c.search()
		default:
			return
		}
	}
}

func (c *Console) summary() {
	s, err := c.svc.Monitoring.Summary(c.userID)
	if c.report(err) {
		return
	}
	c.p.Println("\nEvent summary")
	c.p.Printf("  Registrations: %d\n", s.Registrations)
	for _, status := range sortedKeys(s.RegistrationsByStatus) {
		c.p.Printf("    %-12s %d\n", status, s.RegistrationsByStatus[status])
	}
	c.p.Printf("  Bookings: %d\n", s.Bookings)
	for _, status := range sortedKeys(s.BookingsByStatus) {
		c.p.Printf("    %-12s %d\n", status, s.BookingsByStatus[status])
	}
	c.p.Printf("  Venues in catalog: %d\n", s.Venues)
}

func (c *Console) venueUtilization() {
	usage, err := c.svc.Monitoring.VenueUtilization(c.userID)
	if c.report(err) {
		return
	}
	c.p.Println("\nVenue utilization")
	for _, u := range usage {
		c.p.Printf("  %-12s %3d booking(s) %6.1f%%\n", u.Venue.Name, u.Bookings, u.Share)
	}
}

func (c *Console) financialReport() {
	r, err := c.svc.Monitoring.FinancialReport(c.userID)
	if c.report(err) {
		return
	}
	c.p.Println("\nFinancial report")
	c.p.Printf("  Estimated budgets: %s\n", money(r.TotalBudget))
	c.p.Printf("  Booked cost:       %s\n", money(r.TotalSpent))
	c.p.Printf("    Pending:         %s\n", money(r.PendingCost))
	c.p.Printf("    Confirmed:       %s\n", money(r.ConfirmedCost))
	c.p.Printf("    Completed:       %s\n", money(r.CompletedCost))
	c.p.Printf("  Collected:         %s\n", money(r.Collected))
	c.p.Printf("  Refunded:          %s\n", money(r.Refunded))
	if len(r.MostExpensive) > 0 {
		c.p.Println("  Most expensive bookings:")
		for _, b := range r.MostExpensive {
			c.p.Println("    " + bookingLine(b))
		}
	}
}

func (c *Console) upcoming() {
	bookings, err := c.svc.Monitoring.Upcoming(c.userID, upcomingHorizonDays)
	if c.report(err) {
		return
	}
	lines := make([]string, 0, len(bookings))
	for _, b := range bookings {
		lines = append(lines, bookingLine(b))
	}
	c.printList("Upcoming events", lines)
}

func (c *Console) registrationStatistics() {
	st, err := c.svc.Monitoring.RegistrationStatistics(c.userID)
	if c.report(err) {
		return
	}
	c.p.Println("\nRegistration statistics")
	c.p.Printf("  Registrations:   %d\n", st.Registrations)
	c.p.Printf("  Expected guests: %d\n", st.ExpectedGuests)
	c.p.Printf("  Products:        %d\n", st.Products)
	for _, m := range sortedKeys(st.ByManufacturer) {
		c.p.Printf("    %-20s %d\n", m, st.ByManufacturer[m])
	}
}

func (c *Console) search() {
	term, err := c.p.Text("Search for")
	if c.report(err) {
		return
	}
	res, err := c.svc.Monitoring.Search(c.userID, term)
	if c.report(err) {
		return
	}
	regs := make([]string, 0, len(res.Registrations))
	for _, r := range res.Registrations {
		regs = append(regs, registrationLine(r))
	}
	bookings := make([]string, 0, len(res.Bookings))
	for _, b := range res.Bookings {
		bookings = append(bookings, bookingLine(b))
	}
	c.printList("Matching registrations", regs)
	c.printList("Matching bookings", bookings)
}
