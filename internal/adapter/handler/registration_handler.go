package handler

import (
	"fmt"
	"strconv"

	"github.com/srgjo27/launch_booking/internal/core/domain"
	"github.com/srgjo27/launch_booking/internal/core/services"
)

func (c *Console) registrationMenu() {
	for {
		switch c.p.Menu("Event Registration",
			"Register a new launch event",
			"My registrations",
			"View registration",
			"Update registration",
			"Update a product",
			"Cancel registration",
		) {
		case 1:
			c.createRegistration()
		case 2:
			c.listRegistrations()
		case 3:
			c.viewRegistration()
		case 4:
			c.updateRegistration()
		case 5:
			c.updateProduct()
		case 6:
			c.cancelRegistration()
		default:
			return
		}
	}
}

func (c *Console) createRegistration() {
	org, err := c.svc.Registrations.Organizer(c.userID)
	if c.report(err) {
		return
	}
	c.p.Printf("Organizer: %s (%s)\n", org.Name, org.Email)

	req := services.CreateRegistrationRequest{UserID: c.userID}
	if req.EventTitle, err = c.p.Text("Event title"); c.report(err) {
		return
	}
	if req.Manufacturer, err = c.p.Text("Manufacturer"); c.report(err) {
		return
	}
	if req.Description, err = c.p.Text("Description"); c.report(err) {
		return
	}
	if req.ExpectedGuests, err = c.p.Int("Expected guests", domain.MinExpectedGuests, domain.MaxExpectedGuests); c.report(err) {
		return
	}
	if req.EstimatedBudget, err = c.p.Float("Estimated budget", domain.MinEstimatedBudget); c.report(err) {
		return
	}
	if req.Products, err = c.readProducts(); c.report(err) {
		return
	}

	reg, err := c.svc.Registrations.Create(c.ctx, req)
	if reg == nil && c.report(err) {
		return
	}
	c.warn(err)
	c.p.Printf("Event registered with ID %s.\n", reg.EventID)
}

func (c *Console) readProducts() ([]domain.Product, error) {
	n, err := c.p.Int("Number of products", domain.MinProducts, domain.MaxProducts)
	if err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, n)
	for i := 1; i <= n; i++ {
		var prod domain.Product
		if prod.Name, err = c.p.Text(fmt.Sprintf("Product %d name", i)); err != nil {
			return nil, err
		}
		if prod.Model, err = c.p.Text(fmt.Sprintf("Product %d model", i)); err != nil {
			return nil, err
		}
		if prod.Price, err = c.p.Float(fmt.Sprintf("Product %d price", i), 0.01); err != nil {
			return nil, err
		}
		products = append(products, prod)
	}
	return products, nil
}

func (c *Console) listRegistrations() {
	regs, err := c.svc.Registrations.ListForUser(c.userID)
	if c.report(err) {
		return
	}
	lines := make([]string, 0, len(regs))
	for _, r := range regs {
		lines = append(lines, registrationLine(r))
	}
	c.printList("My registrations", lines)
}

// pickRegistration lets the user choose among their registrations.
func (c *Console) pickRegistration(label string) (domain.EventRegistration, error) {
	regs, err := c.svc.Registrations.ListForUser(c.userID)
	if err != nil {
		return domain.EventRegistration{}, err
	}
	if len(regs) == 0 {
		return domain.EventRegistration{}, fmt.Errorf("registrations: %w", domain.ErrNoCandidates)
	}
	lines := make([]string, 0, len(regs))
	for _, r := range regs {
		lines = append(lines, registrationLine(r))
	}
	i, err := c.p.Pick(label, lines)
	if err != nil {
		return domain.EventRegistration{}, err
	}
	return regs[i], nil
}

func (c *Console) viewRegistration() {
	reg, err := c.pickRegistration("Registration")
	if c.report(err) {
		return
	}
	c.printRegistration(reg)
	if n := c.svc.Registrations.ActiveBookingCount(reg.EventID); n > 0 {
		c.p.Printf("  Active bookings: %d\n", n)
	}
}

func (c *Console) updateRegistration() {
	reg, err := c.pickRegistration("Registration to update")
	if c.report(err) {
		return
	}
	c.printRegistration(reg)

	req := services.UpdateRegistrationRequest{UserID: c.userID, EventID: reg.EventID}
	for _, f := range []struct {
		label string
		dst   **string
	}{
		{"Event title", &req.EventTitle},
		{"Manufacturer", &req.Manufacturer},
		{"Description", &req.Description},
	} {
		v, ok, err := c.p.Optional(f.label)
		if c.report(err) {
			return
		}
		if ok {
			*f.dst = &v
		}
	}

	if s, ok, err := c.p.Optional("Expected guests"); c.report(err) {
		return
	} else if ok {
		guests, err := strconv.Atoi(s)
		if err != nil {
			c.report(&domain.InputError{Field: "expected guests", Value: s})
			return
		}
		req.ExpectedGuests = &guests
	}
	if s, ok, err := c.p.Optional("Estimated budget"); c.report(err) {
		return
	} else if ok {
		budget, err := strconv.ParseFloat(s, 64)
		if err != nil {
			c.report(&domain.InputError{Field: "estimated budget", Value: s})
			return
		}
		req.EstimatedBudget = &budget
	}

	replace, err := c.p.Confirm("Replace the whole product list?")
	if c.report(err) {
		return
	}
	if replace {
		products, err := c.readProducts()
		if c.report(err) {
			return
		}
		req.Products = &products
	}

	updated, err := c.svc.Registrations.Update(c.ctx, req)
	if updated == nil && c.report(err) {
		return
	}
	c.warn(err)
	c.p.Println("Registration updated. Existing bookings keep the details they were made with.")
}

func (c *Console) updateProduct() {
	reg, err := c.pickRegistration("Registration")
	if c.report(err) {
		return
	}
	lines := make([]string, 0, len(reg.Products))
	for _, prod := range reg.Products {
		lines = append(lines, fmt.Sprintf("%s %s %s", prod.Name, prod.Model, money(prod.Price)))
	}
	if len(lines) == 0 {
		c.report(fmt.Errorf("products: %w", domain.ErrNoCandidates))
		return
	}
	i, err := c.p.Pick("Product", lines)
	if c.report(err) {
		return
	}

	var patch services.ProductPatch
	if v, ok, err := c.p.Optional("Name"); c.report(err) {
		return
	} else if ok {
		patch.Name = &v
	}
	if v, ok, err := c.p.Optional("Model"); c.report(err) {
		return
	} else if ok {
		patch.Model = &v
	}
	if s, ok, err := c.p.Optional("Price"); c.report(err) {
		return
	} else if ok {
		price, err := strconv.ParseFloat(s, 64)
		if err != nil {
			c.report(&domain.InputError{Field: "product price", Value: s})
			return
		}
		patch.Price = &price
	}

	updated, err := c.svc.Registrations.UpdateProduct(c.ctx, c.userID, reg.EventID, reg.Products[i].Model, patch)
	if updated == nil && c.report(err) {
		return
	}
	c.warn(err)
	c.p.Println("Product updated.")
}

func (c *Console) cancelRegistration() {
	reg, err := c.pickRegistration("Registration to cancel")
	if c.report(err) {
		return
	}
	if n := c.svc.Registrations.ActiveBookingCount(reg.EventID); n > 0 {
		c.p.Printf("%d active booking(s) for this event will be cancelled too.\n", n)
	}
	ok, err := c.p.Confirm("Cancel " + reg.EventTitle + "?")
	if c.report(err) || !ok {
		return
	}

	resp, err := c.svc.Registrations.Cancel(c.ctx, c.userID, reg.EventID)
	if resp == nil && c.report(err) {
		return
	}
	c.warn(err)
	c.p.Printf("Registration %s cancelled; %d booking(s) cancelled.\n", resp.Registration.EventID, resp.CancelledBookings)
}
