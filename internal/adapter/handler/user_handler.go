package handler

import (
	"sort"
	"strconv"

	"github.com/srgjo27/launch_booking/internal/core/domain"
	"github.com/srgjo27/launch_booking/internal/core/services"
)

func (c *Console) login() {
	id, err := c.p.Text("User ID or email")
	if c.report(err) {
		return
	}
	pw, err := c.p.Text("Password")
	if c.report(err) {
		return
	}

	u, err := c.svc.Users.Login(c.ctx, id, pw)
	if u == nil && c.report(err) {
		return
	}
	c.warn(err)
	c.startSession(u.UserID)
	c.p.Printf("Welcome back, %s.\n", u.Name)
}

func (c *Console) signUp() {
	var req services.SignUpRequest
	var err error

	if req.Name, err = c.p.Text("Full name"); c.report(err) {
		return
	}
	if req.Age, err = c.p.Int("Age", 18, 100); c.report(err) {
		return
	}
	if req.Manufacturer, err = c.p.Text("Manufacturer"); c.report(err) {
		return
	}
	if req.Position, err = c.p.Text("Position"); c.report(err) {
		return
	}
	if req.Contact, err = c.p.Text("Contact number"); c.report(err) {
		return
	}
	if req.Email, err = c.p.Text("Email"); c.report(err) {
		return
	}
	c.p.Println("Passwords need at least 6 characters with upper case, lower case and a digit.")
	if req.Password, err = c.p.Text("Password"); c.report(err) {
		return
	}

	u, err := c.svc.Users.SignUp(c.ctx, req)
	if u == nil && c.report(err) {
		return
	}
	c.warn(err)
	c.startSession(u.UserID)
	c.p.Printf("Account created. Your user ID is %s.\n", u.UserID)
}

func (c *Console) logout() {
	c.warn(c.svc.Users.Logout(c.ctx, c.userID))
	c.p.Println("Logged out.")
	c.userID = ""
}

func (c *Console) profileMenu() {
	for {
		switch c.p.Menu("My Profile", "View profile", "Update profile", "Change password") {
		case 1:
			c.showProfile()
		case 2:
			c.updateProfile()
		case 3:
			c.changePassword()
		default:
			return
		}
	}
}

func (c *Console) showProfile() {
	prof, err := c.svc.Users.Profile(c.userID)
	if c.report(err) {
		return
	}
	u := prof.User
	c.p.Printf("\n%s (%s)\n", u.Name, u.UserID)
	c.p.Printf("  Age:          %d\n", u.Age)
	c.p.Printf("  Manufacturer: %s\n", u.Manufacturer)
	c.p.Printf("  Position:     %s\n", u.Position)
	c.p.Printf("  Contact:      %s\n", u.Contact)
	c.p.Printf("  Email:        %s\n", u.Email)

	c.p.Println("  Registrations:")
	for _, status := range sortedKeys(prof.RegistrationsByStatus) {
		c.p.Printf("    %-12s %d\n", status, prof.RegistrationsByStatus[status])
	}
	c.p.Println("  Bookings:")
	for _, status := range sortedKeys(prof.BookingsByStatus) {
		c.p.Printf("    %-12s %d\n", status, prof.BookingsByStatus[status])
	}
	c.p.Printf("  Feedback given: %d\n", prof.FeedbackCount)
	c.p.Printf("  Total spent:    %s\n", money(prof.TotalSpent))
}

func (c *Console) updateProfile() {
	req := services.UpdateProfileRequest{UserID: c.userID}

	fields := []struct {
		label string
		dst   **string
	}{
		{"Name", &req.Name},
		{"Manufacturer", &req.Manufacturer},
		{"Position", &req.Position},
		{"Contact number", &req.Contact},
		{"Email", &req.Email},
	}
	for _, f := range fields {
		v, ok, err := c.p.Optional(f.label)
		if c.report(err) {
			return
		}
		if ok {
			*f.dst = &v
		}
	}
	if s, ok, err := c.p.Optional("Age"); c.report(err) {
		return
	} else if ok {
		age, err := parseAge(s)
		if c.report(err) {
			return
		}
		req.Age = &age
	}

	u, err := c.svc.Users.UpdateProfile(c.ctx, req)
	if u == nil && c.report(err) {
		return
	}
	c.warn(err)
	c.p.Println("Profile updated.")
}

func (c *Console) changePassword() {
	current, err := c.p.Text("Current password")
	if c.report(err) {
		return
	}
	next, err := c.p.Text("New password")
	if c.report(err) {
		return
	}
	if err := c.svc.Users.ChangePassword(c.ctx, c.userID, current, next); c.report(err) {
		return
	}
	c.p.Println("Password changed.")
}

func parseAge(s string) (int, error) {
	age, err := strconv.Atoi(s)
	if err != nil {
		return 0, &domain.InputError{Field: "age", Value: s}
	}
	return age, nil
}

func sortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
