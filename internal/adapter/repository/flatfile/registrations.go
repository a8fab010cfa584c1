package flatfile

import (
	"context"
	"fmt"
	"strings"

	"github.com/srgjo27/launch_booking/internal/core/domain"
)

// eventID|manufacturer|title|productQty|products|description|guests|budget|
// status|organizerID|organizerName|contact|email|position
//
// products are name,model,price entries joined by ';'.

func encodeProducts(products []domain.Product) string {
	parts := make([]string, 0, len(products))
	for _, p := range products {
		parts = append(parts, strings.Join([]string{p.Name, p.Model, formatFloat(p.Price)}, ","))
	}
	return strings.Join(parts, ";")
}

func decodeProducts(s string) ([]domain.Product, error) {
	var products []domain.Product
	if strings.TrimSpace(s) == "" {
		return products, nil
	}
	for _, entry := range strings.Split(s, ";") {
		f := strings.Split(entry, ",")
		if len(f) != 3 {
			return nil, fmt.Errorf("product %q: expected name,model,price", entry)
		}
		price, err := parseFloat("product price", f[2])
		if err != nil {
			return nil, err
		}
		products = append(products, domain.Product{Name: f[0], Model: f[1], Price: price})
	}
	return products, nil
}

func encodeRegistration(r domain.EventRegistration) string {
	return join(
		r.EventID,
		r.Manufacturer,
		r.EventTitle,
		formatInt(len(r.Products)),
		encodeProducts(r.Products),
		r.Description,
		formatInt(r.ExpectedGuests),
		formatFloat(r.EstimatedBudget),
		string(r.Status),
		r.Organizer.UserID,
		r.Organizer.Name,
		r.Organizer.Contact,
		r.Organizer.Email,
		r.Organizer.Position,
	)
}

func decodeRegistration(line string) (domain.EventRegistration, error) {
	f, err := split(line, 14)
	if err != nil {
		return domain.EventRegistration{}, err
	}
	if _, err := parseInt("product quantity", f[3]); err != nil {
		return domain.EventRegistration{}, err
	}
	products, err := decodeProducts(f[4])
	if err != nil {
		return domain.EventRegistration{}, err
	}
	guests, err := parseInt("expected guests", f[6])
	if err != nil {
		return domain.EventRegistration{}, err
	}
	budget, err := parseFloat("estimated budget", f[7])
	if err != nil {
		return domain.EventRegistration{}, err
	}
	return domain.EventRegistration{
		EventID:         f[0],
		Manufacturer:    f[1],
		EventTitle:      f[2],
		Products:        products,
		Description:     f[5],
		ExpectedGuests:  guests,
		EstimatedBudget: budget,
		Status:          domain.RegistrationStatus(f[8]),
		Organizer: domain.OrganizerInfo{
			UserID:   f[9],
			Name:     f[10],
			Contact:  f[11],
			Email:    f[12],
			Position: f[13],
		},
	}, nil
}

func (s *Store) LoadRegistrations(ctx context.Context) ([]domain.EventRegistration, error) {
	var regs []domain.EventRegistration
	err := s.readLines(ctx, registrationsFile, func(line string) error {
		r, err := decodeRegistration(line)
		if err != nil {
			return err
		}
		regs = append(regs, r)
		return nil
	})
	return regs, err
}

func (s *Store) SaveRegistrations(ctx context.Context, regs []domain.EventRegistration) error {
	lines := make([]string, 0, len(regs))
	for _, r := range regs {
		lines = append(lines, encodeRegistration(r))
	}
	return s.writeLines(ctx, registrationsFile, lines)
}
