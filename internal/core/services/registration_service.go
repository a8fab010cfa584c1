package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/srgjo27/launch_booking/internal/core/domain"
	"github.com/srgjo27/launch_booking/internal/platform/logger"
)

type CreateRegistrationRequest struct {
	UserID          string           `json:"user_id"`
	EventTitle      string           `json:"event_title"`
	Manufacturer    string           `json:"manufacturer"`
	Description     string           `json:"description"`
	ExpectedGuests  int              `json:"expected_guests"`
	EstimatedBudget float64          `json:"estimated_budget"`
	Products        []domain.Product `json:"products"`
}

// UpdateRegistrationRequest changes the non-nil fields only. Products, when
// set, replaces the whole list.
type UpdateRegistrationRequest struct {
	UserID          string            `json:"user_id"`
	EventID         string            `json:"event_id"`
	EventTitle      *string           `json:"event_title,omitempty"`
	Manufacturer    *string           `json:"manufacturer,omitempty"`
	Description     *string           `json:"description,omitempty"`
	ExpectedGuests  *int              `json:"expected_guests,omitempty"`
	EstimatedBudget *float64          `json:"estimated_budget,omitempty"`
	Products        *[]domain.Product `json:"products,omitempty"`
}

// ProductPatch edits one product found by its model.
type ProductPatch struct {
	Name  *string  `json:"name,omitempty"`
	Model *string  `json:"model,omitempty"`
	Price *float64 `json:"price,omitempty"`
}

type CancelRegistrationResponse struct {
	Registration      domain.EventRegistration `json:"registration"`
	CancelledBookings int                      `json:"cancelled_bookings"`
}

type RegistrationService struct {
	state    *State
	bookings *BookingService
}

func NewRegistrationService(state *State, bookings *BookingService) *RegistrationService {
	return &RegistrationService{
		state:    state,
		bookings: bookings,
	}
}

// Organizer resolves the organizer data for userID, first from the user's
// earlier registrations and then from the user catalog.
func (s *RegistrationService) Organizer(userID string) (domain.OrganizerInfo, error) {
	if err := requireUser(userID); err != nil {
		return domain.OrganizerInfo{}, err
	}
	for _, r := range s.state.Registrations {
		if r.OwnedBy(userID) {
			return r.Organizer, nil
		}
	}
	if i := s.state.userIndex(userID); i >= 0 {
		return s.state.Users[i].Info(), nil
	}
	return domain.OrganizerInfo{}, fmt.Errorf("organizer %s: %w", userID, domain.ErrNotFound)
}

func (s *RegistrationService) Create(ctx context.Context, req CreateRegistrationRequest) (*domain.EventRegistration, error) {
	organizer, err := s.Organizer(req.UserID)
	if err != nil {
		return nil, err
	}

	reg := domain.EventRegistration{
		Organizer:       organizer,
		EventTitle:      strings.TrimSpace(req.EventTitle),
		Manufacturer:    strings.TrimSpace(req.Manufacturer),
		Description:     strings.TrimSpace(req.Description),
		ExpectedGuests:  req.ExpectedGuests,
		EstimatedBudget: req.EstimatedBudget,
		Products:        cleanProducts(req.Products),
		Status:          domain.RegistrationUnscheduled,
	}
	if err := validateRegistration(reg); err != nil {
		return nil, err
	}
	reg.EventID = domain.NextEventID(s.state.Registrations, s.state.Bookings)
	s.state.Registrations = append(s.state.Registrations, reg)

	logger.WithContext(ctx).Info("registration created",
		"event_id", reg.EventID,
		"title", reg.EventTitle,
		"products", len(reg.Products))

	created := reg.Snapshot()
	return &created, s.state.SaveRegistrations(ctx)
}

// ListForUser returns the registrations owned by userID.
func (s *RegistrationService) ListForUser(userID string) ([]domain.EventRegistration, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	var out []domain.EventRegistration
	for _, r := range s.state.Registrations {
		if r.OwnedBy(userID) {
			out = append(out, r.Snapshot())
		}
	}
	return out, nil
}

func (s *RegistrationService) Get(userID, eventID string) (domain.EventRegistration, error) {
	i, err := s.state.ownedRegistration(userID, eventID)
	if err != nil {
		return domain.EventRegistration{}, err
	}
	return s.state.Registrations[i].Snapshot(), nil
}

// Update edits a registration that is not cancelled. Bookings already made
// keep the snapshot they were created with.
func (s *RegistrationService) Update(ctx context.Context, req UpdateRegistrationRequest) (*domain.EventRegistration, error) {
	i, err := s.editableRegistration(req.UserID, req.EventID)
	if err != nil {
		return nil, err
	}

	next := s.state.Registrations[i].Snapshot()
	changed := false
	if req.EventTitle != nil {
		next.EventTitle = strings.TrimSpace(*req.EventTitle)
		changed = true
	}
	if req.Manufacturer != nil {
		next.Manufacturer = strings.TrimSpace(*req.Manufacturer)
		changed = true
	}
	if req.Description != nil {
		next.Description = strings.TrimSpace(*req.Description)
		changed = true
	}
	if req.ExpectedGuests != nil {
		next.ExpectedGuests = *req.ExpectedGuests
		changed = true
	}
	if req.EstimatedBudget != nil {
		next.EstimatedBudget = *req.EstimatedBudget
		changed = true
	}
	if req.Products != nil {
		next.Products = cleanProducts(*req.Products)
		changed = true
	}
	if !changed {
		return nil, fmt.Errorf("registration %s: %w", next.EventID, domain.ErrNoChange)
	}
	if err := validateRegistration(next); err != nil {
		return nil, err
	}

	s.state.Registrations[i] = next
	logger.WithContext(ctx).Info("registration updated", "event_id", next.EventID)

	updated := next.Snapshot()
	return &updated, s.state.SaveRegistrations(ctx)
}

// UpdateProduct edits the first product whose model matches.
func (s *RegistrationService) UpdateProduct(ctx context.Context, userID, eventID, model string, patch ProductPatch) (*domain.EventRegistration, error) {
	i, err := s.editableRegistration(userID, eventID)
	if err != nil {
		return nil, err
	}

	next := s.state.Registrations[i].Snapshot()
	pi := -1
	for j, p := range next.Products {
		if p.Model == strings.TrimSpace(model) {
			pi = j
			break
		}
	}
	if pi < 0 {
		return nil, fmt.Errorf("product model %q: %w", model, domain.ErrNotFound)
	}

	p := &next.Products[pi]
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Model != nil {
		p.Model = strings.TrimSpace(*patch.Model)
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if err := validateRegistration(next); err != nil {
		return nil, err
	}

	s.state.Registrations[i] = next
	logger.WithContext(ctx).Info("registration product updated", "event_id", next.EventID, "model", p.Model)

	updated := next.Snapshot()
	return &updated, s.state.SaveRegistrations(ctx)
}

// ActiveBookingCount returns how many live bookings reference eventID.
func (s *RegistrationService) ActiveBookingCount(eventID string) int {
	id := domain.NormalizeID(eventID)
	n := 0
	for _, b := range s.state.Bookings {
		if b.IsLive() && b.EventID() == id {
			n++
		}
	}
	return n
}

// Cancel marks a registration CANCELLED and cancels every live booking of
// it. The slots those bookings held become free.
func (s *RegistrationService) Cancel(ctx context.Context, userID, eventID string) (*CancelRegistrationResponse, error) {
	i, err := s.editableRegistration(userID, eventID)
	if err != nil {
		return nil, err
	}

	reg := &s.state.Registrations[i]
	reg.Status = domain.RegistrationCancelled
	n := s.bookings.cancelForEvent(ctx, reg.EventID)

	logger.WithContext(ctx).Info("registration cancelled", "event_id", reg.EventID, "cancelled_bookings", n)

	resp := &CancelRegistrationResponse{
		Registration:      reg.Snapshot(),
		CancelledBookings: n,
	}
	return resp, saveEach(ctx, s.state.SaveRegistrations, s.state.SaveBookings, s.state.SaveVenues)
}

func (s *RegistrationService) editableRegistration(userID, eventID string) (int, error) {
	i, err := s.state.ownedRegistration(userID, eventID)
	if err != nil {
		return -1, err
	}
	if s.state.Registrations[i].Status == domain.RegistrationCancelled {
		return -1, fmt.Errorf("registration %s is cancelled: %w", s.state.Registrations[i].EventID, domain.ErrInvalidState)
	}
	return i, nil
}

func cleanProducts(in []domain.Product) []domain.Product {
	out := make([]domain.Product, len(in))
	for i, p := range in {
		out[i] = domain.Product{
			Name:  strings.TrimSpace(p.Name),
			Model: strings.TrimSpace(p.Model),
			Price: p.Price,
		}
	}
	return out
}

func validateRegistration(r domain.EventRegistration) error {
	if err := validateText("event title", r.EventTitle, "|"); err != nil {
		return err
	}
	if err := validateText("manufacturer", r.Manufacturer, "|"); err != nil {
		return err
	}
	if err := validateText("description", r.Description, "|"); err != nil {
		return err
	}
	if r.ExpectedGuests < domain.MinExpectedGuests || r.ExpectedGuests > domain.MaxExpectedGuests {
		return &domain.InputError{Field: "expected guests", Value: fmt.Sprint(r.ExpectedGuests)}
	}
	if r.EstimatedBudget < domain.MinEstimatedBudget {
		return &domain.InputError{Field: "estimated budget", Value: fmt.Sprint(r.EstimatedBudget)}
	}
	if len(r.Products) < domain.MinProducts || len(r.Products) > domain.MaxProducts {
		return &domain.InputError{Field: "product quantity", Value: fmt.Sprint(len(r.Products))}
	}
	for _, p := range r.Products {
		if err := validateText("product name", p.Name, "|;,"); err != nil {
			return err
		}
		if err := validateText("product model", p.Model, "|;,"); err != nil {
			return err
		}
		if p.Price <= 0 {
			return &domain.InputError{Field: "product price", Value: fmt.Sprint(p.Price)}
		}
	}
	return nil
}

// validateText rejects empty values and values containing a storage
// delimiter.
func validateText(field, value, forbidden string) error {
	if strings.TrimSpace(value) == "" || strings.ContainsAny(value, forbidden+"\n\r") {
		return &domain.InputError{Field: field, Value: value}
	}
	return nil
}
