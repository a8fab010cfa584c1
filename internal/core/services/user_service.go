package services

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/srgjo27/launch_booking/internal/core/domain"
	"github.com/srgjo27/launch_booking/internal/platform/logger"
)

const (
	minAge            = 18
	maxAge            = 100
	minPasswordLength = 6
	minPhoneDigits    = 9
	maxPhoneDigits    = 12
)

type SignUpRequest struct {
	Name         string `json:"name"`
	Age          int    `json:"age"`
	Manufacturer string `json:"manufacturer"`
	Position     string `json:"position"`
	Contact      string `json:"contact"`
	Email        string `json:"email"`
	Password     string `json:"-"`
}

type UpdateProfileRequest struct {
	UserID       string  `json:"user_id"`
	Name         *string `json:"name,omitempty"`
	Age          *int    `json:"age,omitempty"`
	Manufacturer *string `json:"manufacturer,omitempty"`
	Position     *string `json:"position,omitempty"`
	Contact      *string `json:"contact,omitempty"`
	Email        *string `json:"email,omitempty"`
}

type UserProfile struct {
	User                  domain.User                       `json:"user"`
	RegistrationsByStatus map[domain.RegistrationStatus]int `json:"registrations_by_status"`
	BookingsByStatus      map[domain.BookingStatus]int      `json:"bookings_by_status"`
	FeedbackCount         int                               `json:"feedback_count"`
	TotalSpent            float64                           `json:"total_spent"`
}

type UserService struct {
	state *State
}

func NewUserService(state *State) *UserService {
	return &UserService{state: state}
}

// SignUp creates an account and logs it in.
func (s *UserService) SignUp(ctx context.Context, req SignUpRequest) (*domain.User, error) {
	u := domain.User{
		Name:         strings.TrimSpace(req.Name),
		Age:          req.Age,
		Manufacturer: strings.TrimSpace(req.Manufacturer),
		Position:     strings.TrimSpace(req.Position),
		Contact:      strings.TrimSpace(req.Contact),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
	}
	if err := validateProfile(u); err != nil {
		return nil, err
	}
	if err := s.checkUnique("", u.Email, u.Contact); err != nil {
		return nil, err
	}
	if err := ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	cred, err := domain.NewCredential(req.Password)
	if err != nil {
		return nil, err
	}

	u.UserID = domain.NextUserID(s.state.Users)
	u.Credential = cred
	u.LoggedIn = true
	s.state.Users = append(s.state.Users, u)

	logger.WithContext(ctx).Info("user signed up", "user_id", u.UserID)
	return &u, s.state.SaveUsers(ctx)
}

// Login authenticates by user ID or email. A legacy plaintext credential is
// replaced by a hash on the first successful login.
func (s *UserService) Login(ctx context.Context, idOrEmail, password string) (*domain.User, error) {
	log := logger.WithContext(ctx)

	key := strings.TrimSpace(idOrEmail)
	i := -1
	for j, u := range s.state.Users {
		if domain.SameUser(u.UserID, key) || (key != "" && strings.EqualFold(u.Email, key)) {
			i = j
			break
		}
	}
	if i < 0 || !s.state.Users[i].Credential.Matches(password) {
		log.Info("login failed", "login", key)
		return nil, domain.ErrInvalidCredentials
	}

	u := &s.state.Users[i]
	if u.Credential.IsLegacy() {
		cred, err := domain.NewCredential(password)
		if err != nil {
			return nil, err
		}
		u.Credential = cred
		log.Info("legacy credential re-hashed", "user_id", u.UserID)
	}
	u.LoggedIn = true

	log.Info("user logged in", "user_id", u.UserID)
	out := *u
	return &out, s.state.SaveUsers(ctx)
}

func (s *UserService) Logout(ctx context.Context, userID string) error {
	i, err := s.current(userID)
	if err != nil {
		return err
	}
	s.state.Users[i].LoggedIn = false
	logger.WithContext(ctx).Info("user logged out", "user_id", s.state.Users[i].UserID)
	return s.state.SaveUsers(ctx)
}

// Profile returns the account with counts of everything it owns.
func (s *UserService) Profile(userID string) (*UserProfile, error) {
	i, err := s.current(userID)
	if err != nil {
		return nil, err
	}
	p := &UserProfile{
		User:                  s.state.Users[i],
		RegistrationsByStatus: make(map[domain.RegistrationStatus]int),
		BookingsByStatus:      make(map[domain.BookingStatus]int),
	}
	for _, r := range s.state.Registrations {
		if r.OwnedBy(userID) {
			p.RegistrationsByStatus[r.Status]++
		}
	}
	for _, b := range s.state.Bookings {
		if !b.OwnedBy(userID) {
			continue
		}
		p.BookingsByStatus[b.Status]++
		if b.IsLive() {
			p.TotalSpent += b.FinalCost
		}
	}
	for _, f := range s.state.Feedback {
		if domain.SameUser(f.SubmittedBy, userID) {
			p.FeedbackCount++
		}
	}
	return p, nil
}

// UpdateProfile changes account details. Registrations keep the organizer
// data they were created with.
func (s *UserService) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*domain.User, error) {
	i, err := s.current(req.UserID)
	if err != nil {
		return nil, err
	}
	next := s.state.Users[i]
	changed := false
	if req.Name != nil {
		next.Name = strings.TrimSpace(*req.Name)
		changed = true
	}
	if req.Age != nil {
		next.Age = *req.Age
		changed = true
	}
	if req.Manufacturer != nil {
		next.Manufacturer = strings.TrimSpace(*req.Manufacturer)
		changed = true
	}
	if req.Position != nil {
		next.Position = strings.TrimSpace(*req.Position)
		changed = true
	}
	if req.Contact != nil {
		next.Contact = strings.TrimSpace(*req.Contact)
		changed = true
	}
	if req.Email != nil {
		next.Email = strings.ToLower(strings.TrimSpace(*req.Email))
		changed = true
	}
	if !changed {
		return nil, fmt.Errorf("profile: %w", domain.ErrNoChange)
	}
	if err := validateProfile(next); err != nil {
		return nil, err
	}
	if err := s.checkUnique(next.UserID, next.Email, next.Contact); err != nil {
		return nil, err
	}

	s.state.Users[i] = next
	logger.WithContext(ctx).Info("profile updated", "user_id", next.UserID)
	return &next, s.state.SaveUsers(ctx)
}

func (s *UserService) ChangePassword(ctx context.Context, userID, current, next string) error {
	i, err := s.current(userID)
	if err != nil {
		return err
	}
	u := &s.state.Users[i]
	if !u.Credential.Matches(current) {
		return domain.ErrInvalidCredentials
	}
	if current == next {
		return fmt.Errorf("password: %w", domain.ErrNoChange)
	}
	if err := ValidatePassword(next); err != nil {
		return err
	}
	cred, err := domain.NewCredential(next)
	if err != nil {
		return err
	}
	u.Credential = cred

	logger.WithContext(ctx).Info("password changed", "user_id", u.UserID)
	return s.state.SaveUsers(ctx)
}

func (s *UserService) current(userID string) (int, error) {
	if err := requireUser(userID); err != nil {
		return -1, err
	}
	i := s.state.userIndex(userID)
	if i < 0 {
		return -1, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	return i, nil
}

// checkUnique rejects an email or contact already used by another account.
func (s *UserService) checkUnique(selfID, email, contact string) error {
	for _, u := range s.state.Users {
		if selfID != "" && domain.SameUser(u.UserID, selfID) {
			continue
		}
		if strings.EqualFold(u.Email, email) {
			return fmt.Errorf("email %s: %w", email, domain.ErrUserExists)
		}
		if u.Contact == contact {
			return fmt.Errorf("contact %s: %w", contact, domain.ErrUserExists)
		}
	}
	return nil
}

func validateProfile(u domain.User) error {
	if err := validateText("name", u.Name, "|"); err != nil {
		return err
	}
	if u.Age < minAge || u.Age > maxAge {
		return &domain.InputError{Field: "age", Value: fmt.Sprint(u.Age)}
	}
	if err := validateText("manufacturer", u.Manufacturer, "|"); err != nil {
		return err
	}
	if err := validateText("position", u.Position, "|"); err != nil {
		return err
	}
	if err := ValidatePhone(u.Contact); err != nil {
		return err
	}
	return ValidateEmail(u.Email)
}

// ValidateEmail accepts a lower-case address with text before the @ and a
// dot somewhere after it.
func ValidateEmail(email string) error {
	at := strings.Index(email, "@")
	dot := strings.LastIndex(email, ".")
	if at < 1 || dot < at+2 || dot == len(email)-1 ||
		strings.ContainsAny(email, " |") || email != strings.ToLower(email) {
		return &domain.InputError{Field: "email", Value: email}
	}
	return nil
}

// ValidatePhone accepts 9 to 12 digits, ignoring spaces and dashes.
func ValidatePhone(phone string) error {
	for n := minPhoneDigits; n <= maxPhoneDigits; n++ {
		if _, ok := domain.CleanDigits(phone, n); ok {
			return nil
		}
	}
	return &domain.InputError{Field: "contact number", Value: phone}
}

// ValidatePassword requires an upper-case letter, a lower-case letter and a
// digit.
func ValidatePassword(pw string) error {
	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if len(pw) < minPasswordLength || !upper || !lower || !digit || strings.Contains(pw, "|") {
		return &domain.InputError{Field: "password"}
	}
	return nil
}
