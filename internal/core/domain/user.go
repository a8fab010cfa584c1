package domain

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// NormalizeUserID normalizes a user identifier for ownership checks.
func NormalizeUserID(id string) string {
	return NormalizeID(id)
}

// SameUser compares two user identifiers after normalization.
func SameUser(a, b string) bool {
	na := NormalizeUserID(a)
	return na != "" && na == NormalizeUserID(b)
}

// User is a registered organizer account.
type User struct {
	UserID       string
	Name         string
	Age          int
	Contact      string
	Email        string
	Manufacturer string
	Position     string
	Credential   Credential
	LoggedIn     bool
}

// Info returns the organizer snapshot embedded into registrations.
func (u User) Info() OrganizerInfo {
	return OrganizerInfo{
		UserID:   u.UserID,
		Name:     u.Name,
		Contact:  u.Contact,
		Email:    u.Email,
		Position: u.Position,
	}
}

// OrganizerInfo is the organizer data copied into every registration.
type OrganizerInfo struct {
	UserID   string
	Name     string
	Contact  string
	Email    string
	Position string
}

var credentialCost = bcrypt.DefaultCost

// Credential is an opaque password value. New credentials are bcrypt
// hashes; values loaded from older files may still be plaintext and are
// reported as legacy so callers can re-hash them after a successful login.
type Credential struct {
	stored string
	legacy bool
}

func NewCredential(plain string) (Credential, error) {
	if plain == "" {
		return Credential{}, fmt.Errorf("empty password: %w", ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), credentialCost)
	if err != nil {
		return Credential{}, fmt.Errorf("hash password: %w", err)
	}
	return Credential{stored: string(hash)}, nil
}

// CredentialFromStored wraps a value read back from storage.
func CredentialFromStored(s string) Credential {
	if s == "" {
		return Credential{}
	}
	if _, err := bcrypt.Cost([]byte(s)); err == nil {
		return Credential{stored: s}
	}
	return Credential{stored: s, legacy: true}
}

func (c Credential) Matches(plain string) bool {
	if c.stored == "" {
		return false
	}
	if c.legacy {
		return subtle.ConstantTimeCompare([]byte(c.stored), []byte(plain)) == 1
	}
	return bcrypt.CompareHashAndPassword([]byte(c.stored), []byte(plain)) == nil
}

func (c Credential) Stored() string { return c.stored }

func (c Credential) IsLegacy() bool { return c.legacy }

func (c Credential) IsZero() bool { return c.stored == "" }
