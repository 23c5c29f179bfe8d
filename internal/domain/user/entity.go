package user

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyName    = errors.New("user name cannot be empty")
	ErrInvalidEmail = errors.New("invalid email address")
)

type User struct {
	id    uuid.UUID
	name  string
	email string
}

// NewUser validates display name and email shape. Email uniqueness is
// enforced by the storage layer, not here.
func NewUser(name, email string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	email = strings.TrimSpace(email)
	if !isPlausibleEmail(email) {
		return nil, ErrInvalidEmail
	}
	return &User{
		id:    uuid.New(),
		name:  name,
		email: email,
	}, nil
}

func ReconstructUser(id uuid.UUID, name, email string) *User {
	return &User{id: id, name: name, email: email}
}

// Patch applies partial-update semantics: blank fields keep the current
// value, a non-blank email is re-validated.
func (u *User) Patch(name, email string) error {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		u.name = trimmed
	}
	if trimmed := strings.TrimSpace(email); trimmed != "" {
		if !isPlausibleEmail(trimmed) {
			return ErrInvalidEmail
		}
		u.email = trimmed
	}
	return nil
}

func isPlausibleEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return !strings.ContainsAny(email, " \t")
}

func (u *User) ID() uuid.UUID { return u.id }
func (u *User) Name() string  { return u.name }
func (u *User) Email() string { return u.email }
