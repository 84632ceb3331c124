package user

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrEmptyName = errors.New("user name cannot be empty")

type User struct {
	id    uuid.UUID
	name  string
	email Email
}

func NewUser(name string, email Email) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &User{
		id:    uuid.New(),
		name:  name,
		email: email,
	}, nil
}

func ReconstructUser(id uuid.UUID, name string, email Email) *User {
	return &User{id: id, name: name, email: email}
}

// Patch applies a partial update; nil fields stay untouched.
func (u *User) Patch(name *string, email *Email) error {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return ErrEmptyName
		}
		u.name = trimmed
	}
	if email != nil {
		u.email = *email
	}
	return nil
}

func (u *User) ID() uuid.UUID { return u.id }
func (u *User) Name() string  { return u.name }
func (u *User) Email() Email  { return u.email }
