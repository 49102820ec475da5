package entities

import (
	"strings"

	apperrors "github.com/stayhive/backend/pkg/errors"
)

const nameMaxLen = 50

// User represents an account that can own places and author reviews.
// The password credential is carried opaque; hashing and verification
// belong to the identity layer and never happen here.
type User struct {
	Base
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	Email     string `json:"email" db:"email"`
	Password  string `json:"-" db:"password"`
	IsAdmin   bool   `json:"is_admin" db:"is_admin"`
}

// NewUser validates every field before any assignment; a violation aborts the
// whole construction.
func NewUser(firstName, lastName, email, password string, isAdmin bool) (*User, error) {
	first, err := requiredString("first_name", firstName, nameMaxLen)
	if err != nil {
		return nil, err
	}
	last, err := requiredString("last_name", lastName, nameMaxLen)
	if err != nil {
		return nil, err
	}
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	return &User{
		Base:      newBase(),
		FirstName: first,
		LastName:  last,
		Email:     normalized,
		Password:  password,
		IsAdmin:   isAdmin,
	}, nil
}

func normalizeEmail(email string) (string, error) {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return "", apperrors.NewValidationError("email", "cannot be empty")
	}
	if !emailPattern.MatchString(trimmed) {
		return "", apperrors.NewValidationError("email", "invalid email format")
	}
	return strings.ToLower(trimmed), nil
}

// SetFirstName validates and updates the first name.
func (u *User) SetFirstName(value string) error {
	first, err := requiredString("first_name", value, nameMaxLen)
	if err != nil {
		return err
	}
	u.FirstName = first
	u.touch()
	return nil
}

// SetLastName validates and updates the last name.
func (u *User) SetLastName(value string) error {
	last, err := requiredString("last_name", value, nameMaxLen)
	if err != nil {
		return err
	}
	u.LastName = last
	u.touch()
	return nil
}

// SetEmail validates, normalizes and updates the email address.
func (u *User) SetEmail(value string) error {
	normalized, err := normalizeEmail(value)
	if err != nil {
		return err
	}
	u.Email = normalized
	u.touch()
	return nil
}

// SetPassword replaces the opaque credential.
func (u *User) SetPassword(value string) error {
	u.Password = value
	u.touch()
	return nil
}

// SetIsAdmin updates the admin flag.
func (u *User) SetIsAdmin(value bool) error {
	u.IsAdmin = value
	u.touch()
	return nil
}

// Apply validates the whole field map before mutating anything, so a failing
// field leaves the user untouched. Unknown and immutable fields are ignored.
func (u *User) Apply(fields map[string]any) error {
	var setters []func() error

	if v, ok, err := StringField(fields, "first_name"); err != nil {
		return err
	} else if ok {
		if _, err := requiredString("first_name", v, nameMaxLen); err != nil {
			return err
		}
		setters = append(setters, func() error { return u.SetFirstName(v) })
	}
	if v, ok, err := StringField(fields, "last_name"); err != nil {
		return err
	} else if ok {
		if _, err := requiredString("last_name", v, nameMaxLen); err != nil {
			return err
		}
		setters = append(setters, func() error { return u.SetLastName(v) })
	}
	if v, ok, err := StringField(fields, "email"); err != nil {
		return err
	} else if ok {
		if _, err := normalizeEmail(v); err != nil {
			return err
		}
		setters = append(setters, func() error { return u.SetEmail(v) })
	}
	if v, ok, err := StringField(fields, "password"); err != nil {
		return err
	} else if ok {
		setters = append(setters, func() error { return u.SetPassword(v) })
	}
	if v, ok, err := BoolField(fields, "is_admin"); err != nil {
		return err
	} else if ok {
		setters = append(setters, func() error { return u.SetIsAdmin(v) })
	}

	for _, set := range setters {
		if err := set(); err != nil {
			return err
		}
	}
	u.touch()
	return nil
}

// Clone returns an independent copy.
func (u *User) Clone() Entity {
	clone := *u
	return &clone
}

// Attribute exposes lookup fields for repository attribute queries.
func (u *User) Attribute(name string) (any, bool) {
	switch name {
	case "email":
		return u.Email, true
	case "first_name":
		return u.FirstName, true
	case "last_name":
		return u.LastName, true
	default:
		return nil, false
	}
}
