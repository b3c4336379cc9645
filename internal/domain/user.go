package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of user roles. Admin satisfies every role check.
type Role string

// Possible role values.
const (
	RoleLearner Role = "Learner"
	RoleCreator Role = "Creator"
	RoleAdmin   Role = "Admin"
)

// Common validation errors for User.
var (
	ErrEmptyUserID   = errors.New("user ID cannot be empty")
	ErrEmptyEmail    = errors.New("email cannot be empty")
	ErrInvalidEmail  = errors.New("invalid email format")
	ErrEmptyPassword = errors.New("password cannot be empty")
	ErrInvalidRole   = errors.New("invalid role")
)

// Satisfies reports whether the role meets the given requirement.
// Admin satisfies every requirement; this is the single authorization
// predicate used across the API, with no per-route exceptions.
func (r Role) Satisfies(required Role) bool {
	return r == required || r == RoleAdmin
}

// Valid reports whether the role is one of the known role values.
func (r Role) Valid() bool {
	switch r {
	case RoleLearner, RoleCreator, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole converts a string into a Role.
// Returns ErrInvalidRole if the string is not a known role.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.Valid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// User represents a registered user of the service. Role starts as Learner
// and is promoted to Creator only through an approved creator application.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext, only set during registration; hashed before storage
	HashedPassword string    `json:"-"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new Learner with the given email and password.
// The caller is responsible for hashing the password before storing the user.
func NewUser(email, password string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Email:     email,
		Password:  password,
		Role:      RoleLearner,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if u.Password == "" && u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	if !u.Role.Valid() {
		return ErrInvalidRole
	}

	return nil
}

// validEmailFormat performs a basic shape check: a non-edge "@" followed by
// a domain containing a non-edge dot. Full RFC 5322 validation is left to
// the request layer's validator.
func validEmailFormat(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
