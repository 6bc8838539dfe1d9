package data

import (
	"errors"
	"strings"
	"time"

	"github.com/emzola/bookstore/internal/validator"
	"golang.org/x/crypto/bcrypt"
)

// Roles a user can hold.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// Roles returns every role known to the application.
func Roles() []string {
	return []string{RoleAdmin, RoleUser}
}

var AnonymousUser = &User{}

// Check if a user instance is the anonymous user.
func (u *User) IsAnonymous() bool {
	return u == AnonymousUser
}

// User defines a user model. When built from an access token only ID, Email,
// FullName and Roles are populated.
type User struct {
	ID             int64     `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Password       password  `json:"-"`
	EmailConfirmed bool      `json:"email_confirmed"`
	Roles          []string  `json:"roles"`
	Version        int32     `json:"-"`
}

// HasRole reports whether principal holds role. Anonymous and nil principals
// hold no roles.
func HasRole(principal *User, role string) bool {
	if principal == nil || principal.IsAnonymous() {
		return false
	}
	for _, r := range principal.Roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

// password defines the plaintext and hashed versions of a user's password.
// The plaintext field is a *pointer* to a string, so that we're able
// to distinguish between a plaintext password not being present in the struct at
// all, versus a plaintext password which is the empty string.
type password struct {
	Plaintext *string
	Hash      []byte
}

// Set calculates the bcrypt hash of a plaintext password.
func (p *password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Plaintext = &plaintextPassword
	p.Hash = hash
	return nil
}

// Matches checks whether the provided plaintext password matches the hashed
// password stored in the User model, returning true if it matches and false otherwise.
func (p *password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.Hash, []byte(plaintextPassword))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}
	return true, nil
}

func ValidateEmail(v *validator.Validator, email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(validator.Matches(email, validator.EmailRX), "email", "must be a valid email address")
}

func ValidatePasswordPlaintext(v *validator.Validator, password string) {
	v.Check(password != "", "password", "must be provided")
	v.Check(len(password) >= 6, "password", "must be at least 6 bytes long")
	v.Check(len(password) <= 72, "password", "must not be more than 72 bytes long")
	v.Check(validator.StrongPassword(password), "password", "must contain an uppercase letter, a lowercase letter, a digit and a non-alphanumeric character")
}

func ValidateRole(v *validator.Validator, role string) {
	v.Check(role != "", "role", "must be provided")
	v.Check(validator.In(role, Roles()...), "role", "must be one of: "+strings.Join(Roles(), ", "))
}

func ValidateUser(v *validator.Validator, user *User) {
	v.Check(!validator.Blank(user.FullName), "fullName", "must be provided")
	v.Check(len(user.FullName) <= 500, "fullName", "must not be more than 500 bytes long")
	ValidateEmail(v, user.Email)
	if user.Password.Plaintext != nil {
		ValidatePasswordPlaintext(v, *user.Password.Plaintext)
	}
	if user.Password.Hash == nil {
		panic("missing password hash for user")
	}
}
