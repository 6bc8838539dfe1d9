package data

import (
	"time"

	"github.com/emzola/bookstore/internal/validator"
)

// Token scopes.
const (
	ScopeEmailConfirmation = "email-confirmation"
	ScopePasswordReset     = "password-reset"
)

// Token defines a single-use token sent to a user by email.
type Token struct {
	Plaintext string    `json:"token"`
	Hash      []byte    `json:"-"`
	UserID    int64     `json:"-"`
	Expiry    time.Time `json:"expiry"`
	Scope     string    `json:"-"`
}

func ValidateTokenPlaintext(v *validator.Validator, tokenPlaintext string) {
	v.Check(tokenPlaintext != "", "token", "must be provided")
	v.Check(len(tokenPlaintext) == 26, "token", "must be 26 bytes long")
}
