package service

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/emzola/bookstore/data"
	"github.com/emzola/bookstore/data/dto"
	"github.com/emzola/bookstore/internal/validator"
	"github.com/emzola/bookstore/repository"
)

// PasswordResetTokenTTL is how long a password reset token stays valid.
const PasswordResetTokenTTL = 30 * time.Minute

type tokens interface {
	Login(ctx context.Context, requestBody dto.LoginRequestBody) (string, error)
	CreatePasswordResetToken(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, requestBody dto.ResetUserPasswordRequestBody) error
	Authenticate(tokenString string) (*data.User, error)
}

// Login service checks the credentials of a confirmed user and returns a
// signed access token. Every failure is reported as ErrInvalidCredentials.
func (s *service) Login(ctx context.Context, requestBody dto.LoginRequestBody) (string, error) {
	v := validator.New()
	if v.Struct(requestBody); !v.Valid() {
		return "", failedValidation(v)
	}
	user, err := s.repo.GetUserByEmail(ctx, requestBody.Email)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			s.logger.PrintWarning("login attempt with invalid email", map[string]string{"email": requestBody.Email})
			return "", ErrInvalidCredentials
		default:
			return "", err
		}
	}
	if !user.EmailConfirmed {
		s.logger.PrintWarning("login attempt with unconfirmed email", map[string]string{"email": requestBody.Email})
		return "", ErrInvalidCredentials
	}
	match, err := user.Password.Matches(requestBody.Password)
	if err != nil {
		return "", err
	}
	if !match {
		s.logger.PrintWarning("login attempt with invalid password", map[string]string{"email": requestBody.Email})
		return "", ErrInvalidCredentials
	}
	token, jti, err := s.issuer.Generate(user)
	if err != nil {
		return "", err
	}
	s.logger.PrintInfo("user logged in", map[string]string{"email": user.Email, "jti": jti})
	return token, nil
}

// Authenticate resolves the principal an access token was issued to.
func (s *service) Authenticate(tokenString string) (*data.User, error) {
	user, err := s.issuer.Parse(tokenString)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// CreatePasswordResetToken service emails a password reset token. Unknown
// or malformed addresses are logged and otherwise ignored so that callers
// cannot tell which accounts exist.
func (s *service) CreatePasswordResetToken(ctx context.Context, email string) error {
	v := validator.New()
	if data.ValidateEmail(v, email); !v.Valid() {
		s.logger.PrintWarning("password reset requested for invalid email", map[string]string{"email": email})
		return nil
	}
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			s.logger.PrintWarning("password reset requested for non-existing user", map[string]string{"email": email})
			return nil
		default:
			return err
		}
	}
	token, err := s.repo.CreateNewToken(ctx, user.ID, PasswordResetTokenTTL, data.ScopePasswordReset)
	if err != nil {
		return err
	}
	query := url.Values{"email": {user.Email}, "token": {token.Plaintext}}
	s.sendEmail(user.Email, "token_password_reset.tmpl", map[string]any{
		"ResetURL": s.baseURL() + "/reset-password?" + query.Encode(),
		"Token":    token.Plaintext,
	})
	return nil
}

// ResetPassword service sets a new password when the token is a live reset
// token issued to the user with the given email.
func (s *service) ResetPassword(ctx context.Context, requestBody dto.ResetUserPasswordRequestBody) error {
	v := validator.New()
	if v.Struct(requestBody); !v.Valid() {
		return failedValidation(v)
	}
	user, err := s.repo.GetUserByEmail(ctx, requestBody.Email)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			s.logger.PrintWarning("password reset for non-existing user", map[string]string{"email": requestBody.Email})
			return ErrBadRequest
		default:
			return err
		}
	}
	invalidToken := fieldError("token", "invalid or expired password reset token")
	if data.ValidateTokenPlaintext(v, requestBody.Token); !v.Valid() {
		return invalidToken
	}
	owner, err := s.repo.GetUserForToken(ctx, data.ScopePasswordReset, requestBody.Token)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return invalidToken
		default:
			return err
		}
	}
	if owner.ID != user.ID {
		return invalidToken
	}
	err = user.Password.Set(requestBody.NewPassword)
	if err != nil {
		return err
	}
	if data.ValidatePasswordPlaintext(v, requestBody.NewPassword); !v.Valid() {
		return failedValidation(v)
	}
	err = s.repo.UpdateUser(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return ErrEditConflict
		default:
			return err
		}
	}
	err = s.repo.DeleteAllTokensForUser(ctx, data.ScopePasswordReset, user.ID)
	if err != nil {
		return err
	}
	s.logger.PrintInfo("password reset", map[string]string{
		"email": user.Email,
		"time":  time.Now().UTC().Format(time.RFC3339),
	})
	return nil
}
