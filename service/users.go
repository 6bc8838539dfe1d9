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

// ConfirmationTokenTTL is how long an email confirmation link stays valid.
const ConfirmationTokenTTL = 3 * 24 * time.Hour

type users interface {
	RegisterUser(ctx context.Context, requestBody dto.RegisterUserRequestBody) (*data.User, error)
	ConfirmEmail(ctx context.Context, email string, token string) (*data.User, error)
	AssignRole(ctx context.Context, requestBody dto.AssignRoleRequestBody) (*data.User, error)
	SeedRolesAndAdmin(ctx context.Context) error
}

// RegisterUser service registers a new user with the User role and emails a
// confirmation link.
func (s *service) RegisterUser(ctx context.Context, requestBody dto.RegisterUserRequestBody) (*data.User, error) {
	v := validator.New()
	if v.Struct(requestBody); !v.Valid() {
		return nil, failedValidation(v)
	}
	user := &data.User{
		FullName:       requestBody.FullName,
		Email:          requestBody.Email,
		EmailConfirmed: false,
	}
	err := user.Password.Set(requestBody.Password)
	if err != nil {
		return nil, err
	}
	if data.ValidateUser(v, user); !v.Valid() {
		return nil, failedValidation(v)
	}
	token, err := s.repo.RegisterUser(ctx, user, data.RoleUser, ConfirmationTokenTTL, data.ScopeEmailConfirmation)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, fieldError("email", "a user with this email address already exists")
		default:
			return nil, err
		}
	}
	s.logger.PrintInfo("user registered", map[string]string{
		"email": user.Email,
		"time":  time.Now().UTC().Format(time.RFC3339),
	})
	query := url.Values{"email": {user.Email}, "token": {token.Plaintext}}
	s.sendEmail(user.Email, "user_welcome.tmpl", map[string]any{
		"FullName":        user.FullName,
		"ConfirmationURL": s.baseURL() + "/auth/confirm-email?" + query.Encode(),
	})
	return user, nil
}

// ConfirmEmail service marks the email of a user as confirmed when token is a
// live confirmation token issued to that user.
func (s *service) ConfirmEmail(ctx context.Context, email string, token string) (*data.User, error) {
	v := validator.New()
	v.Check(!validator.Blank(email), "email", "must be provided")
	v.Check(!validator.Blank(token), "token", "must be provided")
	if !v.Valid() {
		return nil, failedValidation(v)
	}
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	invalidToken := fieldError("token", "invalid or expired confirmation token")
	if data.ValidateTokenPlaintext(v, token); !v.Valid() {
		return nil, invalidToken
	}
	owner, err := s.repo.GetUserForToken(ctx, data.ScopeEmailConfirmation, token)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, invalidToken
		default:
			return nil, err
		}
	}
	if owner.ID != user.ID {
		return nil, invalidToken
	}
	user.EmailConfirmed = true
	err = s.repo.UpdateUser(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	err = s.repo.DeleteAllTokensForUser(ctx, data.ScopeEmailConfirmation, user.ID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// AssignRole service grants an existing role to a user.
func (s *service) AssignRole(ctx context.Context, requestBody dto.AssignRoleRequestBody) (*data.User, error) {
	v := validator.New()
	if v.Struct(requestBody); !v.Valid() {
		return nil, failedValidation(v)
	}
	exists, err := s.repo.RoleExists(ctx, requestBody.Role)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fieldError("role", "role does not exist")
	}
	user, err := s.repo.GetUserByEmail(ctx, requestBody.Email)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			s.logger.PrintWarning("role assignment for unknown user", map[string]string{"email": requestBody.Email})
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	err = s.repo.AddRoleForUser(ctx, user.ID, requestBody.Role)
	if err != nil {
		return nil, err
	}
	s.logger.PrintInfo("role assigned", map[string]string{
		"email": user.Email,
		"role":  requestBody.Role,
	})
	return s.repo.GetUserByID(ctx, user.ID)
}

// SeedRolesAndAdmin creates the known roles and, when an admin password is
// configured, a confirmed admin account. Running it again changes nothing.
func (s *service) SeedRolesAndAdmin(ctx context.Context) error {
	for _, role := range data.Roles() {
		if err := s.repo.CreateRole(ctx, role); err != nil {
			return err
		}
	}
	if s.config.Admin.Password == "" {
		s.logger.PrintWarning("no admin password configured, skipping admin seed", nil)
		return nil
	}
	admin, err := s.repo.GetUserByEmail(ctx, s.config.Admin.Email)
	switch {
	case errors.Is(err, repository.ErrRecordNotFound):
		admin = &data.User{
			FullName:       "Administrator",
			Email:          s.config.Admin.Email,
			EmailConfirmed: true,
		}
		if err := admin.Password.Set(s.config.Admin.Password); err != nil {
			return err
		}
		if err := s.repo.CreateUser(ctx, admin); err != nil {
			return err
		}
		s.logger.PrintInfo("admin account created", map[string]string{"email": admin.Email})
	case err != nil:
		return err
	}
	return s.repo.AddRoleForUser(ctx, admin.ID, data.RoleAdmin)
}
