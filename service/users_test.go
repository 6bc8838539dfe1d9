package service

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/emzola/bookstore/config"
	"github.com/emzola/bookstore/data"
	"github.com/emzola/bookstore/data/dto"
	"github.com/emzola/bookstore/internal/jsonlog"
	"github.com/emzola/bookstore/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "Pa$$w0rd"

func register(t *testing.T, env *testEnv, email string) *data.User {
	t.Helper()
	user, err := env.svc.RegisterUser(context.Background(), dto.RegisterUserRequestBody{
		FullName: "Ada Reader",
		Email:    email,
		Password: testPassword,
	})
	require.NoError(t, err)
	env.wg.Wait()
	return user
}

func TestRegisterUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := register(t, env, "ada@example.com")
	assert.Equal(t, []string{data.RoleUser}, user.Roles)
	assert.False(t, user.EmailConfirmed)

	mail := env.mailer.last(t)
	assert.Equal(t, "ada@example.com", mail.recipient)
	assert.Equal(t, "user_welcome.tmpl", mail.templateFile)
	assert.Len(t, tokenFrom(t, mail, "ConfirmationURL"), 26)

	_, err := env.svc.RegisterUser(ctx, dto.RegisterUserRequestBody{FullName: "Copy", Email: "ADA@example.com", Password: testPassword})
	assert.Contains(t, validationErrors(t, err), "email")

	_, err = env.svc.RegisterUser(ctx, dto.RegisterUserRequestBody{FullName: "Weak", Email: "weak@example.com", Password: "password"})
	assert.Contains(t, validationErrors(t, err), "password")

	_, err = env.svc.RegisterUser(ctx, dto.RegisterUserRequestBody{Email: "not-an-email", Password: testPassword})
	errs := validationErrors(t, err)
	assert.Contains(t, errs, "fullName")
	assert.Contains(t, errs, "email")
}

func TestRegisterUserLeavesNothingBehindOnFailure(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory(nil)
	mailer := &recordingMailer{}
	var wg sync.WaitGroup
	svc := New(config.Config{}, &wg, jsonlog.New(io.Discard, jsonlog.LevelInfo), repo, mailer, nil)
	body := dto.RegisterUserRequestBody{FullName: "Ada Reader", Email: "ada@example.com", Password: testPassword}

	// No roles exist yet, so the User role cannot be granted.
	_, err := svc.RegisterUser(ctx, body)
	require.Error(t, err)
	wg.Wait()
	assert.Zero(t, mailer.count())
	_, err = repo.GetUserByEmail(ctx, body.Email)
	assert.ErrorIs(t, err, repository.ErrRecordNotFound)

	require.NoError(t, repo.CreateRole(ctx, data.RoleUser))
	user, err := svc.RegisterUser(ctx, body)
	require.NoError(t, err, "retrying with the same email must not report a duplicate")
	wg.Wait()
	assert.Equal(t, []string{data.RoleUser}, user.Roles)
	assert.Equal(t, 1, mailer.count())
}

func TestConfirmEmailAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	register(t, env, "ada@example.com")
	token := tokenFrom(t, env.mailer.last(t), "ConfirmationURL")
	login := dto.LoginRequestBody{Email: "ada@example.com", Password: testPassword}

	_, err := env.svc.Login(ctx, login)
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unconfirmed users cannot log in")

	_, err = env.svc.ConfirmEmail(ctx, "", token)
	assert.Contains(t, validationErrors(t, err), "email")

	_, err = env.svc.ConfirmEmail(ctx, "nobody@example.com", token)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = env.svc.ConfirmEmail(ctx, "ada@example.com", "AAAAAAAAAAAAAAAAAAAAAAAAAA")
	assert.Contains(t, validationErrors(t, err), "token")

	user, err := env.svc.ConfirmEmail(ctx, "ada@example.com", token)
	require.NoError(t, err)
	assert.True(t, user.EmailConfirmed)

	_, err = env.svc.ConfirmEmail(ctx, "ada@example.com", token)
	assert.Contains(t, validationErrors(t, err), "token", "tokens are single use")

	_, err = env.svc.Login(ctx, dto.LoginRequestBody{Email: "ada@example.com", Password: "Wr0ng!pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.svc.Login(ctx, dto.LoginRequestBody{Email: "ghost@example.com", Password: testPassword})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	accessToken, err := env.svc.Login(ctx, login)
	require.NoError(t, err)
	principal, err := env.svc.Authenticate(accessToken)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", principal.Email)
	assert.True(t, data.HasRole(principal, data.RoleUser))
	assert.False(t, data.HasRole(principal, data.RoleAdmin))

	_, err = env.svc.Authenticate(accessToken + "x")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSeedRolesAndAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.svc.SeedRolesAndAdmin(ctx))

	accessToken, err := env.svc.Login(ctx, dto.LoginRequestBody{Email: "admin@bookstore.com", Password: "Adm1n!pass"})
	require.NoError(t, err)
	principal, err := env.svc.Authenticate(accessToken)
	require.NoError(t, err)
	assert.True(t, data.HasRole(principal, data.RoleAdmin))
}

func TestAssignRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	register(t, env, "ada@example.com")

	user, err := env.svc.AssignRole(ctx, dto.AssignRoleRequestBody{Email: "ada@example.com", Role: data.RoleAdmin})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{data.RoleAdmin, data.RoleUser}, user.Roles)

	_, err = env.svc.AssignRole(ctx, dto.AssignRoleRequestBody{Email: "ghost@example.com", Role: data.RoleAdmin})
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = env.svc.AssignRole(ctx, dto.AssignRoleRequestBody{Email: "ada@example.com", Role: "Guest"})
	assert.Contains(t, validationErrors(t, err), "role")
}

func TestPasswordReset(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	register(t, env, "ada@example.com")
	confirmation := tokenFrom(t, env.mailer.last(t), "ConfirmationURL")
	_, err := env.svc.ConfirmEmail(ctx, "ada@example.com", confirmation)
	require.NoError(t, err)
	sent := env.mailer.count()

	require.NoError(t, env.svc.CreatePasswordResetToken(ctx, "ghost@example.com"))
	require.NoError(t, env.svc.CreatePasswordResetToken(ctx, "not an email"))
	env.wg.Wait()
	assert.Equal(t, sent, env.mailer.count(), "unknown addresses get no email")

	require.NoError(t, env.svc.CreatePasswordResetToken(ctx, "ada@example.com"))
	env.wg.Wait()
	mail := env.mailer.last(t)
	assert.Equal(t, "token_password_reset.tmpl", mail.templateFile)
	token, _ := mail.data["Token"].(string)
	require.Len(t, token, 26)
	assert.Equal(t, token, tokenFrom(t, mail, "ResetURL"))

	newPassword := "N3w!secret"
	err = env.svc.ResetPassword(ctx, dto.ResetUserPasswordRequestBody{Email: "ghost@example.com", Token: token, NewPassword: newPassword})
	assert.ErrorIs(t, err, ErrBadRequest)

	err = env.svc.ResetPassword(ctx, dto.ResetUserPasswordRequestBody{Email: "ada@example.com", Token: token, NewPassword: "short"})
	assert.Contains(t, validationErrors(t, err), "newPassword")

	err = env.svc.ResetPassword(ctx, dto.ResetUserPasswordRequestBody{Email: "ada@example.com", Token: token, NewPassword: newPassword})
	require.NoError(t, err)

	err = env.svc.ResetPassword(ctx, dto.ResetUserPasswordRequestBody{Email: "ada@example.com", Token: token, NewPassword: newPassword})
	assert.Contains(t, validationErrors(t, err), "token")

	_, err = env.svc.Login(ctx, dto.LoginRequestBody{Email: "ada@example.com", Password: testPassword})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = env.svc.Login(ctx, dto.LoginRequestBody{Email: "ada@example.com", Password: newPassword})
	require.NoError(t, err)
}
