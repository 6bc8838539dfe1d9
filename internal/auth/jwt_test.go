package auth

import (
	"testing"
	"time"

	"github.com/emzola/bookstore/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *data.User {
	return &data.User{ID: 42, Email: "reader@example.com", FullName: "Ada Reader", Roles: []string{data.RoleUser}}
}

func TestIssuerRoundTrip(t *testing.T) {
	issuer := NewIssuer("test-secret", "bookstore", "bookstore-clients", time.Hour)
	token, jti, err := issuer.Generate(testUser())
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, jti)

	principal, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), principal.ID)
	assert.Equal(t, "reader@example.com", principal.Email)
	assert.True(t, data.HasRole(principal, data.RoleUser))
	assert.False(t, data.HasRole(principal, data.RoleAdmin))
}

func TestIssuerUniqueIDs(t *testing.T) {
	issuer := NewIssuer("test-secret", "bookstore", "bookstore-clients", time.Hour)
	_, jti1, err := issuer.Generate(testUser())
	require.NoError(t, err)
	_, jti2, err := issuer.Generate(testUser())
	require.NoError(t, err)
	assert.NotEqual(t, jti1, jti2)
}

func TestIssuerRejects(t *testing.T) {
	issuer := NewIssuer("test-secret", "bookstore", "bookstore-clients", time.Hour)
	token, _, err := issuer.Generate(testUser())
	require.NoError(t, err)

	tests := []struct {
		name   string
		issuer *Issuer
		token  string
	}{
		{"garbage", issuer, "invalid.token.here"},
		{"wrong key", NewIssuer("other-secret", "bookstore", "bookstore-clients", time.Hour), token},
		{"wrong issuer", NewIssuer("test-secret", "someone-else", "bookstore-clients", time.Hour), token},
		{"wrong audience", NewIssuer("test-secret", "bookstore", "other-clients", time.Hour), token},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.issuer.Parse(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}

	expired := NewIssuer("test-secret", "bookstore", "bookstore-clients", -time.Minute)
	token, _, err = expired.Generate(testUser())
	require.NoError(t, err)
	_, err = expired.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
