package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	msg, err := Render("user_welcome.tmpl", map[string]any{
		"FullName":        "Ada Reader",
		"ConfirmationURL": "http://localhost:4000/auth/confirm-email?email=ada%40example.com&token=ABC",
	})
	require.NoError(t, err)
	assert.Equal(t, "Email Confirmation", msg.Subject)
	assert.Contains(t, msg.PlainBody, "Hi Ada Reader,")
	assert.Contains(t, msg.PlainBody, "token=ABC")
	assert.Contains(t, msg.HTMLBody, `href="http://localhost:4000/auth/confirm-email?email=ada%40example.com`)
	assert.Contains(t, msg.HTMLBody, "token=ABC")
}

func TestRenderPasswordReset(t *testing.T) {
	msg, err := Render("token_password_reset.tmpl", map[string]any{
		"ResetURL": "http://localhost:4000/reset-password?token=XYZ",
		"Token":    "XYZ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Password Reset", msg.Subject)
	assert.Contains(t, msg.PlainBody, "XYZ")
	assert.Contains(t, msg.HTMLBody, "<code>XYZ</code>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := Render("missing.tmpl", nil)
	assert.Error(t, err)
}
