package email

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/platform/config"
)

func TestNewReturnsNoopWhenDisabled(t *testing.T) {
	mailer := New(config.Config{EmailEnabled: false, SMTPHost: "smtp.example.com"})
	_, ok := mailer.(noopMailer)
	require.True(t, ok)
	assert.NoError(t, mailer.Send(context.Background(), "a@example.com", "b@example.com", "s", "b"))
}

func TestBuildMessageHeaders(t *testing.T) {
	msg := buildMessage("hr@example.com", "a@example.com, b@example.com", "Leave approved", "Enjoy")
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Leave approved"}, msg.GetHeader("Subject"))

	var raw bytes.Buffer
	_, err := msg.WriteTo(&raw)
	require.NoError(t, err)
	assert.Contains(t, raw.String(), "Enjoy")
}
