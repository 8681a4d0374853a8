package communication

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEmailBuffer(t *testing.T) {
	raw, err := buildEmailBuffer(&Email{
		From:    "noreply@cardtime.app",
		To:      []string{"user@example.com"},
		Subject: "Reset your password",
		Text:    "Use the link within 30 minutes.",
		HTML:    "<p>Use the link within 30 minutes.</p>",
	})
	require.NoError(t, err)

	msg := raw.String()
	assert.Contains(t, msg, "From: noreply@cardtime.app\r\n")
	assert.Contains(t, msg, "To: user@example.com\r\n")
	assert.Contains(t, msg, "Subject: Reset your password\r\n")
	assert.Contains(t, msg, "multipart/alternative")
	assert.Contains(t, msg, "text/plain; charset=UTF-8")
	assert.Contains(t, msg, "text/html; charset=UTF-8")
	assert.Contains(t, msg, "Use the link within 30 minutes.")
}

func TestBuildEmailBufferTextOnly(t *testing.T) {
	raw, err := buildEmailBuffer(&Email{
		From:    "noreply@cardtime.app",
		To:      []string{"user@example.com"},
		Subject: "Hi",
		Text:    "plain",
	})
	require.NoError(t, err)
	assert.NotContains(t, raw.String(), "text/html")
}
