package mailer

import (
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendBuildsHTMLMessage(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	m := New(Config{
		Host:     "smtp.example.com",
		Port:     "587",
		Username: "noreply@example.com",
		Password: "secret",
		From:     "noreply@example.com",
	})
	m.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err := m.Send("alice@example.com", "Hello", "<p>hi</p>")
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "noreply@example.com", gotFrom)
	assert.Equal(t, []string{"alice@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Hello")
	assert.Contains(t, string(gotMsg), "Content-Type: text/html")
	assert.Contains(t, string(gotMsg), "<p>hi</p>")
}

func TestSendRejectsEmptyRecipient(t *testing.T) {
	m := New(Config{})
	assert.Error(t, m.Send("", "Hello", "body"))
}

func TestResetEmailEmbedsLink(t *testing.T) {
	subject, body := ResetEmail("http://localhost:5500/reset-password/tok123")

	assert.Equal(t, "Password Reset Request", subject)
	assert.Contains(t, body, `href="http://localhost:5500/reset-password/tok123"`)
}
