// Package mailer delivers transactional mail over SMTP.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Config carries SMTP connection settings.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Mailer sends HTML mail through a single SMTP relay.
type Mailer struct {
	cfg  Config
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// New returns a Mailer using the provided configuration.
func New(cfg Config) *Mailer {
	return &Mailer{cfg: cfg, send: smtp.SendMail}
}

// Send delivers a single HTML message to one recipient.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	if to == "" {
		return fmt.Errorf("mailer: empty recipient")
	}

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		htmlBody,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)
	return m.send(addr, auth, m.cfg.From, []string{to}, []byte(msg))
}

// ResetEmail renders the password-reset message body for a reset link.
func ResetEmail(resetURL string) (subject, body string) {
	subject = "Password Reset Request"
	body = fmt.Sprintf(`<h3>Password Reset</h3>
<p>Click the link below to reset your password:</p>
<a href="%s">%s</a>
<p>This link will expire in 10 minutes.</p>`, resetURL, resetURL)
	return subject, body
}
