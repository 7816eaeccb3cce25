package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "plain address", email: "alice@example.com"},
		{name: "with subdomain", email: "alice@mail.example.co.uk"},
		{name: "missing at", email: "alice.example.com", wantErr: true},
		{name: "missing dot", email: "alice@localhost", wantErr: true},
		{name: "display name form", email: "Alice <alice@example.com>", wantErr: true},
		{name: "empty", email: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "strong", password: "Sup3r!pass"},
		{name: "too short", password: "Ab1!", wantErr: true},
		{name: "no upper", password: "weak1pass!", wantErr: true},
		{name: "no lower", password: "WEAK1PASS!", wantErr: true},
		{name: "no digit", password: "Weakpass!", wantErr: true},
		{name: "no symbol", password: "Weak1pass", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Sup3r!pass")
	require.NoError(t, err)
	require.NotEqual(t, "Sup3r!pass", hash)

	assert.NoError(t, CheckPassword(hash, "Sup3r!pass"))
	assert.Error(t, CheckPassword(hash, "wrong"))
}
