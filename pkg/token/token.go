// Package token signs and validates the JWTs used by the API: short-lived
// access tokens, long-lived refresh tokens and one-shot password-reset
// tokens, each under its own secret.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims is the custom JWT payload shared by all three token kinds.
type Claims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email,omitempty"`
	SessionID string `json:"sid,omitempty"`
	jwt.RegisteredClaims
}

// Config carries the secrets and lifetimes for each token purpose.
type Config struct {
	AccessSecret  string
	RefreshSecret string
	ResetSecret   string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	ResetTTL      time.Duration
	Issuer        string
}

// Manager issues and verifies the service's JWTs.
type Manager struct {
	cfg Config
}

// NewManager returns a configured Manager, applying the original token
// lifetimes (15m access, 7d refresh, 10m reset) as defaults.
func NewManager(cfg Config) *Manager {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = 10 * time.Minute
	}
	return &Manager{cfg: cfg}
}

// RefreshTTL exposes the refresh lifetime so sessions and cookies can
// share it.
func (m *Manager) RefreshTTL() time.Duration {
	return m.cfg.RefreshTTL
}

// NewAccessToken issues a signed short-lived token for a user.
func (m *Manager) NewAccessToken(userID, email string) (string, time.Time, error) {
	return m.sign(Claims{UserID: userID, Email: email}, m.cfg.AccessSecret, m.cfg.AccessTTL)
}

// NewRefreshToken issues a long-lived token bound to a revocable session.
func (m *Manager) NewRefreshToken(userID, sessionID string) (string, time.Time, error) {
	return m.sign(Claims{UserID: userID, SessionID: sessionID}, m.cfg.RefreshSecret, m.cfg.RefreshTTL)
}

// NewResetToken issues a short-lived password-reset token.
func (m *Manager) NewResetToken(userID, email string) (string, time.Time, error) {
	return m.sign(Claims{UserID: userID, Email: email}, m.cfg.ResetSecret, m.cfg.ResetTTL)
}

// VerifyAccessToken parses and validates an access token.
func (m *Manager) VerifyAccessToken(tokenString string) (*Claims, error) {
	return m.verify(tokenString, m.cfg.AccessSecret)
}

// VerifyRefreshToken parses and validates a refresh token.
func (m *Manager) VerifyRefreshToken(tokenString string) (*Claims, error) {
	return m.verify(tokenString, m.cfg.RefreshSecret)
}

// VerifyResetToken parses and validates a password-reset token.
func (m *Manager) VerifyResetToken(tokenString string) (*Claims, error) {
	return m.verify(tokenString, m.cfg.ResetSecret)
}

func (m *Manager) sign(claims Claims, secret string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    m.cfg.Issuer,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (m *Manager) verify(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
