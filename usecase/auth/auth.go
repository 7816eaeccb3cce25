// Package auth implements signup, login, token refresh and the password
// reset flow.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillswap/backend/domain"
	"github.com/skillswap/backend/pkg/mailer"
	"github.com/skillswap/backend/pkg/token"
	"github.com/skillswap/backend/repository"
	"github.com/skillswap/backend/usecase"
)

type UseCase struct {
	users        repository.UserRepository
	sessions     repository.SessionRepository
	tokens       *token.Manager
	mail         usecase.MailSender
	resetURLBase string
	logger       *zap.Logger
}

func New(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	tokens *token.Manager,
	mail usecase.MailSender,
	resetURLBase string,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:        users,
		sessions:     sessions,
		tokens:       tokens,
		mail:         mail,
		resetURLBase: resetURLBase,
		logger:       logger,
	}
}

// TokenPair is what a successful signup or login hands back: the access
// token for the Authorization header and the refresh token for the
// httpOnly cookie.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// Signup validates credentials, stores the new user and issues tokens.
func (uc *UseCase) Signup(ctx context.Context, email, password, name string) (*domain.User, *TokenPair, error) {
	user, err := NewUser(email, password, name, false)
	if err != nil {
		return nil, nil, err
	}

	if err := uc.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	pair, err := uc.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login verifies the password and issues a fresh token pair.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error) {
	if email == "" || password == "" {
		return nil, nil, domain.NewError(domain.ErrCodeInvalid, "all fields must be filled")
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, nil, domain.NewError(domain.ErrCodeUnauthorized, "email not registered")
		}
		return nil, nil, err
	}

	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return nil, nil, domain.NewError(domain.ErrCodeUnauthorized, "incorrect password")
	}

	pair, err := uc.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh exchanges a valid, unrevoked refresh token for a new access token.
func (uc *UseCase) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := uc.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", domain.WrapError(domain.ErrCodeUnauthorized, "invalid or expired refresh token", err)
	}

	session, err := uc.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return "", domain.NewError(domain.ErrCodeUnauthorized, "invalid or expired refresh token")
	}
	if session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, session.ID)
		return "", domain.NewError(domain.ErrCodeUnauthorized, "invalid or expired refresh token")
	}

	user, err := uc.users.GetByID(ctx, session.UserID)
	if err != nil {
		return "", err
	}

	access, _, err := uc.tokens.NewAccessToken(user.ID, user.Email)
	return access, err
}

// Logout revokes the session behind the refresh token. A bad token is
// not an error: the cookie is cleared either way.
func (uc *UseCase) Logout(ctx context.Context, refreshToken string) {
	claims, err := uc.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return
	}
	if err := uc.sessions.Delete(ctx, claims.SessionID); err != nil {
		uc.logger.Warn("failed to revoke refresh session", zap.Error(err))
	}
}

// ForgotPassword mails a reset link to a registered address.
func (uc *UseCase) ForgotPassword(ctx context.Context, email string) error {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return domain.NewError(domain.ErrCodeNotFound, "no user found with that email")
		}
		return err
	}

	resetToken, _, err := uc.tokens.NewResetToken(user.ID, user.Email)
	if err != nil {
		return err
	}

	resetURL := uc.resetURLBase + "/" + resetToken
	subject, body := mailer.ResetEmail(resetURL)
	if err := uc.mail.SendMail(ctx, user.Email, subject, body); err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "failed to send reset email", err)
	}
	return nil
}

// ResetPassword consumes a reset token and stores the new password hash.
func (uc *UseCase) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	claims, err := uc.tokens.VerifyResetToken(resetToken)
	if err != nil {
		return domain.WrapError(domain.ErrCodeUnauthorized, "invalid or expired reset link", err)
	}

	user, err := uc.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return domain.NewError(domain.ErrCodeNotFound, "invalid reset link")
		}
		return err
	}

	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	return uc.users.UpdatePassword(ctx, user.ID, hash)
}

// Me returns the caller's own record.
func (uc *UseCase) Me(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

func (uc *UseCase) issueTokens(ctx context.Context, user *domain.User) (*TokenPair, error) {
	session := &domain.RefreshSession{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(uc.tokens.RefreshTTL()),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	access, _, err := uc.tokens.NewAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	refresh, refreshExpires, err := uc.tokens.NewRefreshToken(user.ID, session.ID)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExpires,
	}, nil
}

// NewUser validates credentials and builds a ready-to-persist user
// record. Shared with the admin user-creation path.
func NewUser(email, password, name string, isAdmin bool) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "all fields must be filled")
	}
	email = domain.NormalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &domain.User{
		ID:                  uuid.NewString(),
		Email:               email,
		PasswordHash:        hash,
		Name:                name,
		SkillsOffered:       []string{},
		SkillsWanted:        []string{},
		Availability:        []domain.Weekday{},
		Public:              true,
		IsAdmin:             isAdmin,
		PendingSwaps:        []domain.SwapProposal{},
		PendingSwapMessages: map[string]string{},
		AcceptedSwaps:       []domain.SwapAgreement{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}, nil
}

// HashPassword returns a bcrypt hash for the provided plaintext.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
