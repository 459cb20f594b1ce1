// Package passwordreset implements the one-time reset-token lifecycle:
// NoResetPending -> ResetPending -> NoResetPending.
package passwordreset

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	domain "realty/backend/internal/domain/auth"
	authusecase "realty/backend/internal/usecase/auth"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// DefaultResetWindow is how long a reset token stays redeemable.
const DefaultResetWindow = 5 * time.Minute

// Notifier delivers user-facing notifications. The context deadline bounds
// the send.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Service manages reset-token issuance and redemption.
type Service struct {
	users         domain.UserRepository
	notifier      Notifier
	logger        *zap.Logger
	resetWindow   time.Duration
	resetURLBase  string
	notifyTimeout time.Duration
	nowFunc       func() time.Time
	tokenFunc     func() string
}

// NewService constructs a reset service.
func NewService(users domain.UserRepository, notifier Notifier, logger *zap.Logger, resetWindow time.Duration, resetURLBase string, notifyTimeout time.Duration) *Service {
	if resetWindow <= 0 {
		resetWindow = DefaultResetWindow
	}
	return &Service{
		users:         users,
		notifier:      notifier,
		logger:        logger,
		resetWindow:   resetWindow,
		resetURLBase:  resetURLBase,
		notifyTimeout: notifyTimeout,
		nowFunc:       time.Now,
		tokenFunc:     uuid.NewString,
	}
}

// Initiate starts a password reset for the given email. A fresh token is
// persisted before the notification goes out; if the send fails the error is
// surfaced and the caller must initiate again for a usable link.
func (s *Service) Initiate(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	token := s.tokenFunc()
	now := s.nowFunc().UTC()
	if err := s.users.SetResetToken(ctx, user.ID, token, now); err != nil {
		return err
	}

	encoded := base64.URLEncoding.EncodeToString([]byte(token))
	resetLink := s.resetURLBase + "?token=" + encoded
	body := fmt.Sprintf("Hello %s,\n\nClick the link below to reset your password:\n%s\n\nBest regards,\nThe support team.", user.Name, resetLink)

	notifyCtx, cancel := s.notifyContext(ctx)
	defer cancel()
	if err := s.notifier.Send(notifyCtx, user.Email, "Password reset request", body); err != nil {
		return fmt.Errorf("sending reset email: %w", err)
	}
	return nil
}

// Complete redeems an encoded reset token and sets the new password. The
// token is cleared atomically with the password write, so a second attempt
// with the same token fails. The confirmation notification is best effort:
// a send failure is logged and never undoes the committed change.
func (s *Service) Complete(ctx context.Context, encodedToken, newPassword string) error {
	raw, err := base64.URLEncoding.DecodeString(encodedToken)
	if err != nil {
		return domain.ErrResetTokenMalformed
	}

	user, err := s.users.GetByResetToken(ctx, string(raw))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrResetTokenInvalid
		}
		return err
	}

	if user.ResetTokenCreatedAt == nil || user.ResetTokenCreatedAt.Before(s.nowFunc().Add(-s.resetWindow)) {
		return domain.ErrResetTokenExpired
	}

	if err := authusecase.ValidateNewPassword(newPassword, user.PreviousPasswords); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	history := domain.AppendPasswordHistory(user.PreviousPasswords, string(hashed))
	if err := s.users.UpdatePassword(ctx, user.ID, string(hashed), history); err != nil {
		return err
	}

	body := fmt.Sprintf("Hello %s,\n\nYour password was changed successfully.\n\nBest regards,\nThe support team.", user.Name)
	notifyCtx, cancel := s.notifyContext(ctx)
	defer cancel()
	if err := s.notifier.Send(notifyCtx, user.Email, "Your password was changed", body); err != nil {
		s.logger.Warn("password change confirmation email failed",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
	}
	return nil
}

func (s *Service) notifyContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.notifyTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.notifyTimeout)
}
