package service

import (
	"context"
	"time"

	apperrors "miniapp-auth-backend/internal/common/errors"
	"miniapp-auth-backend/internal/common/logger"
	"miniapp-auth-backend/internal/common/metrics"
	"miniapp-auth-backend/internal/features/user/models"
	userservice "miniapp-auth-backend/internal/features/user/service"
	"miniapp-auth-backend/internal/initdata"
)

// AuthService validates signed init-data payloads and synchronizes the
// profile of the authenticated user.
type AuthService interface {
	Authenticate(ctx context.Context, rawInitData string) (*models.User, error)
}

// Config carries the verification policy. The bot token is supplied here,
// per instance, never read from ambient process state.
type Config struct {
	BotToken       string
	MaxInitDataAge time.Duration
	EnforceMaxAge  bool
}

type authService struct {
	users userservice.UserService
	cfg   Config
	now   func() time.Time
}

// Option tunes the service, mainly for tests.
type Option func(*authService)

// WithClock replaces the timestamp source used for staleness checks.
func WithClock(now func() time.Time) Option {
	return func(s *authService) {
		s.now = now
	}
}

func NewAuthService(users userservice.UserService, cfg Config, opts ...Option) AuthService {
	s := &authService{
		users: users,
		cfg:   cfg,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *authService) Authenticate(ctx context.Context, rawInitData string) (*models.User, error) {
	if s.cfg.BotToken == "" {
		return nil, apperrors.NewConfigError("Bot token is not configured")
	}

	verdict := initdata.Verify(rawInitData, s.cfg.BotToken, initdata.Options{
		MaxAge:     s.cfg.MaxInitDataAge,
		EnforceAge: s.cfg.EnforceMaxAge,
		Now:        s.now,
	})

	if !verdict.Valid {
		metrics.RecordValidation(string(verdict.Reason))
		return nil, apperrors.NewInvalidInitDataError(string(verdict.Reason))
	}
	metrics.RecordValidation("valid")

	if verdict.Stale {
		// Accepted by policy; surfaced for operators tuning the threshold.
		logger.Warn().
			Int64("user_id", verdict.Claim.ID).
			Time("auth_date", verdict.AuthDate).
			Msg("Accepted stale init data")
	}

	user, err := s.users.SyncProfile(ctx, verdict.Claim, verdict.StartParam)
	if err != nil {
		return nil, err
	}
	return user, nil
}
