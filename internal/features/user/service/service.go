package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/xssnick/tonutils-go/address"

	apperrors "miniapp-auth-backend/internal/common/errors"
	"miniapp-auth-backend/internal/common/logger"
	"miniapp-auth-backend/internal/common/metrics"
	"miniapp-auth-backend/internal/features/user/models"
	"miniapp-auth-backend/internal/features/user/repository"
	"miniapp-auth-backend/internal/initdata"
	"miniapp-auth-backend/internal/utils/random"
)

// referralCodeAttempts bounds regeneration when a generated code collides
// with an existing one.
const referralCodeAttempts = 5

type userService struct {
	repo     repository.UserRepository
	cache    Cache
	cacheTTL time.Duration
	now      func() time.Time
}

// Option tunes the service, mainly for tests.
type Option func(*userService)

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *userService) {
		s.now = now
	}
}

// NewUserService creates the profile service. cache may be nil, in which
// case reads always hit the repository.
func NewUserService(repo repository.UserRepository, cache Cache, cacheTTL time.Duration, opts ...Option) UserService {
	s := &userService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *userService) SyncProfile(ctx context.Context, claim *initdata.User, startParam string) (*models.User, error) {
	if claim == nil || claim.ID == 0 {
		return nil, apperrors.New(apperrors.ErrCodeValidation, "Empty identity claim")
	}
	userID := strconv.FormatInt(claim.ID, 10)
	now := s.now()

	existing, err := s.repo.GetByID(ctx, userID)
	switch {
	case err == nil:
		return s.mergeProfile(ctx, existing, claim, now)
	case errors.Is(err, repository.ErrNotFound):
		return s.createProfile(ctx, userID, claim, startParam, now)
	default:
		return nil, apperrors.NewDatabaseError("get user", err).WithDetail("user_id", userID)
	}
}

// createProfile builds a fresh profile from the claim and inserts it. The
// insert is atomic create-if-absent: losing the race degrades to the merge
// path instead of inserting twice.
func (s *userService) createProfile(ctx context.Context, userID string, claim *initdata.User, startParam string, now time.Time) (*models.User, error) {
	user := &models.User{
		ID:           userID,
		FirstName:    models.DefaultFirstName,
		LanguageCode: models.DefaultLanguageCode,
		CreatedAt:    now,
		LastLogin:    now,
	}
	applyClaim(user, claim)

	if startParam != "" {
		if referrer, err := s.repo.GetByReferralCode(ctx, startParam); err == nil && referrer.ID != userID {
			user.ReferredBy = &referrer.ID
		}
	}

	for attempt := 0; attempt < referralCodeAttempts; attempt++ {
		code, err := random.Code(models.ReferralCodeLength)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Referral code generation failed")
		}
		user.ReferralCode = code

		err = s.repo.Create(ctx, user)
		switch {
		case err == nil:
			if user.ReferredBy != nil {
				if err := s.repo.IncrementReferrals(ctx, *user.ReferredBy); err != nil {
					logger.Warn().Err(err).Str("referrer_id", *user.ReferredBy).Msg("Failed to count referral")
				}
			}
			metrics.RecordProfileSync("create")
			logger.Info().Str("user_id", userID).Msg("User profile created")
			return user, nil
		case errors.Is(err, repository.ErrReferralCodeTaken):
			continue
		case errors.Is(err, repository.ErrAlreadyExists):
			// Concurrent first login won the insert. Re-read and merge.
			existing, err := s.repo.GetByID(ctx, userID)
			if err != nil {
				return nil, apperrors.NewDatabaseError("get user after create race", err)
			}
			return s.mergeProfile(ctx, existing, claim, now)
		default:
			return nil, apperrors.NewDatabaseError("create user", err).WithDetail("user_id", userID)
		}
	}
	return nil, apperrors.New(apperrors.ErrCodeInternal, "Could not allocate a unique referral code")
}

// mergeProfile overlays claim-derived fields on the stored profile, keeping
// the stored value for any field the claim omits. Tokens, referral fields,
// wallet and createdAt are never touched; lastLogin always advances.
func (s *userService) mergeProfile(ctx context.Context, existing *models.User, claim *initdata.User, now time.Time) (*models.User, error) {
	applyClaim(existing, claim)
	existing.LastLogin = now

	if err := s.repo.UpdateProfile(ctx, existing); err != nil {
		return nil, apperrors.NewDatabaseError("update user", err).WithDetail("user_id", existing.ID)
	}
	s.invalidate(ctx, existing.ID)
	metrics.RecordProfileSync("update")
	return existing, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*models.User, error) {
	if s.cache != nil {
		var cached models.User
		if err := s.cache.Get(ctx, profileCacheKey(id), &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUserNotFoundError(id)
		}
		return nil, apperrors.NewDatabaseError("get user", err).WithDetail("user_id", id)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, profileCacheKey(id), user, s.cacheTTL); err != nil {
			logger.Warn().Err(err).Str("user_id", id).Msg("Failed to cache profile")
		}
	}
	return user, nil
}

func (s *userService) ConnectWallet(ctx context.Context, id, rawAddress string) (*models.User, error) {
	addr, err := address.ParseAddr(rawAddress)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidWallet, "Invalid TON wallet address")
	}

	if err := s.repo.SetWallet(ctx, id, addr.String()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUserNotFoundError(id)
		}
		return nil, apperrors.NewDatabaseError("set wallet", err).WithDetail("user_id", id)
	}
	s.invalidate(ctx, id)

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewDatabaseError("get user", err).WithDetail("user_id", id)
	}
	return user, nil
}

func (s *userService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, profileCacheKey(id)); err != nil {
		logger.Warn().Err(err).Str("user_id", id).Msg("Failed to invalidate profile cache")
	}
}

// applyClaim copies the claim fields that are present onto the profile.
// Absent claim fields leave the profile untouched.
func applyClaim(user *models.User, claim *initdata.User) {
	if claim.FirstName != "" {
		user.FirstName = claim.FirstName
	}
	if claim.LastName != "" {
		lastName := claim.LastName
		user.LastName = &lastName
	}
	if claim.Username != "" {
		username := claim.Username
		user.Username = &username
	}
	if claim.LanguageCode != "" {
		user.LanguageCode = claim.LanguageCode
	}
}

func profileCacheKey(id string) string {
	return fmt.Sprintf("profile:%s", id)
}
