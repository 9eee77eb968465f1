package repository

import (
	"context"
	"errors"

	"miniapp-auth-backend/internal/features/user/models"
)

var (
	// ErrNotFound is returned when no profile exists for the key.
	ErrNotFound = errors.New("user not found")
	// ErrAlreadyExists is returned by Create when a profile for the same
	// user ID was inserted concurrently. The caller falls back to the
	// update path; the insert never runs twice for one ID.
	ErrAlreadyExists = errors.New("user already exists")
	// ErrReferralCodeTaken is returned by Create when the generated
	// referral code collides with an existing one. The caller regenerates.
	ErrReferralCodeTaken = errors.New("referral code already taken")
)

// UserRepository is the store capability for profile documents. Both
// implementations (redis, postgres) guarantee atomic create-if-absent and
// per-document write atomicity.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByReferralCode(ctx context.Context, code string) (*models.User, error)
	// Create inserts the profile if and only if no profile exists for
	// user.ID, reserving user.ReferralCode atomically.
	Create(ctx context.Context, user *models.User) error
	// UpdateProfile persists the claim-derived fields and lastLogin. The
	// immutable fields of the stored document are left untouched.
	UpdateProfile(ctx context.Context, user *models.User) error
	// SetWallet stores the normalized wallet address for the user.
	SetWallet(ctx context.Context, id, address string) error
	// IncrementReferrals bumps referralsMade for the referrer.
	IncrementReferrals(ctx context.Context, id string) error
}
