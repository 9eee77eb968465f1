package service

import (
	"context"
	"time"

	"miniapp-auth-backend/internal/features/user/models"
	"miniapp-auth-backend/internal/initdata"
)

// UserService owns the profile lifecycle: creation on first verified login,
// claim merge on every subsequent one, reads and wallet attachment.
type UserService interface {
	// SyncProfile reconciles a verified identity claim against the store:
	// create-if-absent, else merge-update. startParam carries the referral
	// code of the referring user, when present.
	SyncProfile(ctx context.Context, claim *initdata.User, startParam string) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	ConnectWallet(ctx context.Context, id, address string) (*models.User, error)
}

// Cache is the read-through cache used for profile lookups. Implementations
// must treat a miss as an error return.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
