package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"miniapp-auth-backend/internal/features/user/models"
	"miniapp-auth-backend/internal/features/user/repository"
)

type userRepository struct {
	client *redis.Client
}

// NewUserRepository creates a Redis-backed user store. Profiles live as JSON
// documents under user:<id>; referral code uniqueness is enforced through a
// referral_code:<code> index written with SETNX.
func NewUserRepository(client *redis.Client) repository.UserRepository {
	return &userRepository{
		client: client,
	}
}

func userKey(id string) string {
	return fmt.Sprintf("user:%s", id)
}

func referralKey(code string) string {
	return fmt.Sprintf("referral_code:%s", code)
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	// Reserve the referral code first so a collision surfaces before the
	// profile document exists.
	reserved, err := r.client.SetNX(ctx, referralKey(user.ReferralCode), user.ID, 0).Result()
	if err != nil {
		return err
	}
	if !reserved {
		return repository.ErrReferralCodeTaken
	}

	userJSON, err := json.Marshal(user)
	if err != nil {
		r.client.Del(ctx, referralKey(user.ReferralCode))
		return err
	}

	created, err := r.client.SetNX(ctx, userKey(user.ID), userJSON, 0).Result()
	if err != nil {
		r.client.Del(ctx, referralKey(user.ReferralCode))
		return err
	}
	if !created {
		// Lost the create race. Release the reserved code and let the
		// caller take the update path.
		r.client.Del(ctx, referralKey(user.ReferralCode))
		return repository.ErrAlreadyExists
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	userJSON, err := r.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(userJSON, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) GetByReferralCode(ctx context.Context, code string) (*models.User, error) {
	id, err := r.client.Get(ctx, referralKey(code)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	return r.mutate(ctx, user.ID, func(stored *models.User) {
		stored.Username = user.Username
		stored.FirstName = user.FirstName
		stored.LastName = user.LastName
		stored.LanguageCode = user.LanguageCode
		stored.LastLogin = user.LastLogin
	})
}

func (r *userRepository) SetWallet(ctx context.Context, id, address string) error {
	return r.mutate(ctx, id, func(stored *models.User) {
		stored.ConnectedWallet = &address
	})
}

func (r *userRepository) IncrementReferrals(ctx context.Context, id string) error {
	return r.mutate(ctx, id, func(stored *models.User) {
		stored.ReferralsMade++
	})
}

// mutate applies fn to the stored document and writes it back in a WATCH
// transaction, so concurrent writers to the same document retry instead of
// overwriting each other.
func (r *userRepository) mutate(ctx context.Context, id string, fn func(*models.User)) error {
	key := userKey(id)

	txn := func(tx *redis.Tx) error {
		userJSON, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if err == redis.Nil {
				return repository.ErrNotFound
			}
			return err
		}

		var user models.User
		if err := json.Unmarshal(userJSON, &user); err != nil {
			return err
		}

		fn(&user)

		updated, err := json.Marshal(&user)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			return nil
		})
		return err
	}

	for i := 0; i < 5; i++ {
		err := r.client.Watch(ctx, txn, key)
		if err != redis.TxFailedErr {
			return err
		}
	}
	return redis.TxFailedErr
}
