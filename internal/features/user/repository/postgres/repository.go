package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"miniapp-auth-backend/internal/features/user/models"
	"miniapp-auth-backend/internal/features/user/repository"
)

type userRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a PostgreSQL-backed user store.
func NewUserRepository(db *pgxpool.Pool) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `user_id, username, first_name, last_name, language_code,
	tokens, referral_code, referred_by, referrals_made, connected_wallet,
	created_at, last_login`

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	q := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id) DO NOTHING`
	tag, err := r.db.Exec(ctx, q,
		user.ID, user.Username, user.FirstName, user.LastName, user.LanguageCode,
		user.Tokens, user.ReferralCode, user.ReferredBy, user.ReferralsMade,
		user.ConnectedWallet, user.CreatedAt, user.LastLogin,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrReferralCodeTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrAlreadyExists
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.scanOne(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, id)
}

func (r *userRepository) GetByReferralCode(ctx context.Context, code string) (*models.User, error) {
	return r.scanOne(ctx, `SELECT `+userColumns+` FROM users WHERE referral_code = $1`, code)
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	q := `
		UPDATE users
		SET username = $2, first_name = $3, last_name = $4,
		    language_code = $5, last_login = $6
		WHERE user_id = $1`
	return r.exec(ctx, q, user.ID, user.Username, user.FirstName, user.LastName,
		user.LanguageCode, user.LastLogin)
}

func (r *userRepository) SetWallet(ctx context.Context, id, address string) error {
	return r.exec(ctx, `UPDATE users SET connected_wallet = $2 WHERE user_id = $1`, id, address)
}

func (r *userRepository) IncrementReferrals(ctx context.Context, id string) error {
	return r.exec(ctx, `UPDATE users SET referrals_made = referrals_made + 1 WHERE user_id = $1`, id)
}

func (r *userRepository) exec(ctx context.Context, q string, args ...interface{}) error {
	tag, err := r.db.Exec(ctx, q, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRepository) scanOne(ctx context.Context, q string, args ...interface{}) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx, q, args...).Scan(
		&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.LanguageCode,
		&user.Tokens, &user.ReferralCode, &user.ReferredBy, &user.ReferralsMade,
		&user.ConnectedWallet, &user.CreatedAt, &user.LastLogin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
