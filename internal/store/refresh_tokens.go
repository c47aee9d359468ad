package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sisivoy-api/internal/models"
)

// RefreshTokenRepository persists issued refresh tokens. A row's presence is
// what makes a token redeemable; deleting it revokes the token for good.
type RefreshTokenRepository interface {
	Create(ctx context.Context, userID int, token string, expiresAt time.Time) error
	// Find returns ErrNotFound when the token was never issued or has been revoked.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)
	// Delete removes the token and reports how many rows matched. Zero is not an error.
	Delete(ctx context.Context, token string) (int64, error)
}

type RefreshTokenRepo struct {
	db DBTX
}

func NewRefreshTokenRepo(db DBTX) *RefreshTokenRepo {
	return &RefreshTokenRepo{db: db}
}

func (r *RefreshTokenRepo) Create(ctx context.Context, userID int, token string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO refresh_tokens (user_id, token, expires_at) VALUES (?, ?, ?)`,
		userID, token, expiresAt,
	)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	rt := &models.RefreshToken{Token: token}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, expires_at, created_at FROM refresh_tokens WHERE token = ?`,
		token,
	).Scan(&rt.ID, &rt.UserID, &rt.ExpiresAt, &rt.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rt, nil
}

func (r *RefreshTokenRepo) Delete(ctx context.Context, token string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE token = ?`, token)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
