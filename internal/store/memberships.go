package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sisivoy-api/internal/models"
)

type MembershipRepository interface {
	// Create returns ErrDuplicate when the user already holds a membership.
	Create(ctx context.Context, m *models.SellerMembership) (int, error)
	// GetActive returns the most recent active membership or ErrNotFound.
	GetActive(ctx context.Context, userID int) (*models.SellerMembership, error)
	HasAny(ctx context.Context, userID int) (bool, error)
}

type MembershipRepo struct {
	db DBTX
}

func NewMembershipRepo(db DBTX) *MembershipRepo {
	return &MembershipRepo{db: db}
}

func (r *MembershipRepo) Create(ctx context.Context, m *models.SellerMembership) (int, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO seller_memberships (user_id, is_active, payment_method, payment_reference, membership_type, membership_start)
		 VALUES (?, ?, ?, ?, ?, NOW())`,
		m.UserID, m.IsActive, m.PaymentMethod, nullString(m.PaymentReference), m.MembershipType,
	)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("failed to insert membership: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get membership ID: %w", err)
	}
	return int(id), nil
}

func (r *MembershipRepo) GetActive(ctx context.Context, userID int) (*models.SellerMembership, error) {
	var m models.SellerMembership
	var ref sql.NullString

	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, is_active, payment_method, payment_reference, membership_type, membership_start
		 FROM seller_memberships
		 WHERE user_id = ? AND is_active = TRUE
		 ORDER BY membership_start DESC
		 LIMIT 1`,
		userID,
	).Scan(&m.ID, &m.UserID, &m.IsActive, &m.PaymentMethod, &ref, &m.MembershipType, &m.MembershipStart)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	m.PaymentReference = stringPtr(ref)
	return &m, nil
}

func (r *MembershipRepo) HasAny(ctx context.Context, userID int) (bool, error) {
	var id int
	err := r.db.QueryRowContext(ctx, `SELECT id FROM seller_memberships WHERE user_id = ? LIMIT 1`, userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}
