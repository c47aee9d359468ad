package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"sisivoy-api/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) (int, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, id int, upd models.ProfileUpdate) error
}

const userColumns = `id, name, email, password, role, phone, birth_date, referral_code, gender, qr, created_at`

type UserRepo struct {
	db DBTX
}

func NewUserRepo(db DBTX) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts u and returns the assigned id. A taken email yields ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, u *models.User) (int, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (name, email, password, role, phone, birth_date, referral_code, gender, qr)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Name, u.Email, u.PasswordHash, u.Role,
		nullString(u.Phone), nullString(u.BirthDate), nullString(u.ReferralCode), nullString(u.Gender), nullString(u.QR),
	)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get user ID: %w", err)
	}
	return int(id), nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var id int
	err := r.db.QueryRowContext(ctx, `SELECT id FROM users WHERE email = ?`, email).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}

// UpdateProfile writes the non-nil fields of upd. An empty update is a no-op.
func (r *UserRepo) UpdateProfile(ctx context.Context, id int, upd models.ProfileUpdate) error {
	var sets []string
	var args []any

	add := func(column string, value *string) {
		if value != nil {
			sets = append(sets, column+" = ?")
			args = append(args, *value)
		}
	}
	add("name", upd.Name)
	add("password", upd.PasswordHash)
	add("phone", upd.Phone)
	add("birth_date", upd.BirthDate)
	add("gender", upd.Gender)
	add("referral_code", upd.ReferralCode)

	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	query := `UPDATE users SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var phone, referral, gender, qr sql.NullString
	var birth sql.NullTime

	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&phone, &birth, &referral, &gender, &qr, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	u.Phone = stringPtr(phone)
	u.ReferralCode = stringPtr(referral)
	u.Gender = stringPtr(gender)
	u.QR = stringPtr(qr)
	if birth.Valid {
		d := birth.Time.Format("2006-01-02")
		u.BirthDate = &d
	}
	return &u, nil
}
