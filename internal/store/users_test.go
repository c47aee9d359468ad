package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sisivoy-api/internal/models"
)

var userCols = []string{"id", "name", "email", "password", "role", "phone", "birth_date", "referral_code", "gender", "qr", "created_at"}

func TestUserRepo_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	phone := "5551234"
	mock.ExpectExec(`INSERT INTO users \(name, email, password, role`).
		WithArgs("A", "a@x.com", "hash", "buyer", phone, nil, nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(42, 1))

	id, err := repo.Create(context.Background(), &models.User{
		Name: "A", Email: "a@x.com", PasswordHash: "hash", Role: "buyer", Phone: &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, 42, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create_Duplicate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@x.com' for key 'uq_users_email'"})

	_, err := repo.Create(context.Background(), &models.User{Name: "A", Email: "a@x.com", PasswordHash: "h", Role: "buyer"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	birth := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT .* FROM users WHERE email = \?`).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(1, "A", "a@x.com", "hash", "seller", nil, birth, "REF1", "female", nil, created))

	u, err := repo.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)
	assert.Equal(t, "hash", u.PasswordHash)
	assert.Equal(t, "seller", u.Role)
	assert.Nil(t, u.Phone)
	require.NotNil(t, u.BirthDate)
	assert.Equal(t, "1990-05-17", *u.BirthDate)
	require.NotNil(t, u.ReferralCode)
	assert.Equal(t, "REF1", *u.ReferralCode)
	assert.True(t, created.Equal(u.CreatedAt))
}

func TestUserRepo_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \?`).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows(userCols))

	_, err := repo.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepo_EmailExists(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(`SELECT id FROM users WHERE email = \?`).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`SELECT id FROM users WHERE email = \?`).
		WithArgs("b@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT id FROM users WHERE email = \?`).
		WithArgs("c@x.com").
		WillReturnError(errors.New("db down"))

	ok, err := repo.EmailExists(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.EmailExists(context.Background(), "b@x.com")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.EmailExists(context.Background(), "c@x.com")
	assert.ErrorContains(t, err, "db down")
}

func TestUserRepo_UpdateProfile(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	name := "New"
	hash := "newhash"
	mock.ExpectExec(`UPDATE users SET name = \?, password = \? WHERE id = \?`).
		WithArgs("New", "newhash", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateProfile(context.Background(), 5, models.ProfileUpdate{Name: &name, PasswordHash: &hash})
	require.NoError(t, err)

	// Nothing to write: no statement is issued.
	require.NoError(t, repo.UpdateProfile(context.Background(), 5, models.ProfileUpdate{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}
