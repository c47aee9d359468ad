// Package store is the relational persistence layer. Repositories run against
// DBTX, so the same code serves plain pool calls and calls inside a transaction.
package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// DBTX is the subset of database/sql used by repositories.
// Both *sql.DB and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store interface {
	Users() UserRepository
	RefreshTokens() RefreshTokenRepository
	Memberships() MembershipRepository
	Brands() BrandRepository
	Branches() BranchRepository

	// WithTx runs fn against a Store whose repositories share one transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

type MySQLStore struct {
	db *sql.DB
	q  DBTX
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db, q: db}
}

func (s *MySQLStore) Users() UserRepository                 { return NewUserRepo(s.q) }
func (s *MySQLStore) RefreshTokens() RefreshTokenRepository { return NewRefreshTokenRepo(s.q) }
func (s *MySQLStore) Memberships() MembershipRepository     { return NewMembershipRepo(s.q) }
func (s *MySQLStore) Brands() BrandRepository               { return NewBrandRepo(s.q) }
func (s *MySQLStore) Branches() BranchRepository            { return NewBranchRepo(s.q) }

func (s *MySQLStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	// Already inside a transaction: join it.
	if s.db == nil {
		return fn(ctx, s)
	}
	return WithTx(ctx, s.db, nil, func(ctx context.Context, tx DBTX) error {
		return fn(ctx, &MySQLStore{q: tx})
	})
}

// WithTx begins a transaction, runs fn with it, and commits on success or rolls
// back on error or panic. Panics are rethrown.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}

func isDuplicate(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func floatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}
