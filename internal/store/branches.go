package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sisivoy-api/internal/models"
)

// BranchRepository reaches ownership through the branch -> brand join: a branch
// is visible only when its brand's owner_id matches.
type BranchRepository interface {
	Create(ctx context.Context, b *models.Branch) (int, error)
	ListByBrand(ctx context.Context, brandID, ownerID int) ([]*models.Branch, error)
	GetOwned(ctx context.Context, id, ownerID int) (*models.Branch, error)
	UpdateOwned(ctx context.Context, b *models.Branch, ownerID int) error
	DeleteOwned(ctx context.Context, id, ownerID int) (bool, error)
}

const branchColumns = `b.id, b.brand_id, b.name, b.address, b.latitude, b.longitude, b.created_at`

type BranchRepo struct {
	db DBTX
}

func NewBranchRepo(db DBTX) *BranchRepo {
	return &BranchRepo{db: db}
}

// Create does not check ownership of b.BrandID; callers resolve the brand
// through BrandRepository.GetOwned first.
func (r *BranchRepo) Create(ctx context.Context, b *models.Branch) (int, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO branches (brand_id, name, address, latitude, longitude) VALUES (?, ?, ?, ?, ?)`,
		b.BrandID, b.Name, nullString(b.Address), nullFloat(b.Latitude), nullFloat(b.Longitude),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert branch: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get branch ID: %w", err)
	}
	return int(id), nil
}

func (r *BranchRepo) ListByBrand(ctx context.Context, brandID, ownerID int) ([]*models.Branch, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+branchColumns+`
		 FROM branches b
		 JOIN brands br ON b.brand_id = br.id
		 WHERE b.brand_id = ? AND br.owner_id = ?
		 ORDER BY b.id`,
		brandID, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	branches := []*models.Branch{}
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return branches, nil
}

func (r *BranchRepo) GetOwned(ctx context.Context, id, ownerID int) (*models.Branch, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+branchColumns+`
		 FROM branches b
		 JOIN brands br ON b.brand_id = br.id
		 WHERE b.id = ? AND br.owner_id = ?`,
		id, ownerID,
	)
	b, err := scanBranch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

func (r *BranchRepo) UpdateOwned(ctx context.Context, b *models.Branch, ownerID int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE branches b
		 JOIN brands br ON b.brand_id = br.id
		 SET b.name = ?, b.address = ?, b.latitude = ?, b.longitude = ?
		 WHERE b.id = ? AND br.owner_id = ?`,
		b.Name, nullString(b.Address), nullFloat(b.Latitude), nullFloat(b.Longitude),
		b.ID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update branch: %w", err)
	}
	return nil
}

func (r *BranchRepo) DeleteOwned(ctx context.Context, id, ownerID int) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE b FROM branches b
		 JOIN brands br ON b.brand_id = br.id
		 WHERE b.id = ? AND br.owner_id = ?`,
		id, ownerID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete branch: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func scanBranch(row rowScanner) (*models.Branch, error) {
	var b models.Branch
	var address sql.NullString
	var lat, lng sql.NullFloat64

	err := row.Scan(&b.ID, &b.BrandID, &b.Name, &address, &lat, &lng, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	b.Address = stringPtr(address)
	b.Latitude = floatPtr(lat)
	b.Longitude = floatPtr(lng)
	return &b, nil
}
