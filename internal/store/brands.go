package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"sisivoy-api/internal/models"
)

// BrandRepository scopes every read and write by owner_id. A brand owned by
// someone else is indistinguishable from a missing one.
type BrandRepository interface {
	Create(ctx context.Context, b *models.Brand) (int, error)
	ListByOwner(ctx context.Context, ownerID int) ([]*models.Brand, error)
	GetOwned(ctx context.Context, id, ownerID int) (*models.Brand, error)
	UpdateOwned(ctx context.Context, b *models.Brand) error
	DeleteOwned(ctx context.Context, id, ownerID int) (bool, error)
}

const brandColumns = `id, name, description, logo_url, owner_id, business_type, business_size, website, social_links, created_at`

type BrandRepo struct {
	db DBTX
}

func NewBrandRepo(db DBTX) *BrandRepo {
	return &BrandRepo{db: db}
}

func (r *BrandRepo) Create(ctx context.Context, b *models.Brand) (int, error) {
	links, err := encodeSocialLinks(b.SocialLinks)
	if err != nil {
		return 0, err
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO brands (name, description, logo_url, owner_id, business_type, business_size, website, social_links)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.Name, nullString(b.Description), nullString(b.LogoURL), b.OwnerID,
		nullString(b.BusinessType), nullString(b.BusinessSize), nullString(b.Website), links,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert brand: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get brand ID: %w", err)
	}
	return int(id), nil
}

func (r *BrandRepo) ListByOwner(ctx context.Context, ownerID int) ([]*models.Brand, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+brandColumns+` FROM brands WHERE owner_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	brands := []*models.Brand{}
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return brands, nil
}

func (r *BrandRepo) GetOwned(ctx context.Context, id, ownerID int) (*models.Brand, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+brandColumns+` FROM brands WHERE id = ? AND owner_id = ?`, id, ownerID)
	b, err := scanBrand(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

func (r *BrandRepo) UpdateOwned(ctx context.Context, b *models.Brand) error {
	links, err := encodeSocialLinks(b.SocialLinks)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE brands
		 SET name = ?, description = ?, logo_url = ?, business_type = ?, business_size = ?, website = ?, social_links = ?
		 WHERE id = ? AND owner_id = ?`,
		b.Name, nullString(b.Description), nullString(b.LogoURL),
		nullString(b.BusinessType), nullString(b.BusinessSize), nullString(b.Website), links,
		b.ID, b.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update brand: %w", err)
	}
	return nil
}

func (r *BrandRepo) DeleteOwned(ctx context.Context, id, ownerID int) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM brands WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to delete brand: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBrand(row rowScanner) (*models.Brand, error) {
	var b models.Brand
	var description, logo, businessType, businessSize, website, links sql.NullString

	err := row.Scan(&b.ID, &b.Name, &description, &logo, &b.OwnerID,
		&businessType, &businessSize, &website, &links, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	b.Description = stringPtr(description)
	b.LogoURL = stringPtr(logo)
	b.BusinessType = stringPtr(businessType)
	b.BusinessSize = stringPtr(businessSize)
	b.Website = stringPtr(website)
	b.SocialLinks = []models.SocialLink{}
	if links.Valid && links.String != "" {
		if err := json.Unmarshal([]byte(links.String), &b.SocialLinks); err != nil {
			return nil, fmt.Errorf("invalid social_links for brand %d: %w", b.ID, err)
		}
	}
	return &b, nil
}

func encodeSocialLinks(links []models.SocialLink) (sql.NullString, error) {
	if len(links) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(links)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode social_links: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}
