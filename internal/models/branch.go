package models

import (
	"strings"
	"time"

	"sisivoy-api/internal/apperror"
)

type Branch struct {
	ID        int       `json:"id"`
	BrandID   int       `json:"brand_id"`
	Name      string    `json:"name"`
	Address   *string   `json:"address"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

type BranchRequest struct {
	BrandID   int      `json:"brand_id"`
	Name      *string  `json:"name"`
	Address   *string  `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (r *BranchRequest) ValidateCreate() error {
	if r.BrandID <= 0 || r.Name == nil || strings.TrimSpace(*r.Name) == "" {
		return apperror.Validation("missing_fields", "brand_id and name are required")
	}
	return r.validateCoordinates()
}

func (r *BranchRequest) ValidateUpdate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return apperror.Validation("invalid_name", "name cannot be empty")
	}
	return r.validateCoordinates()
}

func (r *BranchRequest) validateCoordinates() error {
	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		return apperror.Validation("invalid_latitude", "latitude must be between -90 and 90")
	}
	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		return apperror.Validation("invalid_longitude", "longitude must be between -180 and 180")
	}
	return nil
}

// Apply merges the request into b. The parent brand of an existing branch is never changed here.
func (r *BranchRequest) Apply(b *Branch) {
	if r.Name != nil {
		b.Name = strings.TrimSpace(*r.Name)
	}
	if r.Address != nil {
		b.Address = r.Address
	}
	if r.Latitude != nil {
		b.Latitude = r.Latitude
	}
	if r.Longitude != nil {
		b.Longitude = r.Longitude
	}
}
