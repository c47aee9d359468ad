package models

import (
	"strings"
	"time"

	"sisivoy-api/internal/apperror"
)

type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

type Brand struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Description  *string      `json:"description"`
	LogoURL      *string      `json:"logo_url"`
	OwnerID      int          `json:"owner_id"`
	BusinessType *string      `json:"business_type"`
	BusinessSize *string      `json:"business_size"`
	Website      *string      `json:"website"`
	SocialLinks  []SocialLink `json:"social_links"`
	CreatedAt    time.Time    `json:"created_at"`
}

// BrandRequest is used for both create and update. On update, nil fields keep
// their stored value.
type BrandRequest struct {
	Name         *string       `json:"name"`
	Description  *string       `json:"description"`
	LogoURL      *string       `json:"logo_url"`
	BusinessType *string       `json:"business_type"`
	BusinessSize *string       `json:"business_size"`
	Website      *string       `json:"website"`
	SocialLinks  *[]SocialLink `json:"social_links"`
}

func (r *BrandRequest) ValidateCreate() error {
	if r.Name == nil || strings.TrimSpace(*r.Name) == "" {
		return apperror.Validation("missing_fields", "name is required")
	}
	return nil
}

func (r *BrandRequest) ValidateUpdate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return apperror.Validation("invalid_name", "name cannot be empty")
	}
	return nil
}

// Apply merges the request into b.
func (r *BrandRequest) Apply(b *Brand) {
	if r.Name != nil {
		b.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		b.Description = r.Description
	}
	if r.LogoURL != nil {
		b.LogoURL = r.LogoURL
	}
	if r.BusinessType != nil {
		b.BusinessType = r.BusinessType
	}
	if r.BusinessSize != nil {
		b.BusinessSize = r.BusinessSize
	}
	if r.Website != nil {
		b.Website = r.Website
	}
	if r.SocialLinks != nil {
		b.SocialLinks = *r.SocialLinks
	}
	if b.SocialLinks == nil {
		b.SocialLinks = []SocialLink{}
	}
}
