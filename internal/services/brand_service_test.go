package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sisivoy-api/internal/apperror"
	"sisivoy-api/internal/models"
)

func strPtr(s string) *string { return &s }

func TestBrandService_CRUD(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.brands.Create(ctx, 1, &models.BrandRequest{})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	b, err := env.brands.Create(ctx, 1, &models.BrandRequest{
		Name:        strPtr(" Cafe "),
		Website:     strPtr("https://cafe.mx"),
		SocialLinks: &[]models.SocialLink{{Platform: "instagram", URL: "https://ig/cafe"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Cafe", b.Name)
	assert.Equal(t, 1, b.OwnerID)

	updated, err := env.brands.Update(ctx, 1, b.ID, &models.BrandRequest{Description: strPtr("coffee")})
	require.NoError(t, err)
	assert.Equal(t, "Cafe", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "coffee", *updated.Description)
	assert.Len(t, updated.SocialLinks, 1)

	_, err = env.brands.Update(ctx, 1, b.ID, &models.BrandRequest{Name: strPtr("")})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	list, err := env.brands.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, env.brands.Delete(ctx, 1, b.ID))
	_, err = env.brands.Get(ctx, 1, b.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

// Seller B can neither see nor touch seller A's brand, and gets the same
// answer as for a brand that does not exist.
func TestBrandService_OwnershipIsolation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	const sellerA, sellerB = 1, 2

	b, err := env.brands.Create(ctx, sellerA, &models.BrandRequest{Name: strPtr("A's brand")})
	require.NoError(t, err)

	_, err = env.brands.Get(ctx, sellerB, b.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = env.brands.Update(ctx, sellerB, b.ID, &models.BrandRequest{Name: strPtr("hijacked")})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	err = env.brands.Delete(ctx, sellerB, b.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, missingErr := env.brands.Get(ctx, sellerB, 424242)
	assert.Equal(t, err.Error(), missingErr.Error())

	list, err := env.brands.List(ctx, sellerB)
	require.NoError(t, err)
	assert.Empty(t, list)

	untouched, err := env.brands.Get(ctx, sellerA, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "A's brand", untouched.Name)
}
