package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sisivoy-api/internal/apperror"
	"sisivoy-api/internal/models"
)

func floatPtr(f float64) *float64 { return &f }

func TestBranchService_CRUD(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	brand, err := env.brands.Create(ctx, 1, &models.BrandRequest{Name: strPtr("Cafe")})
	require.NoError(t, err)

	br, err := env.branches.Create(ctx, 1, &models.BranchRequest{
		BrandID: brand.ID, Name: strPtr("Centro"), Latitude: floatPtr(19.43), Longitude: floatPtr(-99.13),
	})
	require.NoError(t, err)
	assert.Equal(t, brand.ID, br.BrandID)

	updated, err := env.branches.Update(ctx, 1, br.ID, &models.BranchRequest{Address: strPtr("Av. Juarez 1")})
	require.NoError(t, err)
	assert.Equal(t, "Centro", updated.Name)
	require.NotNil(t, updated.Address)

	list, err := env.branches.ListByBrand(ctx, 1, brand.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, env.branches.Delete(ctx, 1, br.ID))
	_, err = env.branches.Get(ctx, 1, br.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestBranchService_Validation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	tests := []struct {
		name string
		req  models.BranchRequest
	}{
		{"missing brand", models.BranchRequest{Name: strPtr("x")}},
		{"missing name", models.BranchRequest{BrandID: 1}},
		{"latitude out of range", models.BranchRequest{BrandID: 1, Name: strPtr("x"), Latitude: floatPtr(91)}},
		{"longitude out of range", models.BranchRequest{BrandID: 1, Name: strPtr("x"), Longitude: floatPtr(-181)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.branches.Create(ctx, 1, &tt.req)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		})
	}
}

func TestBranchService_OwnershipThroughBrand(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	const sellerA, sellerB = 1, 2

	brandA, err := env.brands.Create(ctx, sellerA, &models.BrandRequest{Name: strPtr("A")})
	require.NoError(t, err)
	branchA, err := env.branches.Create(ctx, sellerA, &models.BranchRequest{BrandID: brandA.ID, Name: strPtr("Centro")})
	require.NoError(t, err)

	_, err = env.branches.Create(ctx, sellerB, &models.BranchRequest{BrandID: brandA.ID, Name: strPtr("intruder")})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = env.branches.ListByBrand(ctx, sellerB, brandA.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = env.branches.Get(ctx, sellerB, branchA.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = env.branches.Update(ctx, sellerB, branchA.ID, &models.BranchRequest{Name: strPtr("renamed")})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	err = env.branches.Delete(ctx, sellerB, branchA.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	list, err := env.branches.ListByBrand(ctx, sellerA, brandA.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Centro", list[0].Name)

	// Deleting the brand takes its branches with it.
	require.NoError(t, env.brands.Delete(ctx, sellerA, brandA.ID))
	_, err = env.branches.Get(ctx, sellerA, branchA.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
