package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sisivoy-api/internal/apperror"
	"sisivoy-api/internal/models"
)

func TestUserService_GetProfile(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	register(t, env, "s@x.com", "seller")
	user, err := env.store.Users().GetByEmail(ctx, "s@x.com")
	require.NoError(t, err)

	_, err = env.members.Create(ctx, user.ID, &models.CreateMembershipRequest{PaymentMethod: "oxxo"})
	require.NoError(t, err)

	profile, err := env.users.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "s@x.com", profile.Email)
	require.NotNil(t, profile.MembershipType)
	assert.Equal(t, models.DefaultMembershipType, *profile.MembershipType)

	_, err = env.users.GetProfile(ctx, 9999)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	register(t, env, "a@x.com", "buyer")
	user, err := env.store.Users().GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	err = env.users.UpdateProfile(ctx, user.ID, &models.UpdateProfileRequest{
		Name: "  Ana  ", Phone: "5551234", Password: "newpassword",
	})
	require.NoError(t, err)

	updated, err := env.users.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", updated.Name)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "5551234", *updated.Phone)

	_, err = env.auth.Login(ctx, &models.LoginRequest{Email: "a@x.com", Password: "pw123456"})
	assert.Equal(t, apperror.KindAuthentication, apperror.KindOf(err))
	_, err = env.auth.Login(ctx, &models.LoginRequest{Email: "a@x.com", Password: "newpassword"})
	assert.NoError(t, err)
}

func TestUserService_UpdateProfile_Validation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		req  models.UpdateProfileRequest
	}{
		{"empty", models.UpdateProfileRequest{}},
		{"blank name only", models.UpdateProfileRequest{Name: "   "}},
		{"bad birth date", models.UpdateProfileRequest{BirthDate: "17/05/1990"}},
		{"bad gender", models.UpdateProfileRequest{Gender: "unknown"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := env.users.UpdateProfile(context.Background(), 1, &tt.req)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		})
	}
}
