package services

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"sisivoy-api/internal/testutil"
)

type testEnv struct {
	store    *testutil.MemoryStore
	hasher   *PasswordHasher
	tokens   *TokenService
	auth     *AuthService
	users    *UserService
	members  *MembershipService
	brands   *BrandService
	branches *BranchService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zerolog.Nop()
	st := testutil.NewMemoryStore()
	hasher := NewPasswordHasher(bcrypt.MinCost)
	tokens := NewTokenService(TokenConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Hour,
		RefreshTTL:    7 * 24 * time.Hour,
	}, logger)

	return &testEnv{
		store:    st,
		hasher:   hasher,
		tokens:   tokens,
		auth:     NewAuthService(st, hasher, tokens, logger),
		users:    NewUserService(st, hasher, logger),
		members:  NewMembershipService(st, logger),
		brands:   NewBrandService(st, logger),
		branches: NewBranchService(st, logger),
	}
}
