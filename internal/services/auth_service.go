package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"sisivoy-api/internal/apperror"
	"sisivoy-api/internal/models"
	"sisivoy-api/internal/store"
)

const invalidCredentialsMessage = "invalid email or password"

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type LoginResult struct {
	TokenPair
	User *models.User
}

// AuthService drives the session lifecycle: register, login, refresh and logout.
type AuthService struct {
	store  store.Store
	hasher *PasswordHasher
	tokens *TokenService
	logger zerolog.Logger
}

func NewAuthService(st store.Store, hasher *PasswordHasher, tokens *TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		store:  st,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates the user and its first refresh token in one transaction.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*TokenPair, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.store.Users().EmailExists(ctx, req.Email)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error checking existing user")
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, emailTaken()
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error hashing password")
		return nil, apperror.Internal(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		Phone:        models.OptionalString(req.Phone),
		BirthDate:    models.OptionalString(req.BirthDate),
		ReferralCode: models.OptionalString(req.ReferralCode),
		Gender:       models.OptionalString(req.Gender),
		QR:           models.OptionalString(req.QR),
	}

	var pair *TokenPair
	err = s.store.WithTx(ctx, func(ctx context.Context, tx store.Store) error {
		id, err := tx.Users().Create(ctx, user)
		if err != nil {
			return err
		}
		user.ID = id

		pair, err = s.issuePair(ctx, tx, user)
		return err
	})
	if errors.Is(err, store.ErrDuplicate) {
		// Lost the race against a concurrent registration of the same email.
		return nil, emailTaken()
	}
	if err != nil {
		s.logger.Error().Err(err).Str("email", req.Email).Msg("Registration failed")
		return nil, apperror.Internal(err)
	}

	s.logger.Info().Int("user_id", user.ID).Str("email", user.Email).Msg("User registered successfully")
	return pair, nil
}

func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*LoginResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.store.Users().GetByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		s.logger.Warn().Str("email", req.Email).Msg("Login failed")
		return nil, apperror.Authentication("invalid_credentials", invalidCredentialsMessage)
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("Error loading user")
		return nil, apperror.Internal(err)
	}

	ok, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", user.ID).Msg("Stored password digest is unreadable")
		return nil, apperror.Internal(err)
	}
	if !ok {
		s.logger.Warn().Str("email", req.Email).Msg("Login failed")
		return nil, apperror.Authentication("invalid_credentials", invalidCredentialsMessage)
	}

	decorateMembership(ctx, s.store, s.logger, user)

	pair, err := s.issuePair(ctx, s.store, user)
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", user.ID).Msg("Token issuance failed")
		return nil, apperror.Internal(err)
	}

	s.logger.Info().Int("user_id", user.ID).Msg("User logged in")
	return &LoginResult{TokenPair: *pair, User: user}, nil
}

// Refresh exchanges a stored, valid refresh token for a new access token. The
// refresh token itself is not rotated and stays redeemable until logout.
func (s *AuthService) Refresh(ctx context.Context, req *models.TokenRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	row, err := s.store.RefreshTokens().Find(ctx, req.Token)
	if errors.Is(err, store.ErrNotFound) {
		return "", apperror.Authorization("invalid_refresh_token", "refresh token is not recognized")
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("Error looking up refresh token")
		return "", apperror.Internal(err)
	}

	claims, err := s.tokens.Verify(req.Token, RefreshToken)
	if err != nil || claims.UserID != row.UserID {
		s.logger.Warn().Err(err).Int("user_id", row.UserID).Msg("Refresh token rejected")
		return "", apperror.Authorization("invalid_refresh_token", "invalid or expired refresh token")
	}

	user, err := s.store.Users().GetByID(ctx, claims.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return "", apperror.Authorization("invalid_refresh_token", "refresh token owner no longer exists")
	}
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", claims.UserID).Msg("Error loading user")
		return "", apperror.Internal(err)
	}

	access, err := s.tokens.MintAccessToken(AccessClaims{UserID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		return "", apperror.Internal(err)
	}
	return access, nil
}

// Logout revokes the refresh token. Unknown tokens are not an error.
func (s *AuthService) Logout(ctx context.Context, req *models.TokenRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	n, err := s.store.RefreshTokens().Delete(ctx, req.Token)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error revoking refresh token")
		return apperror.Internal(err)
	}
	s.logger.Info().Int64("revoked", n).Msg("User logged out")
	return nil
}

func (s *AuthService) issuePair(ctx context.Context, st store.Store, user *models.User) (*TokenPair, error) {
	access, err := s.tokens.MintAccessToken(AccessClaims{UserID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		return nil, err
	}
	refresh, expiresAt, err := s.tokens.MintRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	if err := st.RefreshTokens().Create(ctx, user.ID, refresh, expiresAt); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// decorateMembership sets MembershipType for sellers with an active membership.
// Lookup failures only leave the field empty.
func decorateMembership(ctx context.Context, st store.Store, logger zerolog.Logger, user *models.User) {
	if user.Role != string(models.RoleSeller) {
		return
	}
	m, err := st.Memberships().GetActive(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.Warn().Err(err).Int("user_id", user.ID).Msg("Membership lookup failed")
		}
		return
	}
	membershipType := m.MembershipType
	user.MembershipType = &membershipType
}

func emailTaken() error {
	return apperror.Conflict("email_taken", "email is already registered")
}
