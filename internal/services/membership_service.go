package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"sisivoy-api/internal/apperror"
	"sisivoy-api/internal/models"
	"sisivoy-api/internal/store"
)

// MembershipService manages the seller membership that login and /me report
// as membership_type. A seller holds at most one membership.
type MembershipService struct {
	store  store.Store
	logger zerolog.Logger
}

func NewMembershipService(st store.Store, logger zerolog.Logger) *MembershipService {
	return &MembershipService{store: st, logger: logger}
}

func (s *MembershipService) Create(ctx context.Context, userID int, req *models.CreateMembershipRequest) (*models.SellerMembership, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var created *models.SellerMembership
	err := s.store.WithTx(ctx, func(ctx context.Context, tx store.Store) error {
		exists, err := tx.Memberships().HasAny(ctx, userID)
		if err != nil {
			return err
		}
		if exists {
			return membershipExists()
		}

		m := &models.SellerMembership{
			UserID:           userID,
			IsActive:         true,
			PaymentMethod:    req.PaymentMethod,
			PaymentReference: models.OptionalString(req.PaymentReference),
			MembershipType:   models.DefaultMembershipType,
		}
		if _, err := tx.Memberships().Create(ctx, m); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return membershipExists()
			}
			return err
		}

		created, err = tx.Memberships().GetActive(ctx, userID)
		return err
	})
	if err != nil {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		s.logger.Error().Err(err).Int("user_id", userID).Msg("Error creating membership")
		return nil, apperror.Internal(err)
	}

	s.logger.Info().Int("user_id", userID).Str("membership_type", created.MembershipType).Msg("Membership created")
	return created, nil
}

func (s *MembershipService) GetActive(ctx context.Context, userID int) (*models.SellerMembership, error) {
	m, err := s.store.Memberships().GetActive(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperror.NotFound("membership_not_found", "No active membership")
	}
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", userID).Msg("Error fetching membership")
		return nil, apperror.Internal(err)
	}
	return m, nil
}

func membershipExists() error {
	return apperror.Conflict("membership_exists", "Membership already exists")
}
