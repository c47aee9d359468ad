package models

import (
	"time"

	"sisivoy-api/internal/apperror"
)

type SellerMembership struct {
	ID               int       `json:"id"`
	UserID           int       `json:"user_id"`
	IsActive         bool      `json:"is_active"`
	PaymentMethod    string    `json:"payment_method"`
	PaymentReference *string   `json:"payment_reference,omitempty"`
	MembershipType   string    `json:"membership_type"`
	MembershipStart  time.Time `json:"membership_start"`
}

type PaymentMethod string

const (
	PaymentCard         PaymentMethod = "card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentOxxo         PaymentMethod = "oxxo"
)

// DefaultMembershipType is the tier every new membership starts on. Clients
// cannot choose it.
const DefaultMembershipType = "basic"

type CreateMembershipRequest struct {
	PaymentMethod    string `json:"payment_method"`
	PaymentReference string `json:"payment_reference,omitempty"`
}

func (r *CreateMembershipRequest) Validate() error {
	switch PaymentMethod(r.PaymentMethod) {
	case PaymentCard, PaymentBankTransfer, PaymentOxxo:
	default:
		return apperror.Validation("invalid_payment_method", "payment_method must be card, bank_transfer or oxxo")
	}
	return nil
}
