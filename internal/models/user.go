package models

import (
	"strings"
	"time"

	"sisivoy-api/internal/apperror"
)

type User struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Role           string    `json:"role"`
	Phone          *string   `json:"phone,omitempty"`
	BirthDate      *string   `json:"birth_date,omitempty"`
	ReferralCode   *string   `json:"referral_code,omitempty"`
	Gender         *string   `json:"gender,omitempty"`
	QR             *string   `json:"qr,omitempty"`
	MembershipType *string   `json:"membership_type,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type UserRole string

const (
	RoleBuyer  UserRole = "buyer"
	RoleSeller UserRole = "seller"
	RoleAdmin  UserRole = "admin"
)

// bcrypt ignores input past 72 bytes, so longer passwords are rejected up front.
const maxPasswordBytes = 72

const dateLayout = "2006-01-02"

type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	BirthDate    string `json:"birth_date,omitempty"`
	Phone        string `json:"phone,omitempty"`
	ReferralCode string `json:"referral_code,omitempty"`
	Gender       string `json:"gender,omitempty"`
	QR           string `json:"qr,omitempty"`
}

// Validate normalizes the request in place. An empty role means buyer; admin
// accounts cannot be self-registered.
func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	r.Role = strings.TrimSpace(r.Role)

	if r.Email == "" || r.Password == "" || r.Name == "" {
		return apperror.Validation("missing_fields", "email, name and password are required")
	}
	if r.Role == "" {
		r.Role = string(RoleBuyer)
	}
	if r.Role != string(RoleBuyer) && r.Role != string(RoleSeller) {
		return apperror.Validation("invalid_role", "role must be buyer or seller")
	}
	if len(r.Password) > maxPasswordBytes {
		return apperror.Validation("invalid_password", "password must be at most 72 bytes")
	}
	if err := validateBirthDate(r.BirthDate); err != nil {
		return err
	}
	return validateGender(r.Gender)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" || r.Password == "" {
		return apperror.Validation("missing_fields", "email and password are required")
	}
	return nil
}

// TokenRequest is the body of /auth/refresh and /auth/logout.
type TokenRequest struct {
	Token string `json:"token"`
}

func (r *TokenRequest) Validate() error {
	r.Token = strings.TrimSpace(r.Token)
	if r.Token == "" {
		return apperror.Validation("missing_token", "refresh token is required")
	}
	return nil
}

type UpdateProfileRequest struct {
	Name         string `json:"name,omitempty"`
	Password     string `json:"password,omitempty"`
	Phone        string `json:"phone,omitempty"`
	BirthDate    string `json:"birth_date,omitempty"`
	Gender       string `json:"gender,omitempty"`
	ReferralCode string `json:"referral_code,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" && r.Password == "" && r.Phone == "" && r.BirthDate == "" && r.Gender == "" && r.ReferralCode == "" {
		return apperror.Validation("missing_fields", "at least one field must be provided")
	}
	if len(r.Password) > maxPasswordBytes {
		return apperror.Validation("invalid_password", "password must be at most 72 bytes")
	}
	if err := validateBirthDate(r.BirthDate); err != nil {
		return err
	}
	return validateGender(r.Gender)
}

// ProfileUpdate is the set of columns written by an update; nil fields are left as they are.
type ProfileUpdate struct {
	Name         *string
	PasswordHash *string
	Phone        *string
	BirthDate    *string
	Gender       *string
	ReferralCode *string
}

type RegisterResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type LoginResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}

type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UserResponse struct {
	User *User `json:"user"`
}

func validateBirthDate(value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return apperror.Validation("invalid_birth_date", "birth_date must use YYYY-MM-DD")
	}
	return nil
}

func validateGender(value string) error {
	switch value {
	case "", "male", "female", "other":
		return nil
	default:
		return apperror.Validation("invalid_gender", "gender must be male, female or other")
	}
}

// OptionalString maps an empty string to nil.
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// DataResponse wraps resource payloads for the seller endpoints.
type DataResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}
