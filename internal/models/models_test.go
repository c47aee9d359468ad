package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sisivoy-api/internal/apperror"
)

func codeOf(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		return ""
	}
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	return appErr.Code
}

func TestRegisterRequest_Validate(t *testing.T) {
	valid := func() RegisterRequest {
		return RegisterRequest{Email: " a@x.com ", Password: "pw123456", Name: " A "}
	}

	tests := []struct {
		name   string
		mutate func(r *RegisterRequest)
		code   string
	}{
		{"valid", func(r *RegisterRequest) {}, ""},
		{"seller", func(r *RegisterRequest) { r.Role = "seller" }, ""},
		{"admin", func(r *RegisterRequest) { r.Role = "admin" }, "invalid_role"},
		{"blank name", func(r *RegisterRequest) { r.Name = "   " }, "missing_fields"},
		{"long password", func(r *RegisterRequest) { r.Password = strings.Repeat("p", 73) }, "invalid_password"},
		{"bad birth date", func(r *RegisterRequest) { r.BirthDate = "1990-13-01" }, "invalid_birth_date"},
		{"good birth date", func(r *RegisterRequest) { r.BirthDate = "1990-05-17" }, ""},
		{"bad gender", func(r *RegisterRequest) { r.Gender = "x" }, "invalid_gender"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			assert.Equal(t, tt.code, codeOf(t, req.Validate()))
		})
	}
}

func TestRegisterRequest_Normalizes(t *testing.T) {
	req := RegisterRequest{Email: " a@x.com ", Password: "pw", Name: " A "}
	require.NoError(t, req.Validate())
	assert.Equal(t, "a@x.com", req.Email)
	assert.Equal(t, "A", req.Name)
	assert.Equal(t, string(RoleBuyer), req.Role)
}

func TestTokenRequest_Validate(t *testing.T) {
	assert.Equal(t, "missing_token", codeOf(t, (&TokenRequest{Token: " "}).Validate()))
	assert.Equal(t, "", codeOf(t, (&TokenRequest{Token: "abc"}).Validate()))
}

func TestCreateMembershipRequest_Validate(t *testing.T) {
	req := CreateMembershipRequest{PaymentMethod: "oxxo"}
	require.NoError(t, req.Validate())

	req = CreateMembershipRequest{PaymentMethod: "bitcoin"}
	assert.Equal(t, "invalid_payment_method", codeOf(t, req.Validate()))
}

func TestBrandRequest_Apply(t *testing.T) {
	name := " Cafe "
	desc := "coffee"
	b := &Brand{Name: "Old", Website: &desc}

	(&BrandRequest{Name: &name}).Apply(b)
	assert.Equal(t, "Cafe", b.Name)
	assert.Equal(t, &desc, b.Website)
	assert.NotNil(t, b.SocialLinks)
}

func TestBranchRequest_Apply_KeepsBrand(t *testing.T) {
	b := &Branch{BrandID: 7, Name: "Centro"}
	(&BranchRequest{BrandID: 99}).Apply(b)
	assert.Equal(t, 7, b.BrandID)
	assert.Equal(t, "Centro", b.Name)
}

func TestOptionalString(t *testing.T) {
	assert.Nil(t, OptionalString(""))
	require.NotNil(t, OptionalString("x"))
	assert.Equal(t, "x", *OptionalString("x"))
}
