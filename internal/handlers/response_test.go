package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sisivoy-api/internal/apperror"
	"sisivoy-api/internal/middleware"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"validation", apperror.Validation("missing_fields", "email is required"), http.StatusBadRequest,
			`{"error":"missing_fields","message":"email is required"}`},
		{"conflict", apperror.Conflict("email_taken", "taken"), http.StatusConflict,
			`{"error":"email_taken","message":"taken"}`},
		{"internal hides cause", apperror.Internal(errors.New("dial tcp 10.0.0.3:3306")), http.StatusInternalServerError,
			`{"error":"internal_error","message":"An internal error occurred"}`},
		{"plain error", errors.New("boom"), http.StatusInternalServerError,
			`{"error":"internal_error","message":"An internal error occurred"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), zerolog.Nop(), tt.err)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	rec := httptest.NewRecorder()
	err := decodeJSON(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"A"}`)), &dst)
	require.NoError(t, err)
	assert.Equal(t, "A", dst.Name)

	err = decodeJSON(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``)), &dst)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	err = decodeJSON(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`[1,2`)), &dst)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestPathID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"12", 12, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": tt.raw})
			id, err := pathID(req, "id")
			if tt.wantErr {
				assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestPrincipal(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	_, err := principal(req)
	assert.Equal(t, apperror.KindAuthentication, apperror.KindOf(err))

	req = req.WithContext(middleware.WithPrincipal(req.Context(), middleware.Principal{UserID: 4, Role: "buyer"}))
	p, err := principal(req)
	require.NoError(t, err)
	assert.Equal(t, 4, p.UserID)
}
