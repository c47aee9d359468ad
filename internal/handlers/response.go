package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"sisivoy-api/internal/apperror"
	"sisivoy-api/internal/middleware"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, code int, errorCode, message string) {
	respondWithJSON(w, code, middleware.ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// writeError is the single place where service errors become HTTP responses.
// Internal errors are logged here and reported with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, logger zerolog.Logger, err error) {
	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal {
		logger.Error().Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Str("path", r.URL.Path).
			Msg("Request failed")
	}
	code, message := apperror.Public(err)
	respondWithError(w, apperror.HTTPStatus(kind), code, message)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.Validation("invalid_request", "Request body is required")
		}
		return apperror.Validation("invalid_request", "Invalid request body")
	}
	return nil
}

func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		return 0, apperror.Validation("invalid_id", "Invalid "+name)
	}
	return id, nil
}

// principal returns the authenticated caller. Routes without Authentication
// never reach handlers that call it, so a miss is reported as 401.
func principal(r *http.Request) (middleware.Principal, error) {
	p, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		return p, apperror.Authentication("unauthorized", "User not authenticated")
	}
	return p, nil
}
