package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"rental-marketplace/internal/apperr"
)

const (
	ErrCodeInvalidPayload    = "invalid_payload"
	ErrCodeValidation        = "validation_error"
	ErrCodeNotFound          = "not_found"
	ErrCodeInvalidTransition = "invalid_transition"
	ErrCodeTimeout           = "timeout"
	ErrCodeInternal          = "internal_server_error"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondWithJSON writes payload with status.
func RespondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondErrorWithCode writes a JSON error body and logs the underlying
// error, if any.
func RespondErrorWithCode(log logrus.FieldLogger, w http.ResponseWriter, status int, code, message string, devErr error) {
	RespondWithJSON(w, status, ErrorResponse{Code: code, Message: message})

	entry := log.WithField("status", status)
	if devErr != nil {
		entry = entry.WithError(devErr)
	}
	if status >= http.StatusInternalServerError {
		entry.Error(message)
	} else {
		entry.Warn(message)
	}
}

// StatusFor maps an error kind onto its HTTP status and error code.
func StatusFor(err error) (int, string) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return http.StatusNotFound, ErrCodeNotFound
	case apperr.KindValidation:
		return http.StatusBadRequest, ErrCodeValidation
	case apperr.KindInvalidTransition:
		return http.StatusConflict, ErrCodeInvalidTransition
	case apperr.KindTimeout:
		return http.StatusGatewayTimeout, ErrCodeTimeout
	default:
		return http.StatusInternalServerError, ErrCodeInternal
	}
}

// HandleAppError replies to a failed operation. Store failures and unknown
// errors get a generic message; other kinds expose the error text.
func HandleAppError(log logrus.FieldLogger, w http.ResponseWriter, err error) {
	status, code := StatusFor(err)

	message := "Internal server error"
	var appErr *apperr.Error
	if status != http.StatusInternalServerError && errors.As(err, &appErr) {
		message = appErr.Error()
	}
	RespondErrorWithCode(log, w, status, code, message, err)
}
