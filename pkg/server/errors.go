package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	perrors "github.com/matzehuels/permrank/pkg/errors"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch perrors.GetCode(err) {
	case perrors.ErrCodeRangeViolation,
		perrors.ErrCodeLengthMismatch,
		perrors.ErrCodeInvalidInput,
		perrors.ErrCodeInvalidAlphabet,
		perrors.ErrCodeInvalidScheme,
		perrors.ErrCodeInvalidFormat,
		perrors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case perrors.ErrCodeOverflow:
		return http.StatusUnprocessableEntity
	case perrors.ErrCodeNotFound:
		return http.StatusNotFound
	case perrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case perrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{Code: code, Error: msg})
}
