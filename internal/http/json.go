package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zentra-pos/zentra/internal/data"
	apperrors "github.com/zentra-pos/zentra/internal/errors"
)

// DecodeJSON decodes JSON from the request body into the destination and handles errors.
// Returns true if successful, false if there was an error (error response already written).
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_json", Err: err})
		return false
	}

	return true
}

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Response writer errors (e.g., client disconnect) can't be recovered from here.
		return
	}
}

// ErrorParams groups parameters for WriteError to adhere to the ≤3 params guideline.
type ErrorParams struct {
	Code    int
	ErrCode string
	Err     error
}

// WriteError writes a JSON error response using ErrorParams.
func WriteError(w http.ResponseWriter, p ErrorParams) {
	WriteJSON(w, p.Code, map[string]string{"error": p.ErrCode, "message": p.Err.Error()})
}

// WriteAppError maps an application error taxonomy code to an HTTP status and
// writes the JSON error response. Storage sentinels pass through the service
// layer unwrapped, so they are classified here too. Unknown errors are
// reported as internal.
func WriteAppError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	errCode := "internal_error"

	switch {
	case errors.Is(err, data.ErrUserNotFound),
		errors.Is(err, data.ErrBranchNotFound),
		errors.Is(err, data.ErrOrganizationNotFound):
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
		return
	case errors.Is(err, data.ErrUserExists),
		errors.Is(err, data.ErrEmailExists),
		errors.Is(err, data.ErrOrganizationExists):
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "conflict", Err: err})
		return
	}

	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeNotFound:
		code, errCode = http.StatusNotFound, "not_found"
	case apperrors.ErrCodeConflict:
		code, errCode = http.StatusConflict, "conflict"
	case apperrors.ErrCodeValidation:
		code, errCode = http.StatusBadRequest, "validation_failed"
	case apperrors.ErrCodeForeignKey:
		code, errCode = http.StatusBadRequest, "invalid_reference"
	case apperrors.ErrCodeUnauthorized:
		code, errCode = http.StatusUnauthorized, "authentication_required"
	case apperrors.ErrCodeForbidden:
		code, errCode = http.StatusForbidden, "insufficient_permissions"
	case apperrors.ErrCodeTimeout:
		code, errCode = http.StatusGatewayTimeout, "timeout"
	case apperrors.ErrCodeCanceled:
		code, errCode = 499, "canceled"
	}

	WriteError(w, ErrorParams{Code: code, ErrCode: errCode, Err: err})
}
