package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "onboarding/pkg/domain-errors"
)

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Errors after WriteHeader cannot change the status code, so we ignore encoding errors.
	_ = json.NewEncoder(w).Encode(response)
}

// WriteText writes a plain-text body. Registration clients read the body verbatim.
func WriteText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// WriteError centralizes domain error translation to HTTP responses.
// Client errors carry their message as-is. Server errors carry the full
// diagnostic trail since the endpoint is operator-facing.
func WriteError(w http.ResponseWriter, err error) {
	status := DomainCodeToHTTPStatus(dErrors.CodeOf(err))
	if status >= http.StatusInternalServerError {
		WriteText(w, status, dErrors.Trace(err))
		return
	}
	WriteText(w, status, err.Error())
}

// DomainCodeToHTTPStatus translates domain error codes to HTTP status codes.
func DomainCodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeValidation, dErrors.CodeInvariantViolation:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		// CodeUnavailable and CodeInternal are both reported as 500; callers
		// retry the whole request either way.
		return http.StatusInternalServerError
	}
}
