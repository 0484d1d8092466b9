package httpx

import (
	"net/http"

	apperrors "github.com/voiceforge/voiceforge/internal/errors"
)

// statusClientClosedRequest mirrors nginx's non-standard code for requests
// abandoned by the client.
const statusClientClosedRequest = 499

// statusForCode maps application error codes to HTTP status codes.
func statusForCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeCanceled:
		return statusClientClosedRequest
	case apperrors.ErrCodeUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RenderError writes err as a JSON error response, mapping application error
// codes to HTTP statuses. Internal errors never leak their cause to clients.
func RenderError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	status := statusForCode(code)

	if status == http.StatusInternalServerError {
		WriteError(w, status, string(apperrors.ErrCodeInternal), "internal server error")
		return
	}

	WriteError(w, status, string(code), err.Error())
}
