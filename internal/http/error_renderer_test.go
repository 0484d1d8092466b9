package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/voiceforge/voiceforge/internal/errors"
)

func TestRenderError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"validation", apperrors.Validation("name is required"), http.StatusBadRequest, "name is required"},
		{"unauthorized", apperrors.Unauthorized("invalid credentials"), http.StatusUnauthorized, "invalid credentials"},
		{"not found", apperrors.NotFound("job not found"), http.StatusNotFound, "job not found"},
		{"conflict", apperrors.Conflict("user already exists"), http.StatusConflict, "user already exists"},
		{"upstream", apperrors.UpstreamUnavailable("service unavailable"), http.StatusBadGateway, "service unavailable"},
		{"timeout", apperrors.Wrap(errors.New("deadline"), apperrors.ErrCodeTimeout, "timed out"), http.StatusGatewayTimeout, "timed out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RenderError(rec, tt.err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}

	t.Run("internal errors never leak their cause", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RenderError(rec, errors.New("pq: column secret_stuff does not exist"))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "secret_stuff")
		assert.Contains(t, rec.Body.String(), "internal server error")
	})
}
