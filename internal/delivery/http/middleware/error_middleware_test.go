package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"gatekeeper/internal/delivery/http/response"
	domainerrors "gatekeeper/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMiddleware_HandleHTTPError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantCode    string
		wantLogged  bool
	}{
		{
			name:        "app error",
			err:         errors.WithStack(domainerrors.ErrAuthenticationFailed),
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Authentication error",
			wantCode:    "AUTHENTICATION_FAILED",
		},
		{
			name:        "details stay server side",
			err:         domainerrors.ErrInvalidInput.WithDetails("Username:required"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Username and password are required",
			wantCode:    "INVALID_INPUT",
		},
		{
			name:        "internal app error is logged",
			err:         errors.Wrap(domainerrors.ErrInternalError.WithDetails("pq: connection refused"), "find credential"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Internal server error",
			wantCode:    "INTERNAL_ERROR",
			wantLogged:  true,
		},
		{
			name:        "echo client error",
			err:         echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Request Entity Too Large"),
			wantStatus:  http.StatusRequestEntityTooLarge,
			wantMessage: "Request Entity Too Large",
			wantCode:    "HTTP_ERROR",
		},
		{
			name:        "echo server error",
			err:         echo.NewHTTPError(http.StatusBadGateway, "upstream said no"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Internal server error",
			wantCode:    "INTERNAL_ERROR",
			wantLogged:  true,
		},
		{
			name:        "unknown error",
			err:         errors.New("secret hash $2a$10$abc"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Internal server error",
			wantCode:    "INTERNAL_ERROR",
			wantLogged:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			m := NewErrorMiddleware(slog.New(slog.NewTextHandler(&logs, nil)))

			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/users", nil), rec)

			m.HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body response.ErrorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotContains(t, rec.Body.String(), "details")
			assert.NotContains(t, rec.Body.String(), "$2a$")

			if tt.wantLogged {
				assert.Contains(t, logs.String(), "Unhandled error")
			} else {
				assert.Empty(t, logs.String())
			}
		})
	}
}

func TestErrorMiddleware_CommittedResponseIsLeftAlone(t *testing.T) {
	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.String(http.StatusOK, "done"))

	m.HandleHTTPError(domainerrors.ErrInternalError, c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}
