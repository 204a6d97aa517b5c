package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/observability"
	"github.com/spec-kit/helpdesk/internal/service"
	"github.com/spec-kit/helpdesk/internal/session"
)

const testSecret = "route-test-secret"

func signTestToken(t *testing.T, role, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &session.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newActivityTestApp(t *testing.T) *fiber.App {
	t.Helper()
	logger := zap.NewNop()
	app := fiber.New()
	RegisterMiddlewares(app, logger, observability.NewMetrics(), 0)

	// nil redis client keeps the feed empty but the route fully wired.
	activity := service.NewActivityService(events.NewInMemoryDispatcher(), nil, logger, config.ActivityConfig{})
	middleware := session.NewMiddleware(session.NewVerifier(testSecret))
	app.Get("/activity", middleware.Handle, handlers.NewActivityHandler(activity).List)
	return app
}

func TestActivityRoute(t *testing.T) {
	app := newActivityTestApp(t)

	t.Run("admin reads the feed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/activity", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, "ADMIN", "admin-1"))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var feed []map[string]any
		require.NoError(t, json.Unmarshal(body, &feed))
		assert.Empty(t, feed)
	})

	t.Run("tech is refused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/activity", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, "TECH", "tech-1"))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var envelope struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(body, &envelope))
		assert.Equal(t, "FORBIDDEN", envelope.Error.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/activity", nil)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
