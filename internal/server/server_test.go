package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipeshare/backend/config"
	"github.com/recipeshare/backend/internal/service"
	"github.com/recipeshare/backend/internal/testhelpers"
)

func TestServerServesHealthCheck(t *testing.T) {
	db := testhelpers.SetupSQLite(t)

	cfg := &config.Config{
		ServerHost: "localhost",
		ServerPort: "0",
		JWTSecret:  "test-secret",
		RedisHost:  "127.0.0.1",
		RedisPort:  "1",
	}

	srv := New(cfg, db, service.NewAuthService(db, cfg.JWTSecret), service.NewImageService(nil))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestServerRejectsUnknownRoute(t *testing.T) {
	db := testhelpers.SetupSQLite(t)

	cfg := &config.Config{
		ServerHost: "localhost",
		ServerPort: "0",
		JWTSecret:  "test-secret",
		RedisHost:  "127.0.0.1",
		RedisPort:  "1",
	}

	srv := New(cfg, db, service.NewAuthService(db, cfg.JWTSecret), service.NewImageService(nil))

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
