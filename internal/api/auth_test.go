package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"username":   "newcook",
		"email":      "newcook@example.com",
		"password":   "password123",
		"first_name": "New",
		"last_name":  "Cook",
	}, "")

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode(t, w)
	assert.Equal(t, true, resp["success"])
	assert.NotEmpty(t, resp["token"])

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "newcook", data["username"])
	_, exposed := data["password_hash"]
	assert.False(t, exposed, "password hash must never be serialized")
}

func TestRegisterValidationErrors(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"username": "ab",
		"email":    "not-an-email",
		"password": "123",
	}, "")

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	errs := resp["errors"].([]interface{})
	assert.GreaterOrEqual(t, len(errs), 3, "all violations are reported together")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "taken")

	w := env.request(t, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"username":   "someoneelse",
		"email":      "taken@example.com",
		"password":   "password123",
		"first_name": "Some",
		"last_name":  "One",
	}, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "returning")

	w := env.request(t, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "returning@example.com",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode(t, w)
	assert.NotEmpty(t, resp["token"])

	w = env.request(t, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "returning@example.com",
		"password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	user, token := env.registerUser(t, "current")

	w := env.request(t, http.MethodGet, "/api/auth/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, user.ID.String(), data["id"])

	w = env.request(t, http.MethodGet, "/api/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.request(t, http.MethodGet, "/api/auth/me", nil, "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "healthy", resp["status"])
}
