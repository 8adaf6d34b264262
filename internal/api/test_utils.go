package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/recipeshare/backend/config"
	"github.com/recipeshare/backend/internal/models"
	"github.com/recipeshare/backend/internal/service"
	"github.com/recipeshare/backend/internal/testhelpers"
	"github.com/recipeshare/backend/internal/types"
)

// testEnv bundles everything an endpoint test needs.
type testEnv struct {
	Router *gin.Engine
	DB     *gorm.DB
	Auth   *service.AuthService
}

// setupTestEnv builds a router backed by an in-memory database. Redis
// is pointed at an unreachable port so rate limiting degrades to a
// no-op, the same way production behaves without Redis.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupSQLite(t)
	authService := service.NewAuthService(db, "test-secret")
	imageService := service.NewImageService(nil)

	cfg := &config.Config{
		JWTSecret: "test-secret",
		RedisHost: "127.0.0.1",
		RedisPort: "1",
	}

	router := gin.New()
	RegisterRoutes(router, db, authService, imageService, cfg)

	return &testEnv{
		Router: router,
		DB:     db,
		Auth:   authService,
	}
}

// registerUser creates a user through the service and returns it with a
// valid token.
func (e *testEnv) registerUser(t *testing.T, username string) (*models.User, string) {
	t.Helper()
	user, token, err := e.Auth.Register(context.Background(), types.RegisterRequest{
		Username:  username,
		Email:     fmt.Sprintf("%s@example.com", username),
		Password:  "password123",
		FirstName: "Test",
		LastName:  "User",
	})
	if err != nil {
		t.Fatalf("failed to register test user: %v", err)
	}
	return user, token
}

// registerAdmin creates an administrator. The admin claim lives in the
// token, so a fresh login follows the promotion.
func (e *testEnv) registerAdmin(t *testing.T, username string) (*models.User, string) {
	t.Helper()
	user, _ := e.registerUser(t, username)
	user.IsAdmin = true
	if err := e.DB.Save(user).Error; err != nil {
		t.Fatalf("failed to promote test user: %v", err)
	}
	user, token, err := e.Auth.Login(context.Background(), user.Email, "password123")
	if err != nil {
		t.Fatalf("failed to log in as admin: %v", err)
	}
	return user, token
}

// request performs an HTTP request against the router. A non-nil body
// is JSON encoded; a non-empty token is sent as a bearer token.
func (e *testEnv) request(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

// decode unmarshals a response body into a generic map.
func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

// recipeBody returns a valid recipe creation payload.
func recipeBody(title string) map[string]interface{} {
	return map[string]interface{}{
		"title":       title,
		"description": "A recipe used in tests",
		"prep_time":   10,
		"cook_time":   20,
		"servings":    2,
		"difficulty":  "Easy",
		"category":    "Dinner",
		"ingredients": []map[string]string{
			{"name": "flour", "amount": "100", "unit": "g"},
		},
		"instructions": []map[string]interface{}{
			{"step": 1, "description": "Mix everything."},
		},
	}
}
