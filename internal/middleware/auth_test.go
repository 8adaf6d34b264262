package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/recipeshare/backend/internal/types"
)

type stubValidator struct {
	claims *types.TokenClaims
	err    error
}

func (s *stubValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	return s.claims, s.err
}

func newAuthTestRouter(validator TokenValidator, optional bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	mw := AuthMiddleware(validator)
	if optional {
		mw = OptionalAuthMiddleware(validator)
	}

	router.GET("/protected", mw, func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": claims.Username})
	})
	return router
}

func doRequest(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	valid := &stubValidator{claims: &types.TokenClaims{UserID: uuid.New(), Username: "alice"}}
	invalid := &stubValidator{err: errors.New("bad token")}

	w := doRequest(newAuthTestRouter(valid, false), "Bearer some-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")

	w = doRequest(newAuthTestRouter(valid, false), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(newAuthTestRouter(valid, false), "NotBearer some-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(newAuthTestRouter(invalid, false), "Bearer expired")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthMiddleware(t *testing.T) {
	valid := &stubValidator{claims: &types.TokenClaims{UserID: uuid.New(), Username: "alice"}}
	invalid := &stubValidator{err: errors.New("bad token")}

	w := doRequest(newAuthTestRouter(valid, true), "Bearer some-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")

	// Anonymous and invalid tokens both continue without claims.
	w = doRequest(newAuthTestRouter(valid, true), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "null")

	w = doRequest(newAuthTestRouter(invalid, true), "Bearer expired")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "null")
}

func TestAdminMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(validator TokenValidator) *gin.Engine {
		router := gin.New()
		router.GET("/admin", AuthMiddleware(validator), AdminMiddleware(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return router
	}

	admin := &stubValidator{claims: &types.TokenClaims{UserID: uuid.New(), Username: "root", IsAdmin: true}}
	regular := &stubValidator{claims: &types.TokenClaims{UserID: uuid.New(), Username: "alice"}}

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()
	newRouter(admin).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	newRouter(regular).ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Without AuthMiddleware claims there is no admin either.
	router := gin.New()
	router.GET("/admin", AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestNilRateLimiterIsNoOp(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	var limiter *RateLimiter
	router.GET("/write", limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/write", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
