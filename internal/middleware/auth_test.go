package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/recipespace/backend/internal/middleware"
	"github.com/recipespace/backend/internal/types"
)

type stubValidator struct {
	claims *types.TokenClaims
	err    error
}

func (s *stubValidator) ValidateToken(_ context.Context, _ string) (*types.TokenClaims, error) {
	return s.claims, s.err
}

func newAuthRouter(v middleware.TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", middleware.AuthMiddleware(v), func(c *gin.Context) {
		id, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "principal missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	return router
}

func TestAuthMiddlewareRejectsBadHeaders(t *testing.T) {
	router := newAuthRouter(&stubValidator{err: errors.New("should not be called")})

	cases := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"no scheme", "sometoken"},
		{"wrong scheme", "Basic sometoken"},
		{"extra parts", "Bearer a b"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthMiddlewareRejectsInvalidToken(t *testing.T) {
	router := newAuthRouter(&stubValidator{err: errors.New("expired")})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewarePassesClaims(t *testing.T) {
	claims := &types.TokenClaims{UserID: 42}
	claims.Subject = "alice"
	router := newAuthRouter(&stubValidator{claims: claims})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id": 42}`, w.Body.String())
}
