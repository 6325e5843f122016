package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func setupProtectedRoute(handler gin.HandlerFunc, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware()}, extra...)
	handlers = append(handlers, handler)
	router.GET("/protected", handlers...)
	return router
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	validToken := signTestToken(t, "test-secret", jwt.MapClaims{
		"user_id": float64(7),
		"email":   "thabo@example.com",
		"role":    "seeker",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	expiredToken := signTestToken(t, "test-secret", jwt.MapClaims{
		"user_id": float64(7),
		"email":   "thabo@example.com",
		"role":    "seeker",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	wrongKeyToken := signTestToken(t, "other-secret", jwt.MapClaims{
		"user_id": float64(7),
		"email":   "thabo@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	missingIDToken := signTestToken(t, "test-secret", jwt.MapClaims{
		"email": "thabo@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	missingEmailToken := signTestToken(t, "test-secret", jwt.MapClaims{
		"user_id": float64(7),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	stringIDToken := signTestToken(t, "test-secret", jwt.MapClaims{
		"user_id": "7",
		"email":   "thabo@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{name: "valid token", authHeader: "Bearer " + validToken, expectedStatus: http.StatusOK},
		{name: "missing header", authHeader: "", expectedStatus: http.StatusUnauthorized},
		{name: "malformed header", authHeader: validToken, expectedStatus: http.StatusUnauthorized},
		{name: "expired token", authHeader: "Bearer " + expiredToken, expectedStatus: http.StatusUnauthorized},
		{name: "wrong signing key", authHeader: "Bearer " + wrongKeyToken, expectedStatus: http.StatusUnauthorized},
		{name: "valid signature but no user_id claim", authHeader: "Bearer " + missingIDToken, expectedStatus: http.StatusUnauthorized},
		{name: "valid signature but no email claim", authHeader: "Bearer " + missingEmailToken, expectedStatus: http.StatusUnauthorized},
		{name: "user_id claim of the wrong type", authHeader: "Bearer " + stringIDToken, expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupProtectedRoute(func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{
					"user_id": c.GetUint("user_id"),
					"role":    c.GetString("role"),
				})
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestAuthMiddlewareSetsClaims(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	token := signTestToken(t, "test-secret", jwt.MapClaims{
		"user_id": float64(42),
		"email":   "lerato@example.com",
		"role":    "employer",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	var gotID uint
	var gotRole string
	router := setupProtectedRoute(func(c *gin.Context) {
		gotID = c.GetUint("user_id")
		gotRole = c.GetString("role")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(42), gotID)
	assert.Equal(t, "employer", gotRole)
}

func TestRequireRole(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	seekerToken := signTestToken(t, "test-secret", jwt.MapClaims{
		"user_id": float64(7),
		"email":   "thabo@example.com",
		"role":    "seeker",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name           string
		allowed        []string
		expectedStatus int
	}{
		{name: "matching role passes", allowed: []string{"seeker"}, expectedStatus: http.StatusOK},
		{name: "any of several roles passes", allowed: []string{"employer", "seeker"}, expectedStatus: http.StatusOK},
		{name: "wrong role is forbidden", allowed: []string{"employer"}, expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupProtectedRoute(func(c *gin.Context) {
				c.Status(http.StatusOK)
			}, RequireRole(tt.allowed...))

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+seekerToken)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
