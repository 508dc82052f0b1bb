package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lvxn0va/legal-ease-ai/internal/config"
	"github.com/lvxn0va/legal-ease-ai/internal/services"
)

func setupRouter(jwtService *services.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	g.Use(NewAuthMiddleware(jwtService).RequireAuth())
	g.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": GetUserID(c),
			"email":   GetUserEmail(c),
		})
	})
	return g
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	jwtService := services.NewJWTService(&config.Config{JWTSecretKey: "test-secret", AccessTokenTTL: time.Hour})
	g := setupRouter(jwtService)

	token, err := jwtService.GenerateAccessToken("user-1", "user@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestRequireAuthRejectsBadRequests(t *testing.T) {
	jwtService := services.NewJWTService(&config.Config{JWTSecretKey: "test-secret", AccessTokenTTL: time.Hour})
	g := setupRouter(jwtService)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"malformed token", "Bearer not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			g.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
			}
		})
	}
}
