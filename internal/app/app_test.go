package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/speechcoach-backend/internal/config"
	"github.com/yungbote/speechcoach-backend/internal/platform/logger"
)

func TestNewWithConfigMockProvider(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	cfg.Generation.Provider = "mock"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	a, err := NewWithConfig(context.Background(), logger.Nop(), cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer a.Close()

	rec := httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthcheck: got=%d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/api-key", strings.NewReader(`{"api_key":"local"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"token"`) {
		t.Fatalf("login: got=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestNewWithConfigRejectsUnknownProvider(t *testing.T) {
	cfg := config.Default()
	cfg.Generation.Provider = "carrier-pigeon"
	cfg.Auth.JWTSecret = "x"
	if _, err := NewWithConfig(context.Background(), logger.Nop(), cfg); err == nil {
		t.Fatalf("expected error")
	}
}
