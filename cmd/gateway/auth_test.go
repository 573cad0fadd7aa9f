package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/open-stdnum-gateway/pkg/auth"
	"github.com/yourusername/open-stdnum-gateway/pkg/config"
)

func pingRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(authMiddleware(cfg))
	r.GET("/ping", func(c *gin.Context) { c.String(200, c.GetString("role")) })
	return r
}

func ping(r http.Handler, setup func(*http.Request)) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", "/ping", nil)
	if setup != nil {
		setup(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAPIKeyAuth(t *testing.T) {
	cfg := config.Default()
	cfg.APIKey = "test-secret"
	r := pingRouter(cfg)

	if w := ping(r, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if w := ping(r, func(req *http.Request) { req.Header.Set("X-API-Key", "wrong") }); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong key, got %d", w.Code)
	}
	if w := ping(r, func(req *http.Request) { req.Header.Set("X-API-Key", "test-secret") }); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w := ping(r, func(req *http.Request) { req.URL.RawQuery = "apikey=test-secret" }); w.Code != http.StatusOK {
		t.Errorf("expected 200 for query key, got %d", w.Code)
	}
}

func TestAPIKeyHashAuth(t *testing.T) {
	hash, err := auth.HashKey("hashed-secret")
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.APIKeyHash = hash
	r := pingRouter(cfg)

	if w := ping(r, func(req *http.Request) { req.Header.Set("X-API-Key", "hashed-secret") }); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w := ping(r, func(req *http.Request) { req.Header.Set("X-API-Key", "nope") }); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestBearerAuth(t *testing.T) {
	cfg := config.Default()
	cfg.JWTSecret = "jwt-secret"
	r := pingRouter(cfg)

	token, err := auth.GenerateToken([]byte("jwt-secret"), "cataloguer", "user", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	w := ping(r, func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token) })
	if w.Code != http.StatusOK || w.Body.String() != "user" {
		t.Errorf("expected 200 with role user, got %d %q", w.Code, w.Body.String())
	}

	forged, _ := auth.GenerateToken([]byte("other"), "x", "admin", time.Hour)
	if w := ping(r, func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+forged) }); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for forged token, got %d", w.Code)
	}
}

func TestAuthDisabled(t *testing.T) {
	if w := ping(pingRouter(config.Default()), nil); w.Code != http.StatusOK {
		t.Errorf("expected open access without credentials, got %d", w.Code)
	}
}

func TestRouterRequiresAuth(t *testing.T) {
	cfg := config.Default()
	cfg.APIKey = "test-key"
	r := newTestRouter(t, cfg)

	if w := doJSON(r, http.MethodGet, "/api/identifiers/isbn?id=0306406152", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 on /api, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/health", ""); w.Code != http.StatusOK {
		t.Errorf("health should stay public, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/identifiers/isbn?id=0306406152", nil)
	req.Header.Set("X-API-Key", "test-key")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 OK, got %d. Body: %s", w.Code, w.Body.String())
	}
}
