package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authedRouter(mw gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mw)
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestAPIKeyAuth_ValidHeader(t *testing.T) {
	router := authedRouter(APIKeyAuth([]string{"test-key-1", "test-key-2"}))

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("X-API-Key", "test-key-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAPIKeyAuth_ValidQueryParam(t *testing.T) {
	router := authedRouter(APIKeyAuth([]string{"test-key"}))

	req := httptest.NewRequest("GET", "/test?api_key=test-key", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAPIKeyAuth_Missing(t *testing.T) {
	router := authedRouter(APIKeyAuth([]string{"test-key"}))

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAPIKeyAuth_Invalid(t *testing.T) {
	router := authedRouter(APIKeyAuth([]string{"test-key"}))

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("X-API-Key", "wrong-key")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAdminKeyAuth_Valid(t *testing.T) {
	router := authedRouter(AdminKeyAuth([]string{"admin-key"}))

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("X-API-Key", "admin-key")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAdminKeyAuth_WrongKeyIsForbidden(t *testing.T) {
	router := authedRouter(AdminKeyAuth([]string{"admin-key"}))

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("X-API-Key", "not-admin")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}
