package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newCORSRouter(origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1", New(origins))
	api.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusTeapot) })
	api.GET("/niches", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func serve(r http.Handler, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/v1/niches", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPreflightAdvertisesAPIVerbsOnly(t *testing.T) {
	r := newCORSRouter([]string{"https://panel.example.org/"})

	resp := serve(r, http.MethodOptions, "https://panel.example.org")

	assert.Equal(t, http.StatusNoContent, resp.Code)
	assert.Equal(t, "https://panel.example.org", resp.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "GET, POST, OPTIONS", resp.Header().Get("Access-Control-Allow-Methods"))
	assert.NotContains(t, resp.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestUnknownOriginGetsNoGrant(t *testing.T) {
	r := newCORSRouter([]string{"https://panel.example.org"})

	preflight := serve(r, http.MethodOptions, "https://evil.example.com")
	assert.Equal(t, http.StatusNoContent, preflight.Code)
	assert.Empty(t, preflight.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, preflight.Header().Get("Access-Control-Allow-Methods"))

	get := serve(r, http.MethodGet, "https://evil.example.com")
	assert.Equal(t, http.StatusOK, get.Code)
	assert.Empty(t, get.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", get.Header().Get("Vary"))
}

func TestEmptyListAllowsAnyOrigin(t *testing.T) {
	r := newCORSRouter(nil)

	resp := serve(r, http.MethodGet, "http://localhost:5173")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "http://localhost:5173", resp.Header().Get("Access-Control-Allow-Origin"))
}

func TestSameOriginRequestPassesThrough(t *testing.T) {
	r := newCORSRouter([]string{"https://panel.example.org"})

	resp := serve(r, http.MethodGet, "")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, resp.Header().Get("Access-Control-Allow-Origin"))
}
