package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cemetery-console/internal/middleware"
	"github.com/noah-isme/cemetery-console/internal/models"
	"github.com/noah-isme/cemetery-console/internal/service"
	"github.com/noah-isme/cemetery-console/internal/web"
)

type renderedPage struct {
	status int
	name   string
	page   web.Page
}

type fakeRenderer struct {
	mu    sync.Mutex
	pages []renderedPage
}

func (r *fakeRenderer) Render(c *gin.Context, status int, name string, page web.Page) {
	r.mu.Lock()
	r.pages = append(r.pages, renderedPage{status: status, name: name, page: page})
	r.mu.Unlock()
	c.String(status, name)
}

func (r *fakeRenderer) last(t *testing.T) renderedPage {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.pages) == 0 {
		t.Fatal("no page rendered")
	}
	return r.pages[len(r.pages)-1]
}

type fakeFlashes struct {
	stored  []models.Flash
	pending *models.Flash
}

func (f *fakeFlashes) SetFlash(_ context.Context, _ *models.Session, flash models.Flash) error {
	f.stored = append(f.stored, flash)
	return nil
}

func (f *fakeFlashes) ConsumeFlash(context.Context, *models.Session) *models.Flash {
	flash := f.pending
	f.pending = nil
	return flash
}

func (f *fakeFlashes) last(t *testing.T) models.Flash {
	t.Helper()
	if len(f.stored) == 0 {
		t.Fatal("no flash stored")
	}
	return f.stored[len(f.stored)-1]
}

func newTestBase() (PageBase, *fakeRenderer, *fakeFlashes) {
	renderer := &fakeRenderer{}
	flashes := &fakeFlashes{}
	return NewPageBase(renderer, flashes, nil), renderer, flashes
}

// asOperator signs the request in with role; an empty role leaves it anonymous.
func asOperator(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if role != "" {
			c.Set(middleware.ContextSessionKey, &models.Session{ID: "sess-1", Token: "tok", Username: "operador"})
			c.Set(middleware.ContextIdentityKey, &service.Identity{Subject: "7", Role: role, ExpiresAt: time.Now().Add(time.Hour)})
		}
		c.Next()
	}
}

func newTestRouter(role string, routes Routes) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(asOperator(role))
	routes.Register(r)
	return r
}

func performRequest(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}
