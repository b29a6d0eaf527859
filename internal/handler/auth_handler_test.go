package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/cemetery-console/internal/middleware"
	"github.com/noah-isme/cemetery-console/internal/models"
	appErrors "github.com/noah-isme/cemetery-console/pkg/errors"
)

type fakeAuthService struct {
	session   *models.Session
	err       error
	requests  []models.LoginRequest
	loggedOut []string
}

func (f *fakeAuthService) Login(_ context.Context, req models.LoginRequest) (*models.Session, error) {
	f.requests = append(f.requests, req)
	return f.session, f.err
}

func (f *fakeAuthService) Logout(_ context.Context, sessionID string) error {
	f.loggedOut = append(f.loggedOut, sessionID)
	return nil
}

var testCookie = middleware.CookieOptions{Name: "console_session"}

func TestLoginSetsCookie(t *testing.T) {
	base, _, _ := newTestBase()
	auth := &fakeAuthService{session: &models.Session{ID: "abc", Token: "t", ExpiresAt: time.Now().Add(time.Hour)}}
	r := newTestRouter("", Routes{Auth: NewAuthHandler(base, auth, testCookie)})

	resp := performRequest(r, postForm("/login", url.Values{"username": {"admin"}, "password": {"secret"}}))

	assert.Equal(t, http.StatusSeeOther, resp.Code)
	assert.Equal(t, "/", resp.Header().Get("Location"))
	assert.Equal(t, []models.LoginRequest{{Username: "admin", Password: "secret"}}, auth.requests)
	cookie := resp.Header().Get("Set-Cookie")
	assert.True(t, strings.HasPrefix(cookie, "console_session=abc"))
	assert.Contains(t, cookie, "HttpOnly")
}

func TestLoginFailureRerendersForm(t *testing.T) {
	base, renderer, _ := newTestBase()
	auth := &fakeAuthService{err: appErrors.ErrInvalidCredentials}
	r := newTestRouter("", Routes{Auth: NewAuthHandler(base, auth, testCookie)})

	resp := performRequest(r, postForm("/login", url.Values{"username": {"admin"}, "password": {"nope"}}))

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	page := renderer.last(t)
	assert.Equal(t, "login", page.name)
	assert.Equal(t, "usuario o contraseña inválidos", page.page.Error)
	assert.Equal(t, loginView{Username: "admin"}, page.page.Data)
}

func TestLoginFormRedirectsSignedIn(t *testing.T) {
	base, _, _ := newTestBase()
	r := newTestRouter(models.RoleUser, Routes{Auth: NewAuthHandler(base, &fakeAuthService{}, testCookie)})

	resp := performRequest(r, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, "/", resp.Header().Get("Location"))
}

func TestLogoutDestroysSession(t *testing.T) {
	base, _, _ := newTestBase()
	auth := &fakeAuthService{}
	r := newTestRouter(models.RoleUser, Routes{Auth: NewAuthHandler(base, auth, testCookie)})

	resp := performRequest(r, postForm("/logout", nil))

	assert.Equal(t, http.StatusSeeOther, resp.Code)
	assert.Equal(t, []string{"sess-1"}, auth.loggedOut)
	assert.Contains(t, resp.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestPageAccessControl(t *testing.T) {
	base, _, _ := newTestBase()
	routes := Routes{
		Auth:  NewAuthHandler(base, &fakeAuthService{}, testCookie),
		Map:   NewMapHandler(base, &fakeNicheService{grid: nil}),
		Users: NewUserHandler(base, &fakeUserService{}, nil),
	}

	cases := []struct {
		name     string
		role     string
		path     string
		status   int
		location string
	}{
		{"anonymous map", "", "/map", http.StatusFound, "/login"},
		{"anonymous settings", "", "/settings/users", http.StatusFound, "/login"},
		{"user settings", models.RoleUser, "/settings/users", http.StatusFound, "/unauthorized"},
		{"user map", models.RoleUser, "/map", http.StatusOK, ""},
		{"admin settings", models.RoleAdmin, "/settings", http.StatusOK, ""},
		{"unknown role", "ROLE_GUEST", "/map", http.StatusFound, "/unauthorized"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(tc.role, routes)
			resp := performRequest(r, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.status, resp.Code)
			assert.Equal(t, tc.location, resp.Header().Get("Location"))
		})
	}
}

func TestUnauthorizedPage(t *testing.T) {
	base, renderer, _ := newTestBase()
	r := newTestRouter(models.RoleUser, Routes{Auth: NewAuthHandler(base, &fakeAuthService{}, testCookie)})

	resp := performRequest(r, httptest.NewRequest(http.MethodGet, "/unauthorized", nil))

	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Equal(t, "unauthorized", renderer.last(t).name)
}
