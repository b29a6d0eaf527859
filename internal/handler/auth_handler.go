package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/cemetery-console/internal/middleware"
	"github.com/noah-isme/cemetery-console/internal/models"
	appErrors "github.com/noah-isme/cemetery-console/pkg/errors"
)

type authService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// AuthHandler handles sign in and sign out.
type AuthHandler struct {
	PageBase
	service authService
	cookie  middleware.CookieOptions
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(base PageBase, service authService, cookie middleware.CookieOptions) *AuthHandler {
	return &AuthHandler{PageBase: base, service: service, cookie: cookie}
}

type loginView struct {
	Username string
}

// LoginForm renders the sign-in form.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	if middleware.CurrentIdentity(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	p := h.page(c, "Iniciar sesión", "login")
	p.Data = loginView{}
	h.render(c, "login", p)
}

// Login authenticates against the auth service and opens a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	_ = c.ShouldBind(&req)

	session, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		p := h.page(c, "Iniciar sesión", "login")
		p.Data = loginView{Username: req.Username}
		p.Error = appErrors.Message(err)
		status := appErrors.FromError(err).Status
		if status < http.StatusBadRequest {
			status = http.StatusUnauthorized
		}
		h.renderer.Render(c, status, "login", p)
		return
	}

	middleware.SetSessionCookie(c, h.cookie, session)
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout clears the session and returns to the dashboard.
func (h *AuthHandler) Logout(c *gin.Context) {
	if session := middleware.CurrentSession(c); session != nil {
		if err := h.service.Logout(c.Request.Context(), session.ID); err != nil {
			h.logger.Warn("logout failed", zap.Error(err))
		}
	}
	middleware.ClearSessionCookie(c, h.cookie)
	c.Redirect(http.StatusSeeOther, "/")
}

// Unauthorized explains that the operator's role cannot open the page.
func (h *AuthHandler) Unauthorized(c *gin.Context) {
	h.renderer.Render(c, http.StatusForbidden, "unauthorized", h.page(c, "Acceso denegado", ""))
}
