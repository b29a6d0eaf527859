package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cemetery-console/internal/models"
	"github.com/noah-isme/cemetery-console/internal/service"
	"github.com/noah-isme/cemetery-console/internal/viewmodel"
	"github.com/noah-isme/cemetery-console/pkg/config"
)

type userService interface {
	List(ctx context.Context, filter service.UserFilter) (viewmodel.Page[models.User], error)
	Register(ctx context.Context, in models.UserInput) error
	Update(ctx context.Context, id int64, in models.UserInput) error
	Delete(ctx context.Context, id int64) error
}

const usersPath = "/settings/users"

// UserHandler serves the settings section: general information and user management.
type UserHandler struct {
	PageBase
	users    userService
	settings settingsView
}

type settingsView struct {
	Env           string
	AuthURL       string
	ManagementURL string
	DocumentsURL  string
	SessionStore  string
	PageSize      int
}

type usersView struct {
	Filter service.UserFilter
	Page   viewmodel.Page[models.User]
	Roles  []string
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(base PageBase, users userService, cfg *config.Config) *UserHandler {
	h := &UserHandler{PageBase: base, users: users}
	if cfg != nil {
		h.settings = settingsView{
			Env:           cfg.Env,
			AuthURL:       cfg.Backends.AuthURL,
			ManagementURL: cfg.Backends.ManagementURL,
			DocumentsURL:  cfg.Backends.DocumentsURL,
			SessionStore:  cfg.Session.Store,
			PageSize:      cfg.UI.PageSize,
		}
	}
	return h
}

// Settings renders general console information.
func (h *UserHandler) Settings(c *gin.Context) {
	p := h.page(c, "Configuración general", "settings")
	p.Data = h.settings
	h.render(c, "settings", p)
}

// List renders the users table.
func (h *UserHandler) List(c *gin.Context) {
	p := h.page(c, "Gestión de usuarios", "settings")
	var filter service.UserFilter
	_ = c.ShouldBindQuery(&filter)

	page, err := h.users.List(c.Request.Context(), filter)
	if err != nil {
		h.renderLoadError(c, "users", p, err)
		return
	}
	p.Data = usersView{Filter: filter, Page: page, Roles: []string{models.RoleAdmin, models.RoleUser}}
	h.render(c, "users", p)
}

// Create registers a user.
func (h *UserHandler) Create(c *gin.Context) {
	var in models.UserInput
	_ = c.ShouldBind(&in)
	if err := h.users.Register(c.Request.Context(), in); err != nil {
		h.fail(c, usersPath, "Error en el registro", err)
		return
	}
	h.succeed(c, usersPath, "Usuario registrado correctamente")
}

// Update changes a user; a blank password keeps the current one.
func (h *UserHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, usersPath, "Error en la actualización", err)
		return
	}
	var in models.UserInput
	_ = c.ShouldBind(&in)
	if err := h.users.Update(c.Request.Context(), id, in); err != nil {
		h.fail(c, usersPath, "Error en la actualización", err)
		return
	}
	h.succeed(c, usersPath, "Usuario actualizado correctamente")
}

// Delete removes a user.
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, usersPath, "Error al eliminar", err)
		return
	}
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, usersPath, "Error al eliminar", err)
		return
	}
	h.succeed(c, usersPath, "Usuario eliminado correctamente")
}
