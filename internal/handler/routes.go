package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cemetery-console/internal/middleware"
	"github.com/noah-isme/cemetery-console/internal/models"
)

// Routes groups every handler the console mounts. Nil handlers are skipped.
type Routes struct {
	Auth       *AuthHandler
	Dashboard  *DashboardHandler
	Bodies     *BodyHandler
	Events     *EventHandler
	Map        *MapHandler
	Statistics *StatisticsHandler
	Documents  *DocumentHandler
	Users      *UserHandler
	API        *NicheAPIHandler
	Health     *HealthHandler
	Metrics    *MetricsHandler
}

var operatorRoles = []string{models.RoleAdmin, models.RoleUser}

// Register mounts pages, the JSON API and the probes. apiMiddleware runs in front of /api/v1.
func (rt Routes) Register(r gin.IRouter, apiMiddleware ...gin.HandlerFunc) {
	if rt.Health != nil {
		r.GET("/health", rt.Health.Health)
		r.GET("/ready", rt.Health.Ready)
	}
	if rt.Metrics != nil {
		r.GET("/metrics", rt.Metrics.Prometheus)
	}

	if rt.Auth != nil {
		r.GET(middleware.LoginPath, rt.Auth.LoginForm)
		r.POST(middleware.LoginPath, rt.Auth.Login)
		r.POST("/logout", rt.Auth.Logout)
		r.GET(middleware.UnauthorizedPath, rt.Auth.Unauthorized)
	}
	if rt.Dashboard != nil {
		r.GET("/", rt.Dashboard.Show)
	}

	operator := r.Group("", middleware.RequirePage(operatorRoles...))
	if rt.Bodies != nil {
		bodies := operator.Group(bodiesPath)
		bodies.GET("", rt.Bodies.List)
		bodies.POST("", rt.Bodies.Create)
		bodies.GET("/new", rt.Bodies.New)
		bodies.GET("/export", rt.Bodies.Export)
		bodies.POST("/digitize", rt.Bodies.Digitize)
		bodies.GET("/:id/edit", rt.Bodies.Edit)
		bodies.POST("/:id/edit", rt.Bodies.Update)
		bodies.POST("/:id/delete", rt.Bodies.Delete)
	}
	if rt.Events != nil {
		events := operator.Group(bodiesPath + "/:id/events")
		events.GET("", rt.Events.List)
		events.POST("", rt.Events.Create)
		events.POST("/:eventId/edit", rt.Events.Update)
		events.POST("/:eventId/delete", rt.Events.Delete)
	}
	if rt.Map != nil {
		niches := operator.Group(mapPath)
		niches.GET("", rt.Map.Show)
		niches.POST("/assign", rt.Map.Assign)
		niches.GET("/niches/:codigo", rt.Map.Niche)
		niches.POST("/niches/:codigo/release", rt.Map.Release)
		niches.POST("/niches/:codigo/maintenance", rt.Map.Maintenance)
	}
	if rt.Statistics != nil {
		stats := operator.Group("/statistics")
		stats.GET("", rt.Statistics.General)
		stats.GET("/occupancy", rt.Statistics.Occupancy)
		stats.GET("/documentation", rt.Statistics.Documentation)
	}
	if rt.Documents != nil {
		docs := operator.Group(documentsPath)
		docs.GET("", rt.Documents.List)
		docs.POST("", rt.Documents.Create)
		docs.GET("/digitized", rt.Documents.Digitized)
		docs.GET("/report", rt.Documents.Report)
		docs.POST("/:id/edit", rt.Documents.Update)
		docs.POST("/:id/delete", rt.Documents.Delete)
	}
	if rt.Users != nil {
		settings := r.Group("/settings", middleware.RequirePage(models.RoleAdmin))
		settings.GET("", rt.Users.Settings)
		settings.GET("/users", rt.Users.List)
		settings.POST("/users", rt.Users.Create)
		settings.POST("/users/:id/edit", rt.Users.Update)
		settings.POST("/users/:id/delete", rt.Users.Delete)
	}

	if rt.API != nil {
		// Preflights carry no session cookie; apiMiddleware answers them before any gate.
		r.Group("/api/v1", apiMiddleware...).OPTIONS("/*path", func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})

		handlers := append([]gin.HandlerFunc{}, apiMiddleware...)
		handlers = append(handlers, middleware.WithResponseMeta(), middleware.RequireAPI(operatorRoles...))
		api := r.Group("/api/v1", handlers...)
		api.GET("/niches", rt.API.Grid)
		api.POST("/niches/assign", rt.API.Assign)
		api.GET("/niches/:codigo", rt.API.Detail)
		api.POST("/niches/:codigo/release", rt.API.Release)
		api.POST("/niches/:codigo/maintenance", rt.API.Maintenance)
		api.GET("/bodies", rt.API.Bodies)
	}
}
