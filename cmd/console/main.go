package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/cemetery-console/api/swagger"
	"github.com/noah-isme/cemetery-console/internal/handler"
	internalmiddleware "github.com/noah-isme/cemetery-console/internal/middleware"
	"github.com/noah-isme/cemetery-console/internal/repository"
	"github.com/noah-isme/cemetery-console/internal/service"
	"github.com/noah-isme/cemetery-console/internal/web"
	"github.com/noah-isme/cemetery-console/pkg/cache"
	"github.com/noah-isme/cemetery-console/pkg/config"
	"github.com/noah-isme/cemetery-console/pkg/export"
	"github.com/noah-isme/cemetery-console/pkg/httpclient"
	"github.com/noah-isme/cemetery-console/pkg/logger"
	corsmiddleware "github.com/noah-isme/cemetery-console/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/cemetery-console/pkg/middleware/requestid"
)

// @title Cemetery Console API
// @version 1.0.0
// @description JSON endpoints of the cemetery records console. Authenticated with the console session cookie.
// @BasePath /
// @schemes http

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := service.NewMetricsService()
	validate := validator.New()

	var store service.SessionStore
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Fatal("failed to connect session store", zap.Error(err))
		}
		defer redisClient.Close() //nolint:errcheck
		store = repository.NewRedisSessionStore(redisClient, logr)
	default:
		store = repository.NewMemorySessionStore()
	}
	sessions := service.NewSessionService(store, cfg.Session.TTL, metrics, logr)

	// Backend calls have no timeout of their own; they end with the browser request.
	clientOpts := []httpclient.Option{
		httpclient.WithObserver(metrics),
		httpclient.WithLogger(logr),
	}
	authClient := httpclient.New("auth", cfg.Backends.AuthURL, append(clientOpts, httpclient.WithBearer())...)
	managementClient := httpclient.New("management", cfg.Backends.ManagementURL, clientOpts...)
	documentsClient := httpclient.New("documents", cfg.Backends.DocumentsURL, append(clientOpts, httpclient.WithBearer())...)

	bodyRepo := repository.NewBodyRepository(managementClient)
	nicheRepo := repository.NewNicheRepository(managementClient)
	assignmentRepo := repository.NewAssignmentRepository(managementClient)
	eventRepo := repository.NewEventRepository(managementClient)
	documentRepo := repository.NewDocumentRepository(documentsClient)
	userRepo := repository.NewUserRepository(authClient)

	authService := service.NewAuthService(userRepo, sessions, validate, logr)
	bodyService := service.NewBodyService(bodyRepo, validate, cfg.UI.PageSize, logr)
	exportService := service.NewExportService(bodyService, logr, export.NewCSVExporter(), export.NewPDFExporter())
	eventService := service.NewEventService(eventRepo, bodyRepo, assignmentRepo, validate, cfg.UI.PageSize, logr)
	nicheService := service.NewNicheService(nicheRepo, assignmentRepo, bodyRepo, validate, logr)
	documentService := service.NewDocumentService(documentRepo, validate, cfg.UI.PageSize, logr)
	userService := service.NewUserService(userRepo, validate, cfg.UI.PageSize, logr)
	dashboardService := service.NewDashboardService(bodyRepo, nicheRepo, documentRepo,
		service.DashboardServiceConfig{RecentEntries: cfg.UI.RecentEntries}, logr)
	statisticsService := service.NewStatisticsService(bodyRepo, nicheRepo, documentRepo, userRepo, logr)
	healthService := service.NewHealthService([]service.HealthTarget{
		{Name: "auth", URL: cfg.Backends.AuthURL},
		{Name: "management", URL: cfg.Backends.ManagementURL},
		{Name: "documents", URL: cfg.Backends.DocumentsURL},
	}, cfg.Backends.HealthCheckTimeout, metrics, logr)

	renderer, err := web.NewRenderer(logr)
	if err != nil {
		logr.Fatal("failed to parse templates", zap.Error(err))
	}
	base := handler.NewPageBase(renderer, sessions, logr)
	cookie := internalmiddleware.CookieOptions{Name: cfg.Session.CookieName, Secure: cfg.Session.Secure}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(internalmiddleware.Metrics(metrics))
	r.Use(internalmiddleware.Session(sessions, authService, cookie))
	r.Use(logger.GinMiddleware(logr))
	r.Use(internalmiddleware.Audit(logr))

	r.GET("/static/*filepath", gin.WrapH(web.StaticHandler()))

	handler.Routes{
		Auth:       handler.NewAuthHandler(base, authService, cookie),
		Dashboard:  handler.NewDashboardHandler(base, dashboardService),
		Bodies:     handler.NewBodyHandler(base, bodyService, exportService),
		Events:     handler.NewEventHandler(base, eventService),
		Map:        handler.NewMapHandler(base, nicheService),
		Statistics: handler.NewStatisticsHandler(base, statisticsService),
		Documents:  handler.NewDocumentHandler(base, documentService),
		Users:      handler.NewUserHandler(base, userService, cfg),
		API:        handler.NewNicheAPIHandler(nicheService, bodyService),
		Health:     handler.NewHealthHandler(healthService),
		Metrics:    handler.NewMetricsHandler(metrics.Handler()),
	}.Register(r, corsmiddleware.New(cfg.CORS.AllowedOrigins))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("console starting", "addr", srv.Addr, "env", cfg.Env, "session_store", cfg.Session.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("console stopped")
}
