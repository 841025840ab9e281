package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Om-Rajpure/Advance-Timetable-Generator/api/swagger"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/handler"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/middleware"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/repository"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/service"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/pkg/cache"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/pkg/config"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/pkg/database"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/pkg/logger"
	corsmiddleware "github.com/Om-Rajpure/Advance-Timetable-Generator/pkg/middleware/cors"
	reqidmiddleware "github.com/Om-Rajpure/Advance-Timetable-Generator/pkg/middleware/requestid"
)

// @title Advance Timetable Generator API
// @version 1.0.0
// @description Constraint-based timetable generation for engineering colleges
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	// History is optional: without it generation still works, versions
	// are simply not persisted.
	var historySvc *service.HistoryService
	if cfg.History.Enabled {
		var cacheRepo *repository.CacheRepository
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, history cache disabled", "error", err)
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
		historySvc = service.NewHistoryService(
			repository.NewVersionRepository(db), cacheRepo, metricsSvc, logr, cfg.History.CacheTTL)
	}

	authSvc := service.NewAuthService(repository.NewUserRepository(db), nil, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     "timetable-api",
	})

	generationCfg := service.GenerationConfig{
		MaxIterations:      cfg.Scheduler.MaxIterations,
		OptimizerPasses:    cfg.Scheduler.OptimizerPasses,
		OptimizerPatience:  cfg.Scheduler.OptimizerPatience,
		MaxDailyLectures:   cfg.Scheduler.MaxDailyLectures,
		TeacherDailyCap:    cfg.Scheduler.TeacherDailyCap,
		TeacherWeeklyCap:   cfg.Scheduler.TeacherWeeklyCap,
		TheorySlack:        cfg.Scheduler.TheorySlack,
		MinWorkingDays:     cfg.Scheduler.MinWorkingDays,
		OptimizerByDefault: cfg.Scheduler.OptimizerByDefault,
	}
	generationSvc := service.NewGenerationService(nil, metricsSvc, nil, logr, generationCfg)
	if historySvc.Enabled() {
		generationSvc = service.NewGenerationService(historySvc, metricsSvc, nil, logr, generationCfg)
	}
	validationSvc := service.NewValidationService(nil, logr)
	exportSvc := service.NewExportService(nil, nil, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	generationHandler := handler.NewGenerationHandler(generationSvc)
	validationHandler := handler.NewValidationHandler(validationSvc)
	historyHandler := handler.NewHistoryHandler(historySvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/register", authHandler.Register)
		api.GET("/timetable/engine/status", generationHandler.EngineStatus)
		api.GET("/constraints", validationHandler.ListConstraints)
	}

	authed := api.Group("", middleware.JWT(authSvc))
	{
		authed.GET("/auth/me", authHandler.Me)
		authed.POST("/timetable/validate", validationHandler.Validate)
		authed.POST("/timetable/validate-edit", validationHandler.ValidateEdit)
		authed.POST("/timetable/export", exportHandler.Export)
		authed.GET("/timetable/versions", historyHandler.List)
		authed.GET("/timetable/versions/:id", historyHandler.Get)
	}

	scheduling := authed.Group("", middleware.RequireRoles(models.RoleAdmin, models.RoleCoordinator))
	{
		scheduling.POST("/timetable/generate", generationHandler.Generate)
		scheduling.POST("/timetable/optimize", generationHandler.Optimize)
		scheduling.POST("/timetable/versions/:id/restore", historyHandler.Restore)
		scheduling.PATCH("/constraints/:name", validationHandler.ToggleConstraint)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting",
		"addr", addr,
		"env", cfg.Env,
		"history_enabled", historySvc.Enabled())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
