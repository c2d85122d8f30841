package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/NagaNitishChowdary/Study-Buddy-Agent/internal/handler"
	"github.com/NagaNitishChowdary/Study-Buddy-Agent/internal/middleware"
	"github.com/NagaNitishChowdary/Study-Buddy-Agent/internal/repository"
	"github.com/NagaNitishChowdary/Study-Buddy-Agent/internal/service"
	"github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/cache"
	"github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/config"
	"github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/database"
	"github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/jobs"
	"github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/logger"
	corsmiddleware "github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/middleware/cors"
	reqidmiddleware "github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/middleware/requestid"
	"github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/storage"
	"github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/videolink"
)

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
	defer db.Close()

	metrics := service.NewMetricsService()

	var cacheService *service.CacheService
	if cfg.Reports.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, report caching disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close() //nolint:errcheck
			cacheService = service.NewCacheService(cacheRepo, metrics, cfg.Reports.CacheTTL, logr, true)
		}
	}

	validate := validator.New()

	studentRepo := repository.NewStudentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	recommendationRepo := repository.NewRecommendationRepository(db)
	testResultRepo := repository.NewTestResultRepository(db)
	reportRepo := repository.NewReportRepository(db)

	checker := videolink.NewChecker(cfg.LinkCheck.Timeout)

	studentService := service.NewStudentService(studentRepo, cacheService, validate, logr)
	teacherService := service.NewTeacherService(teacherRepo, validate, logr)
	recommendationService := service.NewRecommendationService(recommendationRepo, checker, cfg.LinkCheck.Concurrency, metrics, validate, logr)
	evaluationService := service.NewEvaluationService(testResultRepo, validate, logr)
	reportService := service.NewReportService(reportRepo, cacheService, cfg.Reports.CacheTTL, logr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handlers := handler.Handlers{
		Students:        handler.NewStudentHandler(studentService),
		Teachers:        handler.NewTeacherHandler(teacherService),
		Recommendations: handler.NewRecommendationHandler(recommendationService),
		Evaluations:     handler.NewEvaluationHandler(evaluationService),
		Reports:         handler.NewReportHandler(reportService),
	}

	var exportService *service.ExportService
	if cfg.Exports.Enabled {
		store, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to prepare export storage", "dir", cfg.Exports.StorageDir, "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exportService = service.NewExportService(reportService, store, signer, cfg.APIPrefix, jobs.QueueConfig{
			Workers:    cfg.Exports.WorkerConcurrency,
			MaxRetries: cfg.Exports.WorkerRetries,
		}, logr)
		exportService.Start(ctx)
		defer exportService.Stop()
		handlers.Exports = handler.NewExportHandler(exportService)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.AgentAuth(cfg.Auth.Secret, cfg.Auth.Enabled))
	handlers.RegisterRoutes(api)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown failed", "error", err)
	}
}
