package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/teachscope/teachscope/config"
	"github.com/teachscope/teachscope/database"
	_ "github.com/teachscope/teachscope/docs" // Swagger docs - auto-generated
	"github.com/teachscope/teachscope/internal/controller"
	adminctrl "github.com/teachscope/teachscope/internal/controller/admin"
	obsctrl "github.com/teachscope/teachscope/internal/controller/observation"
	"github.com/teachscope/teachscope/internal/logger"
	"github.com/teachscope/teachscope/internal/model"
	"github.com/teachscope/teachscope/internal/ratelimit"
	"github.com/teachscope/teachscope/internal/repository"
	"github.com/teachscope/teachscope/internal/service"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title TeachScope Classroom Observation API
// @version 1.0
// @description API for recording rubric-based classroom observations, scoring them, and routing them through a review workflow.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
			NewRateLimiter,
		),

		// Repositories layer
		fx.Provide(
			repository.NewBranchRepository,
			repository.NewTeacherRepository,
			repository.NewRubricRepository,
			repository.NewObservationRepository,
			repository.NewItemScoreRepository,
			repository.NewAuditLogRepository,
		),

		// Services layer
		fx.Provide(
			service.NewScoringService,
			service.NewAuditService,
			service.NewObservationService,
			service.NewRubricService,
			service.NewOrgService,
		),

		// API controllers layer
		fx.Provide(
			adminctrl.NewAdminController,
			obsctrl.NewObservationController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Actor-ID", "X-Actor-Role"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// NewRateLimiter builds the injected per-client limiter; its sweep goroutine
// is tied to the fx lifecycle rather than living as package state.
func NewRateLimiter(lc fx.Lifecycle, cfg *config.Config) *ratelimit.Limiter {
	limiter := ratelimit.New(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			limiter.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			limiter.Stop()
			return nil
		},
	})
	return limiter
}

// RegisterRoutesAndStartServer configures API routes and manages the HTTP
// server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	limiter *ratelimit.Limiter,
	adminCtrl *adminctrl.AdminController,
	observationCtrl *obsctrl.ObservationController,
) {
	api := router.Group("/api/v1", limiter.Middleware(), controller.ActorMiddleware())

	adminGroup := api.Group("/admin", controller.RequireAdmin())
	{
		adminGroup.GET("/rubric", adminCtrl.GetRubric)
		adminGroup.POST("/rubric/domains", adminCtrl.CreateRubricDomain)
		adminGroup.PUT("/rubric/domains/:id", adminCtrl.UpdateRubricDomain)
		adminGroup.DELETE("/rubric/domains/:id", adminCtrl.ArchiveRubricDomain)
		adminGroup.POST("/rubric/domains/:id/items", adminCtrl.AddRubricItem)
		adminGroup.DELETE("/rubric/items/:id", adminCtrl.ArchiveRubricItem)

		adminGroup.POST("/branches", adminCtrl.CreateBranch)
		adminGroup.GET("/branches", adminCtrl.ListBranches)
		adminGroup.DELETE("/branches/:id", adminCtrl.ArchiveBranch)

		adminGroup.POST("/teachers", adminCtrl.CreateTeacher)
		adminGroup.GET("/teachers", adminCtrl.ListTeachers)
		adminGroup.DELETE("/teachers/:id", adminCtrl.ArchiveTeacher)

		adminGroup.GET("/audit", adminCtrl.GetAuditLog)
	}

	observations := api.Group("/observations")
	{
		observations.POST("", observationCtrl.CreateObservation)
		observations.GET("", observationCtrl.ListObservations)
		observations.GET("/:id", observationCtrl.GetObservation)
		observations.PUT("/:id", observationCtrl.UpdateObservation)
		observations.DELETE("/:id", observationCtrl.DeleteObservation)
		observations.GET("/:id/validate", observationCtrl.ValidateObservation)
		observations.GET("/:id/score", observationCtrl.GetScoreReport)
		observations.POST("/:id/transition", observationCtrl.TransitionObservation)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("TeachScope API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Branch{},
		&model.User{},
		&model.Teacher{},
		&model.RubricDomain{},
		&model.RubricItem{},
		&model.Observation{},
		&model.ItemScore{},
		&model.AuditLog{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
