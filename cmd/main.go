package main

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/softskills/config"
	"github.com/lshigami/softskills/database"
	_ "github.com/lshigami/softskills/docs" // Swagger docs
	adminctrl "github.com/lshigami/softskills/internal/controller/admin"
	supervisorctrl "github.com/lshigami/softskills/internal/controller/supervisor"
	userctrl "github.com/lshigami/softskills/internal/controller/user"
	"github.com/lshigami/softskills/internal/logger"
	"github.com/lshigami/softskills/internal/repository"
	"github.com/lshigami/softskills/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

// @title Soft Skills Assessment API
// @version 1.0
// @description Attempt lifecycle for soft-skills assessments: eligibility, submission with automatic scoring, supervisor review.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			service.NewRedisClient,
			NewGinEngine,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewAttemptRepository,
			repository.NewAssessmentRepository,
			repository.NewUserRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewAttemptSettings,
			service.NewSystemClock,
			service.NewScoreConverterService,
			service.NewAutoScorer,
			service.NewUserDirectory,
			service.NewAttemptService,
			service.NewReviewService,
			service.NewEvaluationService,
			service.NewAdminAssessmentService,
			service.NewAdminUserService,
		),

		// API Controllers Layer
		fx.Provide(
			userctrl.NewAttemptController,
			supervisorctrl.NewReviewController,
			adminctrl.NewAdminAssessmentController,
			adminctrl.NewAdminUserController,
		),

		fx.Invoke(logger.FromConfig),
		fx.Invoke(database.AutoMigrate),
		fx.Invoke(CloseClientsOnStop),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Failed to stop application cleanly")
	}
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	if cfg.AppEnv == "prod" || cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// request log through zerolog
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer mounts every controller under /api/v1 and ties the HTTP server to the fx lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	attemptCtrl *userctrl.AttemptController,
	reviewCtrl *supervisorctrl.ReviewController,
	adminAssessmentCtrl *adminctrl.AdminAssessmentController,
	adminUserCtrl *adminctrl.AdminUserController,
) {
	api := router.Group("/api/v1")
	attemptCtrl.RegisterRoutes(api)
	reviewCtrl.RegisterRoutes(api)

	adminAPI := api.Group("/admin")
	adminAssessmentCtrl.RegisterRoutes(adminAPI)
	adminUserCtrl.RegisterRoutes(adminAPI)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Soft skills API server starting on port %s", cfg.Server.Port)
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
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

// CloseClientsOnStop releases the scorer and cache connections.
func CloseClientsOnStop(lc fx.Lifecycle, scorer service.AutoScorer, cache *redis.Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if closer, ok := scorer.(io.Closer); ok {
				if err := closer.Close(); err != nil {
					log.Warn().Err(err).Str("scorer", scorer.Name()).Msg("Failed to close scorer client")
				}
			}
			if cache != nil {
				return cache.Close()
			}
			return nil
		},
	})
}
