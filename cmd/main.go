package main

import (
	"context"
	"net/http"
	"time"

	"github.com/Loikaaa/neplia-sub001/config"
	"github.com/Loikaaa/neplia-sub001/database"
	_ "github.com/Loikaaa/neplia-sub001/docs" // Swagger docs - auto-generated
	"github.com/Loikaaa/neplia-sub001/internal/cache"
	adminctrl "github.com/Loikaaa/neplia-sub001/internal/controller/admin"
	userctrl "github.com/Loikaaa/neplia-sub001/internal/controller/user"
	"github.com/Loikaaa/neplia-sub001/internal/feedback"
	"github.com/Loikaaa/neplia-sub001/internal/grading"
	"github.com/Loikaaa/neplia-sub001/internal/logger"
	"github.com/Loikaaa/neplia-sub001/internal/model"
	"github.com/Loikaaa/neplia-sub001/internal/repository"
	"github.com/Loikaaa/neplia-sub001/internal/service"
	"github.com/Loikaaa/neplia-sub001/internal/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Neplia Mock Test API
// @version 1.0
// @description Mock-test session engine: timed sections, audio playback transport, answer recording, submission and band scoring with practice feedback.
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @contact.url http://example.com/support
// @contact.email support@example.com
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
			cache.NewStore,       // Redis-backed catalog cache, noop without REDIS_URL
		),

		// Repositories Layer
		fx.Provide(
			repository.NewTestRepository,
			repository.NewAttemptRepository,
			repository.NewAnswerRepository,
		),

		// Session engine + scoring components
		fx.Provide(
			func() *session.Manager {
				return session.NewManager()
			},
			func() grading.Grader {
				return grading.NewGrader()
			},
			func(cfg *config.Config) feedback.Service {
				return feedback.NewEvaluator(time.Duration(cfg.Feedback.DelayMs) * time.Millisecond)
			},
			service.NewBandConverterService,
		),

		// Services Layer
		fx.Provide(
			service.NewAdminTestService,
			func(testRepo repository.TestRepository, cacheStore cache.Store, cfg *config.Config) service.UserTestService {
				ttl := time.Duration(cfg.Redis.CatalogTTLSeconds) * time.Second
				return service.NewUserTestService(testRepo, cacheStore, ttl)
			},
			service.NewSubmissionService,
			func(
				testRepo repository.TestRepository,
				manager *session.Manager,
				submissionSvc service.SubmissionService,
				cfg *config.Config,
			) service.SessionService {
				return service.NewSessionService(testRepo, manager, submissionSvc, cfg.Session.EnforceTimingDefault)
			},
		),

		// API Controllers Layer
		fx.Provide(
			adminctrl.NewAdminTestController,
			userctrl.NewUserTestController,
			userctrl.NewSessionController,
		),

		// Invokers - Functions that are executed by Fx
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
	gin.SetMode(gin.DebugMode)

	r := gin.New()

	// Request logging through the global zerolog instance.
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

	// CORS Configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI
	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	adminTestCtrl *adminctrl.AdminTestController,
	userTestCtrl *userctrl.UserTestController,
	sessionCtrl *userctrl.SessionController,
) {
	// Admin Routes (prefixed with /api/v1/admin)
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		testsAdminGroup := adminAPIGroup.Group("/tests")
		testsAdminGroup.POST("", adminTestCtrl.CreateTest)
	}

	// User Routes (prefixed with /api/v1)
	userAPIGroup := router.Group("/api/v1")
	{
		// Test catalog
		userAPIGroup.GET("/tests", userTestCtrl.GetAllTests)
		userAPIGroup.GET("/tests/:test_id", userTestCtrl.GetTestDetails)

		// Live sessions
		userAPIGroup.POST("/tests/:test_id/sessions", sessionCtrl.StartSession)
		userAPIGroup.GET("/sessions/:session_id", sessionCtrl.GetSession)
		userAPIGroup.POST("/sessions/:session_id/next", sessionCtrl.NextSection)
		userAPIGroup.POST("/sessions/:session_id/previous", sessionCtrl.PreviousSection)
		userAPIGroup.PUT("/sessions/:session_id/answers", sessionCtrl.SetAnswer)
		userAPIGroup.GET("/sessions/:session_id/playback", sessionCtrl.GetPlayback)
		userAPIGroup.POST("/sessions/:session_id/playback/toggle", sessionCtrl.TogglePlayback)
		userAPIGroup.POST("/sessions/:session_id/playback/replay", sessionCtrl.ReplayPlayback)
		userAPIGroup.PUT("/sessions/:session_id/playback/volume", sessionCtrl.SetVolume)
		userAPIGroup.POST("/sessions/:session_id/submit", sessionCtrl.SubmitSession)

		// Attempts
		userAPIGroup.GET("/tests/:test_id/my-attempts", userTestCtrl.GetUserTestAttempts)
		userAPIGroup.GET("/attempts/:attempt_id", userTestCtrl.GetAttemptDetails)
	}

	// HTTP Server Setup and Lifecycle
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Mock test API server starting on port %s", cfg.Server.Port)
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
		&model.Test{},
		&model.Section{},
		&model.Question{},
		&model.Option{},
		&model.TestAttempt{},
		&model.SectionResult{},
		&model.Answer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
