package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/microcourses/api/internal/api"
	"github.com/microcourses/api/internal/api/middleware"
	"github.com/microcourses/api/internal/config"
	"github.com/microcourses/api/internal/generation"
	"github.com/microcourses/api/internal/platform/gemini"
	"github.com/microcourses/api/internal/platform/logger"
	"github.com/microcourses/api/internal/platform/postgres"
	"github.com/microcourses/api/internal/service"
	"github.com/microcourses/api/internal/service/auth"
)

// version is stamped at build time via -ldflags.
var version = "dev"

// application holds every long-lived component of the server, wired once at
// startup.
type application struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *sql.DB

	authenticator *middleware.Authenticator
	rateLimiter   *middleware.RateLimiter
	idempotency   *middleware.IdempotencyCache

	authHandler    *api.AuthHandler
	courseHandler  *api.CourseHandler
	creatorHandler *api.CreatorHandler
	adminHandler   *api.AdminHandler
	learnHandler   *api.LearnHandler
	metaHandler    *api.MetaHandler
}

// newApplication loads configuration and builds the full dependency graph:
// database, stores, services, middleware, and handlers.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	log := logger.Setup(cfg.Server)

	db, err := openDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}
	log.Info("database connected and migrated")

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating JWT service: %w", err)
	}

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	verifier := auth.NewBcryptVerifier()

	userStore := postgres.NewUserStore(db, hasher, log)
	courseStore := postgres.NewCourseStore(db, log)
	lessonStore := postgres.NewLessonStore(db, log)
	applicationStore := postgres.NewApplicationStore(db, log)
	enrollmentStore := postgres.NewEnrollmentStore(db, log)
	progressStore := postgres.NewProgressStore(db, log)
	certificateStore := postgres.NewCertificateStore(db, log)

	transcriber := newTranscriber(cfg.LLM, log)

	courseService := service.NewCourseService(courseStore, lessonStore, transcriber, log)
	creatorService := service.NewCreatorService(db, userStore, applicationStore, log)
	learningService := service.NewLearningService(courseStore, lessonStore,
		enrollmentStore, progressStore, certificateStore, log)

	return &application{
		cfg:    cfg,
		logger: log,
		db:     db,

		authenticator: middleware.NewAuthenticator(jwtService),
		rateLimiter: middleware.NewRateLimiter(cfg.Server.RateLimit,
			time.Duration(cfg.Server.RateWindowSeconds)*time.Second),
		idempotency: middleware.NewIdempotencyCache(),

		authHandler:    api.NewAuthHandler(userStore, jwtService, verifier, log),
		courseHandler:  api.NewCourseHandler(courseService),
		creatorHandler: api.NewCreatorHandler(creatorService),
		adminHandler:   api.NewAdminHandler(courseService, creatorService),
		learnHandler:   api.NewLearnHandler(learningService),
		metaHandler:    api.NewMetaHandler(db, version),
	}, nil
}

// newTranscriber picks the lesson summarizer: Gemini when a key is
// configured, the heuristic extractor otherwise. A failed Gemini client
// setup falls back to the heuristic rather than blocking startup.
func newTranscriber(cfg config.LLMConfig, log *slog.Logger) generation.Transcriber {
	if cfg.GeminiAPIKey == "" {
		log.Info("using heuristic transcriber")
		return generation.NewSummaryTranscriber()
	}

	transcriber, err := gemini.NewTranscriber(context.Background(), log, cfg)
	if err != nil {
		log.Warn("gemini transcriber unavailable, falling back to heuristic",
			slog.String("error", err.Error()))
		return generation.NewSummaryTranscriber()
	}

	log.Info("using gemini transcriber", slog.String("model", cfg.ModelName))
	return transcriber
}

func (app *application) close() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}
}
