// Package main is the entrypoint for the Recipebox API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/recipebox/recipebox/internal/authz"
	"github.com/recipebox/recipebox/internal/cache"
	"github.com/recipebox/recipebox/internal/config"
	"github.com/recipebox/recipebox/internal/handler"
	"github.com/recipebox/recipebox/internal/metrics"
	"github.com/recipebox/recipebox/internal/middleware"
	"github.com/recipebox/recipebox/internal/repository"
	"github.com/recipebox/recipebox/internal/server"
	"github.com/recipebox/recipebox/internal/service"
	"github.com/recipebox/recipebox/internal/storage"
)

func main() {
	// Initialize context
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Initialize cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to Redis")

	// Initialize image store
	store := storage.NewFileStore(cfg.UploadDir)

	// Initialize services
	metricsRecorder := metrics.NewNoop()
	policy := authz.NewOwnerPolicy()
	userService := service.NewUserService(repo, cfg.PasswordMinLength, metricsRecorder)
	tagService := service.NewTagService(repo, policy, metricsRecorder)
	ingredientService := service.NewIngredientService(repo, policy, metricsRecorder)
	recipeService := service.NewRecipeService(repo, policy, store, logger, metricsRecorder)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	userHandler := handler.NewUserHandler(userService, logger)
	tagHandler := handler.NewTagHandler(tagService, logger)
	ingredientHandler := handler.NewIngredientHandler(ingredientService, logger)
	recipeHandler := handler.NewRecipeHandler(recipeService, logger, cfg.MaxUploadSize)
	adminHandler := handler.NewAdminHandler(userService, logger)

	// Setup router
	r := setupRouter(routerDeps{
		base:        h,
		health:      healthHandler,
		users:       userHandler,
		tags:        tagHandler,
		ingredients: ingredientHandler,
		recipes:     recipeHandler,
		admin:       adminHandler,
		repo:        repo,
		cache:       cacheClient,
		cfg:         cfg,
		logger:      logger,
	})

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	// Registered first so the database is released last during shutdown.
	srv.OnShutdown("database", func(ctx context.Context) error {
		repo.Close()
		return nil
	})
	srv.OnShutdown("redis", func(ctx context.Context) error {
		return cacheClient.Close()
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"upload_dir", cfg.UploadDir,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type routerDeps struct {
	base        *handler.Handler
	health      *handler.HealthHandler
	users       *handler.UserHandler
	tags        *handler.TagHandler
	ingredients *handler.IngredientHandler
	recipes     *handler.RecipeHandler
	admin       *handler.AdminHandler
	repo        *repository.Repository
	cache       *cache.Cache
	cfg         *config.Config
	logger      *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(d routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.logger))
	r.Use(middleware.Recoverer(d.logger))

	// Health endpoints (no auth required)
	r.Get("/healthz", d.health.Healthz)
	r.Get("/readyz", d.health.Readyz)

	// Root info endpoint
	r.Get("/", d.base.Hello)

	// Auth middleware configuration
	authCfg := middleware.AuthConfig{
		Logger:     d.logger,
		Repository: d.repo,
		Cache:      d.cache,
	}

	// JSON endpoints get a small body cap; the recipe subtree allows
	// multipart overhead on top of the upload limit.
	jsonBody := chimiddleware.RequestSize(d.cfg.MaxRequestBodySize)
	uploadBody := chimiddleware.RequestSize(d.cfg.MaxUploadSize + d.cfg.MaxRequestBodySize)

	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints: registration and token issuance
		r.With(jsonBody).Post("/users", d.users.Create)
		r.With(jsonBody).Post("/users/token", d.users.Token)

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(authCfg))

			if d.cfg.RateLimitEnabled {
				r.Use(middleware.RateLimit(middleware.RateLimitConfig{
					Logger:        d.logger,
					Cache:         d.cache,
					RatePerMinute: d.cfg.RateLimitRPM,
					Burst:         d.cfg.RateLimitBurst,
				}))
			}

			// Profile of the authenticated user
			r.Route("/users/me", func(r chi.Router) {
				r.Use(jsonBody)
				r.Get("/", d.users.Me)
				r.Patch("/", d.users.UpdateMe)
				r.Put("/", d.users.UpdateMe)
			})

			// Tag catalog
			r.Route("/tags", func(r chi.Router) {
				r.Use(jsonBody)
				r.Get("/", d.tags.List)
				r.Post("/", d.tags.Create)
				r.Patch("/{id}", d.tags.Update)
				r.Delete("/{id}", d.tags.Delete)
			})

			// Ingredient catalog
			r.Route("/ingredients", func(r chi.Router) {
				r.Use(jsonBody)
				r.Get("/", d.ingredients.List)
				r.Post("/", d.ingredients.Create)
				r.Patch("/{id}", d.ingredients.Update)
				r.Delete("/{id}", d.ingredients.Delete)
			})

			// Recipe catalog
			r.Route("/recipes", func(r chi.Router) {
				r.Use(uploadBody)
				r.Get("/", d.recipes.List)
				r.Post("/", d.recipes.Create)
				r.Get("/{id}", d.recipes.Get)
				r.Put("/{id}", d.recipes.Replace)
				r.Patch("/{id}", d.recipes.PartialUpdate)
				r.Delete("/{id}", d.recipes.Delete)
				r.Post("/{id}/image", d.recipes.UploadImage)
			})

			// Admin endpoints (staff only)
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireStaff())
				r.Get("/users", d.admin.ListUsers)
			})
		})
	})

	// 404 and 405 handlers
	r.NotFound(d.base.NotFound)
	r.MethodNotAllowed(d.base.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
