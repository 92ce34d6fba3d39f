// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"portal_creditos/internal/config"
	"portal_creditos/internal/handlers"
	"portal_creditos/internal/middleware"
	"portal_creditos/internal/repository"
	"portal_creditos/internal/service"
	"portal_creditos/internal/store"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// Temporary logger until the config tells us level and format.
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	if err := config.LoadConfig("configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		tintOpts := &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		}
		handler = tint.NewHandler(os.Stderr, tintOpts)
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}
		handler = slog.NewJSONHandler(os.Stderr, jsonOpts)
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...")

	// Database (GORM)
	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	// Token store: memoria por defecto, Redis si se quiere sobrevivir reinicios.
	var tokenStore store.TokenStore
	switch config.Cfg.TokenStore.Type {
	case "redis":
		redisStore, err := store.NewRedisTokenStore(
			config.Cfg.Redis.Addr,
			config.Cfg.Redis.Password,
			config.Cfg.Redis.DB,
			logger,
		)
		if err != nil {
			slog.Error("Error initializing Redis token store", slog.Any("error", err))
			os.Exit(1)
		}
		defer redisStore.Close()
		tokenStore = redisStore
	default:
		slog.Info("Using in-memory token store (pending tokens are lost on restart)")
		tokenStore = store.NewMemoryTokenStore()
	}

	// Dependency injection
	clienteRepo := repository.NewGormClienteRepository()
	reportRepo := repository.NewGormReportRepository()

	mailer := service.NewMailer(&config.Cfg)
	authService := service.NewAuthService(db, clienteRepo, &config.Cfg)
	resetService := service.NewResetService(db, clienteRepo, tokenStore, mailer, &config.Cfg)
	reportService := service.NewReportService(db, reportRepo)

	authHandler := handlers.NewAuthHandler(authService)
	resetHandler := handlers.NewResetHandler(resetService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Sweeper lifecycle tied to shutdown.
	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	service.StartSweeper(sweeperCtx, tokenStore, config.Cfg.Reset.SweepInterval, logger)

	// Router
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsOptions := cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
		Debug:            false,
	}
	corsHandler := cors.New(corsOptions)
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// API Routes
	r.Route("/api/v1", func(r chi.Router) {
		// --- Public routes ---
		r.Post("/auth/login", authHandler.Login)
		r.Post("/password/forgot", resetHandler.RequestPasswordReset)
		r.Post("/password/validate", resetHandler.ValidateToken)
		r.Post("/password/reset", resetHandler.ResetPassword)

		// --- Protected routes (require JWT) ---
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuthMiddleware(&config.Cfg))

			r.Get("/auth/me", authHandler.GetMe)
			r.Route("/reportes", func(r chi.Router) {
				r.Post("/", reportHandler.CreateReport)
				r.Get("/", reportHandler.ListReports)
			})
		})
	})

	// Health Check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sqlDB, err := db.DB()
		if err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not get DB object", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		if err = sqlDB.PingContext(ctx); err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")
	stopSweeper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
