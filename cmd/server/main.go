package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/Nainjain26/new-blogbackend/pkg/blogcontent/api"
	"github.com/Nainjain26/new-blogbackend/pkg/blogcontent/config"
)

// EnvConfig holds the environment variables the server reads at startup
type EnvConfig struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`
	DatabaseURL string `env:"DATABASE_URL" env-default:""`
	StorageURL  string `env:"STORAGE_URL" env-default:"memory://"`
	AssetPrefix string `env:"ASSET_URL_PREFIX" env-default:"/assets"`
	JWTSecret   string `env:"JWT_SECRET" env-default:"dev-secret"`
}

func main() {
	_ = godotenv.Load()

	var env EnvConfig
	if err := cleanenv.ReadEnv(&env); err != nil {
		slog.Error("failed to read environment", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	if env.Environment == "development" {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	slog.SetDefault(logger)

	serverConfig, err := config.Load(
		config.WithPort(env.Port),
		config.WithEnvironment(env.Environment),
		config.WithDatabase(env.DatabaseURL),
		config.WithStorage(env.StorageURL),
		config.WithAssetURLPrefix(env.AssetPrefix),
		config.WithJWTSecret(env.JWTSecret),
	)
	if err != nil {
		slog.Error("failed to load server configuration", "error", err)
		os.Exit(1)
	}

	if err := serverConfig.Migrate(); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	components, err := serverConfig.Build()
	if err != nil {
		slog.Error("failed to build service", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", serverConfig.Port),
		Handler: routes(serverConfig, components),
	}

	go func() {
		slog.Info("blog content server starting",
			"port", serverConfig.Port,
			"env", serverConfig.Environment,
			"database", serverConfig.DatabaseType,
			"storage", serverConfig.Storage.Type)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exiting")
}

func routes(serverConfig *config.ServerConfig, components *config.Components) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS for development
	if serverConfig.Environment == "development" {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Access-Control-Allow-Origin", "*")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

				if r.Method == "OPTIONS" {
					w.WriteHeader(http.StatusOK)
					return
				}

				next.ServeHTTP(w, r)
			})
		})
	}

	auth := jwtauth.New("HS256", []byte(serverConfig.JWTSecret), nil)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/blogs", api.NewBlogHandler(components.Service, auth).Routes())
	r.Mount("/categories", api.NewCategoryHandler(components.Service, auth).Routes())
	r.Mount("/assets", api.NewAssetHandler(components.Store).Routes())

	return r
}
