// Package config assembles a runnable blog content service from
// declarative server configuration.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Nainjain26/new-blogbackend/pkg/blogcontent"
	"github.com/Nainjain26/new-blogbackend/pkg/blogcontent/repo/memory"
	repopg "github.com/Nainjain26/new-blogbackend/pkg/blogcontent/repo/postgres"
	fsstorage "github.com/Nainjain26/new-blogbackend/pkg/blogcontent/storage/fs"
	memorystorage "github.com/Nainjain26/new-blogbackend/pkg/blogcontent/storage/memory"
	s3storage "github.com/Nainjain26/new-blogbackend/pkg/blogcontent/storage/s3"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top
// of library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:         "8080",
		Environment:  "development",
		DatabaseType: "memory",
		Storage: StorageConfig{
			Type:      "memory",
			URLPrefix: "/assets",
		},
	}
}

// ServerConfig represents server configuration for the blog content service
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Database configuration
	DatabaseURL  string
	DatabaseType string // "memory", "postgres"

	// Storage configuration
	Storage StorageConfig

	// Auth configuration
	JWTSecret string
}

// StorageConfig represents configuration for the asset storage backend
type StorageConfig struct {
	Type string // "memory", "fs", "s3"

	// Filesystem options
	BaseDir   string
	URLPrefix string

	// S3 options
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	UsePathStyle    bool
}

// Components holds the wired pieces of a configured server. The store is
// exposed separately so the HTTP layer can serve filesystem-backed assets.
type Components struct {
	Service    blogcontent.Service
	Repository blogcontent.Repository
	Store      blogcontent.BlobStore
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return errors.New("database_type must be 'memory' or 'postgres'")
	}
	if c.DatabaseType == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url is required when using postgres")
	}

	switch c.Storage.Type {
	case "memory":
	case "fs":
		if c.Storage.BaseDir == "" {
			return errors.New("storage base_dir is required for fs storage")
		}
	case "s3":
		if c.Storage.Bucket == "" {
			return errors.New("storage bucket is required for s3 storage")
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}

	if c.Environment == "production" && c.JWTSecret == "" {
		return errors.New("jwt_secret is required in production")
	}

	return nil
}

// Build wires the repository, storage backend and service together.
func (c *ServerConfig) Build() (*Components, error) {
	repo, err := c.buildRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to build repository: %w", err)
	}

	store, err := c.buildStorage()
	if err != nil {
		return nil, fmt.Errorf("failed to build storage backend: %w", err)
	}

	svc, err := blogcontent.New(
		blogcontent.WithRepository(repo),
		blogcontent.WithBlobStore(store),
		blogcontent.WithLogger(slog.Default()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build service: %w", err)
	}

	return &Components{Service: svc, Repository: repo, Store: store}, nil
}

func (c *ServerConfig) buildRepository() (blogcontent.Repository, error) {
	switch c.DatabaseType {
	case "memory":
		return memory.New(), nil
	case "postgres":
		pool, err := pgxpool.New(context.Background(), c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create pgx pool: %w", err)
		}
		return repopg.NewWithPool(pool), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
}

func (c *ServerConfig) buildStorage() (blogcontent.BlobStore, error) {
	switch c.Storage.Type {
	case "memory":
		return memorystorage.New(), nil
	case "fs":
		return fsstorage.New(fsstorage.Config{
			BaseDir:   c.Storage.BaseDir,
			URLPrefix: c.Storage.URLPrefix,
		})
	case "s3":
		return s3storage.New(s3storage.Config{
			Region:          c.Storage.Region,
			Bucket:          c.Storage.Bucket,
			AccessKeyID:     c.Storage.AccessKeyID,
			SecretAccessKey: c.Storage.SecretAccessKey,
			Endpoint:        c.Storage.Endpoint,
			UsePathStyle:    c.Storage.UsePathStyle,
		})
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}
}

// Migrate brings the configured database schema up to date. A no-op for
// the in-memory repository.
func (c *ServerConfig) Migrate() error {
	if c.DatabaseType != "postgres" {
		return nil
	}
	return repopg.Migrate(c.DatabaseURL)
}
