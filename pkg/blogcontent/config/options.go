package config

import (
	"fmt"
	"net/url"
	"strings"
)

// WithPort sets the server port
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		c.Port = port
		return nil
	}
}

// WithEnvironment sets the environment (development, production, testing)
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		if env == "" {
			return fmt.Errorf("environment cannot be empty")
		}
		c.Environment = env
		return nil
	}
}

// WithDatabase configures the database backend. An empty URL selects the
// in-memory repository.
func WithDatabase(databaseURL string) Option {
	return func(c *ServerConfig) error {
		if databaseURL == "" {
			c.DatabaseType = "memory"
			c.DatabaseURL = ""
			return nil
		}
		c.DatabaseType = "postgres"
		c.DatabaseURL = databaseURL
		return nil
	}
}

// WithStorage configures the asset storage backend from a URL:
//
//	memory://
//	file:///var/data/assets
//	s3://bucket?region=us-east-1&endpoint=http://localhost:9000
func WithStorage(storageURL string) Option {
	return func(c *ServerConfig) error {
		if storageURL == "" {
			return nil
		}

		parsed, err := url.Parse(storageURL)
		if err != nil {
			return fmt.Errorf("invalid storage URL: %w", err)
		}

		switch parsed.Scheme {
		case "memory":
			c.Storage.Type = "memory"
		case "file":
			c.Storage.Type = "fs"
			c.Storage.BaseDir = parsed.Path
		case "s3":
			query := parsed.Query()
			c.Storage.Type = "s3"
			c.Storage.Bucket = parsed.Host
			c.Storage.Region = query.Get("region")
			c.Storage.Endpoint = query.Get("endpoint")
			c.Storage.AccessKeyID = query.Get("access_key_id")
			c.Storage.SecretAccessKey = query.Get("secret_access_key")
			c.Storage.UsePathStyle = query.Get("use_path_style") == "true"
		default:
			return fmt.Errorf("unsupported storage scheme: %s", parsed.Scheme)
		}
		return nil
	}
}

// WithAssetURLPrefix sets the public URL prefix for filesystem-served assets
func WithAssetURLPrefix(prefix string) Option {
	return func(c *ServerConfig) error {
		if prefix == "" {
			return nil
		}
		c.Storage.URLPrefix = strings.TrimSuffix(prefix, "/")
		return nil
	}
}

// WithJWTSecret sets the secret used to verify request tokens
func WithJWTSecret(secret string) Option {
	return func(c *ServerConfig) error {
		c.JWTSecret = secret
		return nil
	}
}
