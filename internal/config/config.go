package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Media ownership policies applied when a tweet is deleted.
const (
	// MediaIndependent keeps media rows and files alive when the owning
	// tweet goes away; only the association rows are removed.
	MediaIndependent = "independent"
	// MediaCascade also removes media rows and their backing files, as long
	// as no other tweet still references them.
	MediaCascade = "cascade"
)

// Media content backends.
const (
	BackendDisk   = "disk"
	BackendGridFS = "gridfs"
)

type Config struct {
	// Debug widens error messages surfaced to clients and makes some
	// normally tolerated conditions (missing media files) fatal.
	Debug bool

	Log struct {
		Level     string
		Format    string
		Component string
		Source    bool
	}

	Database struct {
		DSN          string
		Host         string
		Port         string
		User         string
		Password     string
		Name         string
		MaxOpenConns int
		MaxIdleConns int
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	Mongo struct {
		URI      string
		Database string
	}

	Server struct {
		Host string
		Port string
	}

	Media struct {
		// Root is the base directory for the disk backend.
		Root string
		// Backend selects where media bytes live: disk or gridfs.
		Backend string
		// MaxUploadSize bounds a single upload, in bytes.
		MaxUploadSize int64
		// OwnershipPolicy is MediaIndependent or MediaCascade.
		OwnershipPolicy string
	}
}

// New builds a Config from the environment, falling back to development
// defaults. Callers load .env beforehand (godotenv) if they want one.
func New() *Config {
	cfg := &Config{}

	cfg.Debug = isTruthy(os.Getenv("DEBUG"))

	cfg.Log.Level = getEnvDefault("LOG_LEVEL", "info")
	cfg.Log.Format = getEnvDefault("LOG_FORMAT", "text")
	cfg.Log.Component = getEnvDefault("LOG_COMPONENT", "microblog")
	cfg.Log.Source = isTruthy(os.Getenv("LOG_SOURCE"))

	cfg.Database.DSN = os.Getenv("MYSQL_DSN")
	if cfg.Database.DSN == "" {
		cfg.Database.Host = getEnvDefault("DB_HOST", "localhost")
		cfg.Database.Port = getEnvDefault("DB_PORT", "3306")
		cfg.Database.User = getEnvDefault("DB_USER", "root")
		cfg.Database.Password = getEnvDefault("DB_PASSWORD", "root")
		cfg.Database.Name = getEnvDefault("DB_NAME", "microblog")
		cfg.Database.DSN = fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
			cfg.Database.User, cfg.Database.Password,
			cfg.Database.Host, cfg.Database.Port, cfg.Database.Name,
		)
	}
	cfg.Database.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 50)
	cfg.Database.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 10)

	cfg.Redis.Addr = getEnvDefault("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)

	cfg.Mongo.URI = getEnvDefault("MONGO_URI", "mongodb://localhost:27017")
	cfg.Mongo.Database = getEnvDefault("MONGO_DB", "microblog")

	cfg.Server.Host = getEnvDefault("HTTP_HOST", "0.0.0.0")
	cfg.Server.Port = getEnvDefault("HTTP_PORT", "8080")

	cfg.Media.Root = getEnvDefault("MEDIA_ROOT", "media")
	cfg.Media.Backend = getEnvDefault("MEDIA_BACKEND", BackendDisk)
	cfg.Media.MaxUploadSize = int64(getEnvInt("MEDIA_MAX_UPLOAD_SIZE", 5<<20))
	cfg.Media.OwnershipPolicy = getEnvDefault("MEDIA_OWNERSHIP", MediaIndependent)

	return cfg
}

func getEnvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
