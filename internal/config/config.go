package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage backends understood by STORAGE_BACKEND and BLOB_BACKEND.
const (
	BackendMemory     = "memory"
	BackendRedis      = "redis"
	BackendMongo      = "mongo"
	BackendPostgres   = "postgres"
	BackendCloudinary = "cloudinary"
	BackendGridFS     = "gridfs"
)

type Config struct {
	Environment string `env:"ENV" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"8080"`

	StorageBackend    string `env:"STORAGE_BACKEND" envDefault:"memory"`
	BlobBackend       string `env:"BLOB_BACKEND" envDefault:"memory"`
	StorageQuotaBytes int64  `env:"STORAGE_QUOTA_BYTES" envDefault:"5242880"` // browser-like 5 MiB
	KeyPrefix         string `env:"KEY_PREFIX" envDefault:"keepsake:"`
	RateLimitPrefix   string `env:"RATE_LIMIT_PREFIX" envDefault:"ratelimit:"`

	MongoURI    string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017/keepsake"`
	PostgresURI string `env:"POSTGRES_URI" envDefault:"postgres://localhost:5432/keepsake?sslmode=disable"`
	RedisURI    string `env:"REDIS_URI" envDefault:"redis://localhost:6379/0"`

	CloudinaryName      string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `env:"CLOUDINARY_FOLDER" envDefault:"keepsake"`

	// Legacy message text is encrypted at rest when either is set.
	EncryptionKey        string `env:"ENCRYPTION_KEY"`
	EncryptionPassphrase string `env:"ENCRYPTION_PASSPHRASE"`

	FrontendURL    string   `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	TimeZone       string   `env:"TIMEZONE"`

	location *time.Location
}

// Load reads configuration from the environment. Call godotenv.Load first if a
// .env file should be honoured.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.Environment = strings.ToLower(strings.TrimSpace(cfg.Environment))
	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))
	cfg.BlobBackend = strings.ToLower(strings.TrimSpace(cfg.BlobBackend))

	cfg.AllowedOrigins = parseOrigins(cfg.AllowedOrigins)
	if len(cfg.AllowedOrigins) == 0 {
		if u := strings.TrimSpace(cfg.FrontendURL); u != "" {
			cfg.AllowedOrigins = []string{u}
		} else {
			cfg.AllowedOrigins = []string{"http://localhost:3000"}
		}
	}

	cfg.location = time.Local
	if tz := strings.TrimSpace(cfg.TimeZone); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
		}
		cfg.location = loc
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageBackend {
	case BackendMemory, BackendRedis, BackendMongo, BackendPostgres:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	switch c.BlobBackend {
	case BackendMemory, BackendGridFS, BackendPostgres:
	case BackendCloudinary:
		if c.CloudinaryName == "" || c.CloudinaryAPIKey == "" || c.CloudinaryAPISecret == "" {
			return fmt.Errorf("BLOB_BACKEND=cloudinary requires CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET")
		}
	default:
		return fmt.Errorf("unknown BLOB_BACKEND %q", c.BlobBackend)
	}
	if c.StorageBackend == BackendRedis && prefixesOverlap(c.KeyPrefix, c.RateLimitPrefix) {
		return fmt.Errorf("RATE_LIMIT_PREFIX %q must not overlap KEY_PREFIX %q", c.RateLimitPrefix, c.KeyPrefix)
	}
	if c.StorageQuotaBytes <= 0 {
		return fmt.Errorf("STORAGE_QUOTA_BYTES must be positive")
	}
	if c.EncryptionKey != "" && c.EncryptionPassphrase != "" {
		return fmt.Errorf("set only one of ENCRYPTION_KEY and ENCRYPTION_PASSPHRASE")
	}
	return nil
}

// prefixesOverlap reports whether a scan of either prefix would match keys
// written under the other.
func prefixesOverlap(a, b string) bool {
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}

func parseOrigins(in []string) []string {
	var out []string
	for _, part := range in {
		part = strings.TrimSpace(part)
		if part != "" && !containsOrigin(out, part) {
			out = append(out, part)
		}
	}
	return out
}

func containsOrigin(list []string, o string) bool {
	o = strings.TrimSpace(strings.ToLower(o))
	for _, v := range list {
		if strings.TrimSpace(strings.ToLower(v)) == o {
			return true
		}
	}
	return false
}

// Location is the zone calendar days are counted in (streaks, recaps).
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesMongo reports whether either backend needs a MongoDB connection.
func (c *Config) UsesMongo() bool {
	return c.StorageBackend == BackendMongo || c.BlobBackend == BackendGridFS
}

// UsesPostgres reports whether either backend needs a PostgreSQL connection.
func (c *Config) UsesPostgres() bool {
	return c.StorageBackend == BackendPostgres || c.BlobBackend == BackendPostgres
}
