package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // CATALOG_TIMEZONE must resolve on hosts without zoneinfo

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the catalog service
type Config struct {
	AppEnv  string `envconfig:"ENV" default:"development"`
	Port    string `envconfig:"PORT" default:"8080"`
	BaseURL string `envconfig:"BASE_URL" default:"http://localhost:8080"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// DatabaseURL wins over the individual DB_* variables
	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBHost      string `envconfig:"DB_HOST"`
	DBPort      string `envconfig:"DB_PORT" default:"5432"`
	DBUser      string `envconfig:"DB_USER"`
	DBPassword  string `envconfig:"DB_PASSWORD"`
	DBName      string `envconfig:"DB_NAME"`
	DBSSLMode   string `envconfig:"DB_SSLMODE" default:"disable"`

	// ImageProxyURL defaults to BaseURL + /admin/image-proxy
	ImageProxyURL     string        `envconfig:"IMAGE_PROXY_URL"`
	ImageFetchTimeout time.Duration `envconfig:"IMAGE_FETCH_TIMEOUT" default:"20s"`
	ImageCache        string        `envconfig:"IMAGE_CACHE" default:"disk"`
	ImageCacheDir     string        `envconfig:"IMAGE_CACHE_DIR" default:"cache/images"`
	ImageCacheTTL     time.Duration `envconfig:"IMAGE_CACHE_TTL" default:"168h"`
	RedisAddr         string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`

	GoogleCredentialsPath string `envconfig:"GOOGLE_APPLICATION_CREDENTIALS"`

	LogoURL      string `envconfig:"CATALOG_LOGO_URL"`
	LogoWidthPx  int    `envconfig:"CATALOG_LOGO_WIDTH_PX" default:"600"`
	LogoHeightPx int    `envconfig:"CATALOG_LOGO_HEIGHT_PX" default:"200"`
	SiteLabel    string `envconfig:"CATALOG_SITE_LABEL" default:"www.hechoadm.com.br"`
	Author       string `envconfig:"CATALOG_AUTHOR" default:"Hecho ADM"`
	Timezone     string `envconfig:"CATALOG_TIMEZONE" default:"America/Sao_Paulo"`

	ChromePath string `envconfig:"CHROME_PATH"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	cfg.Port = strings.TrimPrefix(cfg.Port, ":")
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.ImageProxyURL == "" {
		cfg.ImageProxyURL = cfg.BaseURL + "/admin/image-proxy"
	}

	switch cfg.ImageCache {
	case "disk", "redis", "none":
	default:
		return nil, fmt.Errorf("invalid IMAGE_CACHE %q: expected disk, redis or none", cfg.ImageCache)
	}

	if cfg.LogoWidthPx <= 0 || cfg.LogoHeightPx <= 0 {
		return nil, fmt.Errorf("logo dimensions must be positive, got %dx%d", cfg.LogoWidthPx, cfg.LogoHeightPx)
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid CATALOG_TIMEZONE %q: %w", cfg.Timezone, err)
	}

	return &cfg, nil
}

// IsProduction returns true when the service runs in production
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// DSN returns the PostgreSQL connection string.
// Builds it from the DB_* variables when DATABASE_URL is not set.
func (c *Config) DSN() (string, error) {
	if c.DatabaseURL != "" {
		return c.DatabaseURL, nil
	}
	if c.DBHost == "" || c.DBUser == "" || c.DBName == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode), nil
}

// Location returns the timezone used for calendar-day computations
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
