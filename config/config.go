package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DatabaseURL     string        `envconfig:"DATABASE_URL" required:"true"`
	DBMaxOpenConns  int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	DBMaxIdleConns  int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	DBConnLifetime  time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
	AutoMigrate     bool          `envconfig:"AUTO_MIGRATE" default:"true"`
	HTTPPort        string        `envconfig:"HTTP_PORT" default:":8080"`
	GrpcHealthPort  string        `envconfig:"GRPC_HEALTH_PORT" default:":50051"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	RedisAddr       string        `envconfig:"REDIS_ADDR"`
	RedisPassword   string        `envconfig:"REDIS_PASSWORD"`
	RedisDB         int           `envconfig:"REDIS_DB" default:"0"`
	ListingCacheTTL time.Duration `envconfig:"LISTING_CACHE_TTL" default:"2m"`

	PublicDir  string `envconfig:"PUBLIC_DIR" default:"public"`
	ReportsDir string `envconfig:"REPORTS_DIR" default:"public/vendor_reports"`
	APIBaseURL string `envconfig:"API_BASE_URL"`

	SessionSecret       string        `envconfig:"SESSION_SECRET" required:"true"`
	SessionTTL          time.Duration `envconfig:"SESSION_TTL" default:"12h"`
	SessionSecureCookie bool          `envconfig:"SESSION_SECURE_COOKIE" default:"false"`
	CORSAllowedOrigins  []string      `envconfig:"CORS_ALLOWED_ORIGINS"`
	LoginRatePerMinute  int           `envconfig:"LOGIN_RATE_PER_MINUTE" default:"10"`
	LoginBurst          int           `envconfig:"LOGIN_BURST" default:"5"`

	CompanyName    string `envconfig:"REPORT_COMPANY_NAME" default:"C Fresh Market"`
	CompanyAddress string `envconfig:"REPORT_COMPANY_ADDRESS" default:"1200 Market Street, Des Moines, IA 50309"`
	CompanyPhone   string `envconfig:"REPORT_COMPANY_PHONE" default:"(515) 555-0140"`
}

// SeedConfig is read by the seed commands. Credentials come from the
// command line, everything else from the environment.
type SeedConfig struct {
	DBHost    string `envconfig:"DB_HOST" default:"localhost"`
	DBPort    string `envconfig:"DB_PORT" default:"5432"`
	DBName    string `envconfig:"DB_NAME" default:"cfresh-inventory"`
	DBSSLMode string `envconfig:"DB_SSLMODE" default:"disable"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
}

func loadDotEnv(logger *logrus.Logger) {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		logger.Warnf("Error loading .env file (but continuing): %v", err)
	} else if err == nil {
		logger.Info("Loaded configuration from .env file")
	}
}

func LoadConfig(logger *logrus.Logger) (*Config, error) {
	loadDotEnv(logger)

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration from environment variables: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	if len(cfg.SessionSecret) < 16 {
		return nil, fmt.Errorf("SESSION_SECRET must be at least 16 characters")
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	logger.WithFields(logrus.Fields{
		"http_port":    cfg.HTTPPort,
		"grpc_port":    cfg.GrpcHealthPort,
		"log_level":    cfg.LogLevel,
		"redis":        cfg.RedisAddr != "",
		"auto_migrate": cfg.AutoMigrate,
	}).Info("Configuration loaded")
	return &cfg, nil
}

func LoadSeedConfig(logger *logrus.Logger) (*SeedConfig, error) {
	loadDotEnv(logger)

	var cfg SeedConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process seed configuration: %w", err)
	}
	return &cfg, nil
}

// DSN builds a connection string for the given credentials.
func (c *SeedConfig) DSN(user, password string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSSLMode}}.Encode(),
	}
	return u.String()
}
