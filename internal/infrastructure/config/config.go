package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/respawnadega/storefront/internal/domain/shared/valueobject"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Catalog   CatalogConfig
	Cart      CartConfig
	Business  BusinessConfig
	Telemetry TelemetryConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	RequestTimeout    time.Duration
	MaxHeaderBytes    int
	MaxBodySize       int64
	RateLimitEnabled  bool
	RateLimitRequests int // sustained requests per second per client
	RateLimitBurst    int
	CORSAllowOrigins  []string
	CORSAllowMethods  []string
	CORSAllowHeaders  []string
	TrustedProxies    []string
}

// Storage drivers
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// StorageConfig selects where cart records are kept
type StorageConfig struct {
	Driver     string // memory, sqlite, postgres, redis
	SQLitePath string
	// TTL expires idle cart records on drivers that support it (redis)
	TTL time.Duration
}

// DatabaseConfig holds postgres connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host      string
	Port      int
	Password  string
	DB        int
	KeyPrefix string
}

// Catalog sources
const (
	CatalogStatic = "static"
	CatalogCMS    = "cms"
)

// CatalogConfig selects the primary catalog source
type CatalogConfig struct {
	Source string // static, cms
	CMS    CMSConfig
}

// CMSConfig holds the headless content API settings
type CMSConfig struct {
	BaseURL             string
	AccessToken         string
	Timeout             time.Duration
	BreakerMaxFailures  uint32        // consecutive failures before the breaker opens
	BreakerOpenTimeout  time.Duration // how long the breaker stays open
	BreakerHalfOpenReqs uint32
}

// CartConfig holds cart behaviour settings
type CartConfig struct {
	RequireInStock bool
	MaxSessions    int
}

// BusinessConfig identifies the shop on outgoing order messages
type BusinessConfig struct {
	Name           string
	WhatsAppNumber string
	Address        string
	Hours          string
}

// TelemetryConfig holds OpenTelemetry export and profiling settings
type TelemetryConfig struct {
	Enabled           bool
	CollectorEndpoint string // host:port of the OTLP gRPC collector
	Insecure          bool
	SamplingRatio     float64
	MetricsInterval   time.Duration
	LogsEnabled       bool
	DBTracing         bool

	ProfilingEnabled bool
	ProfilingServer  string
	SpanProfiles     bool
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with ADEGA_ prefix (e.g., ADEGA_STORAGE_DRIVER)
// 2. Variables from a .env file in the working directory
// 3. config.toml
// 4. Built-in defaults
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("ADEGA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Booleans whose default is true cannot be told apart from "unset" later
	v.SetDefault("cart.require_in_stock", true)
	v.SetDefault("http.rate_limit_enabled", true)
	v.SetDefault("telemetry.sampling_ratio", 1.0)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:       v.GetDuration("http.read_timeout"),
			WriteTimeout:      v.GetDuration("http.write_timeout"),
			IdleTimeout:       v.GetDuration("http.idle_timeout"),
			RequestTimeout:    v.GetDuration("http.request_timeout"),
			MaxHeaderBytes:    v.GetInt("http.max_header_bytes"),
			MaxBodySize:       v.GetInt64("http.max_body_size"),
			RateLimitEnabled:  v.GetBool("http.rate_limit_enabled"),
			RateLimitRequests: v.GetInt("http.rate_limit_requests"),
			RateLimitBurst:    v.GetInt("http.rate_limit_burst"),
			CORSAllowOrigins:  v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods:  v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders:  v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:    v.GetStringSlice("http.trusted_proxies"),
		},
		Storage: StorageConfig{
			Driver:     v.GetString("storage.driver"),
			SQLitePath: v.GetString("storage.sqlite_path"),
			TTL:        v.GetDuration("storage.ttl"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Redis: RedisConfig{
			Host:      v.GetString("redis.host"),
			Port:      v.GetInt("redis.port"),
			Password:  v.GetString("redis.password"),
			DB:        v.GetInt("redis.db"),
			KeyPrefix: v.GetString("redis.key_prefix"),
		},
		Catalog: CatalogConfig{
			Source: v.GetString("catalog.source"),
			CMS: CMSConfig{
				BaseURL:             v.GetString("catalog.cms.base_url"),
				AccessToken:         v.GetString("catalog.cms.access_token"),
				Timeout:             v.GetDuration("catalog.cms.timeout"),
				BreakerMaxFailures:  v.GetUint32("catalog.cms.breaker_max_failures"),
				BreakerOpenTimeout:  v.GetDuration("catalog.cms.breaker_open_timeout"),
				BreakerHalfOpenReqs: v.GetUint32("catalog.cms.breaker_half_open_requests"),
			},
		},
		Cart: CartConfig{
			RequireInStock: v.GetBool("cart.require_in_stock"),
			MaxSessions:    v.GetInt("cart.max_sessions"),
		},
		Business: BusinessConfig{
			Name:           v.GetString("business.name"),
			WhatsAppNumber: v.GetString("business.whatsapp_number"),
			Address:        v.GetString("business.address"),
			Hours:          v.GetString("business.hours"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			Insecure:          v.GetBool("telemetry.insecure"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			MetricsInterval:   v.GetDuration("telemetry.metrics_interval"),
			LogsEnabled:       v.GetBool("telemetry.logs_enabled"),
			DBTracing:         v.GetBool("telemetry.db_tracing"),
			ProfilingEnabled:  v.GetBool("telemetry.profiling_enabled"),
			ProfilingServer:   v.GetString("telemetry.profiling_server"),
			SpanProfiles:      v.GetBool("telemetry.span_profiles"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "respawn-adega"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.RequestTimeout == 0 {
		cfg.HTTP.RequestTimeout = 10 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 64 << 10 // 64KB, forms only
	}
	if cfg.HTTP.RateLimitRequests == 0 {
		cfg.HTTP.RateLimitRequests = 20
	}
	if cfg.HTTP.RateLimitBurst == 0 {
		cfg.HTTP.RateLimitBurst = 40
	}
	// No default origins: cross-origin requests stay blocked until configured.
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "X-Request-ID", "X-Cart-Session"}
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = StorageSQLite
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = "respawn-adega.db"
	}
	if cfg.Storage.TTL == 0 {
		cfg.Storage.TTL = 30 * 24 * time.Hour
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "adega"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 2
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "adega"
	}
	if cfg.Catalog.Source == "" {
		cfg.Catalog.Source = CatalogStatic
	}
	if cfg.Catalog.CMS.Timeout == 0 {
		cfg.Catalog.CMS.Timeout = 5 * time.Second
	}
	if cfg.Catalog.CMS.BreakerMaxFailures == 0 {
		cfg.Catalog.CMS.BreakerMaxFailures = 3
	}
	if cfg.Catalog.CMS.BreakerOpenTimeout == 0 {
		cfg.Catalog.CMS.BreakerOpenTimeout = 30 * time.Second
	}
	if cfg.Catalog.CMS.BreakerHalfOpenReqs == 0 {
		cfg.Catalog.CMS.BreakerHalfOpenReqs = 1
	}
	if cfg.Cart.MaxSessions == 0 {
		cfg.Cart.MaxSessions = 10000
	}
	if cfg.Business.Name == "" {
		cfg.Business.Name = "Respawn Adega"
	}
	if cfg.Business.WhatsAppNumber == "" {
		cfg.Business.WhatsAppNumber = "5511956792908"
	}
	if cfg.Business.Address == "" {
		cfg.Business.Address = "Rua das Bebidas, 123 - Centro, São Paulo - SP"
	}
	if cfg.Business.Hours == "" {
		cfg.Business.Hours = "Segunda a Sexta: 8h às 22h | Sábado: 8h às 20h"
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.MetricsInterval == 0 {
		cfg.Telemetry.MetricsInterval = 60 * time.Second
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StorageSQLite, StoragePostgres, StorageRedis:
	default:
		return fmt.Errorf("storage.driver must be one of memory, sqlite, postgres, redis; got %q", c.Storage.Driver)
	}

	if c.Storage.Driver == StoragePostgres {
		if c.Database.MaxOpenConns <= 0 {
			return fmt.Errorf("database.max_open_conns must be positive")
		}
		if c.Database.MaxIdleConns < 0 {
			return fmt.Errorf("database.max_idle_conns cannot be negative")
		}
		if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
			return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
				c.Database.MaxIdleConns, c.Database.MaxOpenConns)
		}
	}

	switch c.Catalog.Source {
	case CatalogStatic:
	case CatalogCMS:
		if c.Catalog.CMS.BaseURL == "" {
			return fmt.Errorf("catalog.cms.base_url is required when catalog.source is cms")
		}
		if _, err := url.ParseRequestURI(c.Catalog.CMS.BaseURL); err != nil {
			return fmt.Errorf("catalog.cms.base_url is not a valid URL: %w", err)
		}
	default:
		return fmt.Errorf("catalog.source must be static or cms; got %q", c.Catalog.Source)
	}

	if !valueobject.IsValidWhatsAppNumber(c.Business.WhatsAppNumber) {
		return fmt.Errorf("business.whatsapp_number must have 10 to 15 digits")
	}

	if c.HTTP.RateLimitRequests < 0 || c.HTTP.RateLimitBurst < 0 {
		return fmt.Errorf("http rate limit settings cannot be negative")
	}

	if c.Telemetry.SamplingRatio < 0 || c.Telemetry.SamplingRatio > 1 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0 and 1; got %v", c.Telemetry.SamplingRatio)
	}
	if c.Telemetry.ProfilingEnabled && c.Telemetry.ProfilingServer == "" {
		return fmt.Errorf("telemetry.profiling_server is required when profiling is enabled")
	}

	if c.App.Env == "production" {
		if c.Storage.Driver == StorageMemory {
			return fmt.Errorf("storage.driver cannot be memory in production (carts would not survive restarts)")
		}
		if c.Storage.Driver == StoragePostgres && c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	return nil
}

// IsProduction reports whether the app runs in the production environment
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Addr returns the host:port address of the Redis server
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
