package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Email         EmailConfig
	RateLimit     RateLimitConfig
	Redis         RedisConfig
	Catalogue     CatalogueConfig
	Storage       StorageConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	APIPrefix      string
	ClientURL      string // public site URL used in acknowledgement links
	AllowedOrigins []string
}

// EmailConfig configures the outbound mail channel. Missing credentials
// select the log-only notifier.
type EmailConfig struct {
	Host          string
	Port          int
	User          string
	Password      string
	From          string
	OperatorEmail string
	Timeout       time.Duration
}

type RateLimitConfig struct {
	ContactMax    int
	ContactWindow time.Duration
	Backend       string // memory | redis
}

type RedisConfig struct {
	URL       string
	KeyPrefix string
}

type CatalogueConfig struct {
	Path string
	TTL  time.Duration
}

type StorageConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Endpoint        string
	Region          string
	Prefix          string
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint  string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "5000")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("NODE_ENV", "production")
	v.SetDefault("API_PREFIX", "/api")
	v.SetDefault("CLIENT_URL", "http://localhost:5173")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("EMAIL_HOST", "smtp.gmail.com")
	v.SetDefault("EMAIL_PORT", 587)
	v.SetDefault("EMAIL_TIMEOUT", "30s")
	v.SetDefault("CONTACT_RATE_LIMIT_MAX", 5)
	v.SetDefault("CONTACT_RATE_LIMIT_WINDOW", "15m")
	v.SetDefault("RATE_LIMIT_BACKEND", "memory")
	v.SetDefault("REDIS_KEY_PREFIX", "msquare:ratelimit:contact")
	v.SetDefault("CATALOGUE_TTL", "10m")
	v.SetDefault("STORAGE_REGION", "us-east-1")
	v.SetDefault("STORAGE_PREFIX", "catalogue")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "./logs")
	v.SetDefault("O11Y_BE_SERVICE_NAME", "msquare-api")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "msquare-lighting")
	v.SetDefault("O11Y_BE_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "msquare-api")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,goroutines")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	operator := v.GetString("OPERATOR_EMAIL")
	if operator == "" {
		operator = v.GetString("EMAIL_USER")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("NODE_ENV"),
			APIPrefix:      v.GetString("API_PREFIX"),
			ClientURL:      strings.TrimRight(v.GetString("CLIENT_URL"), "/"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
		},
		Email: EmailConfig{
			Host:          v.GetString("EMAIL_HOST"),
			Port:          v.GetInt("EMAIL_PORT"),
			User:          v.GetString("EMAIL_USER"),
			Password:      v.GetString("EMAIL_PASSWORD"),
			From:          v.GetString("EMAIL_FROM"),
			OperatorEmail: operator,
			Timeout:       v.GetDuration("EMAIL_TIMEOUT"),
		},
		RateLimit: RateLimitConfig{
			ContactMax:    v.GetInt("CONTACT_RATE_LIMIT_MAX"),
			ContactWindow: v.GetDuration("CONTACT_RATE_LIMIT_WINDOW"),
			Backend:       strings.ToLower(v.GetString("RATE_LIMIT_BACKEND")),
		},
		Redis: RedisConfig{
			URL:       v.GetString("REDIS_URL"),
			KeyPrefix: v.GetString("REDIS_KEY_PREFIX"),
		},
		Catalogue: CatalogueConfig{
			Path: v.GetString("CATALOGUE_PATH"),
			TTL:  v.GetDuration("CATALOGUE_TTL"),
		},
		Storage: StorageConfig{
			AccessKeyID:     v.GetString("STORAGE_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("STORAGE_SECRET_ACCESS_KEY"),
			BucketName:      v.GetString("STORAGE_BUCKET_NAME"),
			Endpoint:        v.GetString("STORAGE_ENDPOINT"),
			Region:          v.GetString("STORAGE_REGION"),
			Prefix:          v.GetString("STORAGE_PREFIX"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint:  v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_BE_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_BE_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Server.APIPrefix != "" && !strings.HasPrefix(c.Server.APIPrefix, "/") {
		return fmt.Errorf("API_PREFIX must start with /")
	}

	if c.RateLimit.ContactMax <= 0 {
		return fmt.Errorf("CONTACT_RATE_LIMIT_MAX must be positive")
	}
	if c.RateLimit.ContactWindow <= 0 {
		return fmt.Errorf("CONTACT_RATE_LIMIT_WINDOW must be positive")
	}
	switch c.RateLimit.Backend {
	case "memory":
	case "redis":
		if c.Redis.URL == "" {
			return fmt.Errorf("REDIS_URL is required when RATE_LIMIT_BACKEND=redis")
		}
	default:
		return fmt.Errorf("RATE_LIMIT_BACKEND must be memory or redis, got %q", c.RateLimit.Backend)
	}

	if c.MailConfigured() {
		if c.Email.Host == "" {
			return fmt.Errorf("EMAIL_HOST is required when EMAIL_USER is set")
		}
		if c.Email.Port <= 0 || c.Email.Port > 65535 {
			return fmt.Errorf("EMAIL_PORT is out of range: %d", c.Email.Port)
		}
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// MailConfigured reports whether SMTP credentials are present. Without them
// submissions are written to the log instead of mailed.
func (c *Config) MailConfigured() bool {
	return c.Email.User != "" && c.Email.Password != ""
}

// SenderAddress is the From address for outbound mail.
func (c *Config) SenderAddress() string {
	if c.Email.From != "" {
		return c.Email.From
	}
	return c.Email.User
}

// StorageConfigured reports whether object storage credentials are present
func (c *Config) StorageConfigured() bool {
	return c.Storage.AccessKeyID != "" && c.Storage.SecretAccessKey != "" && c.Storage.BucketName != ""
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

func splitList(s string) []string {
	out := []string{}
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
