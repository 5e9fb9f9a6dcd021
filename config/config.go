// Package config loads the service configuration from config.yaml and the environment.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultMaxRequestBodySize  = "100KB"
	defaultSessionTTL          = 23 * time.Hour
	defaultNotificationTimeout = 15 * time.Second
	defaultLoginPerMinute      = 5
	defaultResendPerMinute     = 3
)

// Storage drivers.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Mail providers.
const (
	MailProviderSendGrid = "sendgrid"
	MailProviderLog      = "log"
)

// Config is the root of config.yaml. Any key can be overridden by an env var
// named after its path, e.g. SECRETKEY_SESSION or RATELIMIT_LOGINPERMINUTE.
type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	App AppConfig `json:"app" yaml:"app"`

	Storage StorageConfig `json:"storage" yaml:"storage"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	SecretKey struct {
		Session string `json:"session" yaml:"session"`
	} `json:"secretKey" yaml:"secretKey"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	// Mail configuration for verification emails
	Mail *MailConfig `json:"mail" yaml:"mail"`

	// Redis configuration for shared rate limiting
	Redis *RedisConfig `json:"redis" yaml:"redis"`

	// RateLimit configuration for login and resend throttling
	RateLimit *RateLimitConfig `json:"rateLimit" yaml:"rateLimit"`

	// QRCode configuration for verification email QR codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	// PubSub configuration for account event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`
}

// AppConfig holds public-facing application settings.
type AppConfig struct {
	// BaseURL prefixes the verification links sent by email
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`
}

// StorageConfig selects the account store backend.
type StorageConfig struct {
	Driver      string `json:"driver" yaml:"driver"`
	AutoMigrate bool   `json:"autoMigrate" yaml:"autoMigrate"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost int           `json:"bcryptCost" yaml:"bcryptCost"`
	SessionTTL time.Duration `json:"sessionTTL" yaml:"sessionTTL"`

	// NotificationTimeout bounds background sends that are not awaited by the request
	NotificationTimeout time.Duration `json:"notificationTimeout" yaml:"notificationTimeout"`
}

// MailConfig defines the outbound mail transport
type MailConfig struct {
	Provider    string `json:"provider" yaml:"provider"`
	APIKey      string `json:"apiKey" yaml:"apiKey"`
	SenderEmail string `json:"senderEmail" yaml:"senderEmail"`
	SenderName  string `json:"senderName" yaml:"senderName"`
}

// RedisConfig defines the Redis connection
type RedisConfig struct {
	URL string `json:"url" yaml:"url"`
}

// RateLimitConfig defines per-minute attempt budgets
type RateLimitConfig struct {
	LoginPerMinute  int `json:"loginPerMinute" yaml:"loginPerMinute"`
	ResendPerMinute int `json:"resendPerMinute" yaml:"resendPerMinute"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Enabled              bool   `json:"enabled" yaml:"enabled"`
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Service account credentials file (for google provider, optional)
	CredentialsFile string `json:"credentialsFile" yaml:"credentialsFile"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

func New() (*Config, error) {
	// A missing .env file is normal outside local development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "load .env failed")
	}

	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = StorageDriverPostgres
	}
	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.SessionTTL <= 0 {
		cfg.Auth.SessionTTL = defaultSessionTTL
	}
	if cfg.Auth.NotificationTimeout <= 0 {
		cfg.Auth.NotificationTimeout = defaultNotificationTimeout
	}
	if cfg.Mail == nil {
		cfg.Mail = &MailConfig{}
	}
	if cfg.Mail.Provider == "" {
		cfg.Mail.Provider = MailProviderLog
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = &RateLimitConfig{}
	}
	if cfg.RateLimit.LoginPerMinute <= 0 {
		cfg.RateLimit.LoginPerMinute = defaultLoginPerMinute
	}
	if cfg.RateLimit.ResendPerMinute <= 0 {
		cfg.RateLimit.ResendPerMinute = defaultResendPerMinute
	}
	cfg.App.BaseURL = strings.TrimRight(cfg.App.BaseURL, "/")
}

func (cfg *Config) validate() error {
	switch cfg.Storage.Driver {
	case StorageDriverPostgres:
		if cfg.Postgres == nil {
			return errors.New("storage.driver is postgres but the postgres section is missing")
		}
	case StorageDriverMemory:
	default:
		return errors.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	switch cfg.Mail.Provider {
	case MailProviderLog:
	case MailProviderSendGrid:
		if cfg.Mail.APIKey == "" || cfg.Mail.SenderEmail == "" {
			return errors.New("mail.apiKey and mail.senderEmail are required for sendgrid")
		}
	default:
		return errors.Errorf("unknown mail provider %q", cfg.Mail.Provider)
	}

	if cfg.SecretKey.Session == "" {
		return errors.New("secretKey.session must be set")
	}

	return nil
}
