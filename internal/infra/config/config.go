package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PROPMARKET"

// Config holds all application configuration.
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	HTTPClient    HTTPClientConfig    `mapstructure:"http_client"`
	RateLimit     RateLimitConfig     `mapstructure:"rate_limit"`
	Auth          AuthConfig          `mapstructure:"auth"`
	AccessControl AccessControlConfig `mapstructure:"access_control"`
	CORS          CORSConfig          `mapstructure:"cors"`
	Log           LogConfig           `mapstructure:"log"`
	Payment       PaymentConfig       `mapstructure:"payment"`
	Paystack      PaystackConfig      `mapstructure:"paystack"`
	Stripe        StripeConfig        `mapstructure:"stripe"`
	Email         EmailConfig         `mapstructure:"email"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Events        EventsConfig        `mapstructure:"events"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN returns the database connection string.
func (c *DatabaseConfig) DSN() string {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Database, c.SSLMode,
	)
	if c.Password != "" {
		dsn += fmt.Sprintf(" password=%s", c.Password)
	}
	return dsn
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// HTTPClientConfig holds outbound HTTP client pooling configuration.
type HTTPClientConfig struct {
	MaxIdleConns        int           `mapstructure:"max_idle_conns"`
	MaxIdleConnsPerHost int           `mapstructure:"max_idle_conns_per_host"`
	MaxConnsPerHost     int           `mapstructure:"max_conns_per_host"`
	IdleConnTimeout     time.Duration `mapstructure:"idle_conn_timeout"`
	DialTimeout         time.Duration `mapstructure:"dial_timeout"`
	TLSHandshakeTimeout time.Duration `mapstructure:"tls_handshake_timeout"`
	ResponseTimeout     time.Duration `mapstructure:"response_timeout"`
	KeepAlive           time.Duration `mapstructure:"keep_alive"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// PublicLimit applies per IP to unauthenticated endpoints (verify, webhook).
	PublicLimit  int           `mapstructure:"public_limit"`
	PublicWindow time.Duration `mapstructure:"public_window"`
	// UserLimit applies per user to authenticated endpoints.
	UserLimit      int           `mapstructure:"user_limit"`
	UserWindow     time.Duration `mapstructure:"user_window"`
	IdempotencyTTL time.Duration `mapstructure:"idempotency_ttl"`
}

// AuthConfig holds access-token validation configuration.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

// AccessControlConfig lists accounts granted admin regardless of their token role.
type AccessControlConfig struct {
	AdminEmails  []string `mapstructure:"admin_emails"`
	AdminUserIDs []string `mapstructure:"admin_user_ids"`
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PaymentConfig holds payment core configuration.
type PaymentConfig struct {
	// Provider selects the gateway: paystack or stripe.
	Provider       string        `mapstructure:"provider"`
	Currency       string        `mapstructure:"currency"`
	CallbackURL    string        `mapstructure:"callback_url"`
	GatewayTimeout time.Duration `mapstructure:"gateway_timeout"`
	Prices         PriceConfig   `mapstructure:"prices"`
}

// PriceConfig is the fee table in major currency units.
type PriceConfig struct {
	Listing    int64        `mapstructure:"listing"`
	Inspection int64        `mapstructure:"inspection"`
	Boost      []BoostPrice `mapstructure:"boost"`
}

// BoostPrice prices one boost duration.
type BoostPrice struct {
	Days   int   `mapstructure:"days"`
	Amount int64 `mapstructure:"amount"`
}

// Validate rejects non-positive amounts and duplicate boost durations.
func (p PriceConfig) Validate() error {
	if p.Listing <= 0 {
		return errors.New("payment.prices.listing must be positive")
	}
	if p.Inspection <= 0 {
		return errors.New("payment.prices.inspection must be positive")
	}
	if len(p.Boost) == 0 {
		return errors.New("payment.prices.boost must not be empty")
	}
	seen := make(map[int]bool, len(p.Boost))
	for _, b := range p.Boost {
		if b.Days <= 0 || b.Amount <= 0 {
			return fmt.Errorf("payment.prices.boost: invalid entry %d days / %d", b.Days, b.Amount)
		}
		if seen[b.Days] {
			return fmt.Errorf("payment.prices.boost: duplicate duration %d days", b.Days)
		}
		seen[b.Days] = true
	}
	return nil
}

// PaystackConfig holds Paystack configuration.
type PaystackConfig struct {
	SecretKey string `mapstructure:"secret_key"`
	BaseURL   string `mapstructure:"base_url"`
	// BreakerFailures consecutive unavailability errors open the breaker.
	BreakerFailures uint32        `mapstructure:"breaker_failures"`
	BreakerTimeout  time.Duration `mapstructure:"breaker_timeout"`
}

// StripeConfig holds Stripe configuration.
type StripeConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	CancelURL     string `mapstructure:"cancel_url"`
}

// EmailConfig holds email configuration.
type EmailConfig struct {
	Provider    string         `mapstructure:"provider"` // smtp, sendgrid or noop
	SMTP        SMTPConfig     `mapstructure:"smtp"`
	SendGrid    SendGridConfig `mapstructure:"sendgrid"`
	FromAddress string         `mapstructure:"from_address"`
	FromName    string         `mapstructure:"from_name"`
}

// SMTPConfig holds SMTP configuration.
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// SendGridConfig holds SendGrid configuration.
type SendGridConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// StorageConfig holds S3-compatible object storage configuration.
type StorageConfig struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	Bucket          string        `mapstructure:"bucket"`
	ExportURLExpiry time.Duration `mapstructure:"export_url_expiry"`
}

// Enabled reports whether exports should be uploaded.
func (c *StorageConfig) Enabled() bool {
	return c.Bucket != ""
}

// EventsConfig selects where payment events go besides the in-process bus.
type EventsConfig struct {
	Driver string    `mapstructure:"driver"` // bus or sqs
	SQS    SQSConfig `mapstructure:"sqs"`
}

// SQSConfig holds the SQS forwarder configuration.
type SQSConfig struct {
	QueueURL string `mapstructure:"queue_url"`
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"`
}

// Load loads configuration from an optional .env, a config file and the environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/propmarket")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applySecretOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.Payment.Provider {
	case "paystack", "stripe":
	default:
		return fmt.Errorf("payment.provider: unsupported %q", c.Payment.Provider)
	}
	if c.Payment.GatewayTimeout <= 0 {
		return errors.New("payment.gateway_timeout must be positive")
	}
	switch c.Events.Driver {
	case "bus":
	case "sqs":
		if c.Events.SQS.QueueURL == "" {
			return errors.New("events.sqs.queue_url is required for the sqs driver")
		}
	default:
		return fmt.Errorf("events.driver: unsupported %q", c.Events.Driver)
	}
	return c.Payment.Prices.Validate()
}

func applySecretOverrides(cfg *Config) {
	overrides := []struct {
		env string
		dst *string
	}{
		{"DB_PASSWORD", &cfg.Database.Password},
		{"REDIS_PASSWORD", &cfg.Redis.Password},
		{"JWT_SECRET", &cfg.Auth.JWTSecret},
		{"PAYSTACK_SECRET_KEY", &cfg.Paystack.SecretKey},
		{"STRIPE_SECRET_KEY", &cfg.Stripe.SecretKey},
		{"STRIPE_WEBHOOK_SECRET", &cfg.Stripe.WebhookSecret},
		{"SENDGRID_API_KEY", &cfg.Email.SendGrid.APIKey},
		{"SMTP_PASSWORD", &cfg.Email.SMTP.Password},
		{"STORAGE_SECRET_KEY", &cfg.Storage.SecretAccessKey},
	}
	for _, o := range overrides {
		if val := os.Getenv(EnvPrefix + "_" + o.env); val != "" {
			*o.dst = val
		}
	}

	if s := os.Getenv(EnvPrefix + "_ADMIN_EMAILS"); s != "" {
		cfg.AccessControl.AdminEmails = parseCommaSeparatedList(s)
	}
}

func parseCommaSeparatedList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.database", "propmarket")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.conn_max_idle_time", 30*time.Minute)
	v.SetDefault("database.auto_migrate", true)

	// Redis defaults
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.db", 0)

	// HTTP client defaults
	v.SetDefault("http_client.max_idle_conns", 100)
	v.SetDefault("http_client.max_idle_conns_per_host", 20)
	v.SetDefault("http_client.max_conns_per_host", 50)
	v.SetDefault("http_client.idle_conn_timeout", 90*time.Second)
	v.SetDefault("http_client.dial_timeout", 10*time.Second)
	v.SetDefault("http_client.tls_handshake_timeout", 10*time.Second)
	v.SetDefault("http_client.response_timeout", 30*time.Second)
	v.SetDefault("http_client.keep_alive", 30*time.Second)

	// Rate limit defaults
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.public_limit", 60)
	v.SetDefault("rate_limit.public_window", time.Minute)
	v.SetDefault("rate_limit.user_limit", 120)
	v.SetDefault("rate_limit.user_window", time.Minute)
	v.SetDefault("rate_limit.idempotency_ttl", 24*time.Hour)

	v.SetDefault("auth.issuer", "")
	v.SetDefault("access_control.admin_emails", []string{})
	v.SetDefault("access_control.admin_user_ids", []string{})
	v.SetDefault("cors.allow_origins", []string{"*"})

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Payment defaults
	v.SetDefault("payment.provider", "paystack")
	v.SetDefault("payment.currency", "NGN")
	v.SetDefault("payment.callback_url", "http://localhost:3000/payments/callback")
	v.SetDefault("payment.gateway_timeout", 15*time.Second)
	v.SetDefault("payment.prices.listing", 5000)
	v.SetDefault("payment.prices.inspection", 3000)
	v.SetDefault("payment.prices.boost", []map[string]interface{}{
		{"days": 7, "amount": 5000},
		{"days": 14, "amount": 9000},
		{"days": 30, "amount": 15000},
	})

	v.SetDefault("paystack.base_url", "https://api.paystack.co")
	v.SetDefault("paystack.breaker_failures", 5)
	v.SetDefault("paystack.breaker_timeout", 30*time.Second)

	v.SetDefault("stripe.cancel_url", "http://localhost:3000/payments/cancelled")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.smtp.port", 587)
	v.SetDefault("email.from_name", "PropMarket")

	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.export_url_expiry", 15*time.Minute)

	v.SetDefault("events.driver", "bus")
}
