package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type AfricaTalkingConfig struct {
	Username string `mapstructure:"username"`
	APIKey   string `mapstructure:"api_key"`
	SMSURL   string `mapstructure:"sms_url"`
	SenderID string `mapstructure:"sender_id"`
}

type EmailConfig struct {
	AWSAccessKeyID     string `mapstructure:"aws_access_key_id"`
	AWSSecretAccessKey string `mapstructure:"aws_secret_access_key"`
	AWSRegion          string `mapstructure:"aws_region"`
	SenderEmail        string `mapstructure:"sender_email"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"` // postgres | sqlite
	Host     string `mapstructure:"host"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	Port     string `mapstructure:"port"`
	SSLMode  string `mapstructure:"sslmode"`
	TimeZone string `mapstructure:"timezone"`
	// Path is the sqlite file (or ":memory:").
	Path string `mapstructure:"path"`
}

type SessionConfig struct {
	Name   string `mapstructure:"name"`
	Secret string `mapstructure:"secret"`
	MaxAge int    `mapstructure:"max_age"`
}

type OIDCConfig struct {
	Issuer       string `mapstructure:"issuer"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
}

// Enabled reports whether an OpenID Connect provider is configured.
func (o OIDCConfig) Enabled() bool {
	return o.Issuer != "" && o.ClientID != ""
}

type StripeConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	Currency      string `mapstructure:"currency"`
}

type PricingConfig struct {
	TaxRate           float64 `mapstructure:"tax_rate"`
	ShippingThreshold int64   `mapstructure:"shipping_threshold"`
	ShippingCost      int64   `mapstructure:"shipping_cost"`
}

type Config struct {
	Env       string `mapstructure:"env"`
	Port      string `mapstructure:"port"`
	Version   string `mapstructure:"version"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // console | json

	Database      DatabaseConfig      `mapstructure:"database"`
	Session       SessionConfig       `mapstructure:"session"`
	OIDC          OIDCConfig          `mapstructure:"oidc"`
	Stripe        StripeConfig        `mapstructure:"stripe"`
	Pricing       PricingConfig       `mapstructure:"pricing"`
	AfricaTalking AfricaTalkingConfig `mapstructure:"africastalking"`
	Email         EmailConfig         `mapstructure:"email"`
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// envBindings keeps the variable names the deployment already uses.
var envBindings = map[string]string{
	"env":        "APP_ENV",
	"port":       "PORT",
	"version":    "APP_VERSION",
	"log_level":  "LOG_LEVEL",
	"log_format": "LOG_FORMAT",

	"database.driver":   "DB_DRIVER",
	"database.host":     "POSTGRES_HOST",
	"database.user":     "POSTGRES_USER",
	"database.password": "POSTGRES_PASSWORD",
	"database.name":     "POSTGRES_DB",
	"database.port":     "DB_PORT",
	"database.sslmode":  "DB_SSLMODE",
	"database.timezone": "DB_TIMEZONE",
	"database.path":     "SQLITE_PATH",

	"session.name":    "SESSION_NAME",
	"session.secret":  "SESSION_SECRET",
	"session.max_age": "SESSION_MAX_AGE",

	"oidc.issuer":        "OIDC_ISSUER",
	"oidc.client_id":     "OIDC_CLIENT_ID",
	"oidc.client_secret": "OIDC_CLIENT_SECRET",
	"oidc.redirect_url":  "OIDC_REDIRECT_URL",

	"stripe.secret_key":     "STRIPE_SECRET_KEY",
	"stripe.webhook_secret": "STRIPE_WEBHOOK_SECRET",
	"stripe.currency":       "STRIPE_CURRENCY",

	"pricing.tax_rate":           "TAX_RATE",
	"pricing.shipping_threshold": "SHIPPING_THRESHOLD_CENTS",
	"pricing.shipping_cost":      "SHIPPING_COST_CENTS",

	"africastalking.username":  "AT_USERNAME",
	"africastalking.api_key":   "AT_API_KEY",
	"africastalking.sms_url":   "AT_SMS_URL",
	"africastalking.sender_id": "AT_SENDER_ID",

	"email.aws_access_key_id":     "AWS_ACCESS_KEY_ID",
	"email.aws_secret_access_key": "AWS_SECRET_ACCESS_KEY",
	"email.aws_region":            "AWS_REGION",
	"email.sender_email":          "AWS_SENDER_ADDRESS",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("port", "8080")
	v.SetDefault("version", "1.0.0")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.user", "test")
	v.SetDefault("database.password", "test")
	v.SetDefault("database.name", "test")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.timezone", "America/Sao_Paulo")
	v.SetDefault("database.path", "storefront.db")

	v.SetDefault("session.name", "gosess")
	v.SetDefault("session.secret", "change-me")
	v.SetDefault("session.max_age", 7*24*3600)

	v.SetDefault("stripe.currency", "brl")

	v.SetDefault("pricing.tax_rate", 0.1)
	v.SetDefault("pricing.shipping_threshold", 10000)
	v.SetDefault("pricing.shipping_cost", 1500)

	v.SetDefault("africastalking.sms_url", "https://api.sandbox.africastalking.com/version1/messaging")
	v.SetDefault("africastalking.sender_id", "AFRICASTKNG")

	v.SetDefault("email.aws_region", "us-east-1")
}

// Load reads defaults, then the optional YAML file at path, then the
// environment. Later sources win.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return &cfg, nil
}
