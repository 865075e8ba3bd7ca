package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, API credentials, etc.), security settings
// - default: Values common across all environments (currency, timeouts, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	Calendar CalendarConfig
	Stripe   StripeConfig
	Twilio   TwilioConfig
	Provider ProviderConfig
	Offer    OfferConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

// CalendarConfig points the record store adapter at the external
// calendar-style document store holding one ledger per slot event.
type CalendarConfig struct {
	BaseURL      string        `envconfig:"CALENDAR_BASE_URL" default:"https://www.googleapis.com/calendar/v3"`
	TokenURL     string        `envconfig:"CALENDAR_TOKEN_URL" default:"https://oauth2.googleapis.com/token"`
	CalendarID   string        `envconfig:"CALENDAR_ID" default:"primary"`
	ClientID     string        `envconfig:"CALENDAR_CLIENT_ID" required:"true"`
	ClientSecret string        `envconfig:"CALENDAR_CLIENT_SECRET" required:"true"`
	TokenFile    string        `envconfig:"CALENDAR_TOKEN_FILE" default:"tokens.json"`
	ServiceQuery string        `envconfig:"CALENDAR_SERVICE_QUERY" default:"Complete Barber Services"`
	Timeout      time.Duration `envconfig:"CALENDAR_TIMEOUT" default:"10s"`
	MaxRetries   int           `envconfig:"CALENDAR_MAX_RETRIES" default:"3"`
}

type StripeConfig struct {
	BaseURL         string        `envconfig:"STRIPE_BASE_URL" default:"https://api.stripe.com/v1"`
	SecretKey       string        `envconfig:"STRIPE_SECRET_KEY" required:"true"`
	Currency        string        `envconfig:"STRIPE_CURRENCY" default:"aud"`
	ProviderAccount string        `envconfig:"STRIPE_PROVIDER_ACCOUNT" required:"true"`
	Timeout         time.Duration `envconfig:"STRIPE_TIMEOUT" default:"15s"`
}

type TwilioConfig struct {
	BaseURL    string        `envconfig:"TWILIO_BASE_URL" default:"https://api.twilio.com/2010-04-01"`
	AccountSID string        `envconfig:"TWILIO_ACCOUNT_SID" required:"true"`
	AuthToken  string        `envconfig:"TWILIO_AUTH_TOKEN" required:"true"`
	FromNumber string        `envconfig:"TWILIO_PHONE_NUMBER" required:"true"`
	Timeout    time.Duration `envconfig:"TWILIO_TIMEOUT" default:"10s"`
}

// ProviderConfig identifies the single service provider account allowed to
// manage slots (suggested offers, manual captures).
type ProviderConfig struct {
	Email        string `envconfig:"PROVIDER_EMAIL" required:"true"`
	PasswordHash string `envconfig:"PROVIDER_PASSWORD_HASH" required:"true"`
}

type OfferConfig struct {
	ValidFor time.Duration `envconfig:"OFFER_VALID_FOR" default:"30m"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Australia/Melbourne"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"36000"` // 10*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Calendar: CalendarConfig{
			BaseURL:      "http://localhost:18081",
			TokenURL:     "http://localhost:18081/token",
			CalendarID:   "primary",
			ClientID:     "test-client",
			ClientSecret: "test-secret",
			TokenFile:    "tokens_test.json",
			ServiceQuery: "Complete Barber Services",
			Timeout:      2 * time.Second,
			MaxRetries:   2,
		},
		Stripe: StripeConfig{
			BaseURL:         "http://localhost:18082",
			SecretKey:       "sk_test_unbooked",
			Currency:        "aud",
			ProviderAccount: "acct_test_provider",
			Timeout:         2 * time.Second,
		},
		Twilio: TwilioConfig{
			BaseURL:    "http://localhost:18083",
			AccountSID: "ACtest",
			AuthToken:  "test-token",
			FromNumber: "+61400000000",
			Timeout:    2 * time.Second,
		},
		Provider: ProviderConfig{
			Email:        "provider@example.com",
			PasswordHash: "", // tests set a real hash when they exercise login
		},
		Offer: OfferConfig{
			ValidFor: 30 * time.Minute,
		},
		JWT: JWTConfig{
			Secret:   "test-jwt-secret",
			Duration: "1h",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Australia/Melbourne",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 36000,
		},
	}
}
