package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Database *Database
	HTTP     *HTTP
	Gateway  *Gateway
	Studio   *Studio
	Checkout *Checkout
	Auth     *Auth
	Events   *Events
	App      *App
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel string `env:"LOG_LEVEL"`
	Mode     string `env:"APP_MODE"`
}

// Database with an empty DSN selects the in-memory order store.
type Database struct {
	DSN              string        `env:"DATABASE_URI"`
	MaxConns         int32         `env:"DATABASE_MAX_CONNS" envDefault:"10"`
	StatementTimeout time.Duration `env:"DATABASE_STATEMENT_TIMEOUT" envDefault:"5s"`
	LockTimeout      time.Duration `env:"DATABASE_LOCK_TIMEOUT" envDefault:"3s"`
}

type HTTP struct {
	HostString   string   `env:"RUN_ADDRESS"`
	AllowOrigins []string `env:"HTTP_ALLOW_ORIGINS" envSeparator:","`
	RateRPS      float64  `env:"HTTP_RATE_RPS" envDefault:"5"`
	RateBurst    int      `env:"HTTP_RATE_BURST" envDefault:"10"`
}

type Gateway struct {
	BaseURL       string        `env:"GATEWAY_BASE_URL" envDefault:"https://api.razorpay.com"`
	KeyID         string        `env:"GATEWAY_KEY_ID"`
	KeySecret     string        `env:"GATEWAY_KEY_SECRET"`
	PublicKey     string        `env:"GATEWAY_PUBLIC_KEY"`
	WebhookSecret string        `env:"GATEWAY_WEBHOOK_SECRET"`
	Timeout       time.Duration `env:"GATEWAY_TIMEOUT" envDefault:"10s"`
}

type Studio struct {
	BaseURL string        `env:"STUDIO_BASE_URL"`
	Token   string        `env:"STUDIO_API_TOKEN"`
	Timeout time.Duration `env:"STUDIO_TIMEOUT" envDefault:"5s"`
}

type Checkout struct {
	TaxRate       string        `env:"CHECKOUT_TAX_RATE" envDefault:"0.18"`
	Currency      string        `env:"CHECKOUT_CURRENCY" envDefault:"INR"`
	ExpiryWindow  time.Duration `env:"CHECKOUT_EXPIRY_WINDOW" envDefault:"30m"`
	SweepInterval time.Duration `env:"CHECKOUT_SWEEP_INTERVAL" envDefault:"1m"`
}

type Auth struct {
	SymmetricKeyHex string        `env:"AUTH_SYMMETRIC_KEY"`
	TokenTTL        time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"720h"`
}

// Events with no brokers disables settlement publishing.
type Events struct {
	Brokers []string `env:"EVENTS_BROKERS" envSeparator:","`
	Topic   string   `env:"EVENTS_TOPIC" envDefault:"checkout.settlements"`
}

// NewConfig reads flags from args, then an optional .env file, then the
// environment. Environment values win over flags.
func NewConfig(args []string) (*Config, error) {
	var db Database
	var http HTTP
	var gateway Gateway
	var studio Studio
	var checkout Checkout
	var auth Auth
	var events Events
	var app App
	var envFile string

	fset := flag.NewFlagSet("checkout", flag.ContinueOnError)
	fset.StringVar(&db.DSN, "d", "", "Database string")
	fset.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	fset.StringVar(&studio.BaseURL, "s", "", "Studio backend address")
	fset.StringVar(&app.LogLevel, "l", `error`, "Log level")
	fset.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	fset.StringVar(&envFile, "env-file", `.env`, "Optional env file")
	if err := fset.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	err := godotenv.Load(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading env file %s: %w", envFile, err)
	}

	for name, section := range map[string]any{
		"database": &db,
		"http":     &http,
		"gateway":  &gateway,
		"studio":   &studio,
		"checkout": &checkout,
		"auth":     &auth,
		"events":   &events,
		"app":      &app,
	} {
		if err := env.Parse(section); err != nil {
			return nil, fmt.Errorf("error parsing %s config: %w", name, err)
		}
	}

	config := Config{
		Database: &db,
		HTTP:     &http,
		Gateway:  &gateway,
		Studio:   &studio,
		Checkout: &checkout,
		Auth:     &auth,
		Events:   &events,
		App:      &app,
	}

	return &config, nil
}
