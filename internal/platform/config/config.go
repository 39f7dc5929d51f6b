package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Store backends.
const (
	StoreBackendPostgres = "postgres"
	StoreBackendMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	DBMaxConns     int32
	StoreBackend   string
	MigrationsPath string
	RunMigrations  bool
	Port           string
	IsProduction   bool
	LogLevel       string

	JWTSecret string

	// Ledger policy
	StoreTimeout           time.Duration
	OverdraftFloorChecking decimal.Decimal
	OverdraftFloorSavings  decimal.Decimal

	// HTTP edge
	RateLimit          string // ulule formatted rate, e.g. "100-M"
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("STORE_BACKEND", StoreBackendPostgres)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("RUN_MIGRATIONS", true)
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("STORE_TIMEOUT", "5s")
	viper.SetDefault("OVERDRAFT_FLOOR_CHECKING", "0")
	viper.SetDefault("OVERDRAFT_FLOOR_SAVINGS", "0")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:    viper.GetString("PGSQL_URL"),
		DBMaxConns:     viper.GetInt32("DB_MAX_CONNS"),
		StoreBackend:   strings.ToLower(viper.GetString("STORE_BACKEND")),
		MigrationsPath: viper.GetString("MIGRATIONS_PATH"),
		RunMigrations:  viper.GetBool("RUN_MIGRATIONS"),
		Port:           viper.GetString("PORT"),
		IsProduction:   viper.GetBool("IS_PRODUCTION"),
		LogLevel:       viper.GetString("LOG_LEVEL"),
		JWTSecret:      viper.GetString("JWT_SECRET"),
		RateLimit:      viper.GetString("RATE_LIMIT"),
	}

	switch cfg.StoreBackend {
	case StoreBackendPostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StoreBackendMemory:
		log.Println("Warning: STORE_BACKEND=memory, ledger state is lost on restart.")
	default:
		return nil, fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", StoreBackendPostgres, StoreBackendMemory, cfg.StoreBackend)
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must not be empty")
	}
	if cfg.IsProduction && cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		return nil, fmt.Errorf("JWT_SECRET must be set in production")
	}

	storeTimeoutStr := viper.GetString("STORE_TIMEOUT")
	storeTimeout, err := time.ParseDuration(storeTimeoutStr)
	if err != nil || storeTimeout <= 0 {
		storeTimeout = 5 * time.Second
		log.Printf("Warning: Invalid value for STORE_TIMEOUT ('%s'). Defaulting to %s.\n", storeTimeoutStr, storeTimeout)
	}
	cfg.StoreTimeout = storeTimeout

	if cfg.OverdraftFloorChecking, err = parseFloor("OVERDRAFT_FLOOR_CHECKING"); err != nil {
		return nil, err
	}
	if cfg.OverdraftFloorSavings, err = parseFloor("OVERDRAFT_FLOOR_SAVINGS"); err != nil {
		return nil, err
	}

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}

// parseFloor reads an overdraft floor. Floors are zero or negative.
func parseFloor(key string) (decimal.Decimal, error) {
	raw := viper.GetString(key)
	floor, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: invalid decimal %q: %w", key, raw, err)
	}
	if floor.IsPositive() {
		return decimal.Zero, fmt.Errorf("%s must be zero or negative, got %s", key, floor)
	}
	return floor, nil
}
