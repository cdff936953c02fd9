package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	Backends BackendsConfig
	Cache    CacheConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port           string
	DevLog         bool
	AllowedOrigins []string
}

// BackendsConfig points at the four operational subsystems and carries the
// shared bearer token they all accept.
type BackendsConfig struct {
	LandsideURL    string
	WarehousingURL string
	InvoicingURL   string
	WatersideURL   string
	BearerToken    string
	Timeout        time.Duration
}

// CacheConfig holds the refresh policy knobs shared by all collections plus
// the per-collection background refresh intervals.
type CacheConfig struct {
	StaleAfter time.Duration
	GCAfter    time.Duration
	MaxRetries int
	RetryDelay time.Duration

	TrucksInterval         time.Duration
	AppointmentsInterval   time.Duration
	WarehousesInterval     time.Duration
	PurchaseOrdersInterval time.Duration
	ShippingOrdersInterval time.Duration
	DashboardInterval      time.Duration
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getenvWithDefault("APP_PORT", "8080"),
			DevLog:         getenvBool("DEV_LOG", false),
			AllowedOrigins: []string{getenvWithDefault("ALLOWED_ORIGIN", "http://localhost:5173")},
		},
		Backends: BackendsConfig{
			LandsideURL:    getenvWithDefault("LANDSIDE_BASE_URL", "http://localhost:8081/api/landside"),
			WarehousingURL: getenvWithDefault("WAREHOUSING_BASE_URL", "http://localhost:8082/api/warehousing"),
			InvoicingURL:   getenvWithDefault("INVOICING_BASE_URL", "http://localhost:8083/api/invoicing"),
			WatersideURL:   getenvWithDefault("WATERSIDE_BASE_URL", "http://localhost:8084/api/waterside"),
			BearerToken:    os.Getenv("BACKEND_BEARER_TOKEN"),
			Timeout:        getenvDuration("BACKEND_TIMEOUT", 10*time.Second),
		},
		Cache: CacheConfig{
			StaleAfter: getenvDuration("CACHE_STALE_AFTER", 15*time.Second),
			GCAfter:    getenvDuration("CACHE_GC_AFTER", 10*time.Minute),
			MaxRetries: getenvInt("FETCH_MAX_RETRIES", 2),
			RetryDelay: getenvDuration("FETCH_RETRY_DELAY", 2*time.Second),

			TrucksInterval:         getenvDuration("TRUCKS_REFRESH_INTERVAL", 30*time.Second),
			AppointmentsInterval:   getenvDuration("APPOINTMENTS_REFRESH_INTERVAL", 30*time.Second),
			WarehousesInterval:     getenvDuration("WAREHOUSES_REFRESH_INTERVAL", time.Minute),
			PurchaseOrdersInterval: getenvDuration("PURCHASE_ORDERS_REFRESH_INTERVAL", time.Minute),
			ShippingOrdersInterval: getenvDuration("SHIPPING_ORDERS_REFRESH_INTERVAL", time.Minute),
			DashboardInterval:      getenvDuration("DASHBOARD_REFRESH_INTERVAL", 30*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.Backends.LandsideURL == "":
		return errors.New("LANDSIDE_BASE_URL must not be empty")
	case c.Backends.WarehousingURL == "":
		return errors.New("WAREHOUSING_BASE_URL must not be empty")
	case c.Backends.InvoicingURL == "":
		return errors.New("INVOICING_BASE_URL must not be empty")
	case c.Backends.WatersideURL == "":
		return errors.New("WATERSIDE_BASE_URL must not be empty")
	}

	if c.Backends.Timeout <= 0 {
		return errors.New("BACKEND_TIMEOUT must be positive")
	}

	if c.Cache.StaleAfter <= 0 {
		return errors.New("CACHE_STALE_AFTER must be positive")
	}

	if c.Cache.MaxRetries < 0 {
		return errors.New("FETCH_MAX_RETRIES must not be negative")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
