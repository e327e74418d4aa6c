package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Binance API
	APIKey    string
	APISecret string
	BaseURL   string

	// Order caps
	OrderLimitsPath string

	// Telemetry
	LogLevel string
	LogDir   string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIKey:    envStr("BINANCE_API_KEY", ""),
		APISecret: envStr("BINANCE_API_SECRET", ""),
		BaseURL:   envStr("BINANCE_BASE_URL", "https://testnet.binancefuture.com"),

		OrderLimitsPath: envStr("ORDER_LIMITS_PATH", ""),

		LogLevel: envStr("LOG_LEVEL", "info"),
		LogDir:   envStr("TRADEBOT_LOG_DIR", "logs"),
	}
}

// HasCredentials reports whether both halves of the API credential pair
// are present. Signed endpoints are unusable without them.
func (c *Config) HasCredentials() bool {
	return c.APIKey != "" && c.APISecret != ""
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
