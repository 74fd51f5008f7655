package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Defaults applied when the environment leaves a setting unset.
const (
	DefaultDataDir  = "data"
	DefaultQuoteURL = "https://www.nasdaq.com/symbol"
	DefaultCacheTTL = 5 * time.Minute
)

// Config carries the process settings. It is returned by Load and
// passed explicitly to whoever needs it.
type Config struct {
	// DataDir holds one SQLite store file per user.
	DataDir string
	// QuoteBaseURL is the quote site scraped for current prices; the
	// symbol is appended as the last path segment.
	QuoteBaseURL string
	// RedisAddr enables the price-quote cache when non-empty.
	RedisAddr string
	// CacheTTL is how long a cached quote stays fresh.
	CacheTTL time.Duration
}

// Load reads a .env file if present, then the process environment, and
// returns the resulting configuration.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := Config{
		DataDir:      DefaultDataDir,
		QuoteBaseURL: DefaultQuoteURL,
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		CacheTTL:     DefaultCacheTTL,
	}

	if v := os.Getenv("PORTFOLIO_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("QUOTE_BASE_URL"); v != "" {
		cfg.QuoteBaseURL = v
	}
	if v := os.Getenv("PRICE_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("Invalid PRICE_CACHE_TTL %q, using default %v", v, DefaultCacheTTL)
		} else {
			cfg.CacheTTL = d
		}
	}

	return cfg
}
