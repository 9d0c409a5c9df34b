package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// FileEnvKey names the environment variable holding the optional YAML config path.
const FileEnvKey = "CEXSTAT_CONFIG"

// Config holds all application configuration.
type Config struct {
	BinanceURL            string
	BinanceAPIKey         string
	BinanceAPISecret      string
	BinanceRetryMax       int
	BinanceRetryBaseDelay time.Duration
	QuoteAsset            string
	DustThreshold         decimal.Decimal
	StableAssets          []string
	FetchConcurrency      int
	PriceCacheTTL         time.Duration
	RefreshInterval       time.Duration
	HTTPPort              string
	AdminAPIKey           string
	SheetsSpreadsheetID   string
	GoogleCredentialsJSON string
	LogLevel              slog.Level
}

// SheetsEnabled reports whether Google Sheets export is configured.
func (c Config) SheetsEnabled() bool {
	return c.SheetsSpreadsheetID != "" && c.GoogleCredentialsJSON != ""
}

// Load reads configuration from environment variables with sensible defaults.
// When CEXSTAT_CONFIG points to a YAML file, its keys (the same names as the
// environment variables) provide base values; the environment wins.
func Load() (Config, error) {
	src := source{}
	if path := os.Getenv(FileEnvKey); path != "" {
		file, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		src.file = file
	}

	return Config{
		BinanceURL:            src.orDefault("BINANCE_URL", "https://api.binance.com"),
		BinanceAPIKey:         src.orDefaultWarn("BINANCE_API_KEY", ""),
		BinanceAPISecret:      src.orDefaultWarn("BINANCE_API_SECRET", ""),
		BinanceRetryMax:       src.orDefaultInt("BINANCE_RETRY_MAX", 5),
		BinanceRetryBaseDelay: src.orDefaultDuration("BINANCE_RETRY_BASE_DELAY", 2*time.Second),
		QuoteAsset:            strings.ToUpper(src.orDefault("QUOTE_ASSET", "USDT")),
		DustThreshold:         src.orDefaultDecimal("DUST_THRESHOLD", decimal.NewFromInt(1)),
		StableAssets:          src.orDefaultList("STABLE_ASSETS", []string{"USDT", "USDC", "BUSD"}),
		FetchConcurrency:      src.orDefaultInt("FETCH_CONCURRENCY", 8),
		PriceCacheTTL:         src.orDefaultDuration("PRICE_CACHE_TTL", 30*time.Second),
		RefreshInterval:       src.orDefaultDuration("REFRESH_INTERVAL", 5*time.Minute),
		HTTPPort:              src.orDefault("HTTP_PORT", "8080"),
		AdminAPIKey:           src.orDefault("ADMIN_API_KEY", ""),
		SheetsSpreadsheetID:   src.orDefault("SHEETS_SPREADSHEET_ID", ""),
		GoogleCredentialsJSON: src.orDefault("GOOGLE_CREDENTIALS_JSON", ""),
		LogLevel:              src.orDefaultLevel("LOG_LEVEL", slog.LevelInfo),
	}, nil
}

func readFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		key := strings.ToUpper(k)
		switch val := v.(type) {
		case nil:
		case []any:
			parts := make([]string, 0, len(val))
			for _, p := range val {
				parts = append(parts, fmt.Sprint(p))
			}
			values[key] = strings.Join(parts, ",")
		default:
			values[key] = fmt.Sprint(val)
		}
	}
	return values, nil
}

// source resolves a key from the environment, then from the config file.
type source struct {
	file map[string]string
}

func (s source) get(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return s.file[key]
}

func (s source) orDefault(key, defaultVal string) string {
	if v := s.get(key); v != "" {
		return v
	}
	return defaultVal
}

func (s source) orDefaultWarn(key, defaultVal string) string {
	v := s.orDefault(key, defaultVal)
	if v == "" {
		slog.Warn("required config value not set", "key", key)
	}
	return v
}

func (s source) orDefaultInt(key string, defaultVal int) int {
	if v := s.get(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			slog.Warn("invalid integer config value, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return n
	}
	return defaultVal
}

func (s source) orDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := s.get(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			slog.Warn("invalid duration config value, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}

func (s source) orDefaultDecimal(key string, defaultVal decimal.Decimal) decimal.Decimal {
	if v := s.get(key); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil || d.IsNegative() {
			slog.Warn("invalid decimal config value, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}

func (s source) orDefaultList(key string, defaultVal []string) []string {
	v := s.get(key)
	if v == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.ToUpper(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}

func (s source) orDefaultLevel(key string, defaultVal slog.Level) slog.Level {
	if v := s.get(key); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(v)); err != nil {
			slog.Warn("invalid log level, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return level
	}
	return defaultVal
}
