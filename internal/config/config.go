package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/bikeshare-dashboard/internal/rental"
)

// Dataset source kinds.
const (
	SourceCSV    = "csv"
	SourceHTTP   = "http"
	SourceSQLite = "sqlite"
)

type AppConfig struct {
	Port string

	// DatasetSource selects where records are loaded from: csv, http or sqlite.
	DatasetSource string
	DatasetPath   string
	DatasetURL    string
	SQLiteDBPath  string

	// LoadStrict aborts the load on the first malformed row; otherwise such rows are dropped.
	LoadStrict bool

	HTTPTimeout time.Duration

	// Scheduled chart export; disabled when ExportDir is empty.
	ExportDir      string
	ExportInterval time.Duration

	ChartWidth  int
	ChartHeight int
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.DatasetSource = strings.ToLower(getenvDefault("DATASET_SOURCE", SourceCSV))
	cfg.DatasetPath = getenvDefault("DATASET_PATH", "dashboard/dataset.csv")
	cfg.DatasetURL = os.Getenv("DATASET_URL")
	cfg.SQLiteDBPath = getenvDefault("SQLITE_DB_PATH", "./data/bikeshare.db")
	cfg.LoadStrict = getenvBool("LOAD_STRICT", true)

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.ExportDir = os.Getenv("EXPORT_DIR")
	interval, err := time.ParseDuration(getenvDefault("EXPORT_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid EXPORT_INTERVAL: %w", err)
	}
	cfg.ExportInterval = interval

	cfg.ChartWidth = getenvInt("CHART_WIDTH", 1200)
	cfg.ChartHeight = getenvInt("CHART_HEIGHT", 500)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate collects every configuration problem into one error.
func (c *AppConfig) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %q: must be a number between 1 and 65535", c.Port))
	}

	switch c.DatasetSource {
	case SourceCSV:
		if c.DatasetPath == "" {
			problems = append(problems, "DATASET_PATH is required for the csv source")
		}
	case SourceHTTP:
		if c.DatasetURL == "" {
			problems = append(problems, "DATASET_URL is required for the http source")
		}
	case SourceSQLite:
		if c.SQLiteDBPath == "" {
			problems = append(problems, "SQLITE_DB_PATH is required for the sqlite source")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid DATASET_SOURCE %q: must be one of csv, http, sqlite", c.DatasetSource))
	}

	if c.HTTPTimeout <= 0 {
		problems = append(problems, "HTTP_TIMEOUT must be positive")
	}
	if c.ExportDir != "" && c.ExportInterval < time.Minute {
		problems = append(problems, fmt.Sprintf("EXPORT_INTERVAL %v must be at least one minute", c.ExportInterval))
	}
	if c.ChartWidth < 100 || c.ChartHeight < 100 {
		problems = append(problems, fmt.Sprintf("chart size %dx%d too small: minimum 100x100", c.ChartWidth, c.ChartHeight))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// LoadPolicy maps LoadStrict to the loader policy.
func (c *AppConfig) LoadPolicy() rental.LoadPolicy {
	if c.LoadStrict {
		return rental.PolicyAbort
	}
	return rental.PolicyDrop
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
