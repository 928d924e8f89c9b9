package config

import (
	"fmt"
	"os"
	"strconv"
)

// Output formats
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Config holds application configuration
type Config struct {
	PlanFile     string
	OutputFormat string
	OutputFile   string
	RangeYears   int
	LogLevel     string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		PlanFile:     getEnv("PLAN_FILE", "plan.yaml"),
		OutputFormat: getEnv("OUTPUT_FORMAT", FormatCSV),
		OutputFile:   getEnv("OUTPUT_FILE", ""),
		LogLevel:     getEnv("LOG_LEVEL", "INFO"),
	}

	if cfg.PlanFile == "" {
		return nil, fmt.Errorf("PLAN_FILE is required")
	}
	if cfg.OutputFormat != FormatCSV && cfg.OutputFormat != FormatJSON {
		return nil, fmt.Errorf("OUTPUT_FORMAT must be %q or %q, got %q", FormatCSV, FormatJSON, cfg.OutputFormat)
	}

	if raw := getEnv("RANGE_YEARS", ""); raw != "" {
		years, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("RANGE_YEARS must be an integer: %w", err)
		}
		cfg.RangeYears = years
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
