package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds runtime parameters for the curve-rate transformations and the CLI.
type Config struct {
	// ParallelThreshold is the minimum number of periods before forward rates
	// are split across goroutines. 0 disables splitting.
	ParallelThreshold int

	// MaxWorkers caps the goroutines used for parallel forward extraction.
	MaxWorkers int

	// CheckTolerance is the largest relative discount-factor round-trip error
	// accepted before the CLI warns.
	CheckTolerance float64

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogPretty switches to human-readable console output.
	LogPretty bool
}

// DefaultConfig provides production-ready default values.
var DefaultConfig = Config{
	ParallelThreshold: 4096,
	MaxWorkers:        4,
	CheckTolerance:    1e-12,
	LogLevel:          "info",
	LogPretty:         false,
}

// cfg is the active configuration. Defaults to DefaultConfig.
var cfg = DefaultConfig

// SetConfig replaces the active configuration.
func SetConfig(c Config) {
	cfg = c
}

// GetConfig returns the active configuration.
func GetConfig() Config {
	return cfg
}

// Load starts from DefaultConfig and applies environment overrides, reading a
// .env file first if one exists.
func Load() (Config, error) {
	_ = godotenv.Load()

	c := DefaultConfig
	c.ParallelThreshold = getEnvAsInt("CURVESTATE_PARALLEL_THRESHOLD", c.ParallelThreshold)
	c.MaxWorkers = getEnvAsInt("CURVESTATE_MAX_WORKERS", c.MaxWorkers)
	c.CheckTolerance = getEnvAsFloat("CURVESTATE_CHECK_TOLERANCE", c.CheckTolerance)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogPretty = getEnvAsBool("LOG_PRETTY", c.LogPretty)

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.ParallelThreshold < 0 {
		return fmt.Errorf("CURVESTATE_PARALLEL_THRESHOLD must be >= 0, got %d", c.ParallelThreshold)
	}
	if c.MaxWorkers < 1 {
		return fmt.Errorf("CURVESTATE_MAX_WORKERS must be >= 1, got %d", c.MaxWorkers)
	}
	if !(c.CheckTolerance > 0) {
		return fmt.Errorf("CURVESTATE_CHECK_TOLERANCE must be positive, got %g", c.CheckTolerance)
	}
	return nil
}

// Workers returns how many goroutines to use for n periods.
func (c Config) Workers(n int) int {
	if c.ParallelThreshold == 0 || n < c.ParallelThreshold {
		return 1
	}
	return c.MaxWorkers
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
