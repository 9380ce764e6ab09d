package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string `yaml:"serverAddress"`
	Environment   string `yaml:"environment"`

	// Logging
	LogLevel string `yaml:"logLevel"`

	// Feature flags
	EnableMetrics bool `yaml:"enableMetrics"`
	EnableTracing bool `yaml:"enableTracing"`
	EnableCORS    bool `yaml:"enableCORS"`

	// Rate limiting, requests per second with a burst allowance
	RateLimit float64 `yaml:"rateLimit"`
	RateBurst int     `yaml:"rateBurst"`

	// Editor settings proxies read
	Editor EditorConfig `yaml:"editor"`

	// File is the YAML file the values were layered from, if any
	File string `yaml:"-"`
}

// EditorConfig holds the settings that can change while running
type EditorConfig struct {
	FigureWidth      int    `yaml:"figureWidth"`
	FigureHeight     int    `yaml:"figureHeight"`
	CapabilitiesPath string `yaml:"capabilitiesPath"`
	UndoLimit        int    `yaml:"undoLimit"`
}

func defaults() *Config {
	return &Config{
		ServerAddress: ":8080",
		Environment:   "development",
		LogLevel:      "info",
		EnableMetrics: true,
		EnableCORS:    true,
		RateLimit:     50,
		RateBurst:     100,
		Editor:        DefaultEditorConfig(),
	}
}

// DefaultEditorConfig is the editor section used when nothing overrides it
func DefaultEditorConfig() EditorConfig {
	return EditorConfig{
		FigureWidth:  120,
		FigureHeight: 55,
		UndoLimit:    1000,
	}
}

// LoadConfig layers defaults, the YAML file named by CONFIG_FILE and then
// environment variables, in that order.
func LoadConfig() (*Config, error) {
	return Load(os.Getenv("CONFIG_FILE"))
}

// Load is LoadConfig with an explicit file; an empty path skips the file
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
		cfg.File = path
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.ServerAddress = getEnv("SERVER_ADDRESS", c.ServerAddress)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	c.EnableMetrics = getEnvBool("ENABLE_METRICS", c.EnableMetrics)
	c.EnableTracing = getEnvBool("ENABLE_TRACING", c.EnableTracing)
	c.EnableCORS = getEnvBool("ENABLE_CORS", c.EnableCORS)

	c.RateLimit = getEnvFloat("RATE_LIMIT", c.RateLimit)
	c.RateBurst = getEnvInt("RATE_BURST", c.RateBurst)

	c.Editor.FigureWidth = getEnvInt("FIGURE_WIDTH", c.Editor.FigureWidth)
	c.Editor.FigureHeight = getEnvInt("FIGURE_HEIGHT", c.Editor.FigureHeight)
	c.Editor.CapabilitiesPath = getEnv("CAPABILITIES_FILE", c.Editor.CapabilitiesPath)
	c.Editor.UndoLimit = getEnvInt("UNDO_LIMIT", c.Editor.UndoLimit)
}

// Validate checks the configuration is usable
func (c *Config) Validate() error {
	var errs []error
	if c.ServerAddress == "" {
		errs = append(errs, errors.New("SERVER_ADDRESS is required"))
	}
	if err := c.Editor.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.RateLimit < 0 || c.RateBurst < 0 {
		errs = append(errs, errors.New("rate limit and burst must not be negative"))
	}
	return errors.Join(errs...)
}

// Validate checks the editor settings
func (e EditorConfig) Validate() error {
	if e.FigureWidth <= 0 || e.FigureHeight <= 0 {
		return fmt.Errorf("default figure size must be positive, got %dx%d", e.FigureWidth, e.FigureHeight)
	}
	if e.UndoLimit < 0 {
		return errors.New("undo limit must not be negative")
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
