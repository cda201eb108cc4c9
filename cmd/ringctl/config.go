package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"github.com/wizenheimer/ring"
)

const envVarPrefix = "RINGCTL"

// Config is read from an optional YAML file, then overridden by environment
// variables (RINGCTL_LOG_LEVEL, RINGCTL_ANALYZER_MIN_TOKEN_LENGTH, ...).
type Config struct {
	LogLevel  string `envconfig:"LOG_LEVEL"                 yaml:"logLevel"`
	MinLength int    `envconfig:"ANALYZER_MIN_TOKEN_LENGTH" yaml:"minTokenLength"`
	Stemming  bool   `envconfig:"ANALYZER_STEMMING"         yaml:"stemming"`
	Stopwords bool   `envconfig:"ANALYZER_STOPWORDS"        yaml:"stopwords"`
}

func DefaultConfig() Config {
	analyzer := ring.DefaultAnalyzerConfig()
	return Config{
		LogLevel:  "info",
		MinLength: analyzer.MinTokenLength,
		Stemming:  analyzer.EnableStemming,
		Stopwords: analyzer.EnableStopwords,
	}
}

// LoadConfig reads the file named by RINGCTL_CONFIG_FILE (if set) and then
// applies environment overrides on top of the defaults.
func LoadConfig() (*Config, error) {
	c := DefaultConfig()

	if configFile := os.Getenv(envVarPrefix + "_CONFIG_FILE"); configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.UnmarshalStrict(data, &c); err != nil {
			return nil, fmt.Errorf("unmarshaling config file: %w", err)
		}
	}

	if err := envconfig.Process(envVarPrefix, &c); err != nil {
		return nil, fmt.Errorf("parsing environment variables: %w", err)
	}

	return &c, c.Validate()
}

func (c *Config) Validate() error {
	if c.MinLength < 0 {
		return fmt.Errorf("validating config: minTokenLength must not be negative, got %d", c.MinLength)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	return nil
}

// Level parses LogLevel (debug, info, warn, error)
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, errors.Join(fmt.Errorf("invalid log level %q", c.LogLevel), err)
	}
	return level, nil
}

func (c *Config) Analyzer() ring.AnalyzerConfig {
	return ring.AnalyzerConfig{
		MinTokenLength:  c.MinLength,
		EnableStemming:  c.Stemming,
		EnableStopwords: c.Stopwords,
	}
}

func (c *Config) Logger() *slog.Logger {
	level, _ := c.Level()
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
