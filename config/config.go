package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// DefaultConfigFile is read when RESULTS_CONFIG is not set and the file exists.
const DefaultConfigFile = "results.yaml"

// Source types
const (
	SourceCSV      = "csv"
	SourceXLSX     = "xlsx"
	SourcePostgres = "postgres"
)

// Config represents the complete application configuration. Leaf fields
// carry no envconfig tag: envconfig falls back to a bare tag name (PATH,
// USER) when the prefixed variable is unset.
type Config struct {
	Source   SourceConfig   `yaml:"source" envconfig:"SOURCE"`
	Schema   Schema         `yaml:"schema" envconfig:"SCHEMA"`
	Database DatabaseConfig `yaml:"database" envconfig:"DB"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOG"`
	Export   ExportConfig   `yaml:"export" envconfig:"EXPORT"`
}

// SourceConfig describes where the roster is read from
type SourceConfig struct {
	Type      string `yaml:"type" validate:"oneof=csv xlsx postgres"`
	Path      string `yaml:"path" validate:"required_unless=Type postgres"`
	Sheet     string `yaml:"sheet"`
	Delimiter string `yaml:"delimiter" validate:"omitempty,len=1"`
	Table     string `yaml:"table" validate:"required_if=Type postgres"`
	OrderBy   string `yaml:"order_by" split_words:"true"`
}

// Comma returns the CSV field delimiter, defaulting to ','.
func (s SourceConfig) Comma() rune {
	if s.Delimiter == "" {
		return ','
	}
	r, _ := utf8.DecodeRuneInString(s.Delimiter)
	return r
}

// Schema names the columns the loader must resolve. Subject order is the
// display and iteration order everywhere downstream.
type Schema struct {
	Subjects     []string `yaml:"subjects" validate:"min=1,unique,dive,required"`
	ResultColumn string   `yaml:"result_column" split_words:"true" validate:"required"`
}

// Columns returns every configured column: subjects first, then the result column.
func (s Schema) Columns() []string {
	cols := make([]string, 0, len(s.Subjects)+1)
	cols = append(cols, s.Subjects...)
	return append(cols, s.ResultColumn)
}

// DatabaseConfig holds the connection settings for a postgres source
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN builds a lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// AnalysisConfig holds the fixed aggregation defaults
type AnalysisConfig struct {
	TopN          int     `yaml:"top_n" split_words:"true" validate:"min=1"`
	Bins          int     `yaml:"bins" validate:"min=1"`
	PassThreshold float64 `yaml:"pass_threshold" split_words:"true"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// ExportConfig controls where reports and charts are written
type ExportConfig struct {
	Dir string `yaml:"dir" validate:"required"`
}

// Default returns the built-in configuration: a Student.csv roster with
// Maths, Physics and Chemistry scores and a Result flag.
func Default() Config {
	return Config{
		Source: SourceConfig{
			Type: SourceCSV,
			Path: "Student.csv",
		},
		Schema: Schema{
			Subjects:     []string{"Maths", "Physics", "Chemistry"},
			ResultColumn: "Result",
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    "5432",
			SSLMode: "disable",
		},
		Analysis: AnalysisConfig{
			TopN:          5,
			Bins:          10,
			PassThreshold: 40,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Export: ExportConfig{
			Dir: "reports",
		},
	}
}

// Load builds the configuration. Precedence, lowest first: built-in
// defaults, the YAML file, then environment variables (a .env file in the
// working directory is loaded into the environment first).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := Default()

	path, explicit := os.LookupEnv("RESULTS_CONFIG")
	if !explicit {
		path = DefaultConfigFile
	}
	if _, err := os.Stat(path); err == nil {
		if err := loadFromFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile overlays the YAML file at path onto cfg
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration with its struct tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}
