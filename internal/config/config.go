// Package config loads SmartGram settings from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SMARTGRAM_"

// Config is the complete SmartGram configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Blob    BlobConfig    `yaml:"blob"`
	Budget  BudgetConfig  `yaml:"budget"`
	Metrics MetricsConfig `yaml:"metrics"`
	Source  SourceConfig  `yaml:"source"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is text or json.
	Format string `yaml:"format"`
}

// BlobConfig selects and configures the document store.
type BlobConfig struct {
	// Driver is fs, s3 or memory.
	Driver string   `yaml:"driver"`
	FSRoot string   `yaml:"fs_root"`
	S3     S3Config `yaml:"s3"`
}

// S3Config configures the S3/MinIO backend.
type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Prefix          string `yaml:"prefix"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	SessionToken    string `yaml:"session_token"`
	PathStyle       bool   `yaml:"path_style"`
}

// BudgetConfig holds the default utilization thresholds in percent.
type BudgetConfig struct {
	UnderThreshold float64 `yaml:"under_threshold"`
	OverThreshold  float64 `yaml:"over_threshold"`
}

// MetricsConfig configures the Prometheus textfile export.
type MetricsConfig struct {
	// Textfile is written after every command when set.
	Textfile string `yaml:"textfile"`
}

// SourceConfig configures the SQL intake source.
type SourceConfig struct {
	DSN string `yaml:"dsn"`
}

// DefaultConfig returns a Config with defaults applied.
func DefaultConfig() *Config {
	return &Config{
		Log:  LogConfig{Level: "info", Format: "text"},
		Blob: BlobConfig{Driver: "fs", FSRoot: "./smartgram-data", S3: S3Config{Region: "ap-south-1"}},
		Budget: BudgetConfig{
			UnderThreshold: 50,
			OverThreshold:  90,
		},
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q must be debug, info, warn or error", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be text or json", c.Log.Format))
	}
	switch c.Blob.Driver {
	case "fs", "memory":
	case "s3":
		if c.Blob.S3.Bucket == "" {
			errs = append(errs, errors.New("blob.s3.bucket is required for the s3 driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("blob.driver %q must be fs, s3 or memory", c.Blob.Driver))
	}
	if c.Budget.UnderThreshold < 0 || c.Budget.UnderThreshold > 100 {
		errs = append(errs, fmt.Errorf("budget.under_threshold %v out of range 0-100", c.Budget.UnderThreshold))
	}
	if c.Budget.OverThreshold < 0 || c.Budget.OverThreshold > 100 {
		errs = append(errs, fmt.Errorf("budget.over_threshold %v out of range 0-100", c.Budget.OverThreshold))
	}
	if c.Budget.UnderThreshold > c.Budget.OverThreshold {
		errs = append(errs, fmt.Errorf("budget.under_threshold %v exceeds budget.over_threshold %v", c.Budget.UnderThreshold, c.Budget.OverThreshold))
	}
	return errors.Join(errs...)
}

// LoadFromFile reads a YAML file over the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304: operator-supplied config path
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// Load builds the effective configuration: defaults, then the optional file
// at path, then environment overrides, then validation.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays SMARTGRAM_* variables resolved through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("BLOB_DRIVER", &c.Blob.Driver)
	str("BLOB_FS_ROOT", &c.Blob.FSRoot)
	str("BLOB_S3_BUCKET", &c.Blob.S3.Bucket)
	str("BLOB_S3_REGION", &c.Blob.S3.Region)
	str("BLOB_S3_PREFIX", &c.Blob.S3.Prefix)
	str("BLOB_S3_ENDPOINT", &c.Blob.S3.Endpoint)
	str("BLOB_S3_ACCESS_KEY_ID", &c.Blob.S3.AccessKeyID)
	str("BLOB_S3_SECRET_ACCESS_KEY", &c.Blob.S3.SecretAccessKey)
	str("BLOB_S3_SESSION_TOKEN", &c.Blob.S3.SessionToken)
	str("METRICS_FILE", &c.Metrics.Textfile)
	str("DB_DSN", &c.Source.DSN)

	var errs []error
	if v, ok := lookup(EnvPrefix + "BLOB_S3_PATH_STYLE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sBLOB_S3_PATH_STYLE: %w", EnvPrefix, err))
		} else {
			c.Blob.S3.PathStyle = b
		}
	}
	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"BUDGET_UNDER_THRESHOLD", &c.Budget.UnderThreshold},
		{"BUDGET_OVER_THRESHOLD", &c.Budget.OverThreshold},
	} {
		v, ok := lookup(EnvPrefix + f.name)
		if !ok {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, f.name, err))
			continue
		}
		*f.dst = n
	}
	return errors.Join(errs...)
}
