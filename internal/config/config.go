// Package config provides configuration loading and validation for the API server.
// It uses koanf to merge environment variables with optional file overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration values for the API server.
type Config struct {
	// Server settings
	Port int    `koanf:"port"`
	Env  string `koanf:"env"`

	// Database (optional; the service runs CSV-only without it)
	DatabaseURL string `koanf:"database_url"`

	// Redis (optional; snapshot caching and rate limiting are disabled without it)
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`

	// JWT Authentication
	JWTSecret string `koanf:"jwt_secret"`

	// CSV sources on disk. CSVFiles is a comma-separated list of paths,
	// resolved relative to CSVDir when not absolute.
	CSVDir   string `koanf:"csv_dir"`
	CSVFiles string `koanf:"csv_files"`

	// S3-compatible object storage for remote CSV sources
	S3BucketName      string `koanf:"s3_bucket_name"`
	S3AccessKeyID     string `koanf:"s3_access_key_id"`
	S3SecretAccessKey string `koanf:"s3_secret_access_key"`
	S3Endpoint        string `koanf:"s3_endpoint"`
	S3ObjectKeys      string `koanf:"s3_object_keys"` // Comma-separated CSV object keys

	// Scoring calibration file (optional)
	CalibrationPath string `koanf:"calibration_path"`

	// CORS: comma-separated list of allowed origins (empty disables CORS)
	CORSAllowedOrigins string `koanf:"cors_allowed_origins"`

	// Snapshot cache TTL in seconds
	SnapshotTTLSeconds int `koanf:"snapshot_ttl_seconds"`

	// Rate limiting: requests per minute per client (0 disables)
	RateLimitPerMinute int `koanf:"rate_limit_per_minute"`
}

// Configuration validation errors.
var (
	ErrMissingJWTSecret         = errors.New("JWT_SECRET is required")
	ErrMissingS3BucketName      = errors.New("S3_BUCKET_NAME is required")
	ErrMissingS3AccessKeyID     = errors.New("S3_ACCESS_KEY_ID is required")
	ErrMissingS3SecretAccessKey = errors.New("S3_SECRET_ACCESS_KEY is required")
	ErrMissingS3Endpoint        = errors.New("S3_ENDPOINT is required")
	ErrNoSources                = errors.New("at least one event source (CSV_FILES, S3_OBJECT_KEYS, or DATABASE_URL) is required")
	ErrInvalidPort              = errors.New("PORT must be a valid integer")
)

// Default values for non-secret configuration.
const (
	DefaultPort               = 8080
	DefaultEnv                = "development"
	DefaultCSVDir             = "data"
	DefaultSnapshotTTLSeconds = 300
	DefaultRateLimitPerMinute = 120
)

// Load reads configuration from environment variables and an optional config file.
// Environment variables take precedence over file values.
// Returns the loaded config and a slice of validation errors (empty if valid).
// If a config file path is provided and the file cannot be loaded, an error is returned.
func Load(configFilePath string) (*Config, []error) {
	k := koanf.New(".")
	var loadErrs []error

	// Load from YAML file first if provided (lower precedence)
	if configFilePath != "" {
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return nil, []error{fmt.Errorf("failed to load config file %s: %w", configFilePath, err)}
		}
	}

	// Parse port from env, collecting error if invalid
	// Try EVENTSCOUT_PORT first, then PORT for backward compatibility
	port, portErr := getEnvIntOrDefaultMulti([]string{"EVENTSCOUT_PORT", "PORT"}, k.Int("port"), DefaultPort)
	if portErr != nil {
		loadErrs = append(loadErrs, portErr)
	}

	snapshotTTL, ttlErr := getEnvIntOrDefault("SNAPSHOT_TTL_SECONDS", k.Int("snapshot_ttl_seconds"), DefaultSnapshotTTLSeconds)
	if ttlErr != nil {
		loadErrs = append(loadErrs, ttlErr)
	}

	rateLimit, rateErr := getEnvIntOrDefault("RATE_LIMIT_PER_MINUTE", k.Int("rate_limit_per_minute"), DefaultRateLimitPerMinute)
	if rateErr != nil {
		loadErrs = append(loadErrs, rateErr)
	}

	// Build config struct, with env vars taking precedence over file values
	cfg := &Config{
		Port:               port,
		Env:                getEnvOrDefaultMulti([]string{"EVENTSCOUT_ENV", "ENV", "GO_ENV"}, k.String("env"), DefaultEnv),
		DatabaseURL:        getEnvOrKoanf("DATABASE_URL", k, "database_url"),
		RedisAddr:          getEnvOrKoanf("REDIS_ADDR", k, "redis_addr"),
		RedisPassword:      getEnvOrKoanf("REDIS_PASSWORD", k, "redis_password"),
		JWTSecret:          getEnvOrKoanf("JWT_SECRET", k, "jwt_secret"),
		CSVDir:             getEnvOrDefault("CSV_DIR", k.String("csv_dir"), DefaultCSVDir),
		CSVFiles:           getEnvOrKoanf("CSV_FILES", k, "csv_files"),
		S3BucketName:       getEnvOrKoanf("S3_BUCKET_NAME", k, "s3_bucket_name"),
		S3AccessKeyID:      getEnvOrKoanf("S3_ACCESS_KEY_ID", k, "s3_access_key_id"),
		S3SecretAccessKey:  getEnvOrKoanf("S3_SECRET_ACCESS_KEY", k, "s3_secret_access_key"),
		S3Endpoint:         getEnvOrKoanf("S3_ENDPOINT", k, "s3_endpoint"),
		S3ObjectKeys:       getEnvOrKoanf("S3_OBJECT_KEYS", k, "s3_object_keys"),
		CalibrationPath:    getEnvOrKoanf("CALIBRATION_PATH", k, "calibration_path"),
		CORSAllowedOrigins: getEnvOrKoanf("CORS_ALLOWED_ORIGINS", k, "cors_allowed_origins"),
		SnapshotTTLSeconds: snapshotTTL,
		RateLimitPerMinute: rateLimit,
	}

	// Validate and collect errors
	errs := cfg.Validate()
	errs = append(loadErrs, errs...)

	return cfg, errs
}

// getEnvOrKoanf returns the environment variable value if set, otherwise the koanf value.
func getEnvOrKoanf(envKey string, k *koanf.Koanf, koanfKey string) string {
	if val := os.Getenv(envKey); val != "" {
		return val
	}
	return k.String(koanfKey)
}

// getEnvOrDefault returns the environment variable value if set, otherwise the koanf value, or default.
func getEnvOrDefault(envKey string, koanfVal string, defaultVal string) string {
	if val := os.Getenv(envKey); val != "" {
		return val
	}
	if koanfVal != "" {
		return koanfVal
	}
	return defaultVal
}

// getEnvOrDefaultMulti tries multiple environment variable keys in order.
// Returns the first non-empty value found, otherwise the koanf value, or default.
func getEnvOrDefaultMulti(envKeys []string, koanfVal string, defaultVal string) string {
	for _, key := range envKeys {
		if val := os.Getenv(key); val != "" {
			return val
		}
	}
	if koanfVal != "" {
		return koanfVal
	}
	return defaultVal
}

// getEnvIntOrDefault returns the environment variable as int if set, otherwise the koanf value, or default.
// Returns an error if the environment variable is set but cannot be parsed as an integer.
func getEnvIntOrDefault(envKey string, koanfVal int, defaultVal int) (int, error) {
	if val := os.Getenv(envKey); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return 0, fmt.Errorf("%s must be a valid integer: %w", envKey, ErrInvalidPort)
		}
		return i, nil
	}
	if koanfVal != 0 {
		return koanfVal, nil
	}
	return defaultVal, nil
}

// getEnvIntOrDefaultMulti tries multiple environment variable keys in order.
// Returns the first valid integer value found, otherwise the koanf value, or default.
// Returns an error if any environment variable is set but cannot be parsed as an integer.
func getEnvIntOrDefaultMulti(envKeys []string, koanfVal int, defaultVal int) (int, error) {
	for _, key := range envKeys {
		if val := os.Getenv(key); val != "" {
			i, err := strconv.Atoi(val)
			if err != nil {
				return 0, fmt.Errorf("%s must be a valid integer: %w", key, ErrInvalidPort)
			}
			return i, nil
		}
	}
	if koanfVal != 0 {
		return koanfVal, nil
	}
	return defaultVal, nil
}

// CSVFileList returns the configured CSV file names, split and trimmed.
func (c *Config) CSVFileList() []string {
	return splitList(c.CSVFiles)
}

// S3ObjectKeyList returns the configured S3 object keys, split and trimmed.
func (c *Config) S3ObjectKeyList() []string {
	return splitList(c.S3ObjectKeys)
}

// CORSOriginList returns the configured CORS origins, split and trimmed.
func (c *Config) CORSOriginList() []string {
	return splitList(c.CORSAllowedOrigins)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Validate checks that all required configuration values are present.
// Returns a slice of validation errors (empty if valid).
func (c *Config) Validate() []error {
	var errs []error

	if c.JWTSecret == "" {
		errs = append(errs, ErrMissingJWTSecret)
	}

	if len(c.CSVFileList()) == 0 && len(c.S3ObjectKeyList()) == 0 && c.DatabaseURL == "" {
		errs = append(errs, ErrNoSources)
	}

	// S3 configuration is optional. Only validate fields if any S3 value is set.
	if c.S3BucketName != "" || c.S3AccessKeyID != "" || c.S3SecretAccessKey != "" || c.S3Endpoint != "" || c.S3ObjectKeys != "" {
		if c.S3BucketName == "" {
			errs = append(errs, ErrMissingS3BucketName)
		}
		if c.S3AccessKeyID == "" {
			errs = append(errs, ErrMissingS3AccessKeyID)
		}
		if c.S3SecretAccessKey == "" {
			errs = append(errs, ErrMissingS3SecretAccessKey)
		}
		if c.S3Endpoint == "" {
			errs = append(errs, ErrMissingS3Endpoint)
		}
	}

	return errs
}

// LogSummary returns a summary of the configuration suitable for logging.
// All secrets are masked to prevent accidental exposure.
func (c *Config) LogSummary() map[string]string {
	return map[string]string{
		"port":                  fmt.Sprintf("%d", c.Port),
		"env":                   c.Env,
		"database_url":          maskDatabaseURL(c.DatabaseURL),
		"redis_addr":            c.RedisAddr,
		"redis_password":        maskSecret(c.RedisPassword),
		"jwt_secret":            maskSecret(c.JWTSecret),
		"csv_dir":               c.CSVDir,
		"csv_files":             c.CSVFiles,
		"s3_bucket_name":        c.S3BucketName,
		"s3_access_key_id":      maskSecret(c.S3AccessKeyID),
		"s3_secret_access_key":  maskSecret(c.S3SecretAccessKey),
		"s3_endpoint":           c.S3Endpoint,
		"s3_object_keys":        c.S3ObjectKeys,
		"calibration_path":      c.CalibrationPath,
		"cors_allowed_origins":  c.CORSAllowedOrigins,
		"snapshot_ttl_seconds":  fmt.Sprintf("%d", c.SnapshotTTLSeconds),
		"rate_limit_per_minute": fmt.Sprintf("%d", c.RateLimitPerMinute),
	}
}

// maskSecret masks a secret value, showing only the first 4 characters followed by ****
// If the secret is shorter than 8 characters, it's fully masked.
func maskSecret(s string) string {
	if s == "" {
		return "<not set>"
	}
	if len(s) < 8 {
		return "****"
	}
	return s[:4] + "****"
}

// maskDatabaseURL masks the password in a database URL.
// Supports both postgres:// and postgresql:// schemes.
func maskDatabaseURL(s string) string {
	if s == "" {
		return "<not set>"
	}

	schemeEnd := strings.Index(s, "://")
	if schemeEnd == -1 {
		return maskSecret(s)
	}

	rest := s[schemeEnd+3:]
	atIndex := strings.Index(rest, "@")
	if atIndex == -1 {
		return s // No credentials in URL
	}

	colonIndex := strings.Index(rest[:atIndex], ":")
	if colonIndex == -1 {
		return s // No password (only username)
	}

	scheme := s[:schemeEnd+3]
	user := rest[:colonIndex]
	hostAndPath := rest[atIndex:]

	return scheme + user + ":****" + hostAndPath
}
