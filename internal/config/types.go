// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/electroair/bundler/pkg/types"
)

const (
	// CompressionDeflate compresses bundle entries.
	CompressionDeflate CompressionMethod = "deflate"
	// CompressionStore writes bundle entries uncompressed.
	CompressionStore CompressionMethod = "store"

	// MinCompressionLevel is flate's Huffman-only level.
	MinCompressionLevel = -2
	// MaxCompressionLevel is flate's best-compression level.
	MaxCompressionLevel = 9
)

var (
	// ErrInvalidCompressionMethod is returned when a CompressionMethod value is not recognized.
	ErrInvalidCompressionMethod = errors.New("invalid compression method")
	// ErrInvalidCompressionLevel is returned when a compression level is out of range.
	ErrInvalidCompressionLevel = errors.New("invalid compression level")
	// ErrInvalidLogConfig is the sentinel error wrapped by InvalidLogConfigError.
	ErrInvalidLogConfig = errors.New("invalid log config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// CompressionMethod selects how bundle entries are stored.
	CompressionMethod string

	// InvalidCompressionMethodError is returned when a CompressionMethod value is not recognized.
	// It wraps ErrInvalidCompressionMethod for errors.Is() compatibility.
	InvalidCompressionMethodError struct {
		Value CompressionMethod
	}

	// InvalidCompressionLevelError is returned when a level is outside
	// [MinCompressionLevel, MaxCompressionLevel].
	InvalidCompressionLevelError struct {
		Value int
	}

	// InvalidLogConfigError is returned when a LogConfig has invalid fields.
	InvalidLogConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Output is the destination used when no -o directive is given.
		Output types.FilesystemPath `json:"output" mapstructure:"output"`
		// Debug enables diagnostics as if --debug was passed.
		Debug bool `json:"debug" mapstructure:"debug"`
		// Compression configures how entries are written.
		Compression CompressionConfig `json:"compression" mapstructure:"compression"`
		// Log configures the optional diagnostics file.
		Log LogConfig `json:"log" mapstructure:"log"`
		// Remote configures the object storage used for s3:// destinations.
		Remote RemoteConfig `json:"remote" mapstructure:"remote"`
	}

	// CompressionConfig configures entry compression.
	CompressionConfig struct {
		Method CompressionMethod `json:"method" mapstructure:"method"`
		Level  int               `json:"level" mapstructure:"level"`
	}

	// LogConfig configures the rotating diagnostics file.
	LogConfig struct {
		// File enables file logging when non-empty. Relative paths resolve
		// against the working directory.
		File       string `json:"file" mapstructure:"file"`
		MaxSizeMB  int    `json:"max_size_mb" mapstructure:"max_size_mb"`
		MaxBackups int    `json:"max_backups" mapstructure:"max_backups"`
		MaxAgeDays int    `json:"max_age_days" mapstructure:"max_age_days"`
	}

	// RemoteConfig configures an S3-compatible endpoint.
	RemoteConfig struct {
		Endpoint  string `json:"endpoint" mapstructure:"endpoint"`
		AccessKey string `json:"access_key" mapstructure:"access_key"`
		SecretKey string `json:"secret_key" mapstructure:"secret_key"`
		Secure    bool   `json:"secure" mapstructure:"secure"`
		Region    string `json:"region" mapstructure:"region"`
	}
)

// String returns the string representation of the CompressionMethod.
func (m CompressionMethod) String() string { return string(m) }

// IsValid returns whether the CompressionMethod is one of the defined methods,
// and a list of validation errors if it is not.
func (m CompressionMethod) IsValid() (bool, []error) {
	switch m {
	case CompressionDeflate, CompressionStore:
		return true, nil
	default:
		return false, []error{&InvalidCompressionMethodError{Value: m}}
	}
}

// Error implements the error interface for InvalidCompressionMethodError.
func (e *InvalidCompressionMethodError) Error() string {
	return fmt.Sprintf("invalid compression method %q (valid: deflate, store)", e.Value)
}

// Unwrap returns ErrInvalidCompressionMethod for errors.Is() compatibility.
func (e *InvalidCompressionMethodError) Unwrap() error { return ErrInvalidCompressionMethod }

// Error implements the error interface for InvalidCompressionLevelError.
func (e *InvalidCompressionLevelError) Error() string {
	return fmt.Sprintf("invalid compression level %d (valid: %d to %d)", e.Value, MinCompressionLevel, MaxCompressionLevel)
}

// Unwrap returns ErrInvalidCompressionLevel for errors.Is() compatibility.
func (e *InvalidCompressionLevelError) Unwrap() error { return ErrInvalidCompressionLevel }

// IsValid returns whether the CompressionConfig has valid fields.
func (c CompressionConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Method.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if c.Level < MinCompressionLevel || c.Level > MaxCompressionLevel {
		errs = append(errs, &InvalidCompressionLevelError{Value: c.Level})
	}
	return len(errs) == 0, errs
}

// IsValid returns whether the LogConfig has valid fields. Size and retention
// limits only matter when File is set.
func (c LogConfig) IsValid() (bool, []error) {
	if c.File == "" {
		return true, nil
	}
	var errs []error
	if strings.TrimSpace(c.File) == "" {
		errs = append(errs, fmt.Errorf("log file %q is whitespace-only", c.File))
	}
	if c.MaxSizeMB < 1 {
		errs = append(errs, fmt.Errorf("max_size_mb must be at least 1, got %d", c.MaxSizeMB))
	}
	if c.MaxBackups < 0 {
		errs = append(errs, fmt.Errorf("max_backups must not be negative, got %d", c.MaxBackups))
	}
	if c.MaxAgeDays < 0 {
		errs = append(errs, fmt.Errorf("max_age_days must not be negative, got %d", c.MaxAgeDays))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidLogConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidLogConfigError.
func (e *InvalidLogConfigError) Error() string {
	return fmt.Sprintf("invalid log config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidLogConfig for errors.Is() compatibility.
func (e *InvalidLogConfigError) Unwrap() error { return ErrInvalidLogConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to each sub-component's IsValid(); Remote is checked when an
// s3:// destination is actually written.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if err := c.Output.Validate(); err != nil {
		errs = append(errs, err)
	}
	if valid, fieldErrs := c.Compression.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Log.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid config: %v", e.FieldErrors[0])
	}
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Output: "bundle.zip",
		Debug:  false,
		Compression: CompressionConfig{
			Method: CompressionDeflate,
			Level:  -1,
		},
		Log: LogConfig{
			File:       "", // file logging disabled
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Remote: RemoteConfig{
			Secure: true,
		},
	}
}
