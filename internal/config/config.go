// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/electroair/bundler/internal/issue"
	"github.com/electroair/bundler/pkg/cueutil"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "bundler.cue"

//go:embed config_schema.cue
var configSchema []byte

// loadWithOptions performs option-driven config loading. It returns the
// decoded configuration and the path of the file that was read, or "" when
// the defaults were used.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	if err := opts.Validate(); err != nil {
		return nil, "", err
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("output", defaults.Output.String())
	v.SetDefault("debug", defaults.Debug)
	v.SetDefault("compression.method", defaults.Compression.Method.String())
	v.SetDefault("compression.level", defaults.Compression.Level)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("log.max_size_mb", defaults.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", defaults.Log.MaxBackups)
	v.SetDefault("log.max_age_days", defaults.Log.MaxAgeDays)
	v.SetDefault("remote.endpoint", defaults.Remote.Endpoint)
	v.SetDefault("remote.access_key", defaults.Remote.AccessKey)
	v.SetDefault("remote.secret_key", defaults.Remote.SecretKey)
	v.SetDefault("remote.secure", defaults.Remote.Secure)
	v.SetDefault("remote.region", defaults.Remote.Region)

	cfgPath, required := opts.path()
	resolvedPath := ""

	data, err := os.ReadFile(cfgPath)
	switch {
	case err == nil:
		if err := loadCUEIntoViper(v, data, cfgPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithIssue(issue.ConfigLoadFailedId).
				WithOperation("load configuration").
				WithResource(cfgPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				Wrap(err).
				BuildError()
		}
		resolvedPath = cfgPath
	case errors.Is(err, fs.ErrNotExist) && !required:
		// No config file found, use defaults.
	default:
		return nil, "", issue.NewErrorContext().
			WithIssue(issue.ConfigLoadFailedId).
			WithOperation("load configuration").
			WithResource(cfgPath).
			WithSuggestion("Verify the file path is correct").
			WithSuggestion("Check that the file exists and is readable").
			Wrap(err).
			BuildError()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// Constraints are also in the schema; this catches values that only
	// come from defaults or from programmatic callers.
	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithIssue(issue.ConfigLoadFailedId).
			WithOperation("validate configuration").
			WithResource(cfgPath).
			Wrap(errors.Join(errs...)).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// loadCUEIntoViper validates a CUE document against the #Config schema and
// merges its contents into Viper.
//
// The document decodes to map[string]any rather than Config so that fields
// the user left out keep their Viper defaults.
func loadCUEIntoViper(v *viper.Viper, data []byte, path string) error {
	result, err := cueutil.ParseAndDecode[map[string]any](
		configSchema,
		data,
		"#Config",
		cueutil.WithFilename(filepath.Base(path)),
		cueutil.WithConcrete(false),
	)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(*result.Value); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}
