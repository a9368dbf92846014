// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is read from bundler.cue in the working directory when that file
// exists; otherwise the defaults apply. The file is validated against an embedded
// CUE schema (config_schema.cue) before being merged into Viper over the defaults.
// Environment variables are never consulted.
package config
