// SPDX-License-Identifier: MPL-2.0

// Package types defines small value types shared by the bundler packages:
// process exit codes and destination paths. It imports only the standard
// library so every other package can depend on it.
package types
