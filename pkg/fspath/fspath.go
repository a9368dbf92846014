// SPDX-License-Identifier: MPL-2.0

// Package fspath provides typed wrappers around path/filepath for
// types.FilesystemPath values, plus the rule that decides how a destination
// is resolved against the working directory.
package fspath

import (
	"fmt"
	"path/filepath"

	"github.com/electroair/bundler/pkg/types"
)

// JoinStr joins a typed base path with raw string segments, such as a
// config file name or a relative item path.
func JoinStr(base types.FilesystemPath, elem ...string) types.FilesystemPath {
	parts := make([]string, 1, 1+len(elem))
	parts[0] = string(base)
	parts = append(parts, elem...)
	return types.FilesystemPath(filepath.Join(parts...))
}

// Dir wraps filepath.Dir for FilesystemPath.
func Dir(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Dir(string(p)))
}

// Base wraps filepath.Base for FilesystemPath.
func Base(p types.FilesystemPath) string {
	return filepath.Base(string(p))
}

// Abs wraps filepath.Abs for FilesystemPath.
func Abs(p types.FilesystemPath) (types.FilesystemPath, error) {
	abs, err := filepath.Abs(string(p))
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	return types.FilesystemPath(abs), nil
}

// IsAbs wraps filepath.IsAbs for FilesystemPath.
func IsAbs(p types.FilesystemPath) bool {
	return filepath.IsAbs(string(p))
}

// Resolve anchors a relative local path at base. Empty paths, absolute paths
// and s3:// destinations are returned unchanged.
func Resolve(base, p types.FilesystemPath) types.FilesystemPath {
	if p == "" || p.IsRemote() || IsAbs(p) {
		return p
	}
	return JoinStr(base, string(p))
}
