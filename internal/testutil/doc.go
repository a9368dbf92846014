// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Helpers cover directory operations (MustChdir, MustMkdirAll), fixture files
// (MustWriteFile, MustReadFile) and resource cleanup (MustClose).
package testutil
