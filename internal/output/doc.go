// SPDX-License-Identifier: MPL-2.0

// Package output serializes a bundle container as ZIP and persists it to its
// destination: a local path (written through a temp file and renamed into
// place) or an s3:// object uploaded to an S3-compatible endpoint.
//
// A write either completes and returns a Report, or fails with an error
// wrapping ErrWrite; a failed local write never leaves a partial file at the
// destination path.
package output
