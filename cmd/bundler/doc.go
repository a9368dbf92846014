// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the bundler command line.
//
// The root command hands every token to the directive parser, so cobra flag
// parsing is disabled. A run prints the banner, loads bundler.cue, collects
// the items, assembles the container and writes it out, stopping at the
// first failing stage with that stage's exit code.
package cmd
