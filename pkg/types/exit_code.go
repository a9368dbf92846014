// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

// Exit codes are part of the scripting contract. Each failure kind owns a
// stable code; new kinds get new numbers, existing numbers never move.
const (
	// ExitSuccess means help was shown or the bundle was produced.
	ExitSuccess ExitCode = 0
	// ExitInvocation means the invocation itself could not be interpreted
	// (directive grammar, configuration file, or CLI framework failure).
	ExitInvocation ExitCode = 1
	// ExitAccess means an item source could not be read.
	ExitAccess ExitCode = 2
	// ExitPack means an item could not be placed into the container.
	ExitPack ExitCode = 3
	// ExitMetadata means the manifest or bundle descriptor could not be written.
	ExitMetadata ExitCode = 4
	// ExitOutput means the container could not be serialized or persisted.
	ExitOutput ExitCode = 5
	// ExitNothingToPack means no items were collected.
	ExitNothingToPack ExitCode = 6
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode represents a process exit status code.
	// Exit codes are in the range 0-255 on POSIX systems.
	// The zero value (0) means success.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside the
	// valid range (0-255).
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode so callers can use errors.Is for programmatic detection.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an error if the ExitCode is outside the valid range (0-255).
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// Describe returns a short label for the failure kind behind a known code.
func (c ExitCode) Describe() string {
	switch c {
	case ExitSuccess:
		return "success"
	case ExitInvocation:
		return "invocation failure"
	case ExitAccess:
		return "access failure"
	case ExitPack:
		return "pack failure"
	case ExitMetadata:
		return "metadata failure"
	case ExitOutput:
		return "output failure"
	case ExitNothingToPack:
		return "nothing to pack"
	default:
		return "exit status " + c.String()
	}
}

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
