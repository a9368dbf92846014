// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

var (
	// ErrValidation is the sentinel error wrapped by ValidationError.
	ErrValidation = errors.New("invalid document")
	// ErrTooLarge is returned when a document exceeds the size limit.
	ErrTooLarge = errors.New("document too large")
)

type (
	// FieldError is a single problem at a CUE path.
	FieldError struct {
		// Path is the JSON path to the invalid value (e.g., "compression.level").
		Path string
		// Message is the CUE error message.
		Message string
	}

	// ValidationError collects the field errors of one document.
	ValidationError struct {
		FilePath string
		Fields   []FieldError
	}
)

// Error implements the error interface.
func (f FieldError) Error() string {
	if f.Path != "" {
		return fmt.Sprintf("%s: %s", f.Path, f.Message)
	}
	return f.Message
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	switch len(e.Fields) {
	case 0:
		return fmt.Sprintf("%s: validation failed", e.FilePath)
	case 1:
		return fmt.Sprintf("%s: %s", e.FilePath, e.Fields[0])
	}
	lines := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		lines[i] = f.Error()
	}
	return fmt.Sprintf("%s: validation failed:\n  %s", e.FilePath, strings.Join(lines, "\n  "))
}

// Unwrap returns ErrValidation for errors.Is() compatibility.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// FormatError converts a CUE error into a ValidationError whose fields carry
// JSON-path prefixes, e.g. "bundler.cue: compression.level: invalid value 12".
// Errors that are not CUE errors are wrapped with the file path.
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	cueErrs := cueerrors.Errors(err)
	if len(cueErrs) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	verr := &ValidationError{FilePath: filePath}
	for _, e := range cueErrs {
		pathStr := formatPath(cueerrors.Path(e))
		msg := e.Error()

		// CUE sometimes repeats the path in the message.
		if pathStr != "" && strings.HasPrefix(msg, pathStr) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, pathStr), ":"))
		}
		verr.Fields = append(verr.Fields, FieldError{Path: pathStr, Message: msg})
	}
	return verr
}

// formatPath converts a CUE error path such as ["log", "0", "file"] to
// JSON-path notation ("log[0].file").
func formatPath(path []string) string {
	var result strings.Builder
	for i, part := range path {
		if i > 0 && isIndex(part) {
			result.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			result.WriteString(".")
		}
		result.WriteString(part)
	}
	return result.String()
}

func isIndex(part string) bool {
	if part == "" {
		return false
	}
	for _, c := range part {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckFileSize returns ErrTooLarge when data exceeds maxSize.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes: %w",
			filename, len(data), maxSize, ErrTooLarge)
	}
	return nil
}
