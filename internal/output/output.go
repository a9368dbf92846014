// SPDX-License-Identifier: MPL-2.0

package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/electroair/bundler/pkg/bundle"
	"github.com/electroair/bundler/pkg/types"
)

const (
	// MethodDeflate compresses entries (default).
	MethodDeflate Method = "deflate"
	// MethodStore writes entries uncompressed.
	MethodStore Method = "store"
)

var (
	// ErrWrite is the sentinel error wrapped by WriteError.
	ErrWrite = errors.New("bundle could not be written")
	// ErrNoDestination is returned when the destination path is empty.
	ErrNoDestination = errors.New("no destination given")
	// ErrInvalidMethod is returned for unknown compression methods.
	ErrInvalidMethod = errors.New("invalid compression method")

	// epoch is the modification time stamped on every entry, the earliest
	// time a ZIP header can represent.
	epoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)
)

type (
	// Method selects how entries are compressed.
	Method string

	// Remote holds the S3-compatible endpoint used for s3:// destinations.
	Remote struct {
		Endpoint  string
		AccessKey string
		SecretKey string
		Region    string
		Secure    bool
	}

	// Report describes a completed write.
	Report struct {
		// Destination is the absolute local path or the s3:// URL written.
		Destination string
		// Size is the number of serialized bytes.
		Size int64
	}

	// WriteError is returned when serialization or persistence fails.
	WriteError struct {
		Destination string
		Err         error
	}

	// Option configures Write and Serialize.
	Option func(*config)

	config struct {
		method Method
		level  int
		remote Remote
		logger *log.Logger
	}

	// sink persists a serialized bundle produced by the payload callback.
	sink interface {
		put(ctx context.Context, payload func(io.Writer) (int64, error)) (*Report, error)
	}
)

// WithCompression sets the entry compression method and flate level
// (-2 Huffman only, -1 default, 0 none, 1-9).
func WithCompression(method Method, level int) Option {
	return func(c *config) {
		c.method = method
		c.level = level
	}
}

// WithRemote configures the endpoint used for s3:// destinations.
func WithRemote(r Remote) Option {
	return func(c *config) {
		c.remote = r
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// Validate returns an error for unknown methods.
func (m Method) Validate() error {
	switch m {
	case MethodDeflate, MethodStore:
		return nil
	default:
		return fmt.Errorf("%w %q (valid: deflate, store)", ErrInvalidMethod, string(m))
	}
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	if e.Destination == "" {
		return fmt.Sprintf("write bundle: %v", e.Err)
	}
	return fmt.Sprintf("write bundle to %s: %v", e.Destination, e.Err)
}

// Unwrap returns both ErrWrite and the cause.
func (e *WriteError) Unwrap() []error { return []error{ErrWrite, e.Err} }

// Write serializes the container and persists it at dest.
func Write(ctx context.Context, c *bundle.Container, dest types.FilesystemPath, opts ...Option) (*Report, error) {
	cfg := newConfig(opts)

	if dest == "" {
		return nil, &WriteError{Err: ErrNoDestination}
	}
	if err := cfg.method.Validate(); err != nil {
		return nil, &WriteError{Destination: dest.String(), Err: err}
	}

	var (
		s   sink
		err error
	)
	if dest.IsRemote() {
		s, err = newObjectSink(dest, cfg.remote)
	} else {
		s, err = newFileSink(dest)
	}
	if err != nil {
		return nil, &WriteError{Destination: dest.String(), Err: err}
	}

	cfg.logger.Debug("writing bundle", "destination", dest, "entries", c.Len(),
		"payload_bytes", c.Size(), "method", cfg.method)

	report, err := s.put(ctx, func(w io.Writer) (int64, error) {
		return Serialize(w, c, opts...)
	})
	if err != nil {
		return nil, &WriteError{Destination: dest.String(), Err: err}
	}

	cfg.logger.Debug("bundle written", "destination", report.Destination, "bytes", report.Size)
	return report, nil
}

func newConfig(opts []Option) *config {
	cfg := &config{
		method: MethodDeflate,
		level:  -1,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	return cfg
}
