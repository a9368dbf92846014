// SPDX-License-Identifier: MPL-2.0

package collect

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/text/encoding/unicode"

	"github.com/electroair/bundler/internal/directive"
	"github.com/electroair/bundler/pkg/bundle"
)

// DefaultOutput is the destination used when no -o directive is given.
const DefaultOutput = "bundle.zip"

var (
	// ErrAccess is the sentinel error wrapped by AccessError.
	ErrAccess = errors.New("item can't be accessed")
	// ErrNothingToPack is returned when the directives produce no items.
	ErrNothingToPack = errors.New("no items specified")
)

type (
	// FileReader reads whole files by name. fstest.MapFS and any fs.ReadFileFS
	// satisfy it.
	FileReader interface {
		ReadFile(name string) ([]byte, error)
	}

	// DirReader reads files relative to a base directory. Every name is
	// joined onto Base, so "/etc/hosts" reads Base/etc/hosts.
	DirReader struct {
		Base string
	}

	// Result is the outcome of a successful collection.
	Result struct {
		Items []bundle.Item
		// Output is the destination from the last -o directive, or the
		// default. It is empty when the last -o had no value.
		Output string
	}

	// AccessError is returned when the input named by a directive can't be read.
	AccessError struct {
		Directive directive.Directive
		Err       error
	}

	// Option configures Collect.
	Option func(*collector)

	collector struct {
		defaultOutput string
		logger        *log.Logger
	}
)

// ReadFile implements FileReader.
func (d DirReader) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(d.Base, name))
}

// Error implements the error interface.
func (e *AccessError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("-%s: missing path", e.Directive.Name)
	}
	return fmt.Sprintf("-%s %s: %v", e.Directive.Name, e.Directive.Value, e.Err)
}

// Unwrap returns ErrAccess and the underlying cause for errors.Is() compatibility.
func (e *AccessError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrAccess}
	}
	return []error{ErrAccess, e.Err}
}

// WithDefaultOutput sets the destination used when no -o directive is given.
func WithDefaultOutput(dest string) Option {
	return func(c *collector) {
		if dest != "" {
			c.defaultOutput = dest
		}
	}
}

// WithLogger sets the logger that receives one debug line per collected item.
func WithLogger(logger *log.Logger) Option {
	return func(c *collector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Collect walks the directives in order and builds the item list.
//
// -f pushes a file item named after the base name of its path, -t pushes a
// text item with the literal value, -tf pushes a text item decoded as UTF-8
// from a file, and -o sets the destination (last one wins). Every other
// directive is ignored. A -t without a value yields an item with nil content,
// which the assembler rejects.
func Collect(r FileReader, directives []directive.Directive, opts ...Option) (*Result, error) {
	c := &collector{defaultOutput: DefaultOutput, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(c)
	}

	result := &Result{Items: []bundle.Item{}, Output: c.defaultOutput}
	for _, d := range directives {
		if d.Kind != directive.KindCategory {
			continue
		}

		switch d.Name {
		case directive.CategoryFile:
			data, err := read(r, d)
			if err != nil {
				return nil, err
			}
			result.Items = append(result.Items, bundle.NewFileItem(data, filepath.Base(d.Value)))
		case directive.CategoryText:
			var content []byte
			if d.HasValue {
				content = []byte(d.Value)
			}
			result.Items = append(result.Items, bundle.NewTextItem(content))
		case directive.CategoryTextFile:
			data, err := read(r, d)
			if err != nil {
				return nil, err
			}
			text, err := unicode.UTF8.NewDecoder().Bytes(data)
			if err != nil {
				return nil, &AccessError{Directive: d, Err: err}
			}
			if text == nil {
				text = []byte{}
			}
			result.Items = append(result.Items, bundle.NewTextItem(text))
		case directive.CategoryOutput:
			result.Output = d.Value
			continue
		default:
			continue
		}

		item := result.Items[len(result.Items)-1]
		c.logger.Debug("collected item", "position", len(result.Items)-1, "type", item.Type, "label", item.Label(), "size", len(item.Content))
	}

	if len(result.Items) == 0 {
		return nil, ErrNothingToPack
	}
	return result, nil
}

func read(r FileReader, d directive.Directive) ([]byte, error) {
	if !d.HasValue || d.Value == "" {
		return nil, &AccessError{Directive: d}
	}
	data, err := r.ReadFile(d.Value)
	if err != nil {
		return nil, &AccessError{Directive: d, Err: err}
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

