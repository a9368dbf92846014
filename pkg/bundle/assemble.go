// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultVersion is written to meta/bundle.json when no version is given.
const DefaultVersion = "dev"

// Stages reported through WithProgress.
const (
	// StageItem fires before each item is stored.
	StageItem Stage = iota
	// StageManifest fires before meta/files.json is written.
	StageManifest
	// StageMetadata fires before meta/bundle.json is written.
	StageMetadata
)

var (
	// ErrPack is the sentinel error wrapped by PackError.
	ErrPack = errors.New("item could not be packed")
	// ErrMetadata is the sentinel error wrapped by MetadataError.
	ErrMetadata = errors.New("metadata could not be written")
	// ErrMissingContent is returned for items whose payload was never supplied.
	ErrMissingContent = errors.New("item has no content")
)

type (
	// Stage identifies a step of assembly.
	Stage int

	// Event is passed to the progress callback.
	Event struct {
		Stage Stage
		// Position and Item are set for StageItem only.
		Position int
		Item     Item
	}

	// Option configures Assemble.
	Option func(*assembleConfig)

	assembleConfig struct {
		version  string
		progress func(Event)
	}

	// PackError is returned when an item cannot be placed in files/.
	PackError struct {
		Position int
		Item     Item
		Err      error
	}

	// MetadataError is returned when a meta/ document cannot be written.
	MetadataError struct {
		Path string
		Err  error
	}
)

// WithVersion sets the tool version recorded in meta/bundle.json.
func WithVersion(version string) Option {
	return func(c *assembleConfig) {
		c.version = version
	}
}

// WithProgress registers a callback invoked before each assembly step.
func WithProgress(fn func(Event)) Option {
	return func(c *assembleConfig) {
		c.progress = fn
	}
}

// Error implements the error interface.
func (e *PackError) Error() string {
	return fmt.Sprintf("pack %s #%d: %v", e.Item.Type, e.Position, e.Err)
}

// Unwrap returns both ErrPack and the cause.
func (e *PackError) Unwrap() []error { return []error{ErrPack, e.Err} }

// Error implements the error interface.
func (e *MetadataError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

// Unwrap returns both ErrMetadata and the cause.
func (e *MetadataError) Unwrap() []error { return []error{ErrMetadata, e.Err} }

// Assemble lays items out in a new container. Item i is stored as files/<i>
// and described by the i-th manifest row. On error no container is returned.
func Assemble(items []Item, opts ...Option) (*Container, error) {
	cfg := &assembleConfig{version: DefaultVersion}
	for _, opt := range opts {
		opt(cfg)
	}
	notify := func(ev Event) {
		if cfg.progress != nil {
			cfg.progress(ev)
		}
	}

	c := NewContainer()
	if err := c.Dir(MetaDir); err != nil {
		return nil, &MetadataError{Path: MetaDir, Err: err}
	}
	if err := c.Dir(FilesDir); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPack, err)
	}

	manifest := make([]ManifestEntry, 0, len(items))
	for i, item := range items {
		notify(Event{Stage: StageItem, Position: i, Item: item})

		if err := item.Type.Validate(); err != nil {
			return nil, &PackError{Position: i, Item: item, Err: err}
		}
		if item.Content == nil {
			return nil, &PackError{Position: i, Item: item, Err: ErrMissingContent}
		}
		if err := c.Add(PayloadPath(i), item.Content); err != nil {
			return nil, &PackError{Position: i, Item: item, Err: err}
		}
		manifest = append(manifest, entryFor(i, item))
	}

	notify(Event{Stage: StageManifest})
	if err := addJSON(c, ManifestFile, manifest); err != nil {
		return nil, err
	}

	notify(Event{Stage: StageMetadata})
	if err := addJSON(c, MetadataFile, Metadata{Version: cfg.version}); err != nil {
		return nil, err
	}

	return c, nil
}

// addJSON stores v as compact JSON without HTML escaping, so text such as
// "a<b" is written as-is.
func addJSON(c *Container, path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return &MetadataError{Path: path, Err: err}
	}
	if err := c.Add(path, bytes.TrimSuffix(buf.Bytes(), []byte("\n"))); err != nil {
		return &MetadataError{Path: path, Err: err}
	}
	return nil
}
