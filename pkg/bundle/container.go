// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

var (
	// ErrInvalidEntryName is the sentinel error wrapped by InvalidEntryNameError.
	ErrInvalidEntryName = errors.New("invalid entry name")
	// ErrDuplicateEntry is returned when a container path is added twice.
	ErrDuplicateEntry = errors.New("duplicate entry")
)

type (
	// Entry is one named node of a Container. Directory entries carry no data
	// and their name ends with a slash.
	Entry struct {
		Name string
		Dir  bool
		Data []byte
	}

	// Container is an in-memory tree of named byte buffers. Entries keep
	// their insertion order, which is also their serialization order.
	Container struct {
		entries []Entry
		index   map[string]int
	}

	// InvalidEntryNameError is returned for names that are empty, absolute,
	// or contain empty, "." or ".." segments.
	InvalidEntryNameError struct {
		Name string
	}
)

// NewContainer returns an empty container.
func NewContainer() *Container {
	return &Container{index: make(map[string]int)}
}

// Error implements the error interface.
func (e *InvalidEntryNameError) Error() string {
	return fmt.Sprintf("invalid entry name %q", e.Name)
}

// Unwrap returns ErrInvalidEntryName for errors.Is() compatibility.
func (e *InvalidEntryNameError) Unwrap() error { return ErrInvalidEntryName }

// Dir adds a directory entry. Adding an existing directory is a no-op.
func (c *Container) Dir(name string) error {
	name = strings.TrimSuffix(name, "/")
	if err := validateEntryName(name); err != nil {
		return err
	}
	key := name + "/"
	if _, ok := c.index[key]; ok {
		return nil
	}
	c.index[key] = len(c.entries)
	c.entries = append(c.entries, Entry{Name: key, Dir: true})
	return nil
}

// Add stores data under name. Names are slash separated and unique.
func (c *Container) Add(name string, data []byte) error {
	if err := validateEntryName(name); err != nil {
		return err
	}
	if _, ok := c.index[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateEntry, name)
	}
	c.index[name] = len(c.entries)
	c.entries = append(c.entries, Entry{Name: name, Data: data})
	return nil
}

// Lookup returns the data stored under name.
func (c *Container) Lookup(name string) ([]byte, bool) {
	i, ok := c.index[name]
	if !ok || c.entries[i].Dir {
		return nil, false
	}
	return c.entries[i].Data, true
}

// Entries returns the entries in insertion order.
func (c *Container) Entries() []Entry {
	return slices.Clone(c.entries)
}

// Len returns the number of entries, directories included.
func (c *Container) Len() int {
	return len(c.entries)
}

// Size returns the total payload size in bytes.
func (c *Container) Size() int64 {
	var total int64
	for _, e := range c.entries {
		total += int64(len(e.Data))
	}
	return total
}

func validateEntryName(name string) error {
	if name == "" || strings.HasPrefix(name, "/") || strings.Contains(name, "\\") {
		return &InvalidEntryNameError{Name: name}
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return &InvalidEntryNameError{Name: name}
		}
	}
	return nil
}
