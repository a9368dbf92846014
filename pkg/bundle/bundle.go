// SPDX-License-Identifier: MPL-2.0

// Package bundle defines the bundle container layout and assembles it from an
// ordered list of items.
//
// A bundle is a ZIP container with this layout:
//
//	files/0 ... files/<n-1>   raw item payloads, named by position
//	meta/files.json           manifest: [{"type":0,"name":"0","file":"a.txt"}, ...]
//	meta/bundle.json          descriptor: {"version":"<tool version>"}
//
// The manifest type table is append-only (see ItemType) so manifests written
// by older tool versions stay decodable.
package bundle

import (
	"errors"
	"fmt"
	"strconv"
)

// Container layout names.
const (
	FilesDir     = "files"
	MetaDir      = "meta"
	ManifestFile = MetaDir + "/files.json"
	MetadataFile = MetaDir + "/bundle.json"
)

// Type table. Values are persisted in manifests: append new kinds at the end,
// never reorder or reuse a number.
const (
	// TypeFile is a binary attachment that keeps its original base name.
	TypeFile ItemType = 0
	// TypeText is a text payload, inline or read from a UTF-8 file.
	TypeText ItemType = 1
)

// ErrUnknownItemType is the sentinel error wrapped by UnknownItemTypeError.
var ErrUnknownItemType = errors.New("unknown item type")

type (
	// ItemType indexes the fixed, versioned type table.
	ItemType int

	// UnknownItemTypeError is returned when an ItemType is not in the table.
	UnknownItemTypeError struct {
		Value ItemType
	}

	// Item is one bundling unit. Items are created by the collector, never
	// mutated afterwards, and consumed once by Assemble.
	Item struct {
		Type ItemType
		// Content is the raw payload. A nil Content means the payload was
		// never supplied; an empty non-nil slice is a valid empty payload.
		Content []byte
		// OriginalName is the base name of the source file (TypeFile only).
		OriginalName string
	}

	// ManifestEntry describes one packaged item in meta/files.json.
	ManifestEntry struct {
		Type ItemType `json:"type"`
		// Name is the storage name under files/, always the item's position.
		Name string `json:"name"`
		// File is the original file name, present only for TypeFile.
		File string `json:"file,omitempty"`
	}

	// Metadata is the meta/bundle.json descriptor.
	Metadata struct {
		Version string `json:"version"`
	}
)

// String returns the table name of the type.
func (t ItemType) String() string {
	switch t {
	case TypeFile:
		return "file"
	case TypeText:
		return "text"
	default:
		return "type(" + strconv.Itoa(int(t)) + ")"
	}
}

// Validate returns an error if the type is not part of the table.
func (t ItemType) Validate() error {
	switch t {
	case TypeFile, TypeText:
		return nil
	default:
		return &UnknownItemTypeError{Value: t}
	}
}

// Error implements the error interface.
func (e *UnknownItemTypeError) Error() string {
	return fmt.Sprintf("unknown item type %d (valid: 0=file, 1=text)", int(e.Value))
}

// Unwrap returns ErrUnknownItemType for errors.Is() compatibility.
func (e *UnknownItemTypeError) Unwrap() error { return ErrUnknownItemType }

// NewFileItem returns a file item named after the base name of its source.
func NewFileItem(content []byte, originalName string) Item {
	return Item{Type: TypeFile, Content: content, OriginalName: originalName}
}

// NewTextItem returns a text item.
func NewTextItem(content []byte) Item {
	return Item{Type: TypeText, Content: content}
}

// Label is how progress output refers to the item: the original file name
// for files, "text" otherwise.
func (i Item) Label() string {
	if i.Type == TypeFile {
		return i.OriginalName
	}
	return "text"
}

// StorageName returns the name of the payload at the given position.
func StorageName(position int) string {
	return strconv.Itoa(position)
}

// PayloadPath returns the container path of the payload at the given position.
func PayloadPath(position int) string {
	return FilesDir + "/" + StorageName(position)
}

// entryFor builds the manifest row for an item at a position.
func entryFor(position int, item Item) ManifestEntry {
	entry := ManifestEntry{Type: item.Type, Name: StorageName(position)}
	if item.Type == TypeFile {
		entry.File = item.OriginalName
	}
	return entry
}
