// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zip"
)

type (
	// ValidationIssue represents a single problem found in a bundle.
	ValidationIssue struct {
		// Type categorizes the issue ("structure" or "manifest").
		Type string
		// Message describes the specific problem.
		Message string
		// Path is the container path the issue refers to (optional).
		Path string
	}

	// ValidationResult contains the result of bundle validation.
	ValidationResult struct {
		// Valid is true if the bundle passed all checks.
		Valid bool
		// Issues contains all problems found.
		Issues []ValidationIssue
	}

	// Contents is a decoded bundle.
	Contents struct {
		Manifest []ManifestEntry
		Metadata Metadata
		// ManifestJSON and MetadataJSON are the documents exactly as stored.
		ManifestJSON []byte
		MetadataJSON []byte
		// Payloads maps storage names ("0", "1", ...) to payload bytes.
		Payloads map[string][]byte
	}
)

// Error implements the error interface for ValidationIssue.
func (v ValidationIssue) Error() string {
	if v.Path != "" {
		return fmt.Sprintf("[%s] %s: %s", v.Type, v.Path, v.Message)
	}
	return fmt.Sprintf("[%s] %s", v.Type, v.Message)
}

// AddIssue adds a validation issue to the result.
func (r *ValidationResult) AddIssue(issueType, message, path string) {
	r.Issues = append(r.Issues, ValidationIssue{
		Type:    issueType,
		Message: message,
		Path:    path,
	})
	r.Valid = false
}

// Payload returns the payload described by the i-th manifest row.
func (c *Contents) Payload(i int) ([]byte, bool) {
	if i < 0 || i >= len(c.Manifest) {
		return nil, false
	}
	data, ok := c.Payloads[c.Manifest[i].Name]
	return data, ok
}

// Validate checks that every manifest row names its own position, uses a
// known type, carries a file name exactly when it is a file, and has a payload.
func (c *Contents) Validate() *ValidationResult {
	result := &ValidationResult{Valid: true, Issues: []ValidationIssue{}}

	for i, entry := range c.Manifest {
		if entry.Name != StorageName(i) {
			result.AddIssue("manifest", fmt.Sprintf("row %d is named %q", i, entry.Name), ManifestFile)
		}
		if err := entry.Type.Validate(); err != nil {
			result.AddIssue("manifest", err.Error(), ManifestFile)
		}
		if (entry.Type == TypeFile) != (entry.File != "") {
			result.AddIssue("manifest", fmt.Sprintf("row %d: file name presence does not match type %s", i, entry.Type), ManifestFile)
		}
		if _, ok := c.Payloads[entry.Name]; !ok {
			result.AddIssue("structure", "missing payload", FilesDir+"/"+entry.Name)
		}
	}
	if len(c.Payloads) != len(c.Manifest) {
		result.AddIssue("structure", fmt.Sprintf("%d payloads for %d manifest rows", len(c.Payloads), len(c.Manifest)), FilesDir)
	}

	return result
}

// OpenFile reads and validates the bundle at path.
func OpenFile(path string) (*Contents, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle: %w", err)
	}
	return Open(bytes.NewReader(data), int64(len(data)))
}

// Open decodes a bundle from a ZIP stream and validates it.
func Open(r io.ReaderAt, size int64) (*Contents, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open bundle: %w", err)
	}

	contents := &Contents{Payloads: make(map[string][]byte)}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		data, err := readZipFile(f)
		if err != nil {
			return nil, err
		}
		switch {
		case f.Name == ManifestFile:
			contents.ManifestJSON = data
		case f.Name == MetadataFile:
			contents.MetadataJSON = data
		case strings.HasPrefix(f.Name, FilesDir+"/"):
			contents.Payloads[strings.TrimPrefix(f.Name, FilesDir+"/")] = data
		}
	}

	if contents.ManifestJSON == nil {
		return nil, fmt.Errorf("invalid bundle: missing %s", ManifestFile)
	}
	if contents.MetadataJSON == nil {
		return nil, fmt.Errorf("invalid bundle: missing %s", MetadataFile)
	}
	if err := json.Unmarshal(contents.ManifestJSON, &contents.Manifest); err != nil {
		return nil, fmt.Errorf("invalid bundle: %s: %w", ManifestFile, err)
	}
	if err := json.Unmarshal(contents.MetadataJSON, &contents.Metadata); err != nil {
		return nil, fmt.Errorf("invalid bundle: %s: %w", MetadataFile, err)
	}

	if result := contents.Validate(); !result.Valid {
		var msgs []string
		for _, issue := range result.Issues {
			msgs = append(msgs, issue.Error())
		}
		return nil, fmt.Errorf("invalid bundle: %s", strings.Join(msgs, "; "))
	}

	return contents, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
	}
	return data, nil
}
