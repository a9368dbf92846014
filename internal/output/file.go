// SPDX-License-Identifier: MPL-2.0

package output

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/electroair/bundler/pkg/fspath"
	"github.com/electroair/bundler/pkg/types"
)

type fileSink struct {
	path types.FilesystemPath
}

func newFileSink(dest types.FilesystemPath) (*fileSink, error) {
	absPath, err := fspath.Abs(dest)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output path: %w", err)
	}
	return &fileSink{path: absPath}, nil
}

// put streams the payload into a temp file next to the destination and
// renames it into place once it is complete and synced.
func (s *fileSink) put(ctx context.Context, payload func(io.Writer) (int64, error)) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if info, err := os.Stat(s.path.String()); err == nil && info.IsDir() {
		return nil, fmt.Errorf("output path %s is a directory", s.path)
	}

	tmp, err := os.CreateTemp(fspath.Dir(s.path).String(), "."+fspath.Base(s.path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	size, err := payload(tmp)
	if err != nil {
		return nil, err
	}
	if err := tmp.Sync(); err != nil {
		return nil, fmt.Errorf("failed to flush output file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close output file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return nil, fmt.Errorf("failed to set output file mode: %w", err)
	}
	if err := os.Rename(tmpPath, s.path.String()); err != nil {
		return nil, fmt.Errorf("failed to move output file into place: %w", err)
	}
	committed = true

	return &Report{Destination: s.path.String(), Size: size}, nil
}
