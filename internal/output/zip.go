// SPDX-License-Identifier: MPL-2.0

package output

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"

	"github.com/electroair/bundler/pkg/bundle"
)

// Serialize writes the container to w as a ZIP stream and returns the number
// of bytes written. Entries keep the container order and carry a fixed
// timestamp, so equal containers serialize to equal bytes.
func Serialize(w io.Writer, c *bundle.Container, opts ...Option) (int64, error) {
	cfg := newConfig(opts)
	if err := cfg.method.Validate(); err != nil {
		return 0, err
	}

	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)

	level := cfg.level
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})

	method := zip.Deflate
	if cfg.method == MethodStore {
		method = zip.Store
	}

	for _, e := range c.Entries() {
		header := &zip.FileHeader{
			Name:     e.Name,
			Method:   method,
			Modified: epoch,
		}
		if e.Dir {
			header.Method = zip.Store
			header.SetMode(os.ModeDir | 0o755)
		} else {
			header.SetMode(0o644)
		}

		fw, err := zw.CreateHeader(header)
		if err != nil {
			return cw.n, fmt.Errorf("failed to create ZIP entry %s: %w", e.Name, err)
		}
		if e.Dir {
			continue
		}
		if _, err := fw.Write(e.Data); err != nil {
			return cw.n, fmt.Errorf("failed to write ZIP entry %s: %w", e.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("failed to finish ZIP stream: %w", err)
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
