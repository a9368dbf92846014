// SPDX-License-Identifier: MPL-2.0

package output

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/electroair/bundler/pkg/bundle"
	"github.com/electroair/bundler/pkg/types"
)

func TestWriteLocalFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dest := filepath.Join(dir, "out.zip")

	report, err := Write(context.Background(), assembleSample(t), types.FilesystemPath(dest))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if report.Destination != dest {
		t.Errorf("Destination = %q, want %q", report.Destination, dest)
	}

	info, err := os.Stat(dest)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if info.Size() != report.Size {
		t.Errorf("file size = %d, report size = %d", info.Size(), report.Size)
	}

	contents, err := bundle.OpenFile(dest)
	if err != nil {
		t.Fatalf("bundle.OpenFile() error = %v", err)
	}
	if len(contents.Manifest) != 2 {
		t.Errorf("manifest rows = %d, want 2", len(contents.Manifest))
	}

	assertNoTempFiles(t, dir)
}

func TestWriteReplacesExistingFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dest := filepath.Join(dir, "out.zip")
	if err := os.WriteFile(dest, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Write(context.Background(), assembleSample(t), types.FilesystemPath(dest)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if _, err := bundle.OpenFile(dest); err != nil {
		t.Errorf("replaced file is not a bundle: %v", err)
	}
}

func TestWriteMissingDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dest := filepath.Join(dir, "missing", "out.zip")

	_, err := Write(context.Background(), assembleSample(t), types.FilesystemPath(dest))
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("Write() error = %v, want ErrWrite", err)
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Errorf("destination exists after failed write: %v", statErr)
	}
}

func TestWriteDestinationIsDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := Write(context.Background(), assembleSample(t), types.FilesystemPath(dir))
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("Write() error = %v, want ErrWrite", err)
	}
	assertNoTempFiles(t, filepath.Dir(dir))
}

func TestWriteEmptyDestination(t *testing.T) {
	t.Parallel()

	_, err := Write(context.Background(), assembleSample(t), "")
	if !errors.Is(err, ErrWrite) {
		t.Errorf("Write() error = %v, want ErrWrite", err)
	}
	if !errors.Is(err, ErrNoDestination) {
		t.Errorf("Write() error = %v, want ErrNoDestination", err)
	}
}

func TestWriteBlankNameIsADestination(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dest := filepath.Join(dir, "  ")

	report, err := Write(context.Background(), assembleSample(t), types.FilesystemPath(dest))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if report.Destination != dest {
		t.Errorf("Destination = %q, want %q", report.Destination, dest)
	}
	if _, err := bundle.OpenFile(dest); err != nil {
		t.Errorf("bundle.OpenFile() error = %v", err)
	}
}

func TestWriteLogsPayloadSize(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	c := assembleSample(t)
	dest := filepath.Join(t.TempDir(), "out.zip")

	if _, err := Write(context.Background(), c, types.FilesystemPath(dest), WithLogger(logger)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	want := "payload_bytes=" + strconv.FormatInt(c.Size(), 10)
	if !strings.Contains(buf.String(), want) {
		t.Errorf("log = %q, want it to contain %q", buf.String(), want)
	}
}

func TestWriteCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dest := filepath.Join(t.TempDir(), "out.zip")
	if _, err := Write(ctx, assembleSample(t), types.FilesystemPath(dest)); !errors.Is(err, context.Canceled) {
		t.Errorf("Write() error = %v, want context.Canceled", err)
	}
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}
