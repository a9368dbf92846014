// SPDX-License-Identifier: MPL-2.0

package bundle_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"

	"github.com/electroair/bundler/internal/output"
	"github.com/electroair/bundler/pkg/bundle"
)

func TestOpenRoundTrip(t *testing.T) {
	t.Parallel()

	c, err := bundle.Assemble([]bundle.Item{
		bundle.NewFileItem([]byte("AB"), "a.txt"),
		bundle.NewTextItem([]byte("hello")),
	}, bundle.WithVersion("2.0.0"))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if _, err := output.Serialize(&buf, c); err != nil {
		t.Fatal(err)
	}

	contents, err := bundle.Open(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	want := []bundle.ManifestEntry{
		{Type: bundle.TypeFile, Name: "0", File: "a.txt"},
		{Type: bundle.TypeText, Name: "1"},
	}
	if len(contents.Manifest) != len(want) {
		t.Fatalf("manifest = %+v", contents.Manifest)
	}
	for i := range want {
		if contents.Manifest[i] != want[i] {
			t.Errorf("manifest[%d] = %+v, want %+v", i, contents.Manifest[i], want[i])
		}
	}
	if contents.Metadata.Version != "2.0.0" {
		t.Errorf("version = %q", contents.Metadata.Version)
	}
	if data, ok := contents.Payload(1); !ok || string(data) != "hello" {
		t.Errorf("Payload(1) = %q, %v", data, ok)
	}
	if _, ok := contents.Payload(2); ok {
		t.Error("Payload(2) succeeded on a two-item bundle")
	}
}

func writeRawZip(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestOpenRejectsInconsistentBundles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		files   map[string]string
		wantMsg string
	}{
		{
			name:    "missing manifest",
			files:   map[string]string{"meta/bundle.json": `{"version":"1"}`},
			wantMsg: "missing meta/files.json",
		},
		{
			name: "row names another position",
			files: map[string]string{
				"files/0":          "x",
				"meta/files.json":  `[{"type":1,"name":"5"}]`,
				"meta/bundle.json": `{"version":"1"}`,
			},
			wantMsg: `row 0 is named "5"`,
		},
		{
			name: "file row without file name",
			files: map[string]string{
				"files/0":          "x",
				"meta/files.json":  `[{"type":0,"name":"0"}]`,
				"meta/bundle.json": `{"version":"1"}`,
			},
			wantMsg: "file name presence",
		},
		{
			name: "missing payload",
			files: map[string]string{
				"meta/files.json":  `[{"type":1,"name":"0"}]`,
				"meta/bundle.json": `{"version":"1"}`,
			},
			wantMsg: "missing payload",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := writeRawZip(t, tt.files)
			_, err := bundle.Open(bytes.NewReader(data), int64(len(data)))
			if err == nil {
				t.Fatal("Open() returned nil error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Open() error = %v, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}
