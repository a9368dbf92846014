// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/electroair/bundler/internal/testutil"
	"github.com/electroair/bundler/pkg/bundle"
	"github.com/electroair/bundler/pkg/types"
)

func runInDir(t *testing.T, dir string, args ...string) (code types.ExitCode, stdout, stderr string) {
	t.Helper()

	var out, errOut bytes.Buffer
	a := &app{stdout: &out, stderr: &errOut, dir: dir}
	code = a.execute(context.Background(), args)
	return code, out.String(), errOut.String()
}

func TestRunProducesBundle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, dir, "a.txt", []byte("AB"))

	code, stdout, stderr := runInDir(t, dir, "-f", "a.txt", "-t", "hello", "-o", "out.zip")
	if code != types.ExitSuccess {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", code, stderr)
	}

	wantLines := []string{
		"Electro Air Bundler " + Version,
		"Running in " + dir,
		"📦  Packing a.txt #0",
		"📦  Packing text #1",
		"📇  Saving files metadata",
		"📇  Saving bundle metadata",
		"✨  Started bundle output",
		"✅  Bundle generated and saved to out.zip (",
	}
	last := -1
	for _, line := range wantLines {
		idx := strings.Index(stdout, line)
		if idx < 0 {
			t.Fatalf("stdout missing %q:\n%s", line, stdout)
		}
		if idx < last {
			t.Errorf("%q printed out of order:\n%s", line, stdout)
		}
		last = idx
	}

	contents, err := bundle.OpenFile(filepath.Join(dir, "out.zip"))
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	if got := string(contents.ManifestJSON); got != `[{"type":0,"name":"0","file":"a.txt"},{"type":1,"name":"1"}]` {
		t.Errorf("manifest = %s", got)
	}
	if contents.Metadata.Version != Version {
		t.Errorf("version = %q, want %q", contents.Metadata.Version, Version)
	}
	if got, _ := contents.Payload(1); string(got) != "hello" {
		t.Errorf("payload 1 = %q, want %q", got, "hello")
	}
}

func TestRunExitCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   types.ExitCode
		wantStderr string
	}{
		{
			name:       "no items",
			args:       nil,
			wantCode:   types.ExitNothingToPack,
			wantStderr: "❓  No items specified. Check out 'bundler help' for commands",
		},
		{
			name:       "only output",
			args:       []string{"-o", "x.zip"},
			wantCode:   types.ExitNothingToPack,
			wantStderr: "No items specified",
		},
		{
			name:       "missing file",
			args:       []string{"-f", "missing.bin"},
			wantCode:   types.ExitAccess,
			wantStderr: "🛑  Some items can't be accessed" + debugHint,
		},
		{
			name:       "trailing file",
			args:       []string{"-t", "x", "-f"},
			wantCode:   types.ExitAccess,
			wantStderr: "Some items can't be accessed",
		},
		{
			name:       "missing text file",
			args:       []string{"-tf", "missing.txt"},
			wantCode:   types.ExitAccess,
			wantStderr: "Some items can't be accessed",
		},
		{
			name:       "trailing text",
			args:       []string{"-t", "x", "-t"},
			wantCode:   types.ExitPack,
			wantStderr: "🛑  Some items can't be packed" + debugHint,
		},
		{
			name:       "trailing output",
			args:       []string{"-t", "x", "-o"},
			wantCode:   types.ExitOutput,
			wantStderr: "🛑  Failed to save the bundle to specified destination" + debugHint,
		},
		{
			name:       "output into missing directory",
			args:       []string{"-t", "x", "-o", "nope/out.zip"},
			wantCode:   types.ExitOutput,
			wantStderr: "Failed to save the bundle",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, _, stderr := runInDir(t, t.TempDir(), tt.args...)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nstderr:\n%s", code, tt.wantCode, stderr)
			}
			if !strings.Contains(stderr, tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.wantStderr)
			}
		})
	}
}

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := [][]string{
		{"help"},
		{"--help"},
		{"-h"},
		{"--version"},
		{"-v"},
		{"-t", "x", "--help"},
	}

	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			// An invalid config proves help never loads it.
			testutil.MustWriteFile(t, dir, "bundler.cue", []byte("output: 42\n"))

			code, stdout, stderr := runInDir(t, dir, args...)
			if code != types.ExitSuccess {
				t.Fatalf("exit code = %d, want 0\nstderr:\n%s", code, stderr)
			}
			if !strings.HasPrefix(stdout, "Electro Air Bundler") {
				t.Errorf("stdout should start with the banner:\n%s", stdout)
			}
			for _, want := range []string{"HELP", "GENERAL COMMANDS", "BUNDLING", "-tf", "EXAMPLE COMMAND"} {
				if !strings.Contains(stdout, want) {
					t.Errorf("help missing %q", want)
				}
			}
			if stderr != "" {
				t.Errorf("stderr = %q, want empty", stderr)
			}
		})
	}
}

func TestRunHelpNotFirst(t *testing.T) {
	t.Parallel()

	// "help" only counts as the first token; elsewhere it is an ignored command.
	code, stdout, _ := runInDir(t, t.TempDir(), "-t", "x", "help", "-o", "out.zip")
	if code != types.ExitSuccess {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if strings.Contains(stdout, "GENERAL COMMANDS") {
		t.Error("help should not be printed")
	}
}

func TestRunDebugPrintsChain(t *testing.T) {
	t.Parallel()

	code, _, stderr := runInDir(t, t.TempDir(), "--debug", "-f", "missing.bin")
	if code != types.ExitAccess {
		t.Fatalf("exit code = %d, want %d", code, types.ExitAccess)
	}
	if !strings.Contains(stderr, "Error chain:") {
		t.Errorf("stderr should contain the error chain:\n%s", stderr)
	}
	if !strings.Contains(stderr, "-f missing.bin") {
		t.Errorf("stderr should name the directive:\n%s", stderr)
	}
	if strings.Contains(stderr, debugHint) {
		t.Errorf("stderr should not suggest --debug when it is set:\n%s", stderr)
	}
	if !strings.Contains(stderr, "access failure") {
		t.Errorf("stderr should describe the failure kind:\n%s", stderr)
	}
}

func TestRunConfig(t *testing.T) {
	t.Parallel()

	t.Run("default output", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		testutil.MustWriteFile(t, dir, "bundler.cue", []byte(`output: "configured.zip"`+"\n"))

		code, stdout, stderr := runInDir(t, dir, "-t", "x")
		if code != types.ExitSuccess {
			t.Fatalf("exit code = %d\nstderr:\n%s", code, stderr)
		}
		if !strings.Contains(stdout, "saved to configured.zip") {
			t.Errorf("stdout = %s", stdout)
		}
		if _, err := bundle.OpenFile(filepath.Join(dir, "configured.zip")); err != nil {
			t.Errorf("OpenFile() error = %v", err)
		}
	})

	t.Run("directive overrides", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		testutil.MustWriteFile(t, dir, "bundler.cue", []byte(`output: "configured.zip"`+"\n"))

		code, stdout, _ := runInDir(t, dir, "-t", "x", "-o", "a.zip", "-o", "b.zip")
		if code != types.ExitSuccess {
			t.Fatalf("exit code = %d", code)
		}
		if !strings.Contains(stdout, "saved to b.zip") {
			t.Errorf("stdout = %s", stdout)
		}
	})

	t.Run("invalid file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		testutil.MustWriteFile(t, dir, "bundler.cue", []byte(`compression: method: "zstd"`+"\n"))

		code, _, stderr := runInDir(t, dir, "-t", "x")
		if code != types.ExitInvocation {
			t.Fatalf("exit code = %d, want %d", code, types.ExitInvocation)
		}
		if !strings.Contains(stderr, "🛑  Failed to get command prompt parameters") {
			t.Errorf("stderr = %s", stderr)
		}
	})

	t.Run("debug from config", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		testutil.MustWriteFile(t, dir, "bundler.cue", []byte("debug: true\n"))

		code, _, stderr := runInDir(t, dir, "-f", "missing.bin")
		if code != types.ExitAccess {
			t.Fatalf("exit code = %d", code)
		}
		if !strings.Contains(stderr, "Error chain:") {
			t.Errorf("stderr = %s", stderr)
		}
	})
}

func TestRunEmptyPayloads(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, dir, "empty.txt", nil)

	code, _, stderr := runInDir(t, dir, "-t", "", "-tf", "empty.txt", "-o", "out.zip")
	if code != types.ExitSuccess {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", code, stderr)
	}

	contents, err := bundle.OpenFile(filepath.Join(dir, "out.zip"))
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	if got := string(contents.ManifestJSON); got != `[{"type":1,"name":"0"},{"type":1,"name":"1"}]` {
		t.Errorf("manifest = %s", got)
	}
	for i := range 2 {
		payload, ok := contents.Payload(i)
		if !ok || len(payload) != 0 {
			t.Errorf("payload %d = %q, %v, want present and empty", i, payload, ok)
		}
	}
}

func TestRunBlankOutputName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	code, stdout, stderr := runInDir(t, dir, "-t", "x", "-o", "  ")
	if code != types.ExitSuccess {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", code, stderr)
	}
	if !strings.Contains(stdout, "saved to   (") {
		t.Errorf("stdout = %s", stdout)
	}
	if _, err := bundle.OpenFile(filepath.Join(dir, "  ")); err != nil {
		t.Errorf("OpenFile() error = %v", err)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, dir, "a.txt", []byte("same bytes"))

	for _, dest := range []string{"one.zip", "two.zip"} {
		if code, _, stderr := runInDir(t, dir, "-f", "a.txt", "-t", "x", "-o", dest); code != types.ExitSuccess {
			t.Fatalf("exit code = %d\nstderr:\n%s", code, stderr)
		}
	}

	one := testutil.MustReadFile(t, filepath.Join(dir, "one.zip"))
	two := testutil.MustReadFile(t, filepath.Join(dir, "two.zip"))
	if !bytes.Equal(one, two) {
		t.Error("identical inputs produced different bundles")
	}
}

func TestFailureMessage(t *testing.T) {
	t.Parallel()

	if got := failureMessage(types.ExitPack, false); got != "🛑  Some items can't be packed"+debugHint {
		t.Errorf("failureMessage(pack, false) = %q", got)
	}
	if got := failureMessage(types.ExitPack, true); got != "🛑  Some items can't be packed" {
		t.Errorf("failureMessage(pack, true) = %q", got)
	}
	if got := failureMessage(types.ExitNothingToPack, false); strings.Contains(got, debugHint) {
		t.Errorf("nothing-to-pack message should not carry the hint: %q", got)
	}
	if got := failureMessage(types.ExitCode(42), true); got != failures[types.ExitInvocation].message {
		t.Errorf("unknown code message = %q", got)
	}
}

func TestIsHelpRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{nil, false},
		{[]string{"help"}, true},
		{[]string{"-t", "help"}, false},
		{[]string{"-t", "x", "-v"}, true},
		{[]string{"--debug"}, false},
	}

	for _, tt := range tests {
		if got := isHelpRequest(tt.args); got != tt.want {
			t.Errorf("isHelpRequest(%q) = %v, want %v", tt.args, got, tt.want)
		}
	}
}
