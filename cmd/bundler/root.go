// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/electroair/bundler/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags). It is also written
	// into meta/bundle.json.
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// app carries the process streams and working directory so tests can run
// the command in-process.
type app struct {
	stdout io.Writer
	stderr io.Writer
	// dir overrides the process working directory when non-empty.
	dir string
}

func newRootCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bundler",
		Short: "Pack files and texts into a single ZIP bundle",
		Long: TitleStyle.Render("bundler") + SubtitleStyle.Render(" - Pack files and texts into a single ZIP bundle") + `

Every argument is a directive: -f <file>, -t <text>, -tf <text file>
and -o <destination>. Run 'bundler help' for the full list.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), args)
		},
	}
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// execute runs the root command with args and maps the outcome to an exit code.
func (a *app) execute(ctx context.Context, args []string) types.ExitCode {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := fang.Execute(
		ctx,
		root,
		fang.WithVersion(getVersionString()),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
		fang.WithErrorHandler(handleError),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err == nil {
		return types.ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return types.ExitInvocation
}

// handleError reports errors that escaped the pipeline. Pipeline failures
// arrive as *ExitError and have already been printed.
func handleError(w io.Writer, _ fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fmt.Fprintln(w, ErrorStyle.Render(failureMessage(types.ExitInvocation, false)))
}

// Run executes the bundler with the process arguments and returns the exit code.
func Run() int {
	a := &app{stdout: os.Stdout, stderr: os.Stderr}
	return int(a.execute(context.Background(), os.Args[1:]))
}

// Execute runs the bundler and exits the process with its exit code.
// This is called by main.main().
func Execute() {
	os.Exit(Run())
}
