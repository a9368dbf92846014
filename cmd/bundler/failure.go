// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/electroair/bundler/internal/issue"
	"github.com/electroair/bundler/pkg/types"
)

const debugHint = ". Use --debug flag next time to see details"

type failure struct {
	message string
	style   lipgloss.Style
	// hint appends debugHint when diagnostics are off.
	hint bool
}

var failures = map[types.ExitCode]failure{
	types.ExitInvocation:    {message: "🛑  Failed to get command prompt parameters", style: ErrorStyle, hint: true},
	types.ExitAccess:        {message: "🛑  Some items can't be accessed", style: ErrorStyle, hint: true},
	types.ExitPack:          {message: "🛑  Some items can't be packed", style: ErrorStyle, hint: true},
	types.ExitMetadata:      {message: "🛑  Failed to pack metadata", style: ErrorStyle, hint: true},
	types.ExitOutput:        {message: "🛑  Failed to save the bundle to specified destination", style: ErrorStyle, hint: true},
	types.ExitNothingToPack: {message: "❓  No items specified. Check out 'bundler help' for commands", style: WarningStyle},
}

// failureMessage returns the one-line message printed for code.
func failureMessage(code types.ExitCode, debug bool) string {
	f, ok := failures[code]
	if !ok {
		f = failures[types.ExitInvocation]
	}
	if f.hint && !debug {
		return f.message + debugHint
	}
	return f.message
}

// fail reports err on stderr and returns the ExitError for code. With
// diagnostics on, the error chain and the rendered guidance come first.
func (r *runner) fail(code types.ExitCode, err error) error {
	if r.debug && err != nil {
		r.logger.Debug("run failed", "code", int(code), "kind", code.Describe())
		var ae *issue.ActionableError
		if errors.As(err, &ae) {
			r.logger.Error(ae.Format(true))
			guidance, rerr := ae.Guidance(issue.DefaultStyle)
			if rerr != nil {
				r.logger.Debug("guidance unavailable", "issue", ae.Issue, "err", rerr)
			} else if guidance != "" {
				fmt.Fprint(r.stderr, guidance)
			}
		} else {
			r.logger.Error(err.Error())
		}
	}

	style := ErrorStyle
	if f, ok := failures[code]; ok {
		style = f.style
	}
	fmt.Fprintln(r.stderr, style.Render(failureMessage(code, r.debug)))
	return &ExitError{Code: code, Err: err}
}
