// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/electroair/bundler/internal/collect"
	"github.com/electroair/bundler/internal/config"
	"github.com/electroair/bundler/internal/directive"
	"github.com/electroair/bundler/internal/issue"
	"github.com/electroair/bundler/internal/logging"
	"github.com/electroair/bundler/internal/output"
	"github.com/electroair/bundler/pkg/bundle"
	"github.com/electroair/bundler/pkg/fspath"
	"github.com/electroair/bundler/pkg/types"
)

// runner holds the state of one invocation.
type runner struct {
	stdout io.Writer
	stderr io.Writer
	dir    string
	debug  bool
	logger *logging.Logger
}

// run executes the stages in order and stops at the first failure.
func (a *app) run(ctx context.Context, args []string) error {
	r := &runner{
		stdout: a.stdout,
		stderr: a.stderr,
		debug:  directive.Has(args, "--debug"),
	}
	r.logger = logging.New(r.stderr, logging.Options{Debug: r.debug})

	dir, err := a.workingDir()
	if err != nil {
		return r.fail(types.ExitInvocation, issue.NewErrorContext().
			WithIssue(issue.InvocationFailedId).
			WithOperation("resolve working directory").
			Wrap(err).
			BuildError())
	}
	r.dir = dir
	r.banner()

	if isHelpRequest(args) {
		printHelp(r.stdout)
		return nil
	}

	cfg, err := config.NewProvider().Load(ctx, config.LoadOptions{BaseDir: types.FilesystemPath(dir)})
	if err != nil {
		return r.fail(types.ExitInvocation, err)
	}
	r.debug = r.debug || cfg.Debug
	r.logger = logging.New(r.stderr, logging.Options{
		Debug:      r.debug,
		File:       cfg.Log.File,
		BaseDir:    dir,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	defer func() {
		if cerr := r.logger.Close(); cerr != nil {
			fmt.Fprintln(r.stderr, WarningStyle.Render("Warning: failed to close log file: "+cerr.Error()))
		}
	}()

	directives := directive.Parse(args)
	for _, d := range directives {
		r.logger.Debug("directive", "token", d.String(), "kind", d.Kind)
	}

	collected, err := r.collect(directives, cfg)
	if err != nil {
		return err
	}

	c, err := r.assemble(collected.Items)
	if err != nil {
		return err
	}

	fmt.Fprintln(r.stdout)
	fmt.Fprintln(r.stdout, "✨  Started bundle output")

	report, err := r.write(ctx, c, collected.Output, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintln(r.stdout, SuccessStyle.Render(fmt.Sprintf(
		"✅  Bundle generated and saved to %s (%s)", collected.Output, humanize.Bytes(uint64(report.Size)))))
	return nil
}

func (a *app) workingDir() (string, error) {
	if a.dir != "" {
		return a.dir, nil
	}
	return os.Getwd()
}

func (r *runner) banner() {
	fmt.Fprintln(r.stdout, TitleStyle.Render("Electro Air Bundler "+Version))
	fmt.Fprintln(r.stdout, SubtitleStyle.Render("Running in "+r.dir))
	fmt.Fprintln(r.stdout)
}

func (r *runner) collect(directives []directive.Directive, cfg *config.Config) (*collect.Result, error) {
	result, err := collect.Collect(
		collect.DirReader{Base: r.dir},
		directives,
		collect.WithDefaultOutput(string(cfg.Output)),
		collect.WithLogger(r.logger.Logger),
	)
	if err == nil {
		return result, nil
	}

	if errors.Is(err, collect.ErrNothingToPack) {
		return nil, r.fail(types.ExitNothingToPack, issue.NewErrorContext().
			WithIssue(issue.NothingToPackId).
			WithOperation("collect items").
			WithSuggestion("Add at least one -f, -t or -tf directive").
			Wrap(err).
			BuildError())
	}

	ec := issue.NewErrorContext().
		WithIssue(issue.ItemsNotAccessibleId).
		WithOperation("read item").
		WithSuggestions(
			"Check that the path exists relative to "+r.dir,
			"Check that the file is readable by the current user",
		)
	var accessErr *collect.AccessError
	if errors.As(err, &accessErr) {
		ec.WithResource(accessErr.Directive.String())
	}
	return nil, r.fail(types.ExitAccess, ec.Wrap(err).BuildError())
}

func (r *runner) assemble(items []bundle.Item) (*bundle.Container, error) {
	c, err := bundle.Assemble(items,
		bundle.WithVersion(Version),
		bundle.WithProgress(r.progress),
	)
	if err == nil {
		return c, nil
	}

	if errors.Is(err, bundle.ErrMetadata) {
		return nil, r.fail(types.ExitMetadata, issue.NewErrorContext().
			WithIssue(issue.MetadataFailedId).
			WithOperation("pack metadata").
			Wrap(err).
			BuildError())
	}

	ec := issue.NewErrorContext().
		WithIssue(issue.PackFailedId).
		WithOperation("pack item").
		WithSuggestion("Give every -t directive a value")
	var packErr *bundle.PackError
	if errors.As(err, &packErr) {
		ec.WithResource(fmt.Sprintf("#%d", packErr.Position))
	}
	return nil, r.fail(types.ExitPack, ec.Wrap(err).BuildError())
}

// progress prints one line per assembly stage.
func (r *runner) progress(ev bundle.Event) {
	switch ev.Stage {
	case bundle.StageItem:
		fmt.Fprintf(r.stdout, "📦  Packing %s #%d\n", ev.Item.Label(), ev.Position)
	case bundle.StageManifest:
		fmt.Fprintln(r.stdout)
		fmt.Fprintln(r.stdout, "📇  Saving files metadata")
	case bundle.StageMetadata:
		fmt.Fprintln(r.stdout, "📇  Saving bundle metadata")
	}
}

func (r *runner) write(ctx context.Context, c *bundle.Container, dest string, cfg *config.Config) (*output.Report, error) {
	target := fspath.Resolve(types.FilesystemPath(r.dir), types.FilesystemPath(dest))

	opts := []output.Option{
		output.WithCompression(output.Method(cfg.Compression.Method), cfg.Compression.Level),
		output.WithLogger(r.logger.Logger),
	}
	if cfg.Remote.Endpoint != "" {
		opts = append(opts, output.WithRemote(output.Remote{
			Endpoint:  cfg.Remote.Endpoint,
			AccessKey: cfg.Remote.AccessKey,
			SecretKey: cfg.Remote.SecretKey,
			Region:    cfg.Remote.Region,
			Secure:    cfg.Remote.Secure,
		}))
	}

	report, err := output.Write(ctx, c, target, opts...)
	if err == nil {
		return report, nil
	}

	ec := issue.NewErrorContext().
		WithIssue(issue.OutputFailedId).
		WithOperation("save bundle")
	if dest != "" {
		ec.WithResource(dest)
	}
	if errors.Is(err, output.ErrNoDestination) {
		ec.WithSuggestion("Give the -o directive a path")
	} else {
		ec.WithSuggestion("Check that the destination directory exists and is writable")
	}
	return nil, r.fail(types.ExitOutput, ec.Wrap(err).BuildError())
}
