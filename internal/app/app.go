// Package app implements the application layer for freshen.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"
	"sync/atomic"

	"go.trai.ch/freshen/internal/core/domain"
	"go.trai.ch/freshen/internal/core/ports"
	"go.trai.ch/freshen/internal/engine/staleness"
	"go.trai.ch/freshen/internal/engine/toolchain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	resolver     ports.InputResolver
	stater       ports.FileStater
	runner       ports.CommandRunner
	logger       ports.Logger
	tracer       ports.Tracer
	journal      ports.Journal
	stdout       io.Writer
	stderr       io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	resolver ports.InputResolver,
	stater ports.FileStater,
	runner ports.CommandRunner,
	log ports.Logger,
	tracer ports.Tracer,
	journal ports.Journal,
) *App {
	return &App{
		configLoader: loader,
		resolver:     resolver,
		stater:       stater,
		runner:       runner,
		logger:       log,
		tracer:       tracer,
		journal:      journal,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
	}
}

// WithOutput redirects subprocess output and dry-run command lines.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// RunOptions configuration for the Build and Clean methods.
type RunOptions struct {
	// ConfigPath names the manifest. Empty means discovery from the working directory.
	ConfigPath string
	Options    domain.Options
}

// Build runs every stale step of the manifest's plan in order.
func (a *App) Build(ctx context.Context, opts RunOptions) error {
	m, reqs, err := a.plan(opts.ConfigPath)
	if err != nil {
		return err
	}

	execOpts := opts.Options
	if execOpts.Timeout == 0 {
		execOpts.Timeout = m.Timeout
	}

	ctx, span := a.tracer.Start(ctx, "build")
	defer span.End()
	span.SetAttribute("freshen.steps", len(reqs))

	sum, err := a.executor(execOpts).RunAll(ctx, reqs, a.recordStep)
	if err != nil {
		span.RecordError(err)
		return errors.Join(domain.ErrBuildExecutionFailed, err)
	}

	if execOpts.Execute {
		a.logger.Info(fmt.Sprintf("%d steps: %d executed, %d up to date", sum.Total(), sum.Executed, sum.UpToDate))
	} else {
		a.logger.Info(fmt.Sprintf("%d steps: %d would run, %d up to date", sum.Total(), sum.DryRun, sum.UpToDate))
	}
	return nil
}

// Exec runs a single ad-hoc request through the staleness check.
func (a *App) Exec(ctx context.Context, req domain.BuildRequest, opts domain.Options) error {
	if err := req.Validate(); err != nil {
		return err
	}
	_, err := a.executor(opts).RunAll(ctx, []domain.BuildRequest{req}, a.recordStep)
	return err
}

// Clean removes every output declared by the manifest's plan and the journal.
// Files that do not exist are skipped.
func (a *App) Clean(ctx context.Context, opts RunOptions) error {
	_, reqs, err := a.plan(opts.ConfigPath)
	if err != nil {
		return err
	}

	paths := append(toolchain.Outputs(reqs), a.journal.Path())

	var removed atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := os.Remove(path); err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return nil
				}
				return zerr.With(errors.Join(domain.ErrFailedToCleanOutput, err), "path", path)
			}
			removed.Add(1)
			a.logger.Debug("removed " + path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("removed %d files", removed.Load()))
	return nil
}

// History returns the journal records ordered by start time.
func (a *App) History(_ context.Context) ([]domain.StepRecord, error) {
	return a.journal.Records()
}

func (a *App) executor(opts domain.Options) *staleness.Executor {
	return staleness.NewExecutor(opts, a.stater, a.runner, a.logger, a.tracer).
		WithOutput(a.stdout, a.stderr)
}

// plan loads the manifest, expands its source globs and returns the ordered
// build requests.
func (a *App) plan(configPath string) (*domain.Manifest, []domain.BuildRequest, error) {
	m, err := a.configLoader.Load(".", configPath)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load configuration")
	}

	for _, list := range []*[]string{&m.Sources, &m.Lex, &m.Yacc, &m.ClassGen, &m.Headers} {
		if len(*list) == 0 {
			continue
		}
		expanded, err := a.resolver.ResolveInputs(*list, m.Root)
		if err != nil {
			return nil, nil, err
		}
		*list = expanded
	}

	return m, toolchain.Plan(m), nil
}

// recordStep journals steps whose command actually ran.
func (a *App) recordStep(r staleness.StepResult) {
	rec := domain.StepRecord{
		Name:      r.Request.Label(),
		Command:   r.Request.Command,
		StartedAt: r.StartedAt,
		Duration:  r.Duration,
	}

	var cmdErr *domain.CommandFailedError
	switch {
	case r.Err == nil && r.Outcome == domain.OutcomeExecuted:
		rec.Succeeded = true
	case errors.As(r.Err, &cmdErr):
		rec.ExitCode = cmdErr.ExitCode
	default:
		return
	}

	if err := a.journal.Record(rec); err != nil {
		a.logger.Warn(fmt.Sprintf("could not record %s: %v", rec.Name, err))
	}
}
