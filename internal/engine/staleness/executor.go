// Package staleness implements the staleness-gated executor: it compares the
// modification times of a step's inputs and outputs and runs the step's
// command only when the outputs are out of date.
package staleness

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"time"

	"go.trai.ch/freshen/internal/core/domain"
	"go.trai.ch/freshen/internal/core/ports"
)

// Executor decides whether build requests are stale and runs the stale ones.
// It never writes to the filesystem itself.
type Executor struct {
	opts   domain.Options
	stater ports.FileStater
	runner ports.CommandRunner
	logger ports.Logger
	tracer ports.Tracer
	stdout io.Writer
	stderr io.Writer
}

// NewExecutor creates an Executor bound to opts for its whole lifetime.
func NewExecutor(
	opts domain.Options,
	stater ports.FileStater,
	runner ports.CommandRunner,
	logger ports.Logger,
	tracer ports.Tracer,
) *Executor {
	return &Executor{
		opts:   opts,
		stater: stater,
		runner: runner,
		logger: logger,
		tracer: tracer,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// WithOutput redirects dry-run echo and subprocess output.
func (e *Executor) WithOutput(stdout, stderr io.Writer) *Executor {
	e.stdout = stdout
	e.stderr = stderr
	return e
}

// Options returns the configuration the executor was built with.
func (e *Executor) Options() domain.Options {
	return e.opts
}

// Check computes the staleness of req without running anything.
//
// A request is stale when force mode is on, when it declares no outputs, when
// an output is missing, or when the newest input is strictly newer than the
// oldest output. A missing input is a *domain.MissingInputError unless force
// mode or an empty output list already decided the request is stale.
func (e *Executor) Check(req *domain.BuildRequest) (domain.Decision, error) {
	return e.check(req, nil)
}

// check is Check with the set of resolved paths that earlier dry-run steps
// would have rewritten. A missing input in that set is not an error, and any
// input in it makes the request stale.
func (e *Executor) check(req *domain.BuildRequest, pending map[string]bool) (domain.Decision, error) {
	if e.opts.Force {
		return domain.Decision{Stale: true, Reason: domain.ReasonForced}, nil
	}
	if len(req.Outputs) == 0 {
		return domain.Decision{Stale: true, Reason: domain.ReasonNoOutputs}, nil
	}

	in, err := e.scanInputs(req, pending)
	if err != nil {
		return domain.Decision{}, err
	}
	if in.pendingMissing != "" {
		return domain.Decision{Stale: true, Reason: domain.ReasonPendingInput, Path: in.pendingMissing}, nil
	}

	oldest, missing, err := e.oldestOutput(req)
	if err != nil {
		return domain.Decision{}, err
	}
	if missing != "" {
		return domain.Decision{Stale: true, Reason: domain.ReasonMissingOutput, Path: missing}, nil
	}

	if in.newestPath != "" && in.newest.After(oldest) {
		return domain.Decision{Stale: true, Reason: domain.ReasonInputNewer, Path: in.newestPath}, nil
	}
	if in.pending != "" {
		return domain.Decision{Stale: true, Reason: domain.ReasonPendingInput, Path: in.pending}, nil
	}
	return domain.Decision{Reason: domain.ReasonUpToDate}, nil
}

type inputScan struct {
	newest     time.Time
	newestPath string
	// pending is the first existing input an earlier step would rewrite.
	pending string
	// pendingMissing is the first missing input an earlier step would produce.
	pendingMissing string
}

// scanInputs stats every input. It fails on the first missing input that is
// not pending, even when an earlier input was.
func (e *Executor) scanInputs(req *domain.BuildRequest, pending map[string]bool) (inputScan, error) {
	var scan inputScan
	for _, in := range req.Inputs {
		resolved := req.Resolve(in)
		mtime, exists, err := e.stater.ModTime(resolved)
		if err != nil {
			return inputScan{}, err
		}
		if !exists {
			if !pending[resolved] {
				return inputScan{}, &domain.MissingInputError{Path: in, Err: fs.ErrNotExist}
			}
			if scan.pendingMissing == "" {
				scan.pendingMissing = in
			}
			continue
		}
		if pending[resolved] && scan.pending == "" {
			scan.pending = in
		}
		e.debugStamp("input", in, mtime)
		if scan.newestPath == "" || mtime.After(scan.newest) {
			scan.newest, scan.newestPath = mtime, in
		}
	}
	return scan, nil
}

// oldestOutput returns the oldest output mtime, or the first missing output.
func (e *Executor) oldestOutput(req *domain.BuildRequest) (time.Time, string, error) {
	var oldest time.Time
	for i, out := range req.Outputs {
		mtime, exists, err := e.stater.ModTime(req.Resolve(out))
		if err != nil {
			return time.Time{}, "", err
		}
		if !exists {
			return time.Time{}, out, nil
		}
		e.debugStamp("output", out, mtime)
		if i == 0 || mtime.Before(oldest) {
			oldest = mtime
		}
	}
	return oldest, "", nil
}

func (e *Executor) debugStamp(kind, path string, mtime time.Time) {
	if !e.opts.Debug {
		return
	}
	e.logger.Debug(fmt.Sprintf("%s %s modified %s", kind, path, mtime.Format(time.RFC3339Nano)))
}

// Run checks req and executes its command when stale. Dry-run mode prints
// the command line to stdout instead of spawning it.
func (e *Executor) Run(ctx context.Context, req *domain.BuildRequest) (domain.Outcome, error) {
	return e.run(ctx, req, nil)
}

// run is Run with the set of resolved paths that earlier dry-run steps would
// have rewritten. An input in that set makes the request stale.
func (e *Executor) run(ctx context.Context, req *domain.BuildRequest, pending map[string]bool) (domain.Outcome, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	ctx, span := e.tracer.Start(ctx, req.Label())
	defer span.End()

	decision, err := e.check(req, pending)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	span.SetAttribute("freshen.reason", string(decision.Reason))

	if !decision.Stale {
		if e.opts.Verbose {
			e.logger.Info(req.Label() + ": up to date")
		}
		span.SetAttribute("freshen.outcome", string(domain.OutcomeUpToDate))
		return domain.OutcomeUpToDate, nil
	}

	line := domain.FormatCommand(req.Command)
	if e.opts.Verbose {
		e.logger.Info(fmt.Sprintf("%s: %s", describe(decision), line))
	}

	if !e.opts.Execute {
		_, _ = fmt.Fprintln(e.stdout, line)
		span.SetAttribute("freshen.outcome", string(domain.OutcomeDryRun))
		return domain.OutcomeDryRun, nil
	}

	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}

	err = e.runner.Run(
		ctx,
		req.Command,
		req.Dir,
		environ(req.Env),
		io.MultiWriter(e.stdout, span),
		io.MultiWriter(e.stderr, span),
	)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	span.SetAttribute("freshen.outcome", string(domain.OutcomeExecuted))
	return domain.OutcomeExecuted, nil
}

// ExecuteIf runs req's command if req is stale.
func (e *Executor) ExecuteIf(ctx context.Context, req *domain.BuildRequest) error {
	_, err := e.Run(ctx, req)
	return err
}

func describe(d domain.Decision) string {
	switch d.Reason {
	case domain.ReasonForced:
		return "forced"
	case domain.ReasonNoOutputs:
		return "no outputs declared"
	case domain.ReasonMissingOutput:
		return d.Path + " does not exist"
	case domain.ReasonInputNewer:
		return d.Path + " is newer than outputs"
	case domain.ReasonPendingInput:
		return d.Path + " is produced by an earlier step"
	default:
		return string(d.Reason)
	}
}

func environ(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	slices.Sort(out)
	return out
}
