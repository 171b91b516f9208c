package staleness

import (
	"context"
	"time"

	"go.trai.ch/freshen/internal/core/domain"
	"go.trai.ch/zerr"
)

// StepResult describes one request processed by RunAll.
type StepResult struct {
	Request   *domain.BuildRequest
	Outcome   domain.Outcome
	Err       error
	StartedAt time.Time
	Duration  time.Duration
}

// Summary counts the outcomes of a RunAll call.
type Summary struct {
	Executed int
	UpToDate int
	DryRun   int
}

// Total returns the number of steps that completed without error.
func (s Summary) Total() int {
	return s.Executed + s.UpToDate + s.DryRun
}

// RunAll processes reqs strictly in order and stops at the first failure.
// onStep, when non-nil, is called after every processed request, including
// the failing one.
func (e *Executor) RunAll(
	ctx context.Context,
	reqs []domain.BuildRequest,
	onStep func(StepResult),
) (Summary, error) {
	var sum Summary
	pending := make(map[string]bool)
	for i := range reqs {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		req := &reqs[i]
		start := time.Now()
		outcome, err := e.run(ctx, req, pending)
		if onStep != nil {
			onStep(StepResult{
				Request:   req,
				Outcome:   outcome,
				Err:       err,
				StartedAt: start,
				Duration:  time.Since(start),
			})
		}
		if err != nil {
			return sum, zerr.With(zerr.Wrap(err, "step failed"), "step", req.Label())
		}

		switch outcome {
		case domain.OutcomeExecuted:
			sum.Executed++
		case domain.OutcomeUpToDate:
			sum.UpToDate++
		case domain.OutcomeDryRun:
			sum.DryRun++
			for _, out := range req.Outputs {
				pending[req.Resolve(out)] = true
			}
		}
	}
	return sum, nil
}
