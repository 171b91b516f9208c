package domain

// Reason explains a staleness decision.
type Reason string

const (
	// ReasonForced means force mode skipped the comparison.
	ReasonForced Reason = "forced"
	// ReasonNoOutputs means there were no outputs to compare against.
	ReasonNoOutputs Reason = "no-outputs"
	// ReasonMissingOutput means a declared output does not exist yet.
	ReasonMissingOutput Reason = "missing-output"
	// ReasonInputNewer means an input is newer than the oldest output.
	ReasonInputNewer Reason = "input-newer"
	// ReasonPendingInput means an earlier dry-run step of the same plan would
	// have rebuilt one of the inputs.
	ReasonPendingInput Reason = "pending-input"
	// ReasonUpToDate means every output is at least as new as every input.
	ReasonUpToDate Reason = "up-to-date"
)

// Decision is the result of a staleness check.
type Decision struct {
	Stale  bool
	Reason Reason
	// Path is the output that is missing or the newest input, when relevant.
	Path string
}

// Outcome describes what happened to a request.
type Outcome string

const (
	// OutcomeUpToDate means the command was not needed.
	OutcomeUpToDate Outcome = "up-to-date"
	// OutcomeExecuted means the command ran and succeeded.
	OutcomeExecuted Outcome = "executed"
	// OutcomeDryRun means the command was stale but only printed.
	OutcomeDryRun Outcome = "dry-run"
)
