package domain

import "time"

// Options is the process-wide executor configuration. It is built once from
// command line flags and never mutated afterwards.
type Options struct {
	// Verbose logs every staleness decision.
	Verbose bool
	// Force treats every request as stale without reading timestamps.
	Force bool
	// Execute spawns subprocesses. When false the run is a dry run.
	Execute bool
	// Debug is carried through to collaborators; the executor only uses it to
	// emit per-path timestamp diagnostics at debug level.
	Debug bool
	// Timeout bounds each subprocess. Zero disables it.
	Timeout time.Duration
}

// DefaultOptions returns the configuration used when no flags are given.
func DefaultOptions() Options {
	return Options{Execute: true}
}
