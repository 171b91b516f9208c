package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

var (
	// ErrMissingInput is matched by every MissingInputError.
	ErrMissingInput = zerr.New("missing input")

	// ErrCommandFailed is matched by every CommandFailedError.
	ErrCommandFailed = zerr.New("command failed")

	// ErrEmptyCommand is returned when a build request has no program to run.
	ErrEmptyCommand = zerr.New("empty command")

	// ErrBuildExecutionFailed is returned when a build run aborts on a failed step.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrPathStatFailed is returned when stating a path fails for a reason other than absence.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrInputNotFound is returned when a source glob in the manifest matches nothing.
	ErrInputNotFound = zerr.New("input not found")

	// ErrConfigNotFound is returned when no manifest can be found.
	ErrConfigNotFound = zerr.New("could not find freshen.yaml, freshen.yml or freshen.toml")

	// ErrConfigReadFailed is returned when the manifest cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the manifest cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnsupportedConfigFormat is returned for manifest files that are neither YAML nor TOML.
	ErrUnsupportedConfigFormat = zerr.New("unsupported config format, expected .yaml, .yml or .toml")

	// ErrInvalidTimeout is returned when the manifest timeout is not a valid duration.
	ErrInvalidTimeout = zerr.New("invalid timeout")

	// ErrJournalReadFailed is returned when the journal cannot be read.
	ErrJournalReadFailed = zerr.New("failed to read journal")

	// ErrJournalWriteFailed is returned when the journal cannot be written.
	ErrJournalWriteFailed = zerr.New("failed to write journal")

	// ErrFailedToCleanOutput is returned when removing an output file fails.
	ErrFailedToCleanOutput = zerr.New("failed to clean output file")
)

// MissingInputError reports a declared input that does not exist when
// staleness has to be computed.
type MissingInputError struct {
	Path string
	Err  error
}

func (e *MissingInputError) Error() string {
	return "missing input: " + e.Path
}

// Unwrap exposes ErrMissingInput and the underlying stat error.
func (e *MissingInputError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMissingInput}
	}
	return []error{ErrMissingInput, e.Err}
}

// CommandFailedError reports a subprocess that did not exit successfully.
// ExitCode is -1 when the process was killed or never started.
type CommandFailedError struct {
	Command  []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandFailedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "command failed (exit %d): %s", e.ExitCode, FormatCommand(e.Command))
	if tail := strings.TrimSpace(e.Stderr); tail != "" {
		b.WriteString("\n")
		b.WriteString(tail)
	}
	return b.String()
}

// Unwrap exposes ErrCommandFailed and the underlying process error.
func (e *CommandFailedError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCommandFailed}
	}
	return []error{ErrCommandFailed, e.Err}
}
