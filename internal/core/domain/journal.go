package domain

import (
	"path/filepath"
	"time"
)

// StepRecord is the journal entry for a command that actually ran.
type StepRecord struct {
	Key       string        `json:"key,omitzero"`
	Name      string        `json:"name,omitzero"`
	Command   []string      `json:"command,omitempty"`
	ExitCode  int           `json:"exit_code"`
	Succeeded bool          `json:"succeeded"`
	StartedAt time.Time     `json:"started_at,omitzero"`
	Duration  time.Duration `json:"duration,omitzero"`
}

// StateDir is the directory freshen keeps its own files in.
const StateDir = ".freshen"

// DefaultJournalPath returns the journal location relative to the project root.
func DefaultJournalPath() string {
	return filepath.Join(StateDir, "journal.json")
}
