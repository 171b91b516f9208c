package ports

import "go.trai.ch/freshen/internal/core/domain"

// Journal records the commands that actually ran.
//
//go:generate go run go.uber.org/mock/mockgen -source=journal.go -destination=mocks/mock_journal.go -package=mocks
type Journal interface {
	// Record stores rec, replacing any earlier record for the same command.
	Record(rec domain.StepRecord) error
	// Records returns every stored record ordered by start time.
	Records() ([]domain.StepRecord, error)
	// Path returns the file backing the journal.
	Path() string
}
