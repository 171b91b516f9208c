// Package journal persists a record of every command freshen actually ran.
package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/freshen/internal/core/domain"
	"go.trai.ch/freshen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Journal = (*Store)(nil)

// Store implements ports.Journal using a flat JSON file. It keeps the latest
// record for each distinct command.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.StepRecord
}

// NewStore creates a journal backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.StepRecord),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Open loads the journal at path. A journal that cannot be read is reported
// through log and replaced by an empty one, which the next Record overwrites.
func Open(path string, log ports.Logger) *Store {
	s, err := NewStore(path)
	if err == nil {
		return s
	}
	log.Warn(fmt.Sprintf("ignoring unreadable journal: %v", err))
	return &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.StepRecord),
	}
}

// Key identifies a step by its argv. Arguments are NUL separated so that
// ["a b"] and ["a", "b"] differ.
func Key(argv []string) string {
	sum := xxhash.Sum64String(strings.Join(argv, "\x00"))
	return strconv.FormatUint(sum, 16)
}

// Path returns the file the journal is stored in.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(errors.Join(domain.ErrJournalReadFailed, err), "path", s.path)
	}

	if len(data) == 0 {
		return nil
	}

	var records []domain.StepRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return zerr.With(errors.Join(domain.ErrJournalReadFailed, err), "path", s.path)
	}
	for _, rec := range records {
		s.cache[rec.Key] = rec
	}

	return nil
}

func (s *Store) save() error {
	s.mu.RLock()
	records := s.sorted()
	s.mu.RUnlock()

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return zerr.With(errors.Join(domain.ErrJournalWriteFailed, err), "path", s.path)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return zerr.With(errors.Join(domain.ErrJournalWriteFailed, err), "path", s.path)
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.With(errors.Join(domain.ErrJournalWriteFailed, err), "path", s.path)
	}

	return nil
}

// sorted returns the cached records ordered by start time. Callers hold mu.
func (s *Store) sorted() []domain.StepRecord {
	records := make([]domain.StepRecord, 0, len(s.cache))
	for _, rec := range s.cache {
		records = append(records, rec)
	}
	slices.SortFunc(records, func(a, b domain.StepRecord) int {
		if c := a.StartedAt.Compare(b.StartedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Key, b.Key)
	})
	return records
}

// Record stores rec, replacing any earlier record of the same command.
func (s *Store) Record(rec domain.StepRecord) error {
	if rec.Key == "" {
		rec.Key = Key(rec.Command)
	}

	s.mu.Lock()
	s.cache[rec.Key] = rec
	s.mu.Unlock()

	return s.save()
}

// Records returns every stored record ordered by start time.
func (s *Store) Records() ([]domain.StepRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(), nil
}
