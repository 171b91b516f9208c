package fs

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"go.trai.ch/freshen/internal/core/domain"
	"go.trai.ch/freshen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileStater = (*Stater)(nil)

// Stater reads modification times from the local filesystem.
type Stater struct{}

// NewStater creates a new Stater.
func NewStater() *Stater {
	return &Stater{}
}

// ModTime returns the modification time of path, following symlinks.
func (s *Stater) ModTime(path string) (time.Time, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, zerr.With(errors.Join(domain.ErrPathStatFailed, err), "path", path)
	}
	return info.ModTime(), true, nil
}
