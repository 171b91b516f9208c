package ports

import "time"

// FileStater reads modification times.
//
//go:generate go run go.uber.org/mock/mockgen -source=stater.go -destination=mocks/mock_stater.go -package=mocks
type FileStater interface {
	// ModTime returns the modification time of path. A missing path is
	// reported with exists == false and a nil error.
	ModTime(path string) (mtime time.Time, exists bool, err error)
}
