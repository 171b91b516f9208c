// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"
)

// CommandRunner spawns an external command without a shell.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type CommandRunner interface {
	// Run executes argv in dir and blocks until it exits.
	//
	// Each element of argv is passed as exactly one argument. The env parameter
	// holds overrides in "KEY=VALUE" form applied on top of the process
	// environment. A non-zero exit is reported as *domain.CommandFailedError.
	Run(ctx context.Context, argv []string, dir string, env []string, stdout, stderr io.Writer) error
}
