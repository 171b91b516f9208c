package domain

import (
	"path/filepath"
	"strconv"
	"strings"
)

// BuildRequest is a single build decision unit: a command gated by the
// modification times of its inputs and outputs.
type BuildRequest struct {
	// Name labels the step in logs and progress output. It defaults to the
	// formatted command when empty.
	Name string
	// Command is the program followed by its arguments. Each element is passed
	// to the process as exactly one argument.
	Command []string
	Inputs  []string
	Outputs []string
	// Dir is the working directory of the command. Relative inputs and outputs
	// are resolved against it.
	Dir string
	// Env holds environment overrides applied on top of the process environment.
	Env map[string]string
}

// Validate reports whether the request can be executed.
func (r *BuildRequest) Validate() error {
	if len(r.Command) == 0 || r.Command[0] == "" {
		return ErrEmptyCommand
	}
	return nil
}

// Label returns Name, falling back to the formatted command.
func (r *BuildRequest) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return FormatCommand(r.Command)
}

// Resolve maps a declared path onto the filesystem using Dir.
func (r *BuildRequest) Resolve(path string) string {
	if r.Dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.Dir, path)
}

// FormatCommand renders argv as a single line, quoting arguments that would
// otherwise be ambiguous when read back.
func FormatCommand(argv []string) string {
	parts := make([]string, len(argv))
	for i, arg := range argv {
		if arg == "" || strings.ContainsAny(arg, " \t\n\"'\\$`") {
			parts[i] = strconv.Quote(arg)
			continue
		}
		parts[i] = arg
	}
	return strings.Join(parts, " ")
}
