package fs

import (
	"path/filepath"
	"strings"

	"go.trai.ch/freshen/internal/core/domain"
	"go.trai.ch/freshen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.InputResolver = (*Resolver)(nil)

// Resolver implements the InputResolver interface using filepath.Glob.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveInputs expands glob patterns relative to root. Literal paths are
// returned unchanged whether or not they exist, since they may be produced by
// an earlier step. Results keep declaration order without duplicates; the
// matches of a single pattern are sorted.
func (r *Resolver) ResolveInputs(inputs []string, root string) ([]string, error) {
	seen := make(map[string]bool, len(inputs))
	result := make([]string, 0, len(inputs))
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			result = append(result, p)
		}
	}

	for _, input := range inputs {
		if !isPattern(input) {
			add(filepath.Clean(input))
			continue
		}

		pattern := input
		if root != "" && !filepath.IsAbs(input) {
			pattern = filepath.Join(root, input)
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to glob path"), "path", pattern)
		}
		if len(matches) == 0 {
			return nil, zerr.With(zerr.Wrap(domain.ErrInputNotFound, "no files match "+input), "path", pattern)
		}

		for _, match := range matches {
			add(relativeTo(root, input, match))
		}
	}

	return result, nil
}

func isPattern(path string) bool {
	return strings.ContainsAny(path, "*?[")
}

// relativeTo maps a match back to the form it was declared in.
func relativeTo(root, pattern, match string) string {
	if root == "" || filepath.IsAbs(pattern) {
		return match
	}
	rel, err := filepath.Rel(root, match)
	if err != nil {
		return match
	}
	return rel
}
