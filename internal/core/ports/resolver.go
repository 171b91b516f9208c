package ports

// InputResolver defines the interface for resolving input files.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type InputResolver interface {
	// ResolveInputs expands glob patterns relative to root. Literal paths are
	// returned unchanged whether or not they exist.
	ResolveInputs(inputs []string, root string) ([]string, error)
}
