package ports

import "go.trai.ch/freshen/internal/core/domain"

// ConfigLoader defines the interface for loading the project manifest.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the manifest at path. An empty path means discovery in cwd.
	Load(cwd, path string) (*domain.Manifest, error)
}
