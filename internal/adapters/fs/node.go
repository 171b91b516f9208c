package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/freshen/internal/core/ports"
)

const (
	StaterNodeID   graft.ID = "adapter.fs.stater"
	ResolverNodeID graft.ID = "adapter.fs.resolver"
)

func init() {
	graft.Register(graft.Node[ports.FileStater]{
		ID:        StaterNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.FileStater, error) {
			return NewStater(), nil
		},
	})

	graft.Register(graft.Node[ports.InputResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.InputResolver, error) {
			return NewResolver(), nil
		},
	})
}
