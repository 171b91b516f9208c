package journal

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/freshen/internal/adapters/logger"
	"go.trai.ch/freshen/internal/core/domain"
	"go.trai.ch/freshen/internal/core/ports"
)

const NodeID graft.ID = "adapter.journal"

func init() {
	graft.Register(graft.Node[ports.Journal]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Journal, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return Open(domain.DefaultJournalPath(), log), nil
		},
	})
}
