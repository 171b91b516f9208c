package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/freshen/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/freshen/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/freshen/internal/adapters/journal"   //nolint:depguard // Wired in app layer
	"go.trai.ch/freshen/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/freshen/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/freshen/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/freshen/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fs.ResolverNodeID,
			fs.StaterNodeID,
			shell.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			journal.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	resolver, err := graft.Dep[ports.InputResolver](ctx)
	if err != nil {
		return nil, err
	}

	stater, err := graft.Dep[ports.FileStater](ctx)
	if err != nil {
		return nil, err
	}

	runner, err := graft.Dep[ports.CommandRunner](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.Journal](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, resolver, stater, runner, log, tracer, store), nil
}
