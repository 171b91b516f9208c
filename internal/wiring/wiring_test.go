package wiring_test

import (
	"context"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/freshen/internal/app"
	_ "go.trai.ch/freshen/internal/wiring"
)

// Every node the CLI needs must be registered and resolvable without a
// manifest or journal present.
func TestGraph_ResolvesComponents(t *testing.T) {
	t.Chdir(t.TempDir())

	components, _, err := graft.ExecuteFor[*app.Components](context.Background())
	require.NoError(t, err)
	require.NotNil(t, components)
	assert.NotNil(t, components.App)
	assert.NotNil(t, components.Logger)

	records, err := components.App.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}
