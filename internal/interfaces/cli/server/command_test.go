package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Both roles expose their server under a serve subcommand, so the documented
// invocations are `loopdesk crm serve` and `loopdesk dev serve`.
func TestCommands_ServeSubcommand(t *testing.T) {
	crm := NewCRMCommand()
	assert.Equal(t, "crm", crm.Name())
	serve, _, err := crm.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", serve.Name())
	assert.NotNil(t, serve.RunE)

	dev := NewDevCommand()
	assert.Equal(t, "dev", dev.Name())
	serve, _, err = dev.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", serve.Name())
	assert.NotNil(t, serve.RunE)
}

func TestModelsForRole(t *testing.T) {
	assert.Len(t, modelsForRole(RoleCRM), 8)
	assert.Len(t, modelsForRole(RoleDev), 6)
	assert.Len(t, modelsForRole("unknown"), 3)
}
