package executor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lps-ufrj-br/pvectl/internal/config"
)

func newTestSSHGateway(t *testing.T, inventory map[string][]string) *SSHGateway {
	t.Helper()
	keyPath := filepath.Join(t.TempDir(), "id_test")
	require.NoError(t, os.WriteFile(keyPath, []byte("not a real key"), 0o600))

	gw, err := NewSSHGateway(config.SSHConfig{User: "root", Port: 22, KeyFile: keyPath}, inventory)
	require.NoError(t, err)
	return gw
}

func TestNewSSHGateway_MissingKey(t *testing.T) {
	t.Parallel()
	_, err := NewSSHGateway(config.SSHConfig{KeyFile: filepath.Join(t.TempDir(), "absent")}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read ssh key")
}

func TestSSHResolve_Host(t *testing.T) {
	t.Parallel()
	gw := newTestSSHGateway(t, nil)

	hosts, err := gw.Resolve(Host("node01"))
	require.NoError(t, err)
	assert.Equal(t, []string{"node01"}, hosts)
}

func TestSSHResolve_Group(t *testing.T) {
	t.Parallel()
	gw := newTestSSHGateway(t, map[string][]string{
		"c1": {"node01", "node02", "node03"},
	})

	hosts, err := gw.Resolve(Group("c1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"node01", "node02", "node03"}, hosts)
}

func TestSSHResolve_UnknownGroup(t *testing.T) {
	t.Parallel()
	gw := newTestSSHGateway(t, nil)

	_, err := gw.Resolve(Group("c9"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown host group "c9"`)
}

func TestInventoryFromConfig(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{
		Clusters: map[string]config.ClusterSpec{
			"c1": {Host: "node01", Nodes: []string{"node01", "node02"}},
		},
	}

	inventory := InventoryFromConfig(cfg)
	assert.Equal(t, []string{"node01", "node02"}, inventory["c1"])
}
