package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lps-ufrj-br/pvectl/internal/command"
	"github.com/lps-ufrj-br/pvectl/internal/config"
)

type recordedCall struct {
	name string
	args []string
}

func newRecordingAnsible(t *testing.T, fail bool) (*AnsibleGateway, *[]recordedCall) {
	t.Helper()
	gw := NewAnsibleGateway(config.AnsibleConfig{
		Inventory:   "/etc/ansible/hosts",
		PlaybookDir: "playbooks",
	}, false)

	calls := &[]recordedCall{}
	gw.runCommand = func(_ context.Context, name string, args ...string) ([]byte, error) {
		*calls = append(*calls, recordedCall{name: name, args: args})
		if fail {
			return []byte("UNREACHABLE"), errors.New("exit status 4")
		}
		return []byte("ok"), nil
	}
	return gw, calls
}

func TestAnsibleRunShell(t *testing.T) {
	t.Parallel()
	gw, calls := newRecordingAnsible(t, false)

	cmd := command.New("reset nodes...").
		Append("systemctl stop pve-cluster corosync").
		Append("systemctl start pve-cluster")

	err := gw.RunShell(context.Background(), Group("c1"), cmd)
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, "ansible", call.name)
	assert.Equal(t, []string{
		"c1", "-i", "/etc/ansible/hosts", "-m", "shell",
		"-a", "systemctl stop pve-cluster corosync && systemctl start pve-cluster",
	}, call.args)
}

func TestAnsibleRunShell_EmptyCommandIsNoOp(t *testing.T) {
	t.Parallel()
	gw, calls := newRecordingAnsible(t, true)

	err := gw.RunShell(context.Background(), Group("c1"), command.New("noop"))
	require.NoError(t, err)
	assert.Empty(t, *calls)
}

func TestAnsibleRunShell_Failure(t *testing.T) {
	t.Parallel()
	gw, _ := newRecordingAnsible(t, true)

	err := gw.RunShell(context.Background(), Host("node01"), command.New("reset nodes...").Append("false"))
	require.Error(t, err)

	var remoteErr *RemoteExecutionError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "host node01", remoteErr.Target)
	assert.Equal(t, "reset nodes...", remoteErr.Label)
	assert.Equal(t, "UNREACHABLE", remoteErr.Output)
}

func TestAnsibleRunProcedure(t *testing.T) {
	t.Parallel()
	gw, calls := newRecordingAnsible(t, false)

	err := gw.RunProcedure(context.Background(), "add_node.yaml", Group("c1"), map[string]string{
		"master_key": "'sekrit'",
		"ip_address": "'10.1.1.10'",
	})
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, "ansible-playbook", call.name)
	// Parameters appear in stable key order.
	assert.Equal(t, []string{
		"playbooks/add_node.yaml", "-i", "/etc/ansible/hosts", "-l", "c1",
		"-e", "ip_address='10.1.1.10'",
		"-e", "master_key='sekrit'",
	}, call.args)
}

func TestAnsiblePing(t *testing.T) {
	t.Parallel()
	gw, calls := newRecordingAnsible(t, false)

	err := gw.Ping(context.Background(), Group("c1"))
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	assert.Equal(t, []string{"c1", "-i", "/etc/ansible/hosts", "-m", "ping"}, (*calls)[0].args)
}

func TestAnsibleVerboseFlag(t *testing.T) {
	t.Parallel()
	gw := NewAnsibleGateway(config.AnsibleConfig{Inventory: "inv", PlaybookDir: "pb"}, true)
	var args []string
	gw.runCommand = func(_ context.Context, _ string, a ...string) ([]byte, error) {
		args = a
		return nil, nil
	}

	require.NoError(t, gw.RunShell(context.Background(), Host("h"), command.New("x").Append("true")))
	assert.Equal(t, "-v", args[len(args)-1])
}
