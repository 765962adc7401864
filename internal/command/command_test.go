package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()
	cmd := New("reset nodes...")

	assert.Equal(t, "reset nodes...", cmd.Label)
	assert.Empty(t, cmd.Instructions)
	assert.True(t, cmd.Empty())
}

func TestAppend_PreservesOrder(t *testing.T) {
	t.Parallel()
	cmd := New("restore vm...").
		Append("qmrestore /mnt/images/base.vma 101 --storage local --unique --force").
		Append("qm start 101")

	require.Len(t, cmd.Instructions, 2)
	assert.Equal(t, "qmrestore /mnt/images/base.vma 101 --storage local --unique --force", cmd.Instructions[0])
	assert.Equal(t, "qm start 101", cmd.Instructions[1])
}

func TestAppend_DoesNotMutateReceiver(t *testing.T) {
	t.Parallel()
	base := New("base").Append("first")
	grown := base.Append("second")

	assert.Len(t, base.Instructions, 1)
	assert.Len(t, grown.Instructions, 2)
}

func TestAppendf(t *testing.T) {
	t.Parallel()
	cmd := New("snapshot vm...").Appendf("qm snapshot %d %s", 101, "base")

	require.Len(t, cmd.Instructions, 1)
	assert.Equal(t, "qm snapshot 101 base", cmd.Instructions[0])
}

func TestRender_JoinsWithShellAnd(t *testing.T) {
	t.Parallel()
	cmd := New("reboot vm...").
		Append("qm stop 101").
		Append("qm start 101")

	assert.Equal(t, "qm stop 101 && qm start 101", cmd.Render())
}

func TestRender_EmptyCommandIsNoOp(t *testing.T) {
	t.Parallel()
	cmd := New("nothing")

	assert.Equal(t, "", cmd.Render())
	assert.True(t, cmd.Empty())
}
