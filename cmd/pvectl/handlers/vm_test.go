package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lps-ufrj-br/pvectl/internal/command"
	"github.com/lps-ufrj-br/pvectl/internal/config"
	"github.com/lps-ufrj-br/pvectl/internal/executor"
	internaltesting "github.com/lps-ufrj-br/pvectl/internal/testing"
)

func TestVMPing(t *testing.T) {
	saveAndRestoreFactories(t)

	gw := &internaltesting.MockGateway{}
	gw.On("Ping", mock.Anything, executor.Host("v1")).Return(nil)
	injectGateway(gw)

	err := VMPing(context.Background(), Options{Name: "v1"})
	require.NoError(t, err)
	gw.AssertExpectations(t)
}

func TestVMRun(t *testing.T) {
	saveAndRestoreFactories(t)

	gw := &internaltesting.MockGateway{}
	gw.On("RunShell", mock.Anything, executor.Host("v1"), mock.MatchedBy(func(cmd command.Command) bool {
		return cmd.Render() == "uptime"
	})).Return(nil)
	injectGateway(gw)

	err := VMRun(context.Background(), Options{Name: "v1"}, "uptime")
	require.NoError(t, err)
	gw.AssertExpectations(t)
}

func TestVMDestroy(t *testing.T) {
	saveAndRestoreFactories(t)

	gw := &internaltesting.MockGateway{}
	gw.On("RunShell", mock.Anything, executor.Host("node01"), mock.Anything).Return(nil)
	injectGateway(gw)

	err := VMDestroy(context.Background(), Options{Name: "v1"})
	require.NoError(t, err)
	gw.AssertExpectations(t)
}

func TestVMPing_UnknownVM(t *testing.T) {
	saveAndRestoreFactories(t)

	injectGateway(&internaltesting.MockGateway{})

	err := VMPing(context.Background(), Options{Name: "nope"})
	var lookupErr *config.LookupError
	require.ErrorAs(t, err, &lookupErr)
}
