package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/swordfish/internal/logger"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "swordfish", rootCmd.Use)
}

func TestRootCmd_HasPersistentFlags(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, flag)
	assert.Equal(t, "v", flag.Shorthand)

	flag = rootCmd.PersistentFlags().Lookup("config-dir")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"tui", "query", "index", "settings", "mcp", "version"} {
		assert.True(t, names[want], "missing %s command", want)
	}
}

func TestRootCmd_BootstrapReceivesConfigDir(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	var got string
	SetBootstrap(func(_ context.Context, dir string) error {
		got = dir
		return nil
	})
	defer func() {
		SetBootstrap(nil)
		configDir = ""
		verbose = false
		logger.SetVerbose(false)
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"--config-dir", "/tmp/sf", "--verbose", "version"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "/tmp/sf", got)
	assert.True(t, logger.IsVerbose())
}

func TestRootCmd_BootstrapFailureStopsCommand(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	SetBootstrap(func(context.Context, string) error {
		return errors.New("config unreadable")
	})
	defer SetBootstrap(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"version"})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config unreadable")
	assert.NotContains(t, buf.String(), "swordfish version")
}

func TestSetVersion(t *testing.T) {
	original := version
	defer func() { version = original }()

	SetVersion("1.2.3")

	assert.Equal(t, "1.2.3", version)
}
