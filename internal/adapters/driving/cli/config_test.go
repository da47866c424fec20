package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCmd_Use(t *testing.T) {
	assert.Equal(t, "config", configCmd.Use)
}

func TestConfigCmd_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range configCmd.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["set-token"], "set-token subcommand should exist")
	assert.True(t, names["show"], "show subcommand should exist")
}

func TestConfigSetTokenCmd_RequiresArg(t *testing.T) {
	err := configSetTokenCmd.Args(configSetTokenCmd, []string{})
	require.Error(t, err)
	assert.NoError(t, configSetTokenCmd.Args(configSetTokenCmd, []string{"secret"}))
}
