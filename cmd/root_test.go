package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestRootCmdHelp(t *testing.T) {
	viper.Reset()

	b := bytes.NewBufferString("")
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)
	rootCmd.SetArgs([]string{"--help"})

	err := rootCmd.Execute()
	assert.NoError(t, err)

	output := b.String()
	assert.Contains(t, output, "TaskKeep")
	assert.Contains(t, output, "Usage:")
	assert.Contains(t, output, "add")
	assert.Contains(t, output, "list")
	assert.Contains(t, output, "complete")
}

func TestVersion(t *testing.T) {
	// Re-running Execute with new args keeps previously parsed flag values,
	// so check the wired version directly instead of invoking --version.
	assert.Equal(t, "0.3.0", version)
	assert.Equal(t, version, rootCmd.Version)
}

func TestPersistentFlagsRegistered(t *testing.T) {
	for _, name := range []string{"config", "verbose", "json"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("persistent flag %q not registered", name)
		}
	}
}

func TestCommandAliases(t *testing.T) {
	assert.ElementsMatch(t, []string{"done", "d"}, completeCmd.Aliases)
	assert.ElementsMatch(t, []string{"incomplete"}, reopenCmd.Aliases)
	assert.ElementsMatch(t, []string{"rm"}, deleteCmd.Aliases)
	assert.ElementsMatch(t, []string{"update"}, editCmd.Aliases)
}
