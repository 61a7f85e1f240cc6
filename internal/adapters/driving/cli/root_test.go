package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mukesh2006/medic/internal/logger"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "medic", rootCmd.Use)
	assert.Contains(t, rootCmd.Long, "community health workers")
}

func TestRootCmd_Commands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"sms", "record", "contact", "forms", "settings", "serve", "mcp", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestRootCmd_VerboseFlag(t *testing.T) {
	defer func() {
		verbose = false
		logger.SetVerbose(false)
	}()

	flag := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, flag)
	assert.Equal(t, "v", flag.Shorthand)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"--verbose", "version"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.True(t, logger.IsVerbose())
}

func TestSetVersion(t *testing.T) {
	original := version
	defer func() { version = original }()

	SetVersion("")
	assert.Equal(t, original, version)

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)
}
