package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormsListCmd(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"forms", "list"})

	require.NoError(t, rootCmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "MSBB")
	assert.Contains(t, out, " 1. ref_year")
	assert.Contains(t, out, "ref_reason_other")
}

func TestFormsListCmd_RequiresCatalog(t *testing.T) {
	restore := clearServices()
	defer restore()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"forms", "list"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "form catalog not configured")
}
