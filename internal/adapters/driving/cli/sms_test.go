package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mukesh2006/medic/internal/core/domain"
)

func TestSMSReceiveCmd_Use(t *testing.T) {
	assert.Equal(t, "receive [message]", smsReceiveCmd.Use)
	assert.Equal(t, "Parse and store an SMS form submission", smsReceiveCmd.Short)
}

func TestSMSReceiveCmd_HasFlags(t *testing.T) {
	for _, name := range []string{"from", "sent-timestamp", "dry-run", "json"} {
		assert.NotNil(t, smsReceiveCmd.Flags().Lookup(name), name)
	}
}

func TestSMSReceiveCmd_RequiresService(t *testing.T) {
	restore := clearServices()
	defer restore()
	defer resetFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"sms", "receive", "--from", "+1", msbbMessage})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "intake service not configured")
}

func TestSMSReceiveCmd_RequiresSender(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"sms", "receive", msbbMessage})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--from is required")
}

func TestSMSReceiveCmd_StoresRecord(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()
	seedClinic(t, env.store)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"sms", "receive", "--from", "+13125551212", msbbMessage})

	err := rootCmd.Execute()
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Stored record")
	assert.Contains(t, out, "ref_year: 2012")
	assert.Contains(t, out, "ref_reason: Autres")
	assert.Contains(t, out, "Clinic: Clinic (clinic)")
	assert.Contains(t, out, "-> +3000 (pending):")
	assert.Equal(t, 2, env.store.Len())
}

func TestSMSReceiveCmd_DryRunJSON(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"sms", "receive", "--from", "+1", "--dry-run", "--json", msbbMessage + "#extra"})

	err := rootCmd.Execute()
	require.NoError(t, err)

	var rec domain.DataRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "MSBB", rec.Form)
	assert.True(t, rec.HasError(domain.CodeExtraFields))
	assert.Equal(t, 0, env.store.Len())
}

func TestSMSReceiveCmd_MalformedMessage(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"sms", "receive", "--from", "+1", "hello"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedMessage)
}

func TestRecordGetCmd(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	rec, err := intakeService.Receive(context.Background(), &domain.RawMessage{From: "+1", Message: msbbMessage})
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"record", "get", rec.ID})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "Stored record "+rec.ID+" (MSBB)")
	assert.Contains(t, buf.String(), "ref_rc: abcdef")
}

func TestRecordGetCmd_NotFound(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"record", "get", "missing"})

	err := rootCmd.Execute()
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
