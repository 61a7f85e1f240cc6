package logger

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func capture(t *testing.T, verbose bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verbose)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	buf := capture(t, true)

	Debug("test message %s", "arg")

	out := buf.String()
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "test message arg")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("hidden")
	Info("hidden")
	Section("hidden")

	assert.Empty(t, buf.String())
}

func TestSection(t *testing.T) {
	buf := capture(t, true)

	Section("Intake")

	assert.Contains(t, buf.String(), "=== Intake ===")
}

func TestInfo(t *testing.T) {
	buf := capture(t, true)

	Info("listening on %s", ":5988")

	assert.Contains(t, buf.String(), "INFO")
	assert.Contains(t, buf.String(), "listening on :5988")
}

func TestWarnAndError_AlwaysPrinted(t *testing.T) {
	buf := capture(t, false)

	Warn("warning message")
	Error("error %d", 42)

	out := buf.String()
	assert.Contains(t, out, "WARN warning message")
	assert.Contains(t, out, "ERROR error 42")
}

func TestL_StructuredFields(t *testing.T) {
	buf := capture(t, false)

	L().Warn("multiple facilities", zap.String("phone", "+1"), zap.Int("matches", 2))

	out := buf.String()
	assert.Contains(t, out, "multiple facilities")
	assert.Contains(t, out, `"phone": "+1"`)
	assert.Contains(t, out, `"matches": 2`)
}

func TestConcurrentAccess(t *testing.T) {
	capture(t, false)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetVerbose(true)
			Debug("concurrent %d", i)
			IsVerbose()
			SetVerbose(false)
		}()
	}
	wg.Wait()
}
