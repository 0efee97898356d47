package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, parseLogLevel("DEBUG"))
	assert.Equal(t, log.WarnLevel, parseLogLevel("warn"))
	assert.Equal(t, log.WarnLevel, parseLogLevel("WARNING"))
	assert.Equal(t, log.ErrorLevel, parseLogLevel("ERR"))
	assert.Equal(t, log.ErrorLevel, parseLogLevel(" error "))
	assert.Equal(t, log.InfoLevel, parseLogLevel(""))
}

func TestSetupLogsWithoutFile(t *testing.T) {
	t.Setenv("ENABLE_FILE_LOGGING", "")
	t.Setenv("LOG_LEVEL", "")

	assert.Nil(t, setupLogs())
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}

func TestSetupLogsFileSink(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))

	t.Setenv("ENABLE_FILE_LOGGING", "1")
	t.Setenv("LOG_LEVEL", "")

	logFile := setupLogs()
	t.Cleanup(func() {
		log.StandardLogger().ReplaceHooks(make(log.LevelHooks))
		os.Chdir(wd)
	})
	require.NotNil(t, logFile)

	log.Info("file sink check")
	require.NoError(t, logFile.Close())

	matches, err := filepath.Glob(filepath.Join(dir, "migrate-*.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	content, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(content), "file sink check"))
	assert.NotContains(t, string(content), "\x1b[")
}
