package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize_InvalidLevel(t *testing.T) {
	err := Initialize(Config{Level: "loud", Environment: "development"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestInitialize_Development(t *testing.T) {
	require.NoError(t, Initialize(Config{Level: "debug", Environment: "development"}))
	require.NotNil(t, Log)

	assert.NotPanics(t, func() {
		Info("hello")
		LogAPICall("emailjs", "send", "success", 0.1)
		LogHTTPRequest("POST", "/api/v1/inquiry", 502, 0.2)
	})
}

func TestInitialize_ProductionWritesToLogDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(Config{
		Level:       "info",
		LogDir:      dir,
		Environment: "production",
		ServiceName: "inquiry-api",
	}))

	Info("written to file")
	Sync()

	data, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
	assert.Contains(t, string(data), `"service":"inquiry-api"`)
}
