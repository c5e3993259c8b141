package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInit_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.log")
	old := SetServiceName("binary_bot_test")
	defer SetServiceName(old)

	l, err := Init(Config{Level: "debug", File: path, MaxSizeMB: 1})
	require.NoError(t, err)
	defer func() { InfoLogger, FatalLogger = zap.NewNop(), zap.NewNop() }()

	Info("run %s started", "abc")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"run abc started"`)
	assert.Contains(t, string(data), `"service":"binary_bot_test"`)
}

func TestInit_BadLevel(t *testing.T) {
	_, err := Init(Config{Level: "loud"})
	assert.Error(t, err)
}
