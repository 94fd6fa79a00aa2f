package zlog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"messenger/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileOutput(t *testing.T) {
	assert, require := assert.New(t), require.New(t)
	logPath := filepath.Join(t.TempDir(), "logs", "messenger.log")
	Init(config.LogConfig{LogPath: logPath, LogLevel: "warn"})
	defer Init(config.LogConfig{LogLevel: "info"})

	Info("不会写入")
	Warn("写入文件", zap.Int64("user_id", 7))
	Sync()

	raw, err := os.ReadFile(logPath)
	require.NoError(err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(lines, 1)

	var entry map[string]interface{}
	require.NoError(json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal("warn", entry["level"])
	assert.Equal("写入文件", entry["msg"])
	assert.EqualValues(7, entry["user_id"])
	assert.Equal("zlog.TestFileOutput", entry["func"])
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, "debug", getLogLevelFromConfig("debug").String())
	assert.Equal(t, "info", getLogLevelFromConfig("bogus").String())
	assert.Equal(t, "info", getLogLevelFromConfig("").String())
}
