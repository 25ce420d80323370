package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONToDeployLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	lg, err := New(dir, slog.LevelInfo)
	require.NoError(t, err)

	lg = WithRunID(lg)
	lg.Debug("hidden")
	lg.Info("asset copied", "dst", "out/kun/index.html")

	data, err := os.ReadFile(filepath.Join(dir, "deploy.log"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1, "debug record must be filtered at info level")

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "asset copied", rec["msg"])
	assert.Equal(t, "out/kun/index.html", rec["dst"])
	assert.NotEmpty(t, rec["run_id"])
}

func TestNew_EmptyDirDiscards(t *testing.T) {
	lg, err := New("", slog.LevelDebug)
	require.NoError(t, err)
	assert.False(t, lg.Enabled(t.Context(), slog.LevelError))
}

// runIDOf logs one record through WithRunID and returns its run_id.
func runIDOf(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	WithRunID(slog.New(slog.NewJSONHandler(&buf, nil))).Info("x")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	id, ok := rec["run_id"].(string)
	require.True(t, ok, "run_id must be a string")
	return id
}

func TestWithRunID_IsUUID(t *testing.T) {
	id := runIDOf(t)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)

	assert.NotEqual(t, id, runIDOf(t))
}
