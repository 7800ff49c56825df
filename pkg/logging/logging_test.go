package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		" DEBUG ": LevelDebug,
		"info":    LevelInfo,
		"":        LevelInfo,
		"trace":   LevelInfo,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseLevel(raw), "ParseLevel(%q)", raw)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, LevelInfo)
	log.Debugf("hidden %d", 1)
	log.Infof("shown %d", 2)
	log.Errorf("failed %s", "x")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 2")
	assert.Contains(t, out, "failed x")

	buf.Reset()
	NewWriter(&buf, LevelDebug).Debugf("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestNilLogger(t *testing.T) {
	var log *Logger
	log.Infof("nothing")
	log.Debugf("nothing")
	assert.NoError(t, log.Close())
	assert.NotNil(t, log.Slog())
}

func TestFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pinger.log")
	log, err := New(path, LevelInfo, Options{JSON: true})
	require.NoError(t, err)
	log.Warnf("disk %s", "full")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"level":"WARN"`)
	assert.Contains(t, string(data), `"msg":"disk full"`)
}
