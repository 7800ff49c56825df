package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	r := New()
	r.now = func() time.Time { return time.Unix(1700000000, 0) }

	r.Collection("minimal", nil)
	r.Collection("minimal", errors.New("boom"))
	r.Collection("full", nil)
	r.Report("http", errors.New("503"))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.collections.WithLabelValues("minimal", StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.collections.WithLabelValues("minimal", StatusFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.reports.WithLabelValues("http", StatusFailure)))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.lastSuccess))

	r.Report("http", nil)
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(r.lastSuccess))
}

func TestWriteTextfile(t *testing.T) {
	r := New()
	r.Collection("full", nil)

	path := filepath.Join(t.TempDir(), "textfile", "pinger.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `pinger_collections_total{level="full",status="success"} 1`)

	assert.NoError(t, r.WriteTextfile(""))
}
