package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Status label values.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Recorder tracks collection and reporting outcomes.
type Recorder struct {
	registry    *prometheus.Registry
	collections *prometheus.CounterVec
	reports     *prometheus.CounterVec
	lastSuccess prometheus.Gauge
	now         func() time.Time
}

// New creates a recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		collections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pinger",
			Name:      "collections_total",
			Help:      "Identity collection runs grouped by level and status.",
		}, []string{"level", "status"}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pinger",
			Name:      "reports_total",
			Help:      "Identity reports grouped by transport and status.",
		}, []string{"transport", "status"}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pinger",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run that collected and reported successfully.",
		}),
		now: time.Now,
	}
	r.registry.MustRegister(r.collections, r.reports, r.lastSuccess)
	return r
}

// Registry exposes the gatherer for tests and exporters.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Collection records the outcome of one identity collection.
func (r *Recorder) Collection(level string, err error) {
	r.collections.WithLabelValues(level, status(err)).Inc()
}

// Report records the outcome of one delivery and marks full-run success.
func (r *Recorder) Report(transport string, err error) {
	r.reports.WithLabelValues(transport, status(err)).Inc()
	if err == nil {
		r.lastSuccess.Set(float64(r.now().Unix()))
	}
}

// WriteTextfile writes the registry for the node_exporter textfile collector.
// An empty path is a no-op.
func (r *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

func status(err error) string {
	if err != nil {
		return StatusFailure
	}
	return StatusSuccess
}
