package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jimezsa/careerwatch/internal/models"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "careerwatch"

// TextfileWriter writes run gauges in the Prometheus text format, for
// node_exporter's textfile collector.
type TextfileWriter struct {
	path string
	now  func() time.Time
}

func NewTextfileWriter(path string) *TextfileWriter {
	return &TextfileWriter{path: path, now: time.Now}
}

func (w *TextfileWriter) Path() string {
	return w.path
}

// WriteRun replaces the textfile with the outcome of one run. Count gauges
// are only written when the run got far enough to read a count.
func (w *TextfileWriter) WriteRun(obs models.Observation, runErr error) error {
	reg := prometheus.NewRegistry()
	labels := prometheus.Labels{"url": obs.URL}

	success := newGauge(reg, labels, "last_run_success", "1 if the last run completed, 0 otherwise.")
	timestamp := newGauge(reg, labels, "last_run_timestamp_seconds", "Unix time of the last run.")
	timestamp.Set(float64(w.now().Unix()))

	if runErr != nil {
		success.Set(0)
	} else {
		success.Set(1)
	}

	if !obs.ObservedAt.IsZero() {
		newGauge(reg, labels, "job_count", "Job count read from the careers page.").Set(float64(obs.Count))
		newGauge(reg, labels, "job_count_changed", "1 if the count differed from the stored one.").Set(boolValue(obs.Changed))
		newGauge(reg, labels, "notification_sent", "1 if an alert was delivered.").Set(boolValue(obs.Notified))
		if obs.Previous.Known {
			newGauge(reg, labels, "previous_job_count", "Job count stored before the last run.").Set(float64(obs.Previous.Value))
		}
	}

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating metrics dir: %w", err)
		}
	}
	if err := prometheus.WriteToTextfile(w.path, reg); err != nil {
		return fmt.Errorf("writing metrics %s: %w", w.path, err)
	}
	return nil
}

func newGauge(reg *prometheus.Registry, labels prometheus.Labels, name, help string) prometheus.Gauge {
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        name,
		Help:        help,
		ConstLabels: labels,
	})
	reg.MustRegister(gauge)
	return gauge
}

func boolValue(v bool) float64 {
	if v {
		return 1
	}
	return 0
}
