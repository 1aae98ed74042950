package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jimezsa/careerwatch/internal/models"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return string(data)
}

func TestWriteRunSuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textfile", "careerwatch.prom")
	w := NewTextfileWriter(path)
	w.now = func() time.Time { return time.Unix(1700000000, 0) }

	obs := models.Observation{
		URL:        "https://careers.example.com",
		Count:      162,
		Previous:   models.KnownCount(150),
		Changed:    true,
		Notified:   true,
		ObservedAt: time.Now(),
	}
	if err := w.WriteRun(obs, nil); err != nil {
		t.Fatalf("WriteRun: %v", err)
	}

	out := readFile(t, path)
	for _, want := range []string{
		`careerwatch_job_count{url="https://careers.example.com"} 162`,
		`careerwatch_previous_job_count{url="https://careers.example.com"} 150`,
		`careerwatch_last_run_success{url="https://careers.example.com"} 1`,
		`careerwatch_notification_sent{url="https://careers.example.com"} 1`,
		`careerwatch_last_run_timestamp_seconds{url="https://careers.example.com"} 1.7e+09`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("metrics missing %q:\n%s", want, out)
		}
	}
}

func TestWriteRunFailureOmitsCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "careerwatch.prom")
	w := NewTextfileWriter(path)

	if err := w.WriteRun(models.Observation{URL: "https://careers.example.com"}, errors.New("timeout")); err != nil {
		t.Fatalf("WriteRun: %v", err)
	}

	out := readFile(t, path)
	if !strings.Contains(out, `careerwatch_last_run_success{url="https://careers.example.com"} 0`) {
		t.Fatalf("expected failed run gauge:\n%s", out)
	}
	if strings.Contains(out, "careerwatch_job_count{") {
		t.Fatalf("failed run should not report a count:\n%s", out)
	}
}

func TestWriteRunOmitsUnknownPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "careerwatch.prom")
	if err := NewTextfileWriter(path).WriteRun(models.Observation{Count: 3, Changed: true, ObservedAt: time.Now()}, nil); err != nil {
		t.Fatalf("WriteRun: %v", err)
	}
	if strings.Contains(readFile(t, path), "previous_job_count") {
		t.Fatalf("unknown previous count should be omitted")
	}
}
