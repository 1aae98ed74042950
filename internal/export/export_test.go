package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/jimezsa/careerwatch/internal/models"
)

func sampleObservations() []models.Observation {
	at := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	return []models.Observation{
		{
			URL:        "https://www.google.com/about/careers/applications/jobs/results?q=data",
			Selector:   "span.SWhIm",
			Count:      162,
			Previous:   models.KnownCount(150),
			Changed:    true,
			Notified:   true,
			ObservedAt: at,
		},
		{
			URL:        "https://www.google.com/about/careers/applications/jobs/results?q=data",
			Selector:   "span.SWhIm",
			Count:      150,
			Changed:    true,
			ObservedAt: at.Add(-24 * time.Hour),
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteObservations(&buf, sampleObservations(), FormatCSV, WriteOptions{}); err != nil {
		t.Fatalf("WriteObservations: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if strings.Join(records[0], ",") != strings.Join(csvHeader(), ",") {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][3] != "162" || records[1][4] != "150" || records[1][5] != "12" {
		t.Fatalf("unexpected first row: %v", records[1])
	}
	if records[2][4] != "" || records[2][5] != "" {
		t.Fatalf("baseline row should leave previous and delta empty: %v", records[2])
	}
}

func TestWriteTSVUsesTabs(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteObservations(&buf, sampleObservations()[:1], FormatTSV, WriteOptions{}); err != nil {
		t.Fatalf("WriteObservations: %v", err)
	}
	header := strings.SplitN(buf.String(), "\n", 2)[0]
	if header != strings.Join(csvHeader(), "\t") {
		t.Fatalf("unexpected tsv header: %q", header)
	}
}

func TestWriteJSONEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteObservations(&buf, nil, FormatJSON, WriteOptions{}); err != nil {
		t.Fatalf("WriteObservations: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("expected empty array, got %q", buf.String())
	}

	buf.Reset()
	if err := WriteObservations(&buf, sampleObservations(), FormatJSON, WriteOptions{}); err != nil {
		t.Fatalf("WriteObservations: %v", err)
	}
	var decoded []models.Observation
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(decoded) != 2 || decoded[0].Previous != models.KnownCount(150) {
		t.Fatalf("unexpected decoded observations: %+v", decoded)
	}
}

func TestWriteTableWithoutColor(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteObservations(&buf, sampleObservations(), FormatTable, WriteOptions{}); err != nil {
		t.Fatalf("WriteObservations: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"observed", "+12", "baseline", "google.com/about/careers"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b") {
		t.Fatalf("table should not contain escape codes without color:\n%q", out)
	}
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteObservations(&buf, nil, FormatMarkdown, WriteOptions{}); err != nil {
		t.Fatalf("WriteObservations: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No observations." {
		t.Fatalf("unexpected empty markdown: %q", buf.String())
	}

	buf.Reset()
	if err := WriteObservations(&buf, sampleObservations()[:1], FormatMarkdown, WriteOptions{}); err != nil {
		t.Fatalf("WriteObservations: %v", err)
	}
	if !strings.Contains(buf.String(), "| 2026-04-01T08:00:00Z | 162 | 150 | +12 | yes |") {
		t.Fatalf("unexpected markdown:\n%s", buf.String())
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"": FormatTable, "CSV": FormatCSV, " md ": FormatMarkdown, "tsv": FormatTSV}
	for input, want := range cases {
		got, err := ParseFormat(input)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", input, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestShortURLLabel(t *testing.T) {
	got := shortURLLabel("https://www.example.com/jobs")
	if got != "example.com/jobs" {
		t.Fatalf("shortURLLabel() = %q", got)
	}
	long := shortURLLabel("https://example.com/" + strings.Repeat("a", 80))
	if len(long) != 40 || !strings.HasSuffix(long, "...") {
		t.Fatalf("expected truncated label, got %q", long)
	}
}
