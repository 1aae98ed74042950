package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jimezsa/careerwatch/internal/models"
	"github.com/muesli/termenv"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
)

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
}

const (
	increaseColor = "2"
	decreaseColor = "1"
	linkColor     = "#87CEEB"
)

func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatTSV:
		return FormatTSV, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatMarkdown:
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown format %q", value)
	}
}

func WriteObservations(w io.Writer, observations []models.Observation, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, observations)
	case FormatCSV:
		return writeCSV(w, observations, ',')
	case FormatTSV:
		return writeCSV(w, observations, '\t')
	case FormatMarkdown:
		return writeMarkdown(w, observations)
	default:
		return writeTable(w, observations, opts)
	}
}

func writeJSON(w io.Writer, observations []models.Observation) error {
	if observations == nil {
		observations = []models.Observation{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(observations)
}

func writeCSV(w io.Writer, observations []models.Observation, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write(csvHeader()); err != nil {
		return err
	}
	for _, obs := range observations {
		if err := writer.Write(csvRow(obs)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTable(w io.Writer, observations []models.Observation, opts WriteOptions) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(tableHeader(), "\t"))
	output := termenv.NewOutput(w)
	for _, obs := range observations {
		fmt.Fprintln(tw, strings.Join(tableRow(obs, output, opts), "\t"))
	}
	return tw.Flush()
}

func writeMarkdown(w io.Writer, observations []models.Observation) error {
	if len(observations) == 0 {
		_, err := fmt.Fprintln(w, "No observations.")
		return err
	}
	lines := []string{
		"| Observed | Count | Previous | Change | Notified | Page |",
		"|---|---|---|---|---|---|",
	}
	for _, obs := range observations {
		page := "-"
		if link := strings.TrimSpace(obs.URL); link != "" {
			page = fmt.Sprintf("[%s](<%s>)", shortURLLabel(link), link)
		}
		lines = append(lines, fmt.Sprintf("| %s | %d | %s | %s | %s | %s |",
			obs.ObservedAt.Format(time.RFC3339),
			obs.Count,
			obs.Previous,
			deltaString(obs),
			yesNo(obs.Notified),
			page,
		))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func csvHeader() []string {
	return []string{
		"observed_at",
		"url",
		"selector",
		"count",
		"previous",
		"delta",
		"changed",
		"notified",
	}
}

func csvRow(obs models.Observation) []string {
	previous := ""
	if obs.Previous.Known {
		previous = strconv.Itoa(obs.Previous.Value)
	}
	delta := ""
	if d, ok := obs.Delta(); ok {
		delta = strconv.Itoa(d)
	}
	return []string{
		obs.ObservedAt.Format(time.RFC3339),
		obs.URL,
		obs.Selector,
		strconv.Itoa(obs.Count),
		previous,
		delta,
		strconv.FormatBool(obs.Changed),
		strconv.FormatBool(obs.Notified),
	}
}

func tableHeader() []string {
	return []string{
		"observed",
		"count",
		"previous",
		"change",
		"notified",
		"page",
	}
}

func tableRow(obs models.Observation, output *termenv.Output, opts WriteOptions) []string {
	change := deltaString(obs)
	if opts.ColorEnabled {
		if d, ok := obs.Delta(); ok && d != 0 {
			color := increaseColor
			if d < 0 {
				color = decreaseColor
			}
			change = output.String(change).Foreground(output.Color(color)).String()
		}
	}

	page := "-"
	if link := strings.TrimSpace(obs.URL); link != "" {
		page = shortURLLabel(link)
		if opts.ColorEnabled {
			page = output.String(page).Foreground(output.Color(linkColor)).String()
		}
		if opts.Hyperlinks {
			page = hyperlink(link, page)
		}
	}

	return []string{
		obs.ObservedAt.Local().Format("2006-01-02 15:04"),
		strconv.Itoa(obs.Count),
		obs.Previous.String(),
		change,
		yesNo(obs.Notified),
		page,
	}
}

func deltaString(obs models.Observation) string {
	d, ok := obs.Delta()
	if !ok {
		return "baseline"
	}
	return models.SignedDelta(d)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func hyperlink(url string, text string) string {
	const esc = "\x1b"
	return esc + "]8;;" + url + esc + "\\" + text + esc + "]8;;" + esc + "\\"
}

func shortURLLabel(raw string) string {
	const maxLen = 40
	label := strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil {
		host := strings.TrimPrefix(parsed.Host, "www.")
		if host != "" {
			label = host + parsed.Path
		}
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = raw
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}
	return label
}
