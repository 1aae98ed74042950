package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/jimezsa/careerwatch/internal/models"
)

const timeLayout = "2006-01-02 15:04:05 MST"

func Subject(change Change) string {
	if change.Test {
		return "Careers Alert: Test Notification"
	}
	delta, ok := change.Previous.Delta(change.Current)
	if !ok {
		return fmt.Sprintf("Careers Alert: Baseline Job Count %d", change.Current)
	}
	return fmt.Sprintf("Careers Alert: Job Count Changed (%s)", models.SignedDelta(delta))
}

func PlainBody(change Change) string {
	var b strings.Builder
	b.WriteString("Careers Page Monitoring Alert\n\n")

	switch {
	case change.Test:
		b.WriteString("This is a test message. Mail delivery is configured correctly.\n")
	case !change.Previous.Known:
		b.WriteString("First observation recorded:\n")
		fmt.Fprintf(&b, "- Previous count: %s\n", change.Previous)
		fmt.Fprintf(&b, "- Current count: %d\n", change.Current)
	default:
		delta, _ := change.Previous.Delta(change.Current)
		b.WriteString("Job count has changed:\n")
		fmt.Fprintf(&b, "- Previous count: %d\n", change.Previous.Value)
		fmt.Fprintf(&b, "- Current count: %d\n", change.Current)
		fmt.Fprintf(&b, "- Change: %s jobs\n", models.SignedDelta(delta))
	}

	fmt.Fprintf(&b, "\nTime: %s\n", change.ObservedAt.Format(timeLayout))
	fmt.Fprintf(&b, "\nView jobs: %s\n", change.URL)
	b.WriteString("\nThis is an automated alert from careerwatch.\n")
	return b.String()
}

var htmlBody = template.Must(template.New("alert").Parse(`<!doctype html>
<html>
<body style="font-family: sans-serif;">
<h2>Careers Page Monitoring Alert</h2>
{{if .Test}}<p>This is a test message. Mail delivery is configured correctly.</p>
{{else}}<table cellpadding="4">
<tr><td>Previous count</td><td><b>{{.Previous}}</b></td></tr>
<tr><td>Current count</td><td><b>{{.Current}}</b></td></tr>
{{if .HasDelta}}<tr><td>Change</td><td><b>{{.Delta}}</b></td></tr>{{end}}
</table>
{{end}}<p>Time: {{.Time}}</p>
<p><a href="{{.URL}}">View jobs</a></p>
<p style="color: #888;">This is an automated alert from careerwatch.</p>
</body>
</html>
`))

func HTMLBody(change Change) (string, error) {
	delta, hasDelta := change.Previous.Delta(change.Current)
	data := struct {
		Test     bool
		Previous string
		Current  int
		HasDelta bool
		Delta    string
		Time     string
		URL      string
	}{
		Test:     change.Test,
		Previous: change.Previous.String(),
		Current:  change.Current,
		HasDelta: hasDelta,
		Delta:    models.SignedDelta(delta),
		Time:     change.ObservedAt.Format(timeLayout),
		URL:      change.URL,
	}

	var buf bytes.Buffer
	if err := htmlBody.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
