package notify

import (
	"bytes"
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/jimezsa/careerwatch/internal/config"
	"github.com/jimezsa/careerwatch/internal/models"
	"github.com/rs/zerolog"
)

func TestSMTPNotifierIncompleteConfig(t *testing.T) {
	notifier := NewSMTPNotifier(config.SMTPConfig{Server: "smtp.example.com", Port: 587, Sender: "bot@example.com"}, time.Second, zerolog.Nop())

	err := notifier.Notify(context.Background(), Change{Current: 1})
	if !errors.Is(err, ErrIncompleteConfig) {
		t.Fatalf("expected ErrIncompleteConfig, got %v", err)
	}
	var notifyErr *NotificationError
	if !errors.As(err, &notifyErr) {
		t.Fatalf("expected NotificationError, got %T", err)
	}
	if !strings.Contains(err.Error(), "SENDER_PASSWORD") || !strings.Contains(err.Error(), "RECIPIENT_EMAIL") {
		t.Fatalf("error should list missing variables: %v", err)
	}
}

func TestSMTPNotifierConnectionRefused(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	cfg := config.SMTPConfig{
		Server:    "127.0.0.1",
		Port:      port,
		Sender:    "bot@example.com",
		Password:  "hunter2",
		Recipient: "me@example.com",
	}
	notifier := NewSMTPNotifier(cfg, 2*time.Second, zerolog.Nop())

	err = notifier.Notify(context.Background(), Change{Previous: models.KnownCount(1), Current: 2})
	var notifyErr *NotificationError
	if !errors.As(err, &notifyErr) {
		t.Fatalf("expected NotificationError, got %v", err)
	}
	if notifyErr.Host != "127.0.0.1" {
		t.Fatalf("Host = %q", notifyErr.Host)
	}
	if strings.Contains(err.Error(), "hunter2") {
		t.Fatalf("error leaks password: %v", err)
	}
}

func TestSMTPNotifierBuildMessage(t *testing.T) {
	cfg := config.SMTPConfig{
		Server:    "smtp.example.com",
		Port:      587,
		Sender:    "bot@example.com",
		Password:  "hunter2",
		Recipient: "me@example.com",
	}
	notifier := NewSMTPNotifier(cfg, time.Second, zerolog.Nop())

	msg, err := notifier.buildMessage(Change{Previous: models.KnownCount(150), Current: 162, URL: "https://careers.example.com"})
	if err != nil {
		t.Fatalf("buildMessage() error = %v", err)
	}

	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	raw := buf.String()
	for _, want := range []string{"Careers Alert: Job Count Changed (+12)", "me@example.com", "text/html"} {
		if !strings.Contains(raw, want) {
			t.Fatalf("message missing %q", want)
		}
	}
	if strings.Contains(raw, "hunter2") {
		t.Fatalf("message leaks password")
	}
}

func TestSMTPNotifierRejectsBadAddress(t *testing.T) {
	cfg := config.SMTPConfig{Server: "smtp.example.com", Port: 587, Sender: "not an address", Password: "x", Recipient: "me@example.com"}
	err := NewSMTPNotifier(cfg, time.Second, zerolog.Nop()).Notify(context.Background(), Change{Current: 1})
	var notifyErr *NotificationError
	if !errors.As(err, &notifyErr) {
		t.Fatalf("expected NotificationError, got %v", err)
	}
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	notifier := NewLogNotifier(zerolog.New(&buf))

	if err := notifier.Notify(context.Background(), Change{Previous: models.KnownCount(150), Current: 162}); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"delta":12`) || !strings.Contains(out, `"previous":"150"`) {
		t.Fatalf("unexpected log output: %s", out)
	}
}
