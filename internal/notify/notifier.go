package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jimezsa/careerwatch/internal/models"
)

var ErrIncompleteConfig = errors.New("smtp configuration incomplete")

// Change describes a count transition worth telling someone about.
type Change struct {
	Previous   models.Count
	Current    int
	URL        string
	ObservedAt time.Time
	// Test marks a connectivity check rather than a real change.
	Test bool
}

// Notifier delivers a Change. Implementations must be safe to call once per run.
type Notifier interface {
	Notify(ctx context.Context, change Change) error
}

// NotificationError reports a failed delivery. It never carries credentials.
type NotificationError struct {
	Host string
	Err  error
}

func (e *NotificationError) Error() string {
	if e.Host == "" {
		return fmt.Sprintf("notify: %v", e.Err)
	}
	return fmt.Sprintf("notify via %s: %v", e.Host, e.Err)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}

// TestChange builds the change sent by "notify test".
func TestChange(url string, now time.Time) Change {
	return Change{URL: url, ObservedAt: now, Test: true}
}
