package notify

import (
	"context"

	"github.com/rs/zerolog"
)

var _ Notifier = (*LogNotifier)(nil)

// LogNotifier writes changes to the log instead of sending mail.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, change Change) error {
	event := n.logger.Info().
		Str("url", change.URL).
		Str("previous", change.Previous.String()).
		Int("current", change.Current).
		Str("subject", Subject(change))
	if delta, ok := change.Previous.Delta(change.Current); ok {
		event = event.Int("delta", delta)
	}
	event.Msg("job count change")
	return nil
}
