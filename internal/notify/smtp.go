package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jimezsa/careerwatch/internal/config"
	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

// implicitTLSPort is the submission port that expects TLS from the first byte.
const implicitTLSPort = 465

var _ Notifier = (*SMTPNotifier)(nil)

// SMTPNotifier sends one email per change over an authenticated SMTP session.
type SMTPNotifier struct {
	cfg     config.SMTPConfig
	timeout time.Duration
	logger  zerolog.Logger
}

func NewSMTPNotifier(cfg config.SMTPConfig, timeout time.Duration, logger zerolog.Logger) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, timeout: timeout, logger: logger}
}

func (n *SMTPNotifier) Notify(ctx context.Context, change Change) error {
	if missing := n.cfg.Missing(); len(missing) > 0 {
		return &NotificationError{
			Host: n.cfg.Server,
			Err:  fmt.Errorf("%w: missing %s", ErrIncompleteConfig, strings.Join(missing, ", ")),
		}
	}

	msg, err := n.buildMessage(change)
	if err != nil {
		return &NotificationError{Host: n.cfg.Server, Err: err}
	}

	client, err := mail.NewClient(n.cfg.Server, n.clientOptions()...)
	if err != nil {
		return &NotificationError{Host: n.cfg.Server, Err: err}
	}

	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return &NotificationError{Host: n.cfg.Server, Err: err}
	}

	n.logger.Info().
		Str("smtp_host", n.cfg.Server).
		Int("smtp_port", n.cfg.Port).
		Str("recipient", n.cfg.Recipient).
		Str("subject", Subject(change)).
		Msg("email alert sent")
	return nil
}

func (n *SMTPNotifier) buildMessage(change Change) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(n.cfg.Sender); err != nil {
		return nil, fmt.Errorf("sender address: %w", err)
	}
	if err := msg.To(n.cfg.Recipient); err != nil {
		return nil, fmt.Errorf("recipient address: %w", err)
	}
	msg.Subject(Subject(change))
	msg.SetDate()
	msg.SetMessageID()

	htmlText, err := HTMLBody(change)
	if err != nil {
		return nil, fmt.Errorf("render html body: %w", err)
	}
	msg.SetBodyString(mail.TypeTextPlain, PlainBody(change))
	msg.AddAlternativeString(mail.TypeTextHTML, htmlText)
	return msg, nil
}

// clientOptions picks implicit TLS on port 465 and mandatory STARTTLS elsewhere.
func (n *SMTPNotifier) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(n.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthAutoDiscover),
		mail.WithUsername(n.cfg.Sender),
		mail.WithPassword(n.cfg.Password),
	}
	if n.timeout > 0 {
		opts = append(opts, mail.WithTimeout(n.timeout))
	}
	if n.cfg.Port == implicitTLSPort {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}
	return opts
}
