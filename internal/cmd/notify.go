package cmd

import (
	"github.com/jimezsa/careerwatch/internal/notify"
)

type NotifyCmd struct {
	Test NotifyTestCmd `cmd:"" help:"Send a test email with the current SMTP settings."`
}

type NotifyTestCmd struct{}

func (c *NotifyTestCmd) Run(ctx *Context) error {
	notifier := buildNotifier(ctx, false)
	if err := notifier.Notify(ctx.context(), notify.TestChange(ctx.Config.TargetURL, ctx.now())); err != nil {
		return err
	}
	ctx.UI.Successf("Test email sent to %s via %s:%d", ctx.Config.SMTP.Recipient, ctx.Config.SMTP.Server, ctx.Config.SMTP.Port)
	return nil
}
