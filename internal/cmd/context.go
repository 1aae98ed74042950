package cmd

import (
	"context"
	"io"
	"time"

	"github.com/jimezsa/careerwatch/internal/config"
	"github.com/jimezsa/careerwatch/internal/monitor"
	"github.com/jimezsa/careerwatch/internal/notify"
	"github.com/jimezsa/careerwatch/internal/ui"
	"github.com/rs/zerolog"
)

type Context struct {
	Ctx        context.Context
	Out        io.Writer
	Err        io.Writer
	UI         *ui.UI
	Config     config.Config
	ConfigPath string
	Logger     zerolog.Logger
	Verbose    bool
	JSONOutput bool
	Version    string
	ColorMode  ui.ColorMode

	// Fetcher and Notifier replace the ones built from Config when set.
	Fetcher  monitor.Fetcher
	Notifier notify.Notifier
	Now      func() time.Time
}

func (c *Context) context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

func (c *Context) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
