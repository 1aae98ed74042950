package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jimezsa/careerwatch/internal/config"
)

type ConfigCmd struct {
	Init InitConfigCmd `cmd:"" help:"Write the default config file."`
	Path PathConfigCmd `cmd:"" help:"Print the config file path."`
	Show ShowConfigCmd `cmd:"" help:"Print the effective config with secrets redacted."`
}

type InitConfigCmd struct{}

type PathConfigCmd struct{}

type ShowConfigCmd struct{}

func (c *InitConfigCmd) Run(ctx *Context) error {
	paths, err := config.Init(ctx.ConfigPath)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		ctx.UI.Infof("Config already initialized at %s", ctx.ConfigPath)
		return nil
	}
	ctx.UI.Infof("Created: %s", strings.Join(paths, ", "))
	return nil
}

func (c *PathConfigCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintln(ctx.Out, ctx.ConfigPath)
	return err
}

func (c *ShowConfigCmd) Run(ctx *Context) error {
	redacted := ctx.Config.Redacted()
	view := struct {
		config.Config
		SMTP config.SMTPConfig `json:"smtp"`
	}{Config: redacted, SMTP: redacted.SMTP}

	enc := json.NewEncoder(ctx.Out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(view); err != nil {
		return err
	}
	if missing := ctx.Config.SMTP.Missing(); len(missing) > 0 && !ctx.JSONOutput {
		ctx.UI.Warnf("Email disabled, missing: %s", strings.Join(missing, ", "))
	}
	return nil
}
