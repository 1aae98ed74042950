package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/jimezsa/careerwatch/internal/models"
)

type RunCmd struct {
	DryRun bool `help:"Log the notification instead of sending it and do not write state."`
}

func (r *RunCmd) Run(ctx *Context) error {
	if err := ctx.Config.Validate(); err != nil {
		return err
	}

	mon, closeHistory, err := buildMonitor(ctx, r.DryRun)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeHistory(); err != nil {
			ctx.Logger.Warn().Err(err).Msg("closing history")
		}
	}()

	obs, err := mon.Run(ctx.context())
	if err != nil {
		return err
	}
	return writeObservation(ctx, obs)
}

type CheckCmd struct{}

func (c *CheckCmd) Run(ctx *Context) error {
	if err := ctx.Config.Validate(); err != nil {
		return err
	}

	mon, _, err := buildMonitor(ctx, true)
	if err != nil {
		return err
	}
	obs, err := mon.Check(ctx.context())
	if err != nil {
		return err
	}
	return writeObservation(ctx, obs)
}

func writeObservation(ctx *Context, obs models.Observation) error {
	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(obs)
	}

	line := fmt.Sprintf("Job count: %d (previous %s, change %s)", obs.Count, obs.Previous, ctx.UI.DeltaText(obs.Previous, obs.Count))
	switch {
	case !obs.Changed:
		ctx.UI.Infof("%s", line)
	case obs.Notified:
		ctx.UI.Successf("%s, alert sent", line)
	default:
		ctx.UI.Warnf("%s, no alert sent", line)
	}
	return nil
}
