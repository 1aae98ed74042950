package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/jimezsa/careerwatch/internal/models"
	"github.com/jimezsa/careerwatch/internal/state"
)

type StateCmd struct {
	Show  StateShowCmd  `cmd:"" help:"Print the stored job count."`
	Set   StateSetCmd   `cmd:"" help:"Overwrite the stored job count."`
	Reset StateResetCmd `cmd:"" help:"Delete the state file; the next run sends a baseline alert."`
}

type StateShowCmd struct{}

type StateSetCmd struct {
	Count int `arg:"" help:"Job count to store."`
}

type StateResetCmd struct{}

func (c *StateShowCmd) Run(ctx *Context) error {
	store := state.NewFileStore(ctx.Config.StateFile)
	count, err := store.ReadPrevious()
	if err != nil {
		return err
	}

	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Path  string `json:"path"`
			Count any    `json:"count"`
		}{Path: store.Path(), Count: countValue(count)})
	}
	_, err = fmt.Fprintf(ctx.Out, "%s\t%s\n", store.Path(), count)
	return err
}

func (c *StateSetCmd) Run(ctx *Context) error {
	store := state.NewFileStore(ctx.Config.StateFile)
	if err := store.WriteCurrent(c.Count); err != nil {
		return err
	}
	ctx.Logger.Info().Str("path", store.Path()).Int("count", c.Count).Msg("state overwritten")
	ctx.UI.Successf("Stored %d in %s", c.Count, store.Path())
	return nil
}

func (c *StateResetCmd) Run(ctx *Context) error {
	store := state.NewFileStore(ctx.Config.StateFile)
	if err := store.Reset(); err != nil {
		return err
	}
	ctx.Logger.Info().Str("path", store.Path()).Msg("state reset")
	ctx.UI.Successf("Removed %s", store.Path())
	return nil
}

func countValue(count models.Count) any {
	if !count.Known {
		return nil
	}
	return count.Value
}
