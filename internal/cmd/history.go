package cmd

import (
	"errors"

	"github.com/jimezsa/careerwatch/internal/export"
	"github.com/jimezsa/careerwatch/internal/history"
)

type HistoryCmd struct {
	Limit  int    `help:"Maximum number of observations; 0 lists all." default:"20"`
	Format string `help:"Output format: table, csv, tsv, json, md." enum:"table,csv,tsv,json,md" default:"table"`
}

func (h *HistoryCmd) Run(ctx *Context) error {
	if ctx.Config.HistoryDB == "" {
		return errors.New("history is disabled: set history_db or CAREERWATCH_HISTORY_DB")
	}

	format, err := export.ParseFormat(h.Format)
	if err != nil {
		return err
	}
	if ctx.JSONOutput {
		format = export.FormatJSON
	}

	store, err := history.NewSQLiteStore(ctx.context(), ctx.Config.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	observations, err := store.Recent(ctx.context(), h.Limit)
	if err != nil {
		return err
	}

	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled
	return export.WriteObservations(ctx.Out, observations, format, export.WriteOptions{
		ColorEnabled: colorEnabled,
		Hyperlinks:   colorEnabled && isTTY(ctx.Out),
	})
}
