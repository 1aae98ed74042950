package cmd

import (
	"math/rand"
	"time"

	"github.com/jimezsa/careerwatch/internal/history"
	"github.com/jimezsa/careerwatch/internal/metrics"
	"github.com/jimezsa/careerwatch/internal/monitor"
	"github.com/jimezsa/careerwatch/internal/network"
	"github.com/jimezsa/careerwatch/internal/notify"
	"github.com/jimezsa/careerwatch/internal/scraper"
	"github.com/jimezsa/careerwatch/internal/state"
)

func buildFetcher(ctx *Context) (monitor.Fetcher, error) {
	if ctx.Fetcher != nil {
		return ctx.Fetcher, nil
	}
	client, err := newNetworkClient(ctx, ctx.Config.Proxies, ctx.Config.FetchTimeout())
	if err != nil {
		return nil, err
	}
	return scraper.NewFetcher(client, ctx.Config.FetchTimeout(), ctx.Logger), nil
}

func newNetworkClient(ctx *Context, proxies []string, timeout time.Duration) (*network.Client, error) {
	var rotator *network.Rotator
	if len(proxies) > 0 {
		var err error
		rotator, err = network.NewRotator(proxies, rand.New(rand.NewSource(ctx.now().UnixNano())))
		if err != nil {
			return nil, err
		}
	}
	return network.NewClient(network.Options{
		Timeout:   timeout,
		UserAgent: ctx.Config.UserAgent,
		Rotator:   rotator,
	})
}

func buildNotifier(ctx *Context, dryRun bool) notify.Notifier {
	if ctx.Notifier != nil {
		return ctx.Notifier
	}
	if dryRun {
		return notify.NewLogNotifier(ctx.Logger)
	}
	return notify.NewSMTPNotifier(ctx.Config.SMTP, ctx.Config.SMTPTimeout(), ctx.Logger)
}

// openHistory never fails: a broken history db only costs the history.
func openHistory(ctx *Context) history.Store {
	store, err := history.Open(ctx.context(), ctx.Config.HistoryDB)
	if err != nil {
		ctx.Logger.Warn().Err(err).Str("path", ctx.Config.HistoryDB).Msg("history disabled")
		return history.NopStore{}
	}
	return store
}

func buildMonitor(ctx *Context, dryRun bool) (*monitor.Monitor, func() error, error) {
	fetcher, err := buildFetcher(ctx)
	if err != nil {
		return nil, nil, err
	}

	opts := monitor.Options{
		Target:    ctx.Config.Target(),
		Fetcher:   fetcher,
		Extractor: scraper.NewSelectorExtractor(ctx.Logger),
		Store:     state.NewFileStore(ctx.Config.StateFile),
		Notifier:  buildNotifier(ctx, dryRun),
		Logger:    ctx.Logger,
		DryRun:    dryRun,
		Now:       ctx.now,
	}

	closer := func() error { return nil }
	if !dryRun {
		store := openHistory(ctx)
		opts.History = store
		closer = store.Close
		if ctx.Config.MetricsFile != "" {
			opts.Metrics = metrics.NewTextfileWriter(ctx.Config.MetricsFile)
		}
	}
	return monitor.New(opts), closer, nil
}
