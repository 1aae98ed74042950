package monitor

import (
	"context"
	"errors"
	"time"

	"github.com/jimezsa/careerwatch/internal/models"
	"github.com/jimezsa/careerwatch/internal/notify"
	"github.com/jimezsa/careerwatch/internal/scraper"
	"github.com/rs/zerolog"
)

type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type Store interface {
	ReadPrevious() (models.Count, error)
	WriteCurrent(count int) error
}

// Recorder keeps a log of observations. Failures are never fatal to a run.
type Recorder interface {
	Record(ctx context.Context, obs models.Observation) error
}

// MetricsWriter publishes the outcome of a run, successful or not.
type MetricsWriter interface {
	WriteRun(obs models.Observation, runErr error) error
}

type Options struct {
	Target    models.Target
	Fetcher   Fetcher
	Extractor scraper.Extractor
	Store     Store
	Notifier  notify.Notifier
	History   Recorder
	Metrics   MetricsWriter
	Logger    zerolog.Logger
	// DryRun skips persistence, history and metrics.
	DryRun bool
	Now    func() time.Time
}

// Monitor runs one fetch, extract, compare, notify, persist pass.
type Monitor struct {
	opts  Options
	phase Phase
}

func New(opts Options) *Monitor {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Monitor{opts: opts}
}

// Phase reports the phase the last pass ended in.
func (m *Monitor) Phase() Phase {
	return m.phase
}

// ShouldNotify is true when the previous count is unknown or differs from current.
func ShouldNotify(previous models.Count, current int) bool {
	return previous.Differs(current)
}

// Run performs a full pass. Fetch, extraction and state errors abort it and
// leave the stored count untouched. Notification errors are logged only.
func (m *Monitor) Run(ctx context.Context) (models.Observation, error) {
	obs, err := m.observe(ctx)
	if err != nil {
		m.writeMetrics(obs, err)
		return obs, err
	}

	if obs.Changed {
		m.enter(PhaseNotifying)
		obs.Notified = m.notify(ctx, obs)
	} else {
		m.opts.Logger.Info().
			Int("count", obs.Count).
			Msg("job count unchanged")
	}

	if m.opts.DryRun {
		m.opts.Logger.Info().Int("count", obs.Count).Msg("dry run, state not written")
		m.enter(PhaseDone)
		return obs, nil
	}

	m.enter(PhasePersisting)
	if err := m.opts.Store.WriteCurrent(obs.Count); err != nil {
		m.fail(err)
		m.writeMetrics(obs, err)
		return obs, err
	}

	if m.opts.History != nil {
		if err := m.opts.History.Record(ctx, obs); err != nil {
			m.opts.Logger.Warn().Err(err).Msg("history record failed")
		}
	}
	m.writeMetrics(obs, nil)

	m.enter(PhaseDone)
	return obs, nil
}

// Check fetches, extracts and compares without notifying or persisting.
func (m *Monitor) Check(ctx context.Context) (models.Observation, error) {
	obs, err := m.observe(ctx)
	if err != nil {
		return obs, err
	}
	m.enter(PhaseDone)
	return obs, nil
}

func (m *Monitor) observe(ctx context.Context) (models.Observation, error) {
	target := m.opts.Target
	obs := models.Observation{URL: target.URL, Selector: target.Selector}

	m.enter(PhaseFetching)
	content, err := m.opts.Fetcher.Fetch(ctx, target.URL)
	if err != nil {
		m.fail(err)
		return obs, err
	}

	m.enter(PhaseExtracting)
	count, err := m.opts.Extractor.Extract(content, target)
	if err != nil {
		m.fail(err)
		return obs, err
	}
	obs.Count = count
	obs.ObservedAt = m.opts.Now()

	m.enter(PhaseComparing)
	previous, err := m.opts.Store.ReadPrevious()
	if err != nil {
		m.fail(err)
		return obs, err
	}
	obs.Previous = previous
	obs.Changed = ShouldNotify(previous, count)

	m.opts.Logger.Info().
		Str("url", target.URL).
		Str("previous", previous.String()).
		Int("count", count).
		Bool("changed", obs.Changed).
		Msg("job count observed")
	return obs, nil
}

func (m *Monitor) notify(ctx context.Context, obs models.Observation) bool {
	change := notify.Change{
		Previous:   obs.Previous,
		Current:    obs.Count,
		URL:        obs.URL,
		ObservedAt: obs.ObservedAt,
	}
	err := m.opts.Notifier.Notify(ctx, change)
	switch {
	case err == nil:
		return true
	case errors.Is(err, notify.ErrIncompleteConfig):
		m.opts.Logger.Warn().Err(err).Msg("email skipped")
	default:
		m.opts.Logger.Error().Err(err).Msg("notification failed")
	}
	return false
}

func (m *Monitor) writeMetrics(obs models.Observation, runErr error) {
	if m.opts.Metrics == nil || m.opts.DryRun {
		return
	}
	if err := m.opts.Metrics.WriteRun(obs, runErr); err != nil {
		m.opts.Logger.Warn().Err(err).Msg("metrics write failed")
	}
}

func (m *Monitor) enter(phase Phase) {
	m.phase = phase
	m.opts.Logger.Debug().Str("phase", phase.String()).Msg("phase")
}

func (m *Monitor) fail(err error) {
	m.opts.Logger.Error().
		Err(err).
		Str("phase", m.phase.String()).
		Str("url", m.opts.Target.URL).
		Str("selector", m.opts.Target.Selector).
		Msg("run failed")
	m.phase = PhaseFailed
}
