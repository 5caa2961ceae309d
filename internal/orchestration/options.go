package orchestration

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
	"github.com/purecloudlabs/premium-app-installer/internal/platform/purecloud"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
	"github.com/purecloudlabs/premium-app-installer/internal/report"
)

// ReportStore keeps install reports in object storage.
type ReportStore interface {
	Upload(ctx context.Context, r *report.Report) (string, error)
	DeleteAll(ctx context.Context, prefix string) ([]string, error)
}

// StoreFactory connects to the report bucket.
type StoreFactory func(ctx context.Context, cfg *config.S3Config) (ReportStore, error)

func newS3Store(ctx context.Context, cfg *config.S3Config) (ReportStore, error) {
	return report.NewStore(ctx, cfg)
}

// Option customizes an Installer or Uninstaller.
type Option func(*settings)

// WithObserver sets the observer that receives progress events.
func WithObserver(o provisioning.Observer) Option {
	return func(s *settings) { s.observer = o }
}

// WithMetrics sets the metrics the run records into.
func WithMetrics(m *provisioning.Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

// WithTimeouts overrides the timeouts loaded from the environment.
func WithTimeouts(t *config.Timeouts) Option {
	return func(s *settings) { s.timeouts = t }
}

// WithReportStore replaces the S3 report store.
func WithReportStore(f StoreFactory) Option {
	return func(s *settings) { s.newStore = f }
}

// WithHook registers a finally hook after the built-in ones.
func WithHook(h Hook) Option {
	return func(s *settings) { s.hooks = append(s.hooks, h) }
}

// settings holds what Installer and Uninstaller share.
type settings struct {
	platform purecloud.PlatformManager
	config   *config.Config
	manifest *config.Manifest

	observer provisioning.Observer
	metrics  *provisioning.Metrics
	timeouts *config.Timeouts
	newStore StoreFactory
	hooks    []Hook
}

func newSettings(platform purecloud.PlatformManager, cfg *config.Config, m *config.Manifest, opts []Option) settings {
	s := settings{
		platform: platform,
		config:   cfg,
		manifest: m,
		observer: provisioning.NewConsoleObserver(logr.Discard()),
		metrics:  provisioning.NewMetrics(),
		timeouts: config.LoadTimeouts(),
		newStore: newS3Store,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s *settings) newContext(ctx context.Context) *provisioning.Context {
	pctx := provisioning.NewContext(ctx, s.config, s.manifest, s.platform)
	pctx.Observer = s.observer
	pctx.Metrics = s.metrics
	pctx.Timeouts = s.timeouts
	return pctx
}

// runTimeout bounds ctx by the install timeout, if one is set.
func (s *settings) runTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeouts != nil && s.timeouts.Install > 0 {
		return context.WithTimeout(ctx, s.timeouts.Install)
	}
	return context.WithCancel(ctx)
}
