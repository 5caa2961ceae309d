package provisioning

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
	"github.com/purecloudlabs/premium-app-installer/internal/platform/purecloud"
	"github.com/purecloudlabs/premium-app-installer/internal/util/naming"
)

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	Manifest *config.Manifest
	State    *State
	Platform purecloud.PlatformManager
	Observer Observer
	Timeouts *config.Timeouts
	Metrics  *Metrics
}

// NewContext creates a new provisioning context. The observer discards
// output until the caller replaces it.
func NewContext(
	ctx context.Context,
	cfg *config.Config,
	manifest *config.Manifest,
	platform purecloud.PlatformManager,
) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		Manifest: manifest,
		State:    NewState(),
		Platform: platform,
		Observer: NewConsoleObserver(logr.Discard()),
		Timeouts: config.LoadTimeouts(),
		Metrics:  NewMetrics(),
	}
}

// WithContext returns a shallow copy of c bound to ctx. State, Observer and
// Metrics are shared with c.
func (c *Context) WithContext(ctx context.Context) *Context {
	out := *c
	out.Context = ctx
	return &out
}

// FullName returns the platform name of a manifest item.
func (c *Context) FullName(name string) string {
	return naming.Resource(c.Manifest.Prefix, name)
}
