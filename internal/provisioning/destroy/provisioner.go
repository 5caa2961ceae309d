package destroy

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/purecloudlabs/premium-app-installer/internal/platform/purecloud"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
	"github.com/purecloudlabs/premium-app-installer/internal/util/async"
)

const phaseName = "uninstall"

// Options tune an uninstall run.
type Options struct {
	// DryRun lists what would be deleted without deleting anything.
	DryRun bool
	// Sweep deletes every prefixed resource through the platform, including
	// categories the manifest no longer lists. With DryRun the modules are
	// still used to list what is present.
	Sweep bool
}

// Provisioner handles installation teardown.
type Provisioner struct {
	modules []provisioning.Module
	opts    Options

	mu      sync.Mutex
	planned []provisioning.Resource
	removed []provisioning.Resource
}

// NewProvisioner creates a destroy provisioner. modules must already be in
// uninstall order.
func NewProvisioner(modules []provisioning.Module, opts Options) *Provisioner {
	return &Provisioner{modules: modules, opts: opts}
}

// Name implements provisioning.Phase.
func (p *Provisioner) Name() string {
	return phaseName
}

// Planned returns every resource found present, in uninstall order.
func (p *Provisioner) Planned() []provisioning.Resource {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]provisioning.Resource(nil), p.planned...)
}

// Removed returns every resource that was deleted.
func (p *Provisioner) Removed() []provisioning.Resource {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]provisioning.Resource(nil), p.removed...)
}

// Provision removes the installation.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	prefix := ctx.Manifest.Prefix
	if prefix == "" {
		return purecloud.ErrEmptyPrefix
	}

	if p.opts.Sweep && !p.opts.DryRun {
		ctx.Observer.Printf("[Uninstall] Sweeping every resource prefixed %q", prefix)
		if err := ctx.Platform.CleanupByPrefix(ctx, prefix); err != nil {
			return fmt.Errorf("failed to sweep prefix %q: %w", prefix, err)
		}
		return nil
	}

	ctx.Observer.Printf("[Uninstall] Removing resources prefixed %q", prefix)
	cleanupErrs := &purecloud.CleanupError{}
	for _, mod := range p.modules {
		if err := ctx.Err(); err != nil {
			cleanupErrs.Add(err)
			break
		}
		cleanupErrs.Add(p.removeModule(ctx, mod))
	}

	if cleanupErrs.HasErrors() {
		return cleanupErrs
	}
	if p.opts.DryRun {
		ctx.Observer.Printf("[Uninstall] Dry run: %d resources would be deleted", len(p.Planned()))
	}
	return nil
}

func (p *Provisioner) removeModule(ctx *provisioning.Context, mod provisioning.Module) error {
	category := mod.Category()
	start := time.Now()
	defer func() { ctx.Metrics.ObserveModule(category, "remove", time.Since(start)) }()

	existing, err := mod.GetExisting(ctx)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", category, err)
	}

	p.mu.Lock()
	p.planned = append(p.planned, existing...)
	p.mu.Unlock()

	if p.opts.DryRun {
		for _, r := range existing {
			ctx.Observer.Printf("[Uninstall] would delete %s %q (%s)", category, r.FullName, r.ID)
		}
		return nil
	}

	tasks := make([]async.Task, 0, len(existing))
	for _, r := range existing {
		tasks = append(tasks, async.Task{
			Name: fmt.Sprintf("%s %q", category, r.FullName),
			Func: func(c context.Context) error {
				return p.remove(ctx.WithContext(c), mod, r)
			},
		})
	}

	limit := 0
	if ctx.Timeouts != nil {
		limit = ctx.Timeouts.Concurrency
	}
	return async.RunParallelLimit(ctx, tasks, limit)
}

func (p *Provisioner) remove(ctx *provisioning.Context, mod provisioning.Module, r provisioning.Resource) error {
	if ctx.Timeouts != nil && ctx.Timeouts.Delete > 0 {
		c, cancel := context.WithTimeout(ctx, ctx.Timeouts.Delete)
		defer cancel()
		ctx = ctx.WithContext(c)
	}

	provisioning.LogResourceDeleting(ctx.Observer, phaseName, r)
	err := mod.Remove(ctx, r)
	ctx.Metrics.RecordResource(r.Category, "remove", err)
	if err != nil {
		provisioning.LogResourceFailed(ctx.Observer, phaseName, r.Category, r.Name, err)
		return err
	}
	provisioning.LogResourceDeleted(ctx.Observer, phaseName, r)

	p.mu.Lock()
	p.removed = append(p.removed, r)
	p.mu.Unlock()
	return nil
}
