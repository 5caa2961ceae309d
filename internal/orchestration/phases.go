package orchestration

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
)

// preflightPhase resolves who is installing into which org.
type preflightPhase struct {
	skipProductCheck bool
}

func (p *preflightPhase) Name() string { return "preflight" }

func (p *preflightPhase) Provision(ctx *provisioning.Context) error {
	var id provisioning.Identity

	me, err := ctx.Platform.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve installer: %w", err)
	}
	if me != nil {
		id.UserID, id.UserName = me.ID, me.Name
	} else {
		ctx.Observer.Printf("[Preflight] No user context, installer-specific steps will be skipped")
	}

	org, err := ctx.Platform.GetOrganization(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve organization: %w", err)
	}
	if org == nil {
		return fmt.Errorf("failed to resolve organization: empty response")
	}
	id.OrgID, id.OrgName = org.ID, org.Name

	division, err := ctx.Platform.GetHomeDivision(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve home division: %w", err)
	}
	if division != nil {
		id.DivisionID = division.ID
	}

	ctx.State.SetIdentity(id)
	ctx.Observer.Printf("[Preflight] Installing into %s (%s)", org.Name, org.ID)

	productID := ctx.Manifest.ProductID
	if p.skipProductCheck || productID == "" {
		return nil
	}
	owned, err := ctx.Platform.HasProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to check product %s: %w", productID, err)
	}
	if !owned {
		return fmt.Errorf("%w: %s", ErrProductNotOwned, productID)
	}
	return nil
}

// createPhase runs Create on each module in order. A module sees the
// resources of every module before it.
type createPhase struct {
	modules []provisioning.Module
}

func (p *createPhase) Name() string { return "create" }

func (p *createPhase) Provision(ctx *provisioning.Context) error {
	for _, mod := range p.modules {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		resources, err := mod.Create(ctx)
		ctx.Metrics.ObserveModule(mod.Category(), "create", time.Since(start))
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", mod.Category(), err)
		}
		if len(resources) > 0 {
			ctx.Observer.Printf("[Create] %s: %d ready", mod.Category(), len(resources))
		}
	}
	return nil
}

// configurePhase runs Configure on every module concurrently. The first
// failure cancels the modules still running.
type configurePhase struct {
	modules []provisioning.Module
}

func (p *configurePhase) Name() string { return "configure" }

func (p *configurePhase) Provision(ctx *provisioning.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	child := ctx.WithContext(gctx)
	for _, mod := range p.modules {
		g.Go(func() error {
			start := time.Now()
			err := mod.Configure(child)
			ctx.Metrics.ObserveModule(mod.Category(), "configure", time.Since(start))
			if err != nil {
				return fmt.Errorf("failed to configure %s: %w", mod.Category(), err)
			}
			return nil
		})
	}
	return g.Wait()
}
