package modules

import (
	"context"
	"fmt"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
	"github.com/purecloudlabs/premium-app-installer/internal/platform/purecloud"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
	"github.com/purecloudlabs/premium-app-installer/internal/util/async"
	"github.com/purecloudlabs/premium-app-installer/internal/util/naming"
)

const (
	phaseCreate    = "create"
	phaseConfigure = "configure"
)

// ensureAll ensures every item concurrently, bounded by the configured
// concurrency, and registers each result in ctx.State. Results are returned
// in manifest order. A failing item does not stop its siblings.
func ensureAll[T any](
	ctx *provisioning.Context,
	category config.Category,
	items []T,
	name func(T) string,
	ensure func(*provisioning.Context, T) (provisioning.Resource, error),
) ([]provisioning.Resource, error) {
	results := make([]*provisioning.Resource, len(items))
	tasks := make([]async.Task, 0, len(items))
	for i, item := range items {
		n := name(item)
		tasks = append(tasks, async.Task{
			Name: fmt.Sprintf("%s %q", category, n),
			Func: func(c context.Context) error {
				r, err := ensure(ctx.WithContext(c), item)
				if err != nil {
					ctx.Metrics.RecordResource(category, "ensure", err)
					provisioning.LogResourceFailed(ctx.Observer, phaseCreate, category, n, err)
					return err
				}
				r.Category = category
				r.Name = n
				ctx.State.Put(r)
				ctx.Metrics.RecordResourceState(r)
				provisioning.LogResourceEnsured(ctx.Observer, phaseCreate, r)
				results[i] = &r
				return nil
			},
		})
	}

	err := async.RunParallelLimit(ctx, tasks, concurrency(ctx))

	out := make([]provisioning.Resource, 0, len(items))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, err
}

// configureAll runs configure for every item concurrently. A non-empty
// detail is reported as a configured event.
func configureAll[T any](
	ctx *provisioning.Context,
	category config.Category,
	items []T,
	name func(T) string,
	configure func(*provisioning.Context, T) (detail string, err error),
) error {
	tasks := make([]async.Task, 0, len(items))
	for _, item := range items {
		n := name(item)
		tasks = append(tasks, async.Task{
			Name: fmt.Sprintf("%s %q", category, n),
			Func: func(c context.Context) error {
				detail, err := configure(ctx.WithContext(c), item)
				if detail == "" && err == nil {
					return nil
				}
				ctx.Metrics.RecordResource(category, "configure", err)
				if err != nil {
					provisioning.LogResourceFailed(ctx.Observer, phaseConfigure, category, n, err)
					return err
				}
				provisioning.LogResourceConfigured(ctx.Observer, phaseConfigure, category, n, detail)
				return nil
			},
		})
	}
	return async.RunParallelLimit(ctx, tasks, concurrency(ctx))
}

func concurrency(ctx *provisioning.Context) int {
	if ctx.Timeouts == nil {
		return 0
	}
	return ctx.Timeouts.Concurrency
}

// lookup returns a resource registered by an earlier module.
func lookup(ctx *provisioning.Context, category config.Category, name string) (provisioning.Resource, error) {
	r, ok := ctx.State.Lookup(category, name)
	if !ok {
		return r, fmt.Errorf("%w: %s %q", ErrNotProvisioned, category, name)
	}
	return r, nil
}

// lookupIDs resolves manifest names of a category to IDs. Any missing name is an error.
func lookupIDs(ctx *provisioning.Context, category config.Category, names []string) ([]string, error) {
	ids, missing := ctx.State.IDs(category, names)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s %q", ErrNotProvisioned, category, missing)
	}
	return ids, nil
}

// existing describes a platform resource found by a prefix listing.
func existing(ctx *provisioning.Context, category config.Category, fullName, id string) provisioning.Resource {
	return provisioning.Resource{
		Category: category,
		Name:     naming.Short(ctx.Manifest.Prefix, fullName),
		FullName: fullName,
		ID:       id,
	}
}

// ensured describes a resource returned by an Ensure call.
func ensured(fullName, id string, created bool) provisioning.Resource {
	return provisioning.Resource{FullName: fullName, ID: id, Created: created}
}

// ignoreNotFound treats a resource that is already gone as removed.
func ignoreNotFound(err error) error {
	if purecloud.IsNotFound(err) {
		return nil
	}
	return err
}
