package orchestration

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning/modules"
)

// CategoryStatus lists the resources present for one category.
type CategoryStatus struct {
	Category  config.Category
	Expected  int
	Resources []provisioning.Resource
	// Err is set when the category could not be listed.
	Err error
}

// Missing reports how many manifest items are not present.
func (s CategoryStatus) Missing() int {
	if n := s.Expected - len(s.Resources); n > 0 {
		return n
	}
	return 0
}

// Status lists the prefixed resources present per category, in manifest
// order. Listing failures are reported per category.
func (i *Installer) Status(ctx context.Context) ([]CategoryStatus, error) {
	mods, err := modules.Build(i.manifest)
	if err != nil {
		return nil, err
	}
	pctx := i.newContext(ctx)

	out := make([]CategoryStatus, len(mods))
	var g errgroup.Group
	if i.timeouts != nil && i.timeouts.Concurrency > 0 {
		g.SetLimit(i.timeouts.Concurrency)
	}
	for idx, mod := range mods {
		g.Go(func() error {
			resources, err := mod.GetExisting(pctx)
			out[idx] = CategoryStatus{
				Category:  mod.Category(),
				Expected:  len(i.manifest.Names(mod.Category())),
				Resources: resources,
				Err:       err,
			}
			return nil
		})
	}
	_ = g.Wait()
	return out, nil
}
