package modules

import (
	"github.com/purecloudlabs/premium-app-installer/internal/config"
	"github.com/purecloudlabs/premium-app-installer/internal/platform/purecloud"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
)

// TrunkModule provisions BYOC trunk base settings.
type TrunkModule struct{}

// NewTrunkModule creates the trunk module.
func NewTrunkModule() *TrunkModule {
	return &TrunkModule{}
}

// Category implements provisioning.Module.
func (m *TrunkModule) Category() config.Category {
	return config.CategoryTrunk
}

// GetExisting implements provisioning.Module.
func (m *TrunkModule) GetExisting(ctx *provisioning.Context) ([]provisioning.Resource, error) {
	trunks, err := ctx.Platform.ListTrunkBases(ctx, ctx.Manifest.Prefix)
	if err != nil {
		return nil, err
	}
	out := make([]provisioning.Resource, 0, len(trunks))
	for _, t := range trunks {
		out = append(out, existing(ctx, m.Category(), t.Name, t.ID))
	}
	return out, nil
}

// Remove implements provisioning.Module.
func (m *TrunkModule) Remove(ctx *provisioning.Context, r provisioning.Resource) error {
	return ignoreNotFound(ctx.Platform.DeleteTrunkBase(ctx, r.ID))
}

// Create implements provisioning.Module.
func (m *TrunkModule) Create(ctx *provisioning.Context) ([]provisioning.Resource, error) {
	return ensureAll(ctx, m.Category(), ctx.Manifest.Trunks,
		func(s config.TrunkSpec) string { return s.Name },
		func(ctx *provisioning.Context, s config.TrunkSpec) (provisioning.Resource, error) {
			metabase, typ := s.Metabase, s.Type
			if metabase == "" {
				metabase = config.DefaultTrunkMetabase
			}
			if typ == "" {
				typ = config.DefaultTrunkType
			}
			name := ctx.FullName(s.Name)
			t, created, err := ctx.Platform.EnsureTrunkBase(ctx, purecloud.TrunkBaseCreateOpts{
				Name:       name,
				MetabaseID: metabase,
				TrunkType:  typ,
				Properties: s.Properties,
			})
			if err != nil {
				return provisioning.Resource{}, err
			}
			return ensured(name, t.ID, created), nil
		})
}

// Configure implements provisioning.Module. Trunks need no second pass.
func (m *TrunkModule) Configure(_ *provisioning.Context) error {
	return nil
}
