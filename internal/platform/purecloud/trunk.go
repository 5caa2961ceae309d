package purecloud

import (
	"context"
)

func (c *RealClient) trunkBases() collection[*TrunkBase] {
	return collection[*TrunkBase]{
		client: c,
		path:   "/api/v2/telephony/providers/edges/trunkbasesettings",
		kind:   "trunk base",
		name:   func(t *TrunkBase) string { return t.Name },
	}
}

// ListTrunkBases returns all trunk base settings whose name starts with prefix.
func (c *RealClient) ListTrunkBases(ctx context.Context, prefix string) ([]*TrunkBase, error) {
	return c.trunkBases().owned(ctx, prefix, nil)
}

// GetTrunkBase returns the trunk base settings with id, or nil.
func (c *RealClient) GetTrunkBase(ctx context.Context, id string) (*TrunkBase, error) {
	return c.trunkBases().get(ctx, id)
}

// EnsureTrunkBase creates trunk base settings unless settings with the name exist.
func (c *RealClient) EnsureTrunkBase(ctx context.Context, opts TrunkBaseCreateOpts) (*TrunkBase, bool, error) {
	return (&EnsureOperation[*TrunkBase, TrunkBaseCreateOpts, any]{
		Name:         opts.Name,
		ResourceType: "trunk base",
		Get: func(ctx context.Context, name string) (*TrunkBase, error) {
			return c.trunkBases().byName(ctx, name, nil)
		},
		Create: func(ctx context.Context, o TrunkBaseCreateOpts) (*TrunkBase, error) {
			return c.trunkBases().create(ctx, &TrunkBase{
				Name:          o.Name,
				TrunkMetabase: &DomainRef{ID: o.MetabaseID},
				TrunkType:     o.TrunkType,
				Properties:    o.Properties,
				State:         "active",
			})
		},
		CreateOptsMapper: func() TrunkBaseCreateOpts { return opts },
	}).Execute(ctx, c)
}

// DeleteTrunkBase deletes the trunk base settings with id. Missing settings are not an error.
func (c *RealClient) DeleteTrunkBase(ctx context.Context, id string) error {
	return (&DeleteOperation[*TrunkBase]{
		ID:           id,
		ResourceType: "trunk base",
		Get:          c.trunkBases().get,
		Delete: func(ctx context.Context, t *TrunkBase) error {
			return c.trunkBases().remove(ctx, t.ID, nil)
		},
	}).Execute(ctx, c)
}
