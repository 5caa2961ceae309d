package modules

import (
	"github.com/purecloudlabs/premium-app-installer/internal/config"
	"github.com/purecloudlabs/premium-app-installer/internal/platform/purecloud"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
)

// GroupModule provisions directory groups.
type GroupModule struct{}

// NewGroupModule creates the group module.
func NewGroupModule() *GroupModule {
	return &GroupModule{}
}

// Category implements provisioning.Module.
func (m *GroupModule) Category() config.Category {
	return config.CategoryGroup
}

// GetExisting implements provisioning.Module.
func (m *GroupModule) GetExisting(ctx *provisioning.Context) ([]provisioning.Resource, error) {
	groups, err := ctx.Platform.ListGroups(ctx, ctx.Manifest.Prefix)
	if err != nil {
		return nil, err
	}
	out := make([]provisioning.Resource, 0, len(groups))
	for _, g := range groups {
		out = append(out, existing(ctx, m.Category(), g.Name, g.ID))
	}
	return out, nil
}

// Remove implements provisioning.Module.
func (m *GroupModule) Remove(ctx *provisioning.Context, r provisioning.Resource) error {
	return ignoreNotFound(ctx.Platform.DeleteGroup(ctx, r.ID))
}

// Create implements provisioning.Module.
func (m *GroupModule) Create(ctx *provisioning.Context) ([]provisioning.Resource, error) {
	return ensureAll(ctx, m.Category(), ctx.Manifest.Groups,
		func(s config.GroupSpec) string { return s.Name },
		func(ctx *provisioning.Context, s config.GroupSpec) (provisioning.Resource, error) {
			name := ctx.FullName(s.Name)
			g, created, err := ctx.Platform.EnsureGroup(ctx, purecloud.GroupCreateOpts{
				Name:        name,
				Description: s.Description,
			})
			if err != nil {
				return provisioning.Resource{}, err
			}
			return ensured(name, g.ID, created), nil
		})
}

// Configure adds the installing user to groups flagged addInstaller.
func (m *GroupModule) Configure(ctx *provisioning.Context) error {
	user := ctx.State.Identity()
	if !user.HasUser() {
		return nil
	}
	return configureAll(ctx, m.Category(), ctx.Manifest.Groups,
		func(s config.GroupSpec) string { return s.Name },
		func(ctx *provisioning.Context, s config.GroupSpec) (string, error) {
			if !s.AddInstaller {
				return "", nil
			}
			g, err := lookup(ctx, m.Category(), s.Name)
			if err != nil {
				return "", err
			}
			if err := ctx.Platform.AddGroupMembers(ctx, g.ID, []string{user.UserID}); err != nil {
				return "", err
			}
			return "added " + user.UserID, nil
		})
}
