package modules

import (
	"github.com/purecloudlabs/premium-app-installer/internal/config"
	"github.com/purecloudlabs/premium-app-installer/internal/platform/purecloud"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
)

// RoleModule provisions authorization roles.
type RoleModule struct{}

// NewRoleModule creates the role module.
func NewRoleModule() *RoleModule {
	return &RoleModule{}
}

// Category implements provisioning.Module.
func (m *RoleModule) Category() config.Category {
	return config.CategoryRole
}

// GetExisting implements provisioning.Module.
func (m *RoleModule) GetExisting(ctx *provisioning.Context) ([]provisioning.Resource, error) {
	roles, err := ctx.Platform.ListRoles(ctx, ctx.Manifest.Prefix)
	if err != nil {
		return nil, err
	}
	out := make([]provisioning.Resource, 0, len(roles))
	for _, r := range roles {
		out = append(out, existing(ctx, m.Category(), r.Name, r.ID))
	}
	return out, nil
}

// Remove implements provisioning.Module.
func (m *RoleModule) Remove(ctx *provisioning.Context, r provisioning.Resource) error {
	return ignoreNotFound(ctx.Platform.DeleteRole(ctx, r.ID))
}

// Create implements provisioning.Module.
func (m *RoleModule) Create(ctx *provisioning.Context) ([]provisioning.Resource, error) {
	return ensureAll(ctx, m.Category(), ctx.Manifest.Roles,
		func(s config.RoleSpec) string { return s.Name },
		func(ctx *provisioning.Context, s config.RoleSpec) (provisioning.Resource, error) {
			name := ctx.FullName(s.Name)
			role, created, err := ctx.Platform.EnsureRole(ctx, purecloud.RoleCreateOpts{
				Name:               name,
				Description:        s.Description,
				PermissionPolicies: permissionPolicies(s.PermissionPolicies),
			})
			if err != nil {
				return provisioning.Resource{}, err
			}
			return ensured(name, role.ID, created), nil
		})
}

// Configure grants roles flagged assignToInstaller to the installing user.
// Without a user context there is nobody to assign and nothing happens.
func (m *RoleModule) Configure(ctx *provisioning.Context) error {
	user := ctx.State.Identity()
	if !user.HasUser() {
		return nil
	}
	return configureAll(ctx, m.Category(), ctx.Manifest.Roles,
		func(s config.RoleSpec) string { return s.Name },
		func(ctx *provisioning.Context, s config.RoleSpec) (string, error) {
			if !s.AssignToInstaller {
				return "", nil
			}
			r, err := lookup(ctx, m.Category(), s.Name)
			if err != nil {
				return "", err
			}
			if err := ctx.Platform.AddRoleUsers(ctx, r.ID, []string{user.UserID}); err != nil {
				return "", err
			}
			return "assigned to " + user.UserID, nil
		})
}

func permissionPolicies(in []config.PermissionPolicy) []purecloud.PermissionPolicy {
	out := make([]purecloud.PermissionPolicy, 0, len(in))
	for _, p := range in {
		out = append(out, purecloud.PermissionPolicy{
			Domain:     p.Domain,
			EntityName: p.EntityName,
			ActionSet:  p.ActionSet,
		})
	}
	return out
}
