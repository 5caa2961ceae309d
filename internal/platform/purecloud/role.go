package purecloud

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

func (c *RealClient) roles() collection[*Role] {
	return collection[*Role]{
		client: c,
		path:   "/api/v2/authorization/roles",
		kind:   "role",
		name:   func(r *Role) string { return r.Name },
	}
}

// ListRoles returns all roles whose name starts with prefix.
func (c *RealClient) ListRoles(ctx context.Context, prefix string) ([]*Role, error) {
	return c.roles().owned(ctx, prefix, nil)
}

// GetRole returns the role with id, or nil.
func (c *RealClient) GetRole(ctx context.Context, id string) (*Role, error) {
	return c.roles().get(ctx, id)
}

// EnsureRole creates the role, or brings the permission policies of an
// existing role with the same name in line with opts.
func (c *RealClient) EnsureRole(ctx context.Context, opts RoleCreateOpts) (*Role, bool, error) {
	body := func() *Role {
		return &Role{
			Name:               opts.Name,
			Description:        opts.Description,
			PermissionPolicies: opts.PermissionPolicies,
		}
	}
	return (&EnsureOperation[*Role, RoleCreateOpts, *Role]{
		Name:         opts.Name,
		ResourceType: "role",
		Get: func(ctx context.Context, name string) (*Role, error) {
			return c.roles().byName(ctx, name, url.Values{"name": {name}})
		},
		Create: func(ctx context.Context, _ RoleCreateOpts) (*Role, error) {
			return c.roles().create(ctx, body())
		},
		Update: func(ctx context.Context, existing *Role, desired *Role) (*Role, error) {
			return c.roles().update(ctx, existing.ID, desired)
		},
		CreateOptsMapper: func() RoleCreateOpts { return opts },
		UpdateOptsMapper: func(*Role) *Role { return body() },
	}).Execute(ctx, c)
}

// DeleteRole deletes the role with id. Missing roles are not an error.
func (c *RealClient) DeleteRole(ctx context.Context, id string) error {
	return (&DeleteOperation[*Role]{
		ID:           id,
		ResourceType: "role",
		Get:          c.roles().get,
		Delete: func(ctx context.Context, r *Role) error {
			return c.roles().remove(ctx, r.ID, nil)
		},
	}).Execute(ctx, c)
}

// AddRoleUsers grants the role to the given users in the home division.
func (c *RealClient) AddRoleUsers(ctx context.Context, roleID string, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}
	path := fmt.Sprintf("/api/v2/authorization/roles/%s/users/add", url.PathEscape(roleID))
	if err := c.do(ctx, http.MethodPut, path, nil, userIDs, nil); err != nil {
		return fmt.Errorf("failed to assign role %s: %w", roleID, err)
	}
	return nil
}
