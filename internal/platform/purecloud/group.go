package purecloud

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

func (c *RealClient) groups() collection[*Group] {
	return collection[*Group]{
		client: c,
		path:   "/api/v2/groups",
		kind:   "group",
		name:   func(g *Group) string { return g.Name },
	}
}

// ListGroups returns all groups whose name starts with prefix.
func (c *RealClient) ListGroups(ctx context.Context, prefix string) ([]*Group, error) {
	return c.groups().owned(ctx, prefix, nil)
}

// GetGroup returns the group with id, or nil.
func (c *RealClient) GetGroup(ctx context.Context, id string) (*Group, error) {
	return c.groups().get(ctx, id)
}

// EnsureGroup creates a public official group unless one with the name exists.
func (c *RealClient) EnsureGroup(ctx context.Context, opts GroupCreateOpts) (*Group, bool, error) {
	return (&EnsureOperation[*Group, GroupCreateOpts, any]{
		Name:         opts.Name,
		ResourceType: "group",
		Get: func(ctx context.Context, name string) (*Group, error) {
			return c.groups().byName(ctx, name, nil)
		},
		Create: func(ctx context.Context, o GroupCreateOpts) (*Group, error) {
			return c.groups().create(ctx, &Group{
				Name:         o.Name,
				Description:  o.Description,
				Type:         "official",
				Visibility:   "public",
				RulesVisible: true,
			})
		},
		CreateOptsMapper: func() GroupCreateOpts { return opts },
	}).Execute(ctx, c)
}

// DeleteGroup deletes the group with id. Missing groups are not an error.
func (c *RealClient) DeleteGroup(ctx context.Context, id string) error {
	return (&DeleteOperation[*Group]{
		ID:           id,
		ResourceType: "group",
		Get:          c.groups().get,
		Delete: func(ctx context.Context, g *Group) error {
			return c.groups().remove(ctx, g.ID, nil)
		},
	}).Execute(ctx, c)
}

type groupMembersRequest struct {
	MemberIDs []string `json:"memberIds"`
	Version   int      `json:"version"`
}

// AddGroupMembers adds users to the group. The group's current version is
// read first because the API rejects stale versions.
func (c *RealClient) AddGroupMembers(ctx context.Context, groupID string, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}
	group, err := c.GetGroup(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to get group %s: %w", groupID, err)
	}
	if group == nil {
		return fmt.Errorf("group %s not found", groupID)
	}
	path := fmt.Sprintf("/api/v2/groups/%s/members", url.PathEscape(groupID))
	body := groupMembersRequest{MemberIDs: userIDs, Version: group.Version}
	if err := c.do(ctx, http.MethodPost, path, nil, body, nil); err != nil {
		return fmt.Errorf("failed to add members to group %s: %w", group.Name, err)
	}
	return nil
}
