package purecloud

import (
	"context"
	"net/url"
)

func (c *RealClient) dataActions() collection[*DataAction] {
	return collection[*DataAction]{
		client: c,
		path:   "/api/v2/integrations/actions",
		kind:   "data action",
		name:   func(a *DataAction) string { return a.Name },
	}
}

// ListDataActions returns the actions bound to an integration.
func (c *RealClient) ListDataActions(ctx context.Context, integrationID string) ([]*DataAction, error) {
	all, err := c.dataActions().list(ctx, url.Values{"integrationId": {integrationID}})
	if err != nil {
		return nil, err
	}
	var out []*DataAction
	for _, a := range all {
		if a.IntegrationID == integrationID {
			out = append(out, a)
		}
	}
	return out, nil
}

// EnsureDataAction creates the action on its integration unless an action
// with the same name is already bound there.
func (c *RealClient) EnsureDataAction(ctx context.Context, action *DataAction) (*DataAction, bool, error) {
	return (&EnsureOperation[*DataAction, *DataAction, any]{
		Name:         action.Name,
		ResourceType: "data action",
		Get: func(ctx context.Context, name string) (*DataAction, error) {
			existing, err := c.ListDataActions(ctx, action.IntegrationID)
			if err != nil {
				return nil, err
			}
			for _, a := range existing {
				if a.Name == name {
					return a, nil
				}
			}
			return nil, nil
		},
		Create: func(ctx context.Context, a *DataAction) (*DataAction, error) {
			return c.dataActions().create(ctx, a)
		},
		CreateOptsMapper: func() *DataAction { return action },
	}).Execute(ctx, c)
}

// DeleteDataAction deletes the action with id. Missing actions are not an error.
func (c *RealClient) DeleteDataAction(ctx context.Context, id string) error {
	return (&DeleteOperation[*DataAction]{
		ID:           id,
		ResourceType: "data action",
		Get:          c.dataActions().get,
		Delete: func(ctx context.Context, a *DataAction) error {
			return c.dataActions().remove(ctx, a.ID, nil)
		},
	}).Execute(ctx, c)
}
