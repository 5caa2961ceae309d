package purecloud

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

func (c *RealClient) integrations() collection[*Integration] {
	return collection[*Integration]{
		client: c,
		path:   "/api/v2/integrations",
		kind:   "integration",
		name:   func(i *Integration) string { return i.Name },
	}
}

// ListIntegrations returns prefixed integrations, optionally of one type only.
func (c *RealClient) ListIntegrations(ctx context.Context, prefix, typeID string) ([]*Integration, error) {
	all, err := c.integrations().owned(ctx, prefix, nil)
	if err != nil || typeID == "" {
		return all, err
	}
	var out []*Integration
	for _, i := range all {
		if i.TypeID() == typeID {
			out = append(out, i)
		}
	}
	return out, nil
}

// GetIntegration returns the integration with id, or nil.
func (c *RealClient) GetIntegration(ctx context.Context, id string) (*Integration, error) {
	return c.integrations().get(ctx, id)
}

// EnsureIntegration creates an integration instance of opts.TypeID unless one
// with the name already exists. An existing instance of another type is an error.
func (c *RealClient) EnsureIntegration(ctx context.Context, opts IntegrationCreateOpts) (*Integration, bool, error) {
	return (&EnsureOperation[*Integration, IntegrationCreateOpts, any]{
		Name:         opts.Name,
		ResourceType: "integration",
		Get: func(ctx context.Context, name string) (*Integration, error) {
			return c.integrations().byName(ctx, name, nil)
		},
		Validate: func(i *Integration) error {
			if i.TypeID() != "" && i.TypeID() != opts.TypeID {
				return fmt.Errorf("integration %q exists with type %q, want %q", i.Name, i.TypeID(), opts.TypeID)
			}
			return nil
		},
		Create: func(ctx context.Context, o IntegrationCreateOpts) (*Integration, error) {
			created, err := c.integrations().create(ctx, &Integration{
				Name:            o.Name,
				IntegrationType: &DomainRef{ID: o.TypeID},
				Notes:           o.Notes,
			})
			if err != nil {
				return nil, err
			}
			// New instances take the type's display name until the config is written.
			if created != nil && created.Name != o.Name {
				if err := c.renameIntegration(ctx, created.ID, o.Name, o.Notes); err != nil {
					return nil, err
				}
				created.Name = o.Name
			}
			return created, nil
		},
		CreateOptsMapper: func() IntegrationCreateOpts { return opts },
	}).Execute(ctx, c)
}

func (c *RealClient) renameIntegration(ctx context.Context, id, name, notes string) error {
	cfg, err := c.GetIntegrationConfig(ctx, id)
	if err != nil {
		return err
	}
	cfg.Name = name
	cfg.Notes = notes
	return c.putIntegrationConfig(ctx, id, cfg)
}

func integrationConfigPath(id string) string {
	return fmt.Sprintf("/api/v2/integrations/%s/config/current", url.PathEscape(id))
}

// GetIntegrationConfig returns the current config of an integration.
func (c *RealClient) GetIntegrationConfig(ctx context.Context, id string) (*IntegrationConfig, error) {
	var cfg IntegrationConfig
	if err := c.do(ctx, http.MethodGet, integrationConfigPath(id), nil, nil, &cfg); err != nil {
		return nil, fmt.Errorf("failed to get integration config %s: %w", id, err)
	}
	return &cfg, nil
}

// UpdateIntegrationConfig replaces the current config of an integration.
func (c *RealClient) UpdateIntegrationConfig(ctx context.Context, id string, cfg *IntegrationConfig) error {
	current, err := c.GetIntegrationConfig(ctx, id)
	if err != nil {
		return err
	}
	next := *cfg
	next.Version = current.Version
	if next.Name == "" {
		next.Name = current.Name
	}
	return c.putIntegrationConfig(ctx, id, &next)
}

func (c *RealClient) putIntegrationConfig(ctx context.Context, id string, cfg *IntegrationConfig) error {
	if err := c.do(ctx, http.MethodPut, integrationConfigPath(id), nil, cfg, nil); err != nil {
		return fmt.Errorf("failed to update integration config %s: %w", id, err)
	}
	return nil
}

// SetIntegrationEnabled sets the intended state of an integration.
func (c *RealClient) SetIntegrationEnabled(ctx context.Context, id string, enabled bool) error {
	state := "DISABLED"
	if enabled {
		state = "ENABLED"
	}
	path := "/api/v2/integrations/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPatch, path, nil, map[string]string{"intendedState": state}, nil); err != nil {
		return fmt.Errorf("failed to set integration %s %s: %w", id, state, err)
	}
	return nil
}

// DeleteIntegration deletes the integration with id. Missing integrations are not an error.
func (c *RealClient) DeleteIntegration(ctx context.Context, id string) error {
	return (&DeleteOperation[*Integration]{
		ID:           id,
		ResourceType: "integration",
		Get:          c.integrations().get,
		Delete: func(ctx context.Context, i *Integration) error {
			return c.integrations().remove(ctx, i.ID, nil)
		},
	}).Execute(ctx, c)
}
