package purecloud

import (
	"context"
)

func (c *RealClient) oauthClients() collection[*OAuthClient] {
	return collection[*OAuthClient]{
		client: c,
		path:   "/api/v2/oauth/clients",
		kind:   "oauth client",
		name:   func(o *OAuthClient) string { return o.Name },
	}
}

// ListOAuthClients returns all OAuth clients whose name starts with prefix.
func (c *RealClient) ListOAuthClients(ctx context.Context, prefix string) ([]*OAuthClient, error) {
	return c.oauthClients().owned(ctx, prefix, nil)
}

// GetOAuthClient returns the client with id including its secret, or nil.
func (c *RealClient) GetOAuthClient(ctx context.Context, id string) (*OAuthClient, error) {
	return c.oauthClients().get(ctx, id)
}

// EnsureOAuthClient creates the client or updates the role divisions of an
// existing one. Either way the returned client carries its secret.
func (c *RealClient) EnsureOAuthClient(ctx context.Context, opts OAuthClientCreateOpts) (*OAuthClient, bool, error) {
	body := func() *OAuthClient {
		return &OAuthClient{
			Name:                       opts.Name,
			Description:                opts.Description,
			AuthorizedGrantType:        opts.GrantType,
			AccessTokenValiditySeconds: opts.AccessTokenValiditySeconds,
			RoleDivisions:              opts.RoleDivisions,
		}
	}
	return (&EnsureOperation[*OAuthClient, OAuthClientCreateOpts, *OAuthClient]{
		Name:         opts.Name,
		ResourceType: "oauth client",
		Get: func(ctx context.Context, name string) (*OAuthClient, error) {
			listed, err := c.oauthClients().byName(ctx, name, nil)
			if err != nil || listed == nil {
				return nil, err
			}
			// Listings omit the secret.
			return c.GetOAuthClient(ctx, listed.ID)
		},
		Create: func(ctx context.Context, _ OAuthClientCreateOpts) (*OAuthClient, error) {
			return c.oauthClients().create(ctx, body())
		},
		Update: func(ctx context.Context, existing *OAuthClient, desired *OAuthClient) (*OAuthClient, error) {
			updated, err := c.oauthClients().update(ctx, existing.ID, desired)
			if err != nil {
				return nil, err
			}
			if updated != nil && updated.Secret == "" {
				updated.Secret = existing.Secret
			}
			return updated, nil
		},
		CreateOptsMapper: func() OAuthClientCreateOpts { return opts },
		UpdateOptsMapper: func(*OAuthClient) *OAuthClient { return body() },
	}).Execute(ctx, c)
}

// DeleteOAuthClient deletes the client with id. Missing clients are not an error.
func (c *RealClient) DeleteOAuthClient(ctx context.Context, id string) error {
	return (&DeleteOperation[*OAuthClient]{
		ID:           id,
		ResourceType: "oauth client",
		Get:          c.oauthClients().get,
		Delete: func(ctx context.Context, o *OAuthClient) error {
			return c.oauthClients().remove(ctx, o.ID, nil)
		},
	}).Execute(ctx, c)
}
