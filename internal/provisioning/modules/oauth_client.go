package modules

import (
	"fmt"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
	"github.com/purecloudlabs/premium-app-installer/internal/platform/purecloud"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
)

// ExtraClientID is the Resource.Extra key holding an OAuth client's ID as
// the client_id its consumers authenticate with.
const ExtraClientID = "clientId"

// OAuthClientModule provisions OAuth clients. Their role divisions point at
// roles created earlier in the same run.
type OAuthClientModule struct{}

// NewOAuthClientModule creates the OAuth client module.
func NewOAuthClientModule() *OAuthClientModule {
	return &OAuthClientModule{}
}

// Category implements provisioning.Module.
func (m *OAuthClientModule) Category() config.Category {
	return config.CategoryOAuthClient
}

// GetExisting implements provisioning.Module.
func (m *OAuthClientModule) GetExisting(ctx *provisioning.Context) ([]provisioning.Resource, error) {
	clients, err := ctx.Platform.ListOAuthClients(ctx, ctx.Manifest.Prefix)
	if err != nil {
		return nil, err
	}
	out := make([]provisioning.Resource, 0, len(clients))
	for _, c := range clients {
		out = append(out, existing(ctx, m.Category(), c.Name, c.ID))
	}
	return out, nil
}

// Remove implements provisioning.Module.
func (m *OAuthClientModule) Remove(ctx *provisioning.Context, r provisioning.Resource) error {
	return ignoreNotFound(ctx.Platform.DeleteOAuthClient(ctx, r.ID))
}

// Create ensures every client. The secret is kept in Extra for the
// data-action module and is redacted from reports.
func (m *OAuthClientModule) Create(ctx *provisioning.Context) ([]provisioning.Resource, error) {
	return ensureAll(ctx, m.Category(), ctx.Manifest.OAuthClients,
		func(s config.OAuthClientSpec) string { return s.Name },
		func(ctx *provisioning.Context, s config.OAuthClientSpec) (provisioning.Resource, error) {
			divisions, err := roleDivisions(ctx, s.Roles)
			if err != nil {
				return provisioning.Resource{}, err
			}
			grant := s.GrantType
			if grant == "" {
				grant = config.DefaultGrantType
			}

			name := ctx.FullName(s.Name)
			client, created, err := ctx.Platform.EnsureOAuthClient(ctx, purecloud.OAuthClientCreateOpts{
				Name:                       name,
				Description:                s.Description,
				GrantType:                  grant,
				AccessTokenValiditySeconds: s.TokenLifetimeSeconds,
				RoleDivisions:              divisions,
			})
			if err != nil {
				return provisioning.Resource{}, err
			}

			r := ensured(name, client.ID, created)
			r.Extra = map[string]string{ExtraClientID: client.ID}
			if client.Secret != "" {
				r.Extra[provisioning.ExtraSecret] = client.Secret
			}
			return r, nil
		})
}

// Configure implements provisioning.Module. Clients need no second pass.
func (m *OAuthClientModule) Configure(_ *provisioning.Context) error {
	return nil
}

// roleDivisions grants each named role in the home division.
func roleDivisions(ctx *provisioning.Context, roles []string) ([]purecloud.RoleDivision, error) {
	if len(roles) == 0 {
		return nil, nil
	}
	division := ctx.State.Identity().DivisionID
	if division == "" {
		return nil, ErrNoHomeDivision
	}
	ids, err := lookupIDs(ctx, config.CategoryRole, roles)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve roles: %w", err)
	}
	out := make([]purecloud.RoleDivision, 0, len(ids))
	for _, id := range ids {
		out = append(out, purecloud.RoleDivision{RoleID: id, DivisionID: division})
	}
	return out, nil
}
