package modules

import (
	"fmt"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
	"github.com/purecloudlabs/premium-app-installer/internal/platform/purecloud"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
	"github.com/purecloudlabs/premium-app-installer/internal/util/naming"
)

// Resource.Extra keys used by the data-action module.
const (
	// ExtraCredentialID holds the credential an integration authenticates with.
	ExtraCredentialID = "credentialId"
	// ExtraKind marks resources that are not integrations.
	ExtraKind = "kind"

	kindCredential = "credential"
)

// DataActionModule provisions data-action integrations. Each authenticates
// with a credential built from an OAuth client created earlier in the run,
// and owns the data actions the manifest lists for it.
type DataActionModule struct{}

// NewDataActionModule creates the data-action module.
func NewDataActionModule() *DataActionModule {
	return &DataActionModule{}
}

// Category implements provisioning.Module.
func (m *DataActionModule) Category() config.Category {
	return config.CategoryDataAction
}

// GetExisting returns the prefixed data-action integrations and any prefixed
// credential none of them references.
func (m *DataActionModule) GetExisting(ctx *provisioning.Context) ([]provisioning.Resource, error) {
	types := make([]string, 0, len(ctx.Manifest.DataActions))
	for _, d := range ctx.Manifest.DataActions {
		types = append(types, d.Type)
	}
	integrations, err := listIntegrations(ctx, m.Category(), purecloud.TypeDataActions, types)
	if err != nil {
		return nil, err
	}

	referenced := make(map[string]bool)
	for i, r := range integrations {
		cfg, err := ctx.Platform.GetIntegrationConfig(ctx, r.ID)
		if err != nil {
			if purecloud.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		for _, ref := range cfg.Credentials {
			referenced[ref.ID] = true
			integrations[i].Extra[ExtraCredentialID] = ref.ID
		}
	}

	credentials, err := ctx.Platform.ListCredentials(ctx, ctx.Manifest.Prefix)
	if err != nil {
		return nil, err
	}
	out := integrations
	for _, c := range credentials {
		if referenced[c.ID] {
			continue
		}
		r := existing(ctx, m.Category(), c.Name, c.ID)
		r.Extra = map[string]string{ExtraKind: kindCredential}
		out = append(out, r)
	}
	return out, nil
}

// Remove deletes an integration together with its credential, or an
// orphaned credential. Deleting an integration deletes its actions.
func (m *DataActionModule) Remove(ctx *provisioning.Context, r provisioning.Resource) error {
	if r.Extra[ExtraKind] == kindCredential {
		return ignoreNotFound(ctx.Platform.DeleteCredential(ctx, r.ID))
	}
	if err := ignoreNotFound(ctx.Platform.DeleteIntegration(ctx, r.ID)); err != nil {
		return err
	}
	if id := r.Extra[ExtraCredentialID]; id != "" {
		if err := ignoreNotFound(ctx.Platform.DeleteCredential(ctx, id)); err != nil {
			return fmt.Errorf("failed to delete credential %s: %w", id, err)
		}
	}
	return nil
}

// Create ensures the integration and a client-credentials credential holding
// the referenced OAuth client's ID and secret.
func (m *DataActionModule) Create(ctx *provisioning.Context) ([]provisioning.Resource, error) {
	return ensureAll(ctx, m.Category(), ctx.Manifest.DataActions,
		func(s config.DataActionSpec) string { return s.Name },
		func(ctx *provisioning.Context, s config.DataActionSpec) (provisioning.Resource, error) {
			client, err := lookup(ctx, config.CategoryOAuthClient, s.OAuthClient)
			if err != nil {
				return provisioning.Resource{}, err
			}
			secret := client.Extra[provisioning.ExtraSecret]
			if secret == "" {
				return provisioning.Resource{}, fmt.Errorf("%w: %q", ErrMissingSecret, s.OAuthClient)
			}

			name := ctx.FullName(s.Name)
			typ := s.Type
			if typ == "" {
				typ = config.DefaultDataActionType
			}
			integration, created, err := ctx.Platform.EnsureIntegration(ctx, purecloud.IntegrationCreateOpts{
				Name:   name,
				TypeID: typ,
			})
			if err != nil {
				return provisioning.Resource{}, err
			}

			credential, _, err := ctx.Platform.EnsureCredential(ctx, purecloud.CredentialCreateOpts{
				Name: naming.Credential(ctx.Manifest.Prefix, s.Name),
				Type: purecloud.CredentialTypeClientCredentials,
				Fields: map[string]string{
					"clientId":     client.ID,
					"clientSecret": secret,
				},
			})
			if err != nil {
				return provisioning.Resource{}, fmt.Errorf("failed to ensure credential: %w", err)
			}

			r := ensured(name, integration.ID, created)
			r.Extra = map[string]string{
				ExtraType:         integration.TypeID(),
				ExtraCredentialID: credential.ID,
			}
			return r, nil
		})
}

// Configure points each integration at its credential, enables it, and
// ensures its actions.
func (m *DataActionModule) Configure(ctx *provisioning.Context) error {
	return configureAll(ctx, m.Category(), ctx.Manifest.DataActions,
		func(s config.DataActionSpec) string { return s.Name },
		func(ctx *provisioning.Context, s config.DataActionSpec) (string, error) {
			r, err := lookup(ctx, m.Category(), s.Name)
			if err != nil {
				return "", err
			}
			credentials := map[string]purecloud.CredentialRef{
				purecloud.CredentialTypeClientCredentials: {ID: r.Extra[ExtraCredentialID]},
			}
			if err := applyConfig(ctx, r.ID, nil, credentials); err != nil {
				return "", err
			}

			created := 0
			for _, a := range s.Actions {
				_, isNew, err := ctx.Platform.EnsureDataAction(ctx, dataAction(r.ID, s, a))
				if err != nil {
					return "", fmt.Errorf("action %q: %w", a.Name, err)
				}
				if isNew {
					created++
				}
			}
			return fmt.Sprintf("enabled with %d actions (%d new)", len(s.Actions), created), nil
		})
}

// dataAction converts a manifest action into the platform shape. The
// category defaults to the integration's manifest name.
func dataAction(integrationID string, s config.DataActionSpec, a config.ActionSpec) *purecloud.DataAction {
	category := a.Category
	if category == "" {
		category = s.Name
	}
	requestType := a.RequestType
	if requestType == "" {
		requestType = "GET"
	}
	input := a.InputSchema
	if input == nil {
		input = map[string]any{"type": "object", "properties": map[string]any{}}
	}
	output := a.OutputSchema
	if output == nil {
		output = map[string]any{"type": "object", "properties": map[string]any{}}
	}
	return &purecloud.DataAction{
		Name:          a.Name,
		Category:      category,
		IntegrationID: integrationID,
		Secure:        a.Secure,
		Config: purecloud.ActionConfig{
			Request: purecloud.ActionRequest{
				RequestURLTemplate: a.RequestURLTemplate,
				RequestType:        requestType,
				RequestTemplate:    a.RequestTemplate,
				Headers:            a.Headers,
			},
			Response: purecloud.ActionResponse{
				TranslationMap:  a.TranslationMap,
				SuccessTemplate: a.SuccessTemplate,
			},
		},
		Contract: purecloud.ActionContract{
			Input:  purecloud.ActionSchema{InputSchema: input},
			Output: purecloud.ActionOutput{SuccessSchema: output},
		},
	}
}
