package modules

import (
	"fmt"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
	"github.com/purecloudlabs/premium-app-installer/internal/platform/purecloud"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
)

// ExtraURL is the Resource.Extra key holding an app instance's URL.
const ExtraURL = "url"

// AppInstanceModule provisions client app integrations, the entry points of
// the premium app inside Genesys Cloud.
type AppInstanceModule struct{}

// NewAppInstanceModule creates the app instance module.
func NewAppInstanceModule() *AppInstanceModule {
	return &AppInstanceModule{}
}

// Category implements provisioning.Module.
func (m *AppInstanceModule) Category() config.Category {
	return config.CategoryAppInstance
}

// GetExisting implements provisioning.Module.
func (m *AppInstanceModule) GetExisting(ctx *provisioning.Context) ([]provisioning.Resource, error) {
	types := make([]string, 0, len(ctx.Manifest.AppInstances))
	for _, a := range ctx.Manifest.AppInstances {
		types = append(types, a.Type)
	}
	return listIntegrations(ctx, m.Category(), purecloud.TypeClientApp, types)
}

// Remove implements provisioning.Module.
func (m *AppInstanceModule) Remove(ctx *provisioning.Context, r provisioning.Resource) error {
	return ignoreNotFound(ctx.Platform.DeleteIntegration(ctx, r.ID))
}

// Create ensures each integration. It stays disabled until Configure.
func (m *AppInstanceModule) Create(ctx *provisioning.Context) ([]provisioning.Resource, error) {
	return ensureAll(ctx, m.Category(), ctx.Manifest.AppInstances,
		func(s config.AppInstanceSpec) string { return s.Name },
		func(ctx *provisioning.Context, s config.AppInstanceSpec) (provisioning.Resource, error) {
			name := ctx.FullName(s.Name)
			i, created, err := ctx.Platform.EnsureIntegration(ctx, purecloud.IntegrationCreateOpts{
				Name:   name,
				TypeID: appType(s),
				Notes:  s.Notes,
			})
			if err != nil {
				return provisioning.Resource{}, err
			}
			r := ensured(name, i.ID, created)
			r.Extra = map[string]string{ExtraType: i.TypeID(), ExtraURL: appURL(ctx, s)}
			return r, nil
		})
}

// Configure sets the app properties, restricts visibility to the created
// groups, and enables each integration.
func (m *AppInstanceModule) Configure(ctx *provisioning.Context) error {
	return configureAll(ctx, m.Category(), ctx.Manifest.AppInstances,
		func(s config.AppInstanceSpec) string { return s.Name },
		func(ctx *provisioning.Context, s config.AppInstanceSpec) (string, error) {
			r, err := lookup(ctx, m.Category(), s.Name)
			if err != nil {
				return "", err
			}
			props, err := appProperties(ctx, s)
			if err != nil {
				return "", err
			}
			if err := applyConfig(ctx, r.ID, props, nil); err != nil {
				return "", err
			}
			return fmt.Sprintf("enabled as %s", s.DisplayType), nil
		})
}

func appType(s config.AppInstanceSpec) string {
	if s.Type != "" {
		return s.Type
	}
	return config.DefaultAppInstanceType
}

// appURL returns the item URL, falling back to the configured app URL.
// Placeholders such as {{pcEnvironment}} are expanded by the platform.
func appURL(ctx *provisioning.Context, s config.AppInstanceSpec) string {
	if s.URL != "" || ctx.Config == nil {
		return s.URL
	}
	return ctx.Config.AppURL
}

// appProperties builds the integration properties of an app instance.
// Empty optional settings are left unset.
func appProperties(ctx *provisioning.Context, s config.AppInstanceSpec) (map[string]any, error) {
	url := appURL(ctx, s)
	if url == "" {
		return nil, fmt.Errorf("app instance %q has no url", s.Name)
	}
	groups, err := lookupIDs(ctx, config.CategoryGroup, s.Groups)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve groups: %w", err)
	}
	if groups == nil {
		groups = []string{}
	}

	props := map[string]any{
		"url":    url,
		"groups": groups,
	}
	optional := map[string]string{
		"displayType":     s.DisplayType,
		"featureCategory": s.FeatureCategory,
		"sandbox":         s.Sandbox,
		"permissions":     s.Permissions,
	}
	for k, v := range optional {
		if v != "" {
			props[k] = v
		}
	}
	return props, nil
}
