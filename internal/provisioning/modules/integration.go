package modules

import (
	"slices"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
	"github.com/purecloudlabs/premium-app-installer/internal/platform/purecloud"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
)

// ExtraType is the Resource.Extra key holding an integration's type ID.
const ExtraType = "type"

// listIntegrations returns the prefixed integrations of the given types.
// Each type is listed once; defaultType is always included so resources
// survive a manifest that no longer lists any item.
func listIntegrations(ctx *provisioning.Context, category config.Category, defaultType string, types []string) ([]provisioning.Resource, error) {
	all := append([]string{defaultType}, types...)
	slices.Sort(all)
	all = slices.Compact(all)

	var out []provisioning.Resource
	for _, typ := range all {
		integrations, err := ctx.Platform.ListIntegrations(ctx, ctx.Manifest.Prefix, typ)
		if err != nil {
			return nil, err
		}
		for _, i := range integrations {
			r := existing(ctx, category, i.Name, i.ID)
			r.Extra = map[string]string{ExtraType: i.TypeID()}
			out = append(out, r)
		}
	}
	return out, nil
}

// applyConfig merges properties and credentials into the live config of an
// integration and enables it.
func applyConfig(ctx *provisioning.Context, id string, properties map[string]any, credentials map[string]purecloud.CredentialRef) error {
	current, err := ctx.Platform.GetIntegrationConfig(ctx, id)
	if err != nil {
		return err
	}
	if properties != nil {
		if current.Properties == nil {
			current.Properties = make(map[string]any, len(properties))
		}
		for k, v := range properties {
			current.Properties[k] = v
		}
	}
	if credentials != nil {
		current.Credentials = credentials
	}
	if err := ctx.Platform.UpdateIntegrationConfig(ctx, id, current); err != nil {
		return err
	}
	return ctx.Platform.SetIntegrationEnabled(ctx, id, true)
}
