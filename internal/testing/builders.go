package testing

import (
	"maps"
	"slices"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
)

// ConfigBuilder provides a fluent interface for constructing test configs.
// Each method returns a new builder (immutable) for chaining.
type ConfigBuilder struct {
	cfg config.Config
}

// NewConfigBuilder creates a new ConfigBuilder with sensible defaults.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: config.Config{
			Environment:  "mypurecloud.com",
			Language:     "en-us",
			AuthMode:     config.AuthClientCredentials,
			AppURL:       "https://app.example.com/index.html?env={{pcEnvironment}}",
			Prefix:       "TEST_",
			RedirectPort: config.DefaultRedirectPort,
			ClientID:     "client-id",
			ClientSecret: "client-secret",
		},
	}
}

// WithEnvironment sets the region domain.
func (b *ConfigBuilder) WithEnvironment(env string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Environment = env
	return newBuilder
}

// WithAuthMode sets the OAuth flow.
func (b *ConfigBuilder) WithAuthMode(mode config.AuthMode) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.AuthMode = mode
	return newBuilder
}

// WithPrefix sets the name prefix override.
func (b *ConfigBuilder) WithPrefix(prefix string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Prefix = prefix
	return newBuilder
}

// WithAppURL sets the app URL.
func (b *ConfigBuilder) WithAppURL(url string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.AppURL = url
	return newBuilder
}

// WithReportPath sets the local report path.
func (b *ConfigBuilder) WithReportPath(path string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Report.Path = path
	return newBuilder
}

// WithS3 configures report upload to an S3-compatible endpoint.
func (b *ConfigBuilder) WithS3(endpoint, bucket string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Report.S3 = &config.S3Config{
		Endpoint:  endpoint,
		Region:    "us-east-1",
		Bucket:    bucket,
		AccessKey: "access",
		SecretKey: "secret",
	}
	return newBuilder
}

// Build returns the constructed config.
func (b *ConfigBuilder) Build() *config.Config {
	return &b.clone().cfg
}

// clone creates a deep copy of the builder for immutability.
func (b *ConfigBuilder) clone() *ConfigBuilder {
	newCfg := b.cfg
	if b.cfg.Report.S3 != nil {
		s3 := *b.cfg.Report.S3
		newCfg.Report.S3 = &s3
	}
	return &ConfigBuilder{cfg: newCfg}
}

// MinimalConfig returns a minimal valid config for simple tests.
func MinimalConfig() *config.Config {
	return NewConfigBuilder().Build()
}

// ManifestBuilder provides a fluent interface for constructing test manifests.
type ManifestBuilder struct {
	m config.Manifest
}

// NewManifestBuilder creates an empty manifest with the default order.
func NewManifestBuilder() *ManifestBuilder {
	return &ManifestBuilder{
		m: config.Manifest{
			Prefix:    "TEST_",
			ProductID: "premium-app-test",
			Order:     config.DefaultOrder(),
		},
	}
}

// WithPrefix sets the manifest prefix.
func (b *ManifestBuilder) WithPrefix(prefix string) *ManifestBuilder {
	newBuilder := b.clone()
	newBuilder.m.Prefix = prefix
	return newBuilder
}

// WithOrder replaces the provisioning order.
func (b *ManifestBuilder) WithOrder(order ...config.Category) *ManifestBuilder {
	newBuilder := b.clone()
	newBuilder.m.Order = order
	return newBuilder
}

// WithRole adds a role with one integration permission.
func (b *ManifestBuilder) WithRole(name string, assignToInstaller bool) *ManifestBuilder {
	newBuilder := b.clone()
	newBuilder.m.Roles = append(newBuilder.m.Roles, config.RoleSpec{
		Name: name,
		PermissionPolicies: []config.PermissionPolicy{
			{Domain: "integration", EntityName: "examplePremiumApp", ActionSet: []string{"*"}},
		},
		AssignToInstaller: assignToInstaller,
	})
	return newBuilder
}

// WithGroup adds a group.
func (b *ManifestBuilder) WithGroup(name string, addInstaller bool) *ManifestBuilder {
	newBuilder := b.clone()
	newBuilder.m.Groups = append(newBuilder.m.Groups, config.GroupSpec{Name: name, AddInstaller: addInstaller})
	return newBuilder
}

// WithOAuthClient adds a client-credentials client holding roles.
func (b *ManifestBuilder) WithOAuthClient(name string, roles ...string) *ManifestBuilder {
	newBuilder := b.clone()
	newBuilder.m.OAuthClients = append(newBuilder.m.OAuthClients, config.OAuthClientSpec{
		Name:      name,
		GrantType: config.DefaultGrantType,
		Roles:     roles,
	})
	return newBuilder
}

// WithAppInstance adds a standalone client app visible to groups.
func (b *ManifestBuilder) WithAppInstance(name string, groups ...string) *ManifestBuilder {
	newBuilder := b.clone()
	newBuilder.m.AppInstances = append(newBuilder.m.AppInstances, config.AppInstanceSpec{
		Name:        name,
		Type:        config.DefaultAppInstanceType,
		DisplayType: "standalone",
		Groups:      groups,
	})
	return newBuilder
}

// WithDataTable adds a data table with one string field.
func (b *ManifestBuilder) WithDataTable(name string) *ManifestBuilder {
	newBuilder := b.clone()
	newBuilder.m.DataTables = append(newBuilder.m.DataTables, config.DataTableSpec{
		Name:   name,
		Fields: []config.DataTableField{{Name: "value", Type: "string"}},
	})
	return newBuilder
}

// WithTrunk adds a BYOC trunk with default metabase.
func (b *ManifestBuilder) WithTrunk(name string) *ManifestBuilder {
	newBuilder := b.clone()
	newBuilder.m.Trunks = append(newBuilder.m.Trunks, config.TrunkSpec{
		Name:       name,
		Metabase:   config.DefaultTrunkMetabase,
		Type:       config.DefaultTrunkType,
		Properties: map[string]any{"trunk_label": name},
	})
	return newBuilder
}

// WithDataAction adds a data-action integration using an OAuth client,
// with one GET action per action name.
func (b *ManifestBuilder) WithDataAction(name, oauthClient string, actions ...string) *ManifestBuilder {
	newBuilder := b.clone()
	spec := config.DataActionSpec{Name: name, Type: config.DefaultDataActionType, OAuthClient: oauthClient}
	for _, a := range actions {
		spec.Actions = append(spec.Actions, config.ActionSpec{
			Name:               a,
			RequestURLTemplate: "/api/v2/" + a,
			RequestType:        "GET",
		})
	}
	newBuilder.m.DataActions = append(newBuilder.m.DataActions, spec)
	return newBuilder
}

// Build returns the constructed manifest.
func (b *ManifestBuilder) Build() *config.Manifest {
	return &b.clone().m
}

// clone copies every item slice so builders never share backing arrays.
func (b *ManifestBuilder) clone() *ManifestBuilder {
	m := b.m
	m.Order = slices.Clone(b.m.Order)
	m.Roles = slices.Clone(b.m.Roles)
	m.Groups = slices.Clone(b.m.Groups)
	m.OAuthClients = slices.Clone(b.m.OAuthClients)
	m.AppInstances = slices.Clone(b.m.AppInstances)
	m.DataTables = slices.Clone(b.m.DataTables)
	m.Trunks = slices.Clone(b.m.Trunks)
	for i, t := range m.Trunks {
		m.Trunks[i].Properties = maps.Clone(t.Properties)
	}
	m.DataActions = slices.Clone(b.m.DataActions)
	for i, d := range m.DataActions {
		m.DataActions[i].Actions = slices.Clone(d.Actions)
	}
	return &ManifestBuilder{m: m}
}

// FullManifest returns a manifest with one item of every category, wired the
// way the default manifest is.
func FullManifest() *config.Manifest {
	return NewManifestBuilder().
		WithRole("Role", true).
		WithGroup("Supervisors", true).
		WithGroup("Agents", false).
		WithOAuthClient("Client", "Role").
		WithAppInstance("App", "Supervisors").
		WithDataTable("Lookup").
		WithTrunk("Trunk").
		WithDataAction("Actions", "Client", "get-members").
		Build()
}
