package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/purecloudlabs/premium-app-installer/internal/util/naming"
)

//go:embed default_manifest.yaml
var defaultManifest []byte

// Category names one kind of platform resource.
type Category string

// Resource categories, in their default provisioning order.
const (
	CategoryRole        Category = "role"
	CategoryGroup       Category = "group"
	CategoryOAuthClient Category = "oauth-client"
	CategoryAppInstance Category = "app-instance"
	CategoryDataTable   Category = "data-table"
	CategoryTrunk       Category = "trunk"
	CategoryDataAction  Category = "data-action"
)

// DefaultOrder returns the default provisioning order.
// Roles precede OAuth clients, whose role divisions reference them, and OAuth
// clients precede data actions, whose credentials reference them.
func DefaultOrder() []Category {
	return []Category{
		CategoryRole,
		CategoryGroup,
		CategoryOAuthClient,
		CategoryAppInstance,
		CategoryDataTable,
		CategoryTrunk,
		CategoryDataAction,
	}
}

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	return slices.Contains(DefaultOrder(), c)
}

// Manifest is the declarative description of everything the installer provisions.
type Manifest struct {
	// Prefix is prepended to every provisioned name.
	Prefix string `yaml:"prefix,omitempty"`

	// ProductID is the Genesys Cloud product the org must own.
	ProductID string `yaml:"productId,omitempty"`

	// Order is the provisioning order. Uninstall walks it backwards.
	Order []Category `yaml:"order,omitempty"`

	Roles        []RoleSpec        `yaml:"roles,omitempty"`
	Groups       []GroupSpec       `yaml:"groups,omitempty"`
	OAuthClients []OAuthClientSpec `yaml:"oauthClients,omitempty"`
	AppInstances []AppInstanceSpec `yaml:"appInstances,omitempty"`
	DataTables   []DataTableSpec   `yaml:"dataTables,omitempty"`
	Trunks       []TrunkSpec       `yaml:"trunks,omitempty"`
	DataActions  []DataActionSpec  `yaml:"dataActions,omitempty"`
}

// PermissionPolicy grants actions on one entity of a permission domain.
type PermissionPolicy struct {
	Domain     string   `yaml:"domain"`
	EntityName string   `yaml:"entityName"`
	ActionSet  []string `yaml:"actionSet"`
}

// RoleSpec describes an authorization role.
type RoleSpec struct {
	Name               string             `yaml:"name"`
	Description        string             `yaml:"description,omitempty"`
	PermissionPolicies []PermissionPolicy `yaml:"permissionPolicies,omitempty"`
	// AssignToInstaller grants the role to the user running the installer.
	AssignToInstaller bool `yaml:"assignToInstaller,omitempty"`
}

// GroupSpec describes a group.
type GroupSpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	// AddInstaller adds the user running the installer as a member.
	AddInstaller bool `yaml:"addInstaller,omitempty"`
}

// OAuthClientSpec describes an OAuth client.
type OAuthClientSpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	// GrantType defaults to CLIENT_CREDENTIALS.
	GrantType string `yaml:"grantType,omitempty"`
	// Roles are manifest role names; they become the client's role divisions.
	Roles                []string `yaml:"roles,omitempty"`
	TokenLifetimeSeconds int      `yaml:"tokenLifetimeSeconds,omitempty"`
}

// AppInstanceSpec describes a client app integration instance.
type AppInstanceSpec struct {
	Name string `yaml:"name"`
	// Type is the integration type ID, embedded-client-app by default.
	Type string `yaml:"type,omitempty"`
	// URL overrides the configured app URL.
	URL string `yaml:"url,omitempty"`
	// DisplayType is standalone, widget or the like.
	DisplayType     string `yaml:"displayType,omitempty"`
	FeatureCategory string `yaml:"featureCategory,omitempty"`
	Sandbox         string `yaml:"sandbox,omitempty"`
	Permissions     string `yaml:"permissions,omitempty"`
	// Groups are manifest group names used as the visibility filter.
	Groups []string `yaml:"groups,omitempty"`
	Notes  string   `yaml:"notes,omitempty"`
}

// DataTableField is a custom column of a data table.
type DataTableField struct {
	Name string `yaml:"name"`
	// Type is string, integer, number or boolean.
	Type string `yaml:"type"`
}

// DataTableSpec describes an architect data table.
type DataTableSpec struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description,omitempty"`
	Fields      []DataTableField `yaml:"fields,omitempty"`
}

// TrunkSpec describes BYOC cloud trunk base settings.
type TrunkSpec struct {
	Name string `yaml:"name"`
	// Metabase defaults to the BYOC carrier metabase.
	Metabase string `yaml:"metabase,omitempty"`
	// Type defaults to EXTERNAL.
	Type       string         `yaml:"type,omitempty"`
	Properties map[string]any `yaml:"properties,omitempty"`
}

// DataActionSpec describes a data-action integration and its actions.
type DataActionSpec struct {
	Name string `yaml:"name"`
	// Type defaults to purecloud-data-actions.
	Type string `yaml:"type,omitempty"`
	// OAuthClient is the manifest OAuth client whose credentials the
	// integration authenticates with.
	OAuthClient string       `yaml:"oauthClient"`
	Actions     []ActionSpec `yaml:"actions,omitempty"`
}

// ActionSpec describes one data action.
type ActionSpec struct {
	Name               string            `yaml:"name"`
	Category           string            `yaml:"category,omitempty"`
	Secure             bool              `yaml:"secure,omitempty"`
	RequestURLTemplate string            `yaml:"requestUrlTemplate"`
	RequestType        string            `yaml:"requestType,omitempty"`
	RequestTemplate    string            `yaml:"requestTemplate,omitempty"`
	Headers            map[string]string `yaml:"headers,omitempty"`
	TranslationMap     map[string]string `yaml:"translationMap,omitempty"`
	SuccessTemplate    string            `yaml:"successTemplate,omitempty"`
	InputSchema        map[string]any    `yaml:"inputSchema,omitempty"`
	OutputSchema       map[string]any    `yaml:"outputSchema,omitempty"`
}

// Manifest defaults.
const (
	DefaultAppInstanceType = "embedded-client-app"
	DefaultDataActionType  = "purecloud-data-actions"
	DefaultTrunkMetabase   = "external_sip_pcv_byoc_carrier.json"
	DefaultTrunkType       = "EXTERNAL"
	DefaultGrantType       = "CLIENT_CREDENTIALS"
)

// DefaultManifest returns the embedded default manifest.
func DefaultManifest() (*Manifest, error) {
	return ParseManifest(defaultManifest)
}

// DefaultManifestYAML returns the raw embedded default manifest.
func DefaultManifestYAML() []byte {
	return bytes.Clone(defaultManifest)
}

// LoadManifest reads a manifest file. An empty path returns the embedded default.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return DefaultManifest()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes a manifest and applies defaults. It does not validate.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	m.applyDefaults()
	return &m, nil
}

// ForConfig loads the manifest referenced by cfg, applies the config's
// overrides, and validates the result.
func ForConfig(cfg *Config) (*Manifest, error) {
	m, err := LoadManifest(cfg.Manifest)
	if err != nil {
		return nil, err
	}
	if cfg.Prefix != "" {
		m.Prefix = cfg.Prefix
	}
	if cfg.ProductID != "" {
		m.ProductID = cfg.ProductID
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("manifest validation failed: %w", err)
	}
	return m, nil
}

func (m *Manifest) applyDefaults() {
	if m.Prefix == "" {
		m.Prefix = naming.DefaultPrefix
	}
	if len(m.Order) == 0 {
		m.Order = DefaultOrder()
	}
	for i := range m.OAuthClients {
		if m.OAuthClients[i].GrantType == "" {
			m.OAuthClients[i].GrantType = DefaultGrantType
		}
	}
	for i := range m.AppInstances {
		if m.AppInstances[i].Type == "" {
			m.AppInstances[i].Type = DefaultAppInstanceType
		}
		if m.AppInstances[i].DisplayType == "" {
			m.AppInstances[i].DisplayType = "standalone"
		}
	}
	for i := range m.Trunks {
		if m.Trunks[i].Metabase == "" {
			m.Trunks[i].Metabase = DefaultTrunkMetabase
		}
		if m.Trunks[i].Type == "" {
			m.Trunks[i].Type = DefaultTrunkType
		}
	}
	for i := range m.DataActions {
		if m.DataActions[i].Type == "" {
			m.DataActions[i].Type = DefaultDataActionType
		}
		for j := range m.DataActions[i].Actions {
			if m.DataActions[i].Actions[j].RequestType == "" {
				m.DataActions[i].Actions[j].RequestType = "GET"
			}
		}
	}
}

// Names returns the manifest item names of a category, in manifest order.
func (m *Manifest) Names(c Category) []string {
	var names []string
	switch c {
	case CategoryRole:
		for _, r := range m.Roles {
			names = append(names, r.Name)
		}
	case CategoryGroup:
		for _, g := range m.Groups {
			names = append(names, g.Name)
		}
	case CategoryOAuthClient:
		for _, o := range m.OAuthClients {
			names = append(names, o.Name)
		}
	case CategoryAppInstance:
		for _, a := range m.AppInstances {
			names = append(names, a.Name)
		}
	case CategoryDataTable:
		for _, d := range m.DataTables {
			names = append(names, d.Name)
		}
	case CategoryTrunk:
		for _, t := range m.Trunks {
			names = append(names, t.Name)
		}
	case CategoryDataAction:
		for _, d := range m.DataActions {
			names = append(names, d.Name)
		}
	}
	return names
}

// Count returns the number of items across all categories.
func (m *Manifest) Count() int {
	n := 0
	for _, c := range DefaultOrder() {
		n += len(m.Names(c))
	}
	return n
}

// Reversed returns the uninstall order.
func (m *Manifest) Reversed() []Category {
	out := slices.Clone(m.Order)
	slices.Reverse(out)
	return out
}

// position returns the index of c in the order, or -1.
func (m *Manifest) position(c Category) int {
	return slices.Index(m.Order, c)
}

// Validate checks order, item names and every cross reference. All problems
// are returned joined.
func (m *Manifest) Validate() error {
	var errs []error

	if err := RuleFor(FieldPrefix).Validate(m.Prefix); err != nil {
		errs = append(errs, err)
	}
	if m.Prefix == "" {
		errs = append(errs, errors.New("prefix must not be empty"))
	}
	if err := RuleFor(FieldProductID).Validate(m.ProductID); err != nil {
		errs = append(errs, err)
	}

	seen := make(map[Category]bool)
	for _, c := range m.Order {
		if !c.IsValid() {
			errs = append(errs, fmt.Errorf("order: unknown category %q", c))
			continue
		}
		if seen[c] {
			errs = append(errs, fmt.Errorf("order: category %q listed twice", c))
		}
		seen[c] = true
	}

	names := make(map[Category]map[string]bool)
	for _, c := range DefaultOrder() {
		items := m.Names(c)
		if len(items) > 0 && !seen[c] {
			errs = append(errs, fmt.Errorf("%s: has %d items but is not in order", c, len(items)))
		}
		names[c] = make(map[string]bool, len(items))
		for _, n := range items {
			for _, rule := range ItemRules {
				if err := rule.Validate(n); err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", c, err))
				}
			}
			if names[c][n] {
				errs = append(errs, fmt.Errorf("%s: duplicate name %q", c, n))
			}
			names[c][n] = true
		}
	}

	ref := func(from Category, item string, to Category, target string, mustPrecede bool) {
		if !names[to][target] {
			errs = append(errs, fmt.Errorf("%s %q references unknown %s %q", from, item, to, target))
			return
		}
		if mustPrecede && m.position(to) > m.position(from) {
			errs = append(errs, fmt.Errorf("%s %q references %s %q, so %s must come before %s in order", from, item, to, target, to, from))
		}
	}

	for _, o := range m.OAuthClients {
		for _, r := range o.Roles {
			ref(CategoryOAuthClient, o.Name, CategoryRole, r, true)
		}
	}
	for _, a := range m.AppInstances {
		for _, g := range a.Groups {
			ref(CategoryAppInstance, a.Name, CategoryGroup, g, false)
		}
	}
	for _, d := range m.DataActions {
		if d.OAuthClient == "" {
			errs = append(errs, fmt.Errorf("%s %q: oauthClient is required", CategoryDataAction, d.Name))
		} else {
			ref(CategoryDataAction, d.Name, CategoryOAuthClient, d.OAuthClient, true)
		}
		actionNames := make(map[string]bool)
		for _, a := range d.Actions {
			if a.Name == "" {
				errs = append(errs, fmt.Errorf("%s %q: action name is required", CategoryDataAction, d.Name))
			}
			if actionNames[a.Name] {
				errs = append(errs, fmt.Errorf("%s %q: duplicate action %q", CategoryDataAction, d.Name, a.Name))
			}
			actionNames[a.Name] = true
			if a.RequestURLTemplate == "" {
				errs = append(errs, fmt.Errorf("%s %q: action %q needs requestUrlTemplate", CategoryDataAction, d.Name, a.Name))
			}
		}
	}
	for _, t := range m.DataTables {
		for _, f := range t.Fields {
			switch f.Type {
			case "string", "integer", "number", "boolean":
			default:
				errs = append(errs, fmt.Errorf("%s %q: field %q has unsupported type %q", CategoryDataTable, t.Name, f.Name, f.Type))
			}
			if f.Name == "" || f.Name == "key" {
				errs = append(errs, fmt.Errorf("%s %q: field name %q is reserved or empty", CategoryDataTable, t.Name, f.Name))
			}
		}
	}

	return errors.Join(errs...)
}
