package purecloud

import (
	"context"
)

// Integration type IDs the installer provisions.
const (
	TypeClientApp   = "embedded-client-app"
	TypeDataActions = "purecloud-data-actions"
)

// CredentialTypeClientCredentials is the credential type data-action
// integrations authenticate with against Genesys Cloud itself.
const CredentialTypeClientCredentials = "pureCloudOAuthClient"

// RoleCreateOpts holds the parameters for creating a role.
type RoleCreateOpts struct {
	Name               string
	Description        string
	PermissionPolicies []PermissionPolicy
}

// GroupCreateOpts holds the parameters for creating a group.
type GroupCreateOpts struct {
	Name        string
	Description string
}

// OAuthClientCreateOpts holds the parameters for creating an OAuth client.
type OAuthClientCreateOpts struct {
	Name                       string
	Description                string
	GrantType                  string
	AccessTokenValiditySeconds int
	RoleDivisions              []RoleDivision
}

// IntegrationCreateOpts holds the parameters for creating an integration.
type IntegrationCreateOpts struct {
	Name   string
	TypeID string
	Notes  string
}

// CredentialCreateOpts holds the parameters for creating a credential.
type CredentialCreateOpts struct {
	Name   string
	Type   string
	Fields map[string]string
}

// DataTableCreateOpts holds the parameters for creating a data table.
type DataTableCreateOpts struct {
	Name        string
	Description string
	Schema      map[string]any
}

// TrunkBaseCreateOpts holds the parameters for creating trunk base settings.
type TrunkBaseCreateOpts struct {
	Name       string
	MetabaseID string
	TrunkType  string
	Properties map[string]any
}

// RoleManager manages authorization roles.
type RoleManager interface {
	ListRoles(ctx context.Context, prefix string) ([]*Role, error)
	GetRole(ctx context.Context, id string) (*Role, error)
	// EnsureRole returns the role with opts.Name, creating it when absent.
	// The bool reports whether it was created.
	EnsureRole(ctx context.Context, opts RoleCreateOpts) (*Role, bool, error)
	DeleteRole(ctx context.Context, id string) error
	AddRoleUsers(ctx context.Context, roleID string, userIDs []string) error
}

// GroupManager manages groups.
type GroupManager interface {
	ListGroups(ctx context.Context, prefix string) ([]*Group, error)
	GetGroup(ctx context.Context, id string) (*Group, error)
	EnsureGroup(ctx context.Context, opts GroupCreateOpts) (*Group, bool, error)
	DeleteGroup(ctx context.Context, id string) error
	AddGroupMembers(ctx context.Context, groupID string, userIDs []string) error
}

// OAuthClientManager manages OAuth clients.
type OAuthClientManager interface {
	ListOAuthClients(ctx context.Context, prefix string) ([]*OAuthClient, error)
	GetOAuthClient(ctx context.Context, id string) (*OAuthClient, error)
	// EnsureOAuthClient returns the client with its secret populated.
	EnsureOAuthClient(ctx context.Context, opts OAuthClientCreateOpts) (*OAuthClient, bool, error)
	DeleteOAuthClient(ctx context.Context, id string) error
}

// IntegrationManager manages integration instances and their credentials.
type IntegrationManager interface {
	// ListIntegrations lists prefixed integrations. An empty typeID matches all types.
	ListIntegrations(ctx context.Context, prefix, typeID string) ([]*Integration, error)
	GetIntegration(ctx context.Context, id string) (*Integration, error)
	EnsureIntegration(ctx context.Context, opts IntegrationCreateOpts) (*Integration, bool, error)
	GetIntegrationConfig(ctx context.Context, id string) (*IntegrationConfig, error)
	// UpdateIntegrationConfig replaces the current config. The version is
	// taken from the live config, so callers need not track it.
	UpdateIntegrationConfig(ctx context.Context, id string, cfg *IntegrationConfig) error
	SetIntegrationEnabled(ctx context.Context, id string, enabled bool) error
	DeleteIntegration(ctx context.Context, id string) error

	ListCredentials(ctx context.Context, prefix string) ([]*Credential, error)
	// EnsureCredential creates the credential or overwrites the fields of an
	// existing one with the same name.
	EnsureCredential(ctx context.Context, opts CredentialCreateOpts) (*Credential, bool, error)
	DeleteCredential(ctx context.Context, id string) error
}

// DataTableManager manages Architect data tables.
type DataTableManager interface {
	ListDataTables(ctx context.Context, prefix string) ([]*DataTable, error)
	GetDataTable(ctx context.Context, id string) (*DataTable, error)
	EnsureDataTable(ctx context.Context, opts DataTableCreateOpts) (*DataTable, bool, error)
	DeleteDataTable(ctx context.Context, id string) error
}

// TrunkManager manages BYOC trunk base settings.
type TrunkManager interface {
	ListTrunkBases(ctx context.Context, prefix string) ([]*TrunkBase, error)
	GetTrunkBase(ctx context.Context, id string) (*TrunkBase, error)
	EnsureTrunkBase(ctx context.Context, opts TrunkBaseCreateOpts) (*TrunkBase, bool, error)
	DeleteTrunkBase(ctx context.Context, id string) error
}

// DataActionManager manages the actions of a data-action integration.
type DataActionManager interface {
	ListDataActions(ctx context.Context, integrationID string) ([]*DataAction, error)
	// EnsureDataAction matches existing actions by name within the integration.
	EnsureDataAction(ctx context.Context, action *DataAction) (*DataAction, bool, error)
	DeleteDataAction(ctx context.Context, id string) error
}

// OrgManager answers questions about the org and the caller.
type OrgManager interface {
	// GetMe returns the calling user, or nil when the token has no user
	// context (client credentials).
	GetMe(ctx context.Context) (*User, error)
	GetOrganization(ctx context.Context) (*Organization, error)
	GetHomeDivision(ctx context.Context) (*Division, error)
	HasProduct(ctx context.Context, productID string) (bool, error)
}

// PlatformManager combines all resource interfaces.
type PlatformManager interface {
	RoleManager
	GroupManager
	OAuthClientManager
	IntegrationManager
	DataTableManager
	TrunkManager
	DataActionManager
	OrgManager

	// CleanupByPrefix deletes every resource whose name starts with prefix.
	CleanupByPrefix(ctx context.Context, prefix string) error
}
