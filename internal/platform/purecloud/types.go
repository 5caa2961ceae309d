package purecloud

// Wire types for the Genesys Cloud Platform API v2. Only the fields the
// installer reads or writes are modelled.

// entityListing is the paged envelope most list endpoints return.
type entityListing[T any] struct {
	Entities   []T `json:"entities"`
	PageSize   int `json:"pageSize,omitempty"`
	PageNumber int `json:"pageNumber,omitempty"`
	PageCount  int `json:"pageCount,omitempty"`
	Total      int `json:"total,omitempty"`
}

// DomainRef references another entity by ID.
type DomainRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// PermissionPolicy is a role's grant on a permission domain entity.
type PermissionPolicy struct {
	Domain     string   `json:"domain"`
	EntityName string   `json:"entityName"`
	ActionSet  []string `json:"actionSet"`
}

// Role is an authorization role.
type Role struct {
	ID                 string             `json:"id,omitempty"`
	Name               string             `json:"name"`
	Description        string             `json:"description,omitempty"`
	PermissionPolicies []PermissionPolicy `json:"permissionPolicies,omitempty"`
	UserCount          int                `json:"userCount,omitempty"`
}

// Group is a directory group.
type Group struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Type         string `json:"type,omitempty"`
	Visibility   string `json:"visibility,omitempty"`
	RulesVisible bool   `json:"rulesVisible"`
	MemberCount  int    `json:"memberCount,omitempty"`
	Version      int    `json:"version,omitempty"`
}

// RoleDivision grants a role within a division.
type RoleDivision struct {
	RoleID     string `json:"roleId"`
	DivisionID string `json:"divisionId"`
}

// OAuthClient is an OAuth client registration. Secret is only populated for
// confidential grant types.
type OAuthClient struct {
	ID                         string         `json:"id,omitempty"`
	Name                       string         `json:"name"`
	Description                string         `json:"description,omitempty"`
	AuthorizedGrantType        string         `json:"authorizedGrantType"`
	AccessTokenValiditySeconds int            `json:"accessTokenValiditySeconds,omitempty"`
	RoleDivisions              []RoleDivision `json:"roleDivisions,omitempty"`
	Secret                     string         `json:"secret,omitempty"`
}

// Integration is an installed integration instance.
type Integration struct {
	ID              string     `json:"id,omitempty"`
	Name            string     `json:"name"`
	IntegrationType *DomainRef `json:"integrationType,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	IntendedState   string     `json:"intendedState,omitempty"`
}

// TypeID returns the integration type ID, or "" when unknown.
func (i *Integration) TypeID() string {
	if i.IntegrationType == nil {
		return ""
	}
	return i.IntegrationType.ID
}

// CredentialRef points an integration config at a stored credential.
type CredentialRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// IntegrationConfig is the current configuration of an integration.
type IntegrationConfig struct {
	Name        string                   `json:"name"`
	Version     int                      `json:"version"`
	Notes       string                   `json:"notes,omitempty"`
	Properties  map[string]any           `json:"properties,omitempty"`
	Advanced    map[string]any           `json:"advanced,omitempty"`
	Credentials map[string]CredentialRef `json:"credentials,omitempty"`
}

// CredentialType names the type of a stored credential.
type CredentialType struct {
	Name string `json:"name"`
}

// Credential is a stored integration credential.
type Credential struct {
	ID               string            `json:"id,omitempty"`
	Name             string            `json:"name"`
	Type             CredentialType    `json:"type"`
	CredentialFields map[string]string `json:"credentialFields,omitempty"`
}

// DataTable is an Architect data table.
type DataTable struct {
	ID          string         `json:"id,omitempty"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Schema      map[string]any `json:"schema,omitempty"`
}

// TrunkBase is a trunk base settings object, used for BYOC cloud trunks.
type TrunkBase struct {
	ID            string         `json:"id,omitempty"`
	Name          string         `json:"name"`
	TrunkMetabase *DomainRef     `json:"trunkMetabase,omitempty"`
	TrunkType     string         `json:"trunkType,omitempty"`
	Properties    map[string]any `json:"properties,omitempty"`
	State         string         `json:"state,omitempty"`
}

// ActionRequest is the request half of a data action config.
type ActionRequest struct {
	RequestURLTemplate string            `json:"requestUrlTemplate"`
	RequestType        string            `json:"requestType"`
	RequestTemplate    string            `json:"requestTemplate,omitempty"`
	Headers            map[string]string `json:"headers,omitempty"`
}

// ActionResponse is the response half of a data action config.
type ActionResponse struct {
	TranslationMap  map[string]string `json:"translationMap,omitempty"`
	SuccessTemplate string            `json:"successTemplate,omitempty"`
}

// ActionConfig configures how a data action calls out.
type ActionConfig struct {
	Request  ActionRequest  `json:"request"`
	Response ActionResponse `json:"response"`
}

// ActionContract holds the input and output JSON schemas of a data action.
type ActionContract struct {
	Input  ActionSchema `json:"input"`
	Output ActionOutput `json:"output"`
}

// ActionSchema wraps the input schema.
type ActionSchema struct {
	InputSchema map[string]any `json:"inputSchema"`
}

// ActionOutput wraps the success schema.
type ActionOutput struct {
	SuccessSchema map[string]any `json:"successSchema"`
}

// DataAction is an action bound to a data-action integration.
type DataAction struct {
	ID            string         `json:"id,omitempty"`
	Name          string         `json:"name"`
	Category      string         `json:"category,omitempty"`
	IntegrationID string         `json:"integrationId"`
	Secure        bool           `json:"secure,omitempty"`
	Config        ActionConfig   `json:"config"`
	Contract      ActionContract `json:"contract"`
}

// User is a Genesys Cloud user.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Organization is the org the credentials belong to.
type Organization struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	ThirdPartyOrgName string `json:"thirdPartyOrgName,omitempty"`
}

// Division is an authorization division.
type Division struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	HomeDivision bool   `json:"homeDivision,omitempty"`
}

// Product is an org product entitlement.
type Product struct {
	ID string `json:"id"`
}
