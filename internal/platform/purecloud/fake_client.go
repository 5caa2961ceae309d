package purecloud

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// FakeClient is an in-memory PlatformManager for tests. Resources are keyed
// by generated IDs; Errors injects a failure for a method name.
type FakeClient struct {
	mu     sync.Mutex
	nextID int

	Roles              map[string]*Role
	Groups             map[string]*Group
	OAuthClients       map[string]*OAuthClient
	Integrations       map[string]*Integration
	IntegrationConfigs map[string]*IntegrationConfig
	Credentials        map[string]*Credential
	DataTables         map[string]*DataTable
	TrunkBases         map[string]*TrunkBase
	DataActions        map[string]*DataAction

	RoleUsers    map[string][]string
	GroupMembers map[string][]string

	Me           *User
	Org          *Organization
	HomeDivision *Division
	Products     []string

	// Errors maps a method name such as "EnsureGroup" to the error it returns.
	Errors map[string]error
	calls  []string
}

var _ PlatformManager = (*FakeClient)(nil)

// NewFakeClient returns an empty org with a user, a home division and no products.
func NewFakeClient() *FakeClient {
	return &FakeClient{
		Roles:              map[string]*Role{},
		Groups:             map[string]*Group{},
		OAuthClients:       map[string]*OAuthClient{},
		Integrations:       map[string]*Integration{},
		IntegrationConfigs: map[string]*IntegrationConfig{},
		Credentials:        map[string]*Credential{},
		DataTables:         map[string]*DataTable{},
		TrunkBases:         map[string]*TrunkBase{},
		DataActions:        map[string]*DataAction{},
		RoleUsers:          map[string][]string{},
		GroupMembers:       map[string][]string{},
		Me:                 &User{ID: "user-1", Name: "Installer"},
		Org:                &Organization{ID: "org-1", Name: "Example Org"},
		HomeDivision:       &Division{ID: "division-home", Name: "Home", HomeDivision: true},
		Errors:             map[string]error{},
	}
}

// Calls returns the names of the methods invoked so far, in order.
func (f *FakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// Count returns the number of resources of every kind still present.
func (f *FakeClient) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Roles) + len(f.Groups) + len(f.OAuthClients) + len(f.Integrations) +
		len(f.Credentials) + len(f.DataTables) + len(f.TrunkBases) + len(f.DataActions)
}

// enter records the call and returns the injected error. Callers hold f.mu.
func (f *FakeClient) enter(method string) error {
	f.calls = append(f.calls, method)
	return f.Errors[method]
}

func (f *FakeClient) id(kind string) string {
	f.nextID++
	return fmt.Sprintf("%s-%04d", kind, f.nextID)
}

func ownedSorted[T any](m map[string]T, prefix string, name func(T) string) []T {
	if prefix == "" {
		return nil
	}
	var out []T
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if strings.HasPrefix(name(m[k]), prefix) {
			out = append(out, m[k])
		}
	}
	return out
}

func findByName[T any](m map[string]T, name string, nameOf func(T) string) (T, bool) {
	for _, v := range m {
		if nameOf(v) == name {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func (f *FakeClient) ListRoles(_ context.Context, prefix string) ([]*Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListRoles"); err != nil {
		return nil, err
	}
	return ownedSorted(f.Roles, prefix, func(r *Role) string { return r.Name }), nil
}

func (f *FakeClient) GetRole(_ context.Context, id string) (*Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetRole"); err != nil {
		return nil, err
	}
	return f.Roles[id], nil
}

func (f *FakeClient) EnsureRole(_ context.Context, opts RoleCreateOpts) (*Role, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("EnsureRole"); err != nil {
		return nil, false, err
	}
	if r, ok := findByName(f.Roles, opts.Name, func(r *Role) string { return r.Name }); ok {
		r.PermissionPolicies = opts.PermissionPolicies
		return r, false, nil
	}
	r := &Role{ID: f.id("role"), Name: opts.Name, Description: opts.Description, PermissionPolicies: opts.PermissionPolicies}
	f.Roles[r.ID] = r
	return r, true, nil
}

func (f *FakeClient) DeleteRole(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteRole"); err != nil {
		return err
	}
	delete(f.Roles, id)
	delete(f.RoleUsers, id)
	return nil
}

func (f *FakeClient) AddRoleUsers(_ context.Context, roleID string, userIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("AddRoleUsers"); err != nil {
		return err
	}
	if _, ok := f.Roles[roleID]; !ok {
		return &APIError{Status: 404, Message: "role not found"}
	}
	f.RoleUsers[roleID] = appendUnique(f.RoleUsers[roleID], userIDs...)
	return nil
}

func (f *FakeClient) ListGroups(_ context.Context, prefix string) ([]*Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListGroups"); err != nil {
		return nil, err
	}
	return ownedSorted(f.Groups, prefix, func(g *Group) string { return g.Name }), nil
}

func (f *FakeClient) GetGroup(_ context.Context, id string) (*Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetGroup"); err != nil {
		return nil, err
	}
	return f.Groups[id], nil
}

func (f *FakeClient) EnsureGroup(_ context.Context, opts GroupCreateOpts) (*Group, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("EnsureGroup"); err != nil {
		return nil, false, err
	}
	if g, ok := findByName(f.Groups, opts.Name, func(g *Group) string { return g.Name }); ok {
		return g, false, nil
	}
	g := &Group{ID: f.id("group"), Name: opts.Name, Description: opts.Description, Type: "official", Visibility: "public", RulesVisible: true, Version: 1}
	f.Groups[g.ID] = g
	return g, true, nil
}

func (f *FakeClient) DeleteGroup(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteGroup"); err != nil {
		return err
	}
	delete(f.Groups, id)
	delete(f.GroupMembers, id)
	return nil
}

func (f *FakeClient) AddGroupMembers(_ context.Context, groupID string, userIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("AddGroupMembers"); err != nil {
		return err
	}
	g, ok := f.Groups[groupID]
	if !ok {
		return &APIError{Status: 404, Message: "group not found"}
	}
	f.GroupMembers[groupID] = appendUnique(f.GroupMembers[groupID], userIDs...)
	g.MemberCount = len(f.GroupMembers[groupID])
	g.Version++
	return nil
}

func (f *FakeClient) ListOAuthClients(_ context.Context, prefix string) ([]*OAuthClient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListOAuthClients"); err != nil {
		return nil, err
	}
	return ownedSorted(f.OAuthClients, prefix, func(o *OAuthClient) string { return o.Name }), nil
}

func (f *FakeClient) GetOAuthClient(_ context.Context, id string) (*OAuthClient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetOAuthClient"); err != nil {
		return nil, err
	}
	return f.OAuthClients[id], nil
}

func (f *FakeClient) EnsureOAuthClient(_ context.Context, opts OAuthClientCreateOpts) (*OAuthClient, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("EnsureOAuthClient"); err != nil {
		return nil, false, err
	}
	for _, rd := range opts.RoleDivisions {
		if _, ok := f.Roles[rd.RoleID]; !ok {
			return nil, false, &APIError{Status: 400, Message: "unknown role " + rd.RoleID}
		}
	}
	if o, ok := findByName(f.OAuthClients, opts.Name, func(o *OAuthClient) string { return o.Name }); ok {
		o.RoleDivisions = opts.RoleDivisions
		return o, false, nil
	}
	id := f.id("client")
	o := &OAuthClient{
		ID:                         id,
		Name:                       opts.Name,
		Description:                opts.Description,
		AuthorizedGrantType:        opts.GrantType,
		AccessTokenValiditySeconds: opts.AccessTokenValiditySeconds,
		RoleDivisions:              opts.RoleDivisions,
		Secret:                     "secret-" + id,
	}
	f.OAuthClients[id] = o
	return o, true, nil
}

func (f *FakeClient) DeleteOAuthClient(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteOAuthClient"); err != nil {
		return err
	}
	delete(f.OAuthClients, id)
	return nil
}

func (f *FakeClient) ListIntegrations(_ context.Context, prefix, typeID string) ([]*Integration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListIntegrations"); err != nil {
		return nil, err
	}
	all := ownedSorted(f.Integrations, prefix, func(i *Integration) string { return i.Name })
	if typeID == "" {
		return all, nil
	}
	var out []*Integration
	for _, i := range all {
		if i.TypeID() == typeID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *FakeClient) GetIntegration(_ context.Context, id string) (*Integration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetIntegration"); err != nil {
		return nil, err
	}
	return f.Integrations[id], nil
}

func (f *FakeClient) EnsureIntegration(_ context.Context, opts IntegrationCreateOpts) (*Integration, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("EnsureIntegration"); err != nil {
		return nil, false, err
	}
	if i, ok := findByName(f.Integrations, opts.Name, func(i *Integration) string { return i.Name }); ok {
		if i.TypeID() != opts.TypeID {
			return nil, false, fmt.Errorf("integration %q exists with type %q, want %q", i.Name, i.TypeID(), opts.TypeID)
		}
		return i, false, nil
	}
	i := &Integration{ID: f.id("integration"), Name: opts.Name, IntegrationType: &DomainRef{ID: opts.TypeID}, Notes: opts.Notes, IntendedState: "DISABLED"}
	f.Integrations[i.ID] = i
	f.IntegrationConfigs[i.ID] = &IntegrationConfig{Name: opts.Name, Version: 1, Notes: opts.Notes}
	return i, true, nil
}

func (f *FakeClient) GetIntegrationConfig(_ context.Context, id string) (*IntegrationConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetIntegrationConfig"); err != nil {
		return nil, err
	}
	cfg, ok := f.IntegrationConfigs[id]
	if !ok {
		return nil, &APIError{Status: 404, Message: "integration not found"}
	}
	out := *cfg
	return &out, nil
}

func (f *FakeClient) UpdateIntegrationConfig(_ context.Context, id string, cfg *IntegrationConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("UpdateIntegrationConfig"); err != nil {
		return err
	}
	current, ok := f.IntegrationConfigs[id]
	if !ok {
		return &APIError{Status: 404, Message: "integration not found"}
	}
	for key, ref := range cfg.Credentials {
		if _, ok := f.Credentials[ref.ID]; !ok {
			return &APIError{Status: 400, Message: fmt.Sprintf("credential %s for %s not found", ref.ID, key)}
		}
	}
	next := *cfg
	next.Version = current.Version + 1
	if next.Name == "" {
		next.Name = current.Name
	}
	f.IntegrationConfigs[id] = &next
	return nil
}

func (f *FakeClient) SetIntegrationEnabled(_ context.Context, id string, enabled bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("SetIntegrationEnabled"); err != nil {
		return err
	}
	i, ok := f.Integrations[id]
	if !ok {
		return &APIError{Status: 404, Message: "integration not found"}
	}
	i.IntendedState = "DISABLED"
	if enabled {
		i.IntendedState = "ENABLED"
	}
	return nil
}

func (f *FakeClient) DeleteIntegration(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteIntegration"); err != nil {
		return err
	}
	delete(f.Integrations, id)
	delete(f.IntegrationConfigs, id)
	for aid, a := range f.DataActions {
		if a.IntegrationID == id {
			delete(f.DataActions, aid)
		}
	}
	return nil
}

func (f *FakeClient) ListCredentials(_ context.Context, prefix string) ([]*Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListCredentials"); err != nil {
		return nil, err
	}
	return ownedSorted(f.Credentials, prefix, func(c *Credential) string { return c.Name }), nil
}

func (f *FakeClient) EnsureCredential(_ context.Context, opts CredentialCreateOpts) (*Credential, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("EnsureCredential"); err != nil {
		return nil, false, err
	}
	if c, ok := findByName(f.Credentials, opts.Name, func(c *Credential) string { return c.Name }); ok {
		c.CredentialFields = opts.Fields
		return c, false, nil
	}
	c := &Credential{ID: f.id("credential"), Name: opts.Name, Type: CredentialType{Name: opts.Type}, CredentialFields: opts.Fields}
	f.Credentials[c.ID] = c
	return c, true, nil
}

func (f *FakeClient) DeleteCredential(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteCredential"); err != nil {
		return err
	}
	delete(f.Credentials, id)
	return nil
}

func (f *FakeClient) ListDataTables(_ context.Context, prefix string) ([]*DataTable, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListDataTables"); err != nil {
		return nil, err
	}
	return ownedSorted(f.DataTables, prefix, func(d *DataTable) string { return d.Name }), nil
}

func (f *FakeClient) GetDataTable(_ context.Context, id string) (*DataTable, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetDataTable"); err != nil {
		return nil, err
	}
	return f.DataTables[id], nil
}

func (f *FakeClient) EnsureDataTable(_ context.Context, opts DataTableCreateOpts) (*DataTable, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("EnsureDataTable"); err != nil {
		return nil, false, err
	}
	if d, ok := findByName(f.DataTables, opts.Name, func(d *DataTable) string { return d.Name }); ok {
		return d, false, nil
	}
	d := &DataTable{ID: f.id("datatable"), Name: opts.Name, Description: opts.Description, Schema: opts.Schema}
	f.DataTables[d.ID] = d
	return d, true, nil
}

func (f *FakeClient) DeleteDataTable(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteDataTable"); err != nil {
		return err
	}
	delete(f.DataTables, id)
	return nil
}

func (f *FakeClient) ListTrunkBases(_ context.Context, prefix string) ([]*TrunkBase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListTrunkBases"); err != nil {
		return nil, err
	}
	return ownedSorted(f.TrunkBases, prefix, func(t *TrunkBase) string { return t.Name }), nil
}

func (f *FakeClient) GetTrunkBase(_ context.Context, id string) (*TrunkBase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetTrunkBase"); err != nil {
		return nil, err
	}
	return f.TrunkBases[id], nil
}

func (f *FakeClient) EnsureTrunkBase(_ context.Context, opts TrunkBaseCreateOpts) (*TrunkBase, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("EnsureTrunkBase"); err != nil {
		return nil, false, err
	}
	if t, ok := findByName(f.TrunkBases, opts.Name, func(t *TrunkBase) string { return t.Name }); ok {
		return t, false, nil
	}
	t := &TrunkBase{ID: f.id("trunk"), Name: opts.Name, TrunkMetabase: &DomainRef{ID: opts.MetabaseID}, TrunkType: opts.TrunkType, Properties: opts.Properties, State: "active"}
	f.TrunkBases[t.ID] = t
	return t, true, nil
}

func (f *FakeClient) DeleteTrunkBase(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteTrunkBase"); err != nil {
		return err
	}
	delete(f.TrunkBases, id)
	return nil
}

func (f *FakeClient) ListDataActions(_ context.Context, integrationID string) ([]*DataAction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListDataActions"); err != nil {
		return nil, err
	}
	var out []*DataAction
	for _, k := range slices.Sorted(maps.Keys(f.DataActions)) {
		if f.DataActions[k].IntegrationID == integrationID {
			out = append(out, f.DataActions[k])
		}
	}
	return out, nil
}

func (f *FakeClient) EnsureDataAction(_ context.Context, action *DataAction) (*DataAction, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("EnsureDataAction"); err != nil {
		return nil, false, err
	}
	if _, ok := f.Integrations[action.IntegrationID]; !ok {
		return nil, false, &APIError{Status: 400, Message: "unknown integration " + action.IntegrationID}
	}
	for _, a := range f.DataActions {
		if a.IntegrationID == action.IntegrationID && a.Name == action.Name {
			return a, false, nil
		}
	}
	a := *action
	a.ID = f.id("action")
	f.DataActions[a.ID] = &a
	return &a, true, nil
}

func (f *FakeClient) DeleteDataAction(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteDataAction"); err != nil {
		return err
	}
	delete(f.DataActions, id)
	return nil
}

func (f *FakeClient) GetMe(_ context.Context) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetMe"); err != nil {
		return nil, err
	}
	return f.Me, nil
}

func (f *FakeClient) GetOrganization(_ context.Context) (*Organization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetOrganization"); err != nil {
		return nil, err
	}
	return f.Org, nil
}

func (f *FakeClient) GetHomeDivision(_ context.Context) (*Division, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetHomeDivision"); err != nil {
		return nil, err
	}
	return f.HomeDivision, nil
}

func (f *FakeClient) HasProduct(_ context.Context, productID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("HasProduct"); err != nil {
		return false, err
	}
	return slices.Contains(f.Products, productID), nil
}

// CleanupByPrefix removes every prefixed resource.
func (f *FakeClient) CleanupByPrefix(_ context.Context, prefix string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CleanupByPrefix"); err != nil {
		return err
	}
	if prefix == "" {
		return ErrEmptyPrefix
	}
	for id, i := range f.Integrations {
		if strings.HasPrefix(i.Name, prefix) {
			for aid, a := range f.DataActions {
				if a.IntegrationID == id {
					delete(f.DataActions, aid)
				}
			}
		}
	}
	deletePrefixed(f.Integrations, prefix, func(i *Integration) string { return i.Name })
	deletePrefixed(f.Credentials, prefix, func(c *Credential) string { return c.Name })
	deletePrefixed(f.TrunkBases, prefix, func(t *TrunkBase) string { return t.Name })
	deletePrefixed(f.DataTables, prefix, func(d *DataTable) string { return d.Name })
	deletePrefixed(f.OAuthClients, prefix, func(o *OAuthClient) string { return o.Name })
	deletePrefixed(f.Groups, prefix, func(g *Group) string { return g.Name })
	deletePrefixed(f.Roles, prefix, func(r *Role) string { return r.Name })
	return nil
}

func deletePrefixed[T any](m map[string]T, prefix string, name func(T) string) {
	for id, v := range m {
		if strings.HasPrefix(name(v), prefix) {
			delete(m, id)
		}
	}
}

func appendUnique(list []string, items ...string) []string {
	for _, it := range items {
		if !slices.Contains(list, it) {
			list = append(list, it)
		}
	}
	return list
}
