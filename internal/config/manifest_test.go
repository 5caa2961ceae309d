package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purecloudlabs/premium-app-installer/internal/util/naming"
)

func TestDefaultManifestIsValid(t *testing.T) {
	t.Parallel()
	m, err := DefaultManifest()
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	assert.Equal(t, naming.DefaultPrefix, m.Prefix)
	assert.Equal(t, DefaultOrder(), m.Order)
	assert.Equal(t, []string{"Role"}, m.Names(CategoryRole))
	assert.Equal(t, []string{"Supervisors", "Agents"}, m.Names(CategoryGroup))
	assert.Equal(t, DefaultAppInstanceType, m.AppInstances[0].Type)
	assert.Equal(t, "widget", m.AppInstances[1].DisplayType)
	assert.Equal(t, DefaultDataActionType, m.DataActions[0].Type)
	assert.Equal(t, DefaultGrantType, m.OAuthClients[0].GrantType)
	assert.Equal(t, 8, m.Count())
}

func TestParseManifestDefaults(t *testing.T) {
	t.Parallel()
	m, err := ParseManifest([]byte(`
trunks:
  - name: Carrier
dataActions:
  - name: Actions
    oauthClient: Client
    actions:
      - name: Lookup
        requestUrlTemplate: /x
`))
	require.NoError(t, err)

	assert.Equal(t, naming.DefaultPrefix, m.Prefix)
	assert.Equal(t, DefaultOrder(), m.Order)
	assert.Equal(t, DefaultTrunkMetabase, m.Trunks[0].Metabase)
	assert.Equal(t, DefaultTrunkType, m.Trunks[0].Type)
	assert.Equal(t, "GET", m.DataActions[0].Actions[0].RequestType)
}

func TestParseManifestRejectsUnknownFields(t *testing.T) {
	t.Parallel()
	_, err := ParseManifest([]byte("roles:\n  - name: A\n    colour: red\n"))
	assert.Error(t, err)
}

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		yaml    string
		wantErr []string
	}{
		{
			name: "unknown category in order",
			yaml: "order: [role, queue]\n",
			wantErr: []string{`unknown category "queue"`},
		},
		{
			name: "duplicate category in order",
			yaml: "order: [role, role]\n",
			wantErr: []string{`category "role" listed twice`},
		},
		{
			name: "items for a category missing from order",
			yaml: "order: [role]\ngroups:\n  - name: G\n",
			wantErr: []string{"group: has 1 items but is not in order"},
		},
		{
			name: "duplicate names",
			yaml: "roles:\n  - name: R\n  - name: R\n",
			wantErr: []string{`role: duplicate name "R"`},
		},
		{
			name: "dangling role reference",
			yaml: "oauthClients:\n  - name: C\n    roles: [Missing]\n",
			wantErr: []string{`oauth-client "C" references unknown role "Missing"`},
		},
		{
			name: "dangling group reference",
			yaml: "appInstances:\n  - name: A\n    groups: [Nobody]\n",
			wantErr: []string{`app-instance "A" references unknown group "Nobody"`},
		},
		{
			name: "dangling oauth client reference",
			yaml: "dataActions:\n  - name: D\n    oauthClient: Ghost\n",
			wantErr: []string{`data-action "D" references unknown oauth-client "Ghost"`},
		},
		{
			name: "missing oauth client reference",
			yaml: "dataActions:\n  - name: D\n",
			wantErr: []string{"oauthClient is required"},
		},
		{
			name: "roles after oauth clients",
			yaml: "order: [oauth-client, role]\nroles:\n  - name: R\noauthClients:\n  - name: C\n    roles: [R]\n",
			wantErr: []string{"role must come before oauth-client"},
		},
		{
			name: "bad data table field",
			yaml: "dataTables:\n  - name: T\n    fields:\n      - name: key\n        type: date\n",
			wantErr: []string{`unsupported type "date"`, "reserved or empty"},
		},
		{
			name: "action without url",
			yaml: "oauthClients:\n  - name: C\ndataActions:\n  - name: D\n    oauthClient: C\n    actions:\n      - name: A\n",
			wantErr: []string{`action "A" needs requestUrlTemplate`},
		},
		{
			name: "invalid prefix",
			yaml: "prefix: \"9lives\"\n",
			wantErr: []string{`prefix "9lives" is invalid`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := ParseManifest([]byte(tt.yaml))
			require.NoError(t, err)
			err = m.Validate()
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestManifestReversed(t *testing.T) {
	t.Parallel()
	m := &Manifest{Order: []Category{CategoryRole, CategoryGroup, CategoryDataAction}}
	assert.Equal(t, []Category{CategoryDataAction, CategoryGroup, CategoryRole}, m.Reversed())
	assert.Equal(t, []Category{CategoryRole, CategoryGroup, CategoryDataAction}, m.Order)
}

func TestForConfigOverrides(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "manifest.yaml", "prefix: FILE_\nproductId: file-product\nroles:\n  - name: R\n")

	m, err := ForConfig(&Config{Manifest: path})
	require.NoError(t, err)
	assert.Equal(t, "FILE_", m.Prefix)
	assert.Equal(t, "file-product", m.ProductID)

	m, err = ForConfig(&Config{Manifest: path, Prefix: "CFG_", ProductID: "cfg-product"})
	require.NoError(t, err)
	assert.Equal(t, "CFG_", m.Prefix)
	assert.Equal(t, "cfg-product", m.ProductID)

	_, err = ForConfig(&Config{Manifest: filepath.Join(dir, "missing.yaml")})
	assert.Error(t, err)
}

func TestDefaultManifestYAMLIsACopy(t *testing.T) {
	t.Parallel()
	a := DefaultManifestYAML()
	a[0] = 'X'
	assert.NotEqual(t, a[0], DefaultManifestYAML()[0])
}
