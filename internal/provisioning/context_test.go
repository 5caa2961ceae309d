package provisioning

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
	"github.com/purecloudlabs/premium-app-installer/internal/platform/purecloud"
)

func TestNewState(t *testing.T) {
	t.Parallel()
	state := NewState()

	require.NotNil(t, state)
	assert.Empty(t, state.Resources())
	assert.False(t, state.Identity().HasUser())

	_, ok := state.Lookup(config.CategoryRole, "Role")
	assert.False(t, ok)
}

func TestState_PutAndLookup(t *testing.T) {
	t.Parallel()
	state := NewState()

	state.Put(Resource{Category: config.CategoryRole, Name: "Role", ID: "r1", Created: true})
	state.Put(Resource{Category: config.CategoryGroup, Name: "Agents", ID: "g1"})
	state.Put(Resource{Category: config.CategoryGroup, Name: "Supervisors", ID: "g2"})

	r, ok := state.Lookup(config.CategoryRole, "Role")
	require.True(t, ok)
	assert.Equal(t, "r1", r.ID)

	_, ok = state.Lookup(config.CategoryGroup, "Role")
	assert.False(t, ok, "lookups are scoped by category")

	// Re-registering keeps the original position.
	state.Put(Resource{Category: config.CategoryRole, Name: "Role", ID: "r1-new"})
	all := state.Resources()
	require.Len(t, all, 3)
	assert.Equal(t, "r1-new", all[0].ID)
	assert.Equal(t, "Agents", all[1].Name)

	groups := state.ByCategory(config.CategoryGroup)
	require.Len(t, groups, 2)
	assert.Equal(t, "Agents", groups[0].Name)
	assert.Equal(t, "Supervisors", groups[1].Name)
}

func TestState_IDs(t *testing.T) {
	t.Parallel()
	state := NewState()
	state.Put(Resource{Category: config.CategoryGroup, Name: "Agents", ID: "g1"})
	state.Put(Resource{Category: config.CategoryGroup, Name: "Supervisors", ID: "g2"})

	ids, missing := state.IDs(config.CategoryGroup, []string{"Supervisors", "Ghosts", "Agents"})
	assert.Equal(t, []string{"g2", "g1"}, ids)
	assert.Equal(t, []string{"Ghosts"}, missing)
}

func TestState_ConcurrentPut(t *testing.T) {
	t.Parallel()
	state := NewState()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			state.Put(Resource{Category: config.CategoryDataTable, Name: fmt.Sprintf("table-%d", i), ID: fmt.Sprint(i)})
			_, _ = state.Lookup(config.CategoryDataTable, "table-0")
		}()
	}
	wg.Wait()

	assert.Len(t, state.Resources(), 50)
}

func TestState_Identity(t *testing.T) {
	t.Parallel()
	state := NewState()
	state.SetIdentity(Identity{UserID: "u1", OrgID: "o1", DivisionID: "d1"})

	id := state.Identity()
	assert.True(t, id.HasUser())
	assert.Equal(t, "d1", id.DivisionID)

	state.SetIdentity(Identity{OrgID: "o1"})
	assert.False(t, state.Identity().HasUser())
}

func TestResource_Redacted(t *testing.T) {
	t.Parallel()
	r := Resource{
		Category: config.CategoryOAuthClient,
		Name:     "Client",
		ID:       "c1",
		Extra:    map[string]string{ExtraSecret: "s3cr3t", "clientId": "c1"},
	}

	red := r.Redacted()
	assert.Equal(t, "REDACTED", red.Extra[ExtraSecret])
	assert.Equal(t, "c1", red.Extra["clientId"])
	assert.Equal(t, "s3cr3t", r.Extra[ExtraSecret], "original is untouched")

	plain := Resource{Name: "Role"}
	assert.Nil(t, plain.Redacted().Extra)
}

func TestNewContext(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{Environment: "mypurecloud.com"}
	manifest := &config.Manifest{Prefix: "APP_"}
	platform := purecloud.NewFakeClient()

	ctx := NewContext(context.Background(), cfg, manifest, platform)

	require.NotNil(t, ctx)
	assert.Equal(t, cfg, ctx.Config)
	assert.Equal(t, manifest, ctx.Manifest)
	assert.Equal(t, platform, ctx.Platform)
	assert.NotNil(t, ctx.State)
	assert.NotNil(t, ctx.Observer)
	assert.NotNil(t, ctx.Timeouts)
	assert.NotNil(t, ctx.Metrics)
	assert.Equal(t, "APP_Role", ctx.FullName("Role"))
}

func TestContext_WithContext(t *testing.T) {
	t.Parallel()
	base := NewContext(context.Background(), &config.Config{}, &config.Manifest{}, purecloud.NewFakeClient())

	cctx, cancel := context.WithCancel(context.Background())
	child := base.WithContext(cctx)
	cancel()

	assert.Error(t, child.Err())
	assert.NoError(t, base.Err())
	assert.Same(t, base.State, child.State)
	assert.Same(t, base.Metrics, child.Metrics)
}
