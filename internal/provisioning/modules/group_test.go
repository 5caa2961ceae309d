package modules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
	itest "github.com/purecloudlabs/premium-app-installer/internal/testing"
)

func TestGroupModule_CreateAndConfigure(t *testing.T) {
	t.Parallel()
	fixture := itest.NewPlatformFixture()
	m := itest.NewManifestBuilder().WithGroup("Supervisors", true).WithGroup("Agents", false).Build()
	ctx, _ := fixture.Context(t, itest.MinimalConfig(), m)
	mod := NewGroupModule()

	resources, err := mod.Create(ctx)
	require.NoError(t, err)
	require.Len(t, resources, 2)
	require.NoError(t, mod.Configure(ctx))

	supervisors, _ := ctx.State.Lookup(config.CategoryGroup, "Supervisors")
	agents, _ := ctx.State.Lookup(config.CategoryGroup, "Agents")
	fake := fixture.Fake()
	assert.Equal(t, []string{"user-1"}, fake.GroupMembers[supervisors.ID])
	assert.Empty(t, fake.GroupMembers[agents.ID])
	assert.Equal(t, 1, fake.Groups[supervisors.ID].MemberCount)
}

func TestGroupModule_ConfigureWithoutUser(t *testing.T) {
	t.Parallel()
	fixture := itest.NewPlatformFixture().WithoutUser()
	m := itest.NewManifestBuilder().WithGroup("Supervisors", true).Build()
	ctx, _ := fixture.Context(t, itest.MinimalConfig(), m)
	mod := NewGroupModule()

	_, err := mod.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, mod.Configure(ctx))
	assert.NotContains(t, fixture.Fake().Calls(), "AddGroupMembers")
}

func TestGroupModule_GetExisting(t *testing.T) {
	t.Parallel()
	fixture := itest.NewPlatformFixture().WithForeign()
	m := itest.NewManifestBuilder().WithGroup("Agents", false).Build()
	ctx, _ := fixture.Context(t, itest.MinimalConfig(), m)
	mod := NewGroupModule()

	_, err := mod.Create(ctx)
	require.NoError(t, err)

	found, err := mod.GetExisting(ctx)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Agents", found[0].Name)

	require.NoError(t, mod.Remove(ctx, found[0]))
	assert.Len(t, fixture.Fake().Groups, 1)
}
