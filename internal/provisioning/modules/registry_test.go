package modules

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
	itest "github.com/purecloudlabs/premium-app-installer/internal/testing"
)

func categories(mods []provisioning.Module) []config.Category {
	out := make([]config.Category, 0, len(mods))
	for _, m := range mods {
		out = append(out, m.Category())
	}
	return out
}

func TestBuild(t *testing.T) {
	t.Parallel()
	m := itest.NewManifestBuilder().Build()

	mods, err := Build(m)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultOrder(), categories(mods))

	rev, err := BuildReversed(m)
	require.NoError(t, err)
	assert.Equal(t, m.Reversed(), categories(rev))
}

func TestBuild_CustomOrder(t *testing.T) {
	t.Parallel()
	m := itest.NewManifestBuilder().WithOrder(config.CategoryGroup, config.CategoryRole).Build()

	mods, err := Build(m)
	require.NoError(t, err)
	assert.Equal(t, []config.Category{config.CategoryGroup, config.CategoryRole}, categories(mods))
}

func TestNew_UnknownCategory(t *testing.T) {
	t.Parallel()
	_, err := New(config.Category("queue"))
	assert.True(t, errors.Is(err, ErrUnknownCategory))

	_, err = Build(itest.NewManifestBuilder().WithOrder("queue").Build())
	assert.True(t, errors.Is(err, ErrUnknownCategory))
}

func TestEnsureAll_PartialFailure(t *testing.T) {
	t.Parallel()
	fixture := itest.NewPlatformFixture()
	ctx, observer := fixture.Context(t, itest.MinimalConfig(), itest.NewManifestBuilder().Build())

	items := []string{"a", "b", "c"}
	resources, err := ensureAll(ctx, config.CategoryGroup, items,
		func(s string) string { return s },
		func(_ *provisioning.Context, s string) (provisioning.Resource, error) {
			if s == "b" {
				return provisioning.Resource{}, errors.New("boom")
			}
			return ensured("TEST_"+s, "id-"+s, true), nil
		})

	require.Error(t, err)
	assert.Contains(t, err.Error(), `group "b": boom`)
	require.Len(t, resources, 2)
	assert.Equal(t, "a", resources[0].Name)
	assert.Equal(t, "c", resources[1].Name)
	assert.Len(t, ctx.State.Resources(), 2)
	assert.Equal(t, []string{"b"}, observer.Resources(provisioning.EventResourceFailed))
}

func TestEnsureAll_RespectsConcurrency(t *testing.T) {
	t.Parallel()
	fixture := itest.NewPlatformFixture()
	ctx, _ := fixture.Context(t, itest.MinimalConfig(), itest.NewManifestBuilder().Build())
	ctx.Timeouts.Concurrency = 2

	var inFlight, peak atomic.Int32
	items := []string{"a", "b", "c", "d", "e", "f"}
	_, err := ensureAll(ctx, config.CategoryDataTable, items,
		func(s string) string { return s },
		func(_ *provisioning.Context, s string) (provisioning.Resource, error) {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			inFlight.Add(-1)
			return ensured(s, s, true), nil
		})

	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestConfigureAll_CancelledContext(t *testing.T) {
	t.Parallel()
	fixture := itest.NewPlatformFixture()
	ctx, _ := fixture.Context(t, itest.MinimalConfig(), itest.NewManifestBuilder().Build())
	cctx, cancel := context.WithCancel(context.Background())
	cancel()
	ctx = ctx.WithContext(cctx)

	called := false
	err := configureAll(ctx, config.CategoryRole, []string{"a"},
		func(s string) string { return s },
		func(_ *provisioning.Context, _ string) (string, error) {
			called = true
			return "done", nil
		})

	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, called)
}
