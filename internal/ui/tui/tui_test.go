package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
	"github.com/purecloudlabs/premium-app-installer/internal/orchestration"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
)

func testManifest() *config.Manifest {
	return &config.Manifest{
		Prefix: "TEST_",
		Order:  config.DefaultOrder(),
		Roles:  []config.RoleSpec{{Name: "Role"}},
		Groups: []config.GroupSpec{{Name: "Agents"}, {Name: "Supervisors"}},
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{30 * time.Second, "30s"},
		{90 * time.Second, "1m30s"},
		{3600 * time.Second, "1h0m"},
		{3661 * time.Second, "1h1m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.d), "formatDuration(%v)", tt.d)
	}
}

func TestNewInstallModel(t *testing.T) {
	m := NewInstallModel("mypurecloud.com", testManifest(), false)

	names := make([]string, 0, len(m.Phases))
	for _, p := range m.Phases {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"preflight", "validation", "create", "configure"}, names)

	require.Len(t, m.Modules, 2, "empty categories are hidden")
	assert.Equal(t, config.CategoryRole, m.Modules[0].Category)
	assert.Equal(t, 2, m.Modules[1].Expected)

	re := NewInstallModel("mypurecloud.com", testManifest(), true)
	assert.Equal(t, "uninstall", re.Phases[2].Name)
}

func TestModel_PhaseEvents(t *testing.T) {
	m := NewInstallModel("mypurecloud.com", testManifest(), false)

	m.apply(provisioning.Event{Type: provisioning.EventPhaseStarted, Phase: "preflight (1/4)"})
	assert.True(t, m.Phases[0].Active)
	assert.Equal(t, "preflight", activePhase(m))

	m.apply(provisioning.Event{Type: provisioning.EventPhaseCompleted, Phase: "preflight (1/4)", Message: "completed in 1.2s"})
	assert.True(t, m.Phases[0].Done)
	assert.False(t, m.Phases[0].Active)
	assert.Equal(t, "1.2s", m.Phases[0].Duration)

	m.apply(provisioning.Event{Type: provisioning.EventPhaseFailed, Phase: "create (3/4)", Message: "boom"})
	assert.Equal(t, "boom", m.Phases[2].Err)

	m.apply(provisioning.Event{Type: provisioning.EventPhaseStarted, Phase: "extra (5/5)"})
	assert.Equal(t, "extra", m.Phases[len(m.Phases)-1].Name, "unknown phases are appended")
}

func TestModel_ResourceEvents(t *testing.T) {
	m := NewInstallModel("mypurecloud.com", testManifest(), false)

	m.apply(provisioning.Event{Type: provisioning.EventResourceCreated, Category: config.CategoryGroup, Resource: "Agents"})
	m.apply(provisioning.Event{Type: provisioning.EventResourceExists, Category: config.CategoryGroup, Resource: "Supervisors"})
	m.apply(provisioning.Event{Type: provisioning.EventResourceConfigured, Category: config.CategoryGroup, Resource: "Supervisors"})
	m.apply(provisioning.Event{Type: provisioning.EventResourceFailed, Category: config.CategoryRole, Resource: "Role"})
	m.apply(provisioning.Event{Type: provisioning.EventValidationWarning, Message: "no user"})
	m.apply(provisioning.Event{Type: provisioning.EventHookFailed, Resource: "upload-report", Message: "denied"})
	m.apply(provisioning.Event{Message: "Completed in 2s"})

	groups := m.Modules[1]
	assert.Equal(t, 1, groups.Created)
	assert.Equal(t, 1, groups.Existing)
	assert.Equal(t, 1, groups.Configured)
	assert.Equal(t, 2, groups.Finished())
	assert.Equal(t, "Supervisors", groups.Last)
	assert.Equal(t, 1, m.Modules[0].Failed)
	assert.Equal(t, []string{"no user"}, m.Warnings)
	assert.Equal(t, []string{"upload-report: denied"}, m.HookFailures)
	assert.Equal(t, "Completed in 2s", m.LastMessage)
}

func TestModel_UninstallCountsDeletions(t *testing.T) {
	m := NewUninstallModel("mypurecloud.com", testManifest())
	assert.Zero(t, m.Modules[0].Expected)

	m.apply(provisioning.Event{Type: provisioning.EventResourceDeleting, Category: config.CategoryRole, Resource: "Role"})
	m.apply(provisioning.Event{Type: provisioning.EventResourceDeleted, Category: config.CategoryRole, Resource: "Role"})

	assert.Equal(t, 1, m.Modules[0].Expected)
	assert.Equal(t, 1, m.Modules[0].Deleted)
	assert.Contains(t, moduleCounts(ModeUninstall, m.Modules[0]), "1/1 removed")
}

func TestModel_Update(t *testing.T) {
	m := NewInstallModel("mypurecloud.com", testManifest(), false)

	next, cmd := m.Update(EventMsg{Event: provisioning.Event{Type: provisioning.EventResourceCreated, Category: config.CategoryRole, Resource: "Role"}})
	assert.Nil(t, cmd)
	m = next.(Model)
	assert.Equal(t, 1, m.Modules[0].Created)

	next, cmd = m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	assert.Nil(t, cmd)
	assert.Equal(t, 60, next.(Model).Width)

	next, cmd = m.Update(TickMsg{})
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, next.(Model).SpinnerFrame)

	next, cmd = m.Update(DoneMsg{Summary: "App URL: https://apps.mypurecloud.com"})
	assert.NotNil(t, cmd)
	done := next.(Model)
	assert.True(t, done.Done)
	for _, p := range done.Phases {
		assert.True(t, p.Done)
	}

	next, _ = m.Update(ErrMsg{Err: errors.New("install failed")})
	assert.EqualError(t, next.(Model).Err, "install failed")
}

func TestCalculateProgress(t *testing.T) {
	m := NewInstallModel("mypurecloud.com", testManifest(), false)
	assert.InDelta(t, 0, calculateProgress(m), 0.001)

	m.Phases[0].Done = true
	m.Phases[1].Done = true
	m.Modules[0].Created = 1
	m.Modules[1].Existing = 2
	// 2/4 phases * 0.3 + 3/3 items * 0.7
	assert.InDelta(t, 0.85, calculateProgress(m), 0.001)

	m.Done = true
	assert.InDelta(t, 1.0, calculateProgress(m), 0)
}

func TestUpdateETA(t *testing.T) {
	m := NewInstallModel("mypurecloud.com", testManifest(), false)
	m.updateETA()
	assert.Positive(t, m.EstimatedRemaining)

	m.Modules[0].Created = 1
	m.Modules[1].Created = 2
	m.updateETA()
	assert.Zero(t, m.EstimatedRemaining)

	u := NewUninstallModel("mypurecloud.com", testManifest())
	u.updateETA()
	assert.Zero(t, u.EstimatedRemaining)
}

func TestRenderView(t *testing.T) {
	m := NewInstallModel("mypurecloud.com", testManifest(), false)
	m.apply(provisioning.Event{Type: provisioning.EventPhaseStarted, Phase: "create (3/4)"})
	m.apply(provisioning.Event{Type: provisioning.EventResourceCreated, Category: config.CategoryGroup, Resource: "Agents"})
	m.apply(provisioning.Event{Type: provisioning.EventHookFailed, Resource: "write-report", Message: "read-only"})

	out := m.View()

	assert.Contains(t, out, "premium-app install: TEST_")
	assert.Contains(t, out, "mypurecloud.com")
	assert.Contains(t, out, "Phases")
	assert.Contains(t, out, "group")
	assert.Contains(t, out, "1 created")
	assert.Contains(t, out, "write-report: read-only")
	assert.Contains(t, out, "q: quit")
}

func TestRenderStatus(t *testing.T) {
	out := RenderStatus("mypurecloud.com", "TEST_", []orchestration.CategoryStatus{
		{Category: config.CategoryRole, Expected: 1, Resources: []provisioning.Resource{{Name: "Role", FullName: "TEST_Role", ID: "r1"}}},
		{Category: config.CategoryGroup, Expected: 2},
	})

	assert.Contains(t, out, "TEST_Role")
	assert.Contains(t, out, "2 missing")
	assert.Contains(t, out, "incomplete")

	out = RenderStatus("", "TEST_", []orchestration.CategoryStatus{
		{Category: config.CategoryTrunk, Err: errors.New("forbidden")},
	})
	assert.Contains(t, out, "forbidden")
}
