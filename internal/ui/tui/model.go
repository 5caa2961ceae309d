package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
	"github.com/purecloudlabs/premium-app-installer/internal/ui/benchmarks"
)

// Modes the dashboard can run in.
const (
	ModeInstall   = "install"
	ModeUninstall = "uninstall"
)

// PhaseRow is one pipeline phase for display.
type PhaseRow struct {
	Name     string
	Done     bool
	Active   bool
	Err      string
	Duration string
}

// ModuleRow tracks the items of one resource category.
type ModuleRow struct {
	Category   config.Category
	Expected   int
	Created    int
	Existing   int
	Configured int
	Deleted    int
	Failed     int
	// Last is the most recent item touched in this category.
	Last string
}

// Finished reports how many items reached a terminal state.
func (r ModuleRow) Finished() int {
	return r.Created + r.Existing + r.Deleted + r.Failed
}

// Model is the Bubble Tea model for the install dashboard.
type Model struct {
	// Run info
	Mode        string
	Environment string
	Prefix      string

	Phases  []PhaseRow
	Modules []ModuleRow

	Warnings     []string
	HookFailures []string
	LastMessage  string

	// ETA
	EstimatedRemaining time.Duration
	PerformanceScale   float64
	StartTime          time.Time

	// Animation
	SpinnerFrame int

	// UI state
	Width   int
	Height  int
	Err     error
	Done    bool
	Summary string
}

// NewInstallModel creates a model for an install run of manifest m.
func NewInstallModel(environment string, m *config.Manifest, reinstall bool) Model {
	phases := []string{"preflight", "validation"}
	if reinstall {
		phases = append(phases, "uninstall")
	}
	phases = append(phases, "create", "configure")
	return newModel(ModeInstall, environment, m, phases)
}

// NewUninstallModel creates a model for an uninstall run of manifest m.
func NewUninstallModel(environment string, m *config.Manifest) Model {
	return newModel(ModeUninstall, environment, m, []string{"uninstall"})
}

func newModel(mode, environment string, m *config.Manifest, phases []string) Model {
	model := Model{
		Mode:             mode,
		Environment:      environment,
		Prefix:           m.Prefix,
		StartTime:        time.Now(),
		PerformanceScale: 1.0,
	}
	for _, p := range phases {
		model.Phases = append(model.Phases, PhaseRow{Name: p})
	}
	for _, c := range m.Order {
		n := len(m.Names(c))
		if n == 0 {
			continue
		}
		row := ModuleRow{Category: c}
		if mode == ModeInstall {
			row.Expected = n
		}
		model.Modules = append(model.Modules, row)
	}
	return model
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case EventMsg:
		m.apply(msg.Event)

	case TickMsg:
		m.SpinnerFrame++
		m.updateETA()
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		m.Summary = msg.Summary
		m.markAllPhasesDone()
		return m, tea.Quit
	}

	return m, nil
}

// apply folds one provisioning event into the model.
func (m *Model) apply(e provisioning.Event) {
	switch e.Type {
	case provisioning.EventPhaseStarted:
		m.phase(e.Phase).Active = true
	case provisioning.EventPhaseCompleted:
		p := m.phase(e.Phase)
		p.Active, p.Done = false, true
		p.Duration = strings.TrimPrefix(e.Message, "completed in ")
	case provisioning.EventPhaseFailed:
		p := m.phase(e.Phase)
		p.Active = false
		p.Err = e.Message
	case provisioning.EventResourceCreated:
		r := m.module(e.Category)
		r.Created++
		r.Last = e.Resource
	case provisioning.EventResourceExists:
		r := m.module(e.Category)
		r.Existing++
		r.Last = e.Resource
	case provisioning.EventResourceConfigured:
		r := m.module(e.Category)
		r.Configured++
		r.Last = e.Resource
	case provisioning.EventResourceDeleting:
		r := m.module(e.Category)
		if m.Mode == ModeUninstall {
			r.Expected++
		}
		r.Last = e.Resource
	case provisioning.EventResourceDeleted:
		r := m.module(e.Category)
		r.Deleted++
		r.Last = e.Resource
	case provisioning.EventResourceFailed:
		r := m.module(e.Category)
		r.Failed++
		r.Last = e.Resource
	case provisioning.EventValidationWarning:
		m.Warnings = append(m.Warnings, e.Message)
	case provisioning.EventHookFailed:
		m.HookFailures = append(m.HookFailures, e.Resource+": "+e.Message)
	default:
		if e.Message != "" {
			m.LastMessage = e.Message
		}
	}
}

// phase returns the row for a pipeline phase name such as "create (4/5)",
// adding it when the pipeline runs a phase the model did not expect.
func (m *Model) phase(name string) *PhaseRow {
	if i := strings.Index(name, " ("); i > 0 {
		name = name[:i]
	}
	for i := range m.Phases {
		if m.Phases[i].Name == name {
			return &m.Phases[i]
		}
	}
	m.Phases = append(m.Phases, PhaseRow{Name: name})
	return &m.Phases[len(m.Phases)-1]
}

func (m *Model) module(c config.Category) *ModuleRow {
	for i := range m.Modules {
		if m.Modules[i].Category == c {
			return &m.Modules[i]
		}
	}
	m.Modules = append(m.Modules, ModuleRow{Category: c})
	return &m.Modules[len(m.Modules)-1]
}

func (m *Model) markAllPhasesDone() {
	for i := range m.Phases {
		if m.Phases[i].Err == "" {
			m.Phases[i].Active = false
			m.Phases[i].Done = true
		}
	}
}

func (m *Model) updateETA() {
	if m.Mode != ModeInstall || m.Done || m.Err != nil {
		m.EstimatedRemaining = 0
		return
	}

	done := make(map[config.Category]int)
	pending := make(map[config.Category]int)
	for _, r := range m.Modules {
		done[r.Category] = r.Finished()
		if left := r.Expected - r.Finished(); left > 0 {
			pending[r.Category] = left
		}
	}

	m.PerformanceScale = benchmarks.PerformanceScale(done, time.Since(m.StartTime))
	m.EstimatedRemaining = benchmarks.EstimateRemaining(pending, m.PerformanceScale)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
