package tui

import "github.com/charmbracelet/lipgloss"

// Genesys palette, with neutral greys for secondary text.
var (
	brand     = lipgloss.Color("#ff4f1f")
	okColor   = lipgloss.Color("#22c55e")
	errColor  = lipgloss.Color("#ef4444")
	warnColor = lipgloss.Color("#eab308")
	muted     = lipgloss.Color("#6b7280")
	text      = lipgloss.Color("#f9fafb")
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(text)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(brand).MarginTop(1)
	okStyle      = lipgloss.NewStyle().Foreground(okColor)
	errStyle     = lipgloss.NewStyle().Foreground(errColor)
	warnStyle    = lipgloss.NewStyle().Foreground(warnColor)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	activeStyle  = lipgloss.NewStyle().Bold(true).Foreground(text)
	footerStyle  = mutedStyle.MarginTop(1)
)

// Row markers are fixed width so names line up in every state.
const (
	markDone    = "[OK]"
	markFailed  = "[!!]"
	markWaiting = "[  ]"
	markWarn    = "[??]"
)

var spinnerFrames = []string{"[.  ]", "[.. ]", "[...]", "[ ..]", "[  .]", "[   ]"}
