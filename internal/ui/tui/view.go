package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// styleFunc is a single-string styling function.
type styleFunc func(string) string

// sf wraps a lipgloss.Style into a styleFunc.
func sf(s lipgloss.Style) styleFunc {
	return func(str string) string { return s.Render(str) }
}

func renderView(m Model) string {
	var b strings.Builder

	renderHeader(&b, m)
	renderProgressBar(&b, m)
	renderPhases(&b, m)

	if len(m.Modules) > 0 {
		renderModules(&b, m)
	}
	if len(m.Warnings) > 0 {
		renderList(&b, "Warnings", markWarn, sf(warnStyle), m.Warnings)
	}
	if len(m.HookFailures) > 0 {
		renderList(&b, "Finally hooks", markFailed, sf(errStyle), m.HookFailures)
	}
	if m.Summary != "" {
		b.WriteString("\n")
		b.WriteString(m.Summary)
		b.WriteString("\n")
	}

	renderFooter(&b, m)
	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	title := fmt.Sprintf("premium-app %s: %s", m.Mode, m.Prefix)
	if m.Environment != "" {
		title += fmt.Sprintf(" (%s)", m.Environment)
	}
	b.WriteString(headerStyle.Render(title))

	status := " "
	switch {
	case m.Err != nil:
		status += errStyle.Render(fmt.Sprintf("Error: %v", m.Err))
	case m.Done:
		status += okStyle.Render("Done")
	default:
		status += activeStyle.Render(currentSpinner(m.SpinnerFrame)+" ") + warnStyle.Render(activePhase(m))
	}
	b.WriteString(status)
	b.WriteString("\n")
}

func activePhase(m Model) string {
	for _, p := range m.Phases {
		if p.Active {
			return p.Name
		}
	}
	return "starting"
}

func renderProgressBar(b *strings.Builder, m Model) {
	progress := calculateProgress(m)
	barWidth := 40
	if m.Width > 0 && m.Width < 80 {
		barWidth = max(m.Width-30, 10)
	}
	filled := min(int(float64(barWidth)*progress), barWidth)

	bar := okStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", barWidth-filled))

	eta := ""
	if m.EstimatedRemaining > 0 {
		eta = fmt.Sprintf(" ETA %s", formatDuration(m.EstimatedRemaining))
	}
	if m.PerformanceScale != 0 && m.PerformanceScale != 1.0 {
		eta += fmt.Sprintf("  speed x%.2f", m.PerformanceScale)
	}

	fmt.Fprintf(b, "  %s %d%%%s\n", bar, int(progress*100), eta)
}

func renderPhases(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Phases"))
	b.WriteString("\n")

	for _, phase := range m.Phases {
		var icon string
		var style styleFunc
		switch {
		case phase.Err != "":
			icon, style = markFailed, sf(errStyle)
		case phase.Done:
			icon, style = markDone, sf(okStyle)
		case phase.Active:
			icon, style = currentSpinner(m.SpinnerFrame), sf(activeStyle)
		default:
			icon, style = markWaiting, sf(mutedStyle)
		}
		detail := phase.Duration
		if phase.Err != "" {
			detail = phase.Err
		}
		fmt.Fprintf(b, "    %s %-12s %s\n", style(icon), style(phase.Name), mutedStyle.Render(detail))
	}
}

func renderModules(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Resources"))
	b.WriteString("\n")

	for _, row := range m.Modules {
		icon, style := moduleIcon(m, row)
		fmt.Fprintf(b, "    %s %-14s %s  %s\n",
			style(icon), style(string(row.Category)), moduleCounts(m.Mode, row), mutedStyle.Render(row.Last))
	}
}

func moduleIcon(m Model, row ModuleRow) (string, styleFunc) {
	switch {
	case row.Failed > 0:
		return markFailed, sf(errStyle)
	case row.Expected > 0 && row.Finished() >= row.Expected:
		return markDone, sf(okStyle)
	case m.Done && m.Mode == ModeUninstall:
		return markDone, sf(okStyle)
	case row.Finished() > 0 || row.Last != "":
		return currentSpinner(m.SpinnerFrame), sf(activeStyle)
	default:
		return markWaiting, sf(mutedStyle)
	}
}

func moduleCounts(mode string, row ModuleRow) string {
	var parts []string
	if mode == ModeUninstall {
		parts = append(parts, fmt.Sprintf("%d/%d removed", row.Deleted, row.Expected))
	} else {
		parts = append(parts, fmt.Sprintf("%d/%d", row.Created+row.Existing, row.Expected))
		if row.Created > 0 {
			parts = append(parts, okStyle.Render(fmt.Sprintf("%d created", row.Created)))
		}
		if row.Existing > 0 {
			parts = append(parts, fmt.Sprintf("%d existing", row.Existing))
		}
		if row.Configured > 0 {
			parts = append(parts, fmt.Sprintf("%d configured", row.Configured))
		}
	}
	if row.Failed > 0 {
		parts = append(parts, errStyle.Render(fmt.Sprintf("%d failed", row.Failed)))
	}
	return strings.Join(parts, ", ")
}

func renderList(b *strings.Builder, title, icon string, style styleFunc, items []string) {
	b.WriteString(sectionStyle.Render("  " + title))
	b.WriteString("\n")

	// Show the last 3 entries
	start := max(len(items)-3, 0)
	for _, item := range items[start:] {
		fmt.Fprintf(b, "    %s %s\n", style(icon), mutedStyle.Render(item))
	}
}

func renderFooter(b *strings.Builder, m Model) {
	parts := []string{fmt.Sprintf("elapsed: %s", formatDuration(time.Since(m.StartTime)))}
	if m.LastMessage != "" {
		parts = append(parts, m.LastMessage)
	}
	b.WriteString(footerStyle.Render(fmt.Sprintf("  %s  |  q: quit", strings.Join(parts, "  |  "))))
	b.WriteString("\n")
}

func currentSpinner(frame int) string {
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

// calculateProgress weighs phases at 30% and resource items at 70%.
func calculateProgress(m Model) float64 {
	if m.Done {
		return 1.0
	}

	var phaseProgress float64
	if len(m.Phases) > 0 {
		done := 0
		for _, p := range m.Phases {
			if p.Done {
				done++
			}
		}
		phaseProgress = float64(done) / float64(len(m.Phases))
	}

	expected, finished := 0, 0
	for _, r := range m.Modules {
		expected += r.Expected
		finished += min(r.Finished(), r.Expected)
	}
	if expected == 0 {
		return phaseProgress
	}

	return min(phaseProgress*0.3+float64(finished)/float64(expected)*0.7, 1.0)
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
