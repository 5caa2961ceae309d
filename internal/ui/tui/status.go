package tui

import (
	"fmt"
	"strings"

	"github.com/purecloudlabs/premium-app-installer/internal/orchestration"
)

// RenderStatus renders the status command output once using lipgloss.
func RenderStatus(environment, prefix string, statuses []orchestration.CategoryStatus) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("premium-app status: %s", prefix)))
	if environment != "" {
		b.WriteString(mutedStyle.Render(fmt.Sprintf(" (%s)", environment)))
	}
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("  Resources"))
	b.WriteString("\n")

	complete := true
	for _, s := range statuses {
		var icon, detail string
		var style styleFunc
		switch {
		case s.Err != nil:
			icon, style, detail = markFailed, sf(errStyle), s.Err.Error()
			complete = false
		case s.Missing() > 0:
			icon, style, detail = markWarn, sf(warnStyle), fmt.Sprintf("%d missing", s.Missing())
			complete = false
		default:
			icon, style = markDone, sf(okStyle)
		}
		fmt.Fprintf(&b, "    %s %-14s %d/%d  %s\n",
			style(icon), style(string(s.Category)), len(s.Resources), s.Expected, mutedStyle.Render(detail))
		for _, r := range s.Resources {
			name := r.FullName
			if name == "" {
				name = r.Name
			}
			fmt.Fprintf(&b, "        %-40s %s\n", name, mutedStyle.Render(r.ID))
		}
	}

	if complete {
		b.WriteString(footerStyle.Render("  installed"))
	} else {
		b.WriteString(footerStyle.Render("  incomplete: run install to converge"))
	}
	b.WriteString("\n")
	return b.String()
}
