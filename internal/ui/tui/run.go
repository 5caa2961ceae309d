package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
)

// RunFunc performs the command, reporting progress to observer. The returned
// summary is shown when the run succeeds.
type RunFunc func(ctx context.Context, observer provisioning.Observer) (summary string, err error)

// Run wraps fn with the dashboard. Events flow from a ChannelObserver into
// the program until fn returns. Quitting the dashboard cancels fn and waits
// for it to stop.
func Run(ctx context.Context, m Model, fn RunFunc, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)...)

	observer := provisioning.NewChannelObserver(64)
	type outcome struct {
		summary string
		err     error
	}
	finished := make(chan outcome, 1)

	go func() {
		summary, err := fn(ctx, observer)
		observer.Close()
		finished <- outcome{summary: summary, err: err}
	}()

	forwarded := make(chan outcome, 1)
	go func() {
		for e := range observer.Events() {
			p.Send(EventMsg{Event: e})
		}
		out := <-finished
		if out.err != nil {
			p.Send(ErrMsg{Err: out.err})
		} else {
			p.Send(DoneMsg{Summary: out.summary})
		}
		forwarded <- out
	}()

	finalModel, runErr := p.Run()
	cancel()
	out := <-forwarded

	if out.err != nil {
		return out.err
	}
	if runErr != nil {
		return fmt.Errorf("TUI error: %w", runErr)
	}
	if fm, ok := finalModel.(Model); ok && fm.Err != nil {
		return fm.Err
	}
	return nil
}
