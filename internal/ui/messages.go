package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/rhea/internal/console"
)

// Reload carries settings applied while the dashboard is running
type Reload struct {
	Profiles console.ProfileSet
	Theme    string
}

type dispatchDoneMsg struct {
	outcome console.Outcome
	err     error
}

type gaugeTickMsg time.Time

type reloadMsg Reload

// dispatchCmd runs one dispatch off the update loop
func dispatchCmd(ctx context.Context, d *console.Dispatcher, command string, panel console.Panel) tea.Cmd {
	return func() tea.Msg {
		outcome, err := d.Dispatch(ctx, command, panel)
		return dispatchDoneMsg{outcome: outcome, err: err}
	}
}

func gaugeTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return gaugeTickMsg(t)
	})
}

// waitForReload blocks until the next reload; a closed channel stops it
func waitForReload(reloads <-chan Reload) tea.Cmd {
	if reloads == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-reloads
		if !ok {
			return nil
		}
		return reloadMsg(r)
	}
}
