// Package tui is the interactive month view.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Run shows the month view until the user quits, then saves the last viewed month.
func Run(opts Options) error {
	applyThemePreference()
	applyColorProfilePreference(opts.Profile)

	m, err := newMonthModel(opts)
	if err != nil {
		return err
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	fm, ok := final.(monthModel)
	if !ok || opts.Store == nil {
		return nil
	}
	st := fm.viewState()
	if err := opts.Store.SaveViewState(context.Background(), st); err != nil {
		return err
	}
	fm.log.Debug("tui exit", zap.String("calendar", st.Calendar), zap.Int("year", st.Year), zap.Int("month", st.Month))
	return nil
}
