package teaui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/routine/pkg/app"
)

// Run launches the Bubble Tea UI and keeps the session current while it is
// open.
func Run(ctx context.Context, svc *app.Session) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() { _ = svc.Run(ctx) }()

	m := New(svc)
	m.ctx = ctx
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
