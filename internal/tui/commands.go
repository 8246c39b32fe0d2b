package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nicobailon/twinpane/internal/loader"
	"github.com/nicobailon/twinpane/internal/move"
	"github.com/nicobailon/twinpane/internal/pane"
)

func listCmd(l *loader.Loader, req loader.Request) tea.Cmd {
	return func() tea.Msg {
		return listingMsg{result: l.Fetch(req)}
	}
}

// moveCmd performs the backend move for a drop the protocol accepted and
// resolves the protocol with the answer.
func moveCmd(m move.Mover, p *move.Protocol, req move.Request, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		var (
			ctx    context.Context
			cancel context.CancelFunc
		)
		if timeout > 0 {
			ctx, cancel = context.WithTimeout(context.Background(), timeout)
		} else {
			ctx, cancel = context.WithCancel(context.Background())
		}
		defer cancel()
		err := m.Move(ctx, req.Item.Path, req.Destination)
		return moveResultMsg{outcome: p.Resolve(req, err)}
	}
}

func refetchCmd(delay time.Duration, sides []pane.Side) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return refetchMsg{sides: sides}
	})
}
