package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nicobailon/twinpane/internal/loader"
	"github.com/nicobailon/twinpane/internal/move"
	"github.com/nicobailon/twinpane/internal/pane"
	"github.com/nicobailon/twinpane/internal/tui/theme"
)

type toastType int

const (
	toastSuccess toastType = iota
	toastError
	toastWarning
	toastInfo
)

const toastDuration = 3 * time.Second

type toast struct {
	message   string
	kind      toastType
	expiresAt time.Time
}

func newToast(kind toastType, message string) *toast {
	return &toast{message: message, kind: kind, expiresAt: time.Now().Add(toastDuration)}
}

func (t *toast) expired() bool {
	return time.Now().After(t.expiresAt)
}

type ErrorMsg struct {
	Err     error
	Context string
}

func (e ErrorMsg) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %v", e.Context, e.Err)
	}
	return e.Err.Error()
}

type WarningMsg struct {
	Message string
}

type InfoMsg struct {
	Message string
}

type toastExpiredMsg struct{}

// listingMsg carries a finished listing request back to Update.
type listingMsg struct {
	result loader.Result
}

type moveResultMsg struct {
	outcome move.Outcome
}

// refetchMsg is the delayed second reload after a move.
type refetchMsg struct {
	sides []pane.Side
}

func NewErrorCmd(err error, context string) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err, Context: context}
	}
}

func NewWarningCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return WarningMsg{Message: message}
	}
}

func NewInfoCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return InfoMsg{Message: message}
	}
}

func toastExpireCmd() tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{}
	})
}

func (t *toast) render() string {
	var style lipgloss.Style
	var icon string

	switch t.kind {
	case toastSuccess:
		style = theme.SuccessStyle.Bold(true)
		icon = "  "
	case toastError:
		style = theme.ErrorStyle
		icon = "  "
	case toastWarning:
		style = theme.WarnStyle.Bold(true)
		icon = "  "
	case toastInfo:
		style = theme.SectionStyle
		icon = "  "
	}

	return style.Render(icon + t.message)
}
