package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nicobailon/twinpane/internal/move"
)

const (
	searchPrompt = "/ "
	regexPrompt  = "regex/ "
	pathPrompt   = "path: "
)

func handleKey(m *model, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.panes[m.active]
	key := msg.String()

	switch key {
	case "q", "ctrl+c":
		m.loader.Close()
		return *m, tea.Quit

	case "?":
		m.mode = modeHelp
		return *m, nil

	case "tab":
		m.active = m.active.Opposite()
		m.mover.DragOver(m.active)
		return *m, nil

	case "j", "down":
		p.moveCursor(1)
	case "k", "up":
		p.moveCursor(-1)
	case "home":
		p.cursor = 0
	case "end":
		p.cursor = len(p.visible()) - 1
		p.clamp()

	case "enter", "l", "right":
		it, ok := p.selected()
		if !ok || !it.IsDir {
			return *m, nil
		}
		return *m, m.apply(m.active, p.ctrl.SetRootPath(it.Path), true)

	case "backspace", "h", "left":
		return *m, m.apply(m.active, p.ctrl.NavigateToParent(), true)

	case "+", "=":
		return *m, m.apply(m.active, p.ctrl.SetDepth(1), true)
	case "-", "_":
		return *m, m.apply(m.active, p.ctrl.SetDepth(-1), true)

	case ".":
		return *m, m.apply(m.active, p.ctrl.ToggleShowFolders(), true)

	case "1", "2", "3", "4", "5", "6", "7", "8", "9", "0":
		idx := int(key[0] - '1')
		if key == "0" {
			idx = 9
		}
		if idx >= len(m.cfg.Presets) {
			return *m, nil
		}
		return *m, m.apply(m.active, p.ctrl.SetExtensionFilter(m.cfg.Presets[idx].Filter), true)

	case "/":
		m.regex = p.search.Regex()
		return *m, m.openInput(modeSearch, p.search.Term(), promptFor(m.regex))

	case "g":
		return *m, m.openInput(modePath, p.ctrl.State().RootPath, pathPrompt)

	case "m":
		return *m, m.grabSelected()
	case "p":
		return *m, m.drop(false)
	case "P":
		return *m, m.drop(true)

	case "esc":
		if m.grab != nil {
			m.mover.DragEnd()
			m.grab = nil
			return *m, NewInfoCmd("Move cancelled")
		}
		if p.search.Active() {
			stale := p.search.Stale(p.ctrl.State().ExtensionFilter)
			p.search.Clear()
			p.clamp()
			if stale {
				return *m, m.reload(m.active)
			}
		}

	case "[":
		path, ok := p.history.Back()
		if !ok {
			return *m, nil
		}
		return *m, m.apply(m.active, p.ctrl.SetRootPath(path), false)
	case "]":
		path, ok := p.history.Forward()
		if !ok {
			return *m, nil
		}
		return *m, m.apply(m.active, p.ctrl.SetRootPath(path), false)

	case "<":
		if _, ok := m.store.Back(); !ok {
			return *m, NewInfoCmd("No earlier location")
		}
		return *m, m.restoreLocation()
	case ">":
		if _, ok := m.store.Forward(); !ok {
			return *m, NewInfoCmd("No later location")
		}
		return *m, m.restoreLocation()

	case "r":
		return *m, m.reload(m.active)
	}
	return *m, nil
}

func promptFor(regex bool) string {
	if regex {
		return regexPrompt
	}
	return searchPrompt
}

func (m *model) openInput(mode inputMode, value, prompt string) tea.Cmd {
	m.mode = mode
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *model) closeInput() {
	m.mode = modeNormal
	m.input.Blur()
	m.input.SetValue("")
}

func handleSearchInput(m *model, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeInput()
		return *m, nil
	case "ctrl+r":
		m.regex = !m.regex
		m.input.Prompt = promptFor(m.regex)
		return *m, nil
	case "enter":
		term := m.input.Value()
		m.closeInput()
		p := m.panes[m.active]
		out, err := p.search.Set(term, m.regex, p.ctrl.State().ExtensionFilter)
		if err != nil {
			// logged by the overlay; the view stays as it was
			return *m, nil
		}
		p.cursor = 0
		if out.Reload {
			return *m, m.reload(m.active)
		}
		return *m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return *m, cmd
}

func handlePathInput(m *model, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeInput()
		return *m, nil
	case "enter":
		path := strings.TrimSpace(m.input.Value())
		m.closeInput()
		if path == "" {
			return *m, nil
		}
		p := m.panes[m.active]
		return *m, m.apply(m.active, p.ctrl.SetRootPath(path), true)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return *m, cmd
}

// grabSelected starts a drag of the item under the cursor.
func (m *model) grabSelected() tea.Cmd {
	p := m.panes[m.active]
	it, ok := p.selected()
	if !ok {
		return NewWarningCmd("Nothing to move here")
	}
	payload, err := m.mover.DragStart(it, m.active)
	if err != nil {
		return NewWarningCmd(err.Error())
	}
	m.grab = payload
	return NewInfoCmd("Grabbed " + it.Label() + ": tab to the " + m.active.Opposite().String() + " pane and press p")
}

// drop releases the grabbed item onto the active pane: onto the folder
// under the cursor, or onto the pane root when onRoot is set or the cursor
// is not on a folder.
func (m *model) drop(onRoot bool) tea.Cmd {
	if m.grab == nil {
		return NewWarningCmd("Nothing grabbed: press m on an item first")
	}
	p := m.panes[m.active]
	target := p.ctrl.State().RootPath
	if !onRoot {
		if it, ok := p.selected(); ok && it.IsDir {
			target = it.Path
		}
	}

	payload := m.grab
	m.grab = nil
	req, err := m.mover.Drop(payload, m.active, target)
	if err != nil {
		out := move.Rejected(err)
		if errors.Is(err, move.ErrSameSide) {
			m.logger.Debug("drop on source pane ignored", "side", m.active)
		}
		if out.Message == "" {
			return nil
		}
		m.logger.Warn("drop rejected", "side", m.active, "err", err)
		return NewErrorCmd(errors.New(out.Message), "")
	}
	m.logger.Debug("drop accepted", "source", req.Item.Path, "destination", req.Destination,
		"from", req.Source, "to", req.Target)
	m.toast = newToast(toastInfo, "Moving "+req.Item.Label()+" to "+req.Destination)
	return tea.Batch(toastExpireCmd(), moveCmd(m.deps.Backend, m.mover, req, m.cfg.RequestTimeout))
}
