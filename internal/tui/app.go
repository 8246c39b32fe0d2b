package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nicobailon/twinpane/internal/config"
	"github.com/nicobailon/twinpane/internal/history"
	"github.com/nicobailon/twinpane/internal/listing"
	"github.com/nicobailon/twinpane/internal/loader"
	"github.com/nicobailon/twinpane/internal/location"
	"github.com/nicobailon/twinpane/internal/move"
	"github.com/nicobailon/twinpane/internal/pane"
	"github.com/nicobailon/twinpane/internal/search"
	"github.com/nicobailon/twinpane/internal/tui/theme"
	"github.com/nicobailon/twinpane/internal/tui/views"
)

type inputMode int

const (
	modeNormal inputMode = iota
	modeSearch
	modePath
	modeHelp
)

// Backend is the remote listing service.
type Backend interface {
	loader.Lister
	move.Mover
}

type Deps struct {
	Cfg      *config.Config
	Backend  Backend
	Location *location.Store
	Logger   *slog.Logger
}

// paneModel is one side of the screen: its controller plus the display
// state layered on top of it.
type paneModel struct {
	ctrl    *pane.Controller
	search  *search.Overlay
	history *history.Stack
	cursor  int
}

// visible is what the pane shows: the search view of the canonical items,
// folders first, folders dropped when hidden.
func (p *paneModel) visible() []listing.Item {
	st := p.ctrl.State()
	dirs, files := listing.Separate(p.search.View(st.Items))
	if !st.ShowFolders {
		return files
	}
	return append(dirs, files...)
}

func (p *paneModel) selected() (listing.Item, bool) {
	items := p.visible()
	if p.cursor < 0 || p.cursor >= len(items) {
		return listing.Item{}, false
	}
	return items[p.cursor], true
}

func (p *paneModel) moveCursor(delta int) {
	p.cursor += delta
	p.clamp()
}

func (p *paneModel) clamp() {
	n := len(p.visible())
	if p.cursor >= n {
		p.cursor = n - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

type model struct {
	deps    Deps
	cfg     *config.Config
	logger  *slog.Logger
	loader  *loader.Loader
	mover   *move.Protocol
	store   *location.Store
	sync    location.Sync
	panes   [2]*paneModel
	active  pane.Side
	mode    inputMode
	input   textinput.Model
	regex   bool
	spinner spinner.Model
	grab    []byte
	width   int
	height  int
	toast   *toast
}

type App struct {
	deps Deps
}

func New(deps Deps) *App {
	return &App{deps: deps}
}

func (a *App) Run() error {
	m := initialModel(a.deps)
	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if fm, ok := finalModel.(model); ok {
		fm.loader.Close()
		if serr := fm.store.Save(); serr != nil {
			fm.logger.Warn("save location", "err", serr)
		}
	}
	return err
}

func initialModel(deps Deps) model {
	cfg := deps.Cfg
	if cfg == nil {
		cfg = config.Default()
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	store := deps.Location
	if store == nil {
		store = location.NewMemory(cfg.HistoryMax)
	}
	if cfg.Theme != "" && !theme.Apply(cfg.Theme) {
		logger.Warn("unknown theme, using default", "theme", cfg.Theme, "available", theme.Names())
	}

	ti := textinput.New()
	ti.CharLimit = 1024
	ti.Prompt = ""
	ti.TextStyle = theme.TextStyle
	ti.PlaceholderStyle = theme.SubTextStyle
	ti.PromptStyle = theme.KeyStyle

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Accent)

	m := model{
		deps:    deps,
		cfg:     cfg,
		logger:  logger,
		loader:  loader.New(deps.Backend, cfg.RequestTimeout, logger.With("component", "loader")),
		mover:   move.New(cfg.RefetchDelay, logger.With("component", "move")),
		store:   store,
		sync:    location.NewSync(store),
		input:   ti,
		spinner: sp,
	}

	seeded := store.Query() != ""
	defaults := location.Views{
		pane.Left:  {Path: cfg.DefaultPath, Depth: cfg.Depth},
		pane.Right: {Path: cfg.DefaultPath, Depth: cfg.Depth},
	}
	roots := m.sync.Seed(defaults)
	for _, side := range pane.Sides {
		v := roots[side]
		ctrl := pane.NewController(side, v.Path, v.Depth)
		if v.Filter != "" {
			ctrl.SetExtensionFilter(v.Filter)
		}
		h := history.New(cfg.HistoryMax)
		h.Add(v.Path)
		m.panes[side] = &paneModel{
			ctrl:    ctrl,
			search:  search.NewOverlay(logger.With("component", "search", "side", side.String())),
			history: h,
		}
	}
	if !seeded {
		store.Replace(location.Query("", roots[pane.Left].Path, roots[pane.Right].Path))
	}
	for _, side := range pane.Sides {
		st := m.panes[side].ctrl.State()
		m.sync.WriteView(side, st.Depth, st.ExtensionFilter)
	}
	if err := store.Save(); err != nil {
		logger.Warn("save location", "err", err)
	}
	logger.Info("starting", "left", roots[pane.Left].Path, "right", roots[pane.Right].Path, "location", store.Query())
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.reload(pane.Left), m.reload(pane.Right))
}

// reload issues a listing request for side. Issuing supersedes whatever
// request that side had in flight.
func (m *model) reload(side pane.Side) tea.Cmd {
	req := m.loader.Begin(m.panes[side].ctrl)
	return listCmd(m.loader, req)
}

// apply performs the side effects a controller change asks for. record is
// false when the change itself came from pane history.
func (m *model) apply(side pane.Side, ch pane.Change, record bool) tea.Cmd {
	p := m.panes[side]
	st := p.ctrl.State()
	switch {
	case ch.Navigate:
		p.cursor = 0
		p.search.Clear()
		m.sync.WritePath(side, st.RootPath)
		if record {
			p.history.Add(st.RootPath)
		}
	case ch.Reload:
		m.sync.WriteView(side, st.Depth, st.ExtensionFilter)
	default:
		p.clamp()
		return nil
	}
	return tea.Batch(m.persist(), m.reload(side))
}

func (m *model) persist() tea.Cmd {
	if err := m.store.Save(); err != nil {
		m.logger.Warn("save location", "err", err)
		return NewErrorCmd(err, "save location")
	}
	return nil
}

// restoreLocation reproduces both panes from the current location entry.
func (m *model) restoreLocation() tea.Cmd {
	defaults := location.Views{
		pane.Left:  {Path: m.cfg.DefaultPath, Depth: m.cfg.Depth},
		pane.Right: {Path: m.cfg.DefaultPath, Depth: m.cfg.Depth},
	}
	views := m.sync.Read(defaults)
	var cmds []tea.Cmd
	for _, side := range pane.Sides {
		v := views[side]
		p := m.panes[side]
		if !p.ctrl.Restore(v.Path, v.Depth, v.Filter).Reload {
			continue
		}
		p.cursor = 0
		p.search.Clear()
		cmds = append(cmds, m.reload(side))
	}
	cmds = append(cmds, m.persist())
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-12, 10)
		return m, nil

	case listingMsg:
		res := msg.result
		p := m.panes[res.Request.Side]
		applied, err := m.loader.Apply(p.ctrl, res)
		if !applied {
			return m, nil
		}
		p.clamp()
		if err != nil {
			m.toast = newToast(toastError, fmt.Sprintf("Load failed (%s): %s", res.Request.Side, listing.Message(err)))
			return m, toastExpireCmd()
		}
		return m, nil

	case moveResultMsg:
		out := msg.outcome
		switch out.Kind {
		case move.Moved:
			m.toast = newToast(toastSuccess, out.Message)
			cmds := []tea.Cmd{toastExpireCmd()}
			for _, side := range out.Reload {
				cmds = append(cmds, m.reload(side))
			}
			if out.RefetchAfter > 0 && len(out.Reload) > 0 {
				cmds = append(cmds, refetchCmd(out.RefetchAfter, out.Reload))
			}
			return m, tea.Batch(cmds...)
		case move.Failed:
			m.toast = newToast(toastError, out.Message)
			return m, toastExpireCmd()
		}
		return m, nil

	case refetchMsg:
		cmds := make([]tea.Cmd, 0, len(msg.sides))
		for _, side := range msg.sides {
			cmds = append(cmds, m.reload(side))
		}
		return m, tea.Batch(cmds...)

	case ErrorMsg:
		m.toast = newToast(toastError, msg.Error())
		return m, toastExpireCmd()

	case WarningMsg:
		m.toast = newToast(toastWarning, msg.Message)
		return m, toastExpireCmd()

	case InfoMsg:
		m.toast = newToast(toastInfo, msg.Message)
		return m, toastExpireCmd()

	case toastExpiredMsg:
		if m.toast != nil && m.toast.expired() {
			m.toast = nil
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return handleSearchInput(&m, msg)
		case modePath:
			return handlePathInput(&m, msg)
		case modeHelp:
			m.mode = modeNormal
			return m, nil
		}
		return handleKey(&m, msg)
	}

	if m.mode == modeSearch || m.mode == modePath {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	width := max(m.width, 60)
	height := max(m.height, 16)

	if m.mode == modeHelp {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, renderHelp(m.cfg.Presets))
	}

	header := m.renderHeader(width)
	status := m.renderStatus()
	footer := m.renderFooter()

	paneHeight := height - lipgloss.Height(header) - lipgloss.Height(status) - lipgloss.Height(footer)
	if paneHeight < 6 {
		paneHeight = 6
	}

	hover, hovering := m.mover.Hover()
	grabbed := ""
	if dc, ok := m.mover.Drag(); ok {
		grabbed = dc.Item.Path
	}

	widths := [2]int{width / 2, width - width/2}
	var rendered [2]string
	for _, side := range pane.Sides {
		p := m.panes[side]
		st := p.ctrl.State()
		filterLabel := ""
		if st.ExtensionFilter != "" {
			filterLabel = pane.PresetLabel(m.cfg.Presets, st.ExtensionFilter)
		}
		rendered[side] = views.RenderPane(views.PaneView{
			Title:       side.String(),
			Root:        st.RootPath,
			Depth:       st.Depth,
			FilterLabel: filterLabel,
			Search:      p.search.Term(),
			Regex:       p.search.Regex(),
			ShowFolders: st.ShowFolders,
			Active:      side == m.active,
			DropTarget:  hovering && hover == side,
			Loading:     st.Loading,
			Spinner:     m.spinner.View(),
			Grabbed:     grabbed,
			Items:       p.visible(),
			Cursor:      p.cursor,
			Width:       widths[side],
			Height:      paneHeight,
		})
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, rendered[pane.Left], rendered[pane.Right])
	return lipgloss.JoinVertical(lipgloss.Left, header, body, status, footer)
}

func (m model) renderHeader(width int) string {
	indicator := ""
	if dc, ok := m.mover.Drag(); ok {
		indicator = theme.GrabbedStyle.Render(fmt.Sprintf("%s moving %s from %s", theme.IconGrab, dc.Item.Label(), dc.SourceSide))
	} else if q := m.store.Query(); q != "" {
		indicator = theme.DimStyle.Render(q)
	}

	headerWidth := width - 4
	padding := headerWidth - lipgloss.Width(theme.Logo()) - lipgloss.Width(indicator)
	if padding < 1 {
		padding = 1
	}
	headerLine := theme.Logo() + strings.Repeat(" ", padding) + indicator

	colors := []lipgloss.Color{theme.Flamingo, theme.Accent, theme.Lavender, theme.Accent2, theme.Teal}
	segmentLen := headerWidth / len(colors)
	parts := make([]string, 0, len(colors))
	for i, c := range colors {
		length := segmentLen
		if i == len(colors)-1 {
			length = headerWidth - segmentLen*(len(colors)-1)
		}
		parts = append(parts, lipgloss.NewStyle().Foreground(c).Render(strings.Repeat("─", length)))
	}

	return lipgloss.NewStyle().
		Padding(0, 2).
		Render(headerLine + "\n" + strings.Join(parts, ""))
}

func (m model) renderStatus() string {
	switch m.mode {
	case modeSearch, modePath:
		return lipgloss.NewStyle().Padding(0, 2).Render(m.input.View())
	}
	if m.toast != nil && !m.toast.expired() {
		return lipgloss.NewStyle().Padding(0, 2).Render(m.toast.render())
	}
	return ""
}

func (m model) renderFooter() string {
	hint := func(k, d string) string {
		return theme.KeyStyle.Render(k) + theme.DimStyle.Render(" "+d+"  ")
	}
	sep := theme.SeparatorStyle.Render("│ ")

	var content string
	switch {
	case m.mode == modeSearch:
		content = hint("enter", "apply") + hint("ctrl+r", "regex") + hint("esc", "cancel")
	case m.mode == modePath:
		content = hint("enter", "go") + hint("esc", "cancel")
	case m.grab != nil:
		content = hint("tab", "other pane") + hint("p", "drop on folder") + hint("P", "drop on root") + hint("esc", "cancel")
	default:
		content = hint("tab", "pane") + hint("enter", "open") + hint("h", "up") +
			sep +
			hint("/", "search") + hint("g", "path") + hint("m", "move") +
			sep +
			hint("?", "help") + hint("q", "quit")
	}

	return lipgloss.NewStyle().
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.OverlayColor).
		Padding(0, 2).
		Foreground(theme.SubTextColor).
		Render(content)
}

func renderHelp(presets []pane.Preset) string {
	helpLine := func(key, desc string) string {
		k := lipgloss.NewStyle().
			Foreground(theme.BaseBg).
			Background(theme.Teal).
			Bold(true).
			Padding(0, 1).
			Width(12).
			Render(key)
		d := lipgloss.NewStyle().Foreground(theme.TextColor).Render("  " + desc)
		return k + d
	}

	sectionHeader := func(title string) string {
		return lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			MarginTop(1).
			Render(" " + title + " ")
	}

	lines := []string{
		theme.Logo() + theme.DimStyle.Render(" help"),
		sectionHeader("Navigation"),
		helpLine("tab", "switch pane"),
		helpLine("j / k", "move down / up"),
		helpLine("enter", "open folder"),
		helpLine("h / bksp", "parent folder"),
		helpLine("g", "go to path"),
		helpLine("[ / ]", "pane history back / forward"),
		helpLine("< / >", "location back / forward"),
		sectionHeader("View"),
		helpLine("+ / -", "depth"),
		helpLine(".", "show / hide folders"),
		helpLine("/", "search (ctrl+r regex)"),
		helpLine("r", "reload pane"),
		sectionHeader("Move"),
		helpLine("m", "grab item"),
		helpLine("p", "drop on folder under cursor"),
		helpLine("P", "drop on pane root"),
		helpLine("esc", "cancel grab / clear search"),
		sectionHeader("Filters"),
	}
	for i, p := range presets {
		if i >= 10 {
			break
		}
		key := fmt.Sprintf("%d", (i+1)%10)
		lines = append(lines, helpLine(key, p.Label))
	}
	lines = append(lines,
		sectionHeader("Other"),
		helpLine("?", "toggle this help"),
		helpLine("q", "quit"),
	)
	return theme.ModalStyle.Render(strings.Join(lines, "\n"))
}
