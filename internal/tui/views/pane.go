package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/nicobailon/twinpane/internal/listing"
	"github.com/nicobailon/twinpane/internal/tui/theme"
)

// PaneView is everything needed to draw one pane.
type PaneView struct {
	Title       string
	Root        string
	Depth       int
	FilterLabel string
	Search      string
	Regex       bool
	ShowFolders bool
	Active      bool
	DropTarget  bool
	Loading     bool
	Spinner     string
	Grabbed     string
	Items       []listing.Item
	Cursor      int
	Width       int
	Height      int
}

// Window returns the slice bounds of a list of n rows scrolled so that
// cursor is visible in height rows.
func Window(n, cursor, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	end := start + height
	if end > n {
		end = n
		start = end - height
	}
	return start, end
}

func RenderPane(p PaneView) string {
	frame := theme.PaneStyle
	switch {
	case p.DropTarget:
		frame = theme.DropTargetStyle
	case p.Active:
		frame = theme.ActivePaneStyle
	}

	inner := p.Width - frame.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}

	titleStyle := theme.PaneTitleStyle
	if p.Active {
		titleStyle = theme.ActiveTitleStyle
	}
	title := titleStyle.Render(strings.ToUpper(p.Title))
	if p.DropTarget {
		title += " " + theme.DropBadgeStyle.Render("DROP")
	}
	if p.Loading {
		title += " " + p.Spinner
	}

	root := theme.SectionStyle.Render(theme.IconPath+" ") + theme.TextStyle.Render(truncate(p.Root, inner-2))

	status := []string{theme.DimStyle.Render(fmt.Sprintf("%s depth %d", theme.IconDepth, p.Depth))}
	if p.FilterLabel != "" {
		status = append(status, theme.WarnStyle.Render(theme.IconFilter+" "+p.FilterLabel))
	}
	if !p.ShowFolders {
		status = append(status, theme.DimStyle.Render(theme.IconHidden+" folders"))
	}
	if p.Search != "" {
		icon := theme.IconSearch
		if p.Regex {
			icon = theme.IconRegex
		}
		status = append(status, theme.KeyStyle.Render(icon+" "+p.Search))
	}

	header := []string{title, root, strings.Join(status, theme.SeparatorStyle.Render("  ")), ""}

	rows := p.Height - frame.GetVerticalFrameSize() - len(header)
	if rows < 1 {
		rows = 1
	}

	var body []string
	switch {
	case len(p.Items) == 0 && p.Loading:
		body = append(body, theme.DimStyle.Render("Loading..."))
	case len(p.Items) == 0:
		body = append(body, theme.DimStyle.Render("Empty"))
	default:
		start, end := Window(len(p.Items), p.Cursor, rows)
		for i := start; i < end; i++ {
			body = append(body, renderRow(p.Items[i], i == p.Cursor && p.Active, p.Items[i].Path == p.Grabbed, inner))
		}
	}

	content := strings.Join(append(header, body...), "\n")
	return frame.
		Width(p.Width - frame.GetHorizontalBorderSize()).
		Height(p.Height - frame.GetVerticalBorderSize()).
		Render(content)
}

func renderRow(it listing.Item, selected, grabbed bool, width int) string {
	indent := ""
	if it.Depth > 1 {
		indent = strings.Repeat("  ", it.Depth-1)
	}

	icon, nameStyle := theme.IconFile, theme.FileStyle
	if it.IsDir {
		icon, nameStyle = theme.IconFolder, theme.DirStyle
	}
	if grabbed {
		nameStyle = theme.GrabbedStyle
		icon = theme.IconGrab
	}

	meta := itemMeta(it)
	nameWidth := width - lipgloss.Width(meta) - len(indent) - 3
	name := truncate(it.DisplayName(), nameWidth)

	left := indent + icon + " " + name
	gap := width - lipgloss.Width(left) - lipgloss.Width(meta)
	if gap < 1 {
		gap = 1
	}

	if selected {
		return theme.SelectedStyle.Width(width).Render(left + strings.Repeat(" ", gap) + meta)
	}
	return nameStyle.Render(left) + strings.Repeat(" ", gap) + theme.DimStyle.Render(meta)
}

func itemMeta(it listing.Item) string {
	if it.IsDir {
		if it.ChildrenCount == nil {
			return ""
		}
		n := it.Children()
		if n == 1 {
			return "1 item"
		}
		return humanize.Comma(int64(n)) + " items"
	}
	if it.Size == nil {
		return ""
	}
	return humanize.IBytes(uint64(max(*it.Size, 0)))
}

func truncate(s string, n int) string {
	if n <= 1 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
