package theme

import "github.com/charmbracelet/lipgloss"

// Palette is one named color scheme.
type Palette struct {
	BaseBg, PanelBg, SurfaceBg   lipgloss.Color
	Accent, Accent2, Teal, Peach lipgloss.Color
	Success, Warn, Error         lipgloss.Color
	Text, SubText, Dim, Overlay  lipgloss.Color
	Flamingo, Lavender           lipgloss.Color
}

var palettes = map[string]Palette{
	"catppuccin-mocha": {
		BaseBg: "#11111b", PanelBg: "#1e1e2e", SurfaceBg: "#313244",
		Accent: "#cba6f7", Accent2: "#89b4fa", Teal: "#94e2d5", Peach: "#fab387",
		Success: "#a6e3a1", Warn: "#f9e2af", Error: "#f38ba8",
		Text: "#cdd6f4", SubText: "#a6adc8", Dim: "#6c7086", Overlay: "#45475a",
		Flamingo: "#f5c2e7", Lavender: "#b4befe",
	},
	"catppuccin-latte": {
		BaseBg: "#dce0e8", PanelBg: "#eff1f5", SurfaceBg: "#ccd0da",
		Accent: "#8839ef", Accent2: "#1e66f5", Teal: "#179299", Peach: "#fe640b",
		Success: "#40a02b", Warn: "#df8e1d", Error: "#d20f39",
		Text: "#4c4f69", SubText: "#6c6f85", Dim: "#9ca0b0", Overlay: "#bcc0cc",
		Flamingo: "#dd7878", Lavender: "#7287fd",
	},
}

const DefaultName = "catppuccin-mocha"

var (
	BaseBg       lipgloss.Color
	SurfaceBg    lipgloss.Color
	Accent       lipgloss.Color
	Accent2      lipgloss.Color
	Teal         lipgloss.Color
	Peach        lipgloss.Color
	SuccessColor lipgloss.Color
	WarnColor    lipgloss.Color
	ErrorColor   lipgloss.Color
	TextColor    lipgloss.Color
	SubTextColor lipgloss.Color
	DimColor     lipgloss.Color
	OverlayColor lipgloss.Color
	Flamingo     lipgloss.Color
	Lavender     lipgloss.Color
)

const (
	IconFolder  = ""
	IconFile    = ""
	IconGrab    = ""
	IconSearch  = ""
	IconRegex   = "\U000f0451"
	IconFilter  = ""
	IconDepth   = ""
	IconPath    = ""
	IconHidden  = ""
	IconLoading = ""
)

var (
	TitleStyle       lipgloss.Style
	SectionStyle     lipgloss.Style
	TextStyle        lipgloss.Style
	SubTextStyle     lipgloss.Style
	DimStyle         lipgloss.Style
	ErrorStyle       lipgloss.Style
	SuccessStyle     lipgloss.Style
	WarnStyle        lipgloss.Style
	ModalStyle       lipgloss.Style
	KeyStyle         lipgloss.Style
	SeparatorStyle   lipgloss.Style
	DirStyle         lipgloss.Style
	FileStyle        lipgloss.Style
	SelectedStyle    lipgloss.Style
	GrabbedStyle     lipgloss.Style
	PaneStyle        lipgloss.Style
	ActivePaneStyle  lipgloss.Style
	DropTargetStyle  lipgloss.Style
	PaneTitleStyle   lipgloss.Style
	ActiveTitleStyle lipgloss.Style
	DropBadgeStyle   lipgloss.Style
)

func init() {
	Apply(DefaultName)
}

// Names lists the known palettes.
func Names() []string {
	out := make([]string, 0, len(palettes))
	for name := range palettes {
		out = append(out, name)
	}
	return out
}

// Apply switches every color and style to the named palette. Unknown
// names leave the current palette in place and report false.
func Apply(name string) bool {
	p, ok := palettes[name]
	if !ok {
		return false
	}
	BaseBg, SurfaceBg = p.BaseBg, p.SurfaceBg
	Accent, Accent2, Teal, Peach = p.Accent, p.Accent2, p.Teal, p.Peach
	SuccessColor, WarnColor, ErrorColor = p.Success, p.Warn, p.Error
	TextColor, SubTextColor, DimColor, OverlayColor = p.Text, p.SubText, p.Dim, p.Overlay
	Flamingo, Lavender = p.Flamingo, p.Lavender
	build()
	return true
}

func build() {
	TitleStyle = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
	SectionStyle = lipgloss.NewStyle().
		Foreground(Accent2).
		Bold(true)
	TextStyle = lipgloss.NewStyle().
		Foreground(TextColor)
	SubTextStyle = lipgloss.NewStyle().
		Foreground(SubTextColor)
	DimStyle = lipgloss.NewStyle().
		Foreground(DimColor)
	ErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorColor).
		Bold(true)
	SuccessStyle = lipgloss.NewStyle().
		Foreground(SuccessColor)
	WarnStyle = lipgloss.NewStyle().
		Foreground(WarnColor)
	ModalStyle = lipgloss.NewStyle().
		Padding(1, 2).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(Accent)
	KeyStyle = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)
	SeparatorStyle = lipgloss.NewStyle().
		Foreground(OverlayColor)
	DirStyle = lipgloss.NewStyle().
		Foreground(Accent2).
		Bold(true)
	FileStyle = lipgloss.NewStyle().
		Foreground(TextColor)
	SelectedStyle = lipgloss.NewStyle().
		Background(SurfaceBg).
		Foreground(Teal)
	GrabbedStyle = lipgloss.NewStyle().
		Foreground(Peach).
		Italic(true)
	PaneStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(OverlayColor)
	ActivePaneStyle = PaneStyle.
		BorderForeground(Accent)
	DropTargetStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.ThickBorder()).
		BorderForeground(Peach)
	PaneTitleStyle = lipgloss.NewStyle().
		Foreground(SubTextColor).
		Bold(true)
	ActiveTitleStyle = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
	DropBadgeStyle = lipgloss.NewStyle().
		Background(Peach).
		Foreground(BaseBg).
		Bold(true).
		Padding(0, 1)
}

// Logo is the gradient program name used in the header and help screen.
func Logo() string {
	return lipgloss.NewStyle().Foreground(SuccessColor).Bold(true).Render("▲ ") +
		lipgloss.NewStyle().Foreground(Flamingo).Bold(true).Render("twin") +
		lipgloss.NewStyle().Foreground(Accent).Bold(true).Render("pa") +
		lipgloss.NewStyle().Foreground(Accent2).Bold(true).Render("ne")
}
