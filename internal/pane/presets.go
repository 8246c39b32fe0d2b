package pane

import "strings"

// Preset is a named extension filter bound to a number key.
type Preset struct {
	Label  string `mapstructure:"label"`
	Filter string `mapstructure:"filter"`
}

var DefaultPresets = []Preset{
	{Label: "Common", Filter: "md+svg+csv+pdf+ipynb+py+docx+xlsx+xlsm+pptx+msg+lnk+excalidraw+excalidraw.svg+excalidraw.png"},
	{Label: "MD", Filter: "md"},
	{Label: "SVG", Filter: "svg"},
	{Label: "CSV", Filter: "csv"},
	{Label: "PDF", Filter: "pdf"},
	{Label: "IPYNB", Filter: "ipynb"},
	{Label: "PY", Filter: "py"},
	{Label: "MS Office", Filter: "docx+xlsx+xlsm+pptx+msg"},
	{Label: "image", Filter: "jpg+jpeg+png+gif+bmp+tiff"},
	{Label: "All", Filter: ""},
}

// JoinExtensions builds a filter from extensions, dropping leading dots
// and empties.
func JoinExtensions(exts ...string) string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.TrimPrefix(strings.TrimSpace(e), ".")
		if e != "" {
			out = append(out, e)
		}
	}
	return strings.Join(out, "+")
}

// PresetLabel names the active filter, or returns the raw filter when no
// preset matches.
func PresetLabel(presets []Preset, filter string) string {
	for _, p := range presets {
		if p.Filter == filter {
			return p.Label
		}
	}
	return filter
}
