package listing

import "strings"

// Item is one filesystem entry as returned by the backend. Path is the
// identity of the entry within one backend filesystem.
type Item struct {
	Name          string `json:"name,omitempty"`
	Path          string `json:"path"`
	RelativePath  string `json:"relative_path,omitempty"`
	IsDir         bool   `json:"is_dir"`
	Depth         int    `json:"depth"`
	ChildrenCount *int   `json:"children_count,omitempty"`
	Size          *int64 `json:"size,omitempty"`
}

// DisplayName is the name search matches against.
func (i Item) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	if i.RelativePath != "" {
		return baseName(i.RelativePath)
	}
	return baseName(i.Path)
}

// Label is the text shown for the item in a pane and in move notifications.
func (i Item) Label() string {
	if i.RelativePath != "" {
		return i.RelativePath
	}
	return i.DisplayName()
}

func (i Item) Children() int {
	if i.ChildrenCount == nil {
		return 0
	}
	return *i.ChildrenCount
}

// Separate splits items into directories and files, keeping backend order.
func Separate(items []Item) (dirs, files []Item) {
	for _, it := range items {
		if it.IsDir {
			dirs = append(dirs, it)
		} else {
			files = append(files, it)
		}
	}
	return dirs, files
}

func baseName(p string) string {
	p = strings.TrimRight(p, `/\`)
	if idx := strings.LastIndexAny(p, `/\`); idx >= 0 {
		return p[idx+1:]
	}
	return p
}
