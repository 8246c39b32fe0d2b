package location

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/nicobailon/twinpane/internal/pane"
)

const (
	KeyPath      = "path"
	KeyLeftPath  = "leftPath"
	KeyRightPath = "rightPath"
)

var sideKeys = [2]struct{ path, depth, ext string }{
	pane.Left:  {KeyLeftPath, "leftDepth", "leftExt"},
	pane.Right: {KeyRightPath, "rightDepth", "rightExt"},
}

// View is what the location records for one pane. Depth 0 means the
// location did not specify one.
type View struct {
	Path   string
	Depth  int
	Filter string
}

type Views [2]View

// Sync maps pane navigation onto a Bar. It holds no state of its own; the
// Bar is the only place the query string is read or written.
type Sync struct {
	Bar Bar
}

func NewSync(bar Bar) Sync {
	return Sync{Bar: bar}
}

// Read resolves both panes from the current query. Side keys win, a bare
// path seeds both sides, and defaults fill whatever remains.
func (s Sync) Read(defaults Views) Views {
	q := parse(s.Bar.Query())
	shared := q.Get(KeyPath)

	var out Views
	for _, side := range pane.Sides {
		keys := sideKeys[side]
		v := defaults[side]
		if p := q.Get(keys.path); p != "" {
			v.Path = p
		} else if shared != "" {
			v.Path = shared
		}
		if d, err := strconv.Atoi(q.Get(keys.depth)); err == nil && d >= pane.MinDepth {
			v.Depth = d
		}
		if q.Has(keys.ext) {
			v.Filter = q.Get(keys.ext)
		}
		out[side] = v
	}
	return out
}

// Seed reads the startup location. When side keys are present the bare
// path key is folded into the missing side and dropped, and the
// normalized query replaces the current entry.
func (s Sync) Seed(defaults Views) Views {
	views := s.Read(defaults)

	q := parse(s.Bar.Query())
	left, right := q.Get(KeyLeftPath), q.Get(KeyRightPath)
	if left == "" && right == "" {
		return views
	}
	if shared := q.Get(KeyPath); shared != "" {
		q.Del(KeyPath)
		if left == "" {
			q.Set(KeyLeftPath, shared)
		}
		if right == "" {
			q.Set(KeyRightPath, shared)
		}
	}
	s.Bar.Replace(encode(q))
	return views
}

// WritePath records a root change for side as a new navigable entry.
func (s Sync) WritePath(side pane.Side, path string) {
	q := parse(s.Bar.Query())
	q.Set(sideKeys[side].path, path)
	s.Bar.Push(encode(q))
}

// WriteView records depth and filter for side in place. Depth is always
// written so the entry restores the same view under any configured default.
func (s Sync) WriteView(side pane.Side, depth int, filter string) {
	q := parse(s.Bar.Query())
	keys := sideKeys[side]
	q.Set(keys.depth, strconv.Itoa(max(depth, pane.MinDepth)))
	if filter != "" {
		q.Set(keys.ext, filter)
	} else {
		q.Del(keys.ext)
	}
	s.Bar.Replace(encode(q))
}

// Query builds a startup query from command line values. Empty values are
// left out.
func Query(path, left, right string) string {
	q := url.Values{}
	if path != "" {
		q.Set(KeyPath, path)
	}
	if left != "" {
		q.Set(KeyLeftPath, left)
	}
	if right != "" {
		q.Set(KeyRightPath, right)
	}
	return encode(q)
}

// StartQuery builds the startup location from a URL or bare query string
// plus command line values, which override the URL's keys.
func StartQuery(rawURL, path, left, right string) (string, error) {
	q := url.Values{}
	if rawURL != "" {
		raw := rawURL
		if !strings.HasPrefix(raw, "?") && strings.Contains(raw, "://") {
			u, err := url.Parse(raw)
			if err != nil {
				return "", fmt.Errorf("parse location %q: %w", rawURL, err)
			}
			raw = u.RawQuery
		}
		parsed, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
		if err != nil {
			return "", fmt.Errorf("parse location %q: %w", rawURL, err)
		}
		q = parsed
	}
	for key, v := range map[string]string{KeyPath: path, KeyLeftPath: left, KeyRightPath: right} {
		if v != "" {
			q.Set(key, v)
		}
	}
	return encode(q), nil
}

func parse(raw string) url.Values {
	q, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return url.Values{}
	}
	return q
}

func encode(q url.Values) string {
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}
