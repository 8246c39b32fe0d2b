package pane

import "strings"

const uncPrefix = `\\`

// ParentPath returns the parent of p using p's own separator. ok is false
// when p has no navigable parent: the filesystem root, a drive root, a bare
// UNC prefix or a UNC share root.
func ParentPath(p string) (string, bool) {
	if p == "" {
		return "", false
	}
	if strings.HasPrefix(p, uncPrefix) {
		return uncParent(p)
	}

	sep := "/"
	if strings.Contains(p, `\`) {
		sep = `\`
	}
	trimmed := strings.TrimRight(p, sep)
	if trimmed == "" || isDrive(trimmed) {
		return "", false
	}
	idx := strings.LastIndex(trimmed, sep)
	if idx < 0 {
		return "", false
	}
	parent := trimmed[:idx]
	switch {
	case parent == "":
		return sep, true
	case isDrive(parent):
		return parent + sep, true
	}
	return parent, true
}

// \\server\share is the highest reachable point of a network path.
func uncParent(p string) (string, bool) {
	rest := strings.Trim(p[len(uncPrefix):], `\`)
	if rest == "" {
		return "", false
	}
	parts := strings.Split(rest, `\`)
	if len(parts) <= 2 {
		return "", false
	}
	return uncPrefix + strings.Join(parts[:len(parts)-1], `\`), true
}

func isDrive(s string) bool {
	if len(s) != 2 || s[1] != ':' {
		return false
	}
	c := s[0] | 0x20
	return c >= 'a' && c <= 'z'
}
