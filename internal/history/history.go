// Package history keeps a browser-style back/forward log of paths. It does
// not know which pane uses it; each consumer owns its own Stack.
package history

const DefaultMax = 50

type Stack struct {
	entries []string
	index   int
	max     int
}

func New(max int) *Stack {
	if max <= 0 {
		max = DefaultMax
	}
	return &Stack{index: -1, max: max}
}

// Add records path as the current entry. Repeating the current path is a
// no-op; adding while behind the tail discards the forward entries.
func (s *Stack) Add(path string) {
	if s.index >= 0 && s.entries[s.index] == path {
		return
	}
	s.entries = append(s.entries[:s.index+1], path)
	s.index = len(s.entries) - 1
	if over := len(s.entries) - s.max; over > 0 {
		s.entries = s.entries[over:]
		s.index -= over
	}
}

func (s *Stack) Back() (string, bool) {
	if !s.CanGoBack() {
		return "", false
	}
	s.index--
	return s.entries[s.index], true
}

func (s *Stack) Forward() (string, bool) {
	if !s.CanGoForward() {
		return "", false
	}
	s.index++
	return s.entries[s.index], true
}

func (s *Stack) Current() (string, bool) {
	if s.index < 0 {
		return "", false
	}
	return s.entries[s.index], true
}

func (s *Stack) CanGoBack() bool    { return s.index > 0 }
func (s *Stack) CanGoForward() bool { return s.index < len(s.entries)-1 }
func (s *Stack) Len() int           { return len(s.entries) }
func (s *Stack) Index() int         { return s.index }

// Entries returns a copy of the log, oldest first.
func (s *Stack) Entries() []string {
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}
