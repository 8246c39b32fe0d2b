package location

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const defaultMaxEntries = 50

// Bar is the address bar: one shared query string with browser-style
// push and replace writes.
type Bar interface {
	Query() string
	Push(query string)
	Replace(query string)
}

// Store is a Bar with session history, persisted as JSON so a restart
// reproduces the last dual-pane location.
type Store struct {
	Entries []string `json:"entries"`
	Index   int      `json:"index"`
	path    string
	max     int
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "twinpane")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "twinpane")
}

// DefaultPath is where the location store lives unless configured otherwise.
func DefaultPath() string {
	return filepath.Join(configDir(), "location.json")
}

// NewMemory returns a store that is never written to disk.
func NewMemory(limit int) *Store {
	if limit <= 0 {
		limit = defaultMaxEntries
	}
	return &Store{max: limit}
}

// Load reads the store at path. A missing or unreadable file yields an
// empty store bound to path.
func Load(path string, limit int) (*Store, error) {
	s := NewMemory(limit)
	s.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, s); err != nil {
		return NewMemoryAt(path, limit), nil
	}
	s.path = path
	s.trim()
	if s.Index < 0 || s.Index >= len(s.Entries) {
		s.Index = max(len(s.Entries)-1, 0)
	}
	return s, nil
}

func NewMemoryAt(path string, limit int) *Store {
	s := NewMemory(limit)
	s.path = path
	return s
}

func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

func (s *Store) Query() string {
	if len(s.Entries) == 0 {
		return ""
	}
	return s.Entries[s.Index]
}

// Push records a new navigable entry, dropping anything after the cursor.
func (s *Store) Push(query string) {
	if len(s.Entries) > 0 && s.Entries[s.Index] == query {
		return
	}
	if len(s.Entries) > 0 {
		s.Entries = s.Entries[:s.Index+1]
	}
	s.Entries = append(s.Entries, query)
	s.Index = len(s.Entries) - 1
	s.trim()
}

// Replace rewrites the current entry in place.
func (s *Store) Replace(query string) {
	if len(s.Entries) == 0 {
		s.Entries = []string{query}
		s.Index = 0
		return
	}
	s.Entries[s.Index] = query
}

func (s *Store) Back() (string, bool) {
	if s.Index <= 0 || len(s.Entries) == 0 {
		return "", false
	}
	s.Index--
	return s.Entries[s.Index], true
}

func (s *Store) Forward() (string, bool) {
	if s.Index >= len(s.Entries)-1 {
		return "", false
	}
	s.Index++
	return s.Entries[s.Index], true
}

func (s *Store) trim() {
	if s.max <= 0 || len(s.Entries) <= s.max {
		return
	}
	drop := len(s.Entries) - s.max
	s.Entries = s.Entries[drop:]
	s.Index -= drop
	if s.Index < 0 {
		s.Index = 0
	}
}
