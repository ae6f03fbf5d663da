package theme

import "sync"

// Theme is a named ANSI color table consumed by the terminal renderer.
type Theme struct {
	Name      string
	Primary   string
	Secondary string
	Accent    string
	Danger    string
	Muted     string
	Reset     string
}

var light = Theme{
	Name:      "light",
	Primary:   "\x1b[34m",
	Secondary: "\x1b[36m",
	Accent:    "\x1b[32m",
	Danger:    "\x1b[31m",
	Muted:     "\x1b[90m",
	Reset:     "\x1b[0m",
}

var dark = Theme{
	Name:      "dark",
	Primary:   "\x1b[94m",
	Secondary: "\x1b[96m",
	Accent:    "\x1b[92m",
	Danger:    "\x1b[91m",
	Muted:     "\x1b[37m",
	Reset:     "\x1b[0m",
}

// Store holds the active theme behind a toggle.
type Store struct {
	mu      sync.RWMutex
	current Theme
}

// NewStore starts on the named theme, defaulting to light for anything
// unrecognized.
func NewStore(name string) *Store {
	s := &Store{current: light}
	if name == dark.Name {
		s.current = dark
	}
	return s
}

// Current returns the active theme.
func (s *Store) Current() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Toggle flips between light and dark and returns the new theme.
func (s *Store) Toggle() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current.Name == light.Name {
		s.current = dark
	} else {
		s.current = light
	}
	return s.current
}
