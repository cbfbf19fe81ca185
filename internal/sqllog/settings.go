package sqllog

import (
	"strings"
	"sync"
)

// Level selects how much each repository call logs.
type Level int

const (
	// LevelInfo logs a basic one-line notice per call.
	LevelInfo Level = iota
	// LevelDebug additionally logs call arguments.
	LevelDebug
	// LevelError logs nothing on entry, only faults.
	LevelError
)

// ParseLevel resolves a configured level string. Unknown or empty input
// resolves to LevelInfo rather than an undefined state.
func ParseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Settings holds the repository logging switches. The interceptor reads
// them fresh on every call, so a config reload takes effect without a
// restart.
type Settings struct {
	mu      sync.RWMutex
	enabled bool
	level   Level
}

func NewSettings(enabled bool, level Level) *Settings {
	return &Settings{enabled: enabled, level: level}
}

func (s *Settings) Enabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled
}

func (s *Settings) Level() Level {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.level
}

// Update replaces both switches atomically. Called by the config watcher.
func (s *Settings) Update(enabled bool, level Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
	s.level = level
}
