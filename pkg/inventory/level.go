package inventory

import "strings"

// Level is a collection tier controlling which facts are gathered.
type Level string

const (
	// LevelMinimal is the default tier and the fallback for unknown input.
	LevelMinimal Level = "minimal"
	// LevelFull is reserved for additional facts; today it matches minimal.
	LevelFull Level = "full"
)

// ParseLevel converts an untrusted string to a Level.
// Anything other than "minimal" or "full" degrades to LevelMinimal.
func ParseLevel(v string) Level {
	return Level(strings.TrimSpace(v)).Normalize()
}

// Normalize maps unknown levels to LevelMinimal.
func (l Level) Normalize() Level {
	switch l {
	case LevelMinimal, LevelFull:
		return l
	default:
		return LevelMinimal
	}
}

func (l Level) String() string { return string(l) }
