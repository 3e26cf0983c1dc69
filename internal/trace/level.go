package trace

import (
	"fmt"
	"strings"
)

// Level controls how fine-grained the recorded spans are.
type Level uint8

const (
	LevelOff Level = iota
	// LevelPhase: команды и проходы (tokenize, parse, check, compile).
	LevelPhase
	// LevelScript добавляет разбор каждого скрипта и каждый call.
	LevelScript
	// LevelDebug пишет всё, включая отдельные операторы.
	LevelDebug
)

var levelNames = [...]string{"off", "phase", "script", "debug"}

// maxScope — самый мелкий scope, который ещё пишется на уровне.
var maxScope = [...]Scope{0, ScopePass, ScopeCall, ScopeStmt}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a flag or config value to a Level; case is ignored.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil // #nosec G115 -- index of a four-element array
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope are recorded at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(maxScope) || scope == 0 {
		return false
	}
	return scope <= maxScope[l]
}
