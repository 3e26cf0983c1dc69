package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindSpanBegin marks the start of a logical operation.
	KindSpanBegin Kind = iota + 1 // span start
	// KindSpanEnd marks the end of a logical operation.
	KindSpanEnd // span end
	// KindPoint represents an instant event.
	KindPoint     // instant event
	KindHeartbeat // periodic liveness signal
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindHeartbeat:
		return "heartbeat"
	default:
		return "unknown"
	}
}

// Scope is the granularity of an event; smaller values are coarser.
type Scope uint8

const (
	// ScopeCommand covers a whole CLI command (check-dir, heartbeat).
	ScopeCommand Scope = iota + 1
	// ScopePass covers one pass over a file: tokenize, parse, check, compile.
	ScopePass
	// ScopeScript covers parsing one script, the main file or a called one.
	ScopeScript
	// ScopeCall covers resolving and loading one call target.
	ScopeCall
	ScopeStmt
)

var scopeNames = [...]string{"", "command", "pass", "script", "call", "stmt"}

func (s Scope) String() string {
	if s > 0 && int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return "unknown"
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time         // wall-clock timestamp
	Seq      uint64            // global sequence number (monotonic)
	Kind     Kind              // event kind
	Scope    Scope             // granularity level
	SpanID   uint64            // unique span identifier
	ParentID uint64            // parent span (0 if root)
	Lane     uint64            // дорожка: файл в CheckDir, 0 для остального
	Name     string            // e.g. "parse", "check", "call:lib.uws"
	Detail   string            // optional detail message
	Extra    map[string]string // extensible key-value pairs
}
