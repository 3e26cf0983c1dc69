package token

import "uwscript/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaLineComment
	// TriviaContinuation is a '_' line continuation together with the line
	// break it swallowed.
	TriviaContinuation
	// TriviaMarker is the "//-" marker; the rest of its line is code.
	TriviaMarker
)

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaLineComment:
		return "LineComment"
	case TriviaContinuation:
		return "Continuation"
	case TriviaMarker:
		return "Marker"
	default:
		return "Unknown"
	}
}
