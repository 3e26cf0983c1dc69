package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a phase boundary of one script. CheckDir emits one
// "check" pair per file; Errors is set on PhaseEnd.
type PhaseEvent struct {
	Name    string
	Path    string
	Status  PhaseStatus
	Elapsed time.Duration
	Errors  int
	Cached  bool
}

// PhaseObserver receives phase events. CheckDir calls it from worker goroutines.
type PhaseObserver func(PhaseEvent)
