// Package trace records spans of the uwscript pipeline: CLI commands,
// passes over a script and every script pulled in by call.
//
// It is meant for finding slow or hanging call fetches and parser loops.
//
// # Usage
//
//	uwscript check --trace=- --trace-level=script main.uws
//
// # Tracers
//
//   - Nop: zero-overhead tracer when tracing is off
//   - StreamTracer: writes each event immediately (file or stderr)
//   - RingTracer: keeps the last N events in memory for dumps
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// LevelPhase emits ScopeCommand and ScopePass events, LevelScript adds
// ScopeScript and ScopeCall (one span per call target), LevelDebug emits
// everything.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, sp := trace.Start(ctx, trace.ScopePass, "parse")
//	defer sp.End("")
//
// Spans started from the returned ctx become children of sp. CheckDir puts
// each file on its own lane with WithLane.
package trace
