package trace

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
	// openSpans — сколько span'ов начато и ещё не закрыто; его показывает heartbeat.
	openSpans atomic.Int64
)

// NextSeq returns the next event sequence number, shared by all tracers.
func NextSeq() uint64 {
	return seqCounter.Add(1)
}

type tracerKey struct{}

type spanKey struct{}

// spanRef — открытый span из контекста: родитель для вложенных и их дорожка.
type spanRef struct {
	id   uint64
	lane uint64
}

// FromContext returns the tracer attached to ctx, Nop when there is none.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches t to ctx.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// WithLane puts the spans started from ctx on their own lane. CheckDir gives
// every file a lane, so parallel checks do not interleave in chrome://tracing.
func WithLane(ctx context.Context, lane uint64) context.Context {
	ref := currentSpan(ctx)
	ref.lane = lane
	return context.WithValue(ctx, spanKey{}, ref)
}

func currentSpan(ctx context.Context) spanRef {
	if ctx == nil {
		return spanRef{}
	}
	ref, _ := ctx.Value(spanKey{}).(spanRef)
	return ref
}

// Span is one traced operation: a command, a pass, a script or a call.
// The zero Span is inert, so callers never check whether tracing is on.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	lane    uint64
	scope   Scope
	name    string
	started time.Time
	extra   map[string]string
	ended   bool
}

// Start opens a span below the one carried by ctx and returns the context
// for nested spans. A span filtered out by the level leaves ctx unchanged,
// so its children attach to the nearest traced ancestor.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	t := FromContext(ctx)
	if !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return ctx, &Span{}
	}
	parent := currentSpan(ctx)
	sp := &Span{
		tracer:  t,
		id:      spanCounter.Add(1),
		parent:  parent.id,
		lane:    parent.lane,
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	openSpans.Add(1)
	sp.emit(KindSpanBegin, sp.started, "", nil)
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, spanKey{}, spanRef{id: sp.id, lane: sp.lane}), sp
}

// Point records an instant event under the span carried by ctx.
func Point(ctx context.Context, scope Scope, name, detail string) {
	t := FromContext(ctx)
	if !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	parent := currentSpan(ctx)
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent.id,
		Lane:     parent.lane,
		Name:     name,
		Detail:   detail,
	})
}

// Set adds a key to the end event.
func (s *Span) Set(key, value string) *Span {
	if s == nil || s.tracer == nil {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

// Errors records the number of error diagnostics; zero is not recorded.
func (s *Span) Errors(n int) *Span {
	if n == 0 {
		return s
	}
	return s.Set("errors", strconv.Itoa(n))
}

// End closes the span and returns its duration. Repeated calls are ignored.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil || s.ended {
		return 0
	}
	s.ended = true
	openSpans.Add(-1)
	now := time.Now()
	s.emit(KindSpanEnd, now, detail, s.extra)
	return now.Sub(s.started)
}

// ID returns the span ID, 0 for an inert span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

func (s *Span) emit(kind Kind, at time.Time, detail string, extra map[string]string) {
	s.tracer.Emit(&Event{
		Time:     at,
		Seq:      NextSeq(),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Lane:     s.lane,
		Name:     s.name,
		Detail:   detail,
		Extra:    extra,
	})
}
