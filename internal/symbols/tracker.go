package symbols

import (
	"strings"

	"uwscript/internal/source"
)

// Usage classifies an identifier occurrence for the tracker.
type Usage uint8

const (
	// Other identifiers (member names, option names, labels) are not recorded.
	Other Usage = iota
	Declaration
	Assignment
	Access
	Parameter
	Definition
	// NotSure is an identifier whose role is decided later by the parser.
	NotSure
)

// Frame is a scope entered with Tracker.Enter.
type Frame uint8

const (
	FrameFunction Frame = iota
	FrameModule
	FrameClass
	FrameAnon
	// FrameDefaultParam covers a default parameter value.
	FrameDefaultParam
	// FrameConst, FramePublic and FrameDim cover a declaration statement.
	FrameConst
	FramePublic
	FrameDim
	// FrameLoop only counts loop depth for continue and break.
	FrameLoop
)

// Options configures a Tracker.
type Options struct {
	// Location is the display name of the script (path or URI).
	Location string
	// Builtins are names the evaluator provides; accesses to them are not recorded.
	Builtins []string
	// Explicit and OptPublic are the defaults before any OPTION directive.
	Explicit  bool
	OptPublic bool
}

// CallScope is the recorded scope of a script included with call.
type CallScope struct {
	Location string
	Scope    *Scope
}

// Tracker records identifier events while a script is parsed and runs the
// name checks afterwards. One Tracker serves one script; called scripts get
// a Child and hand their scopes back with Export.
type Tracker struct {
	location  string
	depth     int
	builtins  map[string]struct{}
	explicit  bool
	optPublic bool

	scope *Scope
	calls []CallScope

	// текущее состояние разбора
	ctx      declCtx
	fn       *funcScope
	mod      *moduleScope
	anon     *anonScope
	defParam bool
	loops    int
}

// NewTracker creates a tracker for a top-level script.
func NewTracker(opts Options) *Tracker {
	t := &Tracker{
		location:  opts.Location,
		builtins:  make(map[string]struct{}, len(opts.Builtins)),
		explicit:  opts.Explicit,
		optPublic: opts.OptPublic,
		scope:     &Scope{},
	}
	for _, b := range opts.Builtins {
		t.builtins[strings.ToUpper(b)] = struct{}{}
	}
	return t
}

// Child creates the tracker of a script called from t, one level deeper.
func (t *Tracker) Child(location string) *Tracker {
	return &Tracker{
		location: location,
		depth:    t.depth + 1,
		builtins: t.builtins,
		scope:    &Scope{},
	}
}

// Depth returns the call depth: 0 for the top-level script.
func (t *Tracker) Depth() int { return t.depth }

// SetExplicit applies OPTION EXPLICIT. Only the flags of the top-level
// tracker are used by Check: called scripts are checked under them too.
func (t *Tracker) SetExplicit(on bool) { t.explicit = on }

// SetOptPublic applies OPTION OPTPUBLIC, see SetExplicit.
func (t *Tracker) SetOptPublic(on bool) { t.optPublic = on }

// InLoop reports whether continue and break are allowed here.
func (t *Tracker) InLoop() bool { return t.loops > 0 }

// InFunction reports whether a named function body is being parsed.
func (t *Tracker) InFunction() bool { return t.fn != nil }

// InMemberContext reports whether statements here become module members:
// inside a module body but not inside one of its functions.
func (t *Tracker) InMemberContext() bool {
	return t.mod != nil && t.fn == nil && t.anon == nil
}

// Enter pushes a frame and returns the func that pops it:
//
//	defer t.Enter(symbols.FrameFunction)()
func (t *Tracker) Enter(f Frame) func() {
	switch f {
	case FrameConst, FramePublic, FrameDim:
		prev := t.ctx
		t.ctx = frameCtx(f)
		return func() { t.ctx = prev }
	case FrameDefaultParam:
		prev := t.defParam
		t.defParam = true
		return func() { t.defParam = prev }
	case FrameLoop:
		t.loops++
		return func() { t.loops-- }
	case FrameFunction:
		return t.enterFunction()
	case FrameModule, FrameClass:
		return t.enterModule(f == FrameClass)
	case FrameAnon:
		return t.enterAnon()
	}
	return func() {}
}

func frameCtx(f Frame) declCtx {
	switch f {
	case FrameConst:
		return ctxConst
	case FramePublic:
		return ctxPublic
	default:
		return ctxDim
	}
}

func (t *Tracker) enterFunction() func() {
	prevFn, prevCtx, prevLoops := t.fn, t.ctx, t.loops
	fn := &funcScope{}
	t.fn, t.ctx, t.loops = fn, ctxNone, 0
	return func() {
		if t.mod != nil {
			t.mod.funcs = append(t.mod.funcs, fn)
		} else {
			t.scope.funcs = append(t.scope.funcs, fn)
		}
		t.fn, t.ctx, t.loops = prevFn, prevCtx, prevLoops
	}
}

func (t *Tracker) enterModule(isClass bool) func() {
	prevMod, prevCtx := t.mod, t.ctx
	mod := &moduleScope{isClass: isClass}
	t.mod, t.ctx = mod, ctxNone
	return func() {
		t.scope.modules = append(t.scope.modules, mod)
		t.mod, t.ctx = prevMod, prevCtx
	}
}

// enterAnon starts an anonymous function. The declaration context it was
// written in is kept on the scope and reset while its body is parsed.
func (t *Tracker) enterAnon() func() {
	prevAnon, prevCtx, prevDef, prevLoops := t.anon, t.ctx, t.defParam, t.loops
	a := &anonScope{ctx: t.ctx, parent: prevAnon}
	if prevAnon != nil {
		a.ctx = prevAnon.ctx
	}
	t.anon, t.ctx, t.defParam, t.loops = a, ctxNone, false, 0
	return func() {
		t.anon, t.ctx, t.defParam, t.loops = prevAnon, prevCtx, prevDef, prevLoops
		switch {
		case a.parent != nil:
			a.parent.anon = append(a.parent.anon, a)
		case t.fn != nil:
			t.fn.anon = append(t.fn.anon, a)
		case t.mod != nil:
			set := t.mod.set(a.ctx)
			set.anon = append(set.anon, a)
		default:
			set := t.scope.set(a.ctx)
			set.anon = append(set.anon, a)
		}
	}
}

// Record registers one identifier occurrence.
func (t *Tracker) Record(u Usage, name string, sp source.Span) {
	switch u {
	case Declaration:
		t.declare(name, sp)
	case Assignment:
		t.assign(name, sp)
	case Access:
		t.access(name, sp)
	case Parameter:
		t.param(name, sp)
	case Definition:
		t.scope.def = append(t.scope.def, newName(name, sp, t.depth))
	}
}

func (t *Tracker) declare(name string, sp source.Span) {
	n := newName(name, sp, t.depth)
	switch t.ctx {
	case ctxConst, ctxPublic:
		// const и public всегда глобальные либо члены модуля
		if t.mod != nil {
			set := t.mod.set(t.ctx)
			set.names = append(set.names, n)
		} else {
			set := t.scope.set(t.ctx)
			set.names = append(set.names, n)
		}
	case ctxDim:
		switch {
		case t.anon != nil:
			t.anon.dim = append(t.anon.dim, n)
		case t.fn != nil:
			t.fn.dim = append(t.fn.dim, n)
		case t.mod != nil:
			t.mod.dim.names = append(t.mod.dim.names, n)
		default:
			t.scope.dim.names = append(t.scope.dim.names, n)
		}
	}
}

func (t *Tracker) param(name string, sp source.Span) {
	n := newName(name, sp, t.depth)
	switch {
	case t.anon != nil:
		t.anon.param = append(t.anon.param, n)
	case t.fn != nil:
		t.fn.param = append(t.fn.param, n)
	}
}

func (t *Tracker) assign(name string, sp source.Span) {
	n := newName(name, sp, t.depth)
	switch {
	case t.anon != nil:
		t.anon.assignee = append(t.anon.assignee, n)
	case t.fn != nil:
		t.fn.assignee = append(t.fn.assignee, n)
	case t.mod != nil:
		set := t.mod.set(t.ctx)
		set.assignee = append(set.assignee, n)
	default:
		t.scope.assignee = append(t.scope.assignee, n)
	}
}

func (t *Tracker) access(name string, sp source.Span) {
	if t.isBuiltin(name) {
		return
	}
	n := newName(name, sp, t.depth)
	list := t.accessList()
	*list = append(*list, n)
}

// accessList picks where an access is resolved from.
func (t *Tracker) accessList() *names {
	switch {
	case t.anon != nil:
		if !t.defParam {
			return &t.anon.access
		}
		// значение по умолчанию видит то же, что и место объявления функции
		switch {
		case t.anon.parent != nil:
			return &t.anon.parent.access
		case t.fn != nil:
			return &t.fn.access
		case t.mod != nil:
			return &t.mod.set(t.anon.ctx).access
		}
		return t.mainAccess(t.anon.ctx)
	case t.fn != nil:
		if t.defParam {
			if t.mod != nil {
				return &t.mod.public.access
			}
			return &t.scope.public.access
		}
		switch t.ctx {
		case ctxConst, ctxPublic:
			if t.mod != nil {
				return &t.mod.set(t.ctx).access
			}
			return &t.scope.set(t.ctx).access
		}
		return &t.fn.access
	case t.mod != nil:
		return &t.mod.set(t.ctx).access
	}
	return t.mainAccess(t.ctx)
}

func (t *Tracker) mainAccess(ctx declCtx) *names {
	switch ctx {
	case ctxConst:
		return &t.scope.cnst.access
	case ctxPublic:
		return &t.scope.public.access
	default:
		return &t.scope.access
	}
}

func (t *Tracker) isBuiltin(name string) bool {
	upper := strings.ToUpper(name)
	if t.fn != nil {
		if upper == "GET_FUNC_NAME" {
			return true
		}
		if t.mod != nil && (upper == "THIS" || upper == "GLOBAL") {
			return true
		}
	} else if upper == "PARAM_STR" {
		return true
	}
	_, ok := t.builtins[upper]
	return ok
}

// Scope returns the records of the tracked script.
func (t *Tracker) Scope() *Scope { return t.scope }

// Export returns the scope of this script followed by the scopes of
// everything it called, ready for the caller's AddCalls.
func (t *Tracker) Export() []CallScope {
	out := make([]CallScope, 0, len(t.calls)+1)
	out = append(out, CallScope{Location: t.location, Scope: t.scope})
	return append(out, t.calls...)
}

// AddCalls merges the scopes of a called script.
func (t *Tracker) AddCalls(cs ...CallScope) {
	t.calls = append(t.calls, cs...)
}

// Calls returns the merged scopes of called scripts.
func (t *Tracker) Calls() []CallScope { return t.calls }
