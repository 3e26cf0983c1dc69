package symbols

// declCtx is the declaration statement being parsed: the right side of
// `const x = ...` is read in const context, and so on.
type declCtx uint8

const (
	ctxNone declCtx = iota
	ctxConst
	ctxPublic
	ctxDim
)

// declSet holds one declaration context of the main script or of a module:
// the declared names plus what its initialisers access and assign.
type declSet struct {
	names    names
	access   names
	assignee names
	anon     []*anonScope
}

// funcScope is a named function or procedure.
type funcScope struct {
	dim      names
	param    names
	access   names
	assignee names
	anon     []*anonScope
}

// anonScope is an anonymous function or lambda. ctx is the declaration
// context it was written in; nested anonymous functions inherit it.
type anonScope struct {
	ctx      declCtx
	parent   *anonScope
	dim      names
	param    names
	access   names
	assignee names
	anon     []*anonScope
}

// moduleScope is a module or class body.
type moduleScope struct {
	isClass bool
	cnst    declSet
	public  declSet
	dim     declSet
	funcs   []*funcScope
}

// Scope is everything recorded for one script.
type Scope struct {
	cnst     declSet
	public   declSet
	dim      declSet
	access   names
	assignee names
	def      names
	funcs    []*funcScope
	modules  []*moduleScope
}

// Consts returns the global constants declared by the script.
func (s *Scope) Consts() []Name { return s.cnst.names }

// Publics returns the global variables declared by the script.
func (s *Scope) Publics() []Name { return s.public.names }

// Definitions returns function, module, class, struct and def_dll names.
func (s *Scope) Definitions() []Name { return s.def }

func (s *Scope) set(ctx declCtx) *declSet {
	switch ctx {
	case ctxConst:
		return &s.cnst
	case ctxPublic:
		return &s.public
	default:
		return &s.dim
	}
}

func (m *moduleScope) set(ctx declCtx) *declSet {
	switch ctx {
	case ctxConst:
		return &m.cnst
	case ctxPublic:
		return &m.public
	default:
		return &m.dim
	}
}

// --- неявное объявление (OPTION EXPLICIT выключен) ---

// declareImplicitly turns assignments without a preceding declaration into dims.
func (s *Scope) declareImplicitly() {
	decl := s.assignee.firstOfEach().undeclaredBefore(
		[]names{s.dim.names},
		[]names{s.cnst.names, s.public.names},
	)
	s.dim.names = append(s.dim.names, decl...)
	s.cnst.declareImplicitly()
	s.public.declareImplicitly()
	s.dim.declareImplicitly()
	for _, f := range s.funcs {
		f.declareImplicitly()
	}
	for _, m := range s.modules {
		m.cnst.declareImplicitly()
		m.public.declareImplicitly()
		m.dim.declareImplicitly()
		for _, f := range m.funcs {
			f.declareImplicitly()
		}
	}
}

func (d *declSet) declareImplicitly() {
	for _, a := range d.anon {
		a.declareImplicitly()
	}
}

func (f *funcScope) declareImplicitly() {
	decl := f.assignee.firstOfEach().undeclaredBefore([]names{f.dim, f.param}, nil)
	f.dim = append(f.dim, decl...)
	for _, a := range f.anon {
		a.declareImplicitly()
	}
}

func (a *anonScope) declareImplicitly() {
	decl := a.assignee.undeclared([]names{a.param}).firstOfEach()
	a.dim = append(a.dim, decl...)
	for _, child := range a.anon {
		child.declareImplicitly()
	}
}

// --- повторные объявления ---

// duplicates checks the script against itself and against consts of shallower scripts.
func (s *Scope) duplicates(call names) names {
	out := declDuplicates(&s.cnst, &s.public, &s.dim, s.funcs, call)
	for _, m := range s.modules {
		out = append(out, declDuplicates(&m.cnst, &m.public, &m.dim, m.funcs, nil)...)
	}
	return out
}

// declDuplicates is shared by the main script (call set) and modules (call nil).
func declDuplicates(cnst, public, dim *declSet, funcs []*funcScope, call names) names {
	var out names
	for _, n := range cnst.names {
		if cnst.names.dupOf(n, dupByPos) || call.dupOf(n, dupByDepth) {
			out = append(out, n)
		}
	}
	for _, a := range cnst.anon {
		out = append(out, a.duplicates([]names{call, cnst.names}, nil)...)
	}
	for _, n := range public.names {
		if cnst.names.dupOf(n, dupByName) || call.dupOf(n, dupByDepth) {
			out = append(out, n)
		}
	}
	for _, a := range public.anon {
		out = append(out, a.duplicates([]names{cnst.names, call}, nil)...)
	}
	for _, n := range dim.names {
		if cnst.names.dupOf(n, dupByName) || call.dupOf(n, dupByDepth) || dim.names.dupOf(n, dupByPos) {
			out = append(out, n)
		}
	}
	for _, a := range dim.anon {
		out = append(out, a.duplicates([]names{cnst.names, call}, dim.names)...)
	}
	for _, f := range funcs {
		for _, n := range f.dim {
			if cnst.names.dupOf(n, dupByName) || call.dupOf(n, dupByDepth) || f.dim.dupOf(n, dupByPos) {
				out = append(out, n)
			}
		}
		for _, a := range f.anon {
			out = append(out, a.duplicates([]names{cnst.names, call}, f.dim)...)
		}
	}
	return out
}

// duplicates checks the dims of an anonymous function against constants,
// its own earlier dims and earlier dims of every enclosing scope.
func (a *anonScope) duplicates(consts []names, parentDim names) names {
	var enclosing names
	for p := a.parent; p != nil; p = p.parent {
		enclosing = append(enclosing, p.dim...)
	}
	var out names
	for _, n := range a.dim {
		if anyHas(consts, n) ||
			a.dim.dupOf(n, dupByPos) ||
			enclosing.dupOf(n, dupByPos) ||
			parentDim.dupOf(n, dupByPos) {
			out = append(out, n)
		}
	}
	for _, child := range a.anon {
		out = append(out, child.duplicates(consts, parentDim)...)
	}
	return out
}

// publicDuplicates is the OPTPUBLIC check.
func (s *Scope) publicDuplicates(callPublic names) names {
	var out names
	for _, n := range s.public.names {
		if s.public.names.dupOf(n, dupByPos) || callPublic.dupOf(n, dupByDepth) {
			out = append(out, n)
		}
	}
	for _, m := range s.modules {
		for _, n := range m.public.names {
			if m.public.names.dupOf(n, dupByPos) {
				out = append(out, n)
			}
		}
	}
	return out
}

// --- необъявленные имена ---

type usage uint8

const (
	useAccess usage = iota
	useAssign
)

func (u usage) pick(access, assignee names) names {
	if u == useAccess {
		return access
	}
	return assignee
}

// undeclared returns accesses (or assignments) that no visible declaration covers.
func (s *Scope) undeclared(u usage, call names) names {
	var out names
	var outerSets []names
	if u == useAccess {
		out = s.access.undeclared([]names{s.dim.names, s.cnst.names, s.public.names, s.def, call})
		outerSets = []names{s.cnst.names, s.public.names, s.def, call}
		out = append(out, s.cnst.undeclared(u, []names{s.cnst.names, call}, nil)...)
	} else {
		out = s.assignee.undeclared([]names{s.dim.names, s.public.names, call})
		outerSets = []names{s.public.names, call}
		out = append(out, s.cnst.undeclared(u, nil, nil)...)
	}
	out = append(out, s.public.undeclared(u, outerSets, s.public.names)...)
	out = append(out, s.dim.undeclared(u, outerSets, s.dim.names)...)
	for _, f := range s.funcs {
		out = append(out, f.undeclared(u, outerSets)...)
	}
	for _, m := range s.modules {
		out = append(out, m.undeclared(u, outerSets)...)
	}
	return out
}

// undeclared checks the initialisers of one context; anonymous functions
// written there also see extra.
func (d *declSet) undeclared(u usage, outer []names, extra names) names {
	out := u.pick(d.access, d.assignee).undeclared(outer)
	inner := withSet(outer, extra)
	for _, a := range d.anon {
		out = append(out, a.undeclared(u, inner)...)
	}
	return out
}

func (f *funcScope) undeclared(u usage, outer []names) names {
	decls := withSet(outer, f.dim, f.param)
	out := u.pick(f.access, f.assignee).undeclared(decls)
	for _, a := range f.anon {
		out = append(out, a.undeclared(u, decls)...)
	}
	return out
}

func (a *anonScope) undeclared(u usage, outer []names) names {
	decls := withSet(outer, a.dim, a.param)
	out := u.pick(a.access, a.assignee).undeclared(decls)
	for _, child := range a.anon {
		out = append(out, child.undeclared(u, decls)...)
	}
	return out
}

func (m *moduleScope) undeclared(u usage, outer []names) names {
	var decls []names
	if u == useAccess {
		decls = withSet(outer, m.cnst.names, m.public.names, m.dim.names)
	} else {
		decls = withSet(outer, m.public.names, m.dim.names)
	}
	out := m.cnst.undeclared(u, decls, nil)
	out = append(out, m.public.undeclared(u, decls, m.public.names)...)
	out = append(out, m.dim.undeclared(u, decls, m.dim.names)...)
	for _, f := range m.funcs {
		out = append(out, f.undeclared(u, decls)...)
	}
	return out
}

// withSet returns outer extended by more, leaving outer untouched.
func withSet(outer []names, more ...names) []names {
	out := make([]names, 0, len(outer)+len(more))
	out = append(out, outer...)
	for _, m := range more {
		if len(m) > 0 {
			out = append(out, m)
		}
	}
	return out
}
