package symbols

import (
	"fmt"
	"sort"

	"uwscript/internal/diag"
)

// Check names one of the name checks run after parsing.
type Check uint8

const (
	// CheckExplicit: assignment to a name with no dim/public (OPTION EXPLICIT).
	CheckExplicit Check = iota
	// CheckDuplicate: a name declared again where that is not allowed.
	CheckDuplicate
	// CheckPublicDuplicate: a public declared twice (OPTION OPTPUBLIC).
	CheckPublicDuplicate
	// CheckUndeclared: access to a name nothing declares.
	CheckUndeclared
)

func (c Check) String() string {
	switch c {
	case CheckExplicit:
		return "explicit"
	case CheckDuplicate:
		return "duplicate"
	case CheckPublicDuplicate:
		return "public-duplicate"
	case CheckUndeclared:
		return "undeclared"
	}
	return "unknown"
}

// Code maps the check to its diagnostic code.
func (c Check) Code() diag.Code {
	switch c {
	case CheckExplicit:
		return diag.SemaExplicit
	case CheckDuplicate:
		return diag.SemaDuplicate
	case CheckPublicDuplicate:
		return diag.SemaPublicDuplicate
	default:
		return diag.SemaUndeclared
	}
}

func (c Check) message(name string) string {
	switch c {
	case CheckExplicit:
		return fmt.Sprintf("%s is assigned without declaration", name)
	case CheckDuplicate:
		return fmt.Sprintf("%s is already declared", name)
	case CheckPublicDuplicate:
		return fmt.Sprintf("public %s is already declared", name)
	default:
		return fmt.Sprintf("%s is not declared", name)
	}
}

// Violation is every offending name one check found in one script.
type Violation struct {
	Check    Check
	Location string
	Names    []Name
}

// Check runs the name checks over the tracked script and every script it
// called, in this order: explicit (or implicit declaration when OPTION
// EXPLICIT is off), duplicate, public-duplicate when OPTPUBLIC is on, undeclared.
// Names of called scripts take part in the checks of the caller and the
// other way round.
func (t *Tracker) Check() []Violation {
	var (
		callConsts  names
		callPublics names
		callGlobals names
	)
	for _, c := range t.calls {
		callConsts = append(callConsts, c.Scope.cnst.names...)
		callPublics = append(callPublics, c.Scope.public.names...)
		callGlobals = append(callGlobals, concat(c.Scope.cnst.names, c.Scope.public.names, c.Scope.def)...)
	}

	out := t.checkScope(t.location, t.scope, callConsts, callPublics, callGlobals)

	// вызванные скрипты дополнительно видят глобальные имена основного
	main := t.scope
	for _, c := range t.calls {
		out = append(out, t.checkScope(c.Location, c.Scope,
			concat(callConsts, main.cnst.names),
			concat(callPublics, main.public.names),
			concat(callGlobals, main.cnst.names, main.public.names, main.def),
		)...)
	}
	return out
}

func (t *Tracker) checkScope(location string, s *Scope, consts, publics, globals names) []Violation {
	var out []Violation
	add := func(c Check, found names) {
		if len(found) == 0 {
			return
		}
		out = append(out, Violation{Check: c, Location: location, Names: sortedBySpan(found)})
	}

	if t.explicit {
		add(CheckExplicit, s.undeclared(useAssign, publics))
	} else {
		s.declareImplicitly()
	}
	add(CheckDuplicate, s.duplicates(consts))
	if t.optPublic {
		add(CheckPublicDuplicate, s.publicDuplicates(publics))
	}
	add(CheckUndeclared, s.undeclared(useAccess, globals))
	return out
}

func sortedBySpan(ns names) []Name {
	out := make([]Name, len(ns))
	copy(out, ns)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Span, out[j].Span
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Start < b.Start
	})
	return out
}

// Report emits one diagnostic per offending name.
func Report(r diag.Reporter, vs []Violation) {
	if r == nil {
		return
	}
	for _, v := range vs {
		for _, n := range v.Names {
			diag.ReportError(r, v.Check.Code(), n.Span, v.Check.message(n.Name)).Emit()
		}
	}
}
