package symbols

import (
	"sort"
	"strings"

	"uwscript/internal/source"
)

// Name is one recorded identifier: declaration, assignment, access or parameter.
// Name is stored upper-cased; comparisons are case-insensitive through it.
type Name struct {
	Name  string
	Span  source.Span
	Depth int // глубина call: 0 для основного скрипта
}

func newName(name string, sp source.Span, depth int) Name {
	return Name{Name: strings.ToUpper(name), Span: sp, Depth: depth}
}

// dupMode selects how two records of the same name conflict.
type dupMode uint8

const (
	// dupByName: same name anywhere.
	dupByName dupMode = iota
	// dupByPos: same name, the other record comes earlier in the same file.
	dupByPos
	// dupByDepth: same name, the other record lives in a shallower script.
	dupByDepth
)

// conflicts reports whether n makes other a duplicate. Identical records never conflict.
func (n Name) conflicts(other Name, mode dupMode) bool {
	if n == other || n.Name != other.Name {
		return false
	}
	switch mode {
	case dupByPos:
		return n.Span.File == other.Span.File &&
			n.Span.Start < other.Span.Start && n.Span.End < other.Span.End
	case dupByDepth:
		return n.Depth < other.Depth
	default:
		return true
	}
}

type names []Name

// dupOf reports whether some record of ns makes n a duplicate.
func (ns names) dupOf(n Name, mode dupMode) bool {
	for _, x := range ns {
		if x.conflicts(n, mode) {
			return true
		}
	}
	return false
}

func (ns names) has(n Name) bool { return ns.dupOf(n, dupByName) }

// undeclared returns the records of ns found in none of decls.
func (ns names) undeclared(decls []names) names {
	var out names
	for _, n := range ns {
		if !anyHas(decls, n) {
			out = append(out, n)
		}
	}
	return out
}

// undeclaredBefore is undeclared where local declarations only count
// when they precede the record.
func (ns names) undeclaredBefore(local, global []names) names {
	var out names
	for _, n := range ns {
		if anyHas(global, n) {
			continue
		}
		declared := false
		for _, l := range local {
			if l.dupOf(n, dupByPos) {
				declared = true
				break
			}
		}
		if !declared {
			out = append(out, n)
		}
	}
	return out
}

// firstOfEach keeps the earliest recorded entry of every name.
func (ns names) firstOfEach() names {
	out := make(names, len(ns))
	copy(out, ns)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	w := 0
	for i := range out {
		if w > 0 && out[w-1].Name == out[i].Name {
			continue
		}
		out[w] = out[i]
		w++
	}
	return out[:w]
}

func anyHas(decls []names, n Name) bool {
	for _, d := range decls {
		if d.has(n) {
			return true
		}
	}
	return false
}

// concat collects several lists into one without touching the inputs.
func concat(lists ...names) names {
	size := 0
	for _, l := range lists {
		size += len(l)
	}
	out := make(names, 0, size)
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
