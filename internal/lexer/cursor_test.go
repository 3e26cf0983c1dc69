package lexer

import (
	"testing"

	"uwscript/internal/source"
)

func newTestCursor(content string) Cursor {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.uws", []byte(content))
	return NewCursor(fs.Get(id))
}

func TestCursorLineEnd(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    uint32
	}{
		{"newline", "a = 1\nb", 5},
		{"eof", "print 1", 7},
		{"comment", "a = 1 // note", 6},
		{"marker is code", "//- print 1\n", 11},
		{"marker then comment", "//- a // b", 6},
		{"empty line", "\nx", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCursor(tt.content)
			if got := c.LineEnd(); got != tt.want {
				t.Errorf("LineEnd() = %d, want %d", got, tt.want)
			}
			if c.Off != 0 {
				t.Errorf("LineEnd moved the cursor to %d", c.Off)
			}
		})
	}
}

func TestCursorSkipBlanks(t *testing.T) {
	tests := []struct {
		content string
		skipped bool
		next    byte
	}{
		{" \t x", true, 'x'},
		{"　　a", true, 'a'},
		{" 　\tb", true, 'b'},
		{"c", false, 'c'},
		// U+3001 начинается с того же байта, но пробелом не является
		{"、", false, 0xE3},
	}
	for _, tt := range tests {
		c := newTestCursor(tt.content)
		if got := c.SkipBlanks(); got != tt.skipped {
			t.Errorf("SkipBlanks(%q) = %v, want %v", tt.content, got, tt.skipped)
		}
		if c.Peek() != tt.next {
			t.Errorf("after SkipBlanks(%q) peek %q, want %q", tt.content, c.Peek(), tt.next)
		}
	}
}

func TestCursorEatPair(t *testing.T) {
	c := newTestCursor("<>=")
	if c.EatPair('<', '=') {
		t.Fatalf("EatPair('<', '=') matched \"<>\"")
	}
	if !c.EatPair('<', '>') || c.Off != 2 {
		t.Fatalf("EatPair('<', '>') failed, off %d", c.Off)
	}
	if c.EatPair('=', '=') {
		t.Fatalf("EatPair must not match past EOF")
	}
	if !c.Eat('=') || !c.EOF() {
		t.Fatalf("Eat('=') failed at end")
	}
	if c.Bump() != 0 || c.Peek() != 0 || c.PeekAt(3) != 0 {
		t.Fatalf("reads past EOF must return 0")
	}
}

func TestCursorRunes(t *testing.T) {
	c := newTestCursor("変数\xffA")
	var got []rune
	for !c.EOF() {
		r, sz := c.PeekRune()
		if sz == 0 {
			t.Fatalf("size 0 before EOF at %d", c.Off)
		}
		got = append(got, r)
		c.BumpRune()
	}
	want := []rune{'変', '数', 0xFFFD, 'A'}
	if string(got) != string(want) {
		t.Fatalf("runes %q, want %q", got, want)
	}
	if _, sz := c.PeekRune(); sz != 0 {
		t.Fatalf("PeekRune at EOF returned size %d", sz)
	}
}

func TestCursorSpanAndReset(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.uws", []byte("α\nβ"))
	c := NewCursor(fs.Get(id))

	mark := c.Mark()
	c.BumpRune()
	sp := c.SpanFrom(mark)
	if sp.Start != 0 || sp.End != 2 || sp.File != id {
		t.Fatalf("span %+v", sp)
	}
	start, end := fs.Resolve(sp)
	if start != (source.LineCol{Line: 1, Col: 1}) || end != (source.LineCol{Line: 1, Col: 3}) {
		t.Fatalf("resolved %+v..%+v", start, end)
	}

	c.SkipLine()
	if c.Peek() != '\n' {
		t.Fatalf("SkipLine must stop before newline, peek %q", c.Peek())
	}
	if !c.HasPrefix("\nβ") || c.HasPrefix("\nββ") {
		t.Fatalf("HasPrefix mismatch on %q", c.Rest())
	}
	c.Reset(mark)
	if c.Off != 0 {
		t.Fatalf("Reset left cursor at %d", c.Off)
	}
	c.Finish()
	if !c.EOF() || c.Rest() != nil {
		t.Fatalf("Finish must move to EOF")
	}
}
