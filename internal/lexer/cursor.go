package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"uwscript/internal/source"
)

// Cursor идёт по байтам скрипта. UWSC построчный, поэтому кроме побайтового
// чтения курсор умеет находить конец строки кода и пропускать пробелы,
// включая U+3000.
type Cursor struct {
	src  []byte
	file source.FileID
	// Off: смещение следующего непрочитанного байта.
	Off uint32
}

// NewCursor creates a cursor at the start of f.
func NewCursor(f *source.File) Cursor {
	if _, err := safecast.Conv[uint32](len(f.Content)); err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{src: f.Content, file: f.ID}
}

func (c *Cursor) end() uint32 {
	return uint32(len(c.src)) // #nosec G115 -- checked in NewCursor
}

// EOF проверяет, достигнут ли конец файла
func (c *Cursor) EOF() bool {
	return c.Off >= c.end()
}

// Peek читает текущий байт, 0 на EOF.
func (c *Cursor) Peek() byte {
	return c.PeekAt(0)
}

// PeekAt читает байт на n позиций впереди, 0 за концом файла.
func (c *Cursor) PeekAt(n uint32) byte {
	if off := c.Off + n; off < c.end() {
		return c.src[off]
	}
	return 0
}

// Bump сдвигает курсор на байт и возвращает его; на EOF возвращает 0.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.src[c.Off]
	c.Off++
	return b
}

// Eat consumes the next byte if it equals b.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.src[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// EatPair съедает два байта a, b, только если они стоят подряд.
func (c *Cursor) EatPair(a, b byte) bool {
	if c.Off+1 >= c.end() || c.src[c.Off] != a || c.src[c.Off+1] != b {
		return false
	}
	c.Off += 2
	return true
}

// HasPrefix reports whether the unread input starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	rest := c.Rest()
	return len(rest) >= len(s) && string(rest[:len(s)]) == s
}

// PeekRune декодирует руну под курсором. На EOF size == 0, битый UTF-8
// даёт RuneError с size 1.
func (c *Cursor) PeekRune() (r rune, size int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	if b := c.src[c.Off]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(c.src[c.Off:])
}

// BumpRune сдвигает курсор на одну руну.
func (c *Cursor) BumpRune() {
	_, sz := c.PeekRune()
	c.Off += uint32(sz) // #nosec G115 -- sz <= utf8.UTFMax
}

// AtBlank: под курсором ' ', '\t' или U+3000.
func (c *Cursor) AtBlank() bool {
	switch c.Peek() {
	case ' ', '\t':
		return true
	case 0xE3:
		r, _ := c.PeekRune()
		return r == ideographicSpace
	}
	return false
}

// SkipBlanks пропускает пробелы и сообщает, был ли хоть один.
func (c *Cursor) SkipBlanks() bool {
	start := c.Off
	for c.AtBlank() {
		c.BumpRune()
	}
	return c.Off > start
}

// SkipLine доходит до '\n' (не съедая его) или до EOF.
func (c *Cursor) SkipLine() {
	for !c.EOF() && c.src[c.Off] != '\n' {
		c.Off++
	}
}

// Finish переводит курсор в конец файла.
func (c *Cursor) Finish() {
	c.Off = c.end()
}

// LineEnd возвращает конец кода на текущей строке: '\n', EOF или начало
// комментария "//". Маркер "//-" комментарием не считается.
func (c *Cursor) LineEnd() uint32 {
	i := c.Off
	for n := c.end(); i < n; i++ {
		if c.src[i] == '\n' {
			break
		}
		if c.src[i] == '/' && i+1 < n && c.src[i+1] == '/' {
			if i+2 < n && c.src[i+2] == '-' {
				continue
			}
			break
		}
	}
	return i
}

// Rest returns the unread input.
func (c *Cursor) Rest() []byte {
	if c.EOF() {
		return nil
	}
	return c.src[c.Off:]
}

// Content returns the whole input.
func (c *Cursor) Content() []byte {
	return c.src
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.file, Start: uint32(m), End: c.Off}
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}
