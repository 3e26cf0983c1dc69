package lexer

import (
	"bytes"
	"strings"

	"uwscript/internal/diag"
	"uwscript/internal/token"
)

// scanCallTarget читает цель call: url[...] или путь до конца строки.
// Путь заканчивается перед последней '(' в строке: дальше аргументы.
func (lx *Lexer) scanCallTarget() token.Token {
	start := lx.cursor.Mark()
	if lx.cursor.Peek() == '\n' {
		return lx.scanEOL()
	}
	content := lx.cursor.Content()
	rest := content[lx.cursor.Off:]

	if bytes.HasPrefix(rest, []byte("url[")) {
		end := bytes.IndexAny(rest, "]\n")
		if end < 0 || rest[end] != ']' {
			lx.cursor.Off = lx.cursor.LineEnd()
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadCallTarget, sp, "call url[...] is not closed with ']'")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(content[sp.Start:sp.End])}
		}
		uri := string(rest[len("url["):end])
		lx.cursor.Off += uint32(end) + 1 // #nosec G115 -- end < len(rest)
		return token.Token{Kind: token.URILit, Span: lx.cursor.SpanFrom(start), Text: strings.TrimSpace(uri)}
	}

	end := lx.cursor.LineEnd()
	if i := bytes.LastIndexByte(content[lx.cursor.Off:end], '('); i >= 0 {
		end = lx.cursor.Off + uint32(i) // #nosec G115 -- i < end-Off
	}
	raw := content[lx.cursor.Off:end]
	trimmed := bytes.TrimRight(raw, " \t")
	lx.cursor.Off += uint32(len(trimmed)) // #nosec G115 -- len(trimmed) <= len(raw)
	path := strings.ReplaceAll(string(trimmed), `"`, "")
	return token.Token{Kind: token.PathLit, Span: lx.cursor.SpanFrom(start), Text: strings.TrimSpace(path)}
}

// colonStartsDllPath вызывается сразу после ':' на нулевой глубине скобок в
// строке def_dll. Путь начинается, если до конца строки нет другого ':'
// (":\" внутри пути не считается).
func (lx *Lexer) colonStartsDllPath() bool {
	content := lx.cursor.Content()
	end := lx.cursor.LineEnd()
	for i := lx.cursor.Off; i < end; i++ {
		if content[i] != ':' {
			continue
		}
		if int(i)+1 < len(content) && content[i+1] == '\\' {
			continue
		}
		return false
	}
	return true
}

func (lx *Lexer) scanDllPath() token.Token {
	start := lx.cursor.Mark()
	end := lx.cursor.LineEnd()
	raw := bytes.TrimRight(lx.file.Content[lx.cursor.Off:end], " \t")
	lx.cursor.Off += uint32(len(raw)) // #nosec G115 -- bounded by end
	return token.Token{Kind: token.DllPath, Span: lx.cursor.SpanFrom(start), Text: string(raw)}
}

// scanTextBlockBody вызывается в начале строки после `textblock [name]`.
// Тело: все строки до строки, начинающейся с endtextblock (без последнего \n).
func (lx *Lexer) scanTextBlockBody() token.Token {
	content := lx.cursor.Content()
	bodyStart := lx.cursor.Off
	bodyEnd := bodyStart
	line := bodyStart
	for {
		if isEndTextBlockLine(content[line:]) {
			if line > bodyStart {
				bodyEnd = line - 1
			}
			break
		}
		nl := bytes.IndexByte(content[line:], '\n')
		if nl < 0 {
			line = uint32(len(content)) // #nosec G115 -- content length already fits uint32
			bodyEnd = line
			break
		}
		line += uint32(nl) + 1 // #nosec G115 -- bounded by content length
	}
	lx.cursor.Off = line
	sp := lx.cursor.SpanFrom(Mark(bodyStart))
	sp.End = bodyEnd
	return token.Token{Kind: token.TextBlockBody, Span: sp, Text: string(content[bodyStart:bodyEnd])}
}

func isEndTextBlockLine(line []byte) bool {
	line = bytes.TrimLeft(line, " \t")
	for bytes.HasPrefix(line, []byte(string(ideographicSpace))) {
		line = bytes.TrimLeft(line[len(string(ideographicSpace)):], " \t")
	}
	const kw = "endtextblock"
	if len(line) < len(kw) || !strings.EqualFold(string(line[:len(kw)]), kw) {
		return false
	}
	return len(line) == len(kw) || !isIdentContinueByte(line[len(kw)])
}
