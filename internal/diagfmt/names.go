package diagfmt

import (
	"encoding/json"
	"io"
	"strings"

	"uwscript/internal/source"
	"uwscript/internal/symbols"
)

// BuildNamesOutput собирает глобальные имена основного скрипта и всех
// вызванных через call: const, public и определения (function, module,
// class, def_dll). Row: строка объявления.
func BuildNamesOutput(fs *source.FileSet, name string, main *symbols.Scope, calls []symbols.CallScope) ASTNodeOutput {
	root := ASTNodeOutput{Type: "Names", Text: name}
	if main != nil {
		root.Children = append(root.Children, scopeNode(fs, "", name, main))
	}
	for _, c := range calls {
		root.Children = append(root.Children, scopeNode(fs, "call", c.Location, c.Scope))
	}
	return root
}

func scopeNode(fs *source.FileSet, kind, location string, s *symbols.Scope) ASTNodeOutput {
	n := ASTNodeOutput{Type: "Script", Kind: kind, Text: location}
	add := func(typ string, names []symbols.Name) {
		for _, nm := range names {
			n.Children = append(n.Children, ASTNodeOutput{
				Type: typ,
				Text: nm.Name,
				Row:  int(fs.Position(nm.Span.File, nm.Span.Start).Line),
			})
		}
	}
	add("Const", s.Consts())
	add("Public", s.Publics())
	add("Definition", s.Definitions())
	return n
}

// FormatNamesPretty печатает имена деревом, как FormatASTPretty.
func FormatNamesPretty(w io.Writer, root ASTNodeOutput) error {
	var sb strings.Builder
	sb.WriteString(nodeLabel(root))
	sb.WriteByte('\n')
	writeTreeChildren(&sb, root.Children, "")
	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatNamesJSON пишет имена тем же деревом ASTNodeOutput.
func FormatNamesJSON(w io.Writer, root ASTNodeOutput) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(root)
}
