package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"uwscript/internal/ast"
)

// ASTNodeOutput: узел дампа программы; одна структура и для JSON, и для дерева.
type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Row      int             `json:"row,omitempty"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// FormatASTJSON пишет программу как дерево ASTNodeOutput.
func FormatASTJSON(w io.Writer, prog *ast.Program, name string) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildASTOutput(prog, name))
}

// FormatASTPretty печатает программу деревом с отступами.
func FormatASTPretty(w io.Writer, prog *ast.Program, name string) error {
	root := BuildASTOutput(prog, name)
	var sb strings.Builder
	sb.WriteString(nodeLabel(root))
	sb.WriteByte('\n')
	writeTreeChildren(&sb, root.Children, "")
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeTreeChildren(sb *strings.Builder, children []ASTNodeOutput, prefix string) {
	for i, child := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		sb.WriteString(prefix)
		sb.WriteString(branch)
		sb.WriteString(nodeLabel(child))
		sb.WriteByte('\n')
		writeTreeChildren(sb, child.Children, prefix+next)
	}
}

func nodeLabel(n ASTNodeOutput) string {
	var sb strings.Builder
	sb.WriteString(n.Type)
	if n.Kind != "" {
		sb.WriteString(": ")
		sb.WriteString(n.Kind)
	}
	if n.Text != "" {
		sb.WriteByte(' ')
		sb.WriteString(n.Text)
	}
	if n.Row > 0 {
		fmt.Fprintf(&sb, " (row %d)", n.Row)
	}
	return sb.String()
}

// BuildASTOutput строит дамп без сериализации.
func BuildASTOutput(prog *ast.Program, name string) ASTNodeOutput {
	root := ASTNodeOutput{Type: "Program", Text: name}
	if prog == nil {
		return root
	}
	root.Children = []ASTNodeOutput{
		blockNode("Global", prog.Global),
		blockNode("Script", prog.Script),
	}
	return root
}

func blockNode(kind string, b []ast.StatementWithRow) ASTNodeOutput {
	n := ASTNodeOutput{Type: "Block", Kind: kind}
	for _, s := range b {
		n.Children = append(n.Children, stmtNode(s))
	}
	return n
}

// appendBlock добавляет непустой блок; пустые else/default не шумят в дампе.
func appendBlock(n *ASTNodeOutput, kind string, b ast.Block) {
	if len(b) == 0 {
		return
	}
	n.Children = append(n.Children, blockNode(kind, b))
}

func stmtNode(sr ast.StatementWithRow) ASTNodeOutput {
	s := sr.Stmt
	n := ASTNodeOutput{Type: "Stmt", Row: sr.Row}
	if s == nil {
		n.Kind = "<nil>"
		return n
	}
	n.Kind = s.Kind.String()

	switch s.Kind {
	case ast.StmtDim, ast.StmtPublic, ast.StmtConst:
		items := make([]string, len(s.Decl.Items))
		for i, it := range s.Decl.Items {
			items[i] = it.Name + " = " + exprText(it.Value)
		}
		n.Text = strings.Join(items, ", ")
	case ast.StmtHashTbl:
		items := make([]string, len(s.HashTbl.Items))
		for i, it := range s.HashTbl.Items {
			items[i] = it.Name
			if it.Option != nil {
				items[i] += " = " + it.Option.String()
			}
		}
		n.Text = strings.Join(items, ", ")
	case ast.StmtHash:
		n.Text = s.Hash.Name
		for _, m := range s.Hash.Members {
			n.Children = append(n.Children, ASTNodeOutput{
				Type: "Member",
				Text: exprText(m.Key) + " = " + exprText(m.Value),
			})
		}
	case ast.StmtPrint, ast.StmtThread, ast.StmtExpr:
		n.Text = exprText(s.Expr)
	case ast.StmtFor:
		f := s.For
		n.Text = f.Var + " = " + exprText(f.From) + " to " + exprText(f.To)
		if f.Step != nil {
			n.Text += " step " + f.Step.String()
		}
		appendBlock(&n, "Body", f.Body)
		appendBlock(&n, "Else", f.Else)
	case ast.StmtForIn:
		f := s.ForIn
		vars := []string{f.Var}
		if f.Index != "" || f.Last != "" {
			vars = append(vars, f.Index)
		}
		if f.Last != "" {
			vars = append(vars, f.Last)
		}
		n.Text = strings.Join(vars, ", ") + " in " + exprText(f.Collection)
		appendBlock(&n, "Body", f.Body)
		appendBlock(&n, "Else", f.Else)
	case ast.StmtWhile, ast.StmtRepeat:
		n.Text = exprText(s.Loop.Cond)
		appendBlock(&n, "Body", s.Loop.Body)
	case ast.StmtSelect:
		n.Text = exprText(s.Select.Expr)
		for _, c := range s.Select.Cases {
			values := make([]string, len(c.Values))
			for i, v := range c.Values {
				values[i] = exprText(v)
			}
			cn := blockNode("Case", c.Body)
			cn.Text = strings.Join(values, ", ")
			n.Children = append(n.Children, cn)
		}
		appendBlock(&n, "Default", s.Select.Default)
	case ast.StmtIfSingle:
		n.Text = exprText(s.IfLine.Cond)
		n.Children = append(n.Children, blockNode("Then", ast.Block{*s.IfLine.Then}))
		if s.IfLine.Else != nil {
			n.Children = append(n.Children, blockNode("Else", ast.Block{*s.IfLine.Else}))
		}
	case ast.StmtIf:
		n.Text = exprText(s.If.Cond)
		appendBlock(&n, "Then", s.If.Then)
		for _, ei := range s.If.ElseIfs {
			en := blockNode("ElseIf", ei.Body)
			if ei.Cond.Stmt != nil {
				en.Text = exprText(ei.Cond.Stmt.Expr)
				en.Row = ei.Cond.Row
			}
			n.Children = append(n.Children, en)
		}
		appendBlock(&n, "Else", s.If.Else)
	case ast.StmtTry:
		n.Children = append(n.Children, blockNode("Body", s.Try.Body))
		if s.Try.HasExcept {
			n.Children = append(n.Children, blockNode("Except", s.Try.Except))
		}
		if s.Try.HasFinally {
			n.Children = append(n.Children, blockNode("Finally", s.Try.Finally))
		}
	case ast.StmtWith:
		n.Text = exprText(s.With.Expr)
		appendBlock(&n, "Body", s.With.Body)
	case ast.StmtFunction:
		n.Text = funcSignature(s.Func)
		appendBlock(&n, "Body", s.Func.Body)
	case ast.StmtModule, ast.StmtClass:
		n.Text = s.Module.Name
		appendBlock(&n, "Members", s.Module.Members)
	case ast.StmtStruct:
		n.Text = s.Struct.Name
		for _, m := range s.Struct.Members {
			typ := m.Type
			if m.IsRef {
				typ = "var " + typ
			}
			n.Children = append(n.Children, ASTNodeOutput{Type: "Member", Text: m.Name + ": " + typ + m.Size.String()})
		}
	case ast.StmtEnum:
		n.Text = s.Enum.Name
		for _, m := range s.Enum.Members {
			n.Children = append(n.Children, ASTNodeOutput{
				Type: "Member",
				Text: m.Name + " = " + strconv.FormatFloat(m.Value, 'g', -1, 64),
			})
		}
	case ast.StmtTextBlock:
		n.Text = s.TextBlock.Name
	case ast.StmtDefDll:
		n.Text = defDllSignature(s.DefDll)
	case ast.StmtOption:
		n.Text = optionText(s.Option)
	case ast.StmtCall:
		args := make([]string, len(s.Call.Args))
		for i, a := range s.Call.Args {
			args[i] = exprText(a)
		}
		n.Text = s.Call.Target
		if len(args) > 0 {
			n.Text += "(" + strings.Join(args, ", ") + ")"
		}
		if s.Call.Program != nil {
			n.Children = append(n.Children, BuildASTOutput(s.Call.Program, s.Call.Target).Children...)
		}
	case ast.StmtContinue, ast.StmtBreak:
		n.Text = strconv.FormatUint(uint64(s.Level), 10)
	case ast.StmtExitExit:
		n.Text = strconv.FormatInt(int64(s.Code), 10)
	}
	return n
}

func exprText(e *ast.Expr) string {
	if e == nil {
		return "<none>"
	}
	return e.String()
}

func funcSignature(f *ast.FuncDef) string {
	var sb strings.Builder
	if f.IsAsync {
		sb.WriteString("async ")
	}
	if f.IsProc {
		sb.WriteString("procedure ")
	} else {
		sb.WriteString("function ")
	}
	sb.WriteString(f.Name)
	sb.WriteByte('(')
	for i, p := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

func defDllSignature(d *ast.DefDll) string {
	var sb strings.Builder
	if d.Alias != "" {
		sb.WriteString(d.Alias)
		sb.WriteByte(':')
	}
	sb.WriteString(d.Name)
	sb.WriteByte('(')
	for i, p := range d.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString("):")
	sb.WriteString(d.Ret.String())
	sb.WriteByte(':')
	sb.WriteString(d.Path)
	return sb.String()
}

func optionText(o *ast.OptionSetting) string {
	name := o.Name.String()
	switch o.Name.ValueKind() {
	case ast.OptValueString:
		return name + " = " + strconv.Quote(o.Str)
	case ast.OptValueNumber:
		return name + " = " + strconv.FormatFloat(o.Num, 'g', -1, 64)
	case ast.OptValuePosition:
		return name + " = " + strconv.FormatFloat(o.X, 'g', -1, 64) + ", " + strconv.FormatFloat(o.Y, 'g', -1, 64)
	default:
		return name + " = " + strconv.FormatBool(o.Bool)
	}
}
