package driver

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"uwscript/internal/binfmt"
	"uwscript/internal/include"
	"uwscript/internal/trace"
)

// ErrScriptHasErrors: скрипт с ошибками не компилируется в .uwsl.
var ErrScriptHasErrors = errors.New("script has errors")

// BinaryPath returns the default .uwsl path next to the script.
func BinaryPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + include.BinaryExt
}

// Compile разбирает скрипт и сохраняет программу в out (пусто: рядом со
// скриптом). ParseResult возвращается и при ErrScriptHasErrors, чтобы
// вызывающий мог показать диагностики.
func Compile(ctx context.Context, path, out string, opts Options) (*ParseResult, string, error) {
	ctx, sp := trace.Start(ctx, trace.ScopePass, "compile")
	defer sp.End("")

	res, err := Parse(ctx, path, opts)
	if err != nil {
		return nil, "", err
	}
	if res.HasErrors() {
		return res, "", ErrScriptHasErrors
	}
	if out == "" {
		out = BinaryPath(path)
	}
	if err := binfmt.SaveProgram(out, res.Program); err != nil {
		return res, "", err
	}
	return res, out, nil
}
