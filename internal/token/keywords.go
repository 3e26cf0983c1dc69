package token

import "strings"

var keywords = map[string]Kind{
	"dim":          KwDim,
	"public":       KwPublic,
	"const":        KwConst,
	"hashtbl":      KwHashtbl,
	"hash":         KwHash,
	"endhash":      KwEndHash,
	"print":        KwPrint,
	"for":          KwFor,
	"to":           KwTo,
	"step":         KwStep,
	"in":           KwIn,
	"next":         KwNext,
	"endfor":       KwEndFor,
	"while":        KwWhile,
	"wend":         KwWend,
	"repeat":       KwRepeat,
	"until":        KwUntil,
	"select":       KwSelect,
	"case":         KwCase,
	"default":      KwDefault,
	"selend":       KwSelend,
	"if":           KwIf,
	"ifb":          KwIfb,
	"then":         KwThen,
	"else":         KwElse,
	"elseif":       KwElseIf,
	"endif":        KwEndIf,
	"try":          KwTry,
	"except":       KwExcept,
	"finally":      KwFinally,
	"endtry":       KwEndTry,
	"with":         KwWith,
	"endwith":      KwEndWith,
	"function":     KwFunction,
	"procedure":    KwProcedure,
	"fend":         KwFend,
	"module":       KwModule,
	"endmodule":    KwEndModule,
	"class":        KwClass,
	"endclass":     KwEndClass,
	"struct":       KwStruct,
	"endstruct":    KwEndStruct,
	"enum":         KwEnum,
	"endenum":      KwEndEnum,
	"def_dll":      KwDefDll,
	"option":       KwOption,
	"thread":       KwThread,
	"async":        KwAsync,
	"await":        KwAwait,
	"call":         KwCall,
	"exit":         KwExit,
	"exitexit":     KwExitExit,
	"continue":     KwContinue,
	"break":        KwBreak,
	"var":          KwVar,
	"ref":          KwRef,
	"true":         KwTrue,
	"false":        KwFalse,
	"null":         KwNull,
	"empty":        KwEmpty,
	"nothing":      KwNothing,
	"mod":          KwMod,
	"and":          KwAnd,
	"or":           KwOr,
	"xor":          KwXor,
	"andl":         KwAndL,
	"orl":          KwOrL,
	"xorl":         KwXorL,
	"andb":         KwAndB,
	"orb":          KwOrB,
	"xorb":         KwXorB,
	"textblock":    KwTextBlock,
	"textblockex":  KwTextBlockEx,
	"endtextblock": KwEndTextBlock,
	"args":         KwArgs,
	"prms":         KwArgs,
	"nan":          KwNaN,
	"com_err_ign":  KwComErrIgn,
	"com_err_ret":  KwComErrRet,
	"com_err_flg":  KwComErrFlg,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Регистр не важен: DIM, Dim и dim это одно ключевое слово.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[strings.ToLower(ident)]
	return k, ok
}
