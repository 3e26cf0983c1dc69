package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// EOL marks a line break; statements end here.
	EOL
	// Illegal is a character the language does not use.
	Illegal
	// Ident represents an identifier token.
	Ident
	IntLit
	FloatLit
	HexLit
	StringLit
	RawStringLit
	UObjectLit
	PathLit
	URILit
	// DllPath is the library path that closes a def_dll declaration.
	DllPath
	// TextBlockBody holds the raw lines between textblock and endtextblock.
	TextBlockBody

	// keywords (lookup is case-insensitive)
	keywordsBegin
	KwDim          // dim
	KwPublic       // public
	KwConst        // const
	KwHashtbl      // hashtbl
	KwHash         // hash
	KwEndHash      // endhash
	KwPrint        // print
	KwFor          // for
	KwTo           // to
	KwStep         // step
	KwIn           // in
	KwNext         // next
	KwEndFor       // endfor
	KwWhile        // while
	KwWend         // wend
	KwRepeat       // repeat
	KwUntil        // until
	KwSelect       // select
	KwCase         // case
	KwDefault      // default
	KwSelend       // selend
	KwIf           // if
	KwIfb          // ifb
	KwThen         // then
	KwElse         // else
	KwElseIf       // elseif
	KwEndIf        // endif
	KwTry          // try
	KwExcept       // except
	KwFinally      // finally
	KwEndTry       // endtry
	KwWith         // with
	KwEndWith      // endwith
	KwFunction     // function
	KwProcedure    // procedure
	KwFend         // fend
	KwModule       // module
	KwEndModule    // endmodule
	KwClass        // class
	KwEndClass     // endclass
	KwStruct       // struct
	KwEndStruct    // endstruct
	KwEnum         // enum
	KwEndEnum      // endenum
	KwDefDll       // def_dll
	KwOption       // option
	KwThread       // thread
	KwAsync        // async
	KwAwait        // await
	KwCall         // call
	KwExit         // exit
	KwExitExit     // exitexit
	KwContinue     // continue
	KwBreak        // break
	KwVar          // var
	KwRef          // ref
	KwTrue         // true
	KwFalse        // false
	KwNull         // null
	KwEmpty        // empty
	KwNothing      // nothing
	KwMod          // mod
	KwAnd          // and
	KwOr           // or
	KwXor          // xor
	KwAndL         // andl
	KwOrL          // orl
	KwXorL         // xorl
	KwAndB         // andb
	KwOrB          // orb
	KwXorB         // xorb
	KwTextBlock    // textblock
	KwTextBlockEx  // textblockex
	KwEndTextBlock // endtextblock
	KwArgs         // args
	KwNaN          // nan
	KwComErrIgn    // com_err_ign
	KwComErrRet    // com_err_ret
	KwComErrFlg    // com_err_flg
	keywordsEnd

	// operators and punctuation
	Plus        // +
	Minus       // -
	Star        // *
	Slash       // /
	Eq          // =
	EqEq        // ==
	NotEq       // <> or !=
	Lt          // <
	LtEq        // <=
	Gt          // >
	GtEq        // >=
	Assign      // :=
	PlusAssign  // +=
	MinusAssign // -=
	StarAssign  // *=
	SlashAssign // /=
	Bang        // !
	Question    // ?
	Colon       // :
	Comma       // ,
	Dot         // .
	LParen      // (
	RParen      // )
	LBracket    // [
	RBracket    // ]
	LBrace      // {
	RBrace      // }
	Pipe        // |
	FatArrow    // =>
)

var kindNames = [...]string{
	Invalid:        "invalid",
	EOF:            "EOF",
	EOL:            "EOL",
	Illegal:        "illegal",
	Ident:          "identifier",
	IntLit:         "integer",
	FloatLit:       "float",
	HexLit:         "hex",
	StringLit:      "string",
	RawStringLit:   "raw string",
	UObjectLit:     "uobject",
	PathLit:        "path",
	URILit:         "uri",
	DllPath:        "dll path",
	TextBlockBody:  "textblock body",
	KwDim:          "dim",
	KwPublic:       "public",
	KwConst:        "const",
	KwHashtbl:      "hashtbl",
	KwHash:         "hash",
	KwEndHash:      "endhash",
	KwPrint:        "print",
	KwFor:          "for",
	KwTo:           "to",
	KwStep:         "step",
	KwIn:           "in",
	KwNext:         "next",
	KwEndFor:       "endfor",
	KwWhile:        "while",
	KwWend:         "wend",
	KwRepeat:       "repeat",
	KwUntil:        "until",
	KwSelect:       "select",
	KwCase:         "case",
	KwDefault:      "default",
	KwSelend:       "selend",
	KwIf:           "if",
	KwIfb:          "ifb",
	KwThen:         "then",
	KwElse:         "else",
	KwElseIf:       "elseif",
	KwEndIf:        "endif",
	KwTry:          "try",
	KwExcept:       "except",
	KwFinally:      "finally",
	KwEndTry:       "endtry",
	KwWith:         "with",
	KwEndWith:      "endwith",
	KwFunction:     "function",
	KwProcedure:    "procedure",
	KwFend:         "fend",
	KwModule:       "module",
	KwEndModule:    "endmodule",
	KwClass:        "class",
	KwEndClass:     "endclass",
	KwStruct:       "struct",
	KwEndStruct:    "endstruct",
	KwEnum:         "enum",
	KwEndEnum:      "endenum",
	KwDefDll:       "def_dll",
	KwOption:       "option",
	KwThread:       "thread",
	KwAsync:        "async",
	KwAwait:        "await",
	KwCall:         "call",
	KwExit:         "exit",
	KwExitExit:     "exitexit",
	KwContinue:     "continue",
	KwBreak:        "break",
	KwVar:          "var",
	KwRef:          "ref",
	KwTrue:         "true",
	KwFalse:        "false",
	KwNull:         "null",
	KwEmpty:        "empty",
	KwNothing:      "nothing",
	KwMod:          "mod",
	KwAnd:          "and",
	KwOr:           "or",
	KwXor:          "xor",
	KwAndL:         "andl",
	KwOrL:          "orl",
	KwXorL:         "xorl",
	KwAndB:         "andb",
	KwOrB:          "orb",
	KwXorB:         "xorb",
	KwTextBlock:    "textblock",
	KwTextBlockEx:  "textblockex",
	KwEndTextBlock: "endtextblock",
	KwArgs:         "args",
	KwNaN:          "nan",
	KwComErrIgn:    "com_err_ign",
	KwComErrRet:    "com_err_ret",
	KwComErrFlg:    "com_err_flg",
	Plus:           "+",
	Minus:          "-",
	Star:           "*",
	Slash:          "/",
	Eq:             "=",
	EqEq:           "==",
	NotEq:          "<>",
	Lt:             "<",
	LtEq:           "<=",
	Gt:             ">",
	GtEq:           ">=",
	Assign:         ":=",
	PlusAssign:     "+=",
	MinusAssign:    "-=",
	StarAssign:     "*=",
	SlashAssign:    "/=",
	Bang:           "!",
	Question:       "?",
	Colon:          ":",
	Comma:          ",",
	Dot:            ".",
	LParen:         "(",
	RParen:         ")",
	LBracket:       "[",
	RBracket:       "]",
	LBrace:         "{",
	RBrace:         "}",
	Pipe:           "|",
	FatArrow:       "=>",
}

// String returns the source spelling for keywords and operators and a short
// description for the other kinds.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k > keywordsBegin && k < keywordsEnd
}
