package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0
	// Лексические
	LexInfo                Code = 1000
	LexIllegalChar         Code = 1001
	LexUnterminatedString  Code = 1002
	LexTokenTooLong        Code = 1003
	LexBadNumber           Code = 1004
	LexUnterminatedUObject Code = 1005
	LexBadCallTarget       Code = 1006

	// Парсерные
	SynInfo                  Code = 2000
	SynUnexpectedToken       Code = 2001
	SynBlockEndMismatch      Code = 2002
	SynReservedKeyword       Code = 2003
	SynExpectIdentifier      Code = 2004
	SynExpectExpression      Code = 2005
	SynStatementContinuation Code = 2006
	SynInvalidExpression     Code = 2007
	SynValueRequired         Code = 2008
	SynSizeRequired          Code = 2009
	SynMissingIndex          Code = 2010
	SynWhitespaceRequired    Code = 2011
	SynOutOfLoop             Code = 2012
	SynOutOfWith             Code = 2013
	SynNotAllowedInFinally   Code = 2014
	SynNotAllowedInModule    Code = 2015
	SynDefinitionNotAllowed  Code = 2016
	SynOptionNotAllowed      Code = 2017
	SynUnexpectedOption      Code = 2018
	SynInvalidOptionValue    Code = 2019
	SynNoConstructor         Code = 2020
	SynEnumValueTooSmall     Code = 2021
	SynEnumValueNotNumber    Code = 2022
	SynEnumMemberDuplicated  Code = 2023
	SynBadDllType            Code = 2024
	SynBadDllParam           Code = 2025
	SynBadStructMember       Code = 2026
	SynParamNeedsDefault     Code = 2027
	SynParamAfterVariadic    Code = 2028
	SynInvalidParam          Code = 2029
	SynInvalidExitCode       Code = 2030
	SynInvalidThreadCall     Code = 2031
	SynInvalidAwait          Code = 2032
	SynInvalidAsync          Code = 2033
	SynNotAssignable         Code = 2034
	SynInvalidHashMember     Code = 2035
	SynTextBlockName         Code = 2036
	SynInvalidRefArg         Code = 2037
	SynBadHexLiteral         Code = 2038

	// Проверки имён (после разбора)
	SemaInfo            Code = 3000
	SemaExplicit        Code = 3001
	SemaDuplicate       Code = 3002
	SemaPublicDuplicate Code = 3003
	SemaUndeclared      Code = 3004

	// Ошибки I/O и call
	IOLoadFileError    Code = 4001
	IOFetchError       Code = 4002
	IOCalledScriptErrs Code = 4003
	IODecodeBinary     Code = 4004
)

var codeDescription = map[Code]string{
	UnknownCode:              "Unknown error",
	LexInfo:                  "Lexical information",
	LexIllegalChar:           "Illegal character",
	LexUnterminatedString:    "Unterminated string",
	LexTokenTooLong:          "Token too long",
	LexBadNumber:             "Bad number",
	LexUnterminatedUObject:   "UObject is not closed",
	LexBadCallTarget:         "Malformed call target",
	SynInfo:                  "Syntax information",
	SynUnexpectedToken:       "Unexpected token",
	SynBlockEndMismatch:      "Block end mismatch",
	SynReservedKeyword:       "Reserved keyword",
	SynExpectIdentifier:      "Identifier required",
	SynExpectExpression:      "Expression required",
	SynStatementContinuation: "Statement continues",
	SynInvalidExpression:     "Invalid expression",
	SynValueRequired:         "Value required",
	SynSizeRequired:          "Array size required",
	SynMissingIndex:          "Index required",
	SynWhitespaceRequired:    "Whitespace required",
	SynOutOfLoop:             "Outside of loop",
	SynOutOfWith:             "Outside of with",
	SynNotAllowedInFinally:   "Not allowed in finally",
	SynNotAllowedInModule:    "Not allowed in module",
	SynDefinitionNotAllowed:  "Definition not allowed here",
	SynOptionNotAllowed:      "Option not allowed here",
	SynUnexpectedOption:      "Unknown option",
	SynInvalidOptionValue:    "Invalid option value",
	SynNoConstructor:         "Class has no constructor",
	SynEnumValueTooSmall:     "Invalid enum value",
	SynEnumValueNotNumber:    "Enum value must be a number",
	SynEnumMemberDuplicated:  "Duplicated enum member",
	SynBadDllType:            "Invalid dll type",
	SynBadDllParam:           "Invalid dll parameter",
	SynBadStructMember:       "Invalid struct member",
	SynParamNeedsDefault:     "Default value required",
	SynParamAfterVariadic:    "Parameter after variadic",
	SynInvalidParam:          "Invalid parameter",
	SynInvalidExitCode:       "Invalid exit code",
	SynInvalidThreadCall:     "Invalid thread call",
	SynInvalidAwait:          "Invalid await",
	SynInvalidAsync:          "Invalid async",
	SynNotAssignable:         "Not assignable",
	SynInvalidHashMember:     "Invalid hash member",
	SynTextBlockName:         "Textblock name required",
	SynInvalidRefArg:         "Invalid reference argument",
	SynBadHexLiteral:         "Invalid hex literal",
	SemaInfo:                 "Name check information",
	SemaExplicit:             "Undeclared assignment",
	SemaDuplicate:            "Duplicated declaration",
	SemaPublicDuplicate:      "Duplicated public",
	SemaUndeclared:           "Undeclared identifier",
	IOLoadFileError:          "I/O load file error",
	IOFetchError:             "Fetch error",
	IOCalledScriptErrs:       "Called script had errors",
	IODecodeBinary:           "Precompiled script error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	if d, ok := codeDescription[c]; ok {
		return d
	}
	return codeDescription[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
