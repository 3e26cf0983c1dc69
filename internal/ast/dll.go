package ast

import "strings"

// DllType is a C type usable in def_dll and struct definitions.
type DllType uint8

const (
	DllInvalid DllType = iota
	DllInt
	DllLong
	DllBool
	DllUint
	DllHwnd
	DllHandle
	DllString
	DllWstring
	DllFloat
	DllDouble
	DllWord
	DllDword
	DllByte
	DllChar
	DllPchar
	DllWchar
	DllPwchar
	DllBoolean
	DllLonglong
	DllSafeArray
	DllVoid
	DllPointer
	DllSizeT
	DllStruct
	DllCallback
)

var dllTypeNames = [...]string{
	DllInvalid:   "invalid",
	DllInt:       "int",
	DllLong:      "long",
	DllBool:      "bool",
	DllUint:      "uint",
	DllHwnd:      "hwnd",
	DllHandle:    "handle",
	DllString:    "string",
	DllWstring:   "wstring",
	DllFloat:     "float",
	DllDouble:    "double",
	DllWord:      "word",
	DllDword:     "dword",
	DllByte:      "byte",
	DllChar:      "char",
	DllPchar:     "pchar",
	DllWchar:     "wchar",
	DllPwchar:    "pwchar",
	DllBoolean:   "boolean",
	DllLonglong:  "longlong",
	DllSafeArray: "safearray",
	DllVoid:      "void",
	DllPointer:   "pointer",
	DllSizeT:     "size",
	DllStruct:    "struct",
	DllCallback:  "callback",
}

var dllTypeByName map[string]DllType

func init() {
	dllTypeByName = make(map[string]DllType, len(dllTypeNames))
	for i, name := range dllTypeNames {
		if DllType(i) == DllInvalid {
			continue
		}
		dllTypeByName[name] = DllType(i)
	}
}

// ParseDllType looks a type name up case-insensitively.
func ParseDllType(name string) (DllType, bool) {
	t, ok := dllTypeByName[strings.ToLower(name)]
	return t, ok
}

func (t DllType) String() string {
	if int(t) < len(dllTypeNames) {
		return dllTypeNames[t]
	}
	return "invalid"
}

// DllSizeKind tells how the array size of a parameter or struct member is given.
type DllSizeKind uint8

const (
	SizeNone DllSizeKind = iota
	// SizeNum is a literal size; type[] is SizeNum with N == 0.
	SizeNum
	// SizeConst names a constant.
	SizeConst
)

// DllSize is the [n] suffix of a dll parameter or struct member.
type DllSize struct {
	Kind  DllSizeKind
	N     uint32 `json:",omitempty"`
	Const string `json:",omitempty"`
}

// DllParamKind enumerates def_dll parameter shapes.
type DllParamKind uint8

const (
	DllParamScalar DllParamKind = iota
	// DllParamStruct is an inline {type, type} struct.
	DllParamStruct
	// DllParamCallback is callback(types):type.
	DllParamCallback
)

// DllParam is one def_dll parameter.
type DllParam struct {
	Kind    DllParamKind
	Type    DllType    `json:",omitempty"`
	IsRef   bool       `json:",omitempty"`
	Size    DllSize    `json:",omitempty"`
	Members []DllParam `json:",omitempty"` // DllParamStruct
	Args    []DllType  `json:",omitempty"` // DllParamCallback
	Ret     DllType    `json:",omitempty"` // DllParamCallback
}

// String renders the parameter in def_dll syntax.
func (p DllParam) String() string {
	var sb strings.Builder
	switch p.Kind {
	case DllParamStruct:
		sb.WriteByte('{')
		for i, m := range p.Members {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(m.String())
		}
		sb.WriteByte('}')
	case DllParamCallback:
		sb.WriteString("callback(")
		for i, a := range p.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.String())
		}
		sb.WriteString("):")
		sb.WriteString(p.Ret.String())
	default:
		if p.IsRef {
			sb.WriteString("var ")
		}
		sb.WriteString(p.Type.String())
		sb.WriteString(p.Size.String())
	}
	return sb.String()
}

func (s DllSize) String() string {
	switch s.Kind {
	case SizeNum:
		if s.N == 0 {
			return "[]"
		}
		return "[" + uitoa(s.N) + "]"
	case SizeConst:
		return "[" + s.Const + "]"
	default:
		return ""
	}
}

func uitoa(n uint32) string {
	if n == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// DefDll declares a native library function.
type DefDll struct {
	Name   string
	Alias  string `json:",omitempty"`
	Params []DllParam
	Ret    DllType
	Path   string
}

// StructMember is one `name: [var] type[size]` line of a struct definition.
type StructMember struct {
	Name  string
	Type  string // в нижнем регистре
	Size  DllSize
	IsRef bool `json:",omitempty"`
}
