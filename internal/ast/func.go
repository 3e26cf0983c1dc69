package ast

import "strings"

// ParamKind describes how an argument is bound to a parameter.
type ParamKind uint8

const (
	ParamPlain ParamKind = iota
	// ParamRef is `var name` / `ref name`.
	ParamRef
	// ParamVariadic is `args name`; it collects the remaining arguments.
	ParamVariadic
	// ParamDefault has a default value expression.
	ParamDefault
)

// ParamTypeKind is the optional type annotation `name: type`.
type ParamTypeKind uint8

const (
	TypeAny ParamTypeKind = iota
	TypeString
	TypeNumber
	TypeBool
	TypeArray
	TypeHash
	TypeFunc
	TypeUObject
	// TypeUser is a class, struct or enum name held in ParamType.Name.
	TypeUser
)

// ParamType is a parameter type annotation.
type ParamType struct {
	Kind ParamTypeKind
	Name string `json:",omitempty"`
}

// ParseParamType maps an annotation spelling to its type; unknown names are user types.
func ParseParamType(name string) ParamType {
	switch strings.ToLower(name) {
	case "string":
		return ParamType{Kind: TypeString}
	case "number":
		return ParamType{Kind: TypeNumber}
	case "bool":
		return ParamType{Kind: TypeBool}
	case "array":
		return ParamType{Kind: TypeArray}
	case "hash":
		return ParamType{Kind: TypeHash}
	case "func":
		return ParamType{Kind: TypeFunc}
	case "uobject":
		return ParamType{Kind: TypeUObject}
	default:
		return ParamType{Kind: TypeUser, Name: name}
	}
}

// String returns the annotation spelling, empty for TypeAny.
func (t ParamType) String() string {
	switch t.Kind {
	case TypeString:
		return "string"
	case TypeNumber:
		return "number"
	case TypeBool:
		return "bool"
	case TypeArray:
		return "array"
	case TypeHash:
		return "hash"
	case TypeFunc:
		return "func"
	case TypeUObject:
		return "uobject"
	case TypeUser:
		return t.Name
	default:
		return ""
	}
}

// Param is one function parameter.
type Param struct {
	Name    string
	Kind    ParamKind
	Type    ParamType
	Dims    int   `json:",omitempty"` // количество [] после имени
	Default *Expr `json:",omitempty"`
}

// FuncDef is a named function/procedure or an anonymous one (Name == "").
type FuncDef struct {
	Name    string `json:",omitempty"`
	Params  []Param
	Body    Block
	IsProc  bool `json:",omitempty"`
	IsAsync bool `json:",omitempty"`
}
