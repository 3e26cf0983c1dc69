package ast

import "strings"

// OptionName is a recognised option directive.
type OptionName uint8

const (
	OptInvalid OptionName = iota
	OptExplicit
	OptSameStr
	OptOptPublic
	OptOptFinally
	OptSpecialChar
	OptShortCircuit
	OptNoStopHotkey
	OptTopStopForm
	OptFixBalloon
	OptDefaultFont
	OptPosition
	OptLogPath
	OptLogLines
	OptLogFile
	OptDlgTitle
	OptGuiPrint
	OptForceBool
	OptAllowIEObject
)

var optionNames = [...]string{
	OptInvalid:       "",
	OptExplicit:      "explicit",
	OptSameStr:       "samestr",
	OptOptPublic:     "optpublic",
	OptOptFinally:    "optfinally",
	OptSpecialChar:   "specialchar",
	OptShortCircuit:  "shortcircuit",
	OptNoStopHotkey:  "nostophotkey",
	OptTopStopForm:   "topstopform",
	OptFixBalloon:    "fixballoon",
	OptDefaultFont:   "defaultfont",
	OptPosition:      "position",
	OptLogPath:       "logpath",
	OptLogLines:      "loglines",
	OptLogFile:       "logfile",
	OptDlgTitle:      "dlgtitle",
	OptGuiPrint:      "guiprint",
	OptForceBool:     "forcebool",
	OptAllowIEObject: "__allow_ie_object__",
}

// LookupOption maps a directive name to OptionName, case-insensitively.
func LookupOption(name string) (OptionName, bool) {
	lower := strings.ToLower(name)
	for i, n := range optionNames {
		if n != "" && n == lower {
			return OptionName(i), true
		}
	}
	return OptInvalid, false
}

func (o OptionName) String() string {
	if int(o) < len(optionNames) {
		return optionNames[o]
	}
	return ""
}

// OptionValueKind is the value type an option takes.
type OptionValueKind uint8

const (
	OptValueBool OptionValueKind = iota
	OptValueString
	OptValueNumber
	// OptValuePosition is `position = x, y`.
	OptValuePosition
)

// ValueKind returns the value type of the option.
func (o OptionName) ValueKind() OptionValueKind {
	switch o {
	case OptDefaultFont, OptLogPath, OptDlgTitle:
		return OptValueString
	case OptLogLines, OptLogFile:
		return OptValueNumber
	case OptPosition:
		return OptValuePosition
	default:
		return OptValueBool
	}
}

// OptionSetting is one option directive with its typed value.
type OptionSetting struct {
	Name OptionName
	Bool bool    `json:",omitempty"`
	Str  string  `json:",omitempty"`
	Num  float64 `json:",omitempty"`
	X    float64 `json:",omitempty"` // position
	Y    float64 `json:",omitempty"`
}
