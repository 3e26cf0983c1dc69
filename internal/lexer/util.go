package lexer

import "unicode/utf8"

const utf8RuneSelf = 0x80

// ideographicSpace (U+3000) считается пробелом, как таб и ' '.
const ideographicSpace = '　'

// ===== Классификаторы =====

// В именах допустимы '#' и '\'.
func isIdentStartByte(b byte) bool {
	return b == '_' || b == '#' || b == '\\' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

// Любая не-ASCII руна кроме U+3000 может быть частью имени: 変数A, 関数¢1.
func isIdentRune(r rune) bool {
	if r < utf8RuneSelf {
		return isIdentContinueByte(byte(r))
	}
	return r != ideographicSpace && r != utf8.RuneError
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }
func isHex(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'f') ||
		(b >= 'A' && b <= 'F')
}
