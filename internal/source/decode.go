package source

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LegacyEncoding is the codepage used when script bytes are not valid UTF-8.
// Scripts in the wild are overwhelmingly Shift_JIS (cp932). nil disables the
// fallback and invalid input is rejected.
var LegacyEncoding encoding.Encoding = japanese.ShiftJIS

// ErrInvalidUTF8 is returned by Decode when the input is not UTF-8 and no
// legacy codepage is configured.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// Decode converts raw script bytes into the canonical form every later phase
// expects: UTF-8 without BOM, "\n" line endings. UTF-16 input with a BOM is
// accepted as well.
func Decode(raw []byte) ([]byte, FileFlags, error) {
	var flags FileFlags

	switch {
	case bytes.HasPrefix(raw, []byte{0xFF, 0xFE}), bytes.HasPrefix(raw, []byte{0xFE, 0xFF}):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		out, _, err := transform.Bytes(dec, raw)
		if err != nil {
			return nil, 0, fmt.Errorf("decode utf-16: %w", err)
		}
		raw = out
		flags |= FileHadBOM | FileUTF16
	default:
		var hadBOM bool
		raw, hadBOM = removeBOM(raw)
		if hadBOM {
			flags |= FileHadBOM
		}
	}

	if !utf8.Valid(raw) {
		if LegacyEncoding == nil {
			return nil, 0, ErrInvalidUTF8
		}
		out, _, err := transform.Bytes(LegacyEncoding.NewDecoder(), raw)
		if err != nil {
			return nil, 0, fmt.Errorf("decode legacy codepage: %w", err)
		}
		raw = out
		flags |= FileLegacyEncoding
	}

	raw, changed := normalizeNewlines(raw)
	if changed {
		flags |= FileNormalizedCRLF
	}
	return raw, flags, nil
}
