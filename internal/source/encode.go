package source

import (
	"bytes"
	"errors"
	"fmt"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNoLegacyEncoding is returned by Encode for legacy content when the
// fallback codepage has been disabled.
var ErrNoLegacyEncoding = errors.New("legacy codepage is not configured")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Encode undoes Decode for content written back to disk: "\r\n" line
// endings, the codepage and the BOM recorded in flags are restored.
func Encode(content []byte, flags FileFlags) ([]byte, error) {
	out := content
	if flags&FileNormalizedCRLF != 0 {
		out = bytes.ReplaceAll(out, []byte("\n"), []byte("\r\n"))
	}

	switch {
	case flags&FileUTF16 != 0:
		enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
		res, _, err := transform.Bytes(enc, out)
		if err != nil {
			return nil, fmt.Errorf("encode utf-16: %w", err)
		}
		return res, nil
	case flags&FileLegacyEncoding != 0:
		if LegacyEncoding == nil {
			return nil, ErrNoLegacyEncoding
		}
		res, _, err := transform.Bytes(LegacyEncoding.NewEncoder(), out)
		if err != nil {
			return nil, fmt.Errorf("encode legacy codepage: %w", err)
		}
		out = res
	}

	if flags&FileHadBOM != 0 {
		out = append(append([]byte(nil), utf8BOM...), out...)
	}
	return out, nil
}
