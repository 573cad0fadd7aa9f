package marc

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/width"
)

// Records whose leader does not declare UCS (position 09 blank) come from
// MARC-8 systems or, in CNMARC exports, national code pages. These are
// tried in order before falling back to detection.
var legacyEncodings = []encoding.Encoding{
	simplifiedchinese.GBK,
	traditionalchinese.Big5,
	japanese.ShiftJIS,
	japanese.EUCJP,
	korean.EUCKR,
}

// decodeFieldText converts one field to UTF-8. When leader/09 is 'a' the
// record declares UCS, so bytes are taken as UTF-8 and invalid sequences
// become U+FFFD instead of being reinterpreted as a legacy encoding.
func decodeFieldText(raw []byte, unicode bool) string {
	if unicode {
		return strings.ToValidUTF8(string(raw), "\uFFFD")
	}
	return DecodeText(raw)
}

// DecodeText converts field data of unknown encoding to UTF-8. Valid UTF-8
// is returned as is; data no candidate decodes cleanly is returned unchanged.
func DecodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	candidates := legacyEncodings
	// windows-1252 accepts almost any byte sequence, so detection goes last.
	if e, _, _ := charset.DetermineEncoding(data, ""); e != nil {
		candidates = append(candidates[:len(candidates):len(candidates)], e)
	}
	for _, enc := range candidates {
		if s, ok := cleanDecode(data, enc); ok {
			return s
		}
	}
	return string(data)
}

// cleanDecode reports ok only when every byte mapped to a real character.
func cleanDecode(data []byte, enc encoding.Encoding) (string, bool) {
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil || strings.ContainsRune(string(out), utf8.RuneError) {
		return "", false
	}
	return string(out), true
}

// foldWidth maps full-width digits, letters and punctuation (common in
// records keyed with CJK input methods) to their ASCII forms.
func foldWidth(s string) string {
	return width.Fold.String(s)
}
