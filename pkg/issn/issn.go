// Package issn validates and normalizes International Standard Serial
// Numbers (ISO 3297).
package issn

import (
	"fmt"
	"strings"

	"github.com/yourusername/open-stdnum-gateway/pkg/stdnum"
)

// ISSN wraps a raw serial number such as "0378-5955".
type ISSN struct {
	Identifier string
}

// New wraps identifier. Use Valid or Normalize to check it.
func New(identifier string) ISSN {
	return ISSN{Identifier: identifier}
}

func (i ISSN) Valid() bool                { return Valid(i.Identifier) }
func (i ISSN) Normalize() (string, error) { return Normalize(i.Identifier) }
func (i ISSN) Checkdigit() rune           { return Checkdigit(i.Identifier) }
func (i ISSN) String() string             { return i.Identifier }

var _ stdnum.Normalizer = ISSN{}

// Checkdigit computes the check character from the first seven characters
// after hyphens are removed. It never fails; for malformed input the result
// is meaningless, so callers should use Valid.
func Checkdigit(issn string) rune {
	clean := strings.ReplaceAll(issn, "-", "")
	sum, pos, seen := 0, 0, 0
	for _, r := range clean {
		if seen == 7 {
			break
		}
		seen++
		if r < '0' || r > '9' {
			continue
		}
		sum += int(r-'0') * (8 - pos)
		pos++
	}
	d := (11 - sum%11) % 11
	if d == 10 {
		return 'X'
	}
	return rune('0' + d)
}

// Valid reports whether the identifier is eight characters (ignoring
// hyphens) ending in the correct check character. A lowercase x is accepted.
func Valid(issn string) bool {
	basic, ok := reduceToBasics(issn)
	if !ok || len(basic) != 8 {
		return false
	}
	return Checkdigit(issn) == rune(basic[len(basic)-1])
}

// Normalize returns the hyphen-free form with an uppercase X.
func Normalize(issn string) (string, error) {
	basic, ok := reduceToBasics(issn)
	if !ok || !Valid(basic) {
		return "", fmt.Errorf("issn %q: %w", issn, stdnum.ErrInvalid)
	}
	return basic, nil
}

// reduceToBasics strips hyphens and uppercases x. It fails unless every
// character is an ASCII digit, except a trailing X.
func reduceToBasics(issn string) (string, bool) {
	clean := strings.ReplaceAll(strings.ReplaceAll(issn, "-", ""), "x", "X")
	for i := 0; i < len(clean); i++ {
		c := clean[i]
		if c >= '0' && c <= '9' {
			continue
		}
		if c == 'X' && i == len(clean)-1 {
			continue
		}
		return "", false
	}
	return clean, true
}
