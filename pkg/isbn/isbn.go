// Package isbn validates and converts International Standard Book Numbers
// (ISO 2108), both the 10 and 13 character forms.
package isbn

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/open-stdnum-gateway/pkg/stdnum"
)

// ErrNoISBN10 is returned when a valid ISBN-13 belongs to the 979 prefix,
// which has no ISBN-10 equivalent.
var ErrNoISBN10 = errors.New("isbn: 979 prefix has no ISBN-10 form")

// ISBN wraps a raw identifier as entered by a user or found in a record.
type ISBN struct {
	Identifier string
}

// New wraps identifier without validating it.
func New(identifier string) ISBN {
	return ISBN{Identifier: identifier}
}

func (i ISBN) Valid() bool                  { return Valid(i.Identifier) }
func (i ISBN) Normalize() (string, error)   { return Normalize(i.Identifier) }
func (i ISBN) Checkdigit() (rune, error)    { return Checkdigit(i.Identifier) }
func (i ISBN) ConvertTo13() (string, error) { return ConvertTo13(i.Identifier) }
func (i ISBN) ConvertTo10() (string, error) { return ConvertTo10(i.Identifier) }
func (i ISBN) String() string               { return i.Identifier }

var _ stdnum.Normalizer = ISBN{}

// Checkdigit calculates the check character for an ISBN-10 or ISBN-13.
// The identifier may contain hyphens and a leading label such as "ISBN:".
func Checkdigit(isbn string) (rune, error) {
	basic := reduceToBasic(isbn)
	switch len(basic) {
	case 10:
		return checkdigitTen(basic), nil
	case 13:
		return checkdigitThirteen(basic), nil
	}
	return 0, invalid(isbn)
}

// Valid reports whether the identifier has 10 or 13 significant characters
// and ends in the correct check character.
func Valid(isbn string) bool {
	basic := reduceToBasic(isbn)
	last := rune(0)
	if n := len(basic); n > 0 {
		last = rune(basic[n-1])
	}
	switch len(basic) {
	case 10:
		return checkdigitTen(basic) == last
	case 13:
		return checkdigitThirteen(basic) == last
	}
	return false
}

// ConvertTo13 returns the ISBN-13 form of a valid ISBN.
func ConvertTo13(isbn string) (string, error) {
	if !Valid(isbn) {
		return "", invalid(isbn)
	}
	basic := reduceToBasic(isbn)
	if len(basic) == 13 {
		return basic, nil
	}
	prefixed := "978" + basic[:9]
	return prefixed + string(checkdigitThirteen(prefixed)), nil
}

// ConvertTo10 returns the ISBN-10 form of a valid ISBN. ISBN-13s in the 979
// range fail with ErrNoISBN10.
func ConvertTo10(isbn string) (string, error) {
	if !Valid(isbn) {
		return "", invalid(isbn)
	}
	basic := reduceToBasic(isbn)
	if strings.HasPrefix(basic, "979") {
		return "", fmt.Errorf("isbn %q: %w", isbn, ErrNoISBN10)
	}
	if len(basic) == 10 {
		return basic, nil
	}
	body := basic[3:12]
	return body + string(checkdigitTen(body)), nil
}

// Normalize returns the canonical ISBN-13 form.
func Normalize(isbn string) (string, error) {
	return ConvertTo13(isbn)
}

func invalid(isbn string) error {
	return fmt.Errorf("isbn %q: %w", isbn, stdnum.ErrInvalid)
}

// reduceToBasic drops hyphens and any label before the first digit, then keeps
// the run of digits and 'X' that follows. The result is always ASCII.
func reduceToBasic(isbn string) string {
	clean := strings.ReplaceAll(isbn, "-", "")
	start := strings.IndexFunc(clean, isDigit)
	if start < 0 {
		return ""
	}
	clean = clean[start:]
	end := strings.IndexFunc(clean, func(r rune) bool { return !isDigit(r) && r != 'X' })
	if end < 0 {
		return clean
	}
	return clean[:end]
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// weightedSum adds up the digits among the first n characters of s, each
// multiplied by weight(position), where position counts digits only.
func weightedSum(s string, n int, weight func(int) int) int {
	if len(s) > n {
		s = s[:n]
	}
	sum, pos := 0, 0
	for i := 0; i < len(s); i++ {
		if !isDigit(rune(s[i])) {
			continue
		}
		sum += int(s[i]-'0') * weight(pos)
		pos++
	}
	return sum
}

func checkdigitTen(basic string) rune {
	sum := weightedSum(basic, 9, func(i int) int { return 10 - i })
	return modElevenCheck(sum % 11)
}

func checkdigitThirteen(basic string) rune {
	sum := weightedSum(basic, 12, func(i int) int { return 1 + (i%2)*2 })
	return rune('0' + (10-sum%10)%10)
}

// modElevenCheck maps a mod 11 remainder to its base 11 check character.
func modElevenCheck(m int) rune {
	d := (11 - m) % 11
	if d == 10 {
		return 'X'
	}
	return rune('0' + d)
}
