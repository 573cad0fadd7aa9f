// Package lccn validates and normalizes Library of Congress Control Numbers
// following the syntax at https://www.loc.gov/marc/lccn-namespace.html#syntax.
//
// An LCCN is an optional alphabetic prefix (one to three letters) followed by
// a two or four digit year and a six digit serial number. Older numbers are
// often written with a hyphen and an unpadded serial ("85-2"), surrounded by
// spaces, wrapped in an lccn.loc.gov permalink, or followed by revision
// suffixes such as "/AC/r95". All of these are accepted and reduced to the
// canonical form ("85000002").
package lccn

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yourusername/open-stdnum-gateway/pkg/stdnum"
)

const serialWidth = 6

var uriPrefixes = []string{"http://lccn.loc.gov/", "https://lccn.loc.gov/"}

// LCCN wraps a raw control number.
type LCCN struct {
	Identifier string
}

// New wraps identifier as given; normalization happens on demand.
func New(identifier string) LCCN {
	return LCCN{Identifier: identifier}
}

func (l LCCN) Valid() bool                { return Valid(l.Identifier) }
func (l LCCN) Normalize() (string, error) { return Normalize(l.Identifier) }
func (l LCCN) String() string             { return l.Identifier }

var _ stdnum.Normalizer = LCCN{}

// Valid reports whether the control number has a legal structure once
// spacing, permalink prefix, suffixes and hyphenation are removed.
func Valid(lccn string) bool {
	return validNormalized(normalizedVersion(lccn))
}

// Normalize returns the canonical form, e.g. "n 78-890351 " becomes "n78890351".
func Normalize(lccn string) (string, error) {
	n := normalizedVersion(lccn)
	if !validNormalized(n) {
		return "", fmt.Errorf("lccn %q: %w", lccn, stdnum.ErrInvalid)
	}
	return n, nil
}

// validNormalized checks the structure of an already normalized number.
// The rightmost eight characters are always digits; what precedes them
// depends on the total length.
func validNormalized(normalized string) bool {
	clean := []rune(strings.ReplaceAll(normalized, "-", ""))
	n := len(clean)
	if n < 8 {
		return false
	}
	if !allDigits(clean[n-8:]) {
		return false
	}

	switch n {
	case 8:
		return true
	case 9:
		return isLetter(clean[0])
	case 10:
		return allDigits(clean[:2]) || allLetters(clean[:2])
	case 11:
		return isLetter(clean[0]) && (allDigits(clean[1:3]) || allLetters(clean[1:3]))
	case 12:
		return allLetters(clean[:2]) && allDigits(clean[2:4])
	}
	return false
}

// normalizedVersion expands the hyphenated form: the part after the first
// hyphen is left padded with zeros to six digits.
func normalizedVersion(lccn string) string {
	basic := reduceToBasic(lccn)
	prefix, serial, found := strings.Cut(basic, "-")
	if !found {
		return basic
	}
	if pad := serialWidth - utf8.RuneCountInString(serial); pad > 0 {
		serial = strings.Repeat("0", pad) + serial
	}
	return prefix + serial
}

// reduceToBasic removes whitespace and the permalink prefix, then drops
// everything from the first slash on.
func reduceToBasic(lccn string) string {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, lccn)
	for _, p := range uriPrefixes {
		s = strings.TrimPrefix(s, p)
	}
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return s
}

func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }

func allDigits(rs []rune) bool {
	for _, r := range rs {
		if !isDigit(r) {
			return false
		}
	}
	return true
}

func allLetters(rs []rune) bool {
	for _, r := range rs {
		if !isLetter(r) {
			return false
		}
	}
	return true
}
