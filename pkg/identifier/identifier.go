// Package identifier dispatches raw strings to the isbn, issn and lccn
// packages and reports everything known about them in a single Result.
package identifier

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/open-stdnum-gateway/pkg/isbn"
	"github.com/yourusername/open-stdnum-gateway/pkg/issn"
	"github.com/yourusername/open-stdnum-gateway/pkg/lccn"
	"github.com/yourusername/open-stdnum-gateway/pkg/stdnum"
)

// Kind names a standard number scheme.
type Kind string

const (
	KindUnknown Kind = ""
	KindISBN    Kind = "isbn"
	KindISSN    Kind = "issn"
	KindLCCN    Kind = "lccn"
)

// Kinds lists the supported schemes in detection order.
var Kinds = []Kind{KindISBN, KindISSN, KindLCCN}

var ErrUnknownKind = errors.New("unknown identifier kind")

// ParseKind accepts a scheme name in any case. "auto" and the empty string
// mean the kind should be detected.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindISBN, KindISSN, KindLCCN:
		return k, nil
	case "auto", KindUnknown:
		return KindUnknown, nil
	}
	return KindUnknown, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// New wraps raw in the value type for kind.
func New(kind Kind, raw string) (stdnum.Normalizer, error) {
	switch kind {
	case KindISBN:
		return isbn.New(raw), nil
	case KindISSN:
		return issn.New(raw), nil
	case KindLCCN:
		return lccn.New(raw), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
}

// Detect returns the first kind, in the order of Kinds, for which raw is
// valid. An eight digit string that passes the ISSN checksum is reported as
// an ISSN even though it is also a well-formed LCCN.
//
// Input with the shape of an ISBN (10 or 13 significant characters) that
// fails the ISBN checksum is reported as (KindISBN, false) rather than as an
// LCCN, unless it is ten digits starting with "20", the four digit year form
// of LCCNs issued since 2001.
func Detect(raw string) (Kind, bool) {
	switch {
	case isbn.Valid(raw):
		return KindISBN, true
	case issn.Valid(raw):
		return KindISSN, true
	case lccn.Valid(raw) && !corruptISBN(raw):
		return KindLCCN, true
	}
	if isbnShaped(raw) {
		return KindISBN, false
	}
	return KindUnknown, false
}

func isbnShaped(raw string) bool {
	_, err := isbn.Checkdigit(raw)
	return err == nil
}

// corruptISBN reports whether an LCCN-valid raw is more plausibly an ISBN
// with a wrong check digit.
func corruptISBN(raw string) bool {
	if !isbnShaped(raw) {
		return false
	}
	n, err := lccn.Normalize(raw)
	if err != nil {
		return false
	}
	n = strings.ReplaceAll(n, "-", "")
	for _, r := range n {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(n) != 10 || !strings.HasPrefix(n, "20")
}

// Result describes one identifier.
type Result struct {
	Kind       Kind   `json:"kind" yaml:"kind"`
	Input      string `json:"input" yaml:"input"`
	Valid      bool   `json:"valid" yaml:"valid"`
	Normalized string `json:"normalized,omitempty" yaml:"normalized,omitempty"`
	Checkdigit string `json:"checkdigit,omitempty" yaml:"checkdigit,omitempty"`
	ISBN10     string `json:"isbn10,omitempty" yaml:"isbn10,omitempty"`
	ISBN13     string `json:"isbn13,omitempty" yaml:"isbn13,omitempty"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Inspect validates raw as kind, detecting the kind when it is KindUnknown.
// A detected kind may still be invalid, see Detect.
// Invalid input is reported in the Result, never as a failure.
func Inspect(kind Kind, raw string) Result {
	res := Result{Kind: kind, Input: raw}
	if kind == KindUnknown {
		k, _ := Detect(raw)
		if k == KindUnknown {
			res.Error = "not a recognizable ISBN, ISSN or LCCN"
			return res
		}
		res.Kind = k
	}

	n, err := New(res.Kind, raw)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Valid = n.Valid()

	switch res.Kind {
	case KindISBN:
		if c, err := isbn.Checkdigit(raw); err == nil {
			res.Checkdigit = string(c)
		}
		if ten, err := isbn.ConvertTo10(raw); err == nil {
			res.ISBN10 = ten
		}
		if thirteen, err := isbn.ConvertTo13(raw); err == nil {
			res.ISBN13 = thirteen
		}
	case KindISSN:
		if res.Valid {
			res.Checkdigit = string(issn.Checkdigit(raw))
		}
	}

	if normalized, err := n.Normalize(); err == nil {
		res.Normalized = normalized
	} else {
		res.Error = err.Error()
	}
	return res
}
