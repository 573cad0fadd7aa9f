// Package stdnum holds the contracts shared by the standard number packages
// (isbn, issn, lccn).
package stdnum

import "errors"

// ErrInvalid is returned (wrapped) by every operation that cannot produce a
// result because the identifier is malformed or fails its checksum.
var ErrInvalid = errors.New("invalid identifier")

// Validator reports whether an identifier is structurally and arithmetically correct.
type Validator interface {
	Valid() bool
}

// Normalizer produces the canonical form of a valid identifier.
type Normalizer interface {
	Validator
	Normalize() (string, error)
}
