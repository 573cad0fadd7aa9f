package marc

import (
	"strings"

	"github.com/yourusername/open-stdnum-gateway/pkg/identifier"
)

// Extracted is one standard number found in a record.
type Extracted struct {
	Tag      string `json:"tag"`
	Subfield string `json:"subfield"`
	// Cancelled is set for $z, which holds cancelled or invalid numbers.
	Cancelled bool `json:"cancelled"`
	identifier.Result
}

// ExtractIdentifiers inspects the $a and $z subfields of the LCCN, ISBN and
// ISSN fields named by p, in that order.
func ExtractIdentifiers(rec *Record, p *Profile) []Extracted {
	if rec == nil {
		return nil
	}
	if p == nil {
		p = &ProfileMARC21
	}

	sources := []struct {
		kind identifier.Kind
		tag  string
	}{
		{identifier.KindLCCN, p.LCCNTag},
		{identifier.KindISBN, p.ISBNTag},
		{identifier.KindISSN, p.ISSNTag},
	}

	var out []Extracted
	for _, src := range sources {
		if src.tag == "" {
			continue
		}
		for _, f := range rec.Fields {
			if f.Tag != src.tag {
				continue
			}
			for _, sf := range f.Subfields {
				if sf.Code != "a" && sf.Code != "z" {
					continue
				}
				raw := cleanValue(src.kind, sf.Value)
				if raw == "" {
					continue
				}
				out = append(out, Extracted{
					Tag:       f.Tag,
					Subfield:  sf.Code,
					Cancelled: sf.Code == "z",
					Result:    identifier.Inspect(src.kind, raw),
				})
			}
		}
	}
	return out
}

// cleanValue folds full-width characters and, for ISBN and ISSN, drops
// qualifiers such as "(pbk.)" that follow the number. LCCNs keep their
// internal spacing, which the lccn package already understands.
func cleanValue(kind identifier.Kind, v string) string {
	v = strings.TrimSpace(foldWidth(v))
	if kind == identifier.KindLCCN {
		return v
	}
	if parts := strings.Fields(v); len(parts) > 0 {
		return parts[0]
	}
	return ""
}
