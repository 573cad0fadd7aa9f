// Package marc reads and writes the parts of MARC bibliographic records
// (ISO 2709 and MARC-in-JSON) that carry standard numbers.
package marc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	subfieldDelimiter = 0x1f
	fieldTerminator   = 0x1e
	recordTerminator  = 0x1d
)

type Subfield struct {
	Code  string `json:"code"`
	Value string `json:"value"`
}

// Field is a control field (Value only) or a data field with indicators and
// subfields. For data fields Value holds the subfield values joined by spaces.
type Field struct {
	Tag        string     `json:"tag"`
	Indicators string     `json:"indicators,omitempty"`
	Value      string     `json:"value"`
	Subfields  []Subfield `json:"subfields,omitempty"`
}

type Record struct {
	Leader   string  `json:"leader"`
	Fields   []Field `json:"fields"`
	RecordID string  `json:"record_id"`
}

// Profile names the tags a MARC dialect uses for standard numbers.
// An empty tag means the dialect has no field for that number.
type Profile struct {
	Name     string
	LCCNTag  string
	ISBNTag  string
	ISSNTag  string
	TitleTag string
}

var (
	ProfileMARC21  = Profile{Name: "marc21", LCCNTag: "010", ISBNTag: "020", ISSNTag: "022", TitleTag: "245"}
	ProfileUNIMARC = Profile{Name: "unimarc", ISBNTag: "010", ISSNTag: "011", TitleTag: "200"}
	ProfileCNMARC  = Profile{Name: "cnmarc", ISBNTag: "010", ISSNTag: "011", TitleTag: "200"}
)

// ProfileByName looks up a profile case-insensitively; "" means MARC21.
func ProfileByName(name string) (*Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ProfileMARC21.Name:
		return &ProfileMARC21, nil
	case ProfileUNIMARC.Name:
		return &ProfileUNIMARC, nil
	case ProfileCNMARC.Name:
		return &ProfileCNMARC, nil
	}
	return nil, fmt.Errorf("unknown MARC profile %q", name)
}

// ParseMARC decodes an ISO 2709 record. Payloads starting with '{' are
// treated as MARC-in-JSON.
func ParseMARC(data []byte) (*Record, error) {
	if len(data) > 0 && data[0] == '{' {
		return ParseMARCJSON(data)
	}
	if len(data) < 24 {
		return nil, fmt.Errorf("data too short")
	}
	leader := string(data[:24])
	baseAddr, ok := digits(data[12:17])
	if !ok {
		return nil, fmt.Errorf("bad base address %q", leader[12:17])
	}
	dirEnd := baseAddr - 1
	if dirEnd > len(data) || dirEnd < 24 {
		return nil, fmt.Errorf("bad directory")
	}
	directory := data[24:dirEnd]
	unicode := leader[9] == 'a'

	rec := &Record{Leader: leader}
	for i := 0; i+12 <= len(directory); i += 12 {
		entry := directory[i : i+12]
		tag := string(entry[:3])
		length, okLen := digits(entry[3:7])
		start, okStart := digits(entry[7:12])
		if !okLen || !okStart {
			return nil, fmt.Errorf("bad directory entry %q", entry)
		}
		fieldStart, fieldEnd := baseAddr+start, baseAddr+start+length
		if fieldEnd > len(data) {
			return nil, fmt.Errorf("field %s runs past the end of the record", tag)
		}
		raw := bytes.TrimSuffix(data[fieldStart:fieldEnd], []byte{fieldTerminator})
		rec.Fields = append(rec.Fields, decodeField(tag, raw, unicode))
	}
	rec.RecordID = rec.FieldValue("001")
	return rec, nil
}

// digits parses an unsigned decimal directory number. Signs, spaces and
// other characters are rejected.
func digits(b []byte) (int, bool) {
	if len(b) == 0 {
		return 0, false
	}
	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func decodeField(tag string, raw []byte, unicode bool) Field {
	text := decodeFieldText(raw, unicode)
	if isControlTag(tag) {
		return Field{Tag: tag, Value: text}
	}

	parts := strings.Split(text, string(rune(subfieldDelimiter)))
	f := Field{Tag: tag, Indicators: parts[0]}
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		code, size := utf8.DecodeRuneInString(p)
		f.Subfields = append(f.Subfields, Subfield{Code: string(code), Value: p[size:]})
	}
	f.Value = joinSubfields(f.Subfields)
	return f
}

// ParseMARCJSON decodes the MARC-in-JSON serialization:
//
//	{"leader": "...", "fields": [{"001": "..."}, {"020": {"ind1": " ", "ind2": " ", "subfields": [{"a": "..."}]}}]}
func ParseMARCJSON(data []byte) (*Record, error) {
	var mj struct {
		Leader string                       `json:"leader"`
		Fields []map[string]json.RawMessage `json:"fields"`
	}
	if err := json.Unmarshal(data, &mj); err != nil {
		return nil, fmt.Errorf("decode marc json: %w", err)
	}

	rec := &Record{Leader: mj.Leader}
	for _, fm := range mj.Fields {
		for tag, content := range fm {
			var s string
			if err := json.Unmarshal(content, &s); err == nil {
				rec.Fields = append(rec.Fields, Field{Tag: tag, Value: s})
				continue
			}
			var df struct {
				Ind1      string              `json:"ind1"`
				Ind2      string              `json:"ind2"`
				Subfields []map[string]string `json:"subfields"`
			}
			if err := json.Unmarshal(content, &df); err != nil {
				return nil, fmt.Errorf("decode marc json field %s: %w", tag, err)
			}
			f := Field{Tag: tag, Indicators: df.Ind1 + df.Ind2}
			for _, sm := range df.Subfields {
				for code, v := range sm {
					f.Subfields = append(f.Subfields, Subfield{Code: code, Value: v})
				}
			}
			f.Value = joinSubfields(f.Subfields)
			rec.Fields = append(rec.Fields, f)
		}
	}
	rec.RecordID = rec.FieldValue("001")
	return rec, nil
}

// BuildMARC encodes an ISO 2709 record. id, when set, becomes field 001.
func BuildMARC(id string, fields ...Field) []byte {
	var db, dir bytes.Buffer
	add := func(tag string, write func()) {
		start := db.Len()
		write()
		db.WriteByte(fieldTerminator)
		fmt.Fprintf(&dir, "%s%04d%05d", tag, db.Len()-start, start)
	}

	if id != "" {
		add("001", func() { db.WriteString(id) })
	}
	for _, f := range fields {
		if isControlTag(f.Tag) {
			add(f.Tag, func() { db.WriteString(f.Value) })
			continue
		}
		add(f.Tag, func() {
			ind := f.Indicators
			if len(ind) != 2 {
				ind = "  "
			}
			db.WriteString(ind)
			for _, sf := range f.Subfields {
				if sf.Value == "" || sf.Code == "" {
					continue
				}
				db.WriteByte(subfieldDelimiter)
				db.WriteString(sf.Code[:1])
				db.WriteString(sf.Value)
			}
		})
	}

	base := 24 + dir.Len() + 1
	leader := fmt.Sprintf("%05dnam a22%05d z 4500", base+db.Len()+1, base)
	out := make([]byte, 0, base+db.Len()+1)
	out = append(out, leader...)
	out = append(out, dir.Bytes()...)
	out = append(out, fieldTerminator)
	out = append(out, db.Bytes()...)
	return append(out, recordTerminator)
}

// FieldValue returns the value of the first field with tag.
func (r *Record) FieldValue(tag string) string {
	for _, f := range r.Fields {
		if f.Tag == tag {
			return f.Value
		}
	}
	return ""
}

// Subfields returns the values of every subfield code in fields tagged tag.
func (r *Record) Subfields(tag, code string) []string {
	var out []string
	for _, f := range r.Fields {
		if f.Tag != tag {
			continue
		}
		for _, sf := range f.Subfields {
			if sf.Code == code {
				out = append(out, sf.Value)
			}
		}
	}
	return out
}

func (r *Record) Title(p *Profile) string {
	if p == nil {
		p = &ProfileMARC21
	}
	if t := r.Subfields(p.TitleTag, "a"); len(t) > 0 {
		return t[0]
	}
	return r.FieldValue(p.TitleTag)
}

// Control fields are 001-009 and carry no indicators or subfields.
func isControlTag(tag string) bool {
	return len(tag) == 3 && strings.HasPrefix(tag, "00")
}

func joinSubfields(subs []Subfield) string {
	values := make([]string, 0, len(subs))
	for _, sf := range subs {
		values = append(values, sf.Value)
	}
	return strings.Join(values, " ")
}
