package parser

import (
	"slices"
	"strconv"
)

// refs.go implements the reference-scanning hot path. Reference extraction
// runs once per entity during parsing and its results are consulted on every
// canonicalization iteration, so this is a dedicated byte scanner for the
// literal pattern "# followed by digits" rather than a regular expression or
// a walk over the parsed value tree.

// refMatch is a single #NNN match inside a string.
type refMatch struct {
	start int // byte offset of '#'
	end   int // byte offset one past the last digit
	id    int64
}

// nextRef scans s starting at pos for the next #NNN match. It returns the
// match and ok=true, or ok=false when no further match exists. Quoted string
// content is skipped so ids embedded in string parameters are not treated as
// references.
func nextRef(s string, pos int) (refMatch, bool) {
	for pos < len(s) {
		switch s[pos] {
		case '\'':
			// Skip the quoted string. A doubled '' inside simply re-enters
			// and re-exits string state, which this loop handles for free.
			pos++
			for pos < len(s) && s[pos] != '\'' {
				pos++
			}
			pos++
		case '#':
			numStart := pos + 1
			numEnd := numStart
			for numEnd < len(s) && s[numEnd] >= '0' && s[numEnd] <= '9' {
				numEnd++
			}
			if numEnd > numStart {
				id, err := strconv.ParseInt(s[numStart:numEnd], 10, 64)
				if err == nil {
					return refMatch{start: pos, end: numEnd, id: id}, true
				}
			}
			if numEnd > pos+1 {
				pos = numEnd
			} else {
				pos++
			}
		default:
			pos++
		}
	}
	return refMatch{}, false
}

// CollectReferences returns every entity id referenced as #NNN in the given
// record text, sorted ascending with duplicates removed. References inside
// quoted strings are ignored.
func CollectReferences(text string) []int64 {
	return AppendReferences(nil, text)
}

// AppendReferences appends the reference ids found in text to dst, then
// sorts and compacts the combined slice. Passing a reused dst avoids
// per-record allocations in the common case of a small reference set.
func AppendReferences(dst []int64, text string) []int64 {
	pos := 0
	for {
		m, ok := nextRef(text, pos)
		if !ok {
			break
		}
		dst = append(dst, m.id)
		pos = m.end
	}
	if len(dst) > 1 {
		slices.Sort(dst)
		dst = slices.Compact(dst)
	}
	return dst
}

// RemapReferences rewrites every #NNN token in text according to lookup.
// Ids absent from lookup are left unchanged, as is everything inside quoted
// strings. The input text is returned unmodified (no allocation) when no
// reference needs rewriting.
func RemapReferences(text string, lookup map[int64]int64) string {
	var out []byte
	last := 0
	pos := 0
	for {
		m, ok := nextRef(text, pos)
		if !ok {
			break
		}
		pos = m.end
		newID, mapped := lookup[m.id]
		if !mapped || newID == m.id {
			continue
		}
		if out == nil {
			out = make([]byte, 0, len(text))
		}
		out = append(out, text[last:m.start]...)
		out = append(out, '#')
		out = strconv.AppendInt(out, newID, 10)
		last = m.end
	}
	if out == nil {
		return text
	}
	out = append(out, text[last:]...)
	return string(out)
}
