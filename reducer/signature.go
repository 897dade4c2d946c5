package reducer

import (
	"strconv"

	"github.com/zeebo/blake3"

	"github.com/rmoseley/steptools/parser"
)

// signature.go serializes an entity into a canonical byte form and digests
// it. Two entities of the same type are equivalence candidates iff their
// signatures coincide. References are written as the referenced entity's
// current class representative, which is what makes the fixed-point
// iteration converge on transitive duplicates. Digesting keeps the partition
// keyed by fixed-size values instead of retaining every serialized form.

// signature is a content digest of an entity under a given class assignment.
type signature [32]byte

// sigContext carries the per-run comparison policy into signature
// construction.
type sigContext struct {
	// maxDecimals truncates real comparison to N decimals; negative means
	// no truncation (normalization only).
	maxDecimals int
	// maskNames blanks the leading quoted name parameter of each record,
	// so entities differing only in label compare equal.
	maskNames bool
	// identity marks entity types that must never merge.
	identity map[string]bool
}

// entitySignature computes the signature of e with every reference value
// substituted by rep[target]. The buf pointer is scratch owned by the
// calling worker.
func (sc *sigContext) entitySignature(e *parser.Entity, rep map[int64]int64, buf *[]byte) signature {
	b := (*buf)[:0]

	if e.IsComplex() {
		for _, sub := range e.Complex {
			b = sc.appendRecord(b, sub.Type, sub.Params, rep)
		}
		if sc.isIdentity(e) {
			b = sc.appendSelf(b, e.ID)
		}
	} else {
		b = sc.appendRecord(b, e.Type, e.Params, rep)
		if sc.identity[e.Type] {
			b = sc.appendSelf(b, e.ID)
		}
	}

	*buf = b
	return blake3.Sum256(b)
}

// isIdentity reports whether any sub-record of a complex entity carries an
// identity-bearing type.
func (sc *sigContext) isIdentity(e *parser.Entity) bool {
	for _, sub := range e.Complex {
		if sc.identity[sub.Type] {
			return true
		}
	}
	return false
}

// appendSelf mixes the entity's own id into the signature, forcing a
// singleton class.
func (sc *sigContext) appendSelf(b []byte, id int64) []byte {
	b = append(b, "\x00self:"...)
	return strconv.AppendInt(b, id, 10)
}

func (sc *sigContext) appendRecord(b []byte, typeName string, params []parser.Value, rep map[int64]int64) []byte {
	b = append(b, typeName...)
	b = append(b, '(')
	for i, p := range params {
		if i > 0 {
			b = append(b, ',')
		}
		if sc.maskNames && i == 0 && p.Kind == parser.KindString {
			b = append(b, "''"...)
			continue
		}
		b = sc.appendValue(b, p, rep)
	}
	return append(b, ')')
}

// appendValue writes v in canonical form: the STEP text shape, with real
// numbers normalized and references class-substituted. The shape is
// unambiguous because it mirrors the grammar the value was parsed from.
func (sc *sigContext) appendValue(b []byte, v parser.Value, rep map[int64]int64) []byte {
	switch v.Kind {
	case parser.KindNumber:
		return append(b, sc.canonicalNumber(v.Raw)...)
	case parser.KindString:
		b = append(b, '\'')
		b = append(b, v.Raw...)
		return append(b, '\'')
	case parser.KindEnum:
		b = append(b, '.')
		b = append(b, v.Raw...)
		return append(b, '.')
	case parser.KindRef:
		b = append(b, '#')
		target := v.Ref
		if r, ok := rep[target]; ok {
			target = r
		}
		return strconv.AppendInt(b, target, 10)
	case parser.KindList:
		b = append(b, '(')
		for i, elem := range v.List {
			if i > 0 {
				b = append(b, ',')
			}
			b = sc.appendValue(b, elem, rep)
		}
		return append(b, ')')
	case parser.KindOmitted:
		return append(b, '$')
	case parser.KindDerived:
		return append(b, '*')
	case parser.KindTyped:
		b = append(b, v.Raw...)
		b = append(b, '(')
		if len(v.List) > 0 {
			b = sc.appendValue(b, v.List[0], rep)
		}
		return append(b, ')')
	default:
		return b
	}
}

// canonicalNumber returns the comparison form of a number lexeme. Integer
// lexemes pass through verbatim; reals are normalized and optionally
// truncated.
func (sc *sigContext) canonicalNumber(lexeme string) string {
	if !isRealLexeme(lexeme) {
		return lexeme
	}
	if sc.maxDecimals >= 0 {
		return truncateNumber(lexeme, sc.maxDecimals)
	}
	return normalizeNumber(lexeme)
}
