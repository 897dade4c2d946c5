package parser

import "strconv"

// ValueKind identifies the variant held by a Value.
type ValueKind uint8

const (
	// KindNumber is an integer or real literal. The original lexeme is
	// preserved verbatim so serialization never rewrites a number.
	KindNumber ValueKind = iota
	// KindString is a quoted string. Raw holds the inner text exactly as
	// written, with doubled-quote escapes intact.
	KindString
	// KindEnum is an enumeration keyword, written .KEYWORD. in STEP text.
	KindEnum
	// KindRef is a reference to another entity by id, written #NNN.
	KindRef
	// KindList is an ordered parenthesized list of values.
	KindList
	// KindOmitted is the $ unset marker.
	KindOmitted
	// KindDerived is the * derived-attribute marker.
	KindDerived
	// KindTyped is a typed parameter, written KEYWORD(value), such as
	// LENGTH_MEASURE(0.001) inside a measure-with-unit entity.
	KindTyped
)

// String returns the kind name for diagnostics.
func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindEnum:
		return "enumeration"
	case KindRef:
		return "reference"
	case KindList:
		return "list"
	case KindOmitted:
		return "omitted"
	case KindDerived:
		return "derived"
	case KindTyped:
		return "typed"
	default:
		return "unknown"
	}
}

// Value is one parameter in an entity's parameter list: a tagged variant over
// the STEP parameter grammar. Values are immutable once parsed; reduction
// stages build new Values rather than editing in place.
type Value struct {
	// Kind selects the variant.
	Kind ValueKind
	// Raw holds the textual payload for Number (lexeme), String (inner
	// text), Enum (keyword without the dots), and Typed (keyword).
	Raw string
	// Ref is the target entity id when Kind is KindRef.
	Ref int64
	// List holds the elements when Kind is KindList, or the single wrapped
	// value when Kind is KindTyped.
	List []Value
}

// Number returns a number Value preserving the original lexeme.
func Number(lexeme string) Value { return Value{Kind: KindNumber, Raw: lexeme} }

// Str returns a string Value. The text is the inner content as written in
// the source, with any '' escapes intact.
func Str(text string) Value { return Value{Kind: KindString, Raw: text} }

// Enum returns an enumeration Value for the given keyword (without dots).
func Enum(keyword string) Value { return Value{Kind: KindEnum, Raw: keyword} }

// Ref returns a reference Value targeting the given entity id.
func Ref(id int64) Value { return Value{Kind: KindRef, Ref: id} }

// List returns a list Value over the given elements.
func List(elems ...Value) Value { return Value{Kind: KindList, List: elems} }

// Omitted returns the $ unset marker.
func Omitted() Value { return Value{Kind: KindOmitted} }

// Derived returns the * derived-attribute marker.
func Derived() Value { return Value{Kind: KindDerived} }

// Typed returns a typed parameter KEYWORD(inner).
func Typed(keyword string, inner Value) Value {
	return Value{Kind: KindTyped, Raw: keyword, List: []Value{inner}}
}

// String renders the value in STEP parameter syntax.
func (v Value) String() string {
	return string(v.AppendTo(nil))
}

// AppendTo appends the STEP text form of the value to buf and returns the
// extended slice. This is the single emission path used by the serializer
// and by signature construction.
func (v Value) AppendTo(buf []byte) []byte {
	switch v.Kind {
	case KindNumber:
		return append(buf, v.Raw...)
	case KindString:
		buf = append(buf, '\'')
		buf = append(buf, v.Raw...)
		return append(buf, '\'')
	case KindEnum:
		buf = append(buf, '.')
		buf = append(buf, v.Raw...)
		return append(buf, '.')
	case KindRef:
		buf = append(buf, '#')
		return strconv.AppendInt(buf, v.Ref, 10)
	case KindList:
		buf = append(buf, '(')
		for i, elem := range v.List {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = elem.AppendTo(buf)
		}
		return append(buf, ')')
	case KindOmitted:
		return append(buf, '$')
	case KindDerived:
		return append(buf, '*')
	case KindTyped:
		buf = append(buf, v.Raw...)
		buf = append(buf, '(')
		if len(v.List) > 0 {
			buf = v.List[0].AppendTo(buf)
		}
		return append(buf, ')')
	default:
		return buf
	}
}

// Equal reports structural equality of two values. Numbers compare by raw
// lexeme; see the reducer package for comparison under normalization.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindRef:
		return v.Ref == other.Ref
	case KindList, KindTyped:
		if v.Raw != other.Raw || len(v.List) != len(other.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(other.List[i]) {
				return false
			}
		}
		return true
	default:
		return v.Raw == other.Raw
	}
}

// walkRefs calls fn for every reference id in the value, in order.
func (v Value) walkRefs(fn func(int64)) {
	switch v.Kind {
	case KindRef:
		fn(v.Ref)
	case KindList, KindTyped:
		for _, elem := range v.List {
			elem.walkRefs(fn)
		}
	}
}
