package parser

import (
	"slices"
	"strconv"

	"github.com/rmoseley/steptools/steperrors"
)

// Entity is one DATA-section record: an id bound to a type name and an
// ordered parameter list, or to an ordered group of sub-records for the
// complex (multi-inheritance) entity form.
//
// Entities are immutable once parsed. The reduction stages construct new
// entities instead of editing these, so the graph never exposes a partially
// rewritten state.
type Entity struct {
	// ID is the original numeric reference id from the source file.
	ID int64
	// Type is the case-sensitive entity keyword. Empty for complex entities.
	Type string
	// Params is the ordered parameter list. Nil for complex entities.
	Params []Value
	// Complex holds the ordered sub-records of a complex entity of the form
	// #id=(TYPE1(...)TYPE2(...)). Nil for simple entities.
	Complex []SimpleRecord

	// refs caches the one-level reference set, computed during parsing by
	// the raw-text scanner. Sorted ascending, deduplicated.
	refs []int64
}

// SimpleRecord is one typed sub-record inside a complex entity.
type SimpleRecord struct {
	Type   string
	Params []Value
}

// NewEntity constructs a simple entity and computes its reference set from
// the parameter tree. Reduction stages use this to build rewritten entities
// without re-scanning text.
func NewEntity(id int64, typeName string, params []Value) *Entity {
	e := &Entity{ID: id, Type: typeName, Params: params}
	e.refs = refsFromValues(params, nil)
	return e
}

// NewComplexEntity constructs a complex entity from its ordered sub-records.
func NewComplexEntity(id int64, records []SimpleRecord) *Entity {
	e := &Entity{ID: id, Complex: records}
	var refs []int64
	for _, rec := range records {
		refs = refsFromValues(rec.Params, refs)
	}
	slices.Sort(refs)
	e.refs = slices.Compact(refs)
	return e
}

func refsFromValues(params []Value, dst []int64) []int64 {
	for _, p := range params {
		p.walkRefs(func(id int64) { dst = append(dst, id) })
	}
	slices.Sort(dst)
	return slices.Compact(dst)
}

// IsComplex reports whether the entity uses the complex multi-record form.
func (e *Entity) IsComplex() bool { return e.Complex != nil }

// References returns the ids of all entities this entity references through
// one level of Reference values, sorted ascending without duplicates. The
// returned slice is shared; callers must not modify it.
func (e *Entity) References() []int64 {
	return e.refs
}

// AppendTo appends the full STEP statement for the entity, without the
// trailing semicolon, to buf.
func (e *Entity) AppendTo(buf []byte) []byte {
	buf = append(buf, '#')
	buf = strconv.AppendInt(buf, e.ID, 10)
	buf = append(buf, '=')
	if e.IsComplex() {
		buf = append(buf, '(')
		for _, rec := range e.Complex {
			buf = appendRecord(buf, rec.Type, rec.Params)
		}
		return append(buf, ')')
	}
	return appendRecord(buf, e.Type, e.Params)
}

// String renders the entity as a STEP statement without the terminator.
func (e *Entity) String() string {
	return string(e.AppendTo(nil))
}

func appendRecord(buf []byte, typeName string, params []Value) []byte {
	buf = append(buf, typeName...)
	buf = append(buf, '(')
	for i, p := range params {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = p.AppendTo(buf)
	}
	return append(buf, ')')
}

// HeaderSection is the raw text of everything before the first DATA-section
// entity: the ISO-10303-21 banner, the HEADER section, and the DATA;
// statement itself. It is treated as an opaque blob and passed through to
// the output unchanged.
type HeaderSection struct {
	// Raw is the verbatim source text, ending just after the DATA;
	// statement's semicolon.
	Raw string
}

// DataSection holds the parsed entities of a DATA section in source order,
// with an id index for reference resolution.
type DataSection struct {
	// Entities lists every entity in order of first appearance.
	Entities []*Entity

	index map[int64]*Entity
}

// NewDataSection returns an empty DataSection ready for use.
func NewDataSection() *DataSection {
	return &DataSection{index: make(map[int64]*Entity)}
}

// Add appends an entity, enforcing id uniqueness.
func (d *DataSection) Add(e *Entity) error {
	if _, exists := d.index[e.ID]; exists {
		return &steperrors.MalformedRecordError{
			Message: "duplicate entity id #" + strconv.FormatInt(e.ID, 10),
		}
	}
	d.index[e.ID] = e
	d.Entities = append(d.Entities, e)
	return nil
}

// Get returns the entity with the given id, if present.
func (d *DataSection) Get(id int64) (*Entity, bool) {
	e, ok := d.index[id]
	return e, ok
}

// Contains reports whether an entity with the given id exists.
func (d *DataSection) Contains(id int64) bool {
	_, ok := d.index[id]
	return ok
}

// Len returns the number of entities.
func (d *DataSection) Len() int { return len(d.Entities) }

// StepFile is a parsed STEP file: an opaque header blob, the entity graph of
// the DATA section, and the raw trailer text. A StepFile and everything it
// owns belong to a single reduction run.
type StepFile struct {
	Header HeaderSection
	Data   *DataSection
	// Footer is the verbatim source text from the DATA section's ENDSEC;
	// statement through end of input.
	Footer string
}
