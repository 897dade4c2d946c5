package reducer

import "github.com/rmoseley/steptools/parser"

// rewrite.go repoints the entity graph onto the surviving representative
// set. It is a pure function over the parsed graph: new entities are built,
// the originals are never touched.

// rewriteSurvivors returns new entities for every class representative, in
// source order, with each reference value replaced by its target's
// representative id. The output length equals the class count, and every
// reference in the output resolves to another output entity.
func rewriteSurvivors(data *parser.DataSection, p *Partition) []*parser.Entity {
	out := make([]*parser.Entity, 0, p.ClassCount())
	for _, e := range data.Entities {
		if r, _ := p.Representative(e.ID); r != e.ID {
			continue
		}
		out = append(out, rewriteEntity(e, e.ID, p.repMap()))
	}
	return out
}

// rewriteEntity builds a copy of e with the given id and all references
// remapped through lookup. Values without references are shared, not copied.
func rewriteEntity(e *parser.Entity, newID int64, lookup map[int64]int64) *parser.Entity {
	if e.IsComplex() {
		records := make([]parser.SimpleRecord, len(e.Complex))
		for i, rec := range e.Complex {
			records[i] = parser.SimpleRecord{
				Type:   rec.Type,
				Params: rewriteValues(rec.Params, lookup),
			}
		}
		return parser.NewComplexEntity(newID, records)
	}
	return parser.NewEntity(newID, e.Type, rewriteValues(e.Params, lookup))
}

func rewriteValues(params []parser.Value, lookup map[int64]int64) []parser.Value {
	var out []parser.Value
	for i, p := range params {
		rewritten, changed := rewriteValue(p, lookup)
		if changed && out == nil {
			out = make([]parser.Value, len(params))
			copy(out, params[:i])
		}
		if out != nil {
			out[i] = rewritten
		}
	}
	if out == nil {
		return params
	}
	return out
}

func rewriteValue(v parser.Value, lookup map[int64]int64) (parser.Value, bool) {
	switch v.Kind {
	case parser.KindRef:
		if target, ok := lookup[v.Ref]; ok && target != v.Ref {
			return parser.Ref(target), true
		}
		return v, false
	case parser.KindList, parser.KindTyped:
		elems := rewriteValues(v.List, lookup)
		if len(elems) > 0 && &elems[0] != &v.List[0] {
			return parser.Value{Kind: v.Kind, Raw: v.Raw, List: elems}, true
		}
		return v, false
	default:
		return v, false
	}
}
