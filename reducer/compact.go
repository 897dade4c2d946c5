package reducer

import "github.com/rmoseley/steptools/parser"

// IDMapping is the final mapping from original entity ids to compacted
// output ids, composed of the equivalence step (original id to
// representative) and the compaction step (representative to sequential
// output id). It is built once per reduction run and discarded with it.
type IDMapping struct {
	// ToRepresentative maps every original id to its class representative.
	ToRepresentative map[int64]int64
	// ToCompacted maps each surviving representative id to its output id.
	// Representatives removed as orphans are absent.
	ToCompacted map[int64]int64
}

// Resolve maps an original id to its id in the output file. ok is false
// when the entity did not survive reduction (removed as an orphan).
func (m *IDMapping) Resolve(original int64) (int64, bool) {
	rep, ok := m.ToRepresentative[original]
	if !ok {
		return 0, false
	}
	compacted, ok := m.ToCompacted[rep]
	return compacted, ok
}

// compact assigns new sequential ids starting at 1 to the surviving
// entities, preserving their source order, and returns the renumbered
// entities plus the representative-to-compacted table. Stable ordering
// keeps output diffs minimal and byte-identical across runs.
func compact(entities []*parser.Entity) ([]*parser.Entity, map[int64]int64) {
	mapping := make(map[int64]int64, len(entities))
	for i, e := range entities {
		mapping[e.ID] = int64(i + 1)
	}
	out := make([]*parser.Entity, len(entities))
	for i, e := range entities {
		out[i] = rewriteEntity(e, int64(i+1), mapping)
	}
	return out, mapping
}
