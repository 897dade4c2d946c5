package reducer

import "github.com/rmoseley/steptools/parser"

// orphans.go removes entities unreachable from any structural root. STEP
// exporters routinely leave behind construction geometry and presentation
// scaffolding that nothing references; after deduplication these dead
// subgraphs are pure weight.

// pruneOrphans returns the subset of entities reachable from a GC-root
// type, preserving order. When the file contains no root type at all the
// input is returned unchanged: an unusual file structure is not a license
// to delete the model.
func pruneOrphans(entities []*parser.Entity, roots map[string]bool) []*parser.Entity {
	index := make(map[int64]*parser.Entity, len(entities))
	for _, e := range entities {
		index[e.ID] = e
	}

	reachable := make(map[int64]bool)
	var stack []int64
	for _, e := range entities {
		if isRootEntity(e, roots) {
			reachable[e.ID] = true
			stack = append(stack, e.ID)
		}
	}
	if len(reachable) == 0 {
		return entities
	}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, target := range index[id].References() {
			if !reachable[target] {
				if _, ok := index[target]; ok {
					reachable[target] = true
					stack = append(stack, target)
				}
			}
		}
	}

	out := make([]*parser.Entity, 0, len(reachable))
	for _, e := range entities {
		if reachable[e.ID] {
			out = append(out, e)
		}
	}
	return out
}

func isRootEntity(e *parser.Entity, roots map[string]bool) bool {
	if e.IsComplex() {
		for _, rec := range e.Complex {
			if roots[rec.Type] {
				return true
			}
		}
		return false
	}
	return roots[e.Type]
}
