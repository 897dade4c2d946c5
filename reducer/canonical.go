package reducer

import (
	"runtime"
	"slices"
	"sync"

	"github.com/rmoseley/steptools/parser"
	"github.com/rmoseley/steptools/steperrors"
)

// canonical.go is the equivalence engine. It discovers semantically
// identical entities by fixed-point iteration over content signatures:
// every iteration recomputes each entity's signature with references
// substituted by the previous iteration's class representatives, then
// repartitions the whole graph by signature. Recomputing from scratch makes
// each iteration a pure function of the previous partition, which handles
// both class splits and transitive re-merges and needs no locking beyond
// the barrier between iterations.

// Entities below this count are signed serially; goroutine fan-out costs
// more than it saves on small graphs.
const parallelThreshold = 512

// EquivalenceClass is a set of original entity ids considered semantically
// identical, with one designated representative.
type EquivalenceClass struct {
	// Representative is the smallest original id in the class.
	Representative int64
	// Members lists every original id in the class, ascending, including
	// the representative.
	Members []int64
}

// Partition assigns every original entity id to exactly one equivalence
// class. It is an immutable result of canonicalization.
type Partition struct {
	rep        map[int64]int64
	classCount int
}

// Representative returns the class representative for an original id.
func (p *Partition) Representative(id int64) (int64, bool) {
	r, ok := p.rep[id]
	return r, ok
}

// ClassCount returns the number of distinct equivalence classes.
func (p *Partition) ClassCount() int { return p.classCount }

// repMap exposes the id-to-representative table for the rewrite stage. The
// map is treated as read-only by all consumers.
func (p *Partition) repMap() map[int64]int64 { return p.rep }

// Classes materializes the class list, ordered by the first appearance of
// each representative in the source file.
func (p *Partition) Classes(data *parser.DataSection) []EquivalenceClass {
	members := make(map[int64][]int64, p.classCount)
	var order []int64
	for _, e := range data.Entities {
		r := p.rep[e.ID]
		if _, seen := members[r]; !seen {
			order = append(order, r)
		}
		members[r] = append(members[r], e.ID)
	}
	classes := make([]EquivalenceClass, 0, len(order))
	for _, r := range order {
		classes = append(classes, EquivalenceClass{Representative: r, Members: sortedIDs(members[r])})
	}
	return classes
}

// canonicalize runs the fixed-point iteration and returns the final
// partition and the number of iterations taken. The iteration count is
// capped at the entity count so cyclic reference graphs terminate; the
// partition at the cap is a valid terminal state.
func canonicalize(data *parser.DataSection, sc *sigContext, workers int, logger parser.Logger) (*Partition, int, error) {
	entities := data.Entities
	n := len(entities)
	if n == 0 {
		return &Partition{rep: map[int64]int64{}}, 0, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	rep := make(map[int64]int64, n)
	for _, e := range entities {
		rep[e.ID] = e.ID
	}

	sigs := make([]signature, n)
	iterations := 0
	for {
		iterations++
		computeSignatures(entities, rep, sc, workers, sigs)

		// Smallest original id with each signature becomes the
		// representative: deterministic regardless of worker scheduling.
		minID := make(map[signature]int64, n)
		for i, e := range entities {
			if cur, ok := minID[sigs[i]]; !ok || e.ID < cur {
				minID[sigs[i]] = e.ID
			}
		}

		newRep := make(map[int64]int64, n)
		changed := false
		for i, e := range entities {
			r := minID[sigs[i]]
			newRep[e.ID] = r
			if rep[e.ID] != r {
				changed = true
			}
		}
		rep = newRep

		if !changed {
			break
		}
		if iterations >= n {
			logger.Warn("canonicalization hit iteration cap; accepting current partition",
				"iterations", iterations, "entities", n)
			break
		}
	}

	classCount := 0
	for id, r := range rep {
		if id == r {
			classCount++
		}
		if rep[r] != r {
			return nil, iterations, &steperrors.InternalError{
				Stage:   "canonicalizer",
				Message: "representative chain is not flat",
			}
		}
	}

	logger.Debug("canonicalization converged",
		"iterations", iterations, "entities", n, "classes", classCount)
	return &Partition{rep: rep, classCount: classCount}, iterations, nil
}

// computeSignatures fills out[i] with the signature of entities[i] under the
// given class assignment, sharding across workers when the graph is large
// enough to pay for the fan-out. The rep map is read-only for the duration;
// no result is visible until every worker has passed the barrier.
func computeSignatures(entities []*parser.Entity, rep map[int64]int64, sc *sigContext, workers int, out []signature) {
	n := len(entities)
	if workers <= 1 || n < parallelThreshold {
		buf := getSigBuf()
		defer putSigBuf(buf)
		for i, e := range entities {
			out[i] = sc.entitySignature(e, rep, buf)
		}
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			buf := getSigBuf()
			defer putSigBuf(buf)
			for i := start; i < end; i++ {
				out[i] = sc.entitySignature(entities[i], rep, buf)
			}
		}(start, end)
	}
	wg.Wait()
}

func sortedIDs(ids []int64) []int64 {
	slices.Sort(ids)
	return ids
}
