// Package join implements the Generic Join algorithm (Ngo-Porat-Ré-Rudra):
// a worst-case-optimal multiway intersection over sorted neighbor lists,
// recursively extending prefixes stage by stage and streaming completed
// tuples into a sink.
package join

import (
	"errors"

	"github.com/lx7/graphmatch/pkg/graphstore"
	"github.com/lx7/graphmatch/pkg/idset"
	"github.com/lx7/graphmatch/pkg/planner"
	"github.com/lx7/graphmatch/pkg/sink"
)

// ErrIncompleteStages is returned by New when a plan has no stages, or
// an empty first stage: there is nothing to seed the join with.
var ErrIncompleteStages = errors.New("join: plan has no stages")

// defaultBatchSize bounds how many extended prefixes accumulate before
// the executor recurses into the next stage, per spec §4.5's batching
// contract. It is purely a memory/recursion-depth tuning knob: per
// spec §9 it is not externally observable, so it is package-private
// rather than a Plan field. pkg/planconfig's BatchSize overrides it
// via WithBatchSize for callers that want to tune it.
const defaultBatchSize = 64

// TupleHandler receives one completed, fully-bound prefix at the final
// stage. The executor calls it once per match; Executor.Run wraps a
// sink.Sink so ordinary callers don't need to implement this directly.
type TupleHandler func(tuple []idset.ID) error

// Executor runs one planner.Plan against a graphstore.Store.
type Executor struct {
	plan      *planner.Plan
	store     *graphstore.Store
	batchSize int

	// IntersectionCost counts how many candidate IDs were visited while
	// computing every stage's min-count intersection, across the whole
	// run. Scenario 5 in spec §8 asserts this tracks the size of the
	// smallest adjacency list touched, not the product of all of them.
	IntersectionCost int
}

// New returns an Executor for plan over store, or ErrIncompleteStages
// if the plan has no stages or an empty first stage.
func New(plan *planner.Plan, store *graphstore.Store) (*Executor, error) {
	if len(plan.Stages) == 0 || len(plan.Stages[0]) == 0 {
		return nil, ErrIncompleteStages
	}
	return &Executor{plan: plan, store: store, batchSize: defaultBatchSize}, nil
}

// WithBatchSize overrides the default batching threshold.
func (e *Executor) WithBatchSize(n int) *Executor {
	if n > 0 {
		e.batchSize = n
	}
	return e
}

// resultTag derives MATCHED/EMERGED/DELETED from the first stage's
// first rule, matching the Java executor's execute(): the whole run's
// seed edges all come from one (direction, version, type), so its
// version alone determines the tag for every tuple this run produces.
func resultTag(firstRule planner.Rule) sink.Tag {
	switch firstRule.Version {
	case graphstore.DiffPlus:
		return sink.Emerged
	case graphstore.DiffMinus:
		return sink.Deleted
	default:
		return sink.Matched
	}
}

// Run seeds the join from the store's AllEdges for the first rule, then
// recursively extends through the remaining stages, appending every
// completed tuple to out.
func (e *Executor) Run(out sink.Sink) error {
	firstRule := e.plan.Stages[0][0]
	tag := resultTag(firstRule)

	seedPairs := e.store.AllEdges(firstRule.Direction, firstRule.Version, firstRule.EdgeType)
	if len(seedPairs) == 0 {
		return nil
	}
	prefixes := make([][]idset.ID, len(seedPairs))
	for i, p := range seedPairs {
		prefixes[i] = []idset.ID{p[0], p[1]}
	}
	return e.extend(prefixes, 1, tag, out)
}

// extend recursively applies stage stageIndex to prefixes, batching
// newly extended prefixes and recursing into stageIndex+1 once a batch
// fills, per spec §4.5's batching contract.
func (e *Executor) extend(prefixes [][]idset.ID, stageIndex int, tag sink.Tag, out sink.Sink) error {
	if stageIndex >= len(e.plan.Stages) {
		for _, p := range prefixes {
			tuple := make([]any, len(p))
			for i, v := range p {
				tuple[i] = v
			}
			if err := out.Append(tag, tuple); err != nil {
				return err
			}
		}
		return nil
	}

	stage := e.plan.Stages[stageIndex]
	batch := make([][]idset.ID, 0, e.batchSize)

	for _, prefix := range prefixes {
		extensions := e.intersectStage(prefix, stage)
		for i := 0; i < extensions.Len(); i++ {
			next := append(append([]idset.ID(nil), prefix...), extensions.At(i))
			batch = append(batch, next)
			if len(batch) >= e.batchSize {
				if err := e.extend(batch, stageIndex+1, tag, out); err != nil {
					return err
				}
				batch = batch[:0]
			}
		}
	}
	if len(batch) > 0 {
		return e.extend(batch, stageIndex+1, tag, out)
	}
	return nil
}

// intersectStage computes the candidate extension set for prefix under
// stage: the intersection, across every rule, of
// Adj(prefix[rule.PrefixIndex], rule.Direction, rule.Version,
// rule.EdgeType). Per §4.5, the smallest such adjacency list is
// materialized first and every other rule is then applied as a
// membership test against that candidate set, rather than materializing
// and merging each other rule's (possibly much larger) adjacency list
// in full. This keeps the work proportional to the smallest list, the
// min-count heuristic's whole point on skewed graphs.
func (e *Executor) intersectStage(prefix []idset.ID, stage planner.Stage) *idset.Set {
	minIdx := 0
	minLen := e.store.AdjacencyLen(prefix[stage[0].PrefixIndex], stage[0].Direction, stage[0].Version, stage[0].EdgeType)
	for i := 1; i < len(stage); i++ {
		r := stage[i]
		l := e.store.AdjacencyLen(prefix[r.PrefixIndex], r.Direction, r.Version, r.EdgeType)
		if l < minLen {
			minIdx, minLen = i, l
		}
	}

	minRule := stage[minIdx]
	candidates := e.adjFor(prefix, minRule)
	e.IntersectionCost += candidates.Len()

	if len(stage) == 1 {
		return candidates
	}

	kept := candidates.Slice()
	for i, rule := range stage {
		if i == minIdx {
			continue
		}
		vertex, dir, version, typeFilter := prefix[rule.PrefixIndex], rule.Direction, rule.Version, rule.EdgeType
		filtered := kept[:0:0]
		for _, id := range kept {
			e.IntersectionCost++
			if e.store.AdjacencyContains(vertex, dir, version, typeFilter, id) {
				filtered = append(filtered, id)
			}
		}
		kept = filtered
	}
	return idset.FromSorted(kept)
}

func (e *Executor) adjFor(prefix []idset.ID, rule planner.Rule) *idset.Set {
	return e.store.Adjacency(prefix[rule.PrefixIndex], rule.Direction, rule.Version, rule.EdgeType)
}
