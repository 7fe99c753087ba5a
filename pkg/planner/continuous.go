package planner

import (
	"github.com/lx7/graphmatch/pkg/graphstore"
	"github.com/lx7/graphmatch/pkg/query"
	"github.com/lx7/graphmatch/pkg/types"
)

// ContinuousPlan is the full incremental-maintenance decomposition of a
// pattern with n edges: 2n delta plans, one DIFF_PLUS/DIFF_MINUS pair
// per pattern edge, designating that edge the "diff relation" (§4.4).
type ContinuousPlan struct {
	DeltaPlans []Plan
}

// PlanContinuous builds the 2n delta plans for a CONTINUOUS MATCH. Each
// pattern edge in turn becomes the diff relation: edges ordered before
// it in the pattern use MERGED, the diff relation itself uses
// DIFF_PLUS (in one sub-plan) or DIFF_MINUS (in the paired sub-plan),
// and edges ordered after it use PERMANENT. "Before/after" here tracks
// the order in which each edge was designated the diff relation, not
// its position in the pattern text — matching the Java planner this is
// ported from, which folds each diffRelation into mergedRelations only
// after both its sub-plans are built.
func PlanContinuous(qg *query.Graph, registry *types.Registry) (*ContinuousPlan, error) {
	edges := qg.Edges()
	merged := make(map[edgeRef]bool)
	permanent := make(map[edgeRef]bool)
	for _, e := range edges {
		permanent[edgeKey(e)] = true
	}

	cp := &ContinuousPlan{}
	for _, diff := range edges {
		key := edgeKey(diff)
		delete(permanent, key)

		plusPlan, err := buildDeltaPlan(qg, registry, diff, graphstore.DiffPlus, merged, permanent)
		if err != nil {
			return nil, err
		}
		minusPlan, err := buildDeltaPlan(qg, registry, diff, graphstore.DiffMinus, merged, permanent)
		if err != nil {
			return nil, err
		}
		cp.DeltaPlans = append(cp.DeltaPlans, *plusPlan, *minusPlan)

		merged[key] = true
	}
	return cp, nil
}

// edgeRef identifies a pattern edge by its endpoints in FORWARD
// orientation, the same normalization the Java planner's
// isRelationPresentInSet keys its relation sets on.
type edgeRef struct {
	from, to string
}

func edgeKey(e query.Edge) edgeRef {
	return edgeRef{e.From, e.To}
}

// buildDeltaPlan constructs one sub-plan (either the DIFF_PLUS or the
// DIFF_MINUS half) for diff as the current diff relation.
func buildDeltaPlan(qg *query.Graph, registry *types.Registry, diff query.Edge, diffVersion graphstore.Version, merged, permanent map[edgeRef]bool) (*Plan, error) {
	ordered := []string{diff.From, diff.To}
	orderRemaining(qg, &ordered)

	diffType, err := registry.Lookup(diff.EdgeType)
	if err != nil {
		return nil, err
	}

	stages := make([]Stage, 0, len(ordered)-1)

	firstStage := Stage{{PrefixIndex: 0, Direction: graphstore.Forward, Version: diffVersion, EdgeType: diffType}}
	for _, e := range qg.RelationsBetween(ordered[0], ordered[1]) {
		if sameEdge(e, diff) {
			continue
		}
		rule, err := ruleFor(registry, 0, ordered[0], e, merged, permanent)
		if err != nil {
			return nil, err
		}
		firstStage = append(firstStage, rule)
	}
	stages = append(stages, firstStage)

	for i := 2; i < len(ordered); i++ {
		current := ordered[i]
		var stage Stage
		for j := 0; j < i; j++ {
			earlier := ordered[j]
			if !qg.HasRelation(earlier, current) {
				continue
			}
			for _, e := range qg.RelationsBetween(earlier, current) {
				rule, err := ruleFor(registry, j, earlier, e, merged, permanent)
				if err != nil {
					return nil, err
				}
				stage = append(stage, rule)
			}
		}
		stages = append(stages, stage)
	}

	return &Plan{OrderedVariables: ordered, Stages: stages}, nil
}

func sameEdge(a, b query.Edge) bool {
	return a.From == b.From && a.To == b.To && stringPtrEqual(a.EdgeType, b.EdgeType)
}

func stringPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// ruleFor builds the intersection rule for pattern edge e, extending
// from prefix position prefixIndex (bound to variable from). The
// rule's direction is FORWARD if e runs from `from` to the variable
// being extended to, BACKWARD otherwise. Its graph version is MERGED
// if a diff relation processed in an earlier round already covers e,
// PERMANENT otherwise — mirroring the Java planner's
// addGenericJoinIntersectionRule, which treats this as a required
// invariant (a pattern edge must be in exactly one of those two sets
// by the time it is referenced).
func ruleFor(registry *types.Registry, prefixIndex int, from string, e query.Edge, merged, permanent map[edgeRef]bool) (Rule, error) {
	dir := graphstore.Forward
	if e.From != from {
		dir = graphstore.Backward
	}
	key := edgeKey(e)

	var version graphstore.Version
	switch {
	case merged[key]:
		version = graphstore.Merged
	case permanent[key]:
		version = graphstore.Permanent
	default:
		return Rule{}, ErrPlannerInvariant
	}

	typeID, err := registry.Lookup(e.EdgeType)
	if err != nil {
		return Rule{}, err
	}
	return Rule{PrefixIndex: prefixIndex, Direction: dir, Version: version, EdgeType: typeID}, nil
}
