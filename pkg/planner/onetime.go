package planner

import (
	"sort"

	"github.com/lx7/graphmatch/pkg/graphstore"
	"github.com/lx7/graphmatch/pkg/query"
	"github.com/lx7/graphmatch/pkg/types"
)

// PlanOneTime builds the single-plan ordering and stage list for a
// one-time MATCH: every rule targets graphstore.Permanent.
func PlanOneTime(qg *query.Graph, registry *types.Registry) (*Plan, error) {
	ordered, err := orderVariables(qg)
	if err != nil {
		return nil, err
	}
	stages, err := buildStages(qg, ordered, registry, func(query.Edge) graphstore.Version {
		return graphstore.Permanent
	})
	if err != nil {
		return nil, err
	}
	return &Plan{OrderedVariables: ordered, Stages: stages}, nil
}

// orderVariables runs the seed-then-greedy heuristic of §4.3: pick the
// highest-degree variable (ties broken lexicographically smallest),
// then repeatedly pick the uncovered variable with the most pattern
// edges into the already-covered set, breaking ties by degree and then
// lexicographic order.
func orderVariables(qg *query.Graph) ([]string, error) {
	variables := qg.Variables()
	if len(variables) == 0 {
		return nil, ErrEmptyPlan
	}
	seed := seedVariable(qg, variables)
	ordered := []string{seed}
	orderRemaining(qg, &ordered)
	return ordered, nil
}

func seedVariable(qg *query.Graph, variables []string) string {
	sorted := append([]string(nil), variables...)
	sort.Strings(sorted)
	best := sorted[0]
	bestDegree := qg.Degree(best)
	for _, v := range sorted[1:] {
		if d := qg.Degree(v); d > bestDegree {
			best, bestDegree = v, d
		}
	}
	return best
}

// orderRemaining appends the greedy ordering of every variable not yet
// in *ordered, mutating it in place. ordered may start with one
// variable (one-time MATCH) or two (the diff-relation's endpoints, for
// a continuous delta plan).
func orderRemaining(qg *query.Graph, ordered *[]string) {
	covered := make(map[string]bool)
	for _, v := range *ordered {
		covered[v] = true
	}
	total := len(qg.Variables())
	for len(*ordered) < total {
		var selected string
		highestConnections := -1
		highestDegree := -1
		for _, coveredVar := range *ordered {
			for _, neighbor := range qg.NeighborVariables(coveredVar) {
				if covered[neighbor] {
					continue
				}
				degree := qg.Degree(neighbor)
				connections := 0
				for _, alreadyCovered := range *ordered {
					if qg.HasRelation(neighbor, alreadyCovered) {
						connections++
					}
				}
				switch {
				case connections > highestConnections:
					selected, highestDegree, highestConnections = neighbor, degree, connections
				case connections == highestConnections && degree > highestDegree:
					selected, highestDegree, highestConnections = neighbor, degree, connections
				case connections == highestConnections && degree == highestDegree && neighbor < selected:
					selected, highestDegree, highestConnections = neighbor, degree, connections
				}
			}
		}
		*ordered = append(*ordered, selected)
		covered[selected] = true
	}
}

// versionFunc resolves the graphstore.Version a given pattern edge
// should use; for §4.3 every rule uses Permanent, but §4.4's delta
// plans need per-edge overrides, hence the function parameter.
type versionFunc func(query.Edge) graphstore.Version

// buildStages emits, for each variable after the first, one stage per
// §4.3 rule (3):
// one IntersectionRule for every pattern edge between the new variable
// and any earlier variable.
func buildStages(qg *query.Graph, ordered []string, registry *types.Registry, version versionFunc) ([]Stage, error) {
	stages := make([]Stage, 0, len(ordered)-1)
	for i := 1; i < len(ordered); i++ {
		current := ordered[i]
		var stage Stage
		for j := 0; j < i; j++ {
			earlier := ordered[j]
			if !qg.HasRelation(earlier, current) {
				continue
			}
			for _, e := range qg.RelationsBetween(earlier, current) {
				dir := graphstore.Forward
				if e.From != earlier {
					dir = graphstore.Backward
				}
				typeID, err := registry.Lookup(e.EdgeType)
				if err != nil {
					return nil, err
				}
				stage = append(stage, Rule{
					PrefixIndex: j,
					Direction:   dir,
					Version:     version(e),
					EdgeType:    typeID,
				})
			}
		}
		stages = append(stages, stage)
	}
	return stages, nil
}
