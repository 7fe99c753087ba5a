// Package planner turns a validated query.Graph into a sequence of
// generic-join stages: one Plan for a one-time MATCH, or n*2 delta
// Plans for a CONTINUOUS MATCH (one EMERGED/DELETED pair per pattern
// edge). The planner only orders variables and emits intersection
// rules; execution and result tagging belong to pkg/join.
package planner

import (
	"github.com/lx7/graphmatch/pkg/graphstore"
	"github.com/lx7/graphmatch/pkg/types"
)

// Rule is one generic-join intersection rule: extend the prefix by
// intersecting Adj(prefix[PrefixIndex], Direction, Version, EdgeType)
// across every rule in its stage.
type Rule struct {
	PrefixIndex int
	Direction   graphstore.Direction
	Version     graphstore.Version
	EdgeType    types.ID
}

// Stage is the set of rules that extends a prefix by one variable.
type Stage []Rule

// Plan is a deterministic ordering of a pattern's variables plus the
// stages that extend a seed prefix (the first two ordered variables)
// to a full match. Plans are stateless once built and safe to cache
// and reuse across executions of the same query text.
type Plan struct {
	OrderedVariables []string
	Stages           []Stage
}

// VariableIndex returns the position of variable in OrderedVariables,
// or -1 if the plan never binds it.
func (p *Plan) VariableIndex(variable string) int {
	for i, v := range p.OrderedVariables {
		if v == variable {
			return i
		}
	}
	return -1
}
