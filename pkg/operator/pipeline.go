package operator

import (
	"github.com/lx7/graphmatch/pkg/graphstore"
	"github.com/lx7/graphmatch/pkg/propstore"
	"github.com/lx7/graphmatch/pkg/query"
	"github.com/lx7/graphmatch/pkg/sink"
	"github.com/lx7/graphmatch/pkg/types"
)

// Build assembles the subchain a StructuredQuery actually needs, per
// spec §4.6: "the planner emits exactly the subchain required by the
// query's clauses." Callers that don't need this at all — a bare MATCH
// with no WHERE/RETURN/aggregation — should skip Build and hand the
// join executor the real sink.Sink directly; HasProjection and
// len(Predicates)==0 tell them when that's safe.
//
// The returned *SinkAdapter should be passed to join.Executor.Run in
// place of out; after Run returns, call its Finish method so a
// terminal GroupByAndAggregate can flush its accumulated groups.
func Build(q *query.StructuredQuery, variables []string, store *graphstore.Store, edgeTypes *types.Registry, props *propstore.Store, propertyKeys *types.Registry, out sink.Sink) (*SinkAdapter, error) {
	terminal, err := buildTerminal(q, props, propertyKeys, out)
	if err != nil {
		return nil, err
	}

	var chain Operator = terminal
	if len(q.ReturnVariables) > 0 || len(q.ReturnProperties) > 0 {
		keep := projectedVariables(q)
		chain = &Projection{Keep: keep, Next: chain}
	}

	edgeSpecs, err := buildEdgeSpecs(q, edgeTypes)
	if err != nil {
		return nil, err
	}
	if len(q.Predicates) > 0 {
		chain = &Filter{Predicates: q.Predicates, Props: props, PropertyKeys: propertyKeys, Next: chain}
	}
	if len(edgeSpecs) > 0 {
		chain = &EdgeIdResolver{Store: store, Edges: edgeSpecs, Version: graphstore.Merged, Next: chain}
	}

	return &SinkAdapter{Variables: variables, Chain: chain}, nil
}

func buildTerminal(q *query.StructuredQuery, props *propstore.Store, propertyKeys *types.Registry, out sink.Sink) (Operator, error) {
	if len(q.Aggregations) > 0 {
		groupBy := make([]string, len(q.ReturnVariables))
		copy(groupBy, q.ReturnVariables)
		return &GroupByAndAggregate{
			GroupBy:      groupBy,
			Aggregations: q.Aggregations,
			Props:        props,
			PropertyKeys: propertyKeys,
			Sink:         out,
		}, nil
	}
	return &PropertyResolver{
		ReturnVariables:  q.ReturnVariables,
		ReturnProperties: q.ReturnProperties,
		Props:            props,
		PropertyKeys:     propertyKeys,
		Sink:             out,
	}, nil
}

// projectedVariables is every vertex variable anything downstream of
// Projection still needs: plain RETURN variables, the variable of each
// RETURN variable.property entry, and each aggregation's variable.
// Relation endpoints are not kept: EdgeIdResolver runs before
// Projection and has already resolved edge IDs from the pattern's full
// variable set.
func projectedVariables(q *query.StructuredQuery) []string {
	seen := make(map[string]bool)
	var keep []string
	add := func(v string) {
		if !seen[v] {
			seen[v] = true
			keep = append(keep, v)
		}
	}
	for _, v := range q.ReturnVariables {
		add(v)
	}
	for _, rp := range q.ReturnProperties {
		add(rp.Variable)
	}
	for _, a := range q.Aggregations {
		if a.Variable != "" {
			add(a.Variable)
		}
	}
	return keep
}

// buildEdgeSpecs resolves an EdgeSpec for every pattern edge that
// carries a RelationName a predicate or RETURN clause references,
// since those are the only edges whose ID is ever looked up.
func buildEdgeSpecs(q *query.StructuredQuery, edgeTypes *types.Registry) ([]EdgeSpec, error) {
	needed := make(map[string]bool)
	for _, p := range q.Predicates {
		needed[p.LeftVariable] = true
		if p.HasRightVar {
			needed[p.RightVariable] = true
		}
	}
	for _, rp := range q.ReturnProperties {
		needed[rp.Variable] = true
	}
	for _, a := range q.Aggregations {
		needed[a.Variable] = true
	}

	var specs []EdgeSpec
	for _, e := range q.Edges {
		if e.RelationName == "" || !needed[e.RelationName] {
			continue
		}
		typeID, err := edgeTypes.Lookup(e.EdgeType)
		if err != nil {
			return nil, err
		}
		specs = append(specs, EdgeSpec{From: e.From, To: e.To, RelationName: e.RelationName, EdgeType: typeID})
	}
	return specs, nil
}
