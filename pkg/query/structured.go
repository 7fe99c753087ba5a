// Package query holds the in-memory representation of a parsed pattern:
// the StructuredQuery value the (out-of-scope) parser hands to the
// planner, and the QueryGraph view the planner derives from it to
// compute variable degrees and neighbor sets.
package query

import "fmt"

// Operation names the clause a StructuredQuery was built from. Only
// Match and ContinuousMatch reach the planner; nothing in this module
// builds a Create or Delete query (the CLI harness stages edges against
// a graphstore.Store directly from its fixture files).
type Operation int

const (
	Match Operation = iota
	ContinuousMatch
	Create
	Delete
)

// Direction is the orientation of a pattern edge as written in the
// query, from the "from" variable to the "to" variable.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Edge is one pattern edge: a (possibly typed) directed relation
// between two named variables. EdgeType is nil when the pattern left
// the type unconstrained ("any").
type Edge struct {
	From     string
	To       string
	EdgeType *string
	// RelationName, if non-empty, lets WHERE/RETURN clauses refer to
	// this edge's properties (e.g. "MATCH (a)-[e:FOLLOWS]->(b)").
	RelationName string
}

// PropertyPredicate is one WHERE comparison: left OP right, where each
// operand is either "variable.property" or a literal constant.
type PropertyPredicate struct {
	LeftVariable  string
	LeftProperty  string
	Operator      string // "=", "<>", "<", "<=", ">", ">="
	RightVariable string
	RightProperty string
	// RightLiteral holds the right operand when the predicate compares
	// against a constant instead of another variable's property.
	RightLiteral any
	HasRightVar  bool
}

// AggregationFunc names one of the five supported aggregators.
type AggregationFunc int

const (
	CountStar AggregationFunc = iota
	Sum
	Min
	Max
	Avg
)

// Aggregation is one RETURN clause aggregation, over either a bare
// variable (vertex/edge ID) or a variable.property pair. Both may be
// empty for CountStar, which aggregates rows rather than a value.
type Aggregation struct {
	Function AggregationFunc
	Variable string
	Property string
}

// StructuredQuery is the parsed form of one request: a sequence of
// pattern edges plus the predicates and projection applied to their
// matches. It is built once by the (out-of-scope) parser or, in the
// demo CLI, assembled directly from flags, and is immutable thereafter.
type StructuredQuery struct {
	Operation            Operation
	Edges                []Edge
	Predicates           []PropertyPredicate
	ReturnVariables      []string
	ReturnProperties     []ReturnProperty
	Aggregations         []Aggregation
	ContinuousOutputPath string
}

// ReturnProperty is one "variable.property" entry in a RETURN clause.
type ReturnProperty struct {
	Variable string
	Property string
}

// HasProjection reports whether the query named an explicit RETURN
// clause; without one the executor's output is simply the ordered
// vertex-ID tuple of the match.
func (q *StructuredQuery) HasProjection() bool {
	return len(q.ReturnVariables) > 0 || len(q.ReturnProperties) > 0 || len(q.Aggregations) > 0
}

// Validate checks structural well-formedness the planner relies on:
// at least one pattern edge, and every predicate/projection/aggregation
// variable must name either a pattern vertex or a named relation.
func (q *StructuredQuery) Validate() error {
	if len(q.Edges) == 0 {
		return fmt.Errorf("%w: query has no pattern edges", ErrEmptyPlan)
	}
	vars := make(map[string]bool)
	rels := make(map[string]bool)
	for _, e := range q.Edges {
		vars[e.From] = true
		vars[e.To] = true
		if e.RelationName != "" {
			rels[e.RelationName] = true
		}
	}
	known := func(name string) bool { return vars[name] || rels[name] }
	for _, p := range q.Predicates {
		if !known(p.LeftVariable) || (p.HasRightVar && !known(p.RightVariable)) {
			return fmt.Errorf("%w: predicate references undeclared variable", ErrValidation)
		}
	}
	for _, v := range q.ReturnVariables {
		if !known(v) {
			return fmt.Errorf("%w: RETURN references undeclared variable %q", ErrValidation, v)
		}
	}
	for _, rp := range q.ReturnProperties {
		if !known(rp.Variable) {
			return fmt.Errorf("%w: RETURN references undeclared variable %q", ErrValidation, rp.Variable)
		}
	}
	for _, a := range q.Aggregations {
		if a.Variable != "" && !known(a.Variable) {
			return fmt.Errorf("%w: aggregation references undeclared variable %q", ErrValidation, a.Variable)
		}
	}
	return nil
}
