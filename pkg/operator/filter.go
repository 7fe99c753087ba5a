package operator

import (
	"fmt"

	"github.com/lx7/graphmatch/pkg/propstore"
	"github.com/lx7/graphmatch/pkg/query"
	"github.com/lx7/graphmatch/pkg/types"
)

// Filter evaluates Predicates as a composed boolean function (all
// ANDed, the way a comma-separated Cypher WHERE clause is) over
// properties resolved from Props, and forwards only the rows that pass
// every predicate.
type Filter struct {
	Predicates   []query.PropertyPredicate
	Props        *propstore.Store
	PropertyKeys *types.Registry
	Next         Operator
}

// Process implements Operator.
func (f *Filter) Process(rows []Row) error {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		pass := true
		for _, p := range f.Predicates {
			ok, err := f.evaluate(row, p)
			if err != nil {
				return err
			}
			if !ok {
				pass = false
				break
			}
		}
		if pass {
			out = append(out, row)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return f.Next.Process(out)
}

func (f *Filter) evaluate(row Row, p query.PropertyPredicate) (bool, error) {
	left, ok := f.lookup(row, p.LeftVariable, p.LeftProperty)
	if !ok {
		return false, nil
	}

	var right any
	if p.HasRightVar {
		right, ok = f.lookup(row, p.RightVariable, p.RightProperty)
		if !ok {
			return false, nil
		}
	} else {
		right = p.RightLiteral
	}

	switch p.Operator {
	case "=":
		return compareEqual(left, right), nil
	case "<>", "!=":
		return !compareEqual(left, right), nil
	case "<":
		return compareLess(left, right), nil
	case ">":
		return compareGreater(left, right), nil
	case "<=":
		return compareLess(left, right) || compareEqual(left, right), nil
	case ">=":
		return compareGreater(left, right) || compareEqual(left, right), nil
	default:
		return false, fmt.Errorf("operator: unsupported predicate operator %q", p.Operator)
	}
}

// lookup resolves variable.property against row: variable is tried as
// a vertex binding first, then as a resolved edge's relation name.
func (f *Filter) lookup(row Row, variable, property string) (any, bool) {
	key := f.PropertyKeys.Intern(property)
	if vertex, ok := row.Vertices[variable]; ok {
		return f.Props.VertexProperty(vertex, key)
	}
	if edge, ok := row.Edges[variable]; ok {
		return f.Props.EdgeProperty(edge, key)
	}
	return nil, false
}
