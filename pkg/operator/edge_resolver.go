package operator

import (
	"github.com/lx7/graphmatch/pkg/graphstore"
	"github.com/lx7/graphmatch/pkg/types"
)

// EdgeSpec names one pattern edge that a Filter or PropertyResolver
// downstream needs an EdgeID for: either it carries a WHERE predicate
// on an edge property, or it's projected into the RETURN clause.
type EdgeSpec struct {
	From, To     string
	RelationName string
	EdgeType     types.ID
}

// EdgeIdResolver resolves each EdgeSpec to its EdgeID via a (src, dst,
// type) lookup against Store, under Version, and records the result on
// the row keyed by the edge's relation name. Rows whose edge no longer
// resolves (possible once a row has flowed out of MERGED into a
// PERMANENT-only view after a deletion) are dropped rather than
// forwarded with a missing binding.
type EdgeIdResolver struct {
	Store   *graphstore.Store
	Edges   []EdgeSpec
	Version graphstore.Version
	Next    Operator
}

// Process implements Operator.
func (r *EdgeIdResolver) Process(rows []Row) error {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		resolved := row
		resolved.Edges = make(map[string]graphstore.EdgeID, len(r.Edges))
		ok := true
		for _, e := range r.Edges {
			src, dst := row.Vertices[e.From], row.Vertices[e.To]
			id, found := r.Store.EdgeIDFor(src, dst, e.EdgeType, r.Version)
			if !found {
				ok = false
				break
			}
			resolved.Edges[e.RelationName] = id
		}
		if ok {
			out = append(out, resolved)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return r.Next.Process(out)
}
