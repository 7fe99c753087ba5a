package operator

import "github.com/lx7/graphmatch/pkg/idset"

// Projection drops every vertex binding not named in Keep, matching
// spec §4.6's "re-orders/drops columns". Edge bindings pass through
// untouched since PropertyResolver downstream may still need them for
// an edge property in RETURN even when the edge's endpoints aren't
// themselves projected.
type Projection struct {
	Keep []string
	Next Operator
}

// Process implements Operator.
func (p *Projection) Process(rows []Row) error {
	out := make([]Row, len(rows))
	for i, row := range rows {
		vertices := make(map[string]idset.ID, len(p.Keep))
		for _, v := range p.Keep {
			if id, ok := row.Vertices[v]; ok {
				vertices[v] = id
			}
		}
		out[i] = Row{Vertices: vertices, Edges: row.Edges, Tag: row.Tag}
	}
	return p.Next.Process(out)
}
