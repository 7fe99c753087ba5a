package operator

import (
	"fmt"

	"github.com/lx7/graphmatch/pkg/propstore"
	"github.com/lx7/graphmatch/pkg/query"
	"github.com/lx7/graphmatch/pkg/sink"
	"github.com/lx7/graphmatch/pkg/types"
)

// PropertyResolver is a terminal stage: for each surviving row it
// builds the output tuple RETURN asked for — raw vertex IDs for plain
// return variables, resolved property values for `variable.property`
// entries — in that order, and appends it to Sink tagged with the
// row's classification.
type PropertyResolver struct {
	ReturnVariables  []string
	ReturnProperties []query.ReturnProperty
	Props            *propstore.Store
	PropertyKeys     *types.Registry
	Sink             sink.Sink
}

// Process implements Operator.
func (p *PropertyResolver) Process(rows []Row) error {
	for _, row := range rows {
		tuple := make([]any, 0, len(p.ReturnVariables)+len(p.ReturnProperties))
		for _, v := range p.ReturnVariables {
			id, ok := row.Vertices[v]
			if !ok {
				return fmt.Errorf("operator: return variable %q not bound in row", v)
			}
			tuple = append(tuple, id)
		}
		for _, rp := range p.ReturnProperties {
			key := p.PropertyKeys.Intern(rp.Property)
			if vertex, ok := row.Vertices[rp.Variable]; ok {
				v, _ := p.Props.VertexProperty(vertex, key)
				tuple = append(tuple, v)
				continue
			}
			if edge, ok := row.Edges[rp.Variable]; ok {
				v, _ := p.Props.EdgeProperty(edge, key)
				tuple = append(tuple, v)
				continue
			}
			tuple = append(tuple, nil)
		}
		if err := p.Sink.Append(row.Tag, tuple); err != nil {
			return err
		}
	}
	return nil
}
