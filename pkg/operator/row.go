package operator

import (
	"github.com/lx7/graphmatch/pkg/graphstore"
	"github.com/lx7/graphmatch/pkg/idset"
	"github.com/lx7/graphmatch/pkg/sink"
)

// Row is one match in flight through the post-join pipeline: vertex
// bindings keyed by pattern variable, plus whatever edge IDs
// EdgeIdResolver has resolved so far, keyed by the pattern edge's
// relation name. Tag carries the MATCHED/EMERGED/DELETED classification
// the join executor assigned, through to whichever stage finally
// writes to the sink.
type Row struct {
	Vertices map[string]idset.ID
	Edges    map[string]graphstore.EdgeID
	Tag      sink.Tag
}

// NewRow binds a raw join-executor tuple (vertex IDs ordered the way
// variables lists them) into a Row.
func NewRow(variables []string, tuple []idset.ID, tag sink.Tag) Row {
	vertices := make(map[string]idset.ID, len(variables))
	for i, v := range variables {
		vertices[v] = tuple[i]
	}
	return Row{Vertices: vertices, Tag: tag}
}
