package operator

import (
	"fmt"

	"github.com/lx7/graphmatch/pkg/idset"
	"github.com/lx7/graphmatch/pkg/sink"
)

// SinkAdapter implements sink.Sink by translating every raw tuple the
// join executor produces into a Row and feeding it through Chain. Use
// this as the sink passed to join.Executor.Run when the query needs
// any of WHERE, RETURN projection, or aggregation; pass the real
// sink.Sink directly to the executor otherwise, since a bare MATCH
// with no clauses needs no operator chain at all.
type SinkAdapter struct {
	Variables []string
	Chain     Operator
}

// Append implements sink.Sink.
func (a *SinkAdapter) Append(tag sink.Tag, tuple []any) error {
	ids := make([]idset.ID, len(tuple))
	for i, v := range tuple {
		id, ok := v.(idset.ID)
		if !ok {
			return fmt.Errorf("operator: expected idset.ID in join tuple, got %T", v)
		}
		ids[i] = id
	}
	row := NewRow(a.Variables, ids, tag)
	return a.Chain.Process([]Row{row})
}

// Finish flushes the stage of Chain that accumulates state across
// batches (only GroupByAndAggregate currently does), following the Next
// links of EdgeIdResolver, Filter, and Projection to reach it. Call
// this once after the join executor's Run returns.
func (a *SinkAdapter) Finish() error {
	op := a.Chain
	for op != nil {
		if f, ok := op.(Finisher); ok {
			return f.Finish()
		}
		switch o := op.(type) {
		case *EdgeIdResolver:
			op = o.Next
		case *Filter:
			op = o.Next
		case *Projection:
			op = o.Next
		default:
			return nil
		}
	}
	return nil
}
