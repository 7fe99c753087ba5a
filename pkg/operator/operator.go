// Package operator implements the fixed post-join pipeline spec §4.6
// describes: EdgeIdResolver, Filter, Projection, PropertyResolver, and
// GroupByAndAggregate, each sharing one capability — accept a batch of
// rows, do its work, forward whatever survives to the next stage.
//
// Rather than a deep inheritance hierarchy, every stage is a small
// struct implementing Operator and holding a Next Operator to forward
// to; the terminal stage (PropertyResolver or GroupByAndAggregate)
// holds a sink.Sink instead of a Next.
package operator

// Operator accepts a batch of rows and does whatever its stage does
// with them: filter some out, resolve IDs, reshape columns, or write
// to a sink.
type Operator interface {
	Process(rows []Row) error
}

// Finisher is implemented by operators that accumulate state across
// batches and must flush it once the stream ends — currently only
// GroupByAndAggregate.
type Finisher interface {
	Finish() error
}
