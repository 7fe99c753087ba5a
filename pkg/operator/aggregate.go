package operator

import (
	"fmt"
	"strings"

	"github.com/lx7/graphmatch/pkg/idset"
	"github.com/lx7/graphmatch/pkg/propstore"
	"github.com/lx7/graphmatch/pkg/query"
	"github.com/lx7/graphmatch/pkg/sink"
	"github.com/lx7/graphmatch/pkg/types"
)

// groupState accumulates one group's worth of aggregate values, one
// accumulator per entry in GroupByAndAggregate.Aggregations, in order.
type groupState struct {
	groupValues []idset.ID
	counts      []int64
	sums        []float64
	mins        []float64
	maxes       []float64
	haveValue   []bool
}

// GroupByAndAggregate is a terminal stage: it groups rows by GroupBy
// (the RETURN clause's non-aggregated variables) and accumulates
// COUNT(*), SUM, MIN, MAX, and AVG across each group, batch after
// batch, then emits one tuple per group from Finish.
//
// Aggregation spans the whole query result, so it only makes sense
// against a one-time MATCH: every emitted tuple is tagged MATCHED.
type GroupByAndAggregate struct {
	GroupBy      []string
	Aggregations []query.Aggregation
	Props        *propstore.Store
	PropertyKeys *types.Registry
	Sink         sink.Sink

	groups map[string]*groupState
	order  []string
}

// Process implements Operator.
func (g *GroupByAndAggregate) Process(rows []Row) error {
	if g.groups == nil {
		g.groups = make(map[string]*groupState)
	}
	for _, row := range rows {
		key, groupValues, err := g.groupKey(row)
		if err != nil {
			return err
		}
		state, ok := g.groups[key]
		if !ok {
			state = &groupState{
				groupValues: groupValues,
				counts:      make([]int64, len(g.Aggregations)),
				sums:        make([]float64, len(g.Aggregations)),
				mins:        make([]float64, len(g.Aggregations)),
				maxes:       make([]float64, len(g.Aggregations)),
				haveValue:   make([]bool, len(g.Aggregations)),
			}
			g.groups[key] = state
			g.order = append(g.order, key)
		}
		for i, agg := range g.Aggregations {
			if agg.Function == query.CountStar {
				state.counts[i]++
				continue
			}
			value, ok := g.resolveNumeric(row, agg)
			if !ok {
				continue
			}
			state.counts[i]++
			state.sums[i] += value
			if !state.haveValue[i] || value < state.mins[i] {
				state.mins[i] = value
			}
			if !state.haveValue[i] || value > state.maxes[i] {
				state.maxes[i] = value
			}
			state.haveValue[i] = true
		}
	}
	return nil
}

// Finish emits one tuple per group: the group-by vertex IDs in order,
// followed by each aggregation's finalized value.
func (g *GroupByAndAggregate) Finish() error {
	for _, key := range g.order {
		state := g.groups[key]
		tuple := make([]any, 0, len(state.groupValues)+len(g.Aggregations))
		for _, v := range state.groupValues {
			tuple = append(tuple, v)
		}
		for i, agg := range g.Aggregations {
			switch agg.Function {
			case query.CountStar:
				tuple = append(tuple, state.counts[i])
			case query.Sum:
				tuple = append(tuple, state.sums[i])
			case query.Min:
				tuple = append(tuple, state.mins[i])
			case query.Max:
				tuple = append(tuple, state.maxes[i])
			case query.Avg:
				if state.counts[i] == 0 {
					tuple = append(tuple, nil)
				} else {
					tuple = append(tuple, state.sums[i]/float64(state.counts[i]))
				}
			}
		}
		if err := g.Sink.Append(sink.Matched, tuple); err != nil {
			return err
		}
	}
	return nil
}

func (g *GroupByAndAggregate) groupKey(row Row) (string, []idset.ID, error) {
	values := make([]idset.ID, len(g.GroupBy))
	var b strings.Builder
	for i, v := range g.GroupBy {
		id, ok := row.Vertices[v]
		if !ok {
			return "", nil, fmt.Errorf("operator: group-by variable %q not bound in row", v)
		}
		values[i] = id
		fmt.Fprintf(&b, "%d,", id)
	}
	return b.String(), values, nil
}

func (g *GroupByAndAggregate) resolveNumeric(row Row, agg query.Aggregation) (float64, bool) {
	if agg.Property == "" {
		if vertex, ok := row.Vertices[agg.Variable]; ok {
			return float64(vertex), true
		}
		if edge, ok := row.Edges[agg.Variable]; ok {
			return float64(edge), true
		}
		return 0, false
	}
	key := g.PropertyKeys.Intern(agg.Property)
	var raw any
	var ok bool
	if vertex, vok := row.Vertices[agg.Variable]; vok {
		raw, ok = g.Props.VertexProperty(vertex, key)
	} else if edge, eok := row.Edges[agg.Variable]; eok {
		raw, ok = g.Props.EdgeProperty(edge, key)
	}
	if !ok {
		return 0, false
	}
	return toFloat64(raw)
}
