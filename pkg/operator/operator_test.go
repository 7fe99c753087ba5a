package operator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lx7/graphmatch/pkg/graphstore"
	"github.com/lx7/graphmatch/pkg/idset"
	"github.com/lx7/graphmatch/pkg/operator"
	"github.com/lx7/graphmatch/pkg/propstore"
	"github.com/lx7/graphmatch/pkg/query"
	"github.com/lx7/graphmatch/pkg/sink"
	"github.com/lx7/graphmatch/pkg/types"
)

func TestEdgeIdResolverDropsRowsWithNoMatchingEdge(t *testing.T) {
	reg := types.New()
	store := graphstore.New(reg)
	follows := reg.Intern("FOLLOWS")
	store.AddEdge(1, 2, follows)
	store.Commit()

	mem := sink.NewMemory()
	resolver := &operator.EdgeIdResolver{
		Store:   store,
		Edges:   []operator.EdgeSpec{{From: "a", To: "b", RelationName: "e", EdgeType: follows}},
		Version: graphstore.Merged,
		Next: &operator.PropertyResolver{
			ReturnVariables: []string{"a", "b"},
			Props:           propstore.New(),
			PropertyKeys:    types.New(),
			Sink:            mem,
		},
	}

	present := operator.NewRow([]string{"a", "b"}, []idset.ID{1, 2}, sink.Matched)
	absent := operator.NewRow([]string{"a", "b"}, []idset.ID{2, 1}, sink.Matched)

	require.NoError(t, resolver.Process([]operator.Row{present, absent}))
	assert.Len(t, mem.Records(), 1)
}

func TestFilterKeepsOnlyRowsMatchingPredicate(t *testing.T) {
	propKeys := types.New()
	props := propstore.New()
	age := propKeys.Intern("age")
	props.SetVertexProperty(1, age, int32(30))
	props.SetVertexProperty(2, age, int32(10))

	mem := sink.NewMemory()
	filter := &operator.Filter{
		Predicates: []query.PropertyPredicate{{
			LeftVariable: "a", LeftProperty: "age",
			Operator:     ">",
			RightLiteral: int32(18),
		}},
		Props:        props,
		PropertyKeys: propKeys,
		Next: &operator.PropertyResolver{
			ReturnVariables: []string{"a"},
			Props:           props,
			PropertyKeys:    propKeys,
			Sink:            mem,
		},
	}

	adult := operator.NewRow([]string{"a"}, []idset.ID{1}, sink.Matched)
	minor := operator.NewRow([]string{"a"}, []idset.ID{2}, sink.Matched)

	require.NoError(t, filter.Process([]operator.Row{adult, minor}))
	records := mem.Records()
	require.Len(t, records, 1)
	assert.Equal(t, []any{idset.ID(1)}, records[0].Tuple)
}

func TestProjectionDropsUnlistedVariables(t *testing.T) {
	mem := sink.NewMemory()
	proj := &operator.Projection{
		Keep: []string{"a"},
		Next: &operator.PropertyResolver{
			ReturnVariables: []string{"a"},
			Props:           propstore.New(),
			PropertyKeys:    types.New(),
			Sink:            mem,
		},
	}

	row := operator.NewRow([]string{"a", "b"}, []idset.ID{1, 2}, sink.Matched)
	require.NoError(t, proj.Process([]operator.Row{row}))
	assert.Equal(t, []any{idset.ID(1)}, mem.Records()[0].Tuple)
}

func TestPropertyResolverResolvesVariableDotProperty(t *testing.T) {
	propKeys := types.New()
	props := propstore.New()
	name := propKeys.Intern("name")
	props.SetVertexProperty(1, name, "alice")

	mem := sink.NewMemory()
	resolver := &operator.PropertyResolver{
		ReturnProperties: []query.ReturnProperty{{Variable: "a", Property: "name"}},
		Props:            props,
		PropertyKeys:     propKeys,
		Sink:             mem,
	}

	row := operator.NewRow([]string{"a"}, []idset.ID{1}, sink.Matched)
	require.NoError(t, resolver.Process([]operator.Row{row}))
	assert.Equal(t, []any{"alice"}, mem.Records()[0].Tuple)
}

func TestGroupByAndAggregateCountStarPerGroup(t *testing.T) {
	mem := sink.NewMemory()
	agg := &operator.GroupByAndAggregate{
		GroupBy:      []string{"a"},
		Aggregations: []query.Aggregation{{Function: query.CountStar}},
		Props:        propstore.New(),
		PropertyKeys: types.New(),
		Sink:         mem,
	}

	rowA1 := operator.NewRow([]string{"a", "b"}, []idset.ID{1, 10}, sink.Matched)
	rowA2 := operator.NewRow([]string{"a", "b"}, []idset.ID{1, 11}, sink.Matched)
	rowB1 := operator.NewRow([]string{"a", "b"}, []idset.ID{2, 20}, sink.Matched)

	require.NoError(t, agg.Process([]operator.Row{rowA1, rowA2, rowB1}))
	require.NoError(t, agg.Finish())

	got := mem.TuplesTagged(sink.Matched)
	assert.ElementsMatch(t, [][]any{
		{idset.ID(1), int64(2)},
		{idset.ID(2), int64(1)},
	}, got)
}

func TestGroupByAndAggregateSumMinMaxAvg(t *testing.T) {
	propKeys := types.New()
	props := propstore.New()
	score := propKeys.Intern("score")
	props.SetVertexProperty(10, score, int32(4))
	props.SetVertexProperty(11, score, int32(6))

	mem := sink.NewMemory()
	agg := &operator.GroupByAndAggregate{
		GroupBy: []string{"a"},
		Aggregations: []query.Aggregation{
			{Function: query.Sum, Variable: "b", Property: "score"},
			{Function: query.Min, Variable: "b", Property: "score"},
			{Function: query.Max, Variable: "b", Property: "score"},
			{Function: query.Avg, Variable: "b", Property: "score"},
		},
		Props:        props,
		PropertyKeys: propKeys,
		Sink:         mem,
	}

	row1 := operator.NewRow([]string{"a", "b"}, []idset.ID{1, 10}, sink.Matched)
	row2 := operator.NewRow([]string{"a", "b"}, []idset.ID{1, 11}, sink.Matched)

	require.NoError(t, agg.Process([]operator.Row{row1, row2}))
	require.NoError(t, agg.Finish())

	got := mem.TuplesTagged(sink.Matched)
	require.Len(t, got, 1)
	assert.Equal(t, []any{idset.ID(1), 10.0, 4.0, 6.0, 5.0}, got[0])
}
