package operator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lx7/graphmatch/pkg/graphstore"
	"github.com/lx7/graphmatch/pkg/idset"
	"github.com/lx7/graphmatch/pkg/join"
	"github.com/lx7/graphmatch/pkg/operator"
	"github.com/lx7/graphmatch/pkg/planner"
	"github.com/lx7/graphmatch/pkg/propstore"
	"github.com/lx7/graphmatch/pkg/query"
	"github.com/lx7/graphmatch/pkg/sink"
	"github.com/lx7/graphmatch/pkg/types"
)

// runPipeline plans and executes q against store, routing the join
// executor's output through operator.Build's assembled chain — the
// full join -> Build -> SinkAdapter -> sink path spec §4.6 describes.
func runPipeline(t *testing.T, store *graphstore.Store, edgeTypes *types.Registry, q *query.StructuredQuery, props *propstore.Store, propertyKeys *types.Registry) []sink.Record {
	t.Helper()
	require.NoError(t, q.Validate())

	plan, err := planner.PlanOneTime(query.NewGraph(q), edgeTypes)
	require.NoError(t, err)

	exec, err := join.New(plan, store)
	require.NoError(t, err)

	mem := sink.NewMemory()
	adapter, err := operator.Build(q, plan.OrderedVariables, store, edgeTypes, props, propertyKeys, mem)
	require.NoError(t, err)

	require.NoError(t, exec.Run(adapter))
	require.NoError(t, adapter.Finish())
	return mem.Records()
}

// TestPipelineFiltersProjectsAndResolvesProperties drives a MATCH with
// a WHERE predicate and a RETURN projection through the full
// join -> operator.Build -> sink path, per spec §4.6.
func TestPipelineFiltersProjectsAndResolvesProperties(t *testing.T) {
	edgeTypes := types.New()
	follows := edgeTypes.Intern("FOLLOWS")
	store := graphstore.New(edgeTypes)
	store.AddEdge(0, 1, follows)
	store.AddEdge(0, 2, follows)
	store.Commit()

	propertyKeys := types.New()
	age := propertyKeys.Intern("age")
	props := propstore.New()
	props.SetVertexProperty(1, age, int32(30))
	props.SetVertexProperty(2, age, int32(10))

	followsName := "FOLLOWS"
	q := &query.StructuredQuery{
		Operation: query.Match,
		Edges:     []query.Edge{{From: "a", To: "b", EdgeType: &followsName}},
		Predicates: []query.PropertyPredicate{
			{LeftVariable: "b", LeftProperty: "age", Operator: ">", RightLiteral: int32(18)},
		},
		ReturnVariables: []string{"b"},
	}

	records := runPipeline(t, store, edgeTypes, q, props, propertyKeys)
	require.Len(t, records, 1)
	assert.Equal(t, sink.Matched, records[0].Tag)
	assert.Equal(t, []any{idset.ID(1)}, records[0].Tuple)
}

// TestPipelineAggregatesEndToEnd drives a MATCH with a GROUP BY / COUNT(*)
// aggregation through the same full path.
func TestPipelineAggregatesEndToEnd(t *testing.T) {
	edgeTypes := types.New()
	follows := edgeTypes.Intern("FOLLOWS")
	store := graphstore.New(edgeTypes)
	store.AddEdge(0, 1, follows)
	store.AddEdge(0, 2, follows)
	store.AddEdge(3, 4, follows)
	store.Commit()

	q := &query.StructuredQuery{
		Operation:       query.Match,
		Edges:           []query.Edge{{From: "a", To: "b"}},
		ReturnVariables: []string{"a"},
		Aggregations:    []query.Aggregation{{Function: query.CountStar}},
	}

	records := runPipeline(t, store, edgeTypes, q, propstore.New(), types.New())
	var got [][]any
	for _, r := range records {
		got = append(got, r.Tuple)
	}
	assert.ElementsMatch(t, [][]any{
		{idset.ID(0), int64(2)},
		{idset.ID(3), int64(1)},
	}, got)
}
