package planner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lx7/graphmatch/pkg/graphstore"
	"github.com/lx7/graphmatch/pkg/planner"
	"github.com/lx7/graphmatch/pkg/query"
	"github.com/lx7/graphmatch/pkg/types"
)

func triangleQuery() *query.StructuredQuery {
	return &query.StructuredQuery{Edges: []query.Edge{
		{From: "a", To: "b"},
		{From: "b", To: "c"},
		{From: "c", To: "a"},
	}}
}

func TestPlanOneTimeOrdersBySeedThenGreedyRules(t *testing.T) {
	reg := types.New()
	qg := query.NewGraph(triangleQuery())

	plan, err := planner.PlanOneTime(qg, reg)
	require.NoError(t, err)

	// All three variables have degree 2; the seed must be the
	// lexicographically smallest, "a".
	assert.Equal(t, "a", plan.OrderedVariables[0])
	assert.ElementsMatch(t, []string{"a", "b", "c"}, plan.OrderedVariables)
	assert.Len(t, plan.Stages, 2)
}

func TestPlanOneTimeEveryRuleUsesPermanent(t *testing.T) {
	reg := types.New()
	qg := query.NewGraph(triangleQuery())

	plan, err := planner.PlanOneTime(qg, reg)
	require.NoError(t, err)

	for _, stage := range plan.Stages {
		for _, rule := range stage {
			assert.Equal(t, graphstore.Permanent, rule.Version)
		}
	}
}

func TestPlanOneTimeIsDeterministic(t *testing.T) {
	reg := types.New()
	qg := query.NewGraph(triangleQuery())

	a, err := planner.PlanOneTime(qg, reg)
	require.NoError(t, err)
	b, err := planner.PlanOneTime(qg, reg)
	require.NoError(t, err)

	assert.Equal(t, a.OrderedVariables, b.OrderedVariables)
	assert.Equal(t, a.Stages, b.Stages)
}

func TestPlanOneTimeRejectsEmptyPattern(t *testing.T) {
	reg := types.New()
	qg := query.NewGraph(&query.StructuredQuery{})

	_, err := planner.PlanOneTime(qg, reg)
	assert.ErrorIs(t, err, planner.ErrEmptyPlan)
}

func TestPlanOneTimeSeedPrefersHighestDegree(t *testing.T) {
	reg := types.New()
	// "b" touches three edges; "a", "c", "d" touch one each.
	q := &query.StructuredQuery{Edges: []query.Edge{
		{From: "a", To: "b"},
		{From: "b", To: "c"},
		{From: "b", To: "d"},
	}}
	qg := query.NewGraph(q)

	plan, err := planner.PlanOneTime(qg, reg)
	require.NoError(t, err)
	assert.Equal(t, "b", plan.OrderedVariables[0])
}
