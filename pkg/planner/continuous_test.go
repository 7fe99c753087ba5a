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

func TestPlanContinuousProducesTwoDeltaPlansPerPatternEdge(t *testing.T) {
	reg := types.New()
	qg := query.NewGraph(triangleQuery())

	cp, err := planner.PlanContinuous(qg, reg)
	require.NoError(t, err)

	assert.Len(t, cp.DeltaPlans, 6)
}

func TestPlanContinuousPairsDiffPlusAndDiffMinus(t *testing.T) {
	reg := types.New()
	qg := query.NewGraph(triangleQuery())

	cp, err := planner.PlanContinuous(qg, reg)
	require.NoError(t, err)

	for i := 0; i < len(cp.DeltaPlans); i += 2 {
		plusStage := cp.DeltaPlans[i].Stages[0]
		minusStage := cp.DeltaPlans[i+1].Stages[0]
		assert.Equal(t, graphstore.DiffPlus, plusStage[0].Version)
		assert.Equal(t, graphstore.DiffMinus, minusStage[0].Version)
	}
}

func TestPlanContinuousSeedsEachDeltaPlanWithDiffRelationEndpoints(t *testing.T) {
	reg := types.New()
	qg := query.NewGraph(triangleQuery())

	cp, err := planner.PlanContinuous(qg, reg)
	require.NoError(t, err)

	wantFirstTwo := [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}}
	for i, pair := range wantFirstTwo {
		plan := cp.DeltaPlans[2*i]
		assert.Equal(t, pair[0], plan.OrderedVariables[0])
		assert.Equal(t, pair[1], plan.OrderedVariables[1])
	}
}
