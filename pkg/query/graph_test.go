package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lx7/graphmatch/pkg/query"
)

func TestGraphDegreeAndNeighbors(t *testing.T) {
	q := &query.StructuredQuery{Edges: []query.Edge{
		{From: "a", To: "b"},
		{From: "b", To: "c"},
		{From: "c", To: "a"},
	}}
	g := query.NewGraph(q)

	assert.Equal(t, 2, g.Degree("a"))
	assert.Equal(t, []string{"a", "c"}, g.NeighborVariables("b"))
	assert.ElementsMatch(t, []string{"a", "b", "c"}, g.Variables())
}

func TestGraphHasRelationIsDirectionAgnostic(t *testing.T) {
	q := &query.StructuredQuery{Edges: []query.Edge{{From: "a", To: "b"}}}
	g := query.NewGraph(q)

	assert.True(t, g.HasRelation("a", "b"))
	assert.True(t, g.HasRelation("b", "a"))
	assert.False(t, g.HasRelation("a", "c"))
}

func TestGraphRelationsBetweenReturnsAllParallelEdges(t *testing.T) {
	follows, likes := "FOLLOWS", "LIKES"
	q := &query.StructuredQuery{Edges: []query.Edge{
		{From: "a", To: "b", EdgeType: &follows},
		{From: "a", To: "b", EdgeType: &likes},
	}}
	g := query.NewGraph(q)

	rels := g.RelationsBetween("a", "b")
	assert.Len(t, rels, 2)
}
