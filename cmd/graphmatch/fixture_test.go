package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lx7/graphmatch/pkg/idset"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFixtureLinesParsesTypedAndUntypedEdges(t *testing.T) {
	path := writeFixture(t, "0 1 FOLLOWS\n1 2\n# comment\n\n")
	lines, err := loadFixtureLines(path)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, edgeLine{src: idset.ID(0), dst: idset.ID(1), typeName: "FOLLOWS"}, lines[0])
	assert.Equal(t, edgeLine{src: idset.ID(1), dst: idset.ID(2)}, lines[1])
}

func TestLoadFixtureLinesParsesSignedEdits(t *testing.T) {
	path := writeFixture(t, "+0 1 FOLLOWS\n-1 2 FOLLOWS\n")
	lines, err := loadFixtureLines(path)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.False(t, lines[0].delete)
	assert.True(t, lines[1].delete)
}

func TestLoadFixtureLinesRejectsTooFewFields(t *testing.T) {
	path := writeFixture(t, "0\n")
	_, err := loadFixtureLines(path)
	assert.Error(t, err)
}

func TestParseEdgeFlagsBuildsPatternEdges(t *testing.T) {
	edges, err := parseEdgeFlags([]string{"a:b:FOLLOWS", "b:c"})
	require.NoError(t, err)
	require.Len(t, edges, 2)
	assert.Equal(t, "a", edges[0].From)
	assert.Equal(t, "b", edges[0].To)
	require.NotNil(t, edges[0].EdgeType)
	assert.Equal(t, "FOLLOWS", *edges[0].EdgeType)
	assert.Nil(t, edges[1].EdgeType)
}

func TestParseEdgeFlagsRejectsEmptyInput(t *testing.T) {
	_, err := parseEdgeFlags(nil)
	assert.Error(t, err)
}

func TestParseEdgeFlagsRejectsMalformedEntry(t *testing.T) {
	_, err := parseEdgeFlags([]string{"a:b:TYPE:extra"})
	assert.Error(t, err)
}
