package sink_test

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lx7/graphmatch/pkg/sink"
)

func TestMemoryAppendAndTuplesTagged(t *testing.T) {
	m := sink.NewMemory()
	require.NoError(t, m.Append(sink.Matched, []any{uint32(0), uint32(1)}))
	require.NoError(t, m.Append(sink.Emerged, []any{uint32(2), uint32(3)}))

	assert.Len(t, m.Records(), 2)
	assert.Equal(t, [][]any{{uint32(0), uint32(1)}}, m.TuplesTagged(sink.Matched))
	assert.Equal(t, [][]any{{uint32(2), uint32(3)}}, m.TuplesTagged(sink.Emerged))
}

func TestEqualMultisetIgnoresOrderNotDuplicates(t *testing.T) {
	a := [][]any{{1, 2}, {3, 4}, {1, 2}}
	b := [][]any{{3, 4}, {1, 2}, {1, 2}}
	c := [][]any{{1, 2}, {3, 4}}

	assert.True(t, sink.EqualMultiset(a, b))
	assert.False(t, sink.EqualMultiset(a, c))
}

func TestFileSinkWritesSpaceSeparatedIdsAndTag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	f, err := sink.NewFile(path)
	require.NoError(t, err)

	require.NoError(t, f.Append(sink.Emerged, []any{uint32(0), uint32(1), uint32(2)}))
	require.NoError(t, f.Close())

	contents, err := os.Open(path)
	require.NoError(t, err)
	defer contents.Close()

	scanner := bufio.NewScanner(contents)
	require.True(t, scanner.Scan())
	assert.Equal(t, "0 1 2 EMERGED", scanner.Text())
}
