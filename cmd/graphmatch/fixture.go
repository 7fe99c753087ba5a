package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lx7/graphmatch/pkg/graphstore"
	"github.com/lx7/graphmatch/pkg/idset"
	"github.com/lx7/graphmatch/pkg/query"
	"github.com/lx7/graphmatch/pkg/types"
)

// edgeLine is one parsed line of an --edges or --edits fixture: a
// directed (src, dst, typeName) triple, optionally signed for an edit
// batch ('+' stages an addition, '-' a deletion; unsigned lines in an
// --edges fixture are always additions).
type edgeLine struct {
	src, dst idset.ID
	typeName string
	delete   bool
}

// loadFixtureLines reads whitespace-separated "src dst [type]" lines
// from path, skipping blank lines and lines starting with '#'. A
// leading '+' or '-' on the first field marks an edit as a staged
// addition or deletion; --edges fixtures never carry a sign.
func loadFixtureLines(path string) ([]edgeLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("graphmatch: opening %s: %w", path, err)
	}
	defer f.Close()

	var lines []edgeLine
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, fmt.Errorf("graphmatch: %s:%d: expected at least 2 fields, got %q", path, lineNo, text)
		}
		first := fields[0]
		del := false
		if strings.HasPrefix(first, "+") {
			first = first[1:]
		} else if strings.HasPrefix(first, "-") {
			del = true
			first = first[1:]
		}
		src, err := strconv.ParseUint(first, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("graphmatch: %s:%d: bad source vertex %q: %w", path, lineNo, fields[0], err)
		}
		dst, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("graphmatch: %s:%d: bad destination vertex %q: %w", path, lineNo, fields[1], err)
		}
		line := edgeLine{src: idset.ID(src), dst: idset.ID(dst), delete: del}
		if len(fields) >= 3 {
			line.typeName = fields[2]
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("graphmatch: reading %s: %w", path, err)
	}
	return lines, nil
}

// loadStore builds a graphstore.Store from an --edges fixture file and
// immediately commits it, so the fixture becomes the PERMANENT graph.
func loadStore(path string, registry *types.Registry) (*graphstore.Store, error) {
	lines, err := loadFixtureLines(path)
	if err != nil {
		return nil, err
	}
	store := graphstore.New(registry)
	for _, l := range lines {
		store.AddEdge(l.src, l.dst, registry.Intern(l.typeName))
	}
	store.Commit()
	return store, nil
}

// applyEdits stages every line of an --edits fixture against store
// (additions into DIFF_PLUS, deletions into DIFF_MINUS) without
// committing, so a continuous plan can see them as the in-flight delta.
func applyEdits(store *graphstore.Store, path string, registry *types.Registry) error {
	lines, err := loadFixtureLines(path)
	if err != nil {
		return err
	}
	for _, l := range lines {
		typeID := registry.Intern(l.typeName)
		if l.delete {
			store.DeleteEdge(l.src, l.dst, typeID)
		} else {
			store.AddEdge(l.src, l.dst, typeID)
		}
	}
	return nil
}

// parseEdgeFlags turns a repeated --edge "from:to[:TYPE]" flag value
// into the StructuredQuery's pattern edges.
func parseEdgeFlags(raw []string) ([]query.Edge, error) {
	edges := make([]query.Edge, 0, len(raw))
	for _, r := range raw {
		parts := strings.Split(r, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, fmt.Errorf("graphmatch: --edge %q must be \"from:to\" or \"from:to:TYPE\"", r)
		}
		e := query.Edge{From: parts[0], To: parts[1]}
		if len(parts) == 3 && parts[2] != "" {
			t := parts[2]
			e.EdgeType = &t
		}
		e.RelationName = fmt.Sprintf("e%d", len(edges))
		edges = append(edges, e)
	}
	if len(edges) == 0 {
		return nil, fmt.Errorf("graphmatch: at least one --edge pattern is required")
	}
	return edges, nil
}
