package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lx7/graphmatch/pkg/join"
	"github.com/lx7/graphmatch/pkg/operator"
	"github.com/lx7/graphmatch/pkg/planconfig"
	"github.com/lx7/graphmatch/pkg/planner"
	"github.com/lx7/graphmatch/pkg/propstore"
	"github.com/lx7/graphmatch/pkg/query"
	"github.com/lx7/graphmatch/pkg/sink"
	"github.com/lx7/graphmatch/pkg/types"
)

func newMatchCmd() *cobra.Command {
	var edgesPath, outPath string
	var edgeFlags, whereFlags, returnFlags []string

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Run a one-time MATCH against a fixture graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(edgesPath, outPath, edgeFlags, whereFlags, returnFlags)
		},
	}
	cmd.Flags().StringVar(&edgesPath, "edges", "", "path to the fixture edge file (required)")
	cmd.Flags().StringVar(&outPath, "out", "", "output file (default: stdout)")
	cmd.Flags().StringArrayVar(&edgeFlags, "edge", nil, `pattern edge "from:to[:TYPE]" (repeatable, at least one required)`)
	cmd.Flags().StringArrayVar(&whereFlags, "where", nil, `WHERE predicate "variable.property OP literal" (repeatable)`)
	cmd.Flags().StringArrayVar(&returnFlags, "return", nil, `RETURN entry "variable" or "variable.property" (repeatable; default: the whole matched tuple)`)
	cmd.MarkFlagRequired("edges")
	return cmd
}

func runMatch(edgesPath, outPath string, edgeFlags, whereFlags, returnFlags []string) error {
	patternEdges, err := parseEdgeFlags(edgeFlags)
	if err != nil {
		return err
	}
	predicates, err := parseWhereFlags(whereFlags)
	if err != nil {
		return err
	}
	returnVariables, returnProperties := parseReturnFlags(returnFlags)

	edgeTypes := types.New()
	store, err := loadStore(edgesPath, edgeTypes)
	if err != nil {
		return err
	}

	q := &query.StructuredQuery{
		Operation:        query.Match,
		Edges:            patternEdges,
		Predicates:       predicates,
		ReturnVariables:  returnVariables,
		ReturnProperties: returnProperties,
	}
	if err := q.Validate(); err != nil {
		return err
	}

	plan, err := planner.PlanOneTime(query.NewGraph(q), edgeTypes)
	if err != nil {
		return err
	}

	out, closeOut, err := openSink(outPath)
	if err != nil {
		return err
	}
	defer closeOut()

	cfg := planconfig.LoadFromEnv()
	executor, err := join.New(plan, store)
	if err != nil {
		return err
	}
	executor.WithBatchSize(cfg.BatchSize)

	// A bare pattern with no WHERE/RETURN needs no operator chain: the
	// join executor's raw vertex-ID tuples already are the output.
	if len(q.Predicates) == 0 && !q.HasProjection() {
		return executor.Run(out)
	}

	propertyKeys := types.New()
	adapter, err := operator.Build(q, plan.OrderedVariables, store, edgeTypes, propstore.New(), propertyKeys, out)
	if err != nil {
		return err
	}
	if err := executor.Run(adapter); err != nil {
		return err
	}
	return adapter.Finish()
}

// openSink returns an open sink.Sink targeting path, or stdout if path
// is empty, along with a cleanup function the caller must defer.
func openSink(path string) (sink.Sink, func(), error) {
	if path == "" {
		f := sink.NewFileHandle(os.Stdout)
		return f, func() { f.Close() }, nil
	}
	f, err := sink.NewFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("graphmatch: %w", err)
	}
	return f, func() { f.Close() }, nil
}
