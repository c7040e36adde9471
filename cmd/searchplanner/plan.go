package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/graphcatalog/searchplanner/pkg/config"
	"github.com/graphcatalog/searchplanner/pkg/diagnostics"
	"github.com/graphcatalog/searchplanner/pkg/filter"
	"github.com/graphcatalog/searchplanner/pkg/querybuilder"
	"github.com/graphcatalog/searchplanner/pkg/search"
)

var (
	planFilterPath  string
	planSchemaPath  string
	planRootType    string
	planGraphAlias  string
	planGraphVendor string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan a filter against a schema/catalog fixture and print the emitted artifacts",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planFilterPath, "filter", "", "path to a filter JSON file (required)")
	planCmd.Flags().StringVar(&planSchemaPath, "schema", "", "path to a schema/catalog fixture YAML file (required)")
	planCmd.Flags().StringVar(&planRootType, "type", "", "root type name to search from (required)")
	planCmd.Flags().StringVar(&planGraphAlias, "alias", "n", "graph query vertex alias")
	planCmd.Flags().StringVar(&planGraphVendor, "provider", "neo4j", "graph query provider: neo4j, ladybug, memgraph")

	planCmd.MarkFlagRequired("filter")
	planCmd.MarkFlagRequired("schema")
	planCmd.MarkFlagRequired("type")
}

func runPlan(cmd *cobra.Command, args []string) error {
	limits := config.DefaultLimits()
	if cfg, err := config.Load(); err == nil {
		limits = cfg.Limits
	} else {
		log.Warn("falling back to default limits", "error", err)
	}

	raw, err := os.ReadFile(planFilterPath)
	if err != nil {
		return fmt.Errorf("reading filter: %w", err)
	}
	root, err := filter.ParseJSON(raw)
	if err != nil {
		return fmt.Errorf("parsing filter: %w", err)
	}

	registry, cat, err := loadFixture(planSchemaPath)
	if err != nil {
		return err
	}

	provider := querybuilder.Provider(planGraphVendor)
	if !provider.Valid() {
		return fmt.Errorf("unknown provider %q", planGraphVendor)
	}

	collector := diagnostics.NewCollector(log.Logger)
	ctx := search.NewSearchContext(planRootType, root, registry, cat, limits, collector)
	ctx.Classify()

	log.Info("pushdown analysis complete", "pushdownSafe", ctx.PushdownSafe(), "indexAttrs", len(ctx.IndexFiltered), "graphAttrs", len(ctx.GraphFiltered))

	fmt.Println("=== index query ===")
	if ctx.PushdownSafe() {
		indexResult, err := search.EmitIndexQuery(ctx)
		if err != nil {
			return fmt.Errorf("emitting index query: %w", err)
		}
		fmt.Println(indexResult.Query)
	} else {
		fmt.Println("(skipped: pushdown unsafe, the full AST is evaluated by the graph pass)")
	}

	builder := querybuilder.NewCypherBuilder(provider, planGraphAlias)
	graphResult, err := search.EmitGraphQuery(ctx, builder)
	if err != nil {
		return fmt.Errorf("emitting graph query: %w", err)
	}
	text, params := graphResult.Builder.Build()
	fmt.Println("\n=== graph query ===")
	fmt.Println(text)
	printJSON(params)

	gremlinResult, err := search.EmitGremlinQuery(ctx)
	if err != nil {
		return fmt.Errorf("emitting gremlin fragment: %w", err)
	}
	fmt.Println("\n=== gremlin fragment ===")
	fmt.Println(gremlinResult.Fragment)
	printJSON(gremlinResult.Bindings)

	if entries := collector.Entries(); len(entries) > 0 {
		fmt.Println("\n=== diagnostics ===")
		for _, d := range entries {
			fmt.Printf("[%s] %s: %s (%s)\n", d.Kind, d.Emitter, d.Message, d.Attribute)
		}
	}

	return nil
}

func printJSON(v any) {
	enc, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encoding output: %v\n", err)
		return
	}
	fmt.Println(string(enc))
}
