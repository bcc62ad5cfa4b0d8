// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/match-score/internal/config"
	"github.com/pdiddy/match-score/internal/contacts"
	"github.com/pdiddy/match-score/internal/match"
	"github.com/pdiddy/match-score/internal/score"
	"github.com/pdiddy/match-score/internal/similarity"
	"github.com/pdiddy/match-score/internal/store"
	"github.com/pdiddy/match-score/pkg/types"
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Score every pair of contacts in a CSV file",
	Long: `Find loads contacts from --input, renames columns with the dataset's
mapping (selected by --dataset or the input file name), scores every pair of
records, and writes one row per pair to --output.

Use --min-accuracy to write only Medium or High pairs and --store to keep the
run in a results database for the results command.`,
	RunE: runFind,
}

// findOptions are the per-run settings taken from flags.
type findOptions struct {
	Input       string
	Dataset     string
	Output      string
	Format      contacts.Format
	MinAccuracy types.Accuracy
}

func runFind(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	opts, err := findOptsFromFlags(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Changed("store") {
		cfg.Store.Path, _ = cmd.Flags().GetString("store")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := runPipeline(ctx, cfg, opts, log, os.Stdout)
	if err != nil {
		log.Error("find failed", zap.Error(err))
		return err
	}

	printSummary(os.Stdout, match.Summarize(results))
	return nil
}

func findOptsFromFlags(cmd *cobra.Command) (findOptions, error) {
	input, _ := cmd.Flags().GetString("input")
	dataset, _ := cmd.Flags().GetString("dataset")
	output, _ := cmd.Flags().GetString("output")
	formatName, _ := cmd.Flags().GetString("format")
	minAccuracy, _ := cmd.Flags().GetString("min-accuracy")

	format, err := contacts.ParseFormat(formatName)
	if err != nil {
		return findOptions{}, err
	}
	floor, err := types.ParseAccuracy(minAccuracy)
	if err != nil {
		return findOptions{}, err
	}
	if output == "" {
		output = "output." + string(format)
	}
	return findOptions{
		Input:       input,
		Dataset:     dataset,
		Output:      output,
		Format:      format,
		MinAccuracy: floor,
	}, nil
}

// runPipeline loads the input, scores it, writes the output file, and
// saves the run when a store path is configured. It returns every scored
// pair; only the output file honors MinAccuracy.
func runPipeline(ctx context.Context, cfg types.MatchConfig, opts findOptions, log *zap.Logger, stdout io.Writer) ([]types.MatchResult, error) {
	records, err := loadRecords(cfg, opts, log)
	if err != nil {
		return nil, err
	}

	matcher, err := buildMatcher(cfg, log)
	if err != nil {
		return nil, err
	}

	results, err := matcher.FindDuplicates(ctx, records)
	if err != nil {
		return nil, err
	}

	written := match.Filter(results, opts.MinAccuracy)
	if err := contacts.Write(opts.Output, opts.Format, written); err != nil {
		return nil, err
	}
	fmt.Fprintf(stdout, "Results saved to %s (%d rows)\n", opts.Output, len(written))

	if cfg.Store.Path != "" {
		st, err := store.NewStore(cfg.Store)
		if err != nil {
			return nil, err
		}
		defer st.Close()

		run, err := st.SaveRun(ctx, opts.Input, results)
		if err != nil {
			return nil, err
		}
		log.Info("run stored", zap.String("run", run.ID), zap.String("store", cfg.Store.Path))
		fmt.Fprintf(stdout, "Run %s saved to %s\n", run.ID, cfg.Store.Path)
	}
	return results, nil
}

func loadRecords(cfg types.MatchConfig, opts findOptions, log *zap.Logger) ([]types.Record, error) {
	if opts.Input == "" {
		return nil, fmt.Errorf("--input is required")
	}

	name := opts.Dataset
	if name == "" {
		name = filepath.Base(opts.Input)
	}
	ds, ok := cfg.Dataset(name)
	switch {
	case !ok && opts.Dataset != "":
		return nil, fmt.Errorf("no column mapping defined for dataset %q", opts.Dataset)
	case !ok:
		log.Warn("no column mapping defined for file, using its headers as field names", zap.String("file", name))
	}

	var delimiter rune
	if ds.Delimiter != "" {
		delimiter = []rune(ds.Delimiter)[0]
	}

	records, err := contacts.LoadCSV(opts.Input, contacts.LoadOptions{
		Columns:   ds.Columns,
		Delimiter: delimiter,
		IDField:   cfg.IDField,
	})
	if err != nil {
		return nil, err
	}
	log.Info("contacts loaded", zap.String("file", opts.Input), zap.Int("records", len(records)))
	return records, nil
}

// buildMatcher wires the configured fields into a registry, aggregator, and
// categorizer.
func buildMatcher(cfg types.MatchConfig, log *zap.Logger) (*match.Matcher, error) {
	registry, err := similarity.RegistryFromConfig(cfg.Fields)
	if err != nil {
		return nil, err
	}

	var aggOpts []score.Option
	if cfg.NormalizeWeights {
		aggOpts = append(aggOpts, score.WithNormalizedWeights())
	}
	agg, err := score.NewAggregator(cfg.Weights(), registry, aggOpts...)
	if err != nil {
		return nil, err
	}
	if !config.Calibrated(cfg) {
		log.Warn("field weights do not sum to 1.0; accuracy thresholds assume they do",
			zap.Float64("total_weight", agg.TotalWeight()))
	}

	categorizer, err := score.NewCategorizer(cfg.Thresholds.High, cfg.Thresholds.Medium)
	if err != nil {
		return nil, err
	}

	return match.New(agg, categorizer,
		match.WithWorkers(cfg.Workers),
		match.WithLogger(log),
	), nil
}

func init() {
	findCmd.Flags().String("input", "", "contact CSV file to scan (required)")
	findCmd.Flags().String("dataset", "", "column mapping to apply (default: the input file name)")
	findCmd.Flags().String("output", "", "results file (default: output.<format>)")
	findCmd.Flags().String("format", "csv", "output format: csv, json, or yaml")
	findCmd.Flags().Int("workers", 1, "goroutines scoring pairs in parallel")
	findCmd.Flags().String("store", "", "results database to save the run in")
	findCmd.Flags().String("min-accuracy", "Low", "lowest label written to the output: Low, Medium, or High")
	findCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(findCmd)
}
