// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/match-score/internal/store"
	"github.com/pdiddy/match-score/pkg/types"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "List stored runs or show the matches of one run",
	Long: `Results reads the database written by find --store. With --list it
prints every stored run and with --delete it removes one; otherwise it prints the matches of --run (default:
the most recent run), optionally filtered by --accuracy.`,
	RunE: runResults,
}

func runResults(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	if cmd.Flags().Changed("store") {
		cfg.Store.Path, _ = cmd.Flags().GetString("store")
	}
	if cmd.Flags().Changed("max-results") {
		cfg.Store.MaxResults, _ = cmd.Flags().GetInt("max-results")
	}
	if cfg.Store.Path == "" {
		return fmt.Errorf("no results database: pass --store or set store.path")
	}

	st, err := store.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	if id, _ := cmd.Flags().GetString("delete"); id != "" {
		if err := st.DeleteRun(context.Background(), id); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Deleted run %s\n", id)
		return nil
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	list, _ := cmd.Flags().GetBool("list")
	if list {
		runs, err := st.ListRuns(context.Background())
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(os.Stdout, runs)
		}
		printRuns(os.Stdout, runs)
		return nil
	}

	opts, err := resultOptsFromFlags(cmd)
	if err != nil {
		return err
	}
	run, results, err := st.Results(context.Background(), opts)
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(os.Stdout, struct {
			Run     store.Run           `json:"run"`
			Results []types.MatchResult `json:"results"`
		}{run, results})
	}

	fmt.Fprintf(os.Stdout, "Run %s (%s, %s)\n\n", run.ID, run.Input, run.Summary)
	printResults(os.Stdout, results)
	return nil
}

func resultOptsFromFlags(cmd *cobra.Command) (store.QueryOptions, error) {
	runID, _ := cmd.Flags().GetString("run")
	accuracy, _ := cmd.Flags().GetString("accuracy")
	minScore, _ := cmd.Flags().GetFloat64("min-score")

	opts := store.QueryOptions{RunID: runID, MinScore: minScore}
	if accuracy != "" {
		a, err := types.ParseAccuracy(accuracy)
		if err != nil {
			return store.QueryOptions{}, err
		}
		opts.Accuracy = a
	}
	return opts, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	resultsCmd.Flags().String("store", "", "results database (default: store.path from config)")
	resultsCmd.Flags().String("run", "", "run ID (default: most recent run)")
	resultsCmd.Flags().String("accuracy", "", "show only pairs with this label: High, Medium, or Low")
	resultsCmd.Flags().Float64("min-score", 0, "show only pairs scoring at least this much")
	resultsCmd.Flags().Int("max-results", 0, "maximum number of results (default: store.max_results)")
	resultsCmd.Flags().Bool("list", false, "list stored runs instead of matches")
	resultsCmd.Flags().Bool("json", false, "output as JSON")
	resultsCmd.Flags().String("delete", "", "delete the run with this ID and its matches")

	rootCmd.AddCommand(resultsCmd)
}
