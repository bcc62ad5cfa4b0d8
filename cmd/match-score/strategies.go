// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/match-score/internal/similarity"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List the built-in similarity strategies",
	Long: `Strategies prints the strategy kinds a field may name in the
fields section of match-score.yaml.`,
	Run: func(cmd *cobra.Command, args []string) {
		printStrategies(os.Stdout)
	},
}

func printStrategies(w io.Writer) {
	for _, k := range similarity.Kinds() {
		fmt.Fprintf(w, "%-10s  %s\n", k.Name, k.Description)
	}
}

func init() {
	rootCmd.AddCommand(strategiesCmd)
}
