package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wordvec/wordvec/internal"
)

func NewQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query [table] <word|+|-> ...",
		Short: "Combine word vectors and find their nearest neighbors",
		Long: `Combine the vectors of the given words and report the vocabulary words
closest to the result. In expression mode, + and - tokens set the sign
applied to the words that follow; sum and average modes take plain words.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runQuery,
	}

	cmd.Flags().StringP("mode", "m", "", "Combine mode (expression|sum|average)")
	cmd.Flags().String("metric", "", "Comparison metric (cosine|euclidean)")
	cmd.Flags().IntP("top", "n", 0, "Number of neighbors to report")
	cmd.Flags().Bool("include-inputs", false, "Allow input words as results")
	return cmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	path, tokens, err := a.resolveTable(args)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return fmt.Errorf("no input words given")
	}

	metric, err := a.metric(cmd)
	if err != nil {
		return err
	}
	mode, err := a.mode(cmd)
	if err != nil {
		return err
	}

	table, err := a.loadTable(cmd, path)
	if err != nil {
		return err
	}

	includeInputs, _ := cmd.Flags().GetBool("include-inputs")
	svc := internal.NewQueryService(table, warnfFor(cmd))
	out, err := svc.Query(cmd.Context(), internal.QueryInput{
		Tokens:        tokens,
		Mode:          mode,
		Metric:        metric,
		TopK:          a.topK(cmd),
		IncludeInputs: includeInputs,
	})
	if errors.Is(err, internal.ErrEmptyInput) {
		infof(cmd, "no valid input words")
		return nil
	}
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}

	return printNeighbors(cmd, out.Neighbors, metric)
}

func printNeighbors(cmd *cobra.Command, neighbors []internal.Neighbor, metric internal.Metric) error {
	if len(neighbors) == 0 {
		infof(cmd, "no result: every candidate was excluded or the table is empty")
		return nil
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(neighbors)
	}

	for _, n := range neighbors {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %.4f\n", n.Word, metric.Label(), n.Score)
	}
	return nil
}
