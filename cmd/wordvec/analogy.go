package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wordvec/wordvec/internal"
)

func NewAnalogyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analogy [table] <a> <b> <c>",
		Short: "Solve a is to b as c is to ?",
		Long:  `Evaluate the analogy expression b - a + c and report its nearest neighbors.`,
		Args:  cobra.RangeArgs(3, 4),
		RunE:  runAnalogy,
	}

	cmd.Flags().String("metric", "", "Comparison metric (cosine|euclidean)")
	cmd.Flags().IntP("top", "n", 0, "Number of neighbors to report")
	return cmd
}

func runAnalogy(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	path, words, err := a.resolveTable(args)
	if err != nil {
		return err
	}
	if len(words) != 3 {
		return fmt.Errorf("analogy needs exactly three words, got %d", len(words))
	}

	metric, err := a.metric(cmd)
	if err != nil {
		return err
	}

	table, err := a.loadTable(cmd, path)
	if err != nil {
		return err
	}

	svc := internal.NewQueryService(table, warnfFor(cmd))
	out, err := svc.Analogy(cmd.Context(), words[0], words[1], words[2], metric, a.topK(cmd))
	if errors.Is(err, internal.ErrEmptyInput) {
		infof(cmd, "no valid input words")
		return nil
	}
	if err != nil {
		return fmt.Errorf("analogy: %w", err)
	}

	return printNeighbors(cmd, out.Neighbors, metric)
}
