package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wordvec/wordvec/internal"
)

func NewNearestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nearest [table] <word>",
		Short: "List the words closest to one vocabulary entry",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runNearest,
	}

	cmd.Flags().String("metric", "", "Comparison metric (cosine|euclidean)")
	cmd.Flags().IntP("top", "n", 10, "Number of neighbors to report")
	return cmd
}

func runNearest(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	path, words, err := a.resolveTable(args)
	if err != nil {
		return err
	}
	if len(words) != 1 {
		return fmt.Errorf("nearest needs exactly one word, got %d", len(words))
	}

	metric, err := a.metric(cmd)
	if err != nil {
		return err
	}

	table, err := a.loadTable(cmd, path)
	if err != nil {
		return err
	}

	k, _ := cmd.Flags().GetInt("top")
	svc := internal.NewQueryService(table, warnfFor(cmd))
	neighbors, err := svc.Nearest(cmd.Context(), words[0], metric, k)
	if errors.Is(err, internal.ErrUnknownWord) {
		infof(cmd, "%q is not in the vocabulary", words[0])
		return nil
	}
	if err != nil {
		return fmt.Errorf("nearest: %w", err)
	}

	return printNeighbors(cmd, neighbors, metric)
}
