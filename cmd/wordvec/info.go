package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func NewInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info [table]",
		Short: "Show vocabulary size and vector dimension",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInfo,
	}
}

func runInfo(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	var path string
	switch {
	case len(args) == 1:
		path = args[0]
	case a.cfg.TablePath != "":
		path = a.cfg.TablePath
	default:
		return fmt.Errorf("no embeddings file: pass a path or set table_path in the config")
	}

	table, err := a.loadTable(cmd, path)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"path":      path,
			"words":     table.Len(),
			"dimension": table.Dimension(),
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "path: %s\n", path)
	fmt.Fprintf(cmd.OutOrStdout(), "words: %d\n", table.Len())
	fmt.Fprintf(cmd.OutOrStdout(), "dimension: %d\n", table.Dimension())
	return nil
}
