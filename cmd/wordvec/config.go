package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wordvec/wordvec/internal"
)

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the wordvec config file",
	}

	cmd.AddCommand(newConfigShowCmd(), newConfigInitCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(a.cfg)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "table_path: %s\n", a.cfg.TablePath)
			fmt.Fprintf(cmd.OutOrStdout(), "dimension: %d\n", a.cfg.Dimension)
			fmt.Fprintf(cmd.OutOrStdout(), "metric: %s\n", a.cfg.Metric)
			fmt.Fprintf(cmd.OutOrStdout(), "mode: %s\n", a.cfg.Mode)
			fmt.Fprintf(cmd.OutOrStdout(), "top_k: %d\n", a.cfg.TopK)
			fmt.Fprintf(cmd.OutOrStdout(), "strict: %t\n", a.cfg.Strict)
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current defaults",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}

	cmd.Flags().String("table", "", "Default embeddings file path")
	return cmd
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		cfgPath = internal.DefaultConfigPath()
	}
	if cfgPath == "" {
		return fmt.Errorf("no config path available")
	}

	cfg := internal.DefaultConfig()
	if table, _ := cmd.Flags().GetString("table"); table != "" {
		cfg.TablePath = table
	}

	if err := internal.SaveConfig(cfgPath, cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", cfgPath)
	return nil
}
