package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wordvec/wordvec/internal"
)

// app holds the resolved configuration for one command run.
type app struct {
	cfg *internal.Config
}

func loadApp(cmd *cobra.Command) (*app, error) {
	cfgPath, _ := cmd.Flags().GetString("config")

	cfg, err := internal.LoadConfig(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return &app{cfg: cfg}, nil
}

// resolveTable splits the table path off the positional arguments. The
// first argument wins when it names an existing file; otherwise the
// configured default path is used and every argument stays a token.
func (a *app) resolveTable(args []string) (string, []string, error) {
	if len(args) > 0 {
		if info, err := os.Stat(args[0]); err == nil && !info.IsDir() {
			return args[0], args[1:], nil
		}
		// An argument with a path separator was meant as a table path;
		// falling back to the config would turn the typo into a token.
		if strings.ContainsRune(args[0], os.PathSeparator) {
			return "", nil, fmt.Errorf("embeddings file %q does not exist", args[0])
		}
	}
	if a.cfg.TablePath == "" {
		return "", nil, fmt.Errorf("no embeddings file: pass a path or set table_path in the config")
	}
	return a.cfg.TablePath, args, nil
}

func (a *app) loadTable(cmd *cobra.Command, path string) (*internal.Table, error) {
	strict, _ := cmd.Flags().GetBool("strict")
	dim, _ := cmd.Flags().GetInt("dim")
	if dim == 0 {
		dim = a.cfg.Dimension
	}

	table, err := internal.LoadTable(path, internal.LoadOptions{
		Dimension: dim,
		Strict:    strict || a.cfg.Strict,
		Warnf:     warnfFor(cmd),
	})
	if err != nil {
		return nil, fmt.Errorf("load embeddings: %w", err)
	}
	return table, nil
}

func (a *app) metric(cmd *cobra.Command) (internal.Metric, error) {
	name, _ := cmd.Flags().GetString("metric")
	if name == "" {
		name = a.cfg.Metric
	}
	return internal.ParseMetric(name)
}

func (a *app) mode(cmd *cobra.Command) (internal.CombineMode, error) {
	name, _ := cmd.Flags().GetString("mode")
	if name == "" {
		name = a.cfg.Mode
	}
	return internal.ParseMode(name)
}

func (a *app) topK(cmd *cobra.Command) int {
	k, _ := cmd.Flags().GetInt("top")
	if k < 1 {
		k = a.cfg.TopK
	}
	if k < 1 {
		k = 1
	}
	return k
}

// warnfFor routes diagnostics to the command's error stream; the final
// answer is the only thing written to stdout.
func warnfFor(cmd *cobra.Command) func(format string, args ...any) {
	return func(format string, args ...any) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: "+format+"\n", args...)
	}
}

func infof(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
}
