package main

import (
	"bufio"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/wordvec/wordvec/internal"
)

func NewReplCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl [table]",
		Short: "Evaluate expressions interactively",
		Long: `Read one expression per line from stdin and print its nearest neighbors.
The embeddings file is watched and reloaded automatically when it changes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRepl,
	}

	cmd.Flags().StringP("mode", "m", "", "Combine mode (expression|sum|average)")
	cmd.Flags().String("metric", "", "Comparison metric (cosine|euclidean)")
	cmd.Flags().IntP("top", "n", 0, "Number of neighbors to report")
	cmd.Flags().Duration("debounce", 500*time.Millisecond, "Debounce window for table reloads")
	return cmd
}

func runRepl(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	path, _, err := a.resolveTable(args)
	if err != nil {
		return err
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
	svc := internal.NewQueryService(table, warnfFor(cmd))

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve table path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors replace files on save, which would
	// drop a watch on the file itself.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watch embeddings dir: %w", err)
	}

	infof(cmd, "loaded %d words (dimension %d), watching %s for changes", table.Len(), table.Dimension(), path)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-cmd.Context().Done():
				return
			}
		}
	}()

	debounce, _ := cmd.Flags().GetDuration("debounce")
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-cmd.Context().Done():
			return nil

		case line, ok := <-lines:
			if !ok {
				return nil
			}
			evalLine(cmd, svc, a, line, mode, metric)

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !shouldReload(event, absPath) {
				continue
			}
			if !pending {
				timer.Reset(debounce)
				pending = true
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			infof(cmd, "watch error: %v", err)

		case <-timer.C:
			pending = false
			reloaded, err := a.loadTable(cmd, path)
			if err != nil {
				infof(cmd, "reload failed, keeping previous table: %v", err)
				continue
			}
			svc = internal.NewQueryService(reloaded, warnfFor(cmd))
			infof(cmd, "reloaded %d words (dimension %d)", reloaded.Len(), reloaded.Dimension())
		}
	}
}

// shouldReload reports whether a watcher event means the embeddings
// file changed. Events for sibling files and chmod-only events do not
// trigger a reload.
func shouldReload(event fsnotify.Event, tablePath string) bool {
	if filepath.Clean(event.Name) != tablePath {
		return false
	}

	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func evalLine(cmd *cobra.Command, svc *internal.QueryService, a *app, line string, mode internal.CombineMode, metric internal.Metric) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return
	}

	out, err := svc.Query(cmd.Context(), internal.QueryInput{
		Tokens: tokens,
		Mode:   mode,
		Metric: metric,
		TopK:   a.topK(cmd),
	})
	if errors.Is(err, internal.ErrEmptyInput) {
		infof(cmd, "no valid input words")
		return
	}
	if err != nil {
		infof(cmd, "error: %v", err)
		return
	}

	if err := printNeighbors(cmd, out.Neighbors, metric); err != nil {
		infof(cmd, "error: %v", err)
	}
}
