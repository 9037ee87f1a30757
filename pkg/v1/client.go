// Package v1 provides programmatic access to word-vector queries.
package v1

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/wordvec/wordvec/internal"
)

// Client loads one embedding table and answers queries over it. The
// table is loaded lazily on first use and never mutated afterwards.
type Client struct {
	tablePath string
	loadOpts  internal.LoadOptions
	metric    internal.Metric

	once    sync.Once
	loadErr error
	svc     *internal.QueryService
}

// New creates a new Client with the given options. The table path
// falls back to the config file's table_path when not set explicitly.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		metric: "cosine",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.tablePath == "" {
		fileCfg, err := internal.LoadConfig("")
		if err != nil {
			return nil, err
		}
		cfg.tablePath = fileCfg.TablePath
	}
	if cfg.tablePath == "" {
		return nil, fmt.Errorf("no embeddings file configured")
	}

	metric, err := internal.ParseMetric(cfg.metric)
	if err != nil {
		return nil, err
	}

	return &Client{
		tablePath: cfg.tablePath,
		loadOpts: internal.LoadOptions{
			Dimension: cfg.dimension,
			Strict:    cfg.strict,
			Warnf:     cfg.warnf,
		},
		metric: metric,
	}, nil
}

// Load reads the embedding table eagerly. Calling it is optional; the
// first query loads on demand.
func (c *Client) Load(ctx context.Context) error {
	return c.ensure()
}

func (c *Client) ensure() error {
	c.once.Do(func() {
		table, err := internal.LoadTable(c.tablePath, c.loadOpts)
		if err != nil {
			c.loadErr = err
			return
		}
		c.svc = internal.NewQueryService(table, c.loadOpts.Warnf)
	})
	return c.loadErr
}

// Query evaluates a whitespace-separated expression like
// "king - man + queen" and returns the k nearest neighbors. The input
// words themselves are excluded from the results.
func (c *Client) Query(ctx context.Context, expr string, k int) ([]Neighbor, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}

	out, err := c.svc.Query(ctx, internal.QueryInput{
		Tokens: strings.Fields(expr),
		Mode:   internal.ModeExpression,
		Metric: c.metric,
		TopK:   k,
	})
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return toNeighbors(out.Neighbors), nil
}

// Analogy answers "a is to b as c is to ?".
func (c *Client) Analogy(ctx context.Context, a, b, d string, k int) ([]Neighbor, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}

	out, err := c.svc.Analogy(ctx, a, b, d, c.metric, k)
	if err != nil {
		return nil, fmt.Errorf("analogy: %w", err)
	}
	return toNeighbors(out.Neighbors), nil
}

// Nearest returns the k words closest to one vocabulary entry.
func (c *Client) Nearest(ctx context.Context, word string, k int) ([]Neighbor, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}

	neighbors, err := c.svc.Nearest(ctx, word, c.metric, k)
	if err != nil {
		return nil, fmt.Errorf("nearest: %w", err)
	}
	return toNeighbors(neighbors), nil
}

func toNeighbors(in []internal.Neighbor) []Neighbor {
	out := make([]Neighbor, 0, len(in))
	for _, n := range in {
		out = append(out, Neighbor{Word: n.Word, Score: n.Score})
	}
	return out
}
