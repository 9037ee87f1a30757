package internal

import (
	"context"
	"fmt"
)

// QueryService runs the combine-then-search pipeline over one loaded
// table. The table is never mutated.
type QueryService struct {
	table *Table
	warnf func(format string, args ...any)
}

func NewQueryService(table *Table, warnf func(format string, args ...any)) *QueryService {
	return &QueryService{table: table, warnf: warnf}
}

func (s *QueryService) Table() *Table {
	return s.table
}

type QueryInput struct {
	Tokens []string
	Mode   CombineMode
	Metric Metric
	// TopK defaults to 1 when zero.
	TopK int
	// IncludeInputs lets the input words themselves appear as results.
	IncludeInputs bool
}

type QueryOutput struct {
	Neighbors []Neighbor
	// Skipped lists input words absent from the table.
	Skipped []string
}

// Query combines the input tokens into one vector and returns its
// nearest vocabulary entries. ErrEmptyInput is returned when no input
// word is in the table; an empty Neighbors slice means every candidate
// was excluded.
func (s *QueryService) Query(ctx context.Context, in QueryInput) (*QueryOutput, error) {
	vec, stats, err := Combine(s.table, in.Tokens, in.Mode, s.warnf)
	if err != nil {
		return nil, err
	}

	exclude := make(map[string]struct{})
	if !in.IncludeInputs {
		for _, word := range stats.Known {
			exclude[word] = struct{}{}
		}
	}

	k := in.TopK
	if k < 1 {
		k = 1
	}

	return &QueryOutput{
		Neighbors: NearestK(s.table, vec, exclude, in.Metric, k),
		Skipped:   stats.Skipped,
	}, nil
}

// Analogy answers "a is to b as c is to ?" by evaluating b - a + c.
func (s *QueryService) Analogy(ctx context.Context, a, b, c string, metric Metric, k int) (*QueryOutput, error) {
	return s.Query(ctx, QueryInput{
		Tokens: []string{b, "-", a, "+", c},
		Mode:   ModeExpression,
		Metric: metric,
		TopK:   k,
	})
}

// Nearest returns the words closest to one vocabulary entry, excluding
// the entry itself.
func (s *QueryService) Nearest(ctx context.Context, word string, metric Metric, k int) ([]Neighbor, error) {
	vec, ok := s.table.Vector(word)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWord, word)
	}

	exclude := map[string]struct{}{word: {}}
	return NearestK(s.table, vec, exclude, metric, k), nil
}
