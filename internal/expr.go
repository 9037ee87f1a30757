package internal

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// CombineMode selects how input tokens are folded into one vector.
type CombineMode int

const (
	// ModeExpression interprets +/- tokens as sign changes.
	ModeExpression CombineMode = iota
	// ModeSum adds every word vector.
	ModeSum
	// ModeAverage averages every word vector.
	ModeAverage
)

func ParseMode(s string) (CombineMode, error) {
	switch strings.ToLower(s) {
	case "expression":
		return ModeExpression, nil
	case "sum":
		return ModeSum, nil
	case "average":
		return ModeAverage, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

func (m CombineMode) String() string {
	switch m {
	case ModeSum:
		return "sum"
	case ModeAverage:
		return "average"
	default:
		return "expression"
	}
}

// CombineStats reports which input words took part in a combination.
type CombineStats struct {
	// Known words found in the table, in input order.
	Known []string
	// Skipped words absent from the table.
	Skipped []string
}

// Combine folds a token sequence into a single query vector. Unknown
// words are reported through warnf and skipped rather than failing the
// whole input. Returns ErrEmptyInput when no known word remains.
func Combine(t *Table, tokens []string, mode CombineMode, warnf func(format string, args ...any)) (Vector, CombineStats, error) {
	if warnf == nil {
		warnf = func(string, ...any) {}
	}
	if mode == ModeExpression {
		return combineExpression(t, tokens, warnf)
	}

	var stats CombineStats
	vecs := make([]Vector, 0, len(tokens))
	for _, tok := range tokens {
		if tok == "+" || tok == "-" {
			return nil, stats, fmt.Errorf("operator %q not allowed in %s mode", tok, mode)
		}
		vec, ok := t.Vector(tok)
		if !ok {
			warnf("%q not in vocabulary, skipping", tok)
			stats.Skipped = append(stats.Skipped, tok)
			continue
		}
		stats.Known = append(stats.Known, tok)
		vecs = append(vecs, vec)
	}
	if len(vecs) == 0 {
		return nil, stats, ErrEmptyInput
	}

	var (
		out Vector
		err error
	)
	if mode == ModeAverage {
		out, err = Average(vecs)
	} else {
		out, err = Sum(vecs)
	}
	return out, stats, err
}

// combineExpression keeps a running sign: a +/- token sets the sign for
// the word tokens that follow it, and consecutive operators simply
// overwrite each other.
func combineExpression(t *Table, tokens []string, warnf func(format string, args ...any)) (Vector, CombineStats, error) {
	var stats CombineStats
	acc := ZeroVector(t.Dimension())
	sign := 1.0

	for _, tok := range tokens {
		switch tok {
		case "+":
			sign = 1.0
		case "-":
			sign = -1.0
		default:
			vec, ok := t.Vector(tok)
			if !ok {
				warnf("%q not in vocabulary, skipping", tok)
				stats.Skipped = append(stats.Skipped, tok)
				continue
			}
			floats.AddScaled(acc, sign, vec)
			stats.Known = append(stats.Known, tok)
		}
	}

	if len(stats.Known) == 0 {
		return nil, stats, ErrEmptyInput
	}
	return acc, stats, nil
}
