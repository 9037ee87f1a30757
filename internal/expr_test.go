package internal

import (
	"errors"
	"testing"
)

func analogyTable(t *testing.T) *Table {
	t.Helper()
	return buildTable(t, [][2]any{
		{"king", Vector{1, 0}},
		{"queen", Vector{0.9, 0.1}},
		{"man", Vector{0.1, 1}},
	})
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]CombineMode{
		"expression": ModeExpression,
		"sum":        ModeSum,
		"Average":    ModeAverage,
	} {
		got, err := ParseMode(in)
		if err != nil {
			t.Fatalf("ParseMode(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseMode(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseMode("median"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("ParseMode error = %v, want ErrUnknownMode", err)
	}
}

func TestCombineExpression(t *testing.T) {
	table := analogyTable(t)

	vec, stats, err := Combine(table, []string{"king", "-", "man", "+", "queen"}, ModeExpression, nil)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if !vectorsAlmostEqual(vec, Vector{1.8, -0.9}) {
		t.Errorf("king - man + queen = %v, want [1.8 -0.9]", vec)
	}
	if len(stats.Known) != 3 || len(stats.Skipped) != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestCombineExpressionSignPersists(t *testing.T) {
	table := buildTable(t, [][2]any{
		{"a", Vector{1, 0}},
		{"b", Vector{0, 1}},
		{"c", Vector{1, 1}},
	})

	// The sign set by "-" applies to every following word until changed.
	vec, _, err := Combine(table, []string{"a", "-", "b", "c"}, ModeExpression, nil)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if !vectorsAlmostEqual(vec, Vector{0, -2}) {
		t.Errorf("a - b c = %v, want [0 -2]", vec)
	}
}

func TestCombineExpressionConsecutiveOperators(t *testing.T) {
	table := analogyTable(t)

	// "- +" leaves the pending sign positive; no error.
	vec, _, err := Combine(table, []string{"king", "-", "+", "queen"}, ModeExpression, nil)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if !vectorsAlmostEqual(vec, Vector{1.9, 0.1}) {
		t.Errorf("king - + queen = %v, want [1.9 0.1]", vec)
	}
}

func TestCombineExpressionUnknownWordSkipped(t *testing.T) {
	table := analogyTable(t)

	var warned int
	vec, stats, err := Combine(table, []string{"king", "+", "zzz"}, ModeExpression, func(string, ...any) {
		warned++
	})
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if warned != 1 {
		t.Errorf("warned %d times, want 1", warned)
	}
	if len(stats.Skipped) != 1 || stats.Skipped[0] != "zzz" {
		t.Errorf("skipped = %v", stats.Skipped)
	}

	// The result equals king's vector alone.
	king, _ := table.Vector("king")
	if !vectorsAlmostEqual(vec, king) {
		t.Errorf("king + zzz = %v, want %v", vec, king)
	}
}

func TestCombineExpressionAllUnknown(t *testing.T) {
	table := analogyTable(t)

	_, _, err := Combine(table, []string{"xx", "+", "yy"}, ModeExpression, nil)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("error = %v, want ErrEmptyInput", err)
	}
}

func TestCombineSum(t *testing.T) {
	table := analogyTable(t)

	vec, _, err := Combine(table, []string{"king", "queen"}, ModeSum, nil)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if !vectorsAlmostEqual(vec, Vector{1.9, 0.1}) {
		t.Errorf("sum = %v, want [1.9 0.1]", vec)
	}
}

func TestCombineAverage(t *testing.T) {
	table := buildTable(t, [][2]any{
		{"a", Vector{1, 0}},
		{"b", Vector{0, 1}},
	})

	vec, _, err := Combine(table, []string{"a", "b"}, ModeAverage, nil)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if !vectorsAlmostEqual(vec, Vector{0.5, 0.5}) {
		t.Errorf("average = %v, want [0.5 0.5]", vec)
	}
}

func TestCombineSumRejectsOperators(t *testing.T) {
	table := analogyTable(t)

	for _, mode := range []CombineMode{ModeSum, ModeAverage} {
		if _, _, err := Combine(table, []string{"king", "+", "queen"}, mode, nil); err == nil {
			t.Errorf("%s mode should reject operator tokens", mode)
		}
	}
}

func TestCombineUnknownWordsInAggregateModes(t *testing.T) {
	table := analogyTable(t)

	vec, stats, err := Combine(table, []string{"king", "zzz"}, ModeAverage, nil)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	king, _ := table.Vector("king")
	if !vectorsAlmostEqual(vec, king) {
		t.Errorf("average of king alone = %v, want %v", vec, king)
	}
	if len(stats.Skipped) != 1 {
		t.Errorf("skipped = %v", stats.Skipped)
	}

	_, _, err = Combine(table, []string{"zzz"}, ModeSum, nil)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("error = %v, want ErrEmptyInput", err)
	}
}
