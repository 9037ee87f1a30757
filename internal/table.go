package internal

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParseError reports a malformed row in an embeddings file.
type ParseError struct {
	Path   string
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
}

// Table is an immutable-after-load word embedding table. Insertion
// order is preserved so scans over the table are deterministic.
type Table struct {
	dim     int
	vectors map[string]Vector
	words   []string
}

func NewTable(dim int) *Table {
	return &Table{
		dim:     dim,
		vectors: make(map[string]Vector),
	}
}

// Put adds or replaces a word's vector. On replace the word keeps its
// original position.
func (t *Table) Put(word string, vec Vector) error {
	if t.dim == 0 {
		t.dim = len(vec)
	}
	if len(vec) != t.dim {
		return ErrDimensionMismatch
	}
	if _, exists := t.vectors[word]; !exists {
		t.words = append(t.words, word)
	}
	t.vectors[word] = vec
	return nil
}

func (t *Table) Vector(word string) (Vector, bool) {
	vec, ok := t.vectors[word]
	return vec, ok
}

func (t *Table) Contains(word string) bool {
	_, ok := t.vectors[word]
	return ok
}

func (t *Table) Len() int {
	return len(t.words)
}

func (t *Table) Dimension() int {
	return t.dim
}

// Words returns the vocabulary in insertion order. The caller must not
// modify the returned slice.
func (t *Table) Words() []string {
	return t.words
}

// LoadOptions controls table parsing.
type LoadOptions struct {
	// Dimension pins the expected vector length. Zero means the first
	// accepted row establishes it.
	Dimension int
	// Strict makes any malformed row abort the load. Otherwise the row
	// is skipped and reported through Warnf.
	Strict bool
	Warnf  func(format string, args ...any)
}

// LoadTable reads a whitespace-delimited embeddings file: one word per
// line followed by its vector components.
func LoadTable(path string, opts LoadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open embeddings: %w", err)
	}
	defer f.Close()

	warnf := opts.Warnf
	if warnf == nil {
		warnf = func(string, ...any) {}
	}

	table := NewTable(opts.Dimension)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		word := fields[0]
		vec, reason := parseRow(fields[1:], table.dim)
		if reason != "" {
			perr := &ParseError{Path: path, Line: lineNo, Reason: reason}
			if opts.Strict {
				return nil, perr
			}
			warnf("skipping row: %v", perr)
			continue
		}

		// Last occurrence wins on duplicate words.
		if err := table.Put(word, vec); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read embeddings: %w", err)
	}

	return table, nil
}

// parseRow parses the numeric fields of one row. expectDim of zero
// accepts any nonzero length; the row then establishes the dimension.
func parseRow(fields []string, expectDim int) (Vector, string) {
	if len(fields) == 0 {
		return nil, "no vector components"
	}
	if expectDim > 0 && len(fields) != expectDim {
		return nil, fmt.Sprintf("expected %d components, got %d", expectDim, len(fields))
	}

	vec := make(Vector, len(fields))
	for i, s := range fields {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Sprintf("bad component %q", s)
		}
		vec[i] = v
	}
	return vec, ""
}
