package internal

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
)

// Metric selects how candidate vectors are scored against the target.
type Metric int

const (
	// MetricCosine maximizes cosine similarity.
	MetricCosine Metric = iota
	// MetricEuclidean minimizes L2 distance.
	MetricEuclidean
)

func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(s) {
	case "cosine":
		return MetricCosine, nil
	case "euclidean":
		return MetricEuclidean, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, s)
	}
}

func (m Metric) Label() string {
	if m == MetricEuclidean {
		return "euclidean"
	}
	return "cosine"
}

// Score computes the metric between two equal-length vectors.
func (m Metric) Score(a, b Vector) (float64, error) {
	if m == MetricEuclidean {
		return EuclideanDistance(a, b)
	}
	return CosineSimilarity(a, b)
}

// better reports whether score a beats score b under the metric's
// comparison direction.
func (m Metric) better(a, b float64) bool {
	if m == MetricEuclidean {
		return a < b
	}
	return a > b
}

// Neighbor is one scored vocabulary entry.
type Neighbor struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// Tables at least this large are scanned in parallel.
const parallelScanThreshold = 50000

// Nearest scans every table entry not in exclude and returns the one
// with the best score. ok is false when the table is empty, the target
// dimension does not match, or every entry is excluded. Ties go to the
// earlier-loaded word.
func Nearest(t *Table, target Vector, exclude map[string]struct{}, m Metric) (Neighbor, bool) {
	if t.Len() == 0 || len(target) != t.Dimension() {
		return Neighbor{}, false
	}
	if t.Len() >= parallelScanThreshold {
		return nearestParallel(t, target, exclude, m)
	}

	best := Neighbor{}
	found := false
	for _, word := range t.Words() {
		if _, skip := exclude[word]; skip {
			continue
		}
		vec, _ := t.Vector(word)
		score, _ := m.Score(target, vec)
		if !found || m.better(score, best.Score) {
			best = Neighbor{Word: word, Score: score}
			found = true
		}
	}
	return best, found
}

// nearestParallel partitions the vocabulary across workers and reduces
// the per-partition bests. Equal scores prefer the earlier partition,
// so the result matches the sequential scan.
func nearestParallel(t *Table, target Vector, exclude map[string]struct{}, m Metric) (Neighbor, bool) {
	words := t.Words()
	workers := runtime.NumCPU()
	if workers > len(words) {
		workers = len(words)
	}

	type partial struct {
		best  Neighbor
		found bool
	}
	partials := make([]partial, workers)
	chunk := (len(words) + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > len(words) {
			hi = len(words)
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			var p partial
			for _, word := range words[lo:hi] {
				if _, skip := exclude[word]; skip {
					continue
				}
				vec, _ := t.Vector(word)
				score, _ := m.Score(target, vec)
				if !p.found || m.better(score, p.best.Score) {
					p.best = Neighbor{Word: word, Score: score}
					p.found = true
				}
			}
			partials[w] = p
		}(w, lo, hi)
	}
	wg.Wait()

	best := Neighbor{}
	found := false
	for _, p := range partials {
		if !p.found {
			continue
		}
		if !found || m.better(p.best.Score, best.Score) {
			best = p.best
			found = true
		}
	}
	return best, found
}

// NearestK returns up to k neighbors ordered best-first.
func NearestK(t *Table, target Vector, exclude map[string]struct{}, m Metric, k int) []Neighbor {
	if k <= 0 || t.Len() == 0 || len(target) != t.Dimension() {
		return nil
	}
	if k == 1 {
		best, ok := Nearest(t, target, exclude, m)
		if !ok {
			return nil
		}
		return []Neighbor{best}
	}

	results := make([]Neighbor, 0, k)
	for _, word := range t.Words() {
		if _, skip := exclude[word]; skip {
			continue
		}
		vec, _ := t.Vector(word)
		score, _ := m.Score(target, vec)

		// Equal scores slot after earlier-loaded words, matching Nearest.
		at := sort.Search(len(results), func(i int) bool {
			return m.better(score, results[i].Score)
		})
		if at >= k {
			continue
		}
		results = insertBounded(results, k, at, Neighbor{Word: word, Score: score})
	}
	return results
}

func insertBounded(results []Neighbor, limit, at int, n Neighbor) []Neighbor {
	if len(results) < limit {
		results = append(results, Neighbor{})
	}
	copy(results[at+1:], results[at:len(results)-1])
	results[at] = n
	return results
}
