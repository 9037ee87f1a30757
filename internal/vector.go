package internal

import (
	"errors"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	ErrEmptyInput        = errors.New("no input vectors")
	ErrUnknownWord       = errors.New("word not in vocabulary")
	ErrUnknownMetric     = errors.New("unknown metric")
	ErrUnknownMode       = errors.New("unknown combine mode")
)

// Vector is a fixed-length word embedding.
type Vector []float64

func ZeroVector(dim int) Vector {
	return make(Vector, dim)
}

func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

func Add(a, b Vector) (Vector, error) {
	if len(a) != len(b) {
		return nil, ErrDimensionMismatch
	}
	out := a.Clone()
	floats.Add(out, b)
	return out, nil
}

func Sub(a, b Vector) (Vector, error) {
	if len(a) != len(b) {
		return nil, ErrDimensionMismatch
	}
	out := a.Clone()
	floats.Sub(out, b)
	return out, nil
}

func Sum(vecs []Vector) (Vector, error) {
	if len(vecs) == 0 {
		return nil, ErrEmptyInput
	}
	out := vecs[0].Clone()
	for _, v := range vecs[1:] {
		if len(v) != len(out) {
			return nil, ErrDimensionMismatch
		}
		floats.Add(out, v)
	}
	return out, nil
}

func Average(vecs []Vector) (Vector, error) {
	out, err := Sum(vecs)
	if err != nil {
		return nil, err
	}
	floats.Scale(1/float64(len(vecs)), out)
	return out, nil
}

// CosineSimilarity returns 0 when either vector has zero norm, so a
// degenerate input never divides by zero.
func CosineSimilarity(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0, nil
	}
	return floats.Dot(a, b) / (na * nb), nil
}

func EuclideanDistance(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}
	return floats.Distance(a, b, 2), nil
}
