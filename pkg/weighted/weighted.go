// Package weighted implements mastery-based roulette selection: items that
// are answered wrongly more often carry more weight and are drawn more often.
package weighted

import (
	"math/rand/v2"
)

const (
	// NeutralSuccessRate is the success rate reported for an item that has
	// never been reviewed.
	NeutralSuccessRate = 0.5

	// NewItemWeight is assigned directly to items without attempts. It is
	// not derived from NeutralSuccessRate: new items are drawn as often as
	// items with a 0% success rate.
	NewItemWeight = 10.0

	smoothing = 0.1
)

// Stats holds the recorded review outcomes of one item.
type Stats struct {
	Correct   int
	Incorrect int
}

// Attempts returns the number of scored reviews.
func (s Stats) Attempts() int {
	return s.Correct + s.Incorrect
}

// SuccessRate returns the fraction of correct answers in [0, 1].
func SuccessRate(s Stats) float64 {
	total := s.Attempts()
	if total <= 0 {
		return NeutralSuccessRate
	}
	return float64(s.Correct) / float64(total)
}

// Weight returns the relative draw likelihood for an item.
//
//	no attempts      -> 10.0
//	success rate 0.0 -> 1 / 0.1 = 10.0
//	success rate 0.5 -> 1 / 0.6 ≈ 1.67
//	success rate 1.0 -> 1 / 1.1 ≈ 0.91
func Weight(s Stats) float64 {
	if s.Attempts() <= 0 {
		return NewItemWeight
	}
	return 1 / (SuccessRate(s) + smoothing)
}

// Source yields uniformly distributed values in [0, 1).
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// DefaultSource returns the process-wide math/rand/v2 generator.
func DefaultSource() Source {
	return globalSource{}
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func() float64

func (f SourceFunc) Float64() float64 { return f() }

// Selector draws indices proportionally to their weights.
type Selector struct {
	src Source
}

// NewSelector returns a selector backed by src, or DefaultSource when src is nil.
func NewSelector(src Source) *Selector {
	if src == nil {
		src = DefaultSource()
	}
	return &Selector{src: src}
}

// Pick returns the index chosen by a cumulative-weight walk, or -1 when
// weights is empty. The walk subtracts each weight from r = u*total in
// order and stops at the first index where r drops to zero or below; if
// rounding leaves r positive after the last weight, the last index wins.
func (s *Selector) Pick(weights []float64) int {
	if len(weights) == 0 {
		return -1
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := s.src.Float64() * total
	for i, w := range weights {
		r -= w
		if r <= 0 {
			return i
		}
	}
	return len(weights) - 1
}

// PickStats is Pick over Weight(stats[i]).
func (s *Selector) PickStats(stats []Stats) int {
	weights := make([]float64, len(stats))
	for i, st := range stats {
		weights[i] = Weight(st)
	}
	return s.Pick(weights)
}
