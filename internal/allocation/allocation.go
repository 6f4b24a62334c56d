// Package allocation redistributes a material's total quantity across its
// per-floor entries.
package allocation

import (
	"math"
	"sort"
)

// shareEpsilon absorbs float error in q/C*T so an exact integer share is
// not floored to the integer below it.
const shareEpsilon = 1e-9

type Outcome string

const (
	// Applied means Quantities holds the redistributed values.
	Applied Outcome = "applied"
	// ZeroBaseline means the current total is zero, so there is no split
	// to preserve. Quantities is an unchanged copy of the input.
	ZeroBaseline Outcome = "zero_baseline"
	// Empty means there were no entries to redistribute.
	Empty Outcome = "empty"
	// InvalidTarget means the target was negative or not finite.
	// Quantities is an unchanged copy of the input.
	InvalidTarget Outcome = "invalid_target"
)

// Result is the outcome of one redistribution.
type Result struct {
	Quantities []float64
	Outcome    Outcome
}

// Changed reports whether the redistribution produced new values.
func (r Result) Changed() bool {
	return r.Outcome == Applied
}

// Redistribute spreads target across entries in proportion to current.
// Discrete targets are rounded to the nearest integer and split with the
// largest-remainder method so the output sums to exactly that integer.
// Continuous targets scale every entry by target/sum(current).
func Redistribute(current []float64, target float64, discrete bool) Result {
	if len(current) == 0 {
		return Result{Outcome: Empty}
	}
	if target < 0 || math.IsNaN(target) || math.IsInf(target, 0) {
		return Result{Quantities: append([]float64(nil), current...), Outcome: InvalidTarget}
	}
	if Sum(current) <= 0 {
		return Result{Quantities: append([]float64(nil), current...), Outcome: ZeroBaseline}
	}
	if discrete {
		return Result{Quantities: LargestRemainder(current, int(math.Round(target))), Outcome: Applied}
	}
	return Result{Quantities: Scale(current, target), Outcome: Applied}
}

// LargestRemainder apportions target whole units across entries in
// proportion to current (Hare quota). Each output is the floor of its ideal
// share, plus one for the entries with the largest fractional remainders
// until the output sums to target. Ties go to the earlier entry.
// A zero or negative current total yields a copy of current.
func LargestRemainder(current []float64, target int) []float64 {
	out := make([]float64, len(current))
	total := Sum(current)
	if total <= 0 || target < 0 {
		copy(out, current)
		return out
	}

	remainders := make([]float64, len(current))
	assigned := 0
	for i, q := range current {
		share := math.Max(q, 0) / total * float64(target)
		whole := math.Floor(share + shareEpsilon)
		out[i] = whole
		remainders[i] = math.Max(share-whole, 0)
		assigned += int(whole)
	}

	order := make([]int, len(current))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})

	deficit := target - assigned
	for k := 0; deficit > 0; k = (k + 1) % len(order) {
		out[order[k]]++
		deficit--
	}
	// Float error can overshoot by a unit; take it back from the smallest
	// remainders that still have something to give.
	for k := len(order) - 1; deficit < 0 && k >= 0; k-- {
		if out[order[k]] > 0 {
			out[order[k]]--
			deficit++
		}
	}
	return out
}

// Scale multiplies every entry by target/sum(current).
// A zero or negative current total yields a copy of current.
func Scale(current []float64, target float64) []float64 {
	out := make([]float64, len(current))
	total := Sum(current)
	if total <= 0 {
		copy(out, current)
		return out
	}
	factor := target / total
	for i, q := range current {
		out[i] = q * factor
	}
	return out
}

// Sum adds the values.
func Sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}

// Drift is the gap between the sum of values and the intended total.
func Drift(values []float64, intended float64) float64 {
	return Sum(values) - intended
}
