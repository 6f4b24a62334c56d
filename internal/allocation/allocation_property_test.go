package allocation

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLargestRemainder_Invariants property-tests exact conservation,
// integrality and proportional fidelity over random inputs.
func TestLargestRemainder_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 500; trial++ {
		n := rng.Intn(12) + 1
		current := make([]float64, n)
		for i := range current {
			current[i] = float64(rng.Intn(400))
		}
		current[rng.Intn(n)] += 1 // non-zero baseline
		target := rng.Intn(5000)

		got := LargestRemainder(current, target)
		total := Sum(current)

		// Invariant 1: output sums to exactly target
		assert.Equal(t, float64(target), Sum(got), "trial %d: sum must equal target", trial)

		for i, v := range got {
			// Invariant 2: whole, non-negative units
			assert.Equal(t, math.Trunc(v), v, "trial %d entry %d: must be integral", trial, i)
			assert.GreaterOrEqual(t, v, 0.0, "trial %d entry %d: must be non-negative", trial, i)

			// Invariant 3: within one unit of the ideal share
			ideal := current[i] / total * float64(target)
			assert.Less(t, math.Abs(v-ideal), 1.0,
				"trial %d entry %d: %v is too far from ideal share %v", trial, i, v, ideal)
		}
	}
}

// TestRedistribute_ContinuousConservesTotal checks the scaling path keeps
// proportions and hits the target within float tolerance.
func TestRedistribute_ContinuousConservesTotal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(6) + 1
		current := make([]float64, n)
		for i := range current {
			current[i] = rng.Float64()*100 + 0.01
		}
		target := rng.Float64() * 1000

		res := Redistribute(current, target, false)
		assert.Equal(t, Applied, res.Outcome)
		assert.InDelta(t, target, Sum(res.Quantities), 1e-6, "trial %d", trial)
		for i := range current {
			assert.InDelta(t, current[i]/Sum(current), res.Quantities[i]/math.Max(Sum(res.Quantities), 1e-12), 1e-9,
				"trial %d entry %d: proportion must be preserved", trial, i)
		}
	}
}
