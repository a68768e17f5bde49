// Package chance turns a uniform random stream into the discrete outcomes the
// simulation needs: Bernoulli rolls against named thresholds, bounded integers
// and uniform picks. Functions keep no state between calls.
package chance

import (
	"github.com/sevenx777-dev/sevenxfoot/internal/entropy"
)

// Clamp01 bounds a probability to [0, 1]. Constants are never validated
// upstream, so every roll goes through this.
func Clamp01(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Roll draws once and reports whether the draw fell under p.
func Roll(src entropy.Source, p float64) bool {
	return src.Float64() < Clamp01(p)
}

// Above draws once and reports whether the draw exceeded threshold.
func Above(src entropy.Source, threshold float64) bool {
	return src.Float64() > threshold
}

// Intn returns a value in [0, n). n <= 0 yields 0 without drawing.
func Intn(src entropy.Source, n int) int {
	if n <= 0 {
		return 0
	}
	v := int(src.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

// Between returns a value in [lo, hi], both inclusive.
func Between(src entropy.Source, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + Intn(src, hi-lo+1)
}

// Uniform returns a float in [lo, hi).
func Uniform(src entropy.Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// Pick selects one element uniformly. ok is false for an empty slice.
func Pick[T any](src entropy.Source, items []T) (item T, ok bool) {
	if len(items) == 0 {
		return item, false
	}
	return items[Intn(src, len(items))], true
}

// Weighted selects an index with probability proportional to its weight.
// Non-positive weights are never chosen; -1 means nothing was selectable.
func Weighted(src entropy.Source, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total == 0 {
		return -1
	}
	target := src.Float64() * total
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		last = i
		if target < w {
			return i
		}
		target -= w
	}
	return last
}
