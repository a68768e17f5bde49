package entropy

import "math/rand/v2"

// Seeded is a deterministic PCG-backed source. Not safe for concurrent use.
type Seeded struct {
	rng *rand.Rand
}

// NewSeeded returns a reproducible source for the given seed.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))}
}

// Float64 implements Source.
func (s *Seeded) Float64() float64 {
	return s.rng.Float64()
}

// Sequence replays a fixed list of values, cycling when exhausted.
// Tests use it to force specific branches of probabilistic code.
type Sequence struct {
	Values []float64
	next   int
}

// NewSequence returns a scripted source.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{Values: values}
}

// Float64 implements Source. An empty sequence always yields 0.
func (s *Sequence) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}

// Drawn reports how many values have been consumed.
func (s *Sequence) Drawn() int {
	return s.next
}
