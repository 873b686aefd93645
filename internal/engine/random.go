package engine

import "math/rand/v2"

// Random is the entropy source consumed by accuracy draws, turn-order tie
// breaks and variable-duration effects. It is held by the Battlefield.
type Random interface {
	// Intn returns a value in [0, n). n must be > 0.
	Intn(n int) int
	// Float64 returns a value in [0, 1).
	Float64() float64
}

type seededRandom struct {
	r *rand.Rand
}

// NewRandom returns a reproducible source for the given seed.
func NewRandom(seed uint64) Random {
	return &seededRandom{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *seededRandom) Intn(n int) int { return s.r.IntN(n) }
func (s *seededRandom) Float64() float64 { return s.r.Float64() }

// ScriptedRandom replays prepared draws in order. Once a script is exhausted
// every draw returns the top of its range, so no chance-based effect fires
// and every duration is at its maximum.
type ScriptedRandom struct {
	Ints   []int
	Floats []float64
}

// Intn pops the next scripted integer, reduced into [0, n).
func (s *ScriptedRandom) Intn(n int) int {
	if len(s.Ints) == 0 {
		return n - 1
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	if v < 0 {
		v = -v
	}
	return v % n
}

// Float64 pops the next scripted float.
func (s *ScriptedRandom) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0.9999999
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}

// chance draws a Bernoulli outcome with probability p.
func chance(r Random, p float64) bool {
	if p >= 1 {
		return true
	}
	if p <= 0 {
		return false
	}
	return r.Float64() < p
}

// percentChance draws true with probability pct/100; 0 means always.
func percentChance(r Random, pct int) bool {
	if pct <= 0 || pct >= 100 {
		return true
	}
	return r.Intn(100) < pct
}

// between returns a value in [lo, hi].
func between(r Random, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}
