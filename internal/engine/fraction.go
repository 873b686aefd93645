package engine

// Fraction is an exact rational multiplier. Den is always positive.
type Fraction struct {
	Num int
	Den int
}

// One is the neutral multiplier.
var One = Fraction{1, 1}

// Float returns the multiplier as a float64.
func (f Fraction) Float() float64 {
	return float64(f.Num) / float64(f.Den)
}

// Mul multiplies two fractions without reducing them.
func (f Fraction) Mul(o Fraction) Fraction {
	return Fraction{f.Num * o.Num, f.Den * o.Den}
}

// AtLeastOne reports whether the fraction is >= 1.
func (f Fraction) AtLeastOne() bool {
	return f.Num >= f.Den
}

// Scale applies the fraction to v, rounding down.
func (f Fraction) Scale(v int) int {
	return v * f.Num / f.Den
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PercentOf returns pct percent of v, rounding down.
func PercentOf(v, pct int) int {
	return v * pct / 100
}

// FractionOf returns v/den rounded down but never below 1.
func FractionOf(v, den int) int {
	n := v / den
	if n < 1 {
		return 1
	}
	return n
}

func incSaturating(v uint8) uint8 {
	if v == ^uint8(0) {
		return v
	}
	return v + 1
}

func decSaturating(v uint8) uint8 {
	if v == 0 {
		return 0
	}
	return v - 1
}
