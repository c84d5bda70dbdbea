// Package gamemath provides the deterministic number types shared by the
// simulation on client and server. Nothing in here touches floating point on
// the simulation path, so two peers stepping the same inputs stay bit-identical.
package gamemath

import (
	"math"
	"math/bits"
	"strconv"
)

// Fix is a signed Q32.32 fixed-point number.
type Fix int64

const (
	fracBits = 32

	// One is 1.0 in fixed-point.
	One Fix = 1 << fracBits
	// Half is 0.5 in fixed-point.
	Half Fix = One >> 1

	MaxFix Fix = math.MaxInt64
	MinFix Fix = math.MinInt64
)

// FromInt converts an integer to fixed-point.
func FromInt(v int) Fix {
	return Fix(int64(v) << fracBits)
}

// FromRatio returns num/den, e.g. FromRatio(3, 10) for 0.3.
func FromRatio(num, den int64) Fix {
	return FromInt(int(num)).Div(FromInt(int(den)))
}

// FromFloat converts a float to fixed-point. Only meant for configuration
// and tooling, never for values computed during a tick.
func FromFloat(v float64) Fix {
	return Fix(math.Round(v * float64(One)))
}

// FromBits reinterprets a raw Q32.32 word, used by the wire codec.
func FromBits(raw int64) Fix { return Fix(raw) }

// Bits returns the raw Q32.32 word.
func (f Fix) Bits() int64 { return int64(f) }

// Float64 converts to float for presentation and logging.
func (f Fix) Float64() float64 {
	return float64(f) / float64(One)
}

// Int truncates toward negative infinity.
func (f Fix) Int() int {
	return int(f >> fracBits)
}

func (f Fix) String() string {
	return strconv.FormatFloat(f.Float64(), 'f', -1, 64)
}

// Mul multiplies two fixed-point numbers using a 128-bit intermediate.
// The result saturates instead of wrapping.
func (f Fix) Mul(g Fix) Fix {
	neg := (f < 0) != (g < 0)
	hi, lo := bits.Mul64(abs64(f), abs64(g))
	if hi>>fracBits != 0 {
		return saturate(neg)
	}
	r := hi<<fracBits | lo>>fracBits
	return applySign(r, neg)
}

// Div divides f by g. Division by zero saturates toward the sign of f.
func (f Fix) Div(g Fix) Fix {
	neg := (f < 0) != (g < 0)
	if g == 0 {
		if f == 0 {
			return 0
		}
		return saturate(f < 0)
	}
	ua, ub := abs64(f), abs64(g)
	hi := ua >> fracBits
	if hi >= ub {
		return saturate(neg)
	}
	q, _ := bits.Div64(hi, ua<<fracBits, ub)
	return applySign(q, neg)
}

// MulInt multiplies by a plain integer.
func (f Fix) MulInt(n int) Fix {
	return f.Mul(FromInt(n))
}

// Abs returns |f|. MinFix saturates to MaxFix.
func (f Fix) Abs() Fix {
	if f == MinFix {
		return MaxFix
	}
	if f < 0 {
		return -f
	}
	return f
}

// Sign returns -1, 0 or 1.
func (f Fix) Sign() int {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	}
	return 0
}

func abs64(f Fix) uint64 {
	if f < 0 {
		return uint64(-(f + 1)) + 1
	}
	return uint64(f)
}

func applySign(mag uint64, neg bool) Fix {
	if neg {
		if mag > uint64(math.MaxInt64)+1 {
			return MinFix
		}
		return Fix(-int64(mag - 1) - 1)
	}
	if mag > uint64(math.MaxInt64) {
		return MaxFix
	}
	return Fix(mag)
}

func saturate(neg bool) Fix {
	if neg {
		return MinFix
	}
	return MaxFix
}
