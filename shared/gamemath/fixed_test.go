package gamemath

import "testing"

func TestFixArithmetic(t *testing.T) {
	tests := []struct {
		name string
		got  Fix
		want Fix
	}{
		{"mul ints", FromInt(6).Mul(FromInt(7)), FromInt(42)},
		{"mul negative", FromInt(-3).Mul(FromInt(4)), FromInt(-12)},
		{"mul half", FromInt(5).Mul(Half), FromInt(5) / 2},
		{"div ints", FromInt(42).Div(FromInt(6)), FromInt(7)},
		{"div negative", FromInt(-9).Div(FromInt(3)), FromInt(-3)},
		{"div by zero saturates", FromInt(1).Div(0), MaxFix},
		{"negative div by zero saturates", FromInt(-1).Div(0), MinFix},
		{"mul overflow saturates", MaxFix.Mul(FromInt(2)), MaxFix},
		{"mul negative overflow saturates", MaxFix.Mul(FromInt(-2)), MinFix},
		{"ratio", FromRatio(1, 2), Half},
		{"abs", FromInt(-4).Abs(), FromInt(4)},
		{"abs min", MinFix.Abs(), MaxFix},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v (%d), want %v (%d)", tt.got, tt.got, tt.want, tt.want)
			}
		})
	}
}

func TestFromFloatRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 0.05, 619.95, -1200, 3000, 0.3} {
		f := FromFloat(v)
		if d := f.Float64() - v; d > 1e-9 || d < -1e-9 {
			t.Errorf("FromFloat(%v).Float64() = %v", v, f.Float64())
		}
	}
}

func TestMulIsDeterministic(t *testing.T) {
	a := FromFloat(1234.5678)
	b := FromFloat(-0.016666)
	first := a.Mul(b)
	for i := 0; i < 100; i++ {
		if got := a.Mul(b); got != first {
			t.Fatalf("iteration %d: got %d, want %d", i, got, first)
		}
	}
}

func TestRectIntersection(t *testing.T) {
	a := Rect{Pos: V(0, 0), Size: V(10, 10)}
	tests := []struct {
		name      string
		b         Rect
		intersect bool
		touch     bool
		area      Fix
	}{
		{"overlap", Rect{Pos: V(5, 5), Size: V(10, 10)}, true, true, FromInt(25)},
		{"edge", Rect{Pos: V(10, 0), Size: V(10, 10)}, false, true, 0},
		{"apart", Rect{Pos: V(11, 0), Size: V(10, 10)}, false, false, 0},
		{"contained", Rect{Pos: V(2, 2), Size: V(2, 3)}, true, true, FromInt(6)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.b); got != tt.intersect {
				t.Errorf("Intersects = %v, want %v", got, tt.intersect)
			}
			if got := a.Touches(tt.b); got != tt.touch {
				t.Errorf("Touches = %v, want %v", got, tt.touch)
			}
			if got := a.Intersection(tt.b).Area(); got != tt.area {
				t.Errorf("Intersection area = %v, want %v", got, tt.area)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := ClampSpeed(FromInt(900), FromInt(800)); got != FromInt(800) {
		t.Errorf("ClampSpeed high = %v", got)
	}
	if got := ClampSpeed(FromInt(-900), FromInt(800)); got != FromInt(-800) {
		t.Errorf("ClampSpeed low = %v", got)
	}
	if !StepsToward(FromInt(10), FromInt(1100), FromRatio(1, 60)) {
		t.Error("10 px/s should stop under coast deceleration in one 60Hz tick")
	}
}
