package gamemath

// ClampSpeed clamps a value to [-max, max].
func ClampSpeed(speed, max Fix) Fix {
	return Clamp(speed, -max, max)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi Fix) Fix {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Min(a, b Fix) Fix {
	if a < b {
		return a
	}
	return b
}

func Max(a, b Fix) Fix {
	if a > b {
		return a
	}
	return b
}

// StepsToward reports whether slowing speed by decel*dt would reach or cross
// zero this tick.
func StepsToward(speed, decel, dt Fix) bool {
	return speed.Abs() < decel.Mul(dt)
}
