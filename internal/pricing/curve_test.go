package pricing

import "testing"

func TestNewCurveRejectsBadTables(t *testing.T) {
	if _, err := NewCurve(nil); err == nil {
		t.Fatalf("expected error for empty table")
	}
	if _, err := NewCurve([]Breakpoint{{X: 1, Y: 1}, {X: 1, Y: 2}}); err == nil {
		t.Fatalf("expected error for duplicate X")
	}
	if _, err := NewCurve([]Breakpoint{{X: 2, Y: 1}, {X: 1, Y: 2}}); err == nil {
		t.Fatalf("expected error for descending X")
	}
}

func TestCurveSinglePointIsConstant(t *testing.T) {
	c := MustCurve(Breakpoint{X: 5, Y: 2.5})
	for _, x := range []float64{-100, 0, 5, 12, 1e6} {
		if got := c.Eval(x); got != 2.5 {
			t.Fatalf("Eval(%v) = %v, want constant 2.5", x, got)
		}
	}
}

func TestCurveClampsOutsideDomain(t *testing.T) {
	c := MustCurve(Breakpoint{X: 0, Y: 1}, Breakpoint{X: 10, Y: 3})
	if got := c.Eval(-5); got != 1 {
		t.Fatalf("expected clamp to first output, got %v", got)
	}
	if got := c.Eval(50); got != 3 {
		t.Fatalf("expected clamp to last output, got %v", got)
	}
}

func TestCurveInterpolatesBetweenBreakpoints(t *testing.T) {
	c := MustCurve(
		Breakpoint{X: 0.5, Y: 1.0},
		Breakpoint{X: 0.7, Y: 1.5},
		Breakpoint{X: 0.85, Y: 2.5},
	)

	tests := []struct {
		x    float64
		want float64
	}{
		{x: 0.5, want: 1.0},
		{x: 0.6, want: 1.25},
		{x: 0.7, want: 1.5},
		{x: 0.775, want: 2.0},
		{x: 0.85, want: 2.5},
	}
	for _, tt := range tests {
		got := c.Eval(tt.x)
		if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("Eval(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestCurveDescendingOutputsAllowed(t *testing.T) {
	// The time table rises to a peak then falls; output monotonicity is
	// never assumed.
	c := MustCurve(
		Breakpoint{X: -1, Y: 1.5},
		Breakpoint{X: 0, Y: 2.5},
		Breakpoint{X: 1, Y: 2.0},
	)
	if got := c.Eval(-0.5); got != 2.0 {
		t.Fatalf("Eval(-0.5) = %v, want 2.0", got)
	}
	if got := c.Eval(0.5); got != 2.25 {
		t.Fatalf("Eval(0.5) = %v, want 2.25", got)
	}
}
