package physics

import (
	"math"
	"testing"
)

func TestLowpassFirstUpdateLatches(t *testing.T) {
	f := NewLowpass(0.1)
	if got := f.Update(42.0); got != 42.0 {
		t.Errorf("first Update() = %v, want 42 exactly", got)
	}
	if got := f.Value(); got != 42.0 {
		t.Errorf("Value() after first update = %v, want 42", got)
	}
}

func TestLowpassSmoothing(t *testing.T) {
	f := NewLowpass(0.5)
	f.Update(0)

	// value += alpha * (x - value)
	if got := f.Update(10); got != 5.0 {
		t.Errorf("second Update(10) = %v, want 5", got)
	}
	if got := f.Update(10); got != 7.5 {
		t.Errorf("third Update(10) = %v, want 7.5", got)
	}
}

func TestLowpassConvergence(t *testing.T) {
	f := NewLowpass(0.2)
	f.Update(0)
	for i := 0; i < 200; i++ {
		f.Update(1)
	}
	if diff := math.Abs(f.Value() - 1); diff > 1e-9 {
		t.Errorf("filter did not converge to its input: value = %v", f.Value())
	}
}

func TestLowpassConstantInputIsFixedPoint(t *testing.T) {
	f := NewLowpass(0.3)
	f.Sync(4.0)
	for i := 0; i < 10; i++ {
		if got := f.Update(4.0); got != 4.0 {
			t.Fatalf("Update(4) after Sync(4) = %v, want 4 exactly", got)
		}
	}
}

func TestLowpassReset(t *testing.T) {
	f := NewLowpass(0.1)
	f.Update(100)
	f.Update(200)

	f.Reset()
	if got := f.Update(-5); got != -5.0 {
		t.Errorf("Update after Reset = %v, want -5 exactly", got)
	}
}

func TestLowpassSync(t *testing.T) {
	f := NewLowpass(0.5)
	f.Sync(8)
	if got := f.Value(); got != 8.0 {
		t.Errorf("Value() after Sync(8) = %v, want 8", got)
	}
	// Sync disarms the first-run latch: the next update filters normally.
	if got := f.Update(10); got != 9.0 {
		t.Errorf("Update(10) after Sync(8) = %v, want 9", got)
	}
}

func TestLowpassSetAlpha(t *testing.T) {
	f := NewLowpass(0.1)
	f.Update(0)
	f.SetAlpha(1)
	if got := f.Update(3); got != 3.0 {
		t.Errorf("Update with alpha=1 = %v, want 3 (passthrough)", got)
	}
}

func TestCalculateAlpha(t *testing.T) {
	tests := []struct {
		name     string
		dt       float64
		cutoffHz float64
		want     float64
	}{
		{name: "60fps 1Hz cutoff", dt: 1.0 / 60, cutoffHz: 1, want: (1.0 / 60) / (1.0/60 + 1)},
		{name: "equal period and cutoff", dt: 0.5, cutoffHz: 2, want: 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateAlpha(tt.dt, tt.cutoffHz)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("CalculateAlpha(%v, %v) = %v, want %v", tt.dt, tt.cutoffHz, got, tt.want)
			}
		})
	}
}
