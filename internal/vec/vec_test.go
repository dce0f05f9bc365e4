package vec

import (
	"math"
	"testing"
)

func TestVector_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		v     Vector
		valid bool
	}{
		{"empty", Vector{}, true},
		{"normal", Vector{1.0, 2.0, 3.0}, true},
		{"zeros", Zeros(2), true},
		{"with NaN", Vector{1.0, math.NaN()}, false},
		{"with +Inf", Vector{1.0, math.Inf(1)}, false},
		{"with -Inf", Vector{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestVector_Norm(t *testing.T) {
	tests := []struct {
		v     Vector
		norm  float64
		norm2 float64
	}{
		{Vector{3, 4}, 5.0, 25.0},
		{Vector{1, 0}, 1.0, 1.0},
		{Vector{0, 0}, 0.0, 0.0},
		{Vector{1, 1, 1, 1}, 2.0, 4.0},
	}

	for _, tt := range tests {
		if got := tt.v.Norm(); math.Abs(got-tt.norm) > 1e-10 {
			t.Errorf("Norm(%v) = %v, want %v", tt.v, got, tt.norm)
		}
		if got := tt.v.Norm2(); math.Abs(got-tt.norm2) > 1e-10 {
			t.Errorf("Norm2(%v) = %v, want %v", tt.v, got, tt.norm2)
		}
	}
}

func TestVector_Arithmetic(t *testing.T) {
	a := Vector{1, 2, 3}
	b := Vector{4, 5, 6}

	diff := b.Sub(a)
	if diff[0] != 3 || diff[1] != 3 || diff[2] != 3 {
		t.Errorf("Sub failed: got %v", diff)
	}

	scaled := a.Scale(2)
	if scaled[0] != 2 || scaled[1] != 4 || scaled[2] != 6 {
		t.Errorf("Scale failed: got %v", scaled)
	}
	if a[0] != 1 {
		t.Error("Scale modified its receiver")
	}

	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}

	c := a.Clone()
	c.Increment(b, 0.5)
	if c[0] != 3 || c[1] != 4.5 || c[2] != 6 {
		t.Errorf("Increment failed: got %v", c)
	}
	if a[0] != 1 {
		t.Error("Clone shares storage with its source")
	}
}

func TestVector_Equal(t *testing.T) {
	if !(Vector{1, 2}).Equal(Vector{1, 2}) {
		t.Error("expected equal vectors")
	}
	if (Vector{1, 2}).Equal(Vector{1, 3}) {
		t.Error("expected different vectors")
	}
}
