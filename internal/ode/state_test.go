package ode

import (
	"math"
	"testing"
)

func TestStateClone(t *testing.T) {
	s := State{1, 2, 3}
	c := s.Clone()
	c[0] = 99

	if s[0] != 1 {
		t.Errorf("clone aliases original: %v", s)
	}
}

func TestStateIsValid(t *testing.T) {
	tests := []struct {
		name string
		s    State
		want bool
	}{
		{"finite", State{1, -2, 0}, true},
		{"empty", State{}, true},
		{"nan", State{1, math.NaN()}, false},
		{"inf", State{math.Inf(1), 0}, false},
		{"neg inf", State{0, math.Inf(-1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.IsValid(); got != tt.want {
				t.Errorf("IsValid(%v) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}

func TestStateNorm(t *testing.T) {
	s := State{3, 4}
	if got := s.Norm(); math.Abs(got-5) > 1e-15 {
		t.Errorf("norm = %f, want 5", got)
	}
}

func TestStateArithmetic(t *testing.T) {
	a := State{1, 2}
	b := State{3, 5}

	if got := a.Add(b); got[0] != 4 || got[1] != 7 {
		t.Errorf("add = %v", got)
	}
	if got := b.Sub(a); got[0] != 2 || got[1] != 3 {
		t.Errorf("sub = %v", got)
	}
	if got := a.Scale(2); got[0] != 2 || got[1] != 4 {
		t.Errorf("scale = %v", got)
	}
	if got := a.AddScaled(2, b); got[0] != 7 || got[1] != 12 {
		t.Errorf("addScaled = %v", got)
	}
}
