package schemes

import (
	"fmt"

	"github.com/san-kum/odekit/internal/ode"
)

// AB2 is the two-step Adams–Bashforth method. It needs the two most recent
// accepted points; until the trajectory holds them, the driver bootstraps
// through the configured single-step scheme. The update uses the
// variable-spacing form so a clamped final step stays consistent:
//
//	u_{n+1} = u_n + h·[(1 + h/(2·Δ))·f_n − (h/(2·Δ))·f_{n−1}],  Δ = t_n − t_{n−1}
type AB2 struct {
	h         float64
	bootstrap ode.Scheme
}

// NewAB2 builds the scheme. bootstrap may be nil, in which case the explicit
// midpoint rule with the same step size is used.
func NewAB2(h float64, bootstrap ode.Scheme) (*AB2, error) {
	if h <= 0 {
		return nil, fmt.Errorf("%w: step size %g", ode.ErrInvalidConfig, h)
	}
	if bootstrap == nil {
		var err error
		bootstrap, err = NewMidpoint(h)
		if err != nil {
			return nil, err
		}
	}
	return &AB2{h: h, bootstrap: bootstrap}, nil
}

func (s *AB2) InitialStep() float64 { return s.h }

func (s *AB2) StepsRequired() int { return 2 }

// Step is the bootstrap path for the first accepted point.
func (s *AB2) Step(sys ode.System, t float64, u ode.State, h float64) (ode.StepResult, error) {
	res, err := s.bootstrap.Step(sys, t, u, h)
	if err != nil {
		return ode.StepResult{}, err
	}
	return ode.StepResult{Next: res.Next, HUsed: h, HNext: s.h}, nil
}

func (s *AB2) StepHistory(sys ode.System, hist []ode.Point, h float64) (ode.StepResult, error) {
	if len(hist) < 2 {
		return ode.StepResult{}, fmt.Errorf("%w: AB2 needs 2 history points, got %d", ode.ErrInvalidConfig, len(hist))
	}
	prev, cur := hist[len(hist)-2], hist[len(hist)-1]
	delta := cur.T - prev.T
	if delta <= 0 {
		return ode.StepResult{}, fmt.Errorf("%w: non-increasing history times", ode.ErrInvalidConfig)
	}

	fCur := ode.DeriveExplicit(sys, cur.T, cur.U)
	fPrev := ode.DeriveExplicit(sys, prev.T, prev.U)

	bCur := 1 + h/(2*delta)
	bPrev := -h / (2 * delta)

	next := make(ode.State, len(cur.U))
	for i := range next {
		next[i] = cur.U[i] + h*(bCur*fCur[i]+bPrev*fPrev[i])
	}
	if !next.IsValid() {
		return ode.StepResult{}, ode.ErrNumericFailure
	}
	return ode.StepResult{Next: next, HUsed: h, HNext: s.h}, nil
}
