package schemes

import (
	"fmt"
	"math"

	"github.com/san-kum/odekit/internal/ode"
)

// Dormand–Prince 4(5) coefficients
var (
	dpA2 = 1.0 / 5.0
	dpA3 = 3.0 / 10.0
	dpA4 = 4.0 / 5.0
	dpA5 = 8.0 / 9.0

	dpB21 = 1.0 / 5.0
	dpB31 = 3.0 / 40.0
	dpB32 = 9.0 / 40.0
	dpB41 = 44.0 / 45.0
	dpB42 = -56.0 / 15.0
	dpB43 = 32.0 / 9.0
	dpB51 = 19372.0 / 6561.0
	dpB52 = -25360.0 / 2187.0
	dpB53 = 64448.0 / 6561.0
	dpB54 = -212.0 / 729.0
	dpB61 = 9017.0 / 3168.0
	dpB62 = -355.0 / 33.0
	dpB63 = 46732.0 / 5247.0
	dpB64 = 49.0 / 176.0
	dpB65 = -5103.0 / 18656.0

	dpC1 = 35.0 / 384.0
	dpC3 = 500.0 / 1113.0
	dpC4 = 125.0 / 192.0
	dpC5 = -2187.0 / 6784.0
	dpC6 = 11.0 / 84.0

	dpD1 = dpC1 - 5179.0/57600.0
	dpD3 = dpC3 - 7571.0/16695.0
	dpD4 = dpC4 - 393.0/640.0
	dpD5 = dpC5 + 92097.0/339200.0
	dpD6 = dpC6 - 187.0/2100.0
	dpD7 = -1.0 / 40.0
)

const (
	dpOrder     = 4 // formal order of the lower result
	dpMaxGrow   = 5.0
	dpMinShrink = 0.1
)

// AdaptiveConfig parameterizes an embedded-pair adaptive scheme.
type AdaptiveConfig struct {
	Atol   float64
	Rtol   float64
	Hmin   float64
	Hmax   float64
	Safety float64

	// InitialStep seeds the first proposal; Hmax when zero.
	InitialStep float64

	// MaxRejects bounds consecutive internal rejections of one step.
	MaxRejects int

	// OnReject, when set, observes every internal rejection (shrink event).
	OnReject func(t, h float64)
}

func DefaultAdaptiveConfig() AdaptiveConfig {
	return AdaptiveConfig{
		Atol:       1e-8,
		Rtol:       1e-6,
		Hmin:       1e-10,
		Hmax:       1.0,
		Safety:     0.9,
		MaxRejects: 20,
	}
}

func (c AdaptiveConfig) validate() error {
	if c.Atol < 0 || c.Rtol < 0 || c.Atol+c.Rtol <= 0 {
		return fmt.Errorf("%w: tolerances atol=%g rtol=%g", ode.ErrInvalidConfig, c.Atol, c.Rtol)
	}
	if c.Hmin <= 0 || c.Hmax <= c.Hmin {
		return fmt.Errorf("%w: step bounds [%g, %g]", ode.ErrInvalidConfig, c.Hmin, c.Hmax)
	}
	if c.Safety <= 0 || c.Safety > 1 {
		return fmt.Errorf("%w: safety factor %g", ode.ErrInvalidConfig, c.Safety)
	}
	if c.MaxRejects <= 0 {
		return fmt.Errorf("%w: max rejections %d", ode.ErrInvalidConfig, c.MaxRejects)
	}
	if c.InitialStep < 0 || (c.InitialStep > 0 && (c.InitialStep < c.Hmin || c.InitialStep > c.Hmax)) {
		return fmt.Errorf("%w: initial step %g outside [%g, %g]", ode.ErrInvalidConfig, c.InitialStep, c.Hmin, c.Hmax)
	}
	return nil
}

// DoPri45 is the adaptive Dormand–Prince embedded 4(5) pair. A step
// computes fifth- and fourth-order candidates, estimates the local error
// e = ‖u₅ − u₄‖ against tol = atol + rtol·‖u_n‖, accepts the fifth-order
// result when e ≤ tol, and otherwise shrinks h and retries the same t_n
// internally. Exhausting Hmin or MaxRejects yields ErrStepTooSmall.
type DoPri45 struct {
	cfg AdaptiveConfig
}

func NewDoPri45(cfg AdaptiveConfig) (*DoPri45, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &DoPri45{cfg: cfg}, nil
}

func (d *DoPri45) InitialStep() float64 {
	if d.cfg.InitialStep > 0 {
		return d.cfg.InitialStep
	}
	return d.cfg.Hmax
}

func (d *DoPri45) Step(sys ode.System, t float64, u ode.State, h float64) (ode.StepResult, error) {
	cfg := d.cfg
	if h > cfg.Hmax {
		h = cfg.Hmax
	}
	tol := cfg.Atol + cfg.Rtol*u.Norm()
	exp := 1.0 / float64(dpOrder+1)

	for rejects := 0; ; rejects++ {
		high, errEst, ok := d.attempt(sys, t, u, h)

		if ok && errEst <= tol {
			fac := dpMaxGrow
			if errEst > 0 {
				fac = math.Min(dpMaxGrow, cfg.Safety*math.Pow(tol/errEst, exp))
			}
			hNext := math.Min(math.Max(h*fac, cfg.Hmin), cfg.Hmax)
			return ode.StepResult{Next: high, HUsed: h, HNext: hNext}, nil
		}

		if rejects >= cfg.MaxRejects {
			return ode.StepResult{}, fmt.Errorf("%w: %d consecutive rejections at t=%g", ode.ErrStepTooSmall, rejects, t)
		}
		if cfg.OnReject != nil {
			cfg.OnReject(t, h)
		}

		fac := 0.5
		if ok {
			fac = math.Max(dpMinShrink, cfg.Safety*math.Pow(tol/errEst, exp))
		}
		h *= fac
		if h < cfg.Hmin {
			return ode.StepResult{}, fmt.Errorf("%w: h=%.3e below hmin=%.3e at t=%g", ode.ErrStepTooSmall, h, cfg.Hmin, t)
		}
	}
}

// attempt evaluates the seven stages once. It returns the fifth-order
// candidate, the embedded error estimate, and whether every evaluation was
// finite.
func (d *DoPri45) attempt(sys ode.System, t float64, u ode.State, h float64) (ode.State, float64, bool) {
	n := len(u)
	stage := make(ode.State, n)

	k1 := ode.DeriveExplicit(sys, t, u)

	for i := 0; i < n; i++ {
		stage[i] = u[i] + h*dpB21*k1[i]
	}
	k2 := ode.DeriveExplicit(sys, t+dpA2*h, stage)

	for i := 0; i < n; i++ {
		stage[i] = u[i] + h*(dpB31*k1[i]+dpB32*k2[i])
	}
	k3 := ode.DeriveExplicit(sys, t+dpA3*h, stage)

	for i := 0; i < n; i++ {
		stage[i] = u[i] + h*(dpB41*k1[i]+dpB42*k2[i]+dpB43*k3[i])
	}
	k4 := ode.DeriveExplicit(sys, t+dpA4*h, stage)

	for i := 0; i < n; i++ {
		stage[i] = u[i] + h*(dpB51*k1[i]+dpB52*k2[i]+dpB53*k3[i]+dpB54*k4[i])
	}
	k5 := ode.DeriveExplicit(sys, t+dpA5*h, stage)

	for i := 0; i < n; i++ {
		stage[i] = u[i] + h*(dpB61*k1[i]+dpB62*k2[i]+dpB63*k3[i]+dpB64*k4[i]+dpB65*k5[i])
	}
	k6 := ode.DeriveExplicit(sys, t+h, stage)

	high := make(ode.State, n)
	for i := 0; i < n; i++ {
		high[i] = u[i] + h*(dpC1*k1[i]+dpC3*k3[i]+dpC4*k4[i]+dpC5*k5[i]+dpC6*k6[i])
	}
	if !high.IsValid() {
		return nil, 0, false
	}
	k7 := ode.DeriveExplicit(sys, t+h, high)

	errSq := 0.0
	for i := 0; i < n; i++ {
		e := h * (dpD1*k1[i] + dpD3*k3[i] + dpD4*k4[i] + dpD5*k5[i] + dpD6*k6[i] + dpD7*k7[i])
		errSq += e * e
	}
	errEst := math.Sqrt(errSq)
	if math.IsNaN(errEst) || math.IsInf(errEst, 0) {
		return nil, 0, false
	}
	return high, errEst, true
}
