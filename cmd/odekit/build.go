package main

import (
	"fmt"

	"github.com/san-kum/odekit/internal/config"
	"github.com/san-kum/odekit/internal/newton"
	"github.com/san-kum/odekit/internal/ode"
	"github.com/san-kum/odekit/internal/schemes"
	"github.com/san-kum/odekit/internal/systems"
)

var systemNames = []string{"decay", "logistic", "harmonic", "vanderpol", "pendulum", "springmass", "bead"}

var schemeNames = []string{"euler", "midpoint", "rk4", "backward_euler", "backward_euler_fp", "trapezoidal", "dopri45", "ab2", "symplectic_euler"}

func buildSystem(name string) (ode.System, error) {
	switch name {
	case "decay":
		return systems.NewDecay(), nil
	case "logistic":
		return systems.NewLogistic(), nil
	case "harmonic":
		return systems.NewHarmonic(), nil
	case "vanderpol":
		return systems.NewVanDerPol(), nil
	case "pendulum":
		return systems.NewPendulum(), nil
	case "springmass":
		return systems.NewSpringMass(), nil
	case "bead":
		return systems.NewBead(), nil
	}
	return nil, fmt.Errorf("unknown system %q (available: %v)", name, systemNames)
}

func buildScheme(cfg *config.Config) (ode.Scheme, error) {
	rootCfg := newton.Config{
		Tolerance:     cfg.Implicit.Tol,
		MaxIterations: cfg.Implicit.MaxIterations,
	}
	switch cfg.Scheme {
	case "euler":
		return schemes.NewEuler(cfg.H)
	case "midpoint":
		return schemes.NewMidpoint(cfg.H)
	case "rk4":
		return schemes.NewRK4(cfg.H)
	case "backward_euler":
		return schemes.NewBackwardEuler(cfg.H, rootCfg)
	case "backward_euler_fp":
		return schemes.NewBackwardEuler(cfg.H, rootCfg, schemes.WithFixedPointIteration())
	case "trapezoidal":
		return schemes.NewTrapezoidal(cfg.H, rootCfg)
	case "dopri45":
		return schemes.NewDoPri45(schemes.AdaptiveConfig{
			Atol:   cfg.Adaptive.Atol,
			Rtol:   cfg.Adaptive.Rtol,
			Hmin:   cfg.Adaptive.Hmin,
			Hmax:   cfg.Adaptive.Hmax,
			Safety: cfg.Adaptive.Safety,

			InitialStep: cfg.H,
			MaxRejects:  20,
		})
	case "ab2":
		return schemes.NewAB2(cfg.H, nil)
	case "symplectic_euler":
		return schemes.NewSymplecticEuler(cfg.H, "position", "velocity")
	}
	return nil, fmt.Errorf("unknown scheme %q (available: %v)", cfg.Scheme, schemeNames)
}
