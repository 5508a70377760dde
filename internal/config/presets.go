package config

// Presets are ready-made run configurations, keyed by system then name.
var Presets = map[string]map[string]*Config{
	"decay": {
		"coarse": {
			System: "decay", Scheme: "euler", H: 0.1, TFinal: 5.0,
			InitState: []float64{1.0},
		},
		"stiff": {
			System: "decay", Scheme: "backward_euler", H: 0.1, TFinal: 5.0,
			InitState: []float64{1.0},
			Implicit:  ImplicitConfig{Tol: 1e-12, MaxIterations: 20},
		},
	},
	"harmonic": {
		"orbit": {
			System: "harmonic", Scheme: "rk4", H: 0.01, TFinal: 20.0,
			InitState: []float64{1.0, 0.0},
		},
		"adaptive": {
			System: "harmonic", Scheme: "dopri45", TFinal: 20.0,
			InitState: []float64{1.0, 0.0},
			Adaptive:  AdaptiveConfig{Atol: 1e-9, Rtol: 1e-7, Hmin: 1e-10, Hmax: 0.5, Safety: 0.9},
		},
	},
	"vanderpol": {
		"limit_cycle": {
			System: "vanderpol", Scheme: "dopri45", TFinal: 30.0,
			InitState: []float64{2.0, 0.0},
			Adaptive:  AdaptiveConfig{Atol: 1e-8, Rtol: 1e-6, Hmin: 1e-12, Hmax: 0.5, Safety: 0.9},
		},
		"stiff": {
			System: "vanderpol", Scheme: "trapezoidal", H: 0.005, TFinal: 10.0,
			InitState: []float64{2.0, 0.0},
			Implicit:  ImplicitConfig{Tol: 1e-10, MaxIterations: 50},
		},
	},
	"springmass": {
		"symplectic": {
			System: "springmass", Scheme: "symplectic_euler", H: 0.01, TFinal: 50.0,
			InitState: []float64{1.0, 0.0},
		},
	},
	"bead": {
		"circle": {
			System: "bead", Scheme: "rk4", H: 0.001, TFinal: 10.0,
			InitState: []float64{1.0, 0.0, 0.0, 0.0},
		},
	},
	"logistic": {
		"sharp": {
			System: "logistic", Scheme: "dopri45", TFinal: 0.02,
			InitState: []float64{1e-3},
			Adaptive:  AdaptiveConfig{Atol: 1e-8, Rtol: 1e-6, Hmin: 1e-12, Hmax: 0.01, Safety: 0.9},
		},
	},
}
