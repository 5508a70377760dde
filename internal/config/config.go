package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultH      = 0.01
	DefaultTFinal = 10.0
	DefaultAtol   = 1e-8
	DefaultRtol   = 1e-6
	DefaultHmin   = 1e-10
	DefaultHmax   = 1.0
	DefaultSafety = 0.9
	DefaultTol    = 1e-10
	DefaultIters  = 50
)

// Config selects a system, a scheme, and their numerical parameters for one
// integration run.
type Config struct {
	System string  `yaml:"system"`
	Scheme string  `yaml:"scheme"`
	H      float64 `yaml:"h"`
	TFinal float64 `yaml:"t_final"`
	T0     float64 `yaml:"t0"`

	InitState []float64 `yaml:"init_state"`

	Adaptive AdaptiveConfig `yaml:"adaptive"`
	Implicit ImplicitConfig `yaml:"implicit"`
}

// AdaptiveConfig holds embedded-pair tolerances.
type AdaptiveConfig struct {
	Atol   float64 `yaml:"atol"`
	Rtol   float64 `yaml:"rtol"`
	Hmin   float64 `yaml:"hmin"`
	Hmax   float64 `yaml:"hmax"`
	Safety float64 `yaml:"safety"`
}

// ImplicitConfig bounds the per-step nonlinear solve.
type ImplicitConfig struct {
	Tol           float64 `yaml:"tol"`
	MaxIterations int     `yaml:"max_iterations"`
}

func DefaultConfig() *Config {
	return &Config{
		System: "decay",
		Scheme: "rk4",
		H:      DefaultH,
		TFinal: DefaultTFinal,
		Adaptive: AdaptiveConfig{
			Atol:   DefaultAtol,
			Rtol:   DefaultRtol,
			Hmin:   DefaultHmin,
			Hmax:   DefaultHmax,
			Safety: DefaultSafety,
		},
		Implicit: ImplicitConfig{
			Tol:           DefaultTol,
			MaxIterations: DefaultIters,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GetInitState returns the configured initial state, or a sensible default
// for the selected system.
func (c *Config) GetInitState() []float64 {
	if len(c.InitState) > 0 {
		return c.InitState
	}
	switch c.System {
	case "harmonic", "springmass":
		return []float64{1.0, 0.0}
	case "vanderpol":
		return []float64{2.0, 0.0}
	case "pendulum":
		return []float64{0.5, 0.0}
	case "bead":
		return []float64{1.0, 0.0, 0.0, 0.0}
	case "logistic":
		return []float64{1e-3}
	default:
		return []float64{1.0}
	}
}
