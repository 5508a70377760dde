package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/odekit/internal/config"
	"github.com/san-kum/odekit/internal/ode"
	"github.com/san-kum/odekit/internal/solver"
	"github.com/san-kum/odekit/internal/storage"
	"github.com/san-kum/odekit/internal/tui"
)

var (
	dataDir    string
	schemeName string
	stepSize   float64
	tFinal     float64
	t0         float64
	initState  string
	configFile string
	preset     string
	save       bool
	plot       bool
	frame      float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "odekit",
		Short: "pluggable ODE/DAE time integration",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".odekit", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [system]",
		Short: "integrate a system forward in time",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runIntegration,
	}
	runCmd.Flags().StringVar(&schemeName, "scheme", "rk4", "stepping scheme")
	runCmd.Flags().Float64Var(&stepSize, "h", config.DefaultH, "step size (initial step for adaptive schemes)")
	runCmd.Flags().Float64Var(&tFinal, "time", config.DefaultTFinal, "integration end time")
	runCmd.Flags().Float64Var(&t0, "t0", 0, "integration start time")
	runCmd.Flags().StringVar(&initState, "state", "", "comma-separated initial state")
	runCmd.Flags().StringVar(&configFile, "config", "", "yaml config file")
	runCmd.Flags().StringVar(&preset, "preset", "", "named preset (see 'odekit presets')")
	runCmd.Flags().BoolVar(&save, "save", false, "persist trajectory to the data directory")
	runCmd.Flags().BoolVar(&plot, "plot", true, "plot first state component")
	rootCmd.AddCommand(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [system]",
		Short: "watch an integration as it runs",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&schemeName, "scheme", "rk4", "stepping scheme")
	liveCmd.Flags().Float64Var(&stepSize, "h", config.DefaultH, "step size")
	liveCmd.Flags().Float64Var(&tFinal, "time", config.DefaultTFinal, "integration end time")
	liveCmd.Flags().StringVar(&initState, "state", "", "comma-separated initial state")
	liveCmd.Flags().Float64Var(&frame, "frame", 0.1, "simulated time per animation frame")
	rootCmd.AddCommand(liveCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "systems",
		Short: "list available systems",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range systemNames {
				fmt.Println(name)
			}
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "schemes",
		Short: "list available schemes",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range schemeNames {
				fmt.Println(name)
			}
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "presets",
		Short: "list named presets",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tSYSTEM\tSCHEME\tT_FINAL")
			for sysName, group := range config.Presets {
				for name, cfg := range group {
					fmt.Fprintf(w, "%s/%s\t%s\t%s\t%g\n", sysName, name, cfg.System, cfg.Scheme, cfg.TFinal)
				}
			}
			w.Flush()
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "runs",
		Short: "list stored runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := storage.New(dataDir).List()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSYSTEM\tSCHEME\tSTEPS\tT_FINAL")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%g\n", r.ID, r.System, r.Scheme, r.Steps, r.TFinal)
			}
			return w.Flush()
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveConfig merges, in increasing precedence: defaults, config file,
// preset, command-line flags.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if preset != "" {
		sysName, name, ok := strings.Cut(preset, "/")
		if !ok {
			return nil, fmt.Errorf("preset must be system/name, got %q", preset)
		}
		p, ok := config.Presets[sysName][name]
		if !ok {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
		clone := *p
		cfg = &clone
		if cfg.Implicit.Tol == 0 {
			cfg.Implicit = config.DefaultConfig().Implicit
		}
	}

	if len(args) > 0 {
		cfg.System = args[0]
	}
	if cmd.Flags().Changed("scheme") {
		cfg.Scheme = schemeName
	}
	if cmd.Flags().Changed("h") {
		cfg.H = stepSize
	}
	if cmd.Flags().Changed("time") {
		cfg.TFinal = tFinal
	}
	if cmd.Flags().Changed("t0") {
		cfg.T0 = t0
	}
	if initState != "" {
		state, err := parseState(initState)
		if err != nil {
			return nil, err
		}
		cfg.InitState = state
	}
	return cfg, nil
}

func parseState(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("bad state component %q: %w", f, err)
		}
		out[i] = v
	}
	return out, nil
}

func buildSolver(cfg *config.Config) (*solver.Solver, ode.System, error) {
	sys, err := buildSystem(cfg.System)
	if err != nil {
		return nil, nil, err
	}
	scheme, err := buildScheme(cfg)
	if err != nil {
		return nil, nil, err
	}
	slv, err := solver.New(scheme, sys)
	if err != nil {
		return nil, nil, err
	}
	if err := slv.Init(ode.State(cfg.GetInitState()), cfg.T0); err != nil {
		return nil, nil, err
	}
	return slv, sys, nil
}

func runIntegration(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	slv, sys, err := buildSolver(cfg)
	if err != nil {
		return err
	}

	runErr := slv.Run(cfg.TFinal)
	view := slv.Result()

	if plot && view.Len() > 1 {
		states := view.States()
		series := make([]float64, len(states))
		for i, s := range states {
			series[i] = s[0]
		}
		fmt.Println(asciigraph.Plot(series, asciigraph.Height(14), asciigraph.Width(70)))
		fmt.Println()
	}

	printSummary(cfg, slv, sys)

	if save {
		store := storage.New(dataDir)
		if err := store.Init(); err != nil {
			return err
		}
		id, err := store.Save(cfg.System, cfg.Scheme, view)
		if err != nil {
			return err
		}
		fmt.Printf("saved run %s\n", id)
	}

	return runErr
}

func printSummary(cfg *config.Config, slv *solver.Solver, sys ode.System) {
	view := slv.Result()
	t, u := view.Last()
	stats := slv.Stats()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "system\t%s\n", cfg.System)
	fmt.Fprintf(w, "scheme\t%s\n", cfg.Scheme)
	fmt.Fprintf(w, "status\t%s\n", slv.Status())
	fmt.Fprintf(w, "steps\t%d\n", stats.Steps)
	fmt.Fprintf(w, "final t\t%.6g\n", t)
	fmt.Fprintf(w, "final state\t%v\n", u)

	if h, ok := sys.(ode.Hamiltonian); ok && view.Len() > 1 {
		_, u0 := view.At(0)
		e0, e1 := h.Energy(u0), h.Energy(u)
		if e0 != 0 {
			fmt.Fprintf(w, "energy drift\t%.3e\n", (e1-e0)/e0)
		}
	}
	if r := ode.ResidualOf(sys, t, u, ode.DeriveExplicit(sys, t, u)); r != nil {
		fmt.Fprintf(w, "constraint residual\t%.3e\n", r.Norm())
	}
	w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	slv, _, err := buildSolver(cfg)
	if err != nil {
		return err
	}

	model := tui.NewModel(cfg.System, slv, cfg.TFinal, frame)
	_, err = tea.NewProgram(model).Run()
	return err
}
