package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lpaiva/kutta/internal/config"
	"github.com/lpaiva/kutta/internal/gravity"
	"github.com/lpaiva/kutta/internal/metrics"
	"github.com/lpaiva/kutta/internal/rk"
	"github.com/lpaiva/kutta/internal/storage"
	"github.com/lpaiva/kutta/internal/tableau"
	"github.com/lpaiva/kutta/internal/viz"
)

var (
	dataDir    string
	configFile string
	method     string
	dt         float64
	t0         float64
	tf         float64
	sample     int
	g          float64
	softening  float64
	components []int
	noSave     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kutta",
		Short: "fixed-step Runge-Kutta n-body integrator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".kutta", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "integrate and save the trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runIntegration,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&method, "method", "", "runge-kutta method (see 'kutta tableaus')")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "step size")
	runCmd.Flags().Float64Var(&t0, "t0", 0, "initial instant")
	runCmd.Flags().Float64Var(&tf, "tf", 0, "final instant")
	runCmd.Flags().Float64Var(&g, "g", 0, "gravitational constant")
	runCmd.Flags().Float64Var(&softening, "softening", 0, "softening length")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip persisting the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run (orbits, or components with --component)",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntSliceVar(&components, "component", nil, "state components to plot")
	plotCmd.Flags().IntVar(&sample, "sample", 1, "keep every k-th record")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "dump a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "integrate with a live orbit view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&method, "method", "", "runge-kutta method")
	liveCmd.Flags().Float64Var(&dt, "dt", 0, "step size")
	liveCmd.Flags().Float64Var(&tf, "tf", 0, "final instant")
	liveCmd.Flags().Float64Var(&g, "g", 0, "gravitational constant")
	liveCmd.Flags().Float64Var(&softening, "softening", 0, "softening length")

	tableausCmd := &cobra.Command{
		Use:   "tableaus",
		Short: "list known runge-kutta methods",
		RunE:  listTableaus,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in initial-condition presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, liveCmd, tableausCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig resolves precedence: preset arg, then --config file, then
// defaults; explicit flags override whichever base was chosen.
func loadConfig(args []string) (*config.Config, error) {
	cfg := config.Default()

	if len(args) == 1 {
		preset := config.GetPreset(args[0])
		if preset == nil {
			return nil, fmt.Errorf("unknown preset %q (known: %v)", args[0], config.ListPresets())
		}
		cfg = preset
	} else if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if method != "" {
		cfg.Method = method
		cfg.Custom = nil
	}
	if dt > 0 {
		cfg.Dt = dt
	}
	if t0 != 0 {
		cfg.T0 = t0
	}
	if tf > 0 {
		cfg.TF = tf
	}
	if g > 0 {
		cfg.Gravity.G = g
	}
	if softening > 0 {
		cfg.Gravity.Softening = softening
	}
	return cfg, nil
}

func buildIntegrator(cfg *config.Config) (*gravity.Model, *rk.Integrator, *tableau.Tableau, error) {
	tab, err := cfg.Tableau()
	if err != nil {
		return nil, nil, nil, err
	}
	model, err := cfg.Model()
	if err != nil {
		return nil, nil, nil, err
	}
	integ, err := rk.New(model.Equations(), cfg.T0, model.InitialState(), cfg.Dt, tab)
	if err != nil {
		return nil, nil, nil, err
	}
	return model, integ, tab, nil
}

func runIntegration(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	model, integ, tab, err := buildIntegrator(cfg)
	if err != nil {
		return err
	}

	traj, err := integ.Run(context.Background(), cfg.TF)
	if err != nil {
		return err
	}

	vals := metrics.OverTrajectory(traj,
		metrics.NewEnergyDrift(model),
		metrics.NewMomentumDrift(model),
	)

	runID := "(not saved)"
	if !noSave {
		store := storage.New(dataDir)
		if err := store.Init(); err != nil {
			return err
		}
		runID, err = store.Save(storage.RunMetadata{
			Method:  tab.Name,
			Stages:  tab.Stages,
			Dt:      cfg.Dt,
			T0:      cfg.T0,
			TF:      cfg.TF,
			Bodies:  model.NumBodies(),
			Metrics: vals,
		}, traj)
		if err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "run\t%s\n", runID)
	fmt.Fprintf(w, "method\t%s (%d stages)\n", tab.Name, tab.Stages)
	fmt.Fprintf(w, "bodies\t%d\n", model.NumBodies())
	fmt.Fprintf(w, "dt\t%g\n", cfg.Dt)
	fmt.Fprintf(w, "interval\t[%g, %g]\n", cfg.T0, cfg.TF)
	fmt.Fprintf(w, "records\t%d\n", len(traj))
	fmt.Fprintf(w, "final t\t%g\n", traj.Final().T)
	fmt.Fprintf(w, "energy drift\t%.3e\n", vals["energy_drift"])
	fmt.Fprintf(w, "momentum drift\t%.3e\n", vals["momentum_drift"])
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no saved runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMETHOD\tBODIES\tDT\tTF\tRECORDS\tENERGY DRIFT")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%g\t%g\t%d\t%.2e\n",
			r.ID, r.Method, r.Bodies, r.Dt, r.TF, r.Records, r.Metrics["energy_drift"])
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.LoadMetadata(args[0])
	if err != nil {
		return err
	}
	traj, err := store.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	traj = traj.Every(sample)

	if len(components) > 0 {
		fmt.Print(viz.PlotComponents(traj, components, nil))
		return nil
	}

	fmt.Print(viz.PlotOrbits(traj, gravity.PositionSlots(meta.Bodies), 80, 24))
	fmt.Printf("run %s: %d bodies, t ∈ [%g, %g]\n", meta.ID, meta.Bodies, meta.T0, meta.TF)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.LoadMetadata(args[0])
	if err != nil {
		return err
	}
	traj, err := store.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	out := struct {
		storage.RunMetadata
		Times  []float64   `json:"times"`
		States [][]float64 `json:"states"`
	}{RunMetadata: meta}

	out.Times = traj.Times()
	out.States = make([][]float64, len(traj))
	for i, p := range traj {
		out.States[i] = p.Y
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	model, integ, _, err := buildIntegrator(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewLive(model, integ, cfg.TF), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func listTableaus(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTAGES\tORDER")
	for _, name := range tableau.Names() {
		tab, err := tableau.FromName(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%d\n", tab.Name, tab.Stages, tab.Order)
	}
	return w.Flush()
}
