package main

import (
	"fmt"
	"os"

	"github.com/san-kum/clothsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string

	ticks        int
	sampleEvery  int
	iterations   int
	workers      int
	timestep     float64
	damping      float64
	gravity      float64
	windMode     string
	windStrength float64
	seed         int64
	shape        string
	width        int
	height       int
	depth        int
	noFloor      bool
	pinRows      []string
	noSave       bool

	metricName string
	svgOut     string
	format     string
	outFile    string
	sweepIters []int
	benchRuns  int
	benchPool  []int
	settleTol  float64
	mcRuns     int
	mcJitter   float64
	tuneIters  []int
	tuneDamp   []float64
	tuneCost   float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clothsim",
		Short: "mass-spring cloth simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunMenu()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".clothsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a simulation and store it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSceneFlags(runCmd)
	runCmd.Flags().IntVar(&ticks, "ticks", 0, "physics steps to run")
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", 0, "store a frame every n ticks")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "print metrics without storing the run")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "simulate with live terminal visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSceneFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the metric history of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&metricName, "metric", "", "metric to plot (default all)")
	plotCmd.Flags().StringVar(&svgOut, "svg", "", "also write the plot to this SVG file")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as JSON, or its final frame as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "json", "json or svg")
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "sway frequency and settling time of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().Float64Var(&settleTol, "tol", 0.5, "settling band around the final centroid")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config [preset]",
		Short: "print the resolved configuration as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printConfig,
	}
	addSceneFlags(configCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "compare relaxation iteration counts",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepIterations,
	}
	addSceneFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&ticks, "ticks", 0, "physics steps per run")
	sweepCmd.Flags().IntSliceVar(&sweepIters, "iters", []int{1, 2, 4, 8, 16, 32}, "iteration counts to compare")

	benchCmd := &cobra.Command{
		Use:   "bench [preset]",
		Short: "measure tick throughput",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchStepper,
	}
	addSceneFlags(benchCmd)
	benchCmd.Flags().IntVar(&ticks, "ticks", 0, "physics steps per run")
	benchCmd.Flags().IntVar(&benchRuns, "runs", 3, "repetitions per worker count")
	benchCmd.Flags().IntSliceVar(&benchPool, "pool", []int{1, 2, 4, 8}, "worker counts to compare")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of simulations",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [preset]",
		Short: "repeat a run with random wind seeds and strengths",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMonteCarlo,
	}
	addSceneFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&ticks, "ticks", 0, "physics steps per run")
	monteCarloCmd.Flags().IntVar(&mcRuns, "runs", 8, "number of runs")
	monteCarloCmd.Flags().Float64Var(&mcJitter, "jitter", 0.25, "relative wind strength jitter")

	tuneCmd := &cobra.Command{
		Use:   "tune [preset]",
		Short: "grid search iterations and damping for low stretch at low cost",
		Args:  cobra.MaximumNArgs(1),
		RunE:  tuneSolver,
	}
	addSceneFlags(tuneCmd)
	tuneCmd.Flags().IntVar(&ticks, "ticks", 0, "physics steps per run")
	tuneCmd.Flags().IntSliceVar(&tuneIters, "iters", []int{2, 5, 10, 20}, "iteration counts")
	tuneCmd.Flags().Float64SliceVar(&tuneDamp, "damp", []float64{0.01, 0.03, 0.1}, "damping values")
	tuneCmd.Flags().Float64Var(&tuneCost, "cost", 0.002, "objective penalty per iteration")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, analyzeCmd, presetsCmd, configCmd,
		sweepCmd, benchCmd, scenarioCmd, monteCarloCmd, tuneCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.IntVar(&iterations, "iterations", 0, "relaxation iterations per tick")
	f.IntVar(&workers, "workers", 0, "relaxation workers (1 = serial)")
	f.Float64Var(&timestep, "timestep", 0, "fixed timestep in seconds")
	f.Float64Var(&damping, "damping", 0, "velocity damping in [0, 1)")
	f.Float64Var(&gravity, "gravity", 0, "gravity acceleration")
	f.StringVar(&windMode, "wind", "", "wind mode: none, constant, oscillating, noise")
	f.Float64Var(&windStrength, "wind-strength", 0, "wind strength")
	f.Int64Var(&seed, "seed", 0, "noise wind seed")
	f.StringVar(&shape, "shape", "", "generator: cube, plane, sphere")
	f.IntVar(&width, "width", 0, "lattice width")
	f.IntVar(&height, "height", 0, "lattice height")
	f.IntVar(&depth, "depth", 0, "lattice depth")
	f.BoolVar(&noFloor, "no-floor", false, "disable the floor")
	f.StringSliceVar(&pinRows, "pin", nil, "pin selections: top, bottom, left, right, back, front, top-corners")
}
