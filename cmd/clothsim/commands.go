package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/clothsim/internal/analysis"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/export"
	"github.com/san-kum/clothsim/internal/sim"
	"github.com/san-kum/clothsim/internal/storage"
	"github.com/san-kum/clothsim/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	r, opts, err := sim.FromConfig(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := r.Stepper().Cloth()
	fmt.Printf("running %s: %d particles, %d constraints, %d ticks...\n", cfg.Name, c.Len(), len(c.Constraints), opts.Ticks)
	start := time.Now()

	result, err := r.Run(ctx, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v (%.0f ticks/s)\n", elapsed, float64(result.Ticks)/elapsed.Seconds())
	fmt.Printf("frames: %d\n", len(result.Frames))
	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	if noSave {
		return nil
	}
	runID, err := storage.New(dataDir).Save(cfg, result)
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	return viz.Run(cfg)
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tLATTICE\tSHAPE\tITERS\tTICKS\tMAX STRETCH")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%dx%d\t%s\t%d\t%d\t%.4f\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Lattice.Width, run.Lattice.Height, run.Lattice.Depth,
			run.Shape,
			run.Iterations,
			run.Ticks,
			run.Metrics["max_stretch"],
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	history, times, err := st.LoadHistory(args[0])
	if err != nil {
		return err
	}
	if len(times) < 2 {
		return fmt.Errorf("run %s has %d samples, need at least 2", args[0], len(times))
	}

	names := sortedKeys(history)
	if metricName != "" {
		if _, ok := history[metricName]; !ok {
			return fmt.Errorf("unknown metric %q (available: %s)", metricName, strings.Join(names, ", "))
		}
		names = []string{metricName}
	}

	for _, name := range names {
		graph := asciigraph.Plot(history[name],
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption(fmt.Sprintf("%s over %.2fs", name, times[len(times)-1])))
		fmt.Println(graph)
		fmt.Println()
	}

	if svgOut == "" {
		return nil
	}
	f, err := os.Create(svgOut)
	if err != nil {
		return err
	}
	defer f.Close()
	return export.SeriesSVG(f, times, history[names[0]], 800, 300, "#00ffcc")
}

func exportRun(cmd *cobra.Command, args []string) error {
	var w io.Writer = os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	st := storage.New(dataDir)
	switch format {
	case "json":
		return st.ExportJSON(w, args[0])
	case "svg":
		return exportFrameSVG(w, st, args[0])
	}
	return fmt.Errorf("unknown format %q (json or svg)", format)
}

func exportFrameSVG(w io.Writer, st *storage.Store, runID string) error {
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, _, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("run %s has no frames", runID)
	}

	l := cloth.Lattice{
		Width:        meta.Lattice.Width,
		Height:       meta.Lattice.Height,
		Depth:        meta.Lattice.Depth,
		RestDistance: meta.Lattice.RestDistance,
		Mass:         cloth.DefaultMass,
	}
	canvas, err := export.RenderFrame(l, meta.Shape, frames[len(frames)-1], cloth.Floor{}, 80, 40)
	if err != nil {
		return err
	}
	return export.CanvasSVG(w, canvas, 4)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frames, times, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(times) < 4 {
		return fmt.Errorf("run %s has %d frames, need at least 4", args[0], len(times))
	}
	dt := times[1] - times[0]

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "AXIS\tMEAN\tSWAY FREQ\tAMPLITUDE\tSETTLED")
	var spectrum []float64
	for axis, name := range []string{"x", "y", "z"} {
		series := analysis.Centroid(frames, axis)
		freq, amp, err := analysis.Dominant(series, dt)
		if err != nil {
			return err
		}
		settled := "no"
		if at, ok := analysis.SettleTime(times, series, settleTol); ok {
			settled = fmt.Sprintf("%.2fs", at)
		}
		mean := 0.0
		for _, v := range series {
			mean += v
		}
		mean /= float64(len(series))
		fmt.Fprintf(w, "%s\t%.3f\t%.3f Hz\t%.4f\t%s\n", name, mean, freq, amp, settled)

		if name == "x" {
			_, spectrum, _ = analysis.Spectrum(series, dt)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(spectrum) > 2 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(spectrum[1:],
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("x centroid spectrum, %.3f Hz per bin", 1/(float64(len(times))*dt)))))
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSHAPE\tLATTICE\tITERS\tWIND\tPINS")
	for _, name := range config.ListPresets() {
		cfg, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		pins := strings.Join(cfg.PinRows, ",")
		if pins == "" {
			pins = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%dx%dx%d\t%d\t%s\t%s\n",
			name,
			cfg.Generator.Shape,
			cfg.Lattice.Width, cfg.Lattice.Height, cfg.Lattice.Depth,
			cfg.Solver.Iterations,
			cfg.Wind.Mode,
			pins,
		)
	}
	return w.Flush()
}

func printConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(cfg)
}

func sweepIterations(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if len(sweepIters) == 0 {
		return fmt.Errorf("no iteration counts given")
	}

	cfgs := make([]*config.Config, len(sweepIters))
	for i, n := range sweepIters {
		cfg := base.Clone()
		cfg.Solver.Iterations = n
		if err := cfg.Validate(); err != nil {
			return err
		}
		cfgs[i] = cfg
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("sweeping %s over %d iteration counts, %d ticks each...\n", base.Name, len(cfgs), base.Run.Ticks)
	start := time.Now()
	results, err := sim.NewEnsemble(cfgs, 0).Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	final := make([]float64, len(results))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ITERS\tMAX STRETCH\tFINAL STRETCH\tSTABILITY")
	for i, res := range results {
		h := res.History["max_stretch"]
		if len(h) > 0 {
			final[i] = h[len(h)-1]
		}
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.3f\n", sweepIters[i], res.Metrics["max_stretch"], final[i], res.Metrics["stability"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(final) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(final,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("final max stretch by iteration count")))
	}
	return nil
}

func benchStepper(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if benchRuns < 1 {
		return fmt.Errorf("runs must be positive, got %d", benchRuns)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "preset: %s  particles: %d  ticks: %d\n\n", base.Name, base.ClothLattice().Len(), base.Run.Ticks)
	fmt.Fprintln(w, "WORKERS\tBEST\tMEAN\tTICKS/S")

	for _, n := range benchPool {
		cfg := base.Clone()
		cfg.Solver.Workers = n
		r, opts, err := sim.FromConfig(cfg)
		if err != nil {
			return err
		}
		opts.SampleEvery = 0

		var best, total time.Duration
		for i := 0; i < benchRuns; i++ {
			start := time.Now()
			if _, err := r.Run(context.Background(), opts); err != nil {
				return err
			}
			d := time.Since(start)
			total += d
			if best == 0 || d < best {
				best = d
			}
		}
		mean := total / time.Duration(benchRuns)
		fmt.Fprintf(w, "%d\t%v\t%v\t%.0f\n", n, best, mean, float64(opts.Ticks)/best.Seconds())
	}
	return w.Flush()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
