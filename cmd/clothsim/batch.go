package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/san-kum/clothsim/internal/automation"
	"github.com/san-kum/clothsim/internal/optim"
	"github.com/san-kum/clothsim/internal/sim"
	"github.com/san-kum/clothsim/internal/storage"
	"github.com/spf13/cobra"
)

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if sc.Description != "" {
		fmt.Printf("%s: %s\n", sc.Name, sc.Description)
	}
	results, err := automation.RunScenario(ctx, sc, storage.New(dataDir), os.Stdout)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nSTEP\tPRESET\tTICKS\tMAX STRETCH\tRUN ID")
	for i, r := range results {
		id := r.RunID
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%.4f\t%s\n", i+1, r.Config.Name, r.Result.Ticks, r.Result.Metrics["max_stretch"], id)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if base.Wind.Mode != "noise" {
		fmt.Printf("note: wind mode is %q, seeds only matter for noise wind\n", base.Wind.Mode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunMonteCarlo(ctx, &automation.MonteCarloConfig{
		Base:   base,
		Runs:   mcRuns,
		Seed:   base.Wind.Seed,
		Jitter: mcJitter,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tWIND\tMAX STRETCH\tENERGY")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%.3f\t%.4f\t%.2f\n", r.Seed, r.WindStrength, r.Metrics["max_stretch"], r.Metrics["energy"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	mean, std, stable := automation.MonteCarloStats(results, "max_stretch")
	fmt.Printf("\nmax stretch: %.4f ± %.4f, stable %d/%d\n", mean, std, stable, len(results))
	return nil
}

func tuneSolver(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	iters := make([]float64, len(tuneIters))
	for i, n := range tuneIters {
		iters[i] = float64(n)
	}
	grid := optim.NewGridSearch(optim.Iterations(iters...), optim.Damping(tuneDamp...))
	objective := func(p map[string]float64, r *sim.Result) float64 {
		return r.Metrics["max_stretch"] + tuneCost*p["iterations"]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	points, best, err := grid.Search(ctx, base, objective)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ITERS\tDAMPING\tSCORE\t")
	for i, p := range points {
		mark := ""
		if i == best {
			mark = "<- best"
		}
		fmt.Fprintf(w, "%.0f\t%.3f\t%.4f\t%s\n", p.Params["iterations"], p.Params["damping"], p.Value, mark)
	}
	return w.Flush()
}
