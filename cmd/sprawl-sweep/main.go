package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	"crimson-sprawl/internal/app"
	"crimson-sprawl/internal/growth"
	"crimson-sprawl/internal/scenario"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	maxTicks := flag.Int("max-ticks", 600, "step limit per candidate run")
	passes := flag.Int("passes", 3, "coordinate-descent passes to execute")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel candidate evaluations")
	target := flag.Float64("target-coverage", 0.5, "coverage a run must reach to count as filling the world")
	samples := flag.Int("samples", 0, "random configs to try before the descent")
	origins := flag.Int("origins", 3, "random origins to scatter when no scenario is given")
	seed := flag.Int64("seed", 1337, "seed for the scatter and random samples")
	manualOnly := flag.Bool("manual", false, "skip sweeping and only evaluate the resolved config")
	flag.Parse()

	settings, err := cfg.Resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sprawl-sweep: %v\n", err)
		os.Exit(1)
	}

	base := settings.Growth
	designations := scenario.Scatter(*seed, *origins, base.WorldHalfExtent)
	if settings.Script != nil {
		designations = settings.Script.Designations
	}

	baseline := scenario.Run(base, designations, *maxTicks)
	fmt.Printf("Baseline: %s\n", describe(baseline))

	if *manualOnly {
		fmt.Println("Manual evaluation requested; skipping sweep.")
		printConfig(base)
		return
	}

	best, result, trace := scenario.Sweep(base, designations, scenario.SweepOptions{
		MaxTicks:       *maxTicks,
		Passes:         *passes,
		Workers:        *workers,
		TargetCoverage: *target,
		RandomSamples:  *samples,
		Seed:           *seed,
	})

	fmt.Printf("\nBest found: %s\n", describe(result))
	printConfig(best)

	if len(trace) > 1 {
		fmt.Println("\nImprovements:")
		for _, rec := range trace[1:] {
			fmt.Printf("  pass %d: %s=%s -> %s\n", rec.Pass, rec.Parameter, rec.Value, describe(rec.Result))
		}
	}
}

func describe(res scenario.Result) string {
	done := "incomplete"
	if res.Complete {
		done = fmt.Sprintf("complete at %d", res.TicksToComplete)
	}
	return fmt.Sprintf("%s, coverage %.3f, patches %d, starved %d/%d, peak %d at step %d",
		done, res.Coverage, res.Patches, res.Starved, res.Origins, res.PeakInserted, res.PeakInsertedStep)
}

func printConfig(cfg growth.Config) {
	fmt.Println("Parameters:")
	values := map[string]string{
		"expansion_rate":       fmt.Sprintf("%.3f", cfg.ExpansionRate),
		"max_radius":           fmt.Sprintf("%.3f", cfg.MaxRadius),
		"maturation_rate":      fmt.Sprintf("%.3f", cfg.MaturationRate),
		"starvation_threshold": fmt.Sprintf("%.3f", cfg.StarvationThreshold),
		"initial_radius":       fmt.Sprintf("%.3f", cfg.InitialRadius),
		"tick_interval":        cfg.TickInterval.String(),
	}
	for _, key := range growth.OverrideKeys() {
		if v, ok := values[key]; ok {
			fmt.Printf("  %s=%s\n", key, v)
		}
	}
	var set []string
	for _, key := range []string{"expansion_rate", "max_radius", "maturation_rate", "starvation_threshold"} {
		set = append(set, "-set "+key+"="+values[key])
	}
	fmt.Printf("\nReplay with: %s\n", strings.Join(set, " "))
}
