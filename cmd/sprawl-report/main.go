package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"crimson-sprawl/internal/app"
	"crimson-sprawl/internal/growth"
	"crimson-sprawl/internal/logging"
	"crimson-sprawl/internal/render"
	"crimson-sprawl/internal/scenario"

	"go.uber.org/zap"
)

type seedResult struct {
	seed   int64
	result scenario.Result
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	maxTicks := flag.Int("max-ticks", scenario.DefaultMaxTicks, "step limit per run")
	origins := flag.Int("origins", 3, "random origins to scatter when no scenario is given")
	seed := flag.Int64("seed", 1337, "scatter seed")
	seeds := flag.Int("seeds", 1, "number of consecutive scatter seeds to run")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel runs when -seeds > 1")
	pngPath := flag.String("png", "", "write a snapshot of the final world to this PNG file")
	pngScale := flag.Int("png-scale", 4, "pixels per lattice cell in the snapshot")
	flag.Parse()

	settings, err := cfg.Resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sprawl-report: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(settings.File.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sprawl-report: logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	gcfg := settings.Growth
	if settings.Script != nil {
		ticks := *maxTicks
		if settings.Script.MaxTicks > 0 {
			ticks = settings.Script.MaxTicks
		}
		name := settings.Script.Name
		if name == "" {
			name = settings.File.Simulation.Scenario
		}
		start := time.Now()
		res, world := scenario.RunWorld(gcfg, settings.Script.Designations, ticks)
		logResult(logger, name, res, time.Since(start))
		printResult(name, res)
		writeSnapshot(logger, world, *pngPath, *pngScale)
		return
	}

	if *seeds <= 1 {
		designations := scenario.Scatter(*seed, *origins, gcfg.WorldHalfExtent)
		start := time.Now()
		res, world := scenario.RunWorld(gcfg, designations, *maxTicks)
		name := fmt.Sprintf("scatter seed=%d", *seed)
		logResult(logger, name, res, time.Since(start))
		printResult(name, res)
		writeSnapshot(logger, world, *pngPath, *pngScale)
		return
	}

	runSeeds(logger, gcfg, *seed, *seeds, *origins, *maxTicks, *workers)
}

func runSeeds(logger *zap.Logger, cfg growth.Config, first int64, count, origins, maxTicks, workers int) {
	if workers < 1 {
		workers = 1
	}
	fmt.Printf("Running %d scatter seeds (%d origins, %d workers, %d max ticks)\n", count, origins, workers, maxTicks)

	jobs := make(chan int64)
	results := make(chan seedResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range jobs {
				designations := scenario.Scatter(s, origins, cfg.WorldHalfExtent)
				results <- seedResult{seed: s, result: scenario.Run(cfg, designations, maxTicks)}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for i := 0; i < count; i++ {
			jobs <- first + int64(i)
		}
		close(jobs)
	}()

	start := time.Now()
	var all []seedResult
	for r := range results {
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].seed < all[j].seed })

	completed := 0
	var coverage float64
	for _, r := range all {
		printResult(fmt.Sprintf("seed %d", r.seed), r.result)
		if r.result.Complete {
			completed++
		}
		coverage += r.result.Coverage
	}
	logger.Info("seed batch finished",
		zap.Int("runs", len(all)),
		zap.Int("completed", completed),
		zap.Float64("mean_coverage", coverage/float64(max(len(all), 1))),
		zap.Duration("elapsed", time.Since(start).Round(time.Millisecond)))
}

func printResult(name string, res scenario.Result) {
	status := "incomplete"
	if res.Complete {
		status = fmt.Sprintf("complete at step %d", res.TicksToComplete)
	}
	fmt.Printf("%s: %s, steps=%d origins=%d starved=%d patches=%d coverage=%.3f peak=%d@%d\n",
		name, status, res.Steps, res.Origins, res.Starved, res.Patches, res.Coverage, res.PeakInserted, res.PeakInsertedStep)
}

func logResult(logger *zap.Logger, name string, res scenario.Result, elapsed time.Duration) {
	logger.Info("run finished",
		zap.String("run", name),
		zap.Bool("complete", res.Complete),
		zap.Int("ticks_to_complete", res.TicksToComplete),
		zap.Int("steps", res.Steps),
		zap.Int("origins", res.Origins),
		zap.Int("patches", res.Patches),
		zap.Float64("coverage", res.Coverage),
		zap.Duration("elapsed", elapsed.Round(time.Millisecond)))
}

func writeSnapshot(logger *zap.Logger, world *growth.World, path string, scale int) {
	if path == "" || world == nil {
		return
	}
	img := render.Image(world.Size(), world.Cells(), world.Palette(), scale)
	f, err := os.Create(path)
	if err != nil {
		logger.Error("snapshot create failed", zap.String("path", path), zap.Error(err))
		return
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		logger.Error("snapshot encode failed", zap.String("path", path), zap.Error(err))
		return
	}
	logger.Info("snapshot written", zap.String("path", path))
}
