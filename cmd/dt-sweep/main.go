package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"wxfield/internal/app"
	wxlog "wxfield/internal/log"
	"wxfield/internal/sims/surface"
)

func parseList(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("timestep %q: %w", part, err)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no timesteps given")
	}
	return out, nil
}

func main() {
	cfg := app.NewConfig()
	cfg.Source = "synthetic"
	if err := cfg.LoadEnv(); err != nil {
		log.Fatal(err)
	}
	cfg.Bind(flag.CommandLine)
	dtList := flag.String("dts", "1,5,10,30,60,120,300", "comma separated timesteps in seconds")
	workers := flag.Int("workers", runtime.NumCPU(), "number of runs in flight")
	flag.Parse()

	dts, err := parseList(*dtList)
	if err != nil {
		log.Fatal(err)
	}
	lg := wxlog.New(cfg.LogLevel, cfg.LogDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	series, err := cfg.LoadSeries(ctx, lg)
	if err != nil {
		log.Fatal(err)
	}
	base := cfg.SurfaceConfig()

	fmt.Printf("Sweeping %d timesteps (%d workers, %dx%d grid, %.1f h)\n",
		len(dts), *workers, base.NX, base.NY, base.TotalTime/3600)
	start := time.Now()
	results, err := surface.TimestepSweep(ctx, base, series, dts, *workers)
	if err != nil {
		log.Fatal(err)
	}
	elapsed := time.Since(start)

	sort.Slice(results, func(i, j int) bool { return results[i].DT < results[j].DT })
	fmt.Printf("\n%8s  %7s  %10s  %-9s  %6s  %8s  %8s  %8s\n", "dt", "steps", "diffusion", "status", "frames", "centre", "min", "max")
	largestStable := -1.0
	for _, r := range results {
		status := "stable"
		if !r.Stable {
			status = fmt.Sprintf("fail@%d", r.FailedStep)
			fmt.Printf("%8g  %7d  %10.4f  %-9s  %6s  %8s  %8s  %8s\n", r.DT, r.Steps, r.DiffusionNumber, status, "-", "-", "-", "-")
			continue
		}
		if r.DT > largestStable {
			largestStable = r.DT
		}
		fmt.Printf("%8g  %7d  %10.4f  %-9s  %6d  %8.3f  %8.3f  %8.3f\n",
			r.DT, r.Steps, r.DiffusionNumber, status, r.Frames, r.FinalCenter, r.FinalMin, r.FinalMax)
	}
	fmt.Printf("\nElapsed %s\n", elapsed.Round(time.Millisecond))
	if largestStable > 0 {
		fmt.Printf("Largest stable dt: %gs\n", largestStable)
	} else {
		fmt.Println("No stable timestep in the sweep")
	}
}
