package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"wxfield/internal/app"
	wxlog "wxfield/internal/log"
	"wxfield/internal/sims/surface"
)

func main() {
	cfg := app.NewConfig()
	if err := cfg.LoadEnv(); err != nil {
		log.Fatal(err)
	}
	cfg.Bind(flag.CommandLine)
	every := flag.Int("every", 12, "print every Nth retained frame")
	flag.Parse()

	lg := wxlog.New(cfg.LogLevel, cfg.LogDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	series, err := cfg.LoadSeries(ctx, lg)
	if err != nil {
		log.Fatal(err)
	}
	if err := series.Validate(); err != nil {
		log.Fatal(err)
	}

	sc := cfg.SurfaceConfig()
	d := surface.DiffusionNumber(surface.Alpha(series.Temperature[0]), sc.DT, sc.DX(), sc.DY())
	fmt.Printf("%s (%.2f, %.2f): %d forecast hours, %dx%d grid, dt=%gs, %d steps, diffusion number %.4f\n",
		cfg.Place, cfg.Lat, cfg.Lon, series.Hours(), sc.NX, sc.NY, sc.DT, sc.Steps(), d)

	start := time.Now()
	res, err := app.Simulate(ctx, sc, series, lg)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Retained %d frames (elapsed %s)\n\n", len(res.Frames), time.Since(start).Round(time.Millisecond))

	if *every <= 0 {
		*every = 1
	}
	fmt.Printf("%5s  %5s  %7s  %7s  %7s  %6s  %6s  %8s\n", "frame", "time", "min", "max", "centre", "wind", "hum%", "atm")
	for i, f := range res.Frames {
		if i%*every != 0 && i != len(res.Frames)-1 {
			continue
		}
		lo, hi := f.Temperature.MinMax()
		cx, cy := f.Temperature.Size().Center()
		fmt.Printf("%5d  %5s  %7.3f  %7.3f  %7.3f  %6.2f  %6.1f  %8.3f\n",
			i, surface.Clock(res.Time(i)), lo, hi, f.Temperature.At(cx, cy),
			f.WindMagnitude.At(0, 0), f.Humidity, f.Pressure)
	}
	if lg.LogFile != "" {
		fmt.Printf("\nLog: %s\n", lg.LogFile)
	}
}
