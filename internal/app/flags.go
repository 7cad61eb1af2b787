package app

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"wxfield/internal/forecast"
	"wxfield/internal/log"
	"wxfield/internal/sims/surface"
)

// Config represents the command-line parameters shared by the wxfield tools.
type Config struct {
	Source string
	File   string
	Lat    float64
	Lon    float64
	Place  string

	// Sim holds surface.FromMap keys set with repeated -set key=value flags.
	Sim map[string]string

	LogLevel string
	LogDir   string

	Scale int
	FPS   int
	TPS   int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Source:   "openmeteo",
		Lat:      forecast.DefaultLocation.Lat,
		Lon:      forecast.DefaultLocation.Lon,
		Place:    forecast.DefaultLocation.Name,
		Sim:      map[string]string{},
		LogLevel: "info",
		Scale:    10,
		FPS:      10,
		TPS:      60,
	}
}

// LoadEnv reads an optional .env file and applies WXFIELD_* variables. It must
// run before Bind so that flags still override the environment.
func (c *Config) LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load env: %w", err)
	}
	if v := os.Getenv("WXFIELD_SOURCE"); v != "" {
		c.Source = v
	}
	if v := os.Getenv("WXFIELD_FORECAST_FILE"); v != "" {
		c.File = v
		if os.Getenv("WXFIELD_SOURCE") == "" {
			c.Source = "file"
		}
	}
	if v := os.Getenv("WXFIELD_PLACE"); v != "" {
		c.Place = v
	}
	for key, dst := range map[string]*float64{"WXFIELD_LAT": &c.Lat, "WXFIELD_LON": &c.Lon} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = parsed
	}
	return nil
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Source, "source", c.Source, "forecast source ("+strings.Join(forecast.Names(), ", ")+")")
	fs.StringVar(&c.File, "file", c.File, "forecast JSON for the file source")
	fs.Float64Var(&c.Lat, "lat", c.Lat, "latitude")
	fs.Float64Var(&c.Lon, "lon", c.Lon, "longitude")
	fs.StringVar(&c.Place, "place", c.Place, "location name for display")
	fs.Func("set", "solver parameter as key=value (repeatable)", func(v string) error {
		key, value, ok := strings.Cut(v, "=")
		if !ok || key == "" {
			return fmt.Errorf("expected key=value, got %q", v)
		}
		c.Sim[strings.TrimSpace(key)] = strings.TrimSpace(value)
		return nil
	})
	fs.StringVar(&c.LogLevel, "loglevel", c.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&c.LogDir, "logdir", c.LogDir, "log directory (default: user cache dir)")
}

// BindViewer attaches the playback flags.
func (c *Config) BindViewer(fs *flag.FlagSet) {
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.FPS, "fps", c.FPS, "playback frames per second")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
}

// Location returns the forecast location the flags describe.
func (c *Config) Location() forecast.Location {
	return forecast.Location{Name: c.Place, Lat: c.Lat, Lon: c.Lon}
}

// SurfaceConfig returns the solver configuration with -set overrides applied.
func (c *Config) SurfaceConfig() surface.Config {
	return surface.FromMap(c.Sim)
}

// SourceOptions returns the options passed to the forecast source factory.
func (c *Config) SourceOptions() map[string]string {
	opts := map[string]string{}
	if c.File != "" {
		opts["path"] = c.File
	}
	if h, ok := c.Sim["hours"]; ok {
		// Synthetic forecasts cover the run plus the interpolation pair.
		if parsed, err := strconv.ParseFloat(h, 64); err == nil && parsed >= 0 {
			opts["hours"] = strconv.Itoa(int(parsed) + 2)
		}
	}
	return opts
}

// LoadSeries opens the configured source and fetches the forecast.
func (c *Config) LoadSeries(ctx context.Context, lg *log.Logger) (forecast.Series, error) {
	src, err := forecast.Open(c.Source, c.SourceOptions())
	if err != nil {
		return forecast.Series{}, err
	}
	loc := c.Location()
	lg.Info("fetching forecast", slog.String("source", src.Name()), slog.String("location", loc.Name),
		slog.Float64("lat", loc.Lat), slog.Float64("lon", loc.Lon))
	series, err := src.Fetch(ctx, loc)
	if err != nil {
		return forecast.Series{}, fmt.Errorf("%s: %w", src.Name(), err)
	}
	return series, nil
}

// Simulate runs the solver to completion, warning first when the timestep
// exceeds the explicit diffusion limit at the initial temperature.
func Simulate(ctx context.Context, cfg surface.Config, series forecast.Series, lg *log.Logger) (surface.Result, error) {
	if len(series.Temperature) > 0 {
		d := surface.DiffusionNumber(surface.Alpha(series.Temperature[0]), cfg.DT, cfg.DX(), cfg.DY())
		if d > 0.5 {
			lg.Warn("timestep exceeds the diffusion stability limit",
				slog.Float64("diffusion_number", d), slog.Float64("dt", cfg.DT))
		}
	}
	sim, err := surface.New(cfg, series, surface.WithLogger(lg))
	if err != nil {
		return surface.Result{}, err
	}
	return sim.Run(ctx)
}
