package forecast

import (
	"context"
	"math"

	"wxfield/pkg/core"
)

// SyntheticSource produces a deterministic diurnal forecast for offline runs.
// The same seed and location always yield the same series.
type SyntheticSource struct {
	Hours      int
	Seed       int64
	MeanTemp   float64 // °C
	DailySwing float64 // peak-to-peak °C
}

// NewSyntheticSource returns a source with reasonable mid-latitude defaults.
func NewSyntheticSource(hours int, seed int64) *SyntheticSource {
	if hours < 2 {
		hours = 2
	}
	return &SyntheticSource{Hours: hours, Seed: seed, MeanTemp: 22, DailySwing: 10}
}

func (s *SyntheticSource) Name() string { return "synthetic" }

func (s *SyntheticSource) Fetch(ctx context.Context, loc Location) (Series, error) {
	if err := ctx.Err(); err != nil {
		return Series{}, err
	}
	rng := core.NewRNG(s.Seed ^ int64(math.Float64bits(loc.Lat)) ^ int64(math.Float64bits(loc.Lon)<<1))

	var out Series
	dir := rng.Range(0, 360)
	cloud := rng.Range(10, 60)
	pressure := rng.Range(1006, 1018)
	for h := 0; h < s.Hours; h++ {
		// Temperature peaks mid-afternoon and bottoms out before dawn.
		phase := 2 * math.Pi * (float64(h%24) - 9) / 24
		temp := s.MeanTemp + 0.5*s.DailySwing*math.Sin(phase) + rng.Jitter(0.4)

		dir = math.Mod(dir+rng.Jitter(15)+360, 360)
		cloud = clampRange(cloud+rng.Jitter(8), 0, 100)
		pressure = clampRange(pressure+rng.Jitter(0.6), 980, 1040)

		rain := 0.0
		if cloud > 70 {
			rain = rng.Range(0, (cloud-70)/10)
		}
		out.Append(Sample{
			Temperature:   temp,
			WindSpeed:     math.Max(0, 3+1.5*math.Sin(phase)+rng.Jitter(0.8)),
			WindDirection: dir,
			Precipitation: rain,
			CloudCover:    cloud,
			Humidity:      clampRange(60-1.5*(temp-s.MeanTemp)+0.2*cloud+rng.Jitter(3), 5, 100),
			Pressure:      pressure,
		})
	}
	return out, nil
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func init() {
	Register("synthetic", func(cfg map[string]string) (Source, error) {
		hours, err := intOption(cfg, "hours", 48)
		if err != nil {
			return nil, err
		}
		seed, err := intOption(cfg, "seed", 1337)
		if err != nil {
			return nil, err
		}
		src := NewSyntheticSource(hours, int64(seed))
		if src.MeanTemp, err = floatOption(cfg, "mean_temp", src.MeanTemp); err != nil {
			return nil, err
		}
		if src.DailySwing, err = floatOption(cfg, "daily_swing", src.DailySwing); err != nil {
			return nil, err
		}
		return src, nil
	})
}
