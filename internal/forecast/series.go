package forecast

import (
	"errors"
	"fmt"
	"math"
)

const secondsPerHour = 3600.0

var (
	ErrInsufficientForecastData = errors.New("forecast needs at least 2 hourly samples")
	ErrMismatchedSeries         = errors.New("forecast series lengths differ")
	ErrMissingForecastValue     = errors.New("forecast value missing")
	ErrNegativeTime             = errors.New("sample time must be a finite non-negative number of seconds")
)

// Series holds the seven parallel hourly series a simulation is driven by.
// Index 0 is hour 0 ("now"). The JSON tags match the hourly block of the
// Open-Meteo forecast API.
type Series struct {
	Time          []string  `json:"time,omitempty"`
	Temperature   []float64 `json:"temperature_2m"`       // °C
	WindSpeed     []float64 `json:"wind_speed_10m"`       // m/s
	WindDirection []float64 `json:"wind_direction_10m"`   // degrees
	Precipitation []float64 `json:"precipitation"`        // mm
	CloudCover    []float64 `json:"cloudcover"`           // %
	Humidity      []float64 `json:"relative_humidity_2m"` // %
	Pressure      []float64 `json:"pressure_msl"`         // hPa
}

// Sample is the set of forecast scalars evaluated at one instant.
type Sample struct {
	Temperature   float64
	WindSpeed     float64
	WindDirection float64
	Precipitation float64
	CloudCover    float64
	Humidity      float64
	Pressure      float64
}

type namedSeries struct {
	name   string
	values []float64
}

func (s *Series) fields() []namedSeries {
	return []namedSeries{
		{"temperature", s.Temperature},
		{"wind speed", s.WindSpeed},
		{"wind direction", s.WindDirection},
		{"precipitation", s.Precipitation},
		{"cloud cover", s.CloudCover},
		{"humidity", s.Humidity},
		{"pressure", s.Pressure},
	}
}

// Hours returns the number of hourly samples H.
func (s *Series) Hours() int { return len(s.Temperature) }

// Validate checks that all seven series hold the same number of samples and
// that there are at least two of them.
func (s *Series) Validate() error {
	fields := s.fields()
	for _, f := range fields {
		if len(f.values) < 2 {
			return fmt.Errorf("%w: %s has %d", ErrInsufficientForecastData, f.name, len(f.values))
		}
	}
	h := len(s.Temperature)
	for _, f := range fields[1:] {
		if len(f.values) != h {
			return fmt.Errorf("%w: %s has %d samples, temperature has %d", ErrMismatchedSeries, f.name, len(f.values), h)
		}
	}
	return nil
}

// At returns the raw hourly values at index i.
func (s *Series) At(i int) Sample {
	return Sample{
		Temperature:   s.Temperature[i],
		WindSpeed:     s.WindSpeed[i],
		WindDirection: s.WindDirection[i],
		Precipitation: s.Precipitation[i],
		CloudCover:    s.CloudCover[i],
		Humidity:      s.Humidity[i],
		Pressure:      s.Pressure[i],
	}
}

// Append adds one hourly sample to the end of every series.
func (s *Series) Append(v Sample) {
	s.Temperature = append(s.Temperature, v.Temperature)
	s.WindSpeed = append(s.WindSpeed, v.WindSpeed)
	s.WindDirection = append(s.WindDirection, v.WindDirection)
	s.Precipitation = append(s.Precipitation, v.Precipitation)
	s.CloudCover = append(s.CloudCover, v.CloudCover)
	s.Humidity = append(s.Humidity, v.Humidity)
	s.Pressure = append(s.Pressure, v.Pressure)
}

// Constant returns a series of the given length repeating v every hour.
func Constant(hours int, v Sample) Series {
	var s Series
	for i := 0; i < hours; i++ {
		s.Append(v)
	}
	return s
}

// Sample linearly interpolates every series at t seconds after hour 0.
//
// The hour index is clamped to H-2, so past the last hourly sample the final
// pair keeps being blended with the unclamped fractional hour. This is the
// intended behavior at the end of the forecast range, not an error.
func (s *Series) Sample(t float64) (Sample, error) {
	if t < 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		return Sample{}, fmt.Errorf("%w: %v", ErrNegativeTime, t)
	}
	if err := s.Validate(); err != nil {
		return Sample{}, err
	}
	idx, frac := Position(t, s.Hours())
	a, b := s.At(idx), s.At(idx+1)
	return Sample{
		Temperature:   Lerp(a.Temperature, b.Temperature, frac),
		WindSpeed:     Lerp(a.WindSpeed, b.WindSpeed, frac),
		WindDirection: Lerp(a.WindDirection, b.WindDirection, frac),
		Precipitation: Lerp(a.Precipitation, b.Precipitation, frac),
		CloudCover:    Lerp(a.CloudCover, b.CloudCover, frac),
		Humidity:      Lerp(a.Humidity, b.Humidity, frac),
		Pressure:      Lerp(a.Pressure, b.Pressure, frac),
	}, nil
}

// Position returns the lower hour index, clamped to hours-2, and the
// fractional part of the hour for t seconds.
func Position(t float64, hours int) (int, float64) {
	h := t / secondsPerHour
	idx := hours - 2
	if h < float64(hours-1) {
		idx = int(math.Floor(h))
	}
	return idx, math.Mod(h, 1)
}

// Lerp blends a and b with weights (1-frac, frac).
func Lerp(a, b, frac float64) float64 {
	return a*(1-frac) + b*frac
}
