package forecast

import (
	"errors"
	"math"
	"testing"
)

func rampSeries(temps ...float64) Series {
	var s Series
	for i, temp := range temps {
		s.Append(Sample{
			Temperature:   temp,
			WindSpeed:     float64(i),
			WindDirection: 90 * float64(i),
			Precipitation: 0.5 * float64(i),
			CloudCover:    10 * float64(i),
			Humidity:      50 + float64(i),
			Pressure:      1000 + float64(i),
		})
	}
	return s
}

func TestSampleEndpointsExact(t *testing.T) {
	s := rampSeries(10.3, 17.9, 12.1)

	got, err := s.Sample(0)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if got != s.At(0) {
		t.Fatalf("frac=0 must return hour 0 exactly, got %+v", got)
	}

	got, err = s.Sample(3600)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if got != s.At(1) {
		t.Fatalf("t=1h must return hour 1 exactly, got %+v", got)
	}
}

func TestSampleInterpolatesEverySeries(t *testing.T) {
	s := rampSeries(10, 20, 30)
	got, err := s.Sample(0.25 * 3600)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	want := Sample{
		Temperature:   12.5,
		WindSpeed:     0.25,
		WindDirection: 22.5,
		Precipitation: 0.125,
		CloudCover:    2.5,
		Humidity:      50.25,
		Pressure:      1000.25,
	}
	if got != want {
		t.Fatalf("interpolation mismatch:\n got  %+v\n want %+v", got, want)
	}
}

func TestSampleFollowsLerpFormula(t *testing.T) {
	s := rampSeries(-4.2, 11.7)
	for _, frac := range []float64{0, 0.1, 0.33, 0.5, 0.9} {
		got, err := s.Sample(frac * 3600)
		if err != nil {
			t.Fatalf("sample: %v", err)
		}
		want := -4.2*(1-frac) + 11.7*frac
		if math.Abs(got.Temperature-want) > 1e-12 {
			t.Fatalf("frac %.2f: got %f want %f", frac, got.Temperature, want)
		}
	}
}

func TestSampleBeyondRangeReusesFinalPair(t *testing.T) {
	s := rampSeries(10, 20, 40)

	cases := []struct {
		hours float64
		want  float64
	}{
		{1.5, 30},
		// Index clamps to H-2 but frac keeps cycling through the hour.
		{2, 20},
		{2.5, 30},
		{3, 20},
		{7.25, 25},
	}
	for _, tc := range cases {
		got, err := s.Sample(tc.hours * 3600)
		if err != nil {
			t.Fatalf("t=%vh: unexpected error %v", tc.hours, err)
		}
		if math.Abs(got.Temperature-tc.want) > 1e-9 {
			t.Fatalf("t=%vh: got %f want %f", tc.hours, got.Temperature, tc.want)
		}
	}

	// Times far past the forecast still land on the final pair. At this
	// magnitude t/3600 is a whole number, so frac is 0.
	for _, secs := range []float64{1e20, 1e300, math.MaxFloat64} {
		got, err := s.Sample(secs)
		if err != nil {
			t.Fatalf("t=%g: unexpected error %v", secs, err)
		}
		if got.Temperature != 20 {
			t.Fatalf("t=%g: got %v want 20", secs, got.Temperature)
		}
	}
	if idx, _ := Position(1e300, 3); idx != 1 {
		t.Fatalf("Position(1e300, 3) index = %d, want 1", idx)
	}
}

func TestSampleRejectsNegativeTime(t *testing.T) {
	s := rampSeries(1, 2)
	if _, err := s.Sample(-1); !errors.Is(err, ErrNegativeTime) {
		t.Fatalf("expected ErrNegativeTime, got %v", err)
	}
	if _, err := s.Sample(math.NaN()); !errors.Is(err, ErrNegativeTime) {
		t.Fatalf("expected ErrNegativeTime for NaN, got %v", err)
	}
	if _, err := s.Sample(math.Inf(1)); !errors.Is(err, ErrNegativeTime) {
		t.Fatalf("expected ErrNegativeTime for +Inf, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	short := rampSeries(5)
	if err := short.Validate(); !errors.Is(err, ErrInsufficientForecastData) {
		t.Fatalf("expected ErrInsufficientForecastData, got %v", err)
	}
	if _, err := short.Sample(0); !errors.Is(err, ErrInsufficientForecastData) {
		t.Fatalf("Sample should fail on a single-hour series, got %v", err)
	}

	var empty Series
	if err := empty.Validate(); !errors.Is(err, ErrInsufficientForecastData) {
		t.Fatalf("expected ErrInsufficientForecastData for empty series, got %v", err)
	}

	ragged := rampSeries(1, 2, 3)
	ragged.Pressure = ragged.Pressure[:2]
	if err := ragged.Validate(); !errors.Is(err, ErrMismatchedSeries) {
		t.Fatalf("expected ErrMismatchedSeries, got %v", err)
	}

	ok := rampSeries(1, 2)
	if err := ok.Validate(); err != nil {
		t.Fatalf("two-hour series should validate: %v", err)
	}
}

func TestConstant(t *testing.T) {
	v := Sample{Temperature: 20, Pressure: 1013.25}
	s := Constant(4, v)
	if s.Hours() != 4 {
		t.Fatalf("expected 4 hours, got %d", s.Hours())
	}
	got, err := s.Sample(2.7 * 3600)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if math.Abs(got.Temperature-20) > 1e-12 || math.Abs(got.Pressure-1013.25) > 1e-9 {
		t.Fatalf("constant series should sample to %+v, got %+v", v, got)
	}
}
