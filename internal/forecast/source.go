package forecast

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

var ErrUnknownSource = errors.New("unknown forecast source")

// Location identifies where a forecast is requested for.
type Location struct {
	Name string
	Lat  float64
	Lon  float64
}

// DefaultLocation is central New Delhi.
var DefaultLocation = Location{Name: "New Delhi", Lat: 28.61, Lon: 77.23}

// Key returns a stable identifier suitable for cache lookups.
func (l Location) Key() string {
	return fmt.Sprintf("%.4f,%.4f", l.Lat, l.Lon)
}

// Source yields the hourly series for a location.
type Source interface {
	Name() string
	Fetch(ctx context.Context, loc Location) (Series, error)
}

// Factory constructs a Source from flag-style key/value options.
type Factory func(cfg map[string]string) (Source, error)

var sources = map[string]Factory{}

// Register adds a source factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sources[name] = f
}

// Names lists the registered source names in sorted order.
func Names() []string {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open constructs the named source.
func Open(name string, cfg map[string]string) (Source, error) {
	f, ok := sources[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSource, name)
	}
	return f(cfg)
}

func floatOption(cfg map[string]string, key string, def float64) (float64, error) {
	v, ok := cfg[key]
	if !ok || v == "" {
		return def, nil
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def, fmt.Errorf("option %s: %w", key, err)
	}
	return parsed, nil
}

func intOption(cfg map[string]string, key string, def int) (int, error) {
	v, ok := cfg[key]
	if !ok || v == "" {
		return def, nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("option %s: %w", key, err)
	}
	return parsed, nil
}
