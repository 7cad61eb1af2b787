package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultOpenMeteoURL is the public Open-Meteo forecast endpoint.
const DefaultOpenMeteoURL = "https://api.open-meteo.com/v1/forecast"

const openMeteoHourly = "temperature_2m,wind_speed_10m,wind_direction_10m,precipitation," +
	"cloudcover,relative_humidity_2m,pressure_msl"

// OpenMeteoSource fetches hourly forecasts from the Open-Meteo API.
type OpenMeteoSource struct {
	baseURL    string
	httpClient *http.Client
}

// NewOpenMeteoSource creates a source hitting baseURL. An empty baseURL uses
// DefaultOpenMeteoURL.
func NewOpenMeteoSource(baseURL string, timeout time.Duration) *OpenMeteoSource {
	if baseURL == "" {
		baseURL = DefaultOpenMeteoURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &OpenMeteoSource{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (s *OpenMeteoSource) Name() string { return "openmeteo" }

// RequestURL builds the query for the given location.
func (s *OpenMeteoSource) RequestURL(loc Location) string {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(loc.Lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(loc.Lon, 'f', -1, 64))
	q.Set("hourly", openMeteoHourly)
	q.Set("wind_speed_unit", "ms")
	q.Set("timezone", "auto")
	return s.baseURL + "?" + q.Encode()
}

// Fetch retrieves and validates the hourly series for loc.
func (s *OpenMeteoSource) Fetch(ctx context.Context, loc Location) (Series, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.RequestURL(loc), nil)
	if err != nil {
		return Series{}, fmt.Errorf("openmeteo: failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Series{}, fmt.Errorf("openmeteo: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Series{}, fmt.Errorf("openmeteo: failed to fetch weather data: status %d", resp.StatusCode)
	}

	series, err := decodeHourly(resp.Body)
	if err != nil {
		return Series{}, fmt.Errorf("openmeteo: %w", err)
	}
	return series, nil
}

type hourlyResponse struct {
	Latitude  float64     `json:"latitude"`
	Longitude float64     `json:"longitude"`
	Timezone  string      `json:"timezone"`
	Hourly    hourlyBlock `json:"hourly"`
}

// hourlyBlock mirrors Series with nullable entries; Open-Meteo pads hours it
// has no data for with null.
type hourlyBlock struct {
	Time          []string   `json:"time"`
	Temperature   []*float64 `json:"temperature_2m"`
	WindSpeed     []*float64 `json:"wind_speed_10m"`
	WindDirection []*float64 `json:"wind_direction_10m"`
	Precipitation []*float64 `json:"precipitation"`
	CloudCover    []*float64 `json:"cloudcover"`
	Humidity      []*float64 `json:"relative_humidity_2m"`
	Pressure      []*float64 `json:"pressure_msl"`
}

func (b *hourlyBlock) series() (Series, error) {
	out := Series{Time: b.Time}
	for _, f := range []struct {
		name string
		src  []*float64
		dst  *[]float64
	}{
		{"temperature_2m", b.Temperature, &out.Temperature},
		{"wind_speed_10m", b.WindSpeed, &out.WindSpeed},
		{"wind_direction_10m", b.WindDirection, &out.WindDirection},
		{"precipitation", b.Precipitation, &out.Precipitation},
		{"cloudcover", b.CloudCover, &out.CloudCover},
		{"relative_humidity_2m", b.Humidity, &out.Humidity},
		{"pressure_msl", b.Pressure, &out.Pressure},
	} {
		values := make([]float64, len(f.src))
		for i, v := range f.src {
			if v == nil {
				return Series{}, fmt.Errorf("%w: %s hour %d", ErrMissingForecastValue, f.name, i)
			}
			values[i] = *v
		}
		*f.dst = values
	}
	return out, nil
}

func decodeHourly(r io.Reader) (Series, error) {
	var body hourlyResponse
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return Series{}, fmt.Errorf("failed to decode response: %w", err)
	}
	series, err := body.Hourly.series()
	if err != nil {
		return Series{}, err
	}
	if err := series.Validate(); err != nil {
		return Series{}, err
	}
	return series, nil
}

// Open-Meteo asks for fewer than 10000 calls per day; the defaults stay well
// under that with a small burst for retries.
func init() {
	Register("openmeteo", func(cfg map[string]string) (Source, error) {
		timeout := 10 * time.Second
		if v, ok := cfg["timeout"]; ok && v != "" {
			parsed, err := time.ParseDuration(v)
			if err != nil {
				return nil, fmt.Errorf("option timeout: %w", err)
			}
			timeout = parsed
		}
		rps, err := floatOption(cfg, "rps", 0.1)
		if err != nil {
			return nil, err
		}
		burst, err := intOption(cfg, "burst", 2)
		if err != nil {
			return nil, err
		}
		ttlMinutes, err := floatOption(cfg, "cache_ttl_minutes", 30)
		if err != nil {
			return nil, err
		}

		var src Source = NewOpenMeteoSource(cfg["url"], timeout)
		if rps > 0 {
			src = NewRateLimitedSource(src, rps, burst)
		}
		if ttlMinutes > 0 {
			src = NewCachedSource(src, 16, time.Duration(ttlMinutes*float64(time.Minute)))
		}
		return src, nil
	})
}
