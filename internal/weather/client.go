// Package weather fetches forecasts from Open-Meteo and normalizes them
// into the API's stable schema.
//
// WHY OPEN-METEO?
// It's free, needs no API key, and serves any coordinate — so a resolved
// village works just as well as a capital city. The trade-off is its
// response shape: parallel arrays (one per variable, aligned by index)
// rather than an array of objects, and numeric WMO condition codes rather
// than text. Normalizing that shape is this package's whole job.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/sakif/weather-hub/internal/apperror"
	"github.com/sakif/weather-hub/internal/model"
	"github.com/sakif/weather-hub/internal/upstream"
)

// DefaultBaseURL is the public Open-Meteo forecast endpoint.
const DefaultBaseURL = "https://api.open-meteo.com/v1/forecast"

const (
	hourlyHorizon = 48 // 2 days of hourly entries
	dailyDays     = 7
)

// Client talks to the Open-Meteo forecast API.
type Client struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates a Client against baseURL (tests point this at an
// httptest server).
func NewClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL: baseURL,
		client:  httpClient,
		circuit: upstream.NewBreaker("open-meteo"),
	}
}

// Current fetches current conditions at the resolved location.
//
// Temperatures and wind speed are rounded to 1 decimal; humidity and
// pressure pass through as reported. The WMO condition code becomes a
// description and an icon tag via the fixed table in conditions.go.
func (c *Client) Current(ctx context.Context, loc model.Location) (*model.WeatherSnapshot, error) {
	values := url.Values{}
	values.Set("latitude", formatCoord(loc.Lat))
	values.Set("longitude", formatCoord(loc.Lon))
	values.Set("current", "temperature_2m,relative_humidity_2m,apparent_temperature,precipitation,weather_code,wind_speed_10m,pressure_msl")
	values.Set("timezone", "auto")

	var payload struct {
		Current struct {
			Temperature float64 `json:"temperature_2m"`
			Humidity    int     `json:"relative_humidity_2m"`
			FeelsLike   float64 `json:"apparent_temperature"`
			WeatherCode int     `json:"weather_code"`
			WindSpeed   float64 `json:"wind_speed_10m"`
			Pressure    float64 `json:"pressure_msl"`
		} `json:"current"`
	}
	if err := c.get(ctx, values, &payload); err != nil {
		return nil, err
	}

	cur := payload.Current
	return &model.WeatherSnapshot{
		City:        loc.Name,
		Temperature: round1(cur.Temperature),
		FeelsLike:   round1(cur.FeelsLike),
		Humidity:    cur.Humidity,
		Pressure:    cur.Pressure,
		Description: describe(cur.WeatherCode),
		Icon:        iconFor(cur.WeatherCode),
		WindSpeed:   round1(cur.WindSpeed),
		Country:     loc.Country,
	}, nil
}

// Hourly fetches the 48-hour forecast.
//
// Open-Meteo returns parallel arrays aligned by index: time[i], temp[i],
// humidity[i]... zip positionally. The series is truncated to 48 entries,
// and provider (chronological) order is preserved. The precipitation
// probability array can be shorter than the time array; missing entries
// default to 0.
func (c *Client) Hourly(ctx context.Context, loc model.Location) ([]model.HourlyPoint, error) {
	values := url.Values{}
	values.Set("latitude", formatCoord(loc.Lat))
	values.Set("longitude", formatCoord(loc.Lon))
	values.Set("hourly", "temperature_2m,relative_humidity_2m,apparent_temperature,precipitation_probability,weather_code,wind_speed_10m")
	values.Set("timezone", "auto")
	values.Set("forecast_days", "2")

	var payload struct {
		Hourly struct {
			Time        []string  `json:"time"`
			Temperature []float64 `json:"temperature_2m"`
			Humidity    []int     `json:"relative_humidity_2m"`
			FeelsLike   []float64 `json:"apparent_temperature"`
			Pop         []float64 `json:"precipitation_probability"`
			WeatherCode []int     `json:"weather_code"`
			WindSpeed   []float64 `json:"wind_speed_10m"`
		} `json:"hourly"`
	}
	if err := c.get(ctx, values, &payload); err != nil {
		return nil, err
	}

	h := payload.Hourly
	n := len(h.Time)
	if n > hourlyHorizon {
		n = hourlyHorizon
	}

	forecast := make([]model.HourlyPoint, 0, n)
	for i := 0; i < n; i++ {
		ts, err := time.Parse("2006-01-02T15:04", h.Time[i])
		if err != nil {
			return nil, fmt.Errorf("weather: parsing hourly time %q: %w", h.Time[i], err)
		}

		pop := 0.0
		if i < len(h.Pop) {
			pop = h.Pop[i]
		}

		forecast = append(forecast, model.HourlyPoint{
			Dt:          ts.Unix(),
			Time:        ts.Format("03:04 PM"),
			Date:        ts.Format("Mon, Jan 02"),
			Temp:        round1(at(h.Temperature, i)),
			FeelsLike:   round1(at(h.FeelsLike, i)),
			Humidity:    atInt(h.Humidity, i),
			Description: describe(atInt(h.WeatherCode, i)),
			Icon:        iconFor(atInt(h.WeatherCode, i)),
			Pop:         pop,
			WindSpeed:   round1(at(h.WindSpeed, i)),
		})
	}

	return forecast, nil
}

// Daily fetches the 7-day forecast.
//
// The average temperature is computed as (max+min)/2 per day. Humidity is
// not available at daily granularity from the provider and stays 0.
func (c *Client) Daily(ctx context.Context, loc model.Location) ([]model.DailyPoint, error) {
	values := url.Values{}
	values.Set("latitude", formatCoord(loc.Lat))
	values.Set("longitude", formatCoord(loc.Lon))
	values.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_probability_max,weather_code,wind_speed_10m_max")
	values.Set("timezone", "auto")
	values.Set("forecast_days", fmt.Sprintf("%d", dailyDays))

	var payload struct {
		Daily struct {
			Time        []string  `json:"time"`
			TempMax     []float64 `json:"temperature_2m_max"`
			TempMin     []float64 `json:"temperature_2m_min"`
			Pop         []float64 `json:"precipitation_probability_max"`
			WeatherCode []int     `json:"weather_code"`
			WindSpeed   []float64 `json:"wind_speed_10m_max"`
		} `json:"daily"`
	}
	if err := c.get(ctx, values, &payload); err != nil {
		return nil, err
	}

	d := payload.Daily
	forecast := make([]model.DailyPoint, 0, len(d.Time))
	for i := range d.Time {
		ts, err := time.Parse("2006-01-02", d.Time[i])
		if err != nil {
			return nil, fmt.Errorf("weather: parsing daily date %q: %w", d.Time[i], err)
		}

		tempMin := at(d.TempMin, i)
		tempMax := at(d.TempMax, i)

		pop := 0.0
		if i < len(d.Pop) {
			pop = d.Pop[i]
		}

		forecast = append(forecast, model.DailyPoint{
			Dt:          ts.Unix(),
			Date:        ts.Format("Mon, Jan 02"),
			TempMin:     round1(tempMin),
			TempMax:     round1(tempMax),
			TempAvg:     round1((tempMax + tempMin) / 2),
			Humidity:    0, // not available at daily granularity
			Description: describe(atInt(d.WeatherCode, i)),
			Icon:        iconFor(atInt(d.WeatherCode, i)),
			Pop:         pop,
			WindSpeed:   round1(at(d.WindSpeed, i)),
		})
	}

	return forecast, nil
}

// get performs the request and decodes the JSON body into out. There is no
// further fallback behind Open-Meteo, so any failure here surfaces as an
// upstream error.
func (c *Client) get(ctx context.Context, values url.Values, out any) error {
	resp, err := upstream.Get(ctx, c.client, c.circuit, c.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return apperror.Upstream("Failed to fetch weather", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.Upstream("Failed to fetch weather", fmt.Errorf("weather: decoding response: %w", err))
	}

	return nil
}

// round1 rounds to 1 decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func formatCoord(v float64) string {
	return fmt.Sprintf("%f", v)
}

// at guards positional-zip access: parallel arrays are usually the same
// length, but a short one must not panic the request.
func at(s []float64, i int) float64 {
	if i < len(s) {
		return s[i]
	}
	return 0
}

func atInt(s []int, i int) int {
	if i < len(s) {
		return s[i]
	}
	return 0
}
