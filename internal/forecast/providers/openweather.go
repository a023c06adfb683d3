package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jonboulle/clockwork"
	"github.com/sony/gobreaker"

	"github.com/wakaweather/confidence-meter/internal/forecast"
)

// OpenWeatherProvider reads the OpenWeatherMap 5-day/3-hour forecast and
// selects the slot for tomorrow at 12:00. Wind speed arrives in m/s when
// metric units are requested, so no conversion is needed.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	clock   clockwork.Clock
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, clock clockwork.Clock, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "OpenWeatherMap",
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/forecast",
		client:  client,
		clock:   clock,
		circuit: newBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) Fetch(ctx context.Context, loc forecast.Location) (forecast.Forecast, error) {
	if p.apiKey == "" {
		return forecast.Forecast{}, forecast.NewFetchError(forecast.FailureNetwork, fmt.Errorf("openweather api key is not configured"))
	}

	values := url.Values{}
	values.Set("q", loc.City)
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")

	resp, err := doRequest(ctx, p.client, p.circuit, p.baseURL+"?"+values.Encode())
	if err != nil {
		return forecast.Forecast{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		List []struct {
			DtTxt string `json:"dt_txt"`
			Main  struct {
				Temp float64 `json:"temp"`
			} `json:"main"`
			Rain struct {
				ThreeH float64 `json:"3h"`
			} `json:"rain"`
			Wind struct {
				Speed float64 `json:"speed"`
			} `json:"wind"`
			Weather []struct {
				Description string `json:"description"`
			} `json:"weather"`
		} `json:"list"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return forecast.Forecast{}, forecast.NewFetchError(forecast.FailureMalformed, err)
	}

	target := targetDay(p.clock, loc).Format("2006-01-02") + " 12:00:00"
	for _, entry := range payload.List {
		if entry.DtTxt != target {
			continue
		}
		if len(entry.Weather) == 0 {
			return forecast.Forecast{}, forecast.NewFetchError(forecast.FailureMalformed, fmt.Errorf("forecast entry has no weather block"))
		}
		return forecast.Forecast{
			Source:      p.name,
			Temperature: entry.Main.Temp,
			Rainfall:    entry.Rain.ThreeH,
			WindSpeed:   entry.Wind.Speed,
			Condition:   entry.Weather[0].Description,
		}, nil
	}

	return forecast.Forecast{}, forecast.NewFetchError(forecast.FailureMissingTarget, fmt.Errorf("no forecast entry for %s", target))
}
