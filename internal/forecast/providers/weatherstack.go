package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/wakaweather/confidence-meter/internal/forecast"
)

// WeatherstackProvider reads Weatherstack's current conditions, the nearest
// scheme its free tier supports to a next-day forecast. Wind arrives in km/h
// and is converted to m/s.
type WeatherstackProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherstackProvider(client *http.Client, apiKey string) *WeatherstackProvider {
	return &WeatherstackProvider{
		name:    "Weatherstack",
		apiKey:  apiKey,
		baseURL: "http://api.weatherstack.com/current",
		client:  client,
		circuit: newBreaker("weatherstack"),
	}
}

func (p *WeatherstackProvider) Name() string {
	return p.name
}

func (p *WeatherstackProvider) Fetch(ctx context.Context, loc forecast.Location) (forecast.Forecast, error) {
	if p.apiKey == "" {
		return forecast.Forecast{}, forecast.NewFetchError(forecast.FailureNetwork, fmt.Errorf("weatherstack api key is not configured"))
	}

	values := url.Values{}
	values.Set("access_key", p.apiKey)
	values.Set("query", loc.City)

	resp, err := doRequest(ctx, p.client, p.circuit, p.baseURL+"?"+values.Encode())
	if err != nil {
		return forecast.Forecast{}, err
	}
	defer resp.Body.Close()

	// Weatherstack reports errors with a 200 status and an empty current
	// block, so the field check below doubles as the error check.
	var payload struct {
		Current struct {
			Temperature         float64  `json:"temperature"`
			Precip              float64  `json:"precip"`
			WindSpeed           float64  `json:"wind_speed"`
			WeatherDescriptions []string `json:"weather_descriptions"`
		} `json:"current"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return forecast.Forecast{}, forecast.NewFetchError(forecast.FailureMalformed, err)
	}

	if len(payload.Current.WeatherDescriptions) == 0 {
		return forecast.Forecast{}, forecast.NewFetchError(forecast.FailureMalformed, fmt.Errorf("response has no current conditions"))
	}

	return forecast.Forecast{
		Source:      p.name,
		Temperature: payload.Current.Temperature,
		Rainfall:    payload.Current.Precip,
		WindSpeed:   payload.Current.WindSpeed * kphToMS,
		Condition:   payload.Current.WeatherDescriptions[0],
	}, nil
}
