package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wakaweather/confidence-meter/internal/forecast"
)

func TestOpenMeteoFetch(t *testing.T) {
	t.Run("selects tomorrow noon and maps storm codes", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "-18.124800", r.URL.Query().Get("latitude"))
			assert.Equal(t, "178.450100", r.URL.Query().Get("longitude"))
			assert.Equal(t, "auto", r.URL.Query().Get("timezone"))

			fmt.Fprint(w, `{"hourly":{
				"time":["2026-08-31T11:00","2026-08-31T12:00"],
				"temperature_2m":[22,23.5],
				"precipitation":[0,4.2],
				"weathercode":[3,95],
				"windspeed_10m":[5,11.5]
			}}`)
		}))
		defer server.Close()

		p := NewOpenMeteoProvider(server.Client(), testClock)
		p.baseURL = server.URL

		got, err := p.Fetch(context.Background(), forecast.Location{Lat: -18.1248, Lon: 178.4501})
		require.NoError(t, err)
		assert.Equal(t, "Open-Meteo", got.Source)
		assert.Equal(t, 23.5, got.Temperature)
		assert.Equal(t, 4.2, got.Rainfall)
		assert.Equal(t, 11.5, got.WindSpeed)
		assert.Equal(t, "Storm", got.Condition)
	})

	t.Run("non-storm codes collapse to clear or cloudy", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"hourly":{
				"time":["2026-08-31T12:00"],
				"temperature_2m":[23.5],
				"precipitation":[0],
				"weathercode":[2],
				"windspeed_10m":[5]
			}}`)
		}))
		defer server.Close()

		p := NewOpenMeteoProvider(server.Client(), testClock)
		p.baseURL = server.URL

		got, err := p.Fetch(context.Background(), forecast.Location{Lat: -18.1248, Lon: 178.4501})
		require.NoError(t, err)
		assert.Equal(t, "Clear or Cloudy", got.Condition)
	})

	t.Run("resolves target day in the location timezone", func(t *testing.T) {
		// 2026-08-30 16:00 UTC is already 2026-08-31 in Fiji (UTC+12), so
		// the provider must ask for the slot on September 1st.
		clock := clockwork.NewFakeClockAt(time.Date(2026, 8, 30, 16, 0, 0, 0, time.UTC))

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"hourly":{
				"time":["2026-09-01T12:00"],
				"temperature_2m":[25],
				"precipitation":[0],
				"weathercode":[0],
				"windspeed_10m":[3]
			}}`)
		}))
		defer server.Close()

		p := NewOpenMeteoProvider(server.Client(), clock)
		p.baseURL = server.URL

		_, err := p.Fetch(context.Background(), forecast.Location{Lat: -18.1248, Lon: 178.4501, Timezone: "Pacific/Fiji"})
		require.NoError(t, err)
	})

	t.Run("missing target slot", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"hourly":{"time":["2026-08-31T11:00"],"temperature_2m":[22],"precipitation":[0],"weathercode":[1],"windspeed_10m":[5]}}`)
		}))
		defer server.Close()

		p := NewOpenMeteoProvider(server.Client(), testClock)
		p.baseURL = server.URL

		_, err := p.Fetch(context.Background(), forecast.Location{Lat: -18.1248, Lon: 178.4501})
		requireFetchKind(t, err, forecast.FailureMissingTarget)
	})

	t.Run("truncated series", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"hourly":{"time":["2026-08-31T12:00"],"temperature_2m":[],"precipitation":[],"weathercode":[],"windspeed_10m":[]}}`)
		}))
		defer server.Close()

		p := NewOpenMeteoProvider(server.Client(), testClock)
		p.baseURL = server.URL

		_, err := p.Fetch(context.Background(), forecast.Location{Lat: -18.1248, Lon: 178.4501})
		requireFetchKind(t, err, forecast.FailureMalformed)
	})
}
