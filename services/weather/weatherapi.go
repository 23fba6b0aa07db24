package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"brightwash/models"
)

// WeatherAPIClient implements ForecastProvider against the WeatherAPI.com
// forecast endpoint.
type WeatherAPIClient struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

// NewWeatherAPIClient builds a provider with a bounded request timeout.
func NewWeatherAPIClient(apiKey, baseURL string) *WeatherAPIClient {
	return &WeatherAPIClient{
		APIKey:  apiKey,
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// forecastResponse mirrors the fields we consume from forecast.json.
type forecastResponse struct {
	Forecast struct {
		ForecastDay []struct {
			Hour []struct {
				TimeEpoch    int64   `json:"time_epoch"`
				TempF        float64 `json:"temp_f"`
				ChanceOfRain int     `json:"chance_of_rain"`
				WillItRain   int     `json:"will_it_rain"`
				Condition    struct {
					Text string `json:"text"`
				} `json:"condition"`
			} `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

// GetForecast fetches hourly samples covering [timeMin, timeMax].
func (c *WeatherAPIClient) GetForecast(ctx context.Context, lat, lng float64, timeMin, timeMax time.Time) ([]models.ForecastSample, error) {
	days := int(timeMax.Sub(time.Now()).Hours()/24) + 1
	if days < 1 {
		days = 1
	}

	url := fmt.Sprintf("%s/forecast.json?key=%s&q=%f,%f&days=%d",
		c.BaseURL, c.APIKey, lat, lng, days)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build forecast request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast request returned status %d", resp.StatusCode)
	}

	var data forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode forecast response: %w", err)
	}

	var samples []models.ForecastSample
	for _, day := range data.Forecast.ForecastDay {
		for _, h := range day.Hour {
			ts := time.Unix(h.TimeEpoch, 0)
			if ts.Before(timeMin) || ts.After(timeMax) {
				continue
			}
			samples = append(samples, models.ForecastSample{
				Timestamp:     ts,
				ChanceOfRain:  h.ChanceOfRain,
				TemperatureF:  h.TempF,
				ConditionText: h.Condition.Text,
				IsRainy:       h.WillItRain == 1 || looksRainy(h.Condition.Text),
			})
		}
	}
	return samples, nil
}

// looksRainy classifies a condition string as precipitation.
func looksRainy(condition string) bool {
	c := strings.ToLower(condition)
	for _, word := range []string{"rain", "drizzle", "shower", "thunder", "storm", "sleet"} {
		if strings.Contains(c, word) {
			return true
		}
	}
	return false
}
