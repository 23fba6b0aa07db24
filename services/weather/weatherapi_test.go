package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func forecastJSON(hours ...string) string {
	out := `{"forecast":{"forecastday":[{"hour":[`
	for i, h := range hours {
		if i > 0 {
			out += ","
		}
		out += h
	}
	return out + `]}]}}`
}

func hourJSON(ts time.Time, chance int, willRain int, condition string) string {
	return fmt.Sprintf(`{"time_epoch":%d,"temp_f":71.5,"chance_of_rain":%d,"will_it_rain":%d,"condition":{"text":%q}}`,
		ts.Unix(), chance, willRain, condition)
}

func TestGetForecastFiltersToWindow(t *testing.T) {
	windowStart := time.Now().Add(2 * time.Hour).Truncate(time.Hour)
	windowEnd := windowStart.Add(2 * time.Hour)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key in request: %s", r.URL.String())
		}
		fmt.Fprint(w, forecastJSON(
			hourJSON(windowStart.Add(-time.Hour), 80, 0, "Cloudy"),
			hourJSON(windowStart, 30, 0, "Partly cloudy"),
			hourJSON(windowStart.Add(time.Hour), 65, 1, "Patchy rain nearby"),
			hourJSON(windowEnd.Add(time.Hour), 90, 1, "Heavy rain"),
		))
	}))
	defer srv.Close()

	client := NewWeatherAPIClient("test-key", srv.URL)
	samples, err := client.GetForecast(context.Background(), -1.29, 36.82, windowStart, windowEnd)
	if err != nil {
		t.Fatalf("GetForecast failed: %v", err)
	}

	if len(samples) != 2 {
		t.Fatalf("got %d samples, want 2 inside the window", len(samples))
	}
	if samples[0].ChanceOfRain != 30 || samples[0].IsRainy {
		t.Fatalf("first sample = %+v, want dry 30%%", samples[0])
	}
	if samples[1].ChanceOfRain != 65 || !samples[1].IsRainy {
		t.Fatalf("second sample = %+v, want rainy 65%%", samples[1])
	}
	if samples[1].ConditionText != "Patchy rain nearby" {
		t.Fatalf("condition text = %q", samples[1].ConditionText)
	}
}

func TestGetForecastNon200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewWeatherAPIClient("test-key", srv.URL)
	if _, err := client.GetForecast(context.Background(), -1.29, 36.82, time.Now(), time.Now().Add(time.Hour)); err == nil {
		t.Fatalf("non-200 response should surface as an error")
	}
}

func TestLooksRainy(t *testing.T) {
	rainy := []string{"Light rain", "Patchy drizzle", "Thundery outbreaks", "Moderate snow showers", "STORM"}
	for _, c := range rainy {
		if !looksRainy(c) {
			t.Errorf("looksRainy(%q) = false, want true", c)
		}
	}
	dry := []string{"Sunny", "Clear", "Overcast", "Mist"}
	for _, c := range dry {
		if looksRainy(c) {
			t.Errorf("looksRainy(%q) = true, want false", c)
		}
	}
}
