package weather

import (
	"context"
	"time"

	"brightwash/models"
)

// ForecastProvider returns hourly forecast samples for a location and time
// window. A failed fetch must surface as an error; providers never substitute
// synthetic samples.
type ForecastProvider interface {
	GetForecast(ctx context.Context, lat, lng float64, timeMin, timeMax time.Time) ([]models.ForecastSample, error)
}
