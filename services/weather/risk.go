package weather

import (
	"context"
	"fmt"
	"time"

	"brightwash/models"
	"brightwash/utils"

	"go.uber.org/zap"
)

// defaultLookahead covers the working window when a service duration is not
// known to the evaluator.
const defaultLookahead = 3 * time.Hour

// RiskEvaluator maps a forecast window to a risk level and a reschedule
// recommendation.
type RiskEvaluator interface {
	Evaluate(ctx context.Context, lat, lng float64, appointmentStart time.Time, duration time.Duration) (models.WeatherRiskAssessment, error)
}

// DefaultRiskEvaluator implements RiskEvaluator on top of a forecast provider.
type DefaultRiskEvaluator struct {
	Provider ForecastProvider
}

// Evaluate fetches hourly samples spanning the appointment's working window
// and classifies them. The overall level is the maximum severity across the
// window; a single severe hour makes the whole assessment severe. On a
// provider failure the assessment is RiskUnknown and the error is returned;
// callers must never read a fetch failure as "safe".
func (e *DefaultRiskEvaluator) Evaluate(ctx context.Context, lat, lng float64, appointmentStart time.Time, duration time.Duration) (models.WeatherRiskAssessment, error) {
	if duration <= 0 {
		duration = defaultLookahead
	}
	windowEnd := appointmentStart.Add(duration)

	samples, err := e.Provider.GetForecast(ctx, lat, lng, appointmentStart, windowEnd)
	if err != nil {
		return models.WeatherRiskAssessment{
			RiskLevel:      models.RiskUnknown,
			Recommendation: "Forecast unavailable; flag for manual review.",
		}, fmt.Errorf("forecast fetch failed: %w", err)
	}
	if len(samples) == 0 {
		utils.GetLogger().Warn("forecast window returned no samples",
			zap.Time("start", appointmentStart), zap.Time("end", windowEnd))
		return models.WeatherRiskAssessment{
			RiskLevel:      models.RiskUnknown,
			Recommendation: "No forecast coverage for this window; flag for manual review.",
		}, nil
	}

	level := models.RiskNone
	for _, s := range samples {
		if sev := ClassifySample(s); sev > level {
			level = sev
		}
	}

	return models.WeatherRiskAssessment{
		RiskLevel:       level,
		Recommendation:  recommendationFor(level),
		ForecastSamples: samples,
	}, nil
}

// ClassifySample assigns a severity to one hourly reading based on its
// chance of rain and precipitation flag.
func ClassifySample(s models.ForecastSample) models.RiskLevel {
	switch {
	case s.ChanceOfRain >= 90:
		return models.RiskSevere
	case s.ChanceOfRain >= 75:
		return models.RiskVeryHigh
	case s.ChanceOfRain >= 60:
		return models.RiskHigh
	case s.ChanceOfRain >= 40 || s.IsRainy:
		return models.RiskModerate
	case s.ChanceOfRain >= 20:
		return models.RiskLow
	default:
		return models.RiskNone
	}
}

func recommendationFor(level models.RiskLevel) string {
	switch level {
	case models.RiskSevere:
		return "Rain is near certain during this appointment. Strongly recommend rescheduling."
	case models.RiskVeryHigh:
		return "Rain is very likely during this appointment. Recommend rescheduling."
	case models.RiskHigh:
		return "Rain is likely during this appointment. Consider rescheduling."
	case models.RiskModerate:
		return "There is a meaningful chance of rain during this appointment. Keep an eye on the forecast."
	case models.RiskLow:
		return "Slight chance of rain; no action needed."
	default:
		return "Forecast looks clear."
	}
}
