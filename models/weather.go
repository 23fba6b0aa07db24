package models

import "time"

// RiskLevel ranks weather severity for an appointment window. Levels are
// ordered; escalation comparisons rely on the numeric ordering.
type RiskLevel int

const (
	// RiskUnknown means the forecast could not be fetched. It is never
	// treated as safe and never escalates an alert.
	RiskUnknown RiskLevel = iota - 1
	RiskNone
	RiskLow
	RiskModerate
	RiskHigh
	RiskVeryHigh
	RiskSevere
)

func (r RiskLevel) String() string {
	switch r {
	case RiskNone:
		return "none"
	case RiskLow:
		return "low"
	case RiskModerate:
		return "moderate"
	case RiskHigh:
		return "high"
	case RiskVeryHigh:
		return "very-high"
	case RiskSevere:
		return "severe"
	default:
		return "unknown"
	}
}

// Alertable reports whether this level warrants a proactive reschedule alert.
func (r RiskLevel) Alertable() bool {
	return r >= RiskModerate
}

// ForecastSample is one hourly forecast reading.
type ForecastSample struct {
	Timestamp     time.Time `json:"timestamp"`
	ChanceOfRain  int       `json:"chanceOfRainPercent"`
	TemperatureF  float64   `json:"temperatureF"`
	ConditionText string    `json:"conditionText"`
	IsRainy       bool      `json:"isRainy"`
}

// WeatherRiskAssessment is the outcome of evaluating one appointment window.
// Recomputed fresh on every evaluation; never cached across sweeps.
type WeatherRiskAssessment struct {
	RiskLevel       RiskLevel        `json:"riskLevel"`
	Recommendation  string           `json:"recommendation"`
	ForecastSamples []ForecastSample `json:"forecastSamples"`
}

// MeanChanceOfRain returns the average chance of rain across the window.
func (a WeatherRiskAssessment) MeanChanceOfRain() float64 {
	if len(a.ForecastSamples) == 0 {
		return 0
	}
	total := 0
	for _, s := range a.ForecastSamples {
		total += s.ChanceOfRain
	}
	return float64(total) / float64(len(a.ForecastSamples))
}

// MeanTemperatureF returns the average temperature across the window.
func (a WeatherRiskAssessment) MeanTemperatureF() float64 {
	if len(a.ForecastSamples) == 0 {
		return 0
	}
	total := 0.0
	for _, s := range a.ForecastSamples {
		total += s.TemperatureF
	}
	return total / float64(len(a.ForecastSamples))
}
