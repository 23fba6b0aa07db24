package weather

import (
	"context"
	"errors"
	"testing"
	"time"

	"brightwash/models"
)

type stubProvider struct {
	samples []models.ForecastSample
	err     error
}

func (p *stubProvider) GetForecast(ctx context.Context, lat, lng float64, timeMin, timeMax time.Time) ([]models.ForecastSample, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.samples, nil
}

func sampleAt(offset time.Duration, chance int, rainy bool) models.ForecastSample {
	base := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	return models.ForecastSample{
		Timestamp:    base.Add(offset),
		ChanceOfRain: chance,
		TemperatureF: 72,
		IsRainy:      rainy,
	}
}

func TestClassifySampleThresholds(t *testing.T) {
	cases := []struct {
		chance int
		rainy  bool
		want   models.RiskLevel
	}{
		{0, false, models.RiskNone},
		{19, false, models.RiskNone},
		{20, false, models.RiskLow},
		{39, false, models.RiskLow},
		{40, false, models.RiskModerate},
		{59, false, models.RiskModerate},
		{60, false, models.RiskHigh},
		{74, false, models.RiskHigh},
		{75, false, models.RiskVeryHigh},
		{89, false, models.RiskVeryHigh},
		{90, false, models.RiskSevere},
		{100, false, models.RiskSevere},
		// A precipitation flag lifts an otherwise calm reading to moderate.
		{5, true, models.RiskModerate},
		// But it never caps a higher chance-based severity.
		{95, true, models.RiskSevere},
	}
	for _, c := range cases {
		got := ClassifySample(models.ForecastSample{ChanceOfRain: c.chance, IsRainy: c.rainy})
		if got != c.want {
			t.Errorf("ClassifySample(chance=%d rainy=%v) = %s, want %s", c.chance, c.rainy, got, c.want)
		}
	}
}

func TestEvaluateTakesMaximumNotAverage(t *testing.T) {
	// Five calm hours and one severe one would average out to "low"; the
	// window must still read severe.
	provider := &stubProvider{samples: []models.ForecastSample{
		sampleAt(0, 5, false),
		sampleAt(time.Hour, 5, false),
		sampleAt(2*time.Hour, 95, false),
		sampleAt(3*time.Hour, 5, false),
		sampleAt(4*time.Hour, 5, false),
		sampleAt(5*time.Hour, 5, false),
	}}
	e := &DefaultRiskEvaluator{Provider: provider}

	assessment, err := e.Evaluate(context.Background(), -1.29, 36.82, time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC), 6*time.Hour)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if assessment.RiskLevel != models.RiskSevere {
		t.Fatalf("risk = %s, want severe", assessment.RiskLevel)
	}
	if assessment.Recommendation == "" {
		t.Fatalf("severe assessment has no recommendation")
	}
}

func TestEvaluateClearWindowIsRiskNone(t *testing.T) {
	provider := &stubProvider{samples: []models.ForecastSample{
		sampleAt(0, 0, false),
		sampleAt(time.Hour, 10, false),
	}}
	e := &DefaultRiskEvaluator{Provider: provider}

	assessment, err := e.Evaluate(context.Background(), -1.29, 36.82, time.Now(), 2*time.Hour)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if assessment.RiskLevel != models.RiskNone {
		t.Fatalf("risk = %s, want none", assessment.RiskLevel)
	}
	if assessment.RiskLevel.Alertable() {
		t.Fatalf("clear window must not be alertable")
	}
}

func TestEvaluateProviderFailureIsUnknownNotSafe(t *testing.T) {
	provider := &stubProvider{err: errors.New("weatherapi 503")}
	e := &DefaultRiskEvaluator{Provider: provider}

	assessment, err := e.Evaluate(context.Background(), -1.29, 36.82, time.Now(), time.Hour)
	if err == nil {
		t.Fatalf("Evaluate must surface the provider failure")
	}
	if assessment.RiskLevel != models.RiskUnknown {
		t.Fatalf("risk = %s, want unknown", assessment.RiskLevel)
	}
	if assessment.RiskLevel.Alertable() {
		t.Fatalf("unknown risk must never trigger an alert")
	}
}

func TestEvaluateEmptyWindowIsUnknown(t *testing.T) {
	e := &DefaultRiskEvaluator{Provider: &stubProvider{}}

	assessment, err := e.Evaluate(context.Background(), -1.29, 36.82, time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("empty forecast coverage should not be an error: %v", err)
	}
	if assessment.RiskLevel != models.RiskUnknown {
		t.Fatalf("risk = %s, want unknown", assessment.RiskLevel)
	}
}

func TestRiskLevelOrderingAndAlertability(t *testing.T) {
	ordered := []models.RiskLevel{
		models.RiskNone, models.RiskLow, models.RiskModerate,
		models.RiskHigh, models.RiskVeryHigh, models.RiskSevere,
	}
	for i := 1; i < len(ordered); i++ {
		if ordered[i] <= ordered[i-1] {
			t.Fatalf("%s should rank above %s", ordered[i], ordered[i-1])
		}
	}
	for _, level := range []models.RiskLevel{models.RiskUnknown, models.RiskNone, models.RiskLow} {
		if level.Alertable() {
			t.Errorf("%s should not be alertable", level)
		}
	}
	for _, level := range []models.RiskLevel{models.RiskModerate, models.RiskHigh, models.RiskVeryHigh, models.RiskSevere} {
		if !level.Alertable() {
			t.Errorf("%s should be alertable", level)
		}
	}
}

func TestAssessmentMeans(t *testing.T) {
	a := models.WeatherRiskAssessment{ForecastSamples: []models.ForecastSample{
		{ChanceOfRain: 20, TemperatureF: 70},
		{ChanceOfRain: 40, TemperatureF: 80},
	}}
	if got := a.MeanChanceOfRain(); got != 30 {
		t.Fatalf("mean chance = %v, want 30", got)
	}
	if got := a.MeanTemperatureF(); got != 75 {
		t.Fatalf("mean temperature = %v, want 75", got)
	}
	var empty models.WeatherRiskAssessment
	if empty.MeanChanceOfRain() != 0 || empty.MeanTemperatureF() != 0 {
		t.Fatalf("empty assessment means should be zero")
	}
}
