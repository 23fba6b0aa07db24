package alerts

import (
	"context"
	"fmt"
	"time"

	alertRepo "brightwash/database/repository/alert"
	appointmentRepo "brightwash/database/repository/appointment"
	"brightwash/models"
	"brightwash/services/notification"
	"brightwash/services/weather"
	"brightwash/utils"

	"go.uber.org/zap"
)

// SweepResult summarizes one weather sweep run.
type SweepResult struct {
	Checked    int `json:"checked"`
	AlertsSent int `json:"alertsSent"`
}

// Scheduler walks upcoming appointments, scores each against the forecast
// and dispatches at most one alert per appointment per risk escalation. It is
// stateless per run except for reading and writing AlertRecords.
type Scheduler interface {
	RunWeatherSweep(ctx context.Context) (SweepResult, error)
}

// DefaultScheduler implements Scheduler.
type DefaultScheduler struct {
	Appointments appointmentRepo.AppointmentRepository
	Alerts       alertRepo.AlertRecordRepository
	Evaluator    weather.RiskEvaluator
	Notifier     notification.Dispatcher

	BusinessLat   float64
	BusinessLng   float64
	LookaheadDays int
	// Pacing is the fixed delay between appointments, respecting forecast
	// and notification rate limits.
	Pacing time.Duration
}

// RunWeatherSweep processes every upcoming appointment sequentially. One
// appointment's evaluation or dispatch failure is logged and never aborts the
// rest of the sweep.
func (s *DefaultScheduler) RunWeatherSweep(ctx context.Context) (SweepResult, error) {
	logger := utils.GetLogger()
	now := time.Now()

	appts, err := s.Appointments.ListUpcoming(ctx, now, now.AddDate(0, 0, s.LookaheadDays))
	if err != nil {
		return SweepResult{}, fmt.Errorf("failed to list upcoming appointments: %w", err)
	}

	var result SweepResult
	for i, appt := range appts {
		if i > 0 && s.Pacing > 0 {
			time.Sleep(s.Pacing)
		}
		result.Checked++

		sent, err := s.processAppointment(ctx, appt)
		if sent {
			result.AlertsSent++
		}
		if err != nil {
			logger.Error("weather sweep: appointment processing failed",
				zap.String("appointmentId", appt.ID), zap.Error(err))
		}
	}

	logger.Info("weather sweep complete",
		zap.Int("checked", result.Checked),
		zap.Int("alertsSent", result.AlertsSent))
	return result, nil
}

// processAppointment evaluates one appointment and dispatches an alert when
// the risk has escalated past anything previously alerted. It reports whether
// an alert was sent.
func (s *DefaultScheduler) processAppointment(ctx context.Context, appt models.Appointment) (bool, error) {
	logger := utils.GetLogger()

	duration := time.Duration(appt.DurationMinutes) * time.Minute
	assessment, err := s.Evaluator.Evaluate(ctx, s.BusinessLat, s.BusinessLng, appt.Start, duration)
	if err != nil || assessment.RiskLevel == models.RiskUnknown {
		// Unknown is never safe and never escalates. Surface it for manual
		// follow-up instead of silently skipping.
		logger.Warn("weather risk unknown; appointment needs manual review",
			zap.String("appointmentId", appt.ID),
			zap.Time("start", appt.Start),
			zap.Error(err))
		return false, nil
	}

	if !assessment.RiskLevel.Alertable() {
		return false, nil
	}

	highest, alerted, err := s.Alerts.HighestAlertedLevel(ctx, appt.ID)
	if err != nil {
		return false, fmt.Errorf("failed to read alert records: %w", err)
	}
	if alerted && assessment.RiskLevel <= highest {
		// Already covered by an alert at this level or higher.
		return false, nil
	}

	body := alertBody(appt, assessment)
	delivered, err := s.Notifier.SendSMS(ctx, appt.CustomerPhone, body)
	if err != nil {
		return false, fmt.Errorf("alert dispatch failed: %w", err)
	}
	if !delivered {
		return false, fmt.Errorf("alert dispatch unconfirmed for %s", appt.ID)
	}

	// Only a confirmed send earns a record; an unrecorded failure retries on
	// the next sweep.
	if err := s.Alerts.Record(ctx, models.AlertRecord{
		AppointmentID: appt.ID,
		RiskLevel:     assessment.RiskLevel,
		SentAt:        time.Now(),
	}); err != nil {
		return true, fmt.Errorf("alert sent but record write failed: %w", err)
	}

	logger.Info("weather alert dispatched",
		zap.String("appointmentId", appt.ID),
		zap.String("riskLevel", assessment.RiskLevel.String()))
	return true, nil
}

// alertBody renders the customer-facing alert with representative summary
// statistics from the forecast window.
func alertBody(appt models.Appointment, assessment models.WeatherRiskAssessment) string {
	return fmt.Sprintf(
		"Weather alert for your %s on %s: %s Avg chance of rain %.0f%%, avg temp %.0f°F. Reply to reschedule.",
		appt.Service,
		appt.Start.Format("Mon Jan 2 at 3:04 PM"),
		assessment.Recommendation,
		assessment.MeanChanceOfRain(),
		assessment.MeanTemperatureF(),
	)
}
