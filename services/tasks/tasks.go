package tasks

import (
	"encoding/json"
	"time"

	"brightwash/models"

	"github.com/hibiken/asynq"
)

const (
	TypeSendReminder = "reminder:send"
	TypeWeatherSweep = "weather:sweep"
)

// NewReminderTask builds a durable reminder task scheduled for fireAt. The
// queue persists the due time, so pending reminders survive restarts.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("reminder:" + payload.AppointmentID),
	}

	return task, opts, nil
}

// NewWeatherSweepTask builds the periodic weather sweep task.
func NewWeatherSweepTask() *asynq.Task {
	return asynq.NewTask(TypeWeatherSweep, nil)
}
