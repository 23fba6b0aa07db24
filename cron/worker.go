package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"brightwash/config"
	"brightwash/models"
	"brightwash/services/alerts"
	"brightwash/services/notification"
	"brightwash/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitWorker runs the async worker in background. It handles durable
// reminder sends and the recurring weather sweep.
func InitWorker(notifSvc notification.Dispatcher, sweeper alerts.Scheduler) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(notifSvc))
	mux.HandleFunc(tasks.TypeWeatherSweep, handleSweepTask(sweeper))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Register the recurring weather sweep. The schedule lives in Redis, so
	// a restart picks it back up without dropping the cadence.
	go runSweepScheduler(redisOpts)

	// Start async worker with retry logic
	go func() {
		log.Println("[Worker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Worker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[Worker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifSvc notification.Dispatcher) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] Invalid payload: %v", err)
			return err
		}

		log.Printf("[ReminderHandler] Firing reminder for appointment %s", p.AppointmentID)

		delivered, err := notifSvc.SendSMS(ctx, p.Phone, p.Body)
		if err != nil {
			log.Printf("[ReminderHandler] Failed to send reminder: %v", err)
			return err
		}
		if !delivered {
			log.Printf("[ReminderHandler] Reminder send unconfirmed for appointment %s", p.AppointmentID)
		}
		return nil
	}
}

func handleSweepTask(sweeper alerts.Scheduler) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		result, err := sweeper.RunWeatherSweep(ctx)
		if err != nil {
			log.Printf("[SweepHandler] Weather sweep failed: %v", err)
			return err
		}
		log.Printf("[SweepHandler] Weather sweep done: checked=%d alertsSent=%d",
			result.Checked, result.AlertsSent)
		return nil
	}
}

// runSweepScheduler enqueues the weather sweep task on the configured cadence.
func runSweepScheduler(redisOpts asynq.RedisClientOpt) {
	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})

	if _, err := scheduler.Register(config.AppConfig.SweepCronSpec, tasks.NewWeatherSweepTask()); err != nil {
		log.Printf("[Worker] Failed to register weather sweep schedule: %v", err)
		return
	}

	if err := scheduler.Run(); err != nil {
		log.Printf("[Worker] Sweep scheduler stopped: %v", err)
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[Worker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
