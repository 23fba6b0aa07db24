// File: brightwash/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brightwash/config"
	"brightwash/cron"
	"brightwash/database"
	alertRepo "brightwash/database/repository/alert"
	appointmentRepo "brightwash/database/repository/appointment"
	customerRepo "brightwash/database/repository/customer"
	"brightwash/handlers"
	"brightwash/middleware"
	"brightwash/routes"
	"brightwash/services/alerts"
	"brightwash/services/availability"
	"brightwash/services/booking"
	"brightwash/services/calendar"
	"brightwash/services/notification"
	"brightwash/services/weather"
	"brightwash/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitLockCache()

	// The calendar client is constructed once and lives for the process;
	// it is never re-created per request.
	calendarStore, err := calendar.NewGoogleCalendarStore(
		context.Background(),
		config.AppConfig.CalendarID,
		config.AppConfig.GoogleCredentialsFile,
		config.AppConfig.BusinessTimezone,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize calendar store: %v", err)
	}

	businessLoc, err := time.LoadLocation(config.AppConfig.BusinessTimezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid business timezone %q: %v", config.AppConfig.BusinessTimezone, err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	alertsRepo := alertRepo.NewMongoAlertRepo()
	custRepo := customerRepo.NewMongoCustomerRepo()
	if err := apptRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure appointment indexes: %v", err)
	}
	if err := alertsRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure alert indexes: %v", err)
	}

	// services.
	durations := availability.DurationTable{
		Entries:        config.AppConfig.ServiceDurations,
		DefaultMinutes: config.AppConfig.DefaultDurationMinutes,
	}
	slotGenerator := &availability.SlotGenerator{
		Hours: availability.BusinessHours{
			OpenHour:      config.AppConfig.OpenHour,
			LastStartHour: config.AppConfig.LastStartHour,
			HardCloseHour: config.AppConfig.HardCloseHour,
			LunchHour:     config.AppConfig.LunchHour,
		},
		Durations:   durations,
		HorizonDays: config.AppConfig.HorizonDays,
		Location:    businessLoc,
	}
	availabilityService := &availability.DefaultAvailabilityService{
		Calendar:  calendarStore,
		Generator: slotGenerator,
		Cache:     &availability.RedisSnapshotCache{Client: utils.GetCacheClient()},
	}

	notifier := notification.NewDefaultDispatcher(config.AppConfig)

	taskClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer taskClient.Close()

	coordinator := &booking.DefaultCoordinator{
		Calendar:     calendarStore,
		Locker:       &booking.RedisSlotLocker{Client: utils.GetLockClient()},
		Durations:    durations,
		Appointments: apptRepo,
		Customers:    custRepo,
		Notifier:     notifier,
		Alerts:       alertsRepo,
		TaskClient:   taskClient,
		BusinessLocation: fmt.Sprintf("%f,%f",
			config.AppConfig.BusinessLat, config.AppConfig.BusinessLng),
	}

	riskEvaluator := &weather.DefaultRiskEvaluator{
		Provider: weather.NewWeatherAPIClient(
			config.AppConfig.WeatherAPIKey,
			config.AppConfig.WeatherAPIBaseURL,
		),
	}
	sweeper := &alerts.DefaultScheduler{
		Appointments:  apptRepo,
		Alerts:        alertsRepo,
		Evaluator:     riskEvaluator,
		Notifier:      notifier,
		BusinessLat:   config.AppConfig.BusinessLat,
		BusinessLng:   config.AppConfig.BusinessLng,
		LookaheadDays: config.AppConfig.SweepLookaheadDays,
		Pacing:        time.Duration(config.AppConfig.SweepPacingMillis) * time.Millisecond,
	}

	// Background worker: durable reminders and the recurring weather sweep.
	cron.InitWorker(notifier, sweeper)

	// Health monitoring for deploy probes.
	utils.StartHealthMonitor(
		map[string]*redis.Client{
			"cache": utils.GetCacheClient(),
			"locks": utils.GetLockClient(),
		},
		database.MongoClient,
	)

	// Assemble the handler bundle and register routes.
	handlerBundle := &routes.HandlerBundle{
		Availability: handlers.NewAvailabilityHandler(availabilityService),
		Booking:      handlers.NewBookingHandler(coordinator),
		Sweep:        handlers.NewSweepHandler(sweeper),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
