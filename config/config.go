package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// MongoDB configuration.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisLockDB   int    `mapstructure:"REDIS_LOCK_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Google Calendar, the authoritative busy-interval store.
	CalendarID            string `mapstructure:"CALENDAR_ID"`
	GoogleCredentialsFile string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`

	// Business location and working hours.
	BusinessLat      float64 `mapstructure:"BUSINESS_LAT"`
	BusinessLng      float64 `mapstructure:"BUSINESS_LNG"`
	BusinessTimezone string  `mapstructure:"BUSINESS_TIMEZONE"`
	OpenHour         int     `mapstructure:"OPEN_HOUR"`
	LastStartHour    int     `mapstructure:"LAST_START_HOUR"`
	HardCloseHour    int     `mapstructure:"HARD_CLOSE_HOUR"`
	LunchHour        int     `mapstructure:"LUNCH_HOUR"`
	HorizonDays      int     `mapstructure:"HORIZON_DAYS"`

	// Service duration table in minutes. Lookups for unknown services
	// fall back to DefaultDurationMinutes, so the default must be set.
	ServiceDurations       map[string]int `mapstructure:"SERVICE_DURATIONS"`
	DefaultDurationMinutes int            `mapstructure:"DEFAULT_DURATION_MINUTES"`

	// Weather provider.
	WeatherAPIKey     string `mapstructure:"WEATHER_API_KEY"`
	WeatherAPIBaseURL string `mapstructure:"WEATHER_API_BASE_URL"`

	// Notification dispatch.
	TwilioAccountSID string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber string `mapstructure:"TWILIO_FROM_NUMBER"`
	SMTPHost         string `mapstructure:"SMTP_HOST"`
	SMTPPort         int    `mapstructure:"SMTP_PORT"`
	SMTPUser         string `mapstructure:"SMTP_USER"`
	SMTPPassword     string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom         string `mapstructure:"SMTP_FROM"`

	// Weather sweep tuning.
	SweepLookaheadDays int    `mapstructure:"SWEEP_LOOKAHEAD_DAYS"`
	SweepPacingMillis  int    `mapstructure:"SWEEP_PACING_MILLIS"`
	SweepCronSpec      string `mapstructure:"SWEEP_CRON_SPEC"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "brightwash")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_LOCK_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("BUSINESS_TIMEZONE", "America/Chicago")
	viper.SetDefault("OPEN_HOUR", 9)
	viper.SetDefault("LAST_START_HOUR", 15)
	viper.SetDefault("HARD_CLOSE_HOUR", 17)
	viper.SetDefault("LUNCH_HOUR", 12)
	viper.SetDefault("HORIZON_DAYS", 14)
	viper.SetDefault("DEFAULT_DURATION_MINUTES", 120)
	viper.SetDefault("SERVICE_DURATIONS", map[string]int{
		"Express Wash":    60,
		"Standard Detail": 120,
		"Full Detail":     240,
	})
	viper.SetDefault("WEATHER_API_BASE_URL", "https://api.weatherapi.com/v1")
	viper.SetDefault("SWEEP_LOOKAHEAD_DAYS", 3)
	viper.SetDefault("SWEEP_PACING_MILLIS", 500)
	viper.SetDefault("SWEEP_CRON_SPEC", "@every 1h")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := Validate(AppConfig); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
}

// Validate rejects configurations that cannot produce a working scheduler.
// Failures here are fatal at startup, never per-request.
func Validate(cfg Config) error {
	if cfg.CalendarID == "" {
		return fmt.Errorf("CALENDAR_ID is required")
	}
	if cfg.WeatherAPIKey == "" {
		return fmt.Errorf("WEATHER_API_KEY is required")
	}
	if cfg.BusinessLat == 0 && cfg.BusinessLng == 0 {
		return fmt.Errorf("BUSINESS_LAT and BUSINESS_LNG are required")
	}
	if cfg.DefaultDurationMinutes <= 0 {
		return fmt.Errorf("DEFAULT_DURATION_MINUTES must be positive")
	}
	if cfg.OpenHour >= cfg.LastStartHour || cfg.LastStartHour > cfg.HardCloseHour {
		return fmt.Errorf("business hours are inconsistent: open=%d lastStart=%d hardClose=%d",
			cfg.OpenHour, cfg.LastStartHour, cfg.HardCloseHour)
	}
	if cfg.HorizonDays <= 0 {
		return fmt.Errorf("HORIZON_DAYS must be positive")
	}
	return nil
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
