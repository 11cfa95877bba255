package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Firestore
		Gemini
		Categories
		Tasks
		CORS
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Firestore struct {
		ProjectID       string
		CredentialsFile string
		UserID          string // resolved identity; empty means local mode
	}
	Gemini struct {
		APIKey     string
		TextModel  string
		ImageModel string
		RateRPS    float64 // gateway calls per second
		RateBurst  int
	}
	Categories struct {
		RefreshEnabled  bool
		RefreshSchedule string // Cron format: "0 */12 * * *" = every 12 hours
		Count           int    // categories generated per refresh
	}
	Tasks struct {
		Enabled           bool
		Workers           int
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
	CORS struct {
		AllowedOrigins []string
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8189)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Remote backend defaults (empty = local mode)
	v.SetDefault("firestore_project_id", "")
	v.SetDefault("google_application_credentials", "")
	v.SetDefault("user_id", "")

	// Gemini defaults
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_model", DefaultTextModel)
	v.SetDefault("gemini_image_model", DefaultImageModel)
	v.SetDefault("gemini_rate_rps", 0.5)
	v.SetDefault("gemini_rate_burst", 2)

	// Category cache defaults
	v.SetDefault("category_refresh_enabled", true)
	v.SetDefault("category_refresh_schedule", "0 */12 * * *") // Every 12 hours
	v.SetDefault("category_count", 4)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_timeout", "2m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	v.SetDefault("cors_allowed_origins", []string{"*"})

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Firestore: Firestore{
			ProjectID:       v.GetString("FIRESTORE_PROJECT_ID"),
			CredentialsFile: v.GetString("GOOGLE_APPLICATION_CREDENTIALS"),
			UserID:          v.GetString("USER_ID"),
		},
		Gemini: Gemini{
			APIKey:     v.GetString("GEMINI_API_KEY"),
			TextModel:  v.GetString("GEMINI_MODEL"),
			ImageModel: v.GetString("GEMINI_IMAGE_MODEL"),
			RateRPS:    v.GetFloat64("GEMINI_RATE_RPS"),
			RateBurst:  v.GetInt("GEMINI_RATE_BURST"),
		},
		Categories: Categories{
			RefreshEnabled:  v.GetBool("CATEGORY_REFRESH_ENABLED"),
			RefreshSchedule: v.GetString("CATEGORY_REFRESH_SCHEDULE"),
			Count:           v.GetInt("CATEGORY_COUNT"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
		CORS: CORS{
			AllowedOrigins: v.GetStringSlice("CORS_ALLOWED_ORIGINS"),
		},
	}
}

// RemoteMode reports whether the Firestore backend should be used. The
// backend is picked once at startup: remote needs both a configured project
// and a resolved user identity.
func (c *Config) RemoteMode() bool {
	return c.Firestore.ProjectID != "" && c.Firestore.UserID != ""
}
