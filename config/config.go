package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Mongo configuration. Empty means the in-memory stores are used.
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis configuration. Empty addr means in-memory funnel sessions and no
	// reminder queue.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisFunnelDB        int    `mapstructure:"REDIS_FUNNEL_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Mail account identity and credential, plus the owner notification
	// recipient. Absence of any degrades notification sending to a reported
	// failure, never a crash.
	MailAccount  string `mapstructure:"GMAIL_EMAIL"`
	MailPassword string `mapstructure:"GMAIL_APP_PASSWORD"`
	OwnerEmail   string `mapstructure:"OWNER_EMAIL"`
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`

	// External collaborators, all optional.
	StripeKey           string `mapstructure:"STRIPE_KEY"`
	GeminiAPIKey        string `mapstructure:"GEMINI_API_KEY"`
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	// Consultation details surfaced in booking confirmations.
	MeetingLink string `mapstructure:"MEETING_LINK"`
	PhoneBackup string `mapstructure:"PHONE_BACKUP"`
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
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_FUNNEL_DB", 0)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 1)
	viper.SetDefault("SMTP_HOST", "smtp.gmail.com")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("MEETING_LINK", "https://zoom.us/j/mock-meeting-id")
	viper.SetDefault("PHONE_BACKUP", "+1-647-555-0123")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// MailConfigured reports whether the transactional mail transport has a full
// identity, credential, and owner recipient.
func MailConfigured() bool {
	return AppConfig.MailAccount != "" && AppConfig.MailPassword != "" && AppConfig.OwnerEmail != ""
}
