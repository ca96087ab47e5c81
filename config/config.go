package config

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/shubh-37/social-manager/internal/models"
)

// Keys shared by env vars (upper-cased) and command line flags.
const (
	KeyBackendURL         = "backend_url"
	KeySlackToken         = "slack_bot_token"
	KeySlackSigningSecret = "slack_signing_secret"
	KeyPort               = "port"
	KeyLogLevel           = "log_level"
	KeyLogFormat          = "log_format"
	KeyRequestTimeout     = "request_timeout"
	KeyConfirmTimeout     = "confirm_timeout"
	KeyDefaultTone        = "default_tone"
	KeyDefaultPostType    = "default_post_type"
	KeyDefaultPostCount   = "default_post_count"
	KeyDefaultFrequency   = "default_frequency"
	KeyDefaultDays        = "default_days"
)

type Config struct {
	BackendURL         string
	SlackToken         string
	SlackSigningSecret string
	Port               string
	LogLevel           string
	LogFormat          string
	// RequestTimeout of zero means backend calls never time out.
	RequestTimeout time.Duration
	ConfirmTimeout time.Duration
	Defaults       Defaults
}

// Defaults seed every new session's generation and schedule choices.
type Defaults struct {
	Preferences models.GenerationPreferences
	Frequency   int
	Days        []models.Weekday
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyBackendURL, "http://localhost:5000")
	v.SetDefault(KeyPort, "3000")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "json")
	v.SetDefault(KeyRequestTimeout, time.Duration(0))
	v.SetDefault(KeyConfirmTimeout, 2*time.Minute)
	v.SetDefault(KeyDefaultTone, "motivational")
	v.SetDefault(KeyDefaultPostType, models.PostTypePromo)
	v.SetDefault(KeyDefaultPostCount, 3)
	v.SetDefault(KeyDefaultFrequency, 3)
	v.SetDefault(KeyDefaultDays, "Mon,Wed,Fri")
}

// LoadConfig loads configuration from environment variables
// It first tries to load from .env file, then falls back to system environment variables
func LoadConfig(v *viper.Viper) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Debug(".env file not found or couldn't be loaded")
	}

	setDefaults(v)
	v.AutomaticEnv()

	days, err := models.ParseWeekdays(v.GetString(KeyDefaultDays))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", strings.ToUpper(KeyDefaultDays), err)
	}

	return &Config{
		BackendURL:         v.GetString(KeyBackendURL),
		SlackToken:         v.GetString(KeySlackToken),
		SlackSigningSecret: v.GetString(KeySlackSigningSecret),
		Port:               v.GetString(KeyPort),
		LogLevel:           v.GetString(KeyLogLevel),
		LogFormat:          v.GetString(KeyLogFormat),
		RequestTimeout:     v.GetDuration(KeyRequestTimeout),
		ConfirmTimeout:     v.GetDuration(KeyConfirmTimeout),
		Defaults: Defaults{
			Preferences: models.GenerationPreferences{
				Tone:     v.GetString(KeyDefaultTone),
				PostType: v.GetString(KeyDefaultPostType),
				Count:    v.GetInt(KeyDefaultPostCount),
			},
			Frequency: v.GetInt(KeyDefaultFrequency),
			Days:      days,
		},
	}, nil
}

// Validate checks what every command needs.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BackendURL, validation.Required.Error("BACKEND_URL is required"), is.URL),
		validation.Field(&c.ConfirmTimeout, validation.Min(time.Second)),
	)
}

// ValidateSlack additionally requires the Slack credentials used by serve.
func (c *Config) ValidateSlack() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.SlackToken == "" {
		return fmt.Errorf("SLACK_BOT_TOKEN is required")
	}
	if c.SlackSigningSecret == "" {
		return fmt.Errorf("SLACK_SIGNING_SECRET is required")
	}
	return nil
}
