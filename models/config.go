package models

import "time"

// Config holds all configuration for the application
type Config struct {
	// Application
	AppName    string `mapstructure:"app_name"`
	AppVersion string `mapstructure:"app_version"`
	AppEnv     string `mapstructure:"app_env"`
	AppHost    string `mapstructure:"app_host"`
	AppPort    string `mapstructure:"app_port"`

	// Remote membership registry (the source of truth this console fronts)
	RegistryBaseURL string `mapstructure:"registry_base_url"`
	UploadURL       string `mapstructure:"upload_url"`

	// Form sessions
	SessionTTL      time.Duration `mapstructure:"session_ttl"`
	JanitorSchedule string        `mapstructure:"janitor_schedule"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// CORS
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Base Path
	BasePath string `mapstructure:"basePath"`
}
