package utils

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"membership-console/models"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// GetConfig read the configuration from environment variables or config files
func GetConfig() (*models.Config, error) {
	config, err := Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return config, nil
}

// Load initializes and returns the application configuration using Viper
func Load() (*models.Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../")
	v.AddConfigPath("../../")

	setDefaults(v)

	// Enable environment variable support
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// Config file not found, continue with defaults and env vars
		fmt.Printf("Config file not found (%v), using defaults and environment variables\n", err)
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	// Handle nested JSON structure from config.json
	if v.IsSet("app") {
		flattenNestedConfig(v)
	}

	var config models.Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Parse session TTL if it's a string
	if v.IsSet("sessions.ttl") {
		ttlStr := v.GetString("sessions.ttl")
		if ttlStr != "" {
			ttl, err := time.ParseDuration(ttlStr)
			if err != nil {
				return nil, fmt.Errorf("invalid sessions.ttl format: %w", err)
			}
			config.SessionTTL = ttl
		}
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Application defaults
	v.SetDefault("app_name", "Membership Registry Console")
	v.SetDefault("app_version", "1.0.0")
	v.SetDefault("app_env", "development")
	v.SetDefault("app_host", "0.0.0.0")
	v.SetDefault("app_port", "8082")

	// Remote registry defaults
	v.SetDefault("registry_base_url", "http://localhost:5000/api")
	v.SetDefault("upload_url", "http://localhost:5000/api/upload")

	// Form session defaults
	v.SetDefault("session_ttl", 30*time.Minute)
	v.SetDefault("janitor_schedule", "0 */5 * * * *")

	// Logging defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	// CORS defaults
	v.SetDefault("cors_origins", []string{"*"})

	// Base Path default
	v.SetDefault("basePath", "/api/v1")
}

// validate checks if all required configuration is provided
func validate(c *models.Config) error {
	if c.RegistryBaseURL == "" {
		return fmt.Errorf("registry_base_url must be set")
	}
	if c.AppEnv == "production" && strings.HasPrefix(c.RegistryBaseURL, "http://localhost") {
		fmt.Println("registry_base_url points at localhost in production, check configuration")
	}
	return nil
}

// flattenNestedConfig flattens the nested JSON structure to flat keys for easier mapping
func flattenNestedConfig(v *viper.Viper) {
	// App section
	if v.IsSet("app.name") {
		v.Set("app_name", v.GetString("app.name"))
	}
	if v.IsSet("app.version") {
		v.Set("app_version", v.GetString("app.version"))
	}
	if v.IsSet("app.env") {
		v.Set("app_env", v.GetString("app.env"))
	}
	if v.IsSet("app.host") {
		v.Set("app_host", v.GetString("app.host"))
	}
	if v.IsSet("app.port") {
		v.Set("app_port", v.GetString("app.port"))
	}

	// Registry section
	if v.IsSet("registry.base_url") {
		v.Set("registry_base_url", v.GetString("registry.base_url"))
	}
	if v.IsSet("registry.upload_url") {
		v.Set("upload_url", v.GetString("registry.upload_url"))
	}

	// Sessions section
	if v.IsSet("sessions.janitor_schedule") {
		v.Set("janitor_schedule", v.GetString("sessions.janitor_schedule"))
	}

	// Logging section
	if v.IsSet("logging.level") {
		v.Set("log_level", v.GetString("logging.level"))
	}
	if v.IsSet("logging.format") {
		v.Set("log_format", v.GetString("logging.format"))
	}

	// CORS section
	if v.IsSet("cors.origins") {
		v.Set("cors_origins", v.GetStringSlice("cors.origins"))
	}

	// Base Path
	if v.IsSet("basePath") {
		v.Set("basePath", v.GetString("basePath"))
	}
}

// PrintPrettyJSON takes any struct or map and prints it as pretty JSON
func PrintPrettyJSON(data interface{}) string {
	prettyJSON, err := json.MarshalIndent(data, "", "    ") // 4 spaces indent
	if err != nil {
		fmt.Println("Failed to generate JSON:", err)
		return ""
	}
	return string(prettyJSON)
}

// IDGenerator is the single source of synthesized identifiers. Entities
// created in the console before the server assigns an id get one from here,
// so collision risk stays auditable in one place.
type IDGenerator interface {
	NewID() string
	TimeToken() string
}

type uuidGenerator struct{}

// NewIDGenerator returns the default uuid-backed generator.
func NewIDGenerator() IDGenerator {
	return uuidGenerator{}
}

// NewID returns a new UUID string
func (uuidGenerator) NewID() string {
	return uuid.New().String()
}

// TimeToken returns a millisecond-timestamp token matching the id shape the
// registry's older clients synthesized.
func (uuidGenerator) TimeToken() string {
	return fmt.Sprintf("%d", time.Now().UnixMilli())
}
