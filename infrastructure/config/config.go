package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string
	ClientURL     string

	// AWS configuration
	AWSRegion    string
	EventsTable  string
	EventBusName string

	// Cognito configuration
	CognitoUserPoolID string
	CognitoClientID   string

	// Lambda configuration
	IsLambda           bool
	LambdaFunctionName string

	// Logging
	LogLevel string

	// Feature flags
	EnableMetrics bool
	EnableTracing bool
	EnableCORS    bool
}

// LoadConfig loads configuration from environment variables. Outside Lambda
// a local .env file is merged in first so development machines do not need
// exported variables.
func LoadConfig() (*Config, error) {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") == "" {
		// Missing .env is fine; exported variables still apply.
		_ = godotenv.Load()
	}

	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		ClientURL:     getEnv("CLIENT_URL", "http://localhost:3000"),

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		EventsTable:  getEnv("EVENTS_TABLE", getEnv("TABLE_NAME", "ntlango-events")),
		EventBusName: getEnv("EVENT_BUS_NAME", "ntlango-events-bus"),

		CognitoUserPoolID: getEnv("COGNITO_USER_POOL_ID", ""),
		CognitoClientID:   getEnv("COGNITO_CLIENT_ID", ""),

		IsLambda:           getEnvBool("IS_LAMBDA", os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""),
		LambdaFunctionName: getEnv("AWS_LAMBDA_FUNCTION_NAME", ""),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", false),
		EnableTracing: getEnvBool("ENABLE_TRACING", false),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.IsProduction() {
		if c.CognitoUserPoolID == "" {
			return fmt.Errorf("COGNITO_USER_POOL_ID is required in production")
		}
		if c.CognitoClientID == "" {
			return fmt.Errorf("COGNITO_CLIENT_ID is required in production")
		}
		if c.EventsTable == "" {
			return fmt.Errorf("EVENTS_TABLE is required")
		}
		if c.EventBusName == "" {
			return fmt.Errorf("EVENT_BUS_NAME is required")
		}
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
