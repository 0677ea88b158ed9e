package config

import (
	"fmt"
	"os"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion     string
	DynamoDBTable string

	// Secondary indexes on the registry table
	ByTypeCustomerStatusIndex string // GSI1 - listings by customer and status
	ByCustomerResourceIndex   string // GSI2 - tickets and messages of a resource
	ByTypeAndIdentifierIndex  string // GSI3 - direct identifier lookups
	ByCristinIdentifierIndex  string // GSI4 - legacy Cristin identifier lookups

	// Event fan-out
	EventBusName string
	EventSource  string

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

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "eu-west-1"),
		DynamoDBTable: getEnv("TABLE_NAME", "nva-resources"),

		ByTypeCustomerStatusIndex: getEnv("BY_TYPE_CUSTOMER_STATUS_INDEX_NAME", "ByTypeCustomerStatus"),
		ByCustomerResourceIndex:   getEnv("BY_CUSTOMER_RESOURCE_INDEX_NAME", "ByCustomerResource"),
		ByTypeAndIdentifierIndex:  getEnv("BY_TYPE_AND_IDENTIFIER_INDEX_NAME", "ByTypeAndIdentifier"),
		ByCristinIdentifierIndex:  getEnv("BY_CRISTIN_IDENTIFIER_INDEX_NAME", "ByCristinIdentifier"),

		EventBusName: getEnv("EVENT_BUS_NAME", "nva-publication-events"),
		EventSource:  getEnv("EVENT_SOURCE", "nva.publication"),

		IsLambda:           getEnvBool("IS_LAMBDA", false),
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

// Load is an alias for LoadConfig
func Load() (*Config, error) {
	return LoadConfig()
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.DynamoDBTable == "" {
		return fmt.Errorf("TABLE_NAME is required")
	}
	if c.Environment == "production" {
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
