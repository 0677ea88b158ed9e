package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "nva-resources", cfg.DynamoDBTable)
	assert.Equal(t, "ByTypeCustomerStatus", cfg.ByTypeCustomerStatusIndex)
	assert.Equal(t, "ByCustomerResource", cfg.ByCustomerResourceIndex)
	assert.Equal(t, "ByTypeAndIdentifier", cfg.ByTypeAndIdentifierIndex)
	assert.Equal(t, "ByCristinIdentifier", cfg.ByCristinIdentifierIndex)
	assert.Equal(t, "nva-publication-events", cfg.EventBusName)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("TABLE_NAME", "custom-table")
	t.Setenv("EVENT_BUS_NAME", "custom-bus")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("ENABLE_TRACING", "true")
	t.Setenv("ENABLE_METRICS", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "custom-table", cfg.DynamoDBTable)
	assert.Equal(t, "custom-bus", cfg.EventBusName)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.EnableTracing)
	assert.True(t, cfg.EnableMetrics)
}

func TestValidateRequiresTable(t *testing.T) {
	cfg := &Config{Environment: "development"}
	require.Error(t, cfg.Validate())

	cfg.DynamoDBTable = "t"
	require.NoError(t, cfg.Validate())
}
