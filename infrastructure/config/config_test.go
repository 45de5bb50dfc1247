package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "ntlango-events", cfg.EventsTable)
	assert.Equal(t, "ntlango-events-bus", cfg.EventBusName)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigReadsEnvironment(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9999")
	t.Setenv("EVENTS_TABLE", "events-staging")
	t.Setenv("ENABLE_METRICS", "true")
	t.Setenv("ENABLE_CORS", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.ServerAddress)
	assert.Equal(t, "events-staging", cfg.EventsTable)
	assert.True(t, cfg.EnableMetrics)
	assert.False(t, cfg.EnableCORS)
}

func TestValidateRequiresCognitoInProduction(t *testing.T) {
	cfg := &Config{
		Environment:  "production",
		EventsTable:  "events",
		EventBusName: "bus",
	}
	assert.Error(t, cfg.Validate())

	cfg.CognitoUserPoolID = "pool"
	assert.Error(t, cfg.Validate())

	cfg.CognitoClientID = "client"
	assert.NoError(t, cfg.Validate())
}

func TestValidateSkipsChecksInDevelopment(t *testing.T) {
	cfg := &Config{Environment: "development"}
	assert.NoError(t, cfg.Validate())
}
