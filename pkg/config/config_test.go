package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "change-me-in-production", cfg.SessionSecret)
	assert.False(t, cfg.SyncScheduleEnabled)
	assert.Equal(t, "07:00", cfg.SyncScheduleAt)
	assert.Empty(t, cfg.CronSecret)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-123")
	t.Setenv("HUBSPOT_ACCESS_TOKEN", "pat-456")
	t.Setenv("CRON_SECRET", "cron-789")
	t.Setenv("SYNC_SCHEDULE_ENABLED", "true")
	t.Setenv("SYNC_SCHEDULE_AT", "06:30")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "xoxb-123", cfg.SlackBotToken)
	assert.Equal(t, "pat-456", cfg.HubspotToken)
	assert.Equal(t, "cron-789", cfg.CronSecret)
	assert.True(t, cfg.SyncScheduleEnabled)
	assert.Equal(t, "06:30", cfg.SyncScheduleAt)
}

func TestBoolEnvGarbageFallsBack(t *testing.T) {
	t.Setenv("SYNC_SCHEDULE_ENABLED", "definitely")

	cfg := Load()

	assert.False(t, cfg.SyncScheduleEnabled)
}
