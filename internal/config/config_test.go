package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "postgres", cfg.Storage.Backend)
	assert.Equal(t, "Australia/Melbourne", cfg.Booking.Timezone)
	assert.Equal(t, 5, cfg.Database.TxMaxAttempts)
	assert.False(t, cfg.Events.Enabled())
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[booking]
timezone = "Europe/Berlin"
tx_timeout = 2

[business_hours]
open = "08:00"
close = "20:00"
slot_step_minutes = 15
closed_weekdays = [0, 6]

[events]
brokers = ["kafka:9092"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "Europe/Berlin", cfg.Booking.Timezone)
	assert.Equal(t, 5432, cfg.Database.Port, "untouched keys keep defaults")
	assert.Equal(t, []int{0, 6}, cfg.BusinessHours.ClosedWeekdays)
	assert.True(t, cfg.Events.Enabled())
	assert.Equal(t, 100, cfg.Events.BatchSize)

	loc, err := cfg.Booking.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())

	hours, err := cfg.BusinessHours.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, 8*60, hours.OpenMinute)
	assert.Equal(t, 20*60, hours.CloseMinute)
	assert.Equal(t, []time.Weekday{time.Sunday, time.Saturday}, hours.ClosedWeekdays)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SMC_DB_PASSWORD", "s3cret")
	t.Setenv("SMC_DB_PORT", "6543")
	t.Setenv("SMC_KAFKA_BROKERS", "a:9092, b:9092")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Events.Brokers)
	assert.Contains(t, cfg.Database.DSN(), "port=6543")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown timezone", "[booking]\ntimezone = \"Mars/Olympus\""},
		{"unknown backend", "[storage]\nbackend = \"mongo\""},
		{"firestore without project", "[storage]\nbackend = \"firestore\""},
		{"jwt without key", "[auth]\nmode = \"jwt\""},
		{"bad hours", "[business_hours]\nopen = \"9am\""},
		{"bad weekday", "[business_hours]\nclosed_weekdays = [7]"},
		{"malformed toml", "[server\nhttp_port = 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
