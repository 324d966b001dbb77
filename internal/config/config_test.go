package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

const minimal = `
[salon_api]
url = "http://localhost:3000"
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(minimal)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, CatalogSourceStatic, cfg.Catalog.Source)
	assert.Equal(t, 20, cfg.Booking.DailyCapacity)
	assert.Equal(t, "UGX", cfg.Booking.Currency)
	assert.Equal(t, []string{"Sunday"}, cfg.Booking.ClosedWeekdays)
	assert.Equal(t, 30*time.Minute, cfg.Sessions.SessionTTL())

	policy, err := cfg.Booking.Policy()
	require.NoError(t, err)
	assert.Equal(t, "Africa/Kampala", policy.Location.String())
	assert.Equal(t, []time.Weekday{time.Sunday}, policy.ClosedWeekdays)
	assert.Equal(t, types.TimeString("08:00"), policy.FirstSlot)
	assert.Len(t, policy.TimeSlots(), 23)
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := Parse(`
[salon_api]
url = "http://salon.local"

[booking]
daily_capacity = 12
closed_weekdays = ["sunday", "Monday"]
first_slot = "09:00"
last_slot = "17:00"
slot_step_minutes = 60

[catalog]
source = "postgres"

[database]
host = "db"
dbname = "salon"
`)
	require.NoError(t, err)

	policy, err := cfg.Booking.Policy()
	require.NoError(t, err)
	assert.Equal(t, 12, policy.DailyCapacity)
	assert.Equal(t, []time.Weekday{time.Sunday, time.Monday}, policy.ClosedWeekdays)
	assert.Len(t, policy.TimeSlots(), 9)
	assert.Equal(t, "host=db port=5432 user= password= dbname=salon sslmode=disable", cfg.Database.DSN())
}

func TestParse_ValidationAggregatesErrors(t *testing.T) {
	_, err := Parse(`
[booking]
daily_capacity = -1
closed_weekdays = ["Funday"]
first_slot = "19:00"
last_slot = "08:00"

[catalog]
source = "redis"
`)
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "salon_api.url is required")
	assert.Contains(t, msg, "daily_capacity")
	assert.Contains(t, msg, "Funday")
	assert.Contains(t, msg, "last_slot must not be before")
	assert.Contains(t, msg, "catalog.source")
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(minimal), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.SalonAPI.URL)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
