package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[server]
http_port = 8090

[database]
host = "db"
port = 5432
user = "barber"
password = "${BARBER_DB_PASSWORD}"
dbname = "barber"

[notifications]
driver = "kafka"
kafka_brokers = ["kafka:9092"]

[user_service]
url = "http://users:8080"

[booking]
timezone = "Europe/Moscow"
default_step_policy = "hourly"
margin_minutes = 15
`

func TestLoad(t *testing.T) {
	t.Setenv("BARBER_DB_PASSWORD", "s3cret")

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Server.HTTPPort)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Contains(t, cfg.Database.DSN(), "password=s3cret")
	assert.Equal(t, "hourly", cfg.Booking.DefaultStepPolicy)
	require.NotNil(t, cfg.Booking.CommissionBasisPoints)
	assert.Equal(t, 5000, *cfg.Booking.CommissionBasisPoints)
	assert.Equal(t, 500*time.Millisecond, cfg.Notifications.PublishTimeout())
	assert.Equal(t, 24*time.Hour, cfg.Booking.CartTTL())
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "barber.notifications", cfg.Notifications.KafkaTopic)

	loc, err := cfg.Booking.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestParse_ZeroCommissionIsKept(t *testing.T) {
	t.Setenv("BARBER_DB_PASSWORD", "x")

	cfg, err := Parse(sample + "commission_basis_points = 0\n")
	require.NoError(t, err)

	require.NotNil(t, cfg.Booking.CommissionBasisPoints)
	assert.Equal(t, 0, *cfg.Booking.CommissionBasisPoints)
}

func TestParse_Invalid(t *testing.T) {
	base := `
[database]
host = "db"
dbname = "barber"
[user_service]
url = "http://users"
`
	_, err := Parse(base)
	require.NoError(t, err)

	_, err = Parse(base + "[booking]\ncommission_basis_points = 12000\n")
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Parse(base + "[booking]\ndefault_step_policy = \"random\"\n")
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Parse(base + "[notifications]\ndriver = \"kafka\"\n")
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Parse(base + "[booking]\ntimezone = \"Mars/Olympus\"\n")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
