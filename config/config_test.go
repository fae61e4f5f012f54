package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"PORT", "LOG_LEVEL", "REPORT_ANALYST", "DASHBOARD_INIT_DELAY", "PREFERENCES_STORE", "EVENTS_SINK", "MONGO_URI", "KAFKA_BOOTSTRAPSERVERS", "KAFKA_TOPIC", "SQLITE_PATH", "SENTRY_SAMPLE_RATE"} {
		t.Setenv(key, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "Survesh Bajpai", cfg.Report.Analyst)
	assert.Equal(t, 100*time.Millisecond, cfg.Dashboard.InitDelay)
	assert.Equal(t, 1.0, cfg.Sentry.SampleRate)
	assert.Equal(t, StoreMemory, cfg.Preferences.Store)
	assert.Equal(t, SinkNone, cfg.Events.Sink)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "8080"
dashboard:
  init_delay: 250ms
preferences:
  store: sqlite
sqlite:
  path: /tmp/prefs.db
events:
  sink: kafka
kafka:
  bootstrap_servers: broker:9092
`), 0o644))

	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("KAFKA_TOPIC", "audit")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.Dashboard.InitDelay)
	assert.Equal(t, StoreSQLite, cfg.Preferences.Store)
	assert.Equal(t, "/tmp/prefs.db", cfg.SQLite.Path)
	assert.Equal(t, "broker:9092", cfg.Kafka.BootstrapServers)
	assert.Equal(t, "audit", cfg.Kafka.Topic)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ExplicitZeroValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sentry:
  sample_rate: 0
dashboard:
  init_delay: 0s
`), 0o644))

	clearEnv(t)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Sentry.SampleRate)
	assert.Equal(t, time.Duration(0), cfg.Dashboard.InitDelay)
	assert.NoError(t, cfg.Validate())

	t.Setenv("SENTRY_SAMPLE_RATE", "0")
	t.Setenv("DASHBOARD_INIT_DELAY", "0s")
	cfg, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Sentry.SampleRate)
	assert.Equal(t, time.Duration(0), cfg.Dashboard.InitDelay)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [port"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	load := func(t *testing.T) *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		return cfg
	}

	cfg := load(t)
	cfg.Preferences.Store = "redis"
	assert.Error(t, cfg.Validate())

	cfg = load(t)
	cfg.Preferences.Store = StoreMongo
	assert.Error(t, cfg.Validate())
	cfg.Mongo.URI = "mongodb://localhost:27017"
	assert.NoError(t, cfg.Validate())

	cfg = load(t)
	cfg.Events.Sink = SinkKafka
	assert.Error(t, cfg.Validate())

	cfg = load(t)
	cfg.Events.Sink = "nats"
	assert.Error(t, cfg.Validate())

	cfg = load(t)
	cfg.Server.Port = "http"
	assert.Error(t, cfg.Validate())
}

func TestPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	assert.Equal(t, DefaultPath, Path())
	t.Setenv("CONFIG_PATH", "/etc/itsector.yaml")
	assert.Equal(t, "/etc/itsector.yaml", Path())
}
