package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"CONFIG_FILE", "STORE_DRIVER", "DATABASE_URL", "MONGODB_URI", "MONGODB_NAME",
	"SERVER_PORT", "TIMEZONE", "POLL_INTERVAL", "CHAT_RATE_PER_MINUTE", "CORS_ORIGINS", "LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/envmonitor")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, ":8080", cfg.ServerPort)
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Equal(t, 20, cfg.ChatRatePerMinute)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoadConfig_PostgresRequiresURL(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_MongoRequiresURIAndName(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("MONGODB_NAME", "envmonitor")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "envmonitor.toml")
	content := `
store_driver = "postgres"
database_url = "postgres://file/envmonitor"
server_port = ":9090"
timezone = "America/Bogota"
poll_interval = "10s"
chat_rate_per_minute = 5
cors_origins = ["http://localhost:3000"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SERVER_PORT", ":7070")
	t.Setenv("CORS_ORIGINS", "http://a.example, http://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://file/envmonitor", cfg.DatabaseURL)
	assert.Equal(t, ":7070", cfg.ServerPort)
	assert.Equal(t, 10*time.Second, cfg.PollInterval)
	assert.Equal(t, 5, cfg.ChatRatePerMinute)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "America/Bogota", cfg.Location().String())
}

func TestLoadConfig_Invalid(t *testing.T) {
	testCases := map[string][2]string{
		"unknown driver":   {"STORE_DRIVER", "cassandra"},
		"bad interval":     {"POLL_INTERVAL", "soon"},
		"too fast polling": {"POLL_INTERVAL", "10ms"},
		"bad rate":         {"CHAT_RATE_PER_MINUTE", "lots"},
		"bad timezone":     {"TIMEZONE", "Mars/Olympus"},
		"bad log level":    {"LOG_LEVEL", "verbose"},
	}

	for name, kv := range testCases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("DATABASE_URL", "postgres://localhost/envmonitor")
			t.Setenv(kv[0], kv[1])

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
