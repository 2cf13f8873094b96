package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Database: DatabaseConfig{
			Host: "localhost", Port: 5432, User: "postgres", Name: "weatherpush",
		},
		Weather: WeatherConfig{
			FreeBaseURL:     "https://api.open-meteo.com/v1",
			EnableCache:     true,
			CacheTTLMinutes: 10,
			ReuseTolerance:  0.1,
		},
		Scheduler: SchedulerConfig{
			RunIntervalMinutes: 60,
			FanOutWorkers:      8,
			GroupPrecision:     0.1,
		},
		Cache: CacheConfig{Type: CacheTypeMemory},
	}
}

func TestConfig_ValidatesCleanly(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestConfig_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero server port", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"empty db host", func(c *Config) { c.Database.Host = "" }},
		{"empty db name", func(c *Config) { c.Database.Name = "" }},
		{"empty free base URL", func(c *Config) { c.Weather.FreeBaseURL = "" }},
		{"zero cache TTL", func(c *Config) { c.Weather.CacheTTLMinutes = 0 }},
		{"excessive cache TTL", func(c *Config) { c.Weather.CacheTTLMinutes = 2000 }},
		{"negative reuse tolerance", func(c *Config) { c.Weather.ReuseTolerance = -0.1 }},
		{"zero run interval", func(c *Config) { c.Scheduler.RunIntervalMinutes = 0 }},
		{"too many workers", func(c *Config) { c.Scheduler.FanOutWorkers = 1000 }},
		{"zero group precision", func(c *Config) { c.Scheduler.GroupPrecision = 0 }},
		{"unknown cache type", func(c *Config) { c.Cache.Type = CacheTypeUnknown }},
		{"redis without addr", func(c *Config) {
			c.Cache.Type = CacheTypeRedis
			c.Cache.Redis.Addr = ""
		}},
		{"redis db out of range", func(c *Config) {
			c.Cache.Type = CacheTypeRedis
			c.Cache.Redis.Addr = "localhost:6379"
			c.Cache.Redis.DB = 16
		}},
		{"trigger bad time", func(c *Config) {
			c.Trigger = TriggerConfig{Enabled: true, Time: "7:00", Days: []int{1}, Location: "-30.03,-51.21"}
		}},
		{"trigger no days", func(c *Config) {
			c.Trigger = TriggerConfig{Enabled: true, Time: "07:00", Location: "-30.03,-51.21"}
		}},
		{"trigger without location", func(c *Config) {
			c.Trigger = TriggerConfig{Enabled: true, Time: "07:00", Days: []int{1}}
		}},
		{"trigger malformed location", func(c *Config) {
			c.Trigger = TriggerConfig{Enabled: true, Time: "07:00", Days: []int{1}, Location: "porto alegre"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestTriggerConfig_ParseLocation(t *testing.T) {
	cfg := TriggerConfig{Location: "-30.03, -51.21"}
	lat, lon, err := cfg.ParseLocation()
	require.NoError(t, err)
	require.NotNil(t, lat)
	require.NotNil(t, lon)
	assert.Equal(t, -30.03, *lat)
	assert.Equal(t, -51.21, *lon)

	cfg.Location = ""
	lat, lon, err = cfg.ParseLocation()
	require.NoError(t, err)
	assert.Nil(t, lat)
	assert.Nil(t, lon)

	cfg.Location = "abc,def"
	_, _, err = cfg.ParseLocation()
	assert.Error(t, err)
}

func TestCacheType_Conversions(t *testing.T) {
	assert.Equal(t, "memory", CacheTypeMemory.String())
	assert.Equal(t, "redis", CacheTypeRedis.String())
	assert.Equal(t, CacheTypeRedis, CacheTypeFromString("redis"))
	assert.Equal(t, CacheTypeUnknown, CacheTypeFromString("bogus"))
	assert.False(t, CacheTypeUnknown.IsValid())

	var ct CacheType
	require.NoError(t, ct.UnmarshalText([]byte("memory")))
	assert.Equal(t, CacheTypeMemory, ct)
}

func TestSchedulerConfig_Durations(t *testing.T) {
	cfg := SchedulerConfig{RunIntervalMinutes: 30, GroupFetchPauseMS: 250}
	assert.Equal(t, "30m0s", cfg.RunInterval().String())
	assert.Equal(t, "250ms", cfg.GroupFetchPause().String())
}

func TestPushConfig_IsConfigured(t *testing.T) {
	assert.False(t, PushConfig{}.IsConfigured())
	assert.False(t, PushConfig{VAPIDPublicKey: "pub"}.IsConfigured())
	assert.True(t, PushConfig{VAPIDPublicKey: "pub", VAPIDPrivateKey: "priv"}.IsConfigured())
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: 5432, User: "app", Password: "secret", Name: "weatherpush", SSLMode: "disable"}
	dsn := cfg.GetDSN()
	assert.Contains(t, dsn, "host=db")
	assert.Contains(t, dsn, "dbname=weatherpush")
	assert.Contains(t, dsn, "sslmode=disable")
}
