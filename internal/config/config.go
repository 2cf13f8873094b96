package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"weatherpush.app/pkg/errors"
	"weatherpush.app/pkg/validation"
)

const (
	maxRedisDB         = 15
	maxCacheTTLMinutes = 1440
	maxRunInterval     = 10080
	maxPortNumber      = 65535
	maxFanOutWorkers   = 64
)

// Config represents the application configuration structure
type Config struct {
	Server     ServerConfig    `split_words:"true"`
	Database   DatabaseConfig  `split_words:"true"`
	Weather    WeatherConfig   `split_words:"true"`
	Push       PushConfig      `split_words:"true"`
	Scheduler  SchedulerConfig `split_words:"true"`
	Trigger    TriggerConfig   `split_words:"true"`
	Cache      CacheConfig     `split_words:"true"`
	AppBaseURL string          `envconfig:"APP_URL" default:"http://localhost:8080"`
}

type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"weatherpush"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type WeatherConfig struct {
	FreeBaseURL     string  `envconfig:"WEATHER_FREE_BASE_URL" default:"https://api.open-meteo.com/v1"`
	PaidAPIKey      string  `envconfig:"WEATHER_PAID_API_KEY"`
	PaidBaseURL     string  `envconfig:"WEATHER_PAID_BASE_URL" default:"https://api.weatherapi.com/v1"`
	EnableCache     bool    `envconfig:"WEATHER_ENABLE_CACHE" default:"true"`
	CacheTTLMinutes int     `envconfig:"WEATHER_CACHE_TTL_MINUTES" default:"10"`
	ReuseTolerance  float64 `envconfig:"WEATHER_REUSE_TOLERANCE" default:"0.1"`
}

type PushConfig struct {
	VAPIDPublicKey  string `envconfig:"VAPID_PUBLIC_KEY"`
	VAPIDPrivateKey string `envconfig:"VAPID_PRIVATE_KEY"`
	Subscriber      string `envconfig:"PUSH_SUBSCRIBER" default:"admin@weatherpush.app"`
	TTLSeconds      int    `envconfig:"PUSH_TTL_SECONDS" default:"86400"`
}

// IsConfigured reports whether delivery credentials are present
func (c PushConfig) IsConfigured() bool {
	return c.VAPIDPublicKey != "" && c.VAPIDPrivateKey != ""
}

type SchedulerConfig struct {
	RunIntervalMinutes   int     `envconfig:"SCHEDULER_RUN_INTERVAL_MINUTES" default:"60"`
	EnableInternalTicker bool    `envconfig:"SCHEDULER_INTERNAL_TICKER" default:"true"`
	FanOutWorkers        int     `envconfig:"SCHEDULER_FANOUT_WORKERS" default:"8"`
	GroupPrecision       float64 `envconfig:"SCHEDULER_GROUP_PRECISION" default:"0.1"`
	GroupFetchPauseMS    int     `envconfig:"SCHEDULER_GROUP_FETCH_PAUSE_MS" default:"200"`
}

// TriggerConfig describes the built-in recurring broadcast schedule. It is
// disabled by default; most deployments fire deliveries through the
// scheduler tick or the run endpoint instead.
type TriggerConfig struct {
	Enabled        bool   `envconfig:"TRIGGER_ENABLED" default:"false"`
	Time           string `envconfig:"TRIGGER_TIME" default:"07:00"`
	Days           []int  `envconfig:"TRIGGER_DAYS" default:"0,1,2,3,4,5,6"`
	Location       string `envconfig:"TRIGGER_LOCATION"`
	SeparateAlerts bool   `envconfig:"TRIGGER_SEPARATE_ALERTS" default:"true"`
	HistoryEnabled bool   `envconfig:"TRIGGER_HISTORY" default:"true"`
}

// ParseLocation parses the optional "lat,lon" trigger target; an empty
// value returns nil coordinates.
func (c TriggerConfig) ParseLocation() (lat, lon *float64, err error) {
	raw := strings.TrimSpace(c.Location)
	if raw == "" {
		return nil, nil, nil
	}

	parts := strings.SplitN(raw, ",", 2)
	if len(parts) != 2 {
		return nil, nil, errors.NewConfigurationError(fmt.Sprintf("trigger location must be lat,lon: %q", raw), nil)
	}
	latV, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, nil, errors.NewConfigurationError(fmt.Sprintf("invalid trigger latitude: %q", parts[0]), nil)
	}
	lonV, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, nil, errors.NewConfigurationError(fmt.Sprintf("invalid trigger longitude: %q", parts[1]), nil)
	}
	return &latV, &lonV, nil
}

// RunInterval returns the orchestrator tick interval
func (c SchedulerConfig) RunInterval() time.Duration {
	return time.Duration(c.RunIntervalMinutes) * time.Minute
}

// GroupFetchPause returns the pause between group-level weather fetches
func (c SchedulerConfig) GroupFetchPause() time.Duration {
	return time.Duration(c.GroupFetchPauseMS) * time.Millisecond
}

// CacheType represents the type of cache to use
type CacheType int

const (
	CacheTypeUnknown CacheType = iota
	CacheTypeMemory
	CacheTypeRedis
)

// String returns the string representation of cache type
func (c CacheType) String() string {
	switch c {
	case CacheTypeMemory:
		return "memory"
	case CacheTypeRedis:
		return "redis"
	default:
		return "unknown"
	}
}

// IsValid checks if the cache type is valid
func (c CacheType) IsValid() bool {
	return c == CacheTypeMemory || c == CacheTypeRedis
}

// CacheTypeFromString converts string to CacheType enum
func CacheTypeFromString(s string) CacheType {
	switch s {
	case "memory":
		return CacheTypeMemory
	case "redis":
		return CacheTypeRedis
	default:
		return CacheTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (c *CacheType) UnmarshalText(text []byte) error {
	*c = CacheTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (c CacheType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type CacheConfig struct {
	Type  CacheType   `envconfig:"CACHE_TYPE" default:"memory"`
	Redis RedisConfig `split_words:"true"`
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	if err := c.Trigger.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	return nil
}

func (c ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > maxPortNumber {
		return errors.NewConfigurationError(fmt.Sprintf("invalid server port: %d", c.Port), nil)
	}
	return nil
}

func (c DatabaseConfig) Validate() error {
	if c.Host == "" {
		return errors.NewConfigurationError("database host is required", nil)
	}
	if c.Port <= 0 || c.Port > maxPortNumber {
		return errors.NewConfigurationError(fmt.Sprintf("invalid database port: %d", c.Port), nil)
	}
	if c.Name == "" {
		return errors.NewConfigurationError("database name is required", nil)
	}
	return nil
}

func (c WeatherConfig) Validate() error {
	if c.FreeBaseURL == "" {
		return errors.NewConfigurationError("free weather backend base URL is required", nil)
	}
	if c.CacheTTLMinutes <= 0 || c.CacheTTLMinutes > maxCacheTTLMinutes {
		return errors.NewConfigurationError(fmt.Sprintf("invalid cache TTL: %d minutes", c.CacheTTLMinutes), nil)
	}
	if c.ReuseTolerance <= 0 {
		return errors.NewConfigurationError("reuse tolerance must be positive", nil)
	}
	return nil
}

func (c SchedulerConfig) Validate() error {
	if c.RunIntervalMinutes <= 0 || c.RunIntervalMinutes > maxRunInterval {
		return errors.NewConfigurationError(fmt.Sprintf("invalid run interval: %d minutes", c.RunIntervalMinutes), nil)
	}
	if c.FanOutWorkers <= 0 || c.FanOutWorkers > maxFanOutWorkers {
		return errors.NewConfigurationError(fmt.Sprintf("invalid fan-out worker count: %d", c.FanOutWorkers), nil)
	}
	if c.GroupPrecision <= 0 {
		return errors.NewConfigurationError("group precision must be positive", nil)
	}
	return nil
}

func (c TriggerConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if !validation.IsValidClockTime(c.Time) {
		return errors.NewConfigurationError(fmt.Sprintf("trigger time must be HH:MM: %q", c.Time), nil)
	}
	if !validation.IsValidWeekdaySet(c.Days) {
		return errors.NewConfigurationError("trigger days must be weekday indices 0-6", nil)
	}
	// The service has no device location to fall back to, so an enabled
	// trigger must name its target.
	if strings.TrimSpace(c.Location) == "" {
		return errors.NewConfigurationError("trigger location is required when the trigger is enabled", nil)
	}
	if _, _, err := c.ParseLocation(); err != nil {
		return err
	}
	return nil
}

func (c CacheConfig) Validate() error {
	if !c.Type.IsValid() {
		return errors.NewConfigurationError(fmt.Sprintf("invalid cache type: %s", c.Type), nil)
	}
	if c.Type == CacheTypeRedis {
		if c.Redis.Addr == "" {
			return errors.NewConfigurationError("redis address is required", nil)
		}
		if c.Redis.DB < 0 || c.Redis.DB > maxRedisDB {
			return errors.NewConfigurationError(fmt.Sprintf("invalid redis DB index: %d", c.Redis.DB), nil)
		}
	}
	return nil
}
