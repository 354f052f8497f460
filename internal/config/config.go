package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	S3        S3Config        `mapstructure:"s3"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
}

type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"` // Duration string in config.yaml, e.g. "60m"
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"` // json or text
	File     string `mapstructure:"file"`   // Empty logs to stdout only
	ToStdout bool   `mapstructure:"to_stdout"`
}

// AnalyticsConfig holds engine defaults applied when a user has no preference stored.
type AnalyticsConfig struct {
	DefaultTimezone           string        `mapstructure:"default_timezone"`
	WeekStart                 int           `mapstructure:"week_start"` // 0 = Sunday
	AdherenceLookbackWeeks    int           `mapstructure:"adherence_lookback_weeks"`
	PlannedHorizonDays        int           `mapstructure:"planned_horizon_days"`
	DefaultMaxRestDaysPerWeek int           `mapstructure:"default_max_rest_days_per_week"`
	CacheTTL                  time.Duration `mapstructure:"cache_ttl"`
	CacheCleanup              time.Duration `mapstructure:"cache_cleanup"`
}

// Location resolves DefaultTimezone, falling back to UTC.
func (c AnalyticsConfig) Location() *time.Location {
	if loc, err := time.LoadLocation(c.DefaultTimezone); err == nil && c.DefaultTimezone != "" {
		return loc
	}
	return time.UTC
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Nested keys map to env vars, e.g. analytics.cache_ttl -> ANALYTICS_CACHE_TTL
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "workout_analytics")
	v.SetDefault("s3.use_ssl", true) // Default to true for cloud providers
	v.SetDefault("jwt.expiration", "1h")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.to_stdout", true)
	v.SetDefault("analytics.default_timezone", "UTC")
	v.SetDefault("analytics.week_start", 1)
	v.SetDefault("analytics.adherence_lookback_weeks", 12)
	v.SetDefault("analytics.planned_horizon_days", 7)
	v.SetDefault("analytics.default_max_rest_days_per_week", 0)
	v.SetDefault("analytics.cache_ttl", "5m")
	v.SetDefault("analytics.cache_cleanup", "10m")

	err = v.ReadInConfig()
	// A missing file is fine, we may rely solely on env vars.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return
	}
	return config, nil
}
