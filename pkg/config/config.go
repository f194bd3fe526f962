package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string
	Location  string

	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	CORS       CORSConfig
	Log        LogConfig
	Cache      CacheConfig
	Scheduling SchedulingConfig
	Jobs       JobsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig verifies customer tokens issued by the booking frontend.
type JWTConfig struct {
	Secret string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CacheConfig toggles the Redis-backed result cache.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// SchedulingConfig is the tuning surface of the slot engine.
type SchedulingConfig struct {
	GranularityMinutes int
	BufferMinutes      int
	HorizonDays        int
	MaxHorizonDays     int
	MinServiceMinutes  int
	TopDays            int
	SlotsPerDay        int
	DemandWindowDays   int
	PeakThreshold      int
	DemandTTL          time.Duration
	PreferenceTTL      time.Duration
	SuggestionTTL      time.Duration
	BusinessHours      string
}

// JobsConfig controls the background invalidation queue.
type JobsConfig struct {
	Workers    int
	MaxRetries int
	RetryDelay time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")
	cfg.Location = v.GetString("LOCATION")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{Secret: v.GetString("JWT_SECRET")}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Cache = CacheConfig{
		Enabled:    v.GetBool("ENABLE_CACHE"),
		DefaultTTL: parseDuration(v.GetString("CACHE_DEFAULT_TTL"), 10*time.Minute),
	}

	cfg.Scheduling = SchedulingConfig{
		GranularityMinutes: positiveOr(v.GetInt("SCHEDULING_GRANULARITY_MINUTES"), 15),
		BufferMinutes:      nonNegativeOr(v.GetInt("SCHEDULING_BUFFER_MINUTES"), 15),
		HorizonDays:        positiveOr(v.GetInt("SCHEDULING_HORIZON_DAYS"), 30),
		MaxHorizonDays:     positiveOr(v.GetInt("SCHEDULING_MAX_HORIZON_DAYS"), 30),
		MinServiceMinutes:  positiveOr(v.GetInt("SCHEDULING_MIN_SERVICE_MINUTES"), 60),
		TopDays:            positiveOr(v.GetInt("SCHEDULING_TOP_DAYS"), 14),
		SlotsPerDay:        positiveOr(v.GetInt("SCHEDULING_SLOTS_PER_DAY"), 20),
		DemandWindowDays:   positiveOr(v.GetInt("SCHEDULING_DEMAND_WINDOW_DAYS"), 90),
		PeakThreshold:      positiveOr(v.GetInt("SCHEDULING_PEAK_THRESHOLD"), 3),
		DemandTTL:          parseDuration(v.GetString("SCHEDULING_DEMAND_TTL"), time.Hour),
		PreferenceTTL:      parseDuration(v.GetString("SCHEDULING_PREFERENCE_TTL"), 30*time.Minute),
		SuggestionTTL:      parseDuration(v.GetString("SCHEDULING_SUGGESTION_TTL"), 5*time.Minute),
		BusinessHours:      v.GetString("BUSINESS_HOURS"),
	}

	cfg.Jobs = JobsConfig{
		Workers:    positiveOr(v.GetInt("JOBS_WORKERS"), 2),
		MaxRetries: positiveOr(v.GetInt("JOBS_MAX_RETRIES"), 3),
		RetryDelay: parseDuration(v.GetString("JOBS_RETRY_DELAY"), time.Second),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("LOCATION", "Local")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "autoservice_booking")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_CACHE", true)
	v.SetDefault("CACHE_DEFAULT_TTL", "10m")

	v.SetDefault("SCHEDULING_GRANULARITY_MINUTES", 15)
	v.SetDefault("SCHEDULING_BUFFER_MINUTES", 15)
	v.SetDefault("SCHEDULING_HORIZON_DAYS", 30)
	v.SetDefault("SCHEDULING_MAX_HORIZON_DAYS", 30)
	v.SetDefault("SCHEDULING_MIN_SERVICE_MINUTES", 60)
	v.SetDefault("SCHEDULING_TOP_DAYS", 14)
	v.SetDefault("SCHEDULING_SLOTS_PER_DAY", 20)
	v.SetDefault("SCHEDULING_DEMAND_WINDOW_DAYS", 90)
	v.SetDefault("SCHEDULING_PEAK_THRESHOLD", 3)
	v.SetDefault("SCHEDULING_DEMAND_TTL", "1h")
	v.SetDefault("SCHEDULING_PREFERENCE_TTL", "30m")
	v.SetDefault("SCHEDULING_SUGGESTION_TTL", "5m")
	v.SetDefault("BUSINESS_HOURS", DefaultBusinessHours)

	v.SetDefault("JOBS_WORKERS", 2)
	v.SetDefault("JOBS_MAX_RETRIES", 3)
	v.SetDefault("JOBS_RETRY_DELAY", "1s")
}

// DefaultBusinessHours opens the workshop on weekdays with a short lunch break
// and on Saturday mornings. Sunday is closed.
const DefaultBusinessHours = "mon=08:00-18:00@12:30-13:00;tue=08:00-18:00@12:30-13:00;wed=08:00-18:00@12:30-13:00;thu=08:00-18:00@12:30-13:00;fri=08:00-18:00@12:30-13:00;sat=09:00-13:00"

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func positiveOr(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}

func nonNegativeOr(value, fallback int) int {
	if value < 0 {
		return fallback
	}
	return value
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
