package config

import (
	"errors"
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

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Log       LogConfig
	Scheduler SchedulerConfig
	History   HistoryConfig
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

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SchedulerConfig tunes the timetable generation engine.
type SchedulerConfig struct {
	MaxIterations      int
	OptimizerPasses    int
	OptimizerPatience  int
	MaxDailyLectures   int
	TeacherDailyCap    int
	TheorySlack        int
	MinWorkingDays     int
	TeacherWeeklyCap   int
	CohortConcurrency  int
	OptimizerByDefault bool
}

// HistoryConfig toggles persisted timetable versions and their caching.
type HistoryConfig struct {
	Enabled  bool
	CacheTTL time.Duration
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
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

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

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Scheduler = SchedulerConfig{
		MaxIterations:      v.GetInt("SCHEDULER_MAX_ITERATIONS"),
		OptimizerPasses:    v.GetInt("SCHEDULER_OPTIMIZER_PASSES"),
		OptimizerPatience:  v.GetInt("SCHEDULER_OPTIMIZER_PATIENCE"),
		MaxDailyLectures:   v.GetInt("SCHEDULER_MAX_DAILY_LECTURES"),
		TeacherDailyCap:    v.GetInt("SCHEDULER_TEACHER_DAILY_CAP"),
		TheorySlack:        v.GetInt("SCHEDULER_THEORY_SLACK"),
		MinWorkingDays:     v.GetInt("SCHEDULER_MIN_WORKING_DAYS"),
		TeacherWeeklyCap:   v.GetInt("SCHEDULER_TEACHER_WEEKLY_CAP"),
		CohortConcurrency:  v.GetInt("SCHEDULER_COHORT_CONCURRENCY"),
		OptimizerByDefault: v.GetBool("SCHEDULER_OPTIMIZER_DEFAULT"),
	}

	cfg.History = HistoryConfig{
		Enabled:  v.GetBool("ENABLE_HISTORY"),
		CacheTTL: parseDuration(v.GetString("HISTORY_CACHE_TTL"), 10*time.Minute),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "timetable_generator")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SCHEDULER_MAX_ITERATIONS", 10000)
	v.SetDefault("SCHEDULER_OPTIMIZER_PASSES", 100)
	v.SetDefault("SCHEDULER_OPTIMIZER_PATIENCE", 20)
	v.SetDefault("SCHEDULER_MAX_DAILY_LECTURES", 7)
	v.SetDefault("SCHEDULER_TEACHER_DAILY_CAP", 4)
	v.SetDefault("SCHEDULER_THEORY_SLACK", 2)
	v.SetDefault("SCHEDULER_MIN_WORKING_DAYS", 5)
	v.SetDefault("SCHEDULER_TEACHER_WEEKLY_CAP", 25)
	v.SetDefault("SCHEDULER_COHORT_CONCURRENCY", 4)
	v.SetDefault("SCHEDULER_OPTIMIZER_DEFAULT", true)

	v.SetDefault("ENABLE_HISTORY", false)
	v.SetDefault("HISTORY_CACHE_TTL", "10m")
}

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
