package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DataSourceLocal = "local"
	DataSourceS3    = "s3"

	MappingSourceFile     = "file"
	MappingSourcePostgres = "postgres"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Data     DataConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Cache    CacheConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port         string
	AllowOrigins []string
}

type DataConfig struct {
	Source          string
	DataDir         string
	ModelDir        string
	S3Bucket        string
	S3Region        string
	S3DataPrefix    string
	S3ModelPrefix   string
	MappingSource   string
	MappingEncoding string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisUsername string
	RedisPassword string
	RedisDB       int
	PoolSize      int
}

// Enabled reports whether sessions should be stored in Redis.
func (r RedisConfig) Enabled() bool {
	return r.RedisHost != ""
}

type JWTConfig struct {
	SecretKey string
}

type CacheConfig struct {
	RefreshSchedule string
	WarmOnStart     bool
	SessionTTL      time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	redisPoolSize, err := strconv.Atoi(getEnv("REDIS_POOL_SIZE", "10"))
	if err != nil || redisPoolSize <= 0 {
		return nil, errors.New("invalid redis pool size")
	}

	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}

	warmOnStart, err := strconv.ParseBool(getEnv("CACHE_WARM_ON_START", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid cache warm flag: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Ad Recommendation Dashboard API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			AllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:8080")),
		},
		Data: DataConfig{
			Source:          strings.ToLower(getEnv("DATA_SOURCE", DataSourceLocal)),
			DataDir:         getEnv("DATA_DIR", "./data"),
			ModelDir:        getEnv("MODEL_DIR", "./model"),
			S3Bucket:        getEnv("S3_BUCKET", ""),
			S3Region:        getEnv("S3_REGION", "ap-northeast-2"),
			S3DataPrefix:    getEnv("S3_DATA_PREFIX", "data"),
			S3ModelPrefix:   getEnv("S3_MODEL_PREFIX", "model"),
			MappingSource:   strings.ToLower(getEnv("MAPPING_SOURCE", MappingSourceFile)),
			MappingEncoding: getEnv("MAPPING_ENCODING", "euc-kr"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "ad_reco_dashboard"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", ""),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisUsername: getEnv("REDIS_USERNAME", ""),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
			PoolSize:      redisPoolSize,
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Cache: CacheConfig{
			RefreshSchedule: getEnv("CACHE_REFRESH_SCHEDULE", ""),
			WarmOnStart:     warmOnStart,
			SessionTTL:      sessionTTL,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks combinations of settings that Load cannot default.
func (c *Config) Validate() error {
	switch c.Data.Source {
	case DataSourceLocal:
	case DataSourceS3:
		if c.Data.S3Bucket == "" {
			return errors.New("missing s3 bucket for s3 data source")
		}
	default:
		return fmt.Errorf("unknown data source %q", c.Data.Source)
	}

	switch c.Data.MappingSource {
	case MappingSourceFile:
	case MappingSourcePostgres:
		if c.Database.Password == "" {
			return errors.New("missing database password for postgres mapping source")
		}
	default:
		return fmt.Errorf("unknown mapping source %q", c.Data.MappingSource)
	}

	if c.Cache.SessionTTL < 0 {
		return errors.New("session ttl must not be negative")
	}

	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
