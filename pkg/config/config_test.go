//go:build !integration

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATA_SOURCE", "")
	t.Setenv("MAPPING_SOURCE", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("SESSION_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DataSourceLocal, cfg.Data.Source)
	assert.Equal(t, MappingSourceFile, cfg.Data.MappingSource)
	assert.Equal(t, "euc-kr", cfg.Data.MappingEncoding)
	assert.Equal(t, 24*time.Hour, cfg.Cache.SessionTTL)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATA_SOURCE", "S3")
	t.Setenv("S3_BUCKET", "ads-bucket")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REDIS_USERNAME", "dashboard")
	t.Setenv("REDIS_POOL_SIZE", "32")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("CACHE_REFRESH_SCHEDULE", "@hourly")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DataSourceS3, cfg.Data.Source)
	assert.Equal(t, "ads-bucket", cfg.Data.S3Bucket)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 2, cfg.Redis.RedisDB)
	assert.Equal(t, "dashboard", cfg.Redis.RedisUsername)
	assert.Equal(t, 32, cfg.Redis.PoolSize)
	assert.Equal(t, 30*time.Minute, cfg.Cache.SessionTTL)
	assert.Equal(t, "@hourly", cfg.Cache.RefreshSchedule)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"s3 without bucket", map[string]string{"DATA_SOURCE": "s3", "S3_BUCKET": ""}},
		{"unknown data source", map[string]string{"DATA_SOURCE": "ftp"}},
		{"postgres without password", map[string]string{"MAPPING_SOURCE": "postgres", "DB_PASSWORD": ""}},
		{"bad redis db", map[string]string{"REDIS_DB": "x"}},
		{"bad redis pool size", map[string]string{"REDIS_POOL_SIZE": "0"}},
		{"bad ttl", map[string]string{"SESSION_TTL": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
