package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STATS_CACHE_TTL", "1m")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test , ,http://b.test")

	LoadConfig()

	assert.Equal(t, "9090", ServerPort)
	assert.Equal(t, time.Minute, StatsCacheTTL)
	assert.Equal(t, 24*time.Hour, TokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, CorsAllowedOrigins)
	assert.Equal(t, 90, AuditRetentionDays)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"x"}, splitList("x,"))
}
