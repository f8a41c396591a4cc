package di

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"places-exporter/config"
	"places-exporter/db"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Places: config.PlacesConfig{BaseURL: config.PLACES_ENDPOINT_BASE, TimeoutSeconds: 1, Mock: true},
		Export: config.ExportConfig{Dir: t.TempDir()},
		Server: config.ServerConfig{Addr: "127.0.0.1:0"},
	}
}

func TestNewContainer_MockWiring(t *testing.T) {
	t.Setenv("PROJECT_ROOT", "..")
	cfg := testConfig(t)

	c, err := NewContainer(cfg, "test-key")
	require.NoError(t, err)

	assert.IsType(t, &db.MockRedisClient{}, c.RedisClient)
	assert.Equal(t, cfg.Export.Dir, c.ExportService.Dir())

	candidates, err := c.SessionService.SearchCity(context.Background(), "Paris")
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
}

func TestNewContainer_RedisUnreachable(t *testing.T) {
	cfg := testConfig(t)
	cfg.Redis = config.RedisConfig{Enabled: true, Addr: "127.0.0.1:1"}

	_, err := NewContainer(cfg, "test-key")
	assert.Error(t, err)
}
