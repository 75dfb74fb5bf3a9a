package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomly/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "booking.events", cfg.Kafka.Topic.Booking)
	assert.Equal(t, "Asia/Ho_Chi_Minh", cfg.Booking.Timezone)
	assert.Equal(t, "5432", cfg.DB.Postgres.Write.Port)
	assert.Equal(t, "/metrics", cfg.App.Metrics.Route)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_POSTGRES_READ_HOST", "replica.internal")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("APP_RATE_LIMITER_ENABLE", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "replica.internal", cfg.DB.Postgres.Read.Host)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.App.RateLimiter.Enable)
}

func TestLoad_IgnoresShellVariables(t *testing.T) {
	t.Setenv("PATH", "/usr/bin:/bin")
	t.Setenv("USER", "root")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "/metrics", cfg.App.Metrics.Route)
	assert.Empty(t, cfg.DB.Postgres.Read.Username)
	assert.Empty(t, cfg.DB.Postgres.Write.Username)
}

func TestLoad_NamespacedOverrides(t *testing.T) {
	t.Setenv("APP_METRICS_ROUTE", "/internal/metrics")
	t.Setenv("DB_POSTGRES_WRITE_USERNAME", "roomly")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "/internal/metrics", cfg.App.Metrics.Route)
	assert.Equal(t, "roomly", cfg.DB.Postgres.Write.Username)
}

func TestLoad_Malformed(t *testing.T) {
	t.Setenv("CACHE_TTL", "forever")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		cfg := &config.Config{}
		cfg.JWT.AccessSecret = "a"
		cfg.JWT.RefreshSecret = "r"

		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(cfg *config.Config)
		wantErr bool
	}{
		{name: "complete", mutate: func(*config.Config) {}},
		{name: "missing refresh secret", mutate: func(cfg *config.Config) { cfg.JWT.RefreshSecret = "" }, wantErr: true},
		{
			name: "limiter without window",
			mutate: func(cfg *config.Config) {
				cfg.App.RateLimiter.Enable = true
				cfg.App.RateLimiter.MaxRequests = 10
			},
			wantErr: true,
		},
		{name: "kafka without brokers", mutate: func(cfg *config.Config) { cfg.Kafka.Enable = true }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestIsProduction(t *testing.T) {
	cfg := &config.Config{}
	assert.False(t, cfg.IsProduction())

	cfg.Server.Env = "production"
	assert.True(t, cfg.IsProduction())
}
