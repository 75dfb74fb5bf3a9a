package helper_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomly/config"
	"roomly/helper"
)

func TestParseAction(t *testing.T) {
	for _, raw := range []string{"up", "down", "step-up", "drop", "version"} {
		action, err := helper.ParseAction(raw)

		require.NoError(t, err)
		assert.Equal(t, helper.Action(raw), action)
	}

	_, err := helper.ParseAction("sideways")
	assert.ErrorIs(t, err, helper.ErrUnknownAction)
}

func TestDatabaseURL(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.DB.Postgres.Write.Host = "db"
		cfg.DB.Postgres.Write.Port = "5432"
		cfg.DB.Postgres.Write.Username = "roomly"
		cfg.DB.Postgres.Write.Password = "p@ss/word"
		cfg.DB.Postgres.Write.Name = "roomly"

		parsed, err := url.Parse(helper.DatabaseURL(cfg))
		require.NoError(t, err)

		assert.Equal(t, "db:5432", parsed.Host)
		assert.Equal(t, "/roomly", parsed.Path)

		password, _ := parsed.User.Password()
		assert.Equal(t, "p@ss/word", password)
		assert.Equal(t, "disable", parsed.Query().Get("sslmode"))
		assert.Equal(t, "schema_migrations", parsed.Query().Get("x-migrations-table"))
	})

	t.Run("prefix and table", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.DB.Postgres.Prefix = "test_"
		cfg.DB.Postgres.MigrationTable = "roomly_migrations"
		cfg.DB.Postgres.Write.Host = "localhost"
		cfg.DB.Postgres.Write.Port = "5433"
		cfg.DB.Postgres.Write.Name = "roomly"
		cfg.DB.Postgres.Write.SSLMode = "require"

		parsed, err := url.Parse(helper.DatabaseURL(cfg))
		require.NoError(t, err)

		assert.Equal(t, "/test_roomly", parsed.Path)
		assert.Equal(t, "require", parsed.Query().Get("sslmode"))
		assert.Equal(t, "roomly_migrations", parsed.Query().Get("x-migrations-table"))
	})
}

func TestAutoMigrate_Disabled(t *testing.T) {
	assert.NoError(t, helper.AutoMigrate(&config.Config{}))
}
