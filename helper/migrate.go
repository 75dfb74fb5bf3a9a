package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"roomly/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	defaultSource         = "file://migrations/postgres"
	defaultMigrationTable = "schema_migrations"
	defaultSSLMode        = "disable"
)

type Action string

const (
	ActionUp      Action = "up"
	ActionDown    Action = "down"
	ActionStepUp  Action = "step-up"
	ActionDrop    Action = "drop"
	ActionVersion Action = "version"
)

var ErrUnknownAction = errors.New("unknown migration action")

func ParseAction(raw string) (Action, error) {
	switch action := Action(raw); action {
	case ActionUp, ActionDown, ActionStepUp, ActionDrop, ActionVersion:
		return action, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, raw)
	}
}

func getDBName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// DatabaseURL builds the migrate DSN for the write node.
func DatabaseURL(config *config.Config) string {
	write := config.DB.Postgres.Write

	sslMode := write.SSLMode
	if sslMode == "" {
		sslMode = defaultSSLMode
	}

	table := config.DB.Postgres.MigrationTable
	if table == "" {
		table = defaultMigrationTable
	}

	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(write.Username, write.Password),
		Host:   net.JoinHostPort(write.Host, write.Port),
		Path:   "/" + getDBName(config, write.Name),
	}

	query := url.Values{}
	query.Set("sslmode", sslMode)
	query.Set("x-migrations-table", table)
	dsn.RawQuery = query.Encode()

	return dsn.String()
}

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	mig, err := migrate.New(defaultSource, DatabaseURL(config))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func Runner(config *config.Config, action Action) error {
	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	switch action {
	case ActionUp:
		err = mig.Up()
	case ActionDown:
		err = mig.Steps(-1)
	case ActionStepUp:
		err = mig.Steps(1)
	case ActionDrop:
		err = mig.Down()
	case ActionVersion:
		return logVersion(mig)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	log.Info().Str("action", string(action)).Msg("Database migration finished")

	return nil
}

func logVersion(mig *migrate.Migrate) error {
	version, dirty, err := mig.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Info().Msg("Database has no migrations applied")

		return nil
	}

	if err != nil {
		return fmt.Errorf("error reading migration version: %w", err)
	}

	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Database migration version")

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}

// AutoMigrate applies pending migrations on boot when DB_POSTGRES_AUTO_MIGRATE is set.
func AutoMigrate(config *config.Config) error {
	if !config.DB.Postgres.AutoMigrate {
		return nil
	}

	return Up(config)
}
