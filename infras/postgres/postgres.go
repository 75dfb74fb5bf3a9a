package postgres

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"roomly/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName         = "postgres"
	defaultSSLMode     = "disable"
	maxOpenConnections = 10
	maxIdleConnections = 10
	connMaxLifetime    = 30 * time.Minute
)

// Connection splits reads and writes. Both may point at the same server.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type node struct {
	role     string
	host     string
	port     string
	username string
	password string
	database string
	sslMode  string
	timezone string
}

func New(config *config.Config) *Connection {
	pg := config.DB.Postgres

	read := node{
		role:     "read",
		host:     pg.Read.Host,
		port:     pg.Read.Port,
		username: pg.Read.Username,
		password: pg.Read.Password,
		database: pg.Prefix + pg.Read.Name,
		sslMode:  pg.Read.SSLMode,
		timezone: pg.Read.Timezone,
	}

	write := node{
		role:     "write",
		host:     pg.Write.Host,
		port:     pg.Write.Port,
		username: pg.Write.Username,
		password: pg.Write.Password,
		database: pg.Prefix + pg.Write.Name,
		sslMode:  pg.Write.SSLMode,
		timezone: pg.Write.Timezone,
	}

	return &Connection{
		Read:  connect(read, pg.MaxRetry, time.Duration(pg.RetryWaitTime)*time.Second),
		Write: connect(write, pg.MaxRetry, time.Duration(pg.RetryWaitTime)*time.Second),
	}
}

// DSN renders the lib/pq connection URL for n.
func (n node) DSN() string {
	sslMode := n.sslMode
	if sslMode == "" {
		sslMode = defaultSSLMode
	}

	query := url.Values{}
	query.Set("sslmode", sslMode)

	if n.timezone != "" {
		query.Set("timezone", n.timezone)
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(n.username, n.password),
		Host:     net.JoinHostPort(n.host, n.port),
		Path:     "/" + n.database,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// connect retries until the node answers. A nil result means every attempt failed.
func connect(n node, maxRetry int, wait time.Duration) *sqlx.DB {
	logger := log.With().
		Str("name", n.role).
		Str("host", n.host).
		Str("port", n.port).
		Str("dbName", n.database).
		Logger()

	for attempt := 1; attempt <= max(maxRetry, 1); attempt++ {
		db, err := sqlx.Connect(driverName, n.DSN())
		if err == nil {
			db.SetMaxOpenConns(maxOpenConnections)
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetConnMaxLifetime(connMaxLifetime)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		time.Sleep(wait)
	}

	return nil
}

// Close releases both pools. The write pool is skipped when it shares the read handle.
func (c *Connection) Close() error {
	var errs []error

	if c.Read != nil {
		if err := c.Read.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close read pool: %w", err))
		}
	}

	if c.Write != nil && c.Write != c.Read {
		if err := c.Write.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close write pool: %w", err))
		}
	}

	return errors.Join(errs...)
}
