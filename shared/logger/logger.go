package logger

import (
	"io"
	"os"
	"roomly/config"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs a human readable console logger at trace level. It runs
// before configuration is loaded so boot messages are never lost.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	log.Trace().Msg("Zerolog initialized.")
}

// Configure applies the configured level and switches to JSON lines in production.
func Configure(cfg *config.Config) {
	if cfg.IsProduction() {
		log.Logger = New(os.Stdout, cfg.App.Name)
	}

	SetLogLevel(cfg)
}

// New returns a JSON logger tagged with the service name.
func New(out io.Writer, service string) zerolog.Logger {
	return zerolog.New(out).With().Timestamp().Str("service", service).Logger()
}

// ErrorWithStack logs err with the call stack where it was reported.
func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel falls back to trace when LOG_LEVEL does not parse.
func SetLogLevel(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel
	}

	zerolog.SetGlobalLevel(level)
	log.Trace().Str("loglevel", level.String()).Bool("fallback", err != nil).Msg("Log level configured.")
}
