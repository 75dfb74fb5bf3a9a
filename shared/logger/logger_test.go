package logger_test

import (
	"bytes"
	"errors"
	"roomly/config"
	"roomly/shared/logger"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func restore(t *testing.T) {
	t.Helper()

	originalLogger := log.Logger
	originalLevel := zerolog.GlobalLevel()
	originalTimeFormat := zerolog.TimeFieldFormat

	t.Cleanup(func() {
		log.Logger = originalLogger
		zerolog.SetGlobalLevel(originalLevel)
		zerolog.TimeFieldFormat = originalTimeFormat
	})
}

func TestInitLogger(t *testing.T) {
	restore(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("failed to insert booking"))

	assert.Contains(t, buf.String(), "failed to insert booking")
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		logLevel string
		expected zerolog.Level
	}{
		{logLevel: "debug", expected: zerolog.DebugLevel},
		{logLevel: "info", expected: zerolog.InfoLevel},
		{logLevel: "warn", expected: zerolog.WarnLevel},
		{logLevel: "error", expected: zerolog.ErrorLevel},
		{logLevel: "invalid_level", expected: zerolog.TraceLevel},
		{logLevel: "", expected: zerolog.NoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			restore(t)

			log.Logger = log.Output(&bytes.Buffer{})

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

func TestConfigure_Production(t *testing.T) {
	restore(t)

	cfg := &config.Config{}
	cfg.Server.Env = "production"
	cfg.Server.LogLevel = "info"
	cfg.App.Name = "roomly"

	logger.Configure(cfg)

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestNew(t *testing.T) {
	restore(t)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	l := logger.New(&buf, "roomly")
	l.Info().Msg("booking confirmed")

	assert.Contains(t, buf.String(), `"service":"roomly"`)
	assert.Contains(t, buf.String(), `"message":"booking confirmed"`)
}
