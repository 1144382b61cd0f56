package logger_test

import (
	"bytes"
	"errors"
	"hotel/config"
	"hotel/shared/constant"
	"hotel/shared/logger"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func restore(t *testing.T) {
	t.Helper()

	original := log.Logger
	level := zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})
}

func TestInitLogger(t *testing.T) {
	restore(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer

	t.Run("production writes json", func(t *testing.T) {
		buf.Reset()

		production := zerolog.New(logger.Writer(constant.ServerEnvProduction, &buf))
		production.Info().Str("room", "101").Msg("checked in")

		assert.JSONEq(t, `{"level":"info","room":"101","message":"checked in"}`, buf.String())
	})

	t.Run("development writes console lines", func(t *testing.T) {
		buf.Reset()

		development := zerolog.New(logger.Writer(constant.ServerEnvDevelopment, &buf))
		development.Info().Str("room", "101").Msg("checked in")

		assert.Contains(t, buf.String(), "checked in")
		assert.Contains(t, buf.String(), "room=")
		assert.Contains(t, buf.String(), "101")
		assert.NotContains(t, buf.String(), `"message"`)
	})
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger.ErrorWithStack(errors.New("overlapping booking"))

	assert.Contains(t, buf.String(), "overlapping booking")
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected zerolog.Level
	}{
		{name: "debug", level: "debug", expected: zerolog.DebugLevel},
		{name: "info", level: "info", expected: zerolog.InfoLevel},
		{name: "warn", level: "warn", expected: zerolog.WarnLevel},
		{name: "disabled", level: "disabled", expected: zerolog.Disabled},
		{name: "unknown falls back to trace", level: "verbose", expected: zerolog.TraceLevel},
		{name: "empty is no level", level: "", expected: zerolog.NoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restore(t)

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.level
			cfg.Server.Env = constant.ServerEnvProduction

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}
