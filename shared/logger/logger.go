package logger

import (
	"hotel/config"
	"hotel/shared/constant"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs a human readable logger until the configuration is loaded.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = zerolog.New(Writer(constant.ServerEnvDevelopment, os.Stdout)).With().Timestamp().Logger()
}

// Writer picks the log encoding for an environment. Production gets one JSON object per line.
func Writer(env string, out io.Writer) io.Writer {
	if env == constant.ServerEnvProduction {
		return out
	}

	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel applies SERVER_LOG_LEVEL and switches the encoding for SERVER_ENV.
// Unknown levels fall back to trace.
func SetLogLevel(config *config.Config) {
	log.Logger = log.Output(Writer(config.Server.Env, os.Stdout)).With().Str("service", config.App.Name).Logger()

	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel
		log.Warn().Str("configured", config.Server.LogLevel).Msg("Unknown log level, using trace")
	}

	zerolog.SetGlobalLevel(level)
	log.Debug().Str("loglevel", level.String()).Str("env", config.Server.Env).Msg("Logger configured")
}
