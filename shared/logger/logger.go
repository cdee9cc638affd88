package logger

import (
	"io"
	"os"
	"time"

	"voyage/config"
	"voyage/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs a console logger at trace level so configuration loading is visible.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	log.Trace().Msg("Zerolog initialized.")
}

// Configure applies the level and format from cfg to the global logger.
func Configure(cfg *config.Config) {
	zerolog.SetGlobalLevel(Level(cfg))
	log.Logger = New(cfg, os.Stdout)

	log.Debug().Str("loglevel", zerolog.GlobalLevel().String()).Str("env", cfg.Server.Env).Msg("logger configured")
}

// New writes JSON lines tagged with the service name in production and
// human readable lines everywhere else.
func New(cfg *config.Config, out io.Writer) zerolog.Logger {
	if cfg.Server.Env == constant.ServerEnvProduction {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		return zerolog.New(out).With().Timestamp().Str("service", cfg.App.Name).Logger()
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
}

// Level falls back to info when LOG_LEVEL is missing or unknown.
func Level(cfg *config.Config) zerolog.Level {
	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil || cfg.Server.LogLevel == constant.Empty {
		return zerolog.InfoLevel
	}

	return level
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}
