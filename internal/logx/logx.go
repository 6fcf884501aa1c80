// Package logx provides the leveled diagnostics logger shared by the tsc
// library and its CLI. It wraps zerolog the way the pack's service loggers
// do: pretty console output by default, one-line JSON when the environment
// asks for it, with a thin method set so call sites never touch zerolog
// directly.
package logx

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger; WithBlock annotates messages with a block
// index on demand.
type Logger struct {
	logger zerolog.Logger
}

// Config controls verbosity and output shape.
type Config struct {
	// Verbose raises the level to debug; otherwise info.
	Verbose bool
	// JSON forces structured JSON output even on a terminal. When false,
	// the format is still JSON if TSC_LOG_FORMAT=json is set; otherwise it
	// is console output, whether or not stderr is a terminal.
	JSON bool
}

// New builds a Logger per cfg, writing to stderr so stdout stays free for
// piped SAM output.
func New(cfg Config) *Logger {
	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	useJSON := cfg.JSON || os.Getenv("TSC_LOG_FORMAT") == "json"

	var zl zerolog.Logger
	if useJSON {
		zl = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
		zl = zerolog.New(out).With().Timestamp().Logger()
	}

	return &Logger{logger: zl}
}

// Nop returns a Logger that discards everything, for library callers that
// don't want diagnostics.
func Nop() *Logger {
	return &Logger{logger: zerolog.Nop()}
}

// WithBlock returns a Logger annotated with the given block index.
func (l *Logger) WithBlock(blockIdx uint64) *Logger {
	return &Logger{logger: l.logger.With().Uint64("block", blockIdx).Logger()}
}

func (l *Logger) Debug(msg string) { l.logger.Debug().Msg(msg) }
func (l *Logger) Info(msg string)  { l.logger.Info().Msg(msg) }
func (l *Logger) Warn(msg string)  { l.logger.Warn().Msg(msg) }

// Error logs msg with err attached.
func (l *Logger) Error(msg string, err error) {
	l.logger.Error().Err(err).Msg(msg)
}

// Infof and Debugf cover the common case of a formatted message without
// structured fields.
func (l *Logger) Infof(format string, args ...any) {
	l.logger.Info().Msgf(format, args...)
}

func (l *Logger) Debugf(format string, args ...any) {
	l.logger.Debug().Msgf(format, args...)
}
