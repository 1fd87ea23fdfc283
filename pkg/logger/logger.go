package logx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sophist-bot/server/internal/core"
)

const (
	logDir          = "logs"
	logFile         = "bot.log"
	criticalLogFile = "critical_startup_error.log"
)

var DefaultLoggerOpts = &LoggerOpts{
	Environment: core.Development,
}

type LoggerOpts struct {
	Environment core.Environment
}

func safe(opts ...LoggerOpts) *LoggerOpts {
	if len(opts) == 0 {
		return DefaultLoggerOpts
	}
	return &opts[0]
}

// Init configures the global logger with a console sink and, when the logs
// directory is writable, an additional file sink at logs/bot.log.
func Init(opts ...LoggerOpts) {
	sinks := []io.Writer{zerolog.NewConsoleWriter()}
	if f := openLogFile(); f != nil {
		sinks = append(sinks, f)
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(sinks...)).With().Timestamp().Logger()
	if safe(opts...).Environment == core.Production {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	} else {
		log.Logger = log.Logger.With().Caller().Logger().Level(zerolog.DebugLevel)
	}
}

func openLogFile() *os.File {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(logDir, logFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil
	}
	return f
}

// Critical records a startup failure to logs/critical_startup_error.log in
// addition to the normal sinks. Best effort: a missing logs directory is not
// itself a reason to fail.
func Critical(err error) {
	Error().Err(err).Msg("critical startup error")
	if mkErr := os.MkdirAll(logDir, 0o755); mkErr != nil {
		return
	}
	f, openErr := os.OpenFile(filepath.Join(logDir, criticalLogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if openErr != nil {
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "%s %v\n", time.Now().Format(time.RFC3339), err)
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Panic() *zerolog.Event {
	return log.Panic()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}
