package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/datazip-inc/tap-clockify/constants"
	"github.com/datazip-inc/tap-clockify/utils"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

// stdout is reserved for singer messages, logs always go to stderr
var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

// Init configures the global logger: console output on stderr and, when a
// config folder is set, a rotated json log file next to it.
func Init() {
	level, err := zerolog.ParseLevel(strings.ToLower(viper.GetString(constants.LogLevel)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	writers := []io.Writer{
		zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339},
	}

	if folder := viper.GetString(constants.ConfigFolder); folder != "" {
		logDir := filepath.Join(folder, "logs", fmt.Sprintf("sync_%s", time.Now().UTC().Format("2006-01-02_15-04-05")))
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(logDir, "tap.log"),
			MaxSize:    100, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		})
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp()
	if syncID := viper.GetString(constants.SyncID); syncID != "" {
		ctx = ctx.Str("sync_id", syncID)
	}
	logger = ctx.Logger()
}

// Get returns the configured logger for components that take one by injection
func Get() *zerolog.Logger {
	return &logger
}

func Info(v ...interface{}) {
	logger.Info().Msg(fmt.Sprint(v...))
}

func Infof(format string, v ...interface{}) {
	logger.Info().Msgf(format, v...)
}

func Debug(v ...interface{}) {
	logger.Debug().Msg(fmt.Sprint(v...))
}

func Debugf(format string, v ...interface{}) {
	logger.Debug().Msgf(format, v...)
}

func Warn(v ...interface{}) {
	logger.Warn().Msg(fmt.Sprint(v...))
}

func Warnf(format string, v ...interface{}) {
	logger.Warn().Msgf(format, v...)
}

func Error(v ...interface{}) {
	logger.Error().Msg(fmt.Sprint(v...))
}

func Errorf(format string, v ...interface{}) {
	logger.Error().Msgf(format, v...)
}

// Fatal logs and exits with status 1
func Fatal(v ...interface{}) {
	logger.Fatal().Msg(fmt.Sprint(v...))
}

func Fatalf(format string, v ...interface{}) {
	logger.Fatal().Msgf(format, v...)
}

// LogState writes the state to the configured state path so it survives
// even when the consumer of stdout drops it
func LogState(state any) {
	path := viper.GetString(constants.StatePath)
	if path == "" {
		return
	}

	if err := utils.WriteJSONFile(path, state); err != nil {
		logger.Error().Err(err).Msgf("failed to write state to %s", path)
	}
}

// FileLogger writes content as pretty json to <CONFIG_FOLDER>/<fileName><fileExtension>
// and echoes it to the log
func FileLogger(content any, fileName, fileExtension string) {
	folder := viper.GetString(constants.ConfigFolder)
	if folder == "" {
		folder = os.TempDir()
	}

	FileLoggerWithPath(content, filepath.Join(folder, fileName+fileExtension))
}

func FileLoggerWithPath(content any, path string) {
	if err := utils.WriteJSONFile(path, content); err != nil {
		logger.Error().Err(err).Msgf("failed to write %s", path)
		return
	}

	logger.Info().Msgf("written %s", path)
}
