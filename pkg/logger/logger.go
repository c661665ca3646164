package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/GlebRadaev/elevatex/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"

	consoleTimeLayout = "15:04:05 02-01-2006"
	serviceName       = "elevatex"
)

var logLvlMap = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
}

// InitLogger installs the global logger writing to stdout.
func InitLogger(conf *config.Config) error {
	logger, err := Build(conf, zapcore.Lock(os.Stdout))
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	return nil
}

// Build creates a logger for the configured level and format. Console output
// is meant for a terminal; json output carries caller and UTC timestamps for
// log shipping.
func Build(conf *config.Config, out zapcore.WriteSyncer) (*zap.Logger, error) {
	lvl, ok := logLvlMap[conf.LogLvl]
	if !ok {
		return nil, fmt.Errorf("unsupported log lvl: %s", conf.LogLvl)
	}

	opts := []zap.Option{
		zap.Fields(zap.String("service", serviceName)),
		zap.ErrorOutput(zapcore.Lock(os.Stderr)),
	}

	var encoder zapcore.Encoder
	switch conf.LogFormat {
	case "", FormatConsole:
		encoder = zapcore.NewConsoleEncoder(consoleEncoderConfig())
	case FormatJSON:
		encoder = zapcore.NewJSONEncoder(jsonEncoderConfig())
		opts = append(opts, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	default:
		return nil, fmt.Errorf("unsupported log format: %s", conf.LogFormat)
	}

	core := zapcore.NewCore(encoder, out, zap.NewAtomicLevelAt(lvl))
	return zap.New(core, opts...), nil
}

func consoleEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.TimeEncoderOfLayout(consoleTimeLayout),
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
	}
}

func jsonEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     utcISO8601,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func utcISO8601(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	zapcore.ISO8601TimeEncoder(t.UTC(), enc)
}

// Sync flushes the global logger. Errors from syncing stdout are ignored.
func Sync() {
	_ = zap.L().Sync()
}
