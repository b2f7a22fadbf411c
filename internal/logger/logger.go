package logger

import (
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/luhtfiimanal/go-cep-archive/internal/config"
)

// New builds a console friendly zap logger for cfg. An empty level means
// "info"; an unknown level or format is a configuration error.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	// stdout belongs to the lookup result.
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	level := cfg.Level
	if level == "" {
		level = "info"
	}
	switch level {
	case "debug":
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zc.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zc.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zc.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		return nil, errors.Newf("invalid log level: %s", level)
	}

	switch cfg.Format {
	case "json":
		zc.Encoding = "json"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	case "", "text", "console":
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, errors.Newf("invalid log format: %s", cfg.Format)
	}

	zc.EncoderConfig.EncodeTime = customTimeEncoder
	zc.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	zc.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	return zc.Build()
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006/01/02 15:04:05.000 -07:00"))
}
