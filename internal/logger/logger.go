package logger

import (
	"github.com/laundrycare/lce/internal/config"
	"github.com/laundrycare/lce/internal/types"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.SugaredLogger to provide logging functionality
type Logger struct {
	*zap.SugaredLogger
}

// NewLogger creates and returns a new Logger instance honoring the
// configured level. Local mode uses the development encoder.
func NewLogger(cfg *config.Configuration) (*Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg != nil && cfg.Deployment.Mode == types.ModeLocal {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.Level = zap.NewAtomicLevelAt(parseLevel(cfg))

	zapLogger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{
		SugaredLogger: zapLogger.Sugar(),
	}, nil
}

func parseLevel(cfg *config.Configuration) zapcore.Level {
	if cfg == nil {
		return zapcore.InfoLevel
	}
	switch cfg.Logging.Level {
	case types.LogLevelDebug:
		return zapcore.DebugLevel
	case types.LogLevelWarn:
		return zapcore.WarnLevel
	case types.LogLevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
